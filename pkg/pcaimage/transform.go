package pcaimage

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var errNonFinite = errors.New("non-finite value in channel matrix")

// ReduceRank computes the rank-k principal-component approximation of
// one channel matrix. Rows are treated as observations and columns
// (image width) as features: each column is centered on its mean, the
// centered matrix is factorized with a thin SVD, and the top-k
// singular triplets reconstruct the approximation before the means are
// added back.
//
// The height/width asymmetry of this orientation is intentional and
// matches the rest of the pipeline; do not symmetrize it.
//
// A zero-variance (constant) channel is a normal low-information case:
// the centered matrix is zero, every singular value is zero, and the
// reconstruction is exactly the column means, i.e. the original
// constant.
func ReduceRank(m *mat.Dense, k int) (*mat.Dense, error) {
	rows, cols := m.Dims()
	maxRank := rows
	if cols < rows {
		maxRank = cols
	}
	if k < 1 || k > maxRank {
		return nil, fmt.Errorf("component count %d outside [1, %d]", k, maxRank)
	}

	means := make([]float64, cols)
	for j := 0; j < cols; j++ {
		column := mat.Col(nil, j, m)
		for _, v := range column {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errNonFinite
			}
		}
		means[j] = stat.Mean(column, nil)
	}

	centered := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			centered.Set(i, j, m.At(i, j)-means[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return nil, errors.New("singular value decomposition did not converge")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	singularValues := svd.Values(nil)

	// Project onto the top-k directions and invert the projection in
	// one shot: U_k * diag(s_k) * V_k^T.
	uk := u.Slice(0, rows, 0, k)
	vk := v.Slice(0, cols, 0, k)

	scaled := mat.NewDense(rows, k, nil)
	scaled.Mul(uk, mat.NewDiagDense(k, singularValues[:k]))

	reconstructed := mat.NewDense(rows, cols, nil)
	reconstructed.Mul(scaled, vk.T())

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			reconstructed.Set(i, j, reconstructed.At(i, j)+means[j])
		}
	}

	return reconstructed, nil
}
