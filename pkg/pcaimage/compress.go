package pcaimage

import (
	"fmt"
	"image"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

type channelResult struct {
	matrix *mat.Dense
	err    error
	index  int
}

// Compress applies the per-channel rank reduction to a normalized RGBA
// image and returns the reassembled result. The three channels are
// decomposed independently in parallel goroutines; they read disjoint
// matrices and the only synchronization point is the join before
// reassembly. Either a fully valid image or an error is returned,
// never a partial result.
func Compress(img *image.RGBA, quality float64) (*image.RGBA, error) {
	red, green, blue, err := ExtractChannels(img)
	if err != nil {
		return nil, err
	}

	height := img.Bounds().Dy()
	width := img.Bounds().Dx()
	k := ComponentCount(quality, height, width)
	zap.S().Debugf("Compressing %dx%d image with %d components (quality %.1f)", height, width, k, quality)

	channels := [3]*mat.Dense{red, green, blue}
	results := make(chan channelResult, len(channels))
	for i := range channels {
		go func(index int, channel *mat.Dense) {
			reduced, errX := ReduceRank(channel, k)
			results <- channelResult{matrix: reduced, err: errX, index: index}
		}(i, channels[i])
	}

	var reduced [3]*mat.Dense
	for range channels {
		result := <-results
		if result.err != nil {
			return nil, fmt.Errorf("channel %d: %w", result.index, result.err)
		}
		reduced[result.index] = result.matrix
	}

	return Reassemble(reduced[0], reduced[1], reduced[2])
}
