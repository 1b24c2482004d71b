package pcaimage

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Reassemble clips three reconstructed channel matrices to [0, 255],
// rounds to 8-bit intensities and interleaves them back into an RGBA
// image. Out-of-range values are truncated, never wrapped or
// normalized; they are expected artifacts of the reconstruction.
func Reassemble(red, green, blue *mat.Dense) (*image.RGBA, error) {
	height, width := red.Dims()
	for _, channel := range []*mat.Dense{green, blue} {
		h, w := channel.Dims()
		if h != height || w != width {
			return nil, fmt.Errorf("channel dimension mismatch: %dx%d vs %dx%d", height, width, h, w)
		}
	}
	if height == 0 || width == 0 {
		return nil, fmt.Errorf("invalid image shape: %dx%d", height, width)
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	channels := [3]*mat.Dense{red, green, blue}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := out.PixOffset(x, y)
			for c, channel := range channels {
				out.Pix[offset+c] = clipToUint8(channel.At(y, x))
			}
			out.Pix[offset+3] = 0xFF
		}
	}

	return out, nil
}

func clipToUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
