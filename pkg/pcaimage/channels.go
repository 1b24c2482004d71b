package pcaimage

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"
)

// NormalizeRGB converts any decoded image into a three-channel 8-bit
// RGBA image with bounds anchored at the origin. Paletted, grayscale,
// YCbCr and alpha-carrying inputs all end up as plain RGB; alpha is
// forced opaque.
func NormalizeRGB(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			offset := out.PixOffset(x-bounds.Min.X, y-bounds.Min.Y)
			out.Pix[offset] = uint8(r >> 8)
			out.Pix[offset+1] = uint8(g >> 8)
			out.Pix[offset+2] = uint8(b >> 8)
			out.Pix[offset+3] = 0xFF
		}
	}

	return out
}

// ExtractChannels splits an RGBA image into three independent HxW
// matrices in fixed red, green, blue order. The input must already be
// normalized to three uniform channels (see NormalizeRGB).
func ExtractChannels(img *image.RGBA) (red, green, blue *mat.Dense, err error) {
	height := img.Bounds().Dy()
	width := img.Bounds().Dx()
	if height == 0 || width == 0 {
		return nil, nil, nil, fmt.Errorf("invalid image shape: %dx%d", height, width)
	}

	red = mat.NewDense(height, width, nil)
	green = mat.NewDense(height, width, nil)
	blue = mat.NewDense(height, width, nil)

	minPoint := img.Bounds().Min
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := img.PixOffset(minPoint.X+x, minPoint.Y+y)
			red.Set(y, x, float64(img.Pix[offset]))
			green.Set(y, x, float64(img.Pix[offset+1]))
			blue.Set(y, x, float64(img.Pix[offset+2]))
		}
	}

	return red, green, blue, nil
}
