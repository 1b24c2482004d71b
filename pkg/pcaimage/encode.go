package pcaimage

import (
	"bytes"
	"image"
	"image/jpeg"

	_ "image/png" // Register PNG decoder.

	_ "golang.org/x/image/bmp"  // Register BMP decoder.
	_ "golang.org/x/image/tiff" // Register TIFF decoder.
	_ "golang.org/x/image/webp" // Register WebP decoder.
)

// MinJPEGQuality and MaxJPEGQuality bound the setting handed to the
// final encoder, independent of the rank-budget quality.
const (
	MinJPEGQuality = 10
	MaxJPEGQuality = 95
)

// Decode parses an uploaded byte stream into an image. All formats of
// the upload allow-list (JPEG, PNG, WebP, BMP, TIFF) are registered.
func Decode(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

// JPEGQuality clamps the shared quality percentage into the range the
// JPEG encoder accepts.
func JPEGQuality(quality float64) int {
	q := int(quality)
	if q < MinJPEGQuality {
		q = MinJPEGQuality
	}
	if q > MaxJPEGQuality {
		q = MaxJPEGQuality
	}
	return q
}

// EncodeJPEG runs the reassembled image through the conventional lossy
// byte-stream encoder at the clamped quality.
func EncodeJPEG(img image.Image, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality(quality)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
