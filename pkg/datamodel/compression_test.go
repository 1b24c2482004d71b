package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionAllowed(t *testing.T) {
	validInputOutputMap := map[string]bool{
		"photo.jpg":     true,
		"photo.JPG":     true,
		"photo.jpeg":    true,
		"photo.png":     true,
		"photo.webp":    true,
		"photo.bmp":     true,
		"photo.tiff":    true,
		"photo.gif":     false,
		"photo.tif":     false,
		"photo":         false,
		"photo.jpg.exe": false,
		"":              false,
	}

	for filename, expected := range validInputOutputMap {
		if got := ExtensionAllowed(filename); got != expected {
			t.Errorf("ExtensionAllowed(%q) = %v, expected %v", filename, got, expected)
		}
	}
}

func TestParseMode(t *testing.T) {
	mode, ok := ParseMode("")
	assert.True(t, ok)
	assert.Equal(t, ModePCA, mode)

	mode, ok = ParseMode("PCA")
	assert.True(t, ok)
	assert.Equal(t, ModePCA, mode)

	mode, ok = ParseMode("jpeg")
	assert.True(t, ok)
	assert.Equal(t, ModeJPEG, mode)

	_, ok = ParseMode("zip")
	assert.False(t, ok)
}

func TestCompressionRatio(t *testing.T) {
	assert.Equal(t, 50.0, CompressionRatio(1000, 500))
	assert.Equal(t, 33.3, CompressionRatio(3000, 2000))
	assert.Equal(t, 0.0, CompressionRatio(0, 500))
	assert.Equal(t, -10.0, CompressionRatio(1000, 1100))
}
