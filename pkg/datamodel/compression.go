// Package datamodel holds the types shared between the REST API layer
// and the compression service.
package datamodel

import (
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// Mode selects the compression pipeline for one request.
type Mode string

const (
	// ModePCA runs the per-channel rank reduction before the JPEG
	// encode. This is the default.
	ModePCA Mode = "pca"
	// ModeJPEG skips the rank reduction and only re-encodes at the
	// clamped JPEG quality.
	ModeJPEG Mode = "jpeg"
)

// ParseMode maps the form value onto a Mode; the empty string selects
// the default.
func ParseMode(value string) (Mode, bool) {
	switch Mode(strings.ToLower(value)) {
	case ModePCA, "":
		return ModePCA, true
	case ModeJPEG:
		return ModeJPEG, true
	}
	return "", false
}

// AllowedExtensions is the upload allow-list. Matching is
// case-insensitive on the file extension.
var AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".tiff"}

// ExtensionAllowed reports whether the uploaded filename carries an
// accepted image extension.
func ExtensionAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return slices.Contains(AllowedExtensions, ext)
}

// CompressionResult describes one finished compression, as returned by
// the upload endpoint and persisted next to the output file.
type CompressionResult struct {
	Filename         string  `json:"filename"`
	DownloadPath     string  `json:"download_path"`
	Mode             Mode    `json:"mode"`
	OriginalSize     int64   `json:"original_size"`
	CompressedSize   int64   `json:"compressed_size"`
	CompressionRatio float64 `json:"compression_ratio"`
	CacheHit         bool    `json:"cache_hit"`
}

// CompressionRatio returns the saved fraction in percent, rounded to
// one decimal. A negative value means the output grew.
func CompressionRatio(originalSize, compressedSize int64) float64 {
	if originalSize <= 0 {
		return 0
	}
	ratio := float64(originalSize-compressedSize) / float64(originalSize) * 100
	return math.Round(ratio*10) / 10
}
