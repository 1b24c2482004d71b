package models

import "github.com/pixelpress/pixelpress/pkg/datamodel"

// UploadResponse is the JSON body of a successful compression.
type UploadResponse struct {
	Success          bool           `json:"success"`
	Message          string         `json:"message"`
	DownloadPath     string         `json:"download_path"`
	Filename         string         `json:"filename"`
	Mode             datamodel.Mode `json:"mode"`
	OriginalSize     int64          `json:"original_size"`
	CompressedSize   int64          `json:"compressed_size"`
	CompressionRatio float64        `json:"compression_ratio"`
}

// ServiceBanner is returned by the index and health endpoints.
type ServiceBanner struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

// NewUploadResponse maps a compression result onto the wire format.
func NewUploadResponse(result datamodel.CompressionResult) UploadResponse {
	return UploadResponse{
		Success:          true,
		Message:          "Image compressed successfully!",
		DownloadPath:     result.DownloadPath,
		Filename:         result.Filename,
		Mode:             result.Mode,
		OriginalSize:     result.OriginalSize,
		CompressedSize:   result.CompressedSize,
		CompressionRatio: result.CompressionRatio,
	}
}
