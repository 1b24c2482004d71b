package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pixelpress/pixelpress/internal"
	"github.com/pixelpress/pixelpress/pkg/datamodel"
	"github.com/pixelpress/pixelpress/pkg/filestore"
	"github.com/pixelpress/pixelpress/pkg/pcaimage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// ErrNotAnImage marks payloads that could not be decoded as a
// supported raster format; the API layer maps it to a 400.
var ErrNotAnImage = errors.New("payload is not a decodable image")

var store *filestore.Store

var (
	compressionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pixelpress_compressions_total",
		Help: "Finished compression requests by mode and outcome.",
	}, []string{"mode", "outcome"})
	compressionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pixelpress_compression_duration_seconds",
		Help:    "Wall time of one compression call including encode.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})
	bytesInTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pixelpress_bytes_in_total",
		Help: "Raw upload bytes accepted.",
	})
	bytesOutTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pixelpress_bytes_out_total",
		Help: "Encoded output bytes produced.",
	})
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pixelpress_result_cache_hits_total",
		Help: "Uploads answered from the result cache.",
	})
)

// Init wires the storage collaborator; must run before any request.
func Init(s *filestore.Store) {
	store = s
}

// Store exposes the wired filestore to the controllers.
func Store() *filestore.Store {
	return store
}

// CompressUpload runs one full compression: dedup-cache lookup,
// decode, normalize, per-channel rank reduction (or plain re-encode in
// jpeg mode), JPEG encode and storage of the downloadable output.
func CompressUpload(originalFilename string, data []byte, quality float64, mode datamodel.Mode) (datamodel.CompressionResult, error) {
	timer := prometheus.NewTimer(compressionDuration)
	defer timer.ObserveDuration()
	bytesInTotal.Add(float64(len(data)))

	key := internal.ContentKey(data, []byte(mode), []byte(strconv.FormatFloat(quality, 'f', -1, 64)))

	encoded, cacheHit := internal.GetCachedResult(key)
	if !cacheHit {
		// The per-key lock keeps concurrent identical uploads from
		// computing the same decomposition twice. Failing to take it is
		// not an error; computing anyway is always correct.
		if internal.TryLockKey(key) {
			defer internal.UnlockKey(key)
			// A concurrent request may have finished while we waited.
			encoded, cacheHit = internal.GetCachedResult(key)
		}
	}

	if !cacheHit {
		var err error
		encoded, err = compressBytes(originalFilename, data, quality, mode)
		if err != nil {
			compressionsTotal.WithLabelValues(string(mode), "error").Inc()
			return datamodel.CompressionResult{}, err
		}
		internal.SetCachedResult(key, encoded)
	} else {
		cacheHitsTotal.Inc()
	}

	entry, err := store.SaveOutput(encoded, filestore.Entry{
		Mode:           string(mode),
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(encoded)),
	})
	if err != nil {
		compressionsTotal.WithLabelValues(string(mode), "error").Inc()
		return datamodel.CompressionResult{}, err
	}

	bytesOutTotal.Add(float64(len(encoded)))
	compressionsTotal.WithLabelValues(string(mode), "success").Inc()

	return datamodel.CompressionResult{
		Filename:         entry.Filename,
		DownloadPath:     "/download/" + entry.Filename,
		Mode:             mode,
		OriginalSize:     entry.OriginalSize,
		CompressedSize:   entry.CompressedSize,
		CompressionRatio: datamodel.CompressionRatio(entry.OriginalSize, entry.CompressedSize),
		CacheHit:         cacheHit,
	}, nil
}

// compressBytes is the stateless middle of the pipeline: upload bytes
// in, encoded JPEG bytes out. The transient upload copy mirrors the
// original-file bookkeeping of the service and is always discarded.
func compressBytes(originalFilename string, data []byte, quality float64, mode datamodel.Mode) ([]byte, error) {
	uploadPath, err := store.SaveUpload(originalFilename, data)
	if err != nil {
		return nil, err
	}
	defer store.RemoveUpload(uploadPath)

	img, format, err := pcaimage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotAnImage, err)
	}
	zap.S().Debugf("Decoded %s upload (%d bytes)", format, len(data))

	normalized := pcaimage.NormalizeRGB(img)

	switch mode {
	case datamodel.ModePCA:
		compressed, errX := pcaimage.Compress(normalized, quality)
		if errX != nil {
			return nil, errX
		}
		return pcaimage.EncodeJPEG(compressed, quality)
	case datamodel.ModeJPEG:
		return pcaimage.EncodeJPEG(normalized, quality)
	default:
		return nil, fmt.Errorf("unknown compression mode: %s", mode)
	}
}

// ResolveDownload maps a requested download name to its path and
// metadata.
func ResolveDownload(filename string) (path string, entry filestore.Entry, ok bool) {
	return store.Lookup(filename)
}
