// Package filestore owns the upload and download directories of the
// compression service: generated filenames, sidecar metadata and the
// TTL-based cleanup of produced outputs.
package filestore

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const sidecarSuffix = ".json"

// Entry is the metadata kept per produced output, persisted as a JSON
// sidecar next to the file so a restarted process keeps serving
// outputs that survived on disk.
type Entry struct {
	Filename       string    `json:"filename"`
	Mode           string    `json:"mode"`
	OriginalSize   int64     `json:"original_size"`
	CompressedSize int64     `json:"compressed_size"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store manages one upload directory (transient request payloads) and
// one download directory (produced outputs with expiry).
type Store struct {
	registry    *cache.Cache
	uploadDir   string
	downloadDir string
}

// New creates both directories if needed, restores registry state from
// sidecar files and starts expiring outputs after ttl.
func New(uploadDir, downloadDir string, ttl time.Duration) (*Store, error) {
	for _, dir := range []string{uploadDir, downloadDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("unable to create directory %s: %w", dir, err)
		}
	}

	s := &Store{
		uploadDir:   uploadDir,
		downloadDir: downloadDir,
		registry:    cache.New(ttl, 10*time.Minute),
	}
	s.registry.OnEvicted(
		func(filename string, _ interface{}) {
			s.removeOutput(filename)
		})

	if err := s.restore(); err != nil {
		return nil, err
	}
	return s, nil
}

// restore re-registers outputs whose sidecar and data file are both
// still present. Sidecars pointing at vanished files are dropped.
func (s *Store) restore() error {
	entries, err := os.ReadDir(s.downloadDir)
	if err != nil {
		return fmt.Errorf("unable to read download directory: %w", err)
	}

	restored := 0
	for _, dirEntry := range entries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), sidecarSuffix) {
			continue
		}
		sidecarPath := filepath.Join(s.downloadDir, dirEntry.Name())
		data, errX := os.ReadFile(sidecarPath)
		if errX != nil {
			zap.S().Warnf("Skipping unreadable sidecar %s: %s", dirEntry.Name(), errX)
			continue
		}

		var entry Entry
		if errX = json.Unmarshal(data, &entry); errX != nil {
			zap.S().Warnf("Skipping invalid sidecar %s: %s", dirEntry.Name(), errX)
			continue
		}

		if _, errX = os.Stat(filepath.Join(s.downloadDir, entry.Filename)); errX != nil {
			zap.S().Infof("Removing orphaned sidecar %s", dirEntry.Name())
			_ = os.Remove(sidecarPath)
			continue
		}

		s.registry.SetDefault(entry.Filename, entry)
		restored++
	}

	if restored > 0 {
		zap.S().Infof("Restored %d outputs from %s", restored, s.downloadDir)
	}
	return nil
}

// SaveUpload writes the raw request payload under a generated name and
// returns its path. Uploads are transient; the caller removes them once
// compression finished or failed.
func (s *Store) SaveUpload(originalFilename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext == "" {
		ext = ".jpg"
	}
	name := "upload_" + generatedHex() + ext
	path := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("unable to store upload: %w", err)
	}
	return path, nil
}

// RemoveUpload discards a transient upload.
func (s *Store) RemoveUpload(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		zap.S().Warnf("Unable to remove upload %s: %s", path, err)
	}
}

// SaveOutput writes produced bytes plus their sidecar under a generated
// compressed_<id>.jpg name and registers the output for download.
func (s *Store) SaveOutput(data []byte, entry Entry) (Entry, error) {
	entry.Filename = "compressed_" + generatedHex() + ".jpg"
	entry.CreatedAt = time.Now().UTC()

	path := filepath.Join(s.downloadDir, entry.Filename)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return Entry{}, fmt.Errorf("unable to store output: %w", err)
	}

	sidecar, err := json.Marshal(entry)
	if err != nil {
		_ = os.Remove(path)
		return Entry{}, fmt.Errorf("unable to marshal sidecar: %w", err)
	}
	if err = os.WriteFile(path+sidecarSuffix, sidecar, 0o640); err != nil {
		_ = os.Remove(path)
		return Entry{}, fmt.Errorf("unable to store sidecar: %w", err)
	}

	s.registry.SetDefault(entry.Filename, entry)
	return entry, nil
}

// Lookup resolves a download filename to its on-disk path. Only names
// registered by SaveOutput resolve; path traversal cannot reach this.
func (s *Store) Lookup(filename string) (string, Entry, bool) {
	if filename != filepath.Base(filename) {
		return "", Entry{}, false
	}
	value, found := s.registry.Get(filename)
	if !found {
		return "", Entry{}, false
	}
	entry, ok := value.(Entry)
	if !ok {
		return "", Entry{}, false
	}
	return filepath.Join(s.downloadDir, filename), entry, true
}

// OutputCount reports how many outputs are currently downloadable.
func (s *Store) OutputCount() int {
	return s.registry.ItemCount()
}

// CheckWritable probes the download directory; used as the readiness
// check of the service.
func (s *Store) CheckWritable() error {
	probe := filepath.Join(s.downloadDir, ".writable-probe")
	if err := os.WriteFile(probe, []byte("probe"), 0o640); err != nil {
		return err
	}
	return os.Remove(probe)
}

// Flush drops every registered output and its files immediately.
func (s *Store) Flush() {
	// Delete (unlike cache.Flush) fires the eviction callback, which is
	// what removes the files.
	for filename := range s.registry.Items() {
		s.registry.Delete(filename)
	}
}

func (s *Store) removeOutput(filename string) {
	path := filepath.Join(s.downloadDir, filename)
	for _, target := range []string{path, path + sidecarSuffix} {
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			zap.S().Warnf("Unable to remove expired output %s: %s", target, err)
		}
	}
	zap.S().Debugf("Expired output %s removed", filename)
}

func generatedHex() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
