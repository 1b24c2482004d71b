package filestore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	base := t.TempDir()
	s, err := New(filepath.Join(base, "uploads"), filepath.Join(base, "downloads"), time.Hour)
	require.NoError(t, err)
	return s
}

func TestSaveUploadAndRemove(t *testing.T) {
	s := newTestStore(t)

	path, err := s.SaveUpload("holiday.PNG", []byte("payload"))
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "upload_")
	assert.Equal(t, ".png", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	s.RemoveUpload(path)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Removing twice must not be an error path that panics or logs fatally.
	s.RemoveUpload(path)
}

func TestSaveUploadWithoutExtension(t *testing.T) {
	s := newTestStore(t)

	path, err := s.SaveUpload("raw-bytes", []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(path))
	s.RemoveUpload(path)
}

func TestSaveOutputAndLookup(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.SaveOutput([]byte{0xFF, 0xD8}, Entry{
		Mode:           "pca",
		OriginalSize:   1000,
		CompressedSize: 2,
	})
	require.NoError(t, err)
	assert.Contains(t, entry.Filename, "compressed_")
	assert.Equal(t, ".jpg", filepath.Ext(entry.Filename))
	assert.False(t, entry.CreatedAt.IsZero())

	path, found, ok := s.Lookup(entry.Filename)
	require.True(t, ok)
	assert.Equal(t, entry.Filename, found.Filename)
	assert.Equal(t, int64(1000), found.OriginalSize)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, data)

	// Sidecar sits next to the output.
	_, err = os.Stat(path + sidecarSuffix)
	assert.NoError(t, err)

	assert.Equal(t, 1, s.OutputCount())
}

func TestLookupRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"../etc/passwd", "a/b.jpg", "unknown.jpg", ""} {
		_, _, ok := s.Lookup(name)
		assert.False(t, ok, "name=%q", name)
	}
}

func TestFlushRemovesFiles(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.SaveOutput([]byte{0x01}, Entry{Mode: "jpeg"})
	require.NoError(t, err)
	path, _, ok := s.Lookup(entry.Filename)
	require.True(t, ok)

	s.Flush()

	_, _, ok = s.Lookup(entry.Filename)
	assert.False(t, ok)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path + sidecarSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestRestoreFromSidecars(t *testing.T) {
	base := t.TempDir()
	uploadDir := filepath.Join(base, "uploads")
	downloadDir := filepath.Join(base, "downloads")

	first, err := New(uploadDir, downloadDir, time.Hour)
	require.NoError(t, err)
	entry, err := first.SaveOutput([]byte{0x02}, Entry{Mode: "pca", OriginalSize: 50, CompressedSize: 1})
	require.NoError(t, err)

	// A second store over the same directories sees the survivor.
	second, err := New(uploadDir, downloadDir, time.Hour)
	require.NoError(t, err)
	_, restored, ok := second.Lookup(entry.Filename)
	require.True(t, ok)
	assert.Equal(t, int64(50), restored.OriginalSize)
	assert.Equal(t, "pca", restored.Mode)
}

func TestRestoreDropsOrphanedSidecar(t *testing.T) {
	base := t.TempDir()
	downloadDir := filepath.Join(base, "downloads")
	require.NoError(t, os.MkdirAll(downloadDir, 0o750))

	sidecar := filepath.Join(downloadDir, "compressed_dead.jpg"+sidecarSuffix)
	require.NoError(t, os.WriteFile(sidecar, []byte(`{"filename":"compressed_dead.jpg"}`), 0o640))

	s, err := New(filepath.Join(base, "uploads"), downloadDir, time.Hour)
	require.NoError(t, err)

	_, _, ok := s.Lookup("compressed_dead.jpg")
	assert.False(t, ok)
	_, err = os.Stat(sidecar)
	assert.True(t, os.IsNotExist(err))
}

func TestCheckWritable(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.CheckWritable())
}
