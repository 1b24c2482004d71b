package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCacheRoundtrip(t *testing.T) {
	InitCache(1, 60)

	_, cached := GetCachedResult("missing")
	assert.False(t, cached)

	SetCachedResult("some-key", []byte{0xFF, 0xD8, 0xFF})
	value, cached := GetCachedResult("some-key")
	require.True(t, cached)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, value)
}

func TestResultCacheUninitialized(t *testing.T) {
	resultCache = nil
	keyedMutex = nil

	_, cached := GetCachedResult("key")
	assert.False(t, cached)
	SetCachedResult("key", []byte("value"))

	// Without an initialized mutex map the lock degrades to a no-op.
	assert.True(t, TryLockKey("key"))
	UnlockKey("key")
}

func TestTryLockKey(t *testing.T) {
	InitCache(1, 60)

	require.True(t, TryLockKey("content-hash"))
	UnlockKey("content-hash")
	assert.True(t, TryLockKey("content-hash"), "lock must be retakable after unlock")
	UnlockKey("content-hash")
}
