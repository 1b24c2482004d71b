package internal

import (
	"github.com/EagleChen/mapmutex"
	"github.com/coocood/freecache"
	"go.uber.org/zap"
)

var resultCache *freecache.Cache
var resultExpirySeconds int
var keyedMutex *mapmutex.Mutex

// InitCache sets up the in-memory result cache holding recently encoded
// outputs, plus the per-key mutex map guarding against concurrent
// duplicate compressions of the same content.
func InitCache(sizeMegabytes int, expirySeconds int) {
	resultCache = freecache.NewCache(sizeMegabytes * 1024 * 1024)
	resultExpirySeconds = expirySeconds
	keyedMutex = mapmutex.NewCustomizedMapMutex(800, 100000000, 10, 1.1, 0.2) // default configs: maxDelay:  100000000, // 0.1 second baseDelay: 10,        // 10 nanosecond
}

// GetCachedResult looks up previously encoded output bytes by content key.
func GetCachedResult(key string) (value []byte, cached bool) {
	if resultCache == nil {
		return nil, false
	}
	value, err := resultCache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return value, true
}

// SetCachedResult stores encoded output bytes under the content key.
// Entries larger than the cache accepts are silently skipped.
func SetCachedResult(key string, value []byte) {
	if resultCache == nil {
		return
	}
	err := resultCache.Set([]byte(key), value, resultExpirySeconds)
	if err != nil {
		zap.S().Debugf("Result too large for cache (%d bytes): %s", len(value), err)
	}
}

// TryLockKey attempts to take the per-content lock. Callers that fail
// to acquire it should compute anyway rather than block the request.
func TryLockKey(key string) bool {
	if keyedMutex == nil {
		return true
	}
	return keyedMutex.TryLock(key)
}

// UnlockKey releases the per-content lock taken via TryLockKey.
func UnlockKey(key string) {
	if keyedMutex == nil {
		return
	}
	keyedMutex.Unlock(key)
}
