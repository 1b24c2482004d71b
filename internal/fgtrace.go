package internal

import (
	"net/http"
	"time"

	"github.com/felixge/fgtrace"
	"go.uber.org/zap"
)

// Initfgtrace exposes the fgtrace debug handler on :1337 when
// DEBUG_ENABLE_FGTRACE is set to true.
func Initfgtrace() {
	go func() {
		enabled, err := GetAsBool("DEBUG_ENABLE_FGTRACE", false, false)
		if err != nil {
			zap.S().Errorf("%s", err)
			return
		}
		if !enabled {
			zap.S().Debugf("Debug Tracing is disabled. Set DEBUG_ENABLE_FGTRACE to true to enable.")
			return
		}

		zap.S().Warnf("fgtrace is enabled. This might hurt performance !. Set DEBUG_ENABLE_FGTRACE to false to disable.")
		http.DefaultServeMux.Handle("/debug/fgtrace", fgtrace.Config{})
		server := &http.Server{
			Addr:              ":1337",
			ReadHeaderTimeout: 3 * time.Second,
		}
		errX := server.ListenAndServe()
		if errX != nil {
			zap.S().Errorf("Failed to start fgtrace: %s", errX)
		}
	}()
}
