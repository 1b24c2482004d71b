package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/pixelpress/pixelpress/cmd/pixelpress/controllers"
	"github.com/pixelpress/pixelpress/cmd/pixelpress/models"
	"go.uber.org/zap"
)

// SetupRestAPI initializes the REST API and starts listening
func SetupRestAPI(address string, version string, maxUploadBytes int64) {
	router := newRouter(version, maxUploadBytes)

	go func() {
		err := router.Run(address)
		if err != nil {
			zap.S().Fatalf("Failed to start REST API: %s", err)
		}
	}()
}

func newRouter(version string, maxUploadBytes int64) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Add a ginzap middleware, which:
	//   - Logs all requests, like a combined access and error log.
	//   - Logs to stdout.
	//   - RFC3339 with UTC time format.
	router.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))

	// Logs all panic to error log
	//   - stack means whether output the stack info.
	router.Use(ginzap.RecoveryWithZap(zap.L(), true))

	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Keep a full upload plus multipart overhead in memory before
	// spilling to disk.
	router.MaxMultipartMemory = maxUploadBytes
	controllers.MaxUploadBytes = maxUploadBytes
	router.Use(limitBodySize(maxUploadBytes))

	banner := models.ServiceBanner{Status: "healthy", Service: "Image Compression API", Version: version}
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, banner)
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, banner)
	})

	router.POST("/upload", controllers.UploadHandler)
	router.GET("/download/:filename", controllers.DownloadHandler)
	router.GET("/status", controllers.StatusHandler)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found", "status": http.StatusNotFound})
	})

	return router
}

// limitBodySize rejects oversized request bodies before the multipart
// parser buffers them. Go's MaxBytesReader handles the slow path of
// chunked uploads without a Content-Length.
func limitBodySize(maxBytes int64) gin.HandlerFunc {
	// Multipart framing adds a little on top of the file itself.
	limit := maxBytes + 64*1024
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(
				http.StatusRequestEntityTooLarge,
				gin.H{"error": "File too large", "status": http.StatusRequestEntityTooLarge, "limit": maxBytes})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
