package main

/*
Important principles: stateless as much as possible

Incoming REST call --> http.go
One controller per route parses the parameters (controllers/), a single
service function runs the compression pipeline without touching the
request (services/), and the result is bundled into a return JSON.
*/

import (
	"net/http"
	"os"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/pixelpress/pixelpress/cmd/pixelpress/services"
	"github.com/pixelpress/pixelpress/internal"
	"github.com/pixelpress/pixelpress/pkg/filestore"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var buildtime string

func main() {
	initLogging()
	zap.S().Infof("This is pixelpress build date: %s", buildtime)

	internal.Initfgtrace()
	initPrometheus()

	uploadDir, err := internal.GetAsString("UPLOAD_DIR", false, "static/uploads")
	if err != nil {
		zap.S().Fatalf("%s", err)
	}
	downloadDir, err := internal.GetAsString("DOWNLOAD_DIR", false, "static/downloads")
	if err != nil {
		zap.S().Fatalf("%s", err)
	}
	retentionHours, err := internal.GetAsInt("DOWNLOAD_RETENTION_HOURS", false, 24)
	if err != nil {
		zap.S().Fatalf("%s", err)
	}
	cacheMegabytes, err := internal.GetAsInt32("RESULT_CACHE_MEGABYTES", false, 128)
	if err != nil {
		zap.S().Fatalf("%s", err)
	}
	maxUploadMegabytes, err := internal.GetAsInt32("MAX_UPLOAD_MEGABYTES", false, 10)
	if err != nil {
		zap.S().Fatalf("%s", err)
	}
	apiAddress, err := internal.GetAsString("API_ADDRESS", false, ":80")
	if err != nil {
		zap.S().Fatalf("%s", err)
	}
	version, err := internal.GetAsString("VERSION", false, "1")
	if err != nil {
		zap.S().Fatalf("%s", err)
	}

	store, err := filestore.New(uploadDir, downloadDir, time.Duration(retentionHours)*time.Hour)
	if err != nil {
		zap.S().Fatalf("Failed to initialize storage: %s", err)
	}
	zap.S().Debugf("Storage initialized..")

	internal.InitCache(int(cacheMegabytes), retentionHours*3600)
	services.Init(store)
	zap.S().Debugf("Cache initialized..")

	initHealthCheck(store)
	zap.S().Debugf("Healthcheck initialized..")

	SetupRestAPI(apiAddress, version, int64(maxUploadMegabytes)*1024*1024)
	zap.S().Infof("REST API initialized on %s", apiAddress)

	shutdown := internal.NewGracefulShutdown(
		func() error {
			// Outputs stay on disk so a restart keeps serving them;
			// only the log buffer needs flushing.
			return zap.S().Sync()
		})
	shutdown.Wait()

	select {} // block forever
}

func initLogging() {
	var logLevel = os.Getenv("LOGGING_LEVEL")
	encoderConfig := ecszap.NewDefaultEncoderConfig()
	var core zapcore.Core
	switch logLevel {
	case "DEVELOPMENT":
		core = ecszap.NewCore(encoderConfig, os.Stdout, zap.DebugLevel)
	default:
		core = ecszap.NewCore(encoderConfig, os.Stdout, zap.InfoLevel)
	}
	logger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(logger)
}

func initPrometheus() {
	metricsPath := "/metrics"
	metricsPort := ":2112"
	zap.S().Debugf("Setting up metrics %s %v", metricsPath, metricsPort)

	http.Handle(metricsPath, promhttp.Handler())
	go func() {
		/* #nosec G114 */
		err := http.ListenAndServe(metricsPort, nil)
		if err != nil {
			zap.S().Errorf("Error starting metrics: %s", err)
		}
	}()
}

func initHealthCheck(store *filestore.Store) {
	zap.S().Debugf("Setting up healthcheck")

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(1000))
	health.AddReadinessCheck("storage-writable", store.CheckWritable)
	go func() {
		/* #nosec G114 */
		err := http.ListenAndServe("0.0.0.0:8086", health)
		if err != nil {
			zap.S().Errorf("Error starting healthcheck: %s", err)
		}
	}()
}
