package controllers

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/pixelpress/pixelpress/cmd/pixelpress/helpers"
	"github.com/pixelpress/pixelpress/cmd/pixelpress/services"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"
	"golang.org/x/crypto/sha3"
)

type statusReport struct { //nolint:govet
	OS           string
	Arch         string
	Memory       *mem.VirtualMemoryStat
	CPUInfo      []cpu.InfoStat
	Host         *host.InfoStat
	Load         *load.AvgStat
	Goroutines   int
	OutputsReady int
}

// StatusHandler reports anonymized system information alongside the
// number of downloadable outputs.
func StatusHandler(c *gin.Context) {
	report := statusReport{
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		Goroutines:   runtime.NumGoroutine(),
		OutputsReady: services.Store().OutputCount(),
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		report.Memory = vmStat
	}
	if cpuInfo, err := cpu.Info(); err == nil {
		// Strip tailing whitespace from CPUInfo.modelName
		for i := 0; i < len(cpuInfo); i++ {
			cpuInfo[i].ModelName = strings.Trim(cpuInfo[i].ModelName, " ")
		}
		report.CPUInfo = cpuInfo
	}
	if hostInfo, err := host.Info(); err == nil {
		// remove PII
		hostNameHasher := sha3.New512()
		hostNameHasher.Write([]byte(hostInfo.Hostname))
		hostInfo.Hostname = fmt.Sprintf("%x", hostNameHasher.Sum(nil))

		hostIDHasher := sha3.New512()
		hostIDHasher.Write([]byte(hostInfo.HostID))
		hostInfo.HostID = fmt.Sprintf("%x", hostIDHasher.Sum(nil))
		report.Host = hostInfo
	}
	if loadInfo, err := load.Avg(); err == nil {
		report.Load = loadInfo
	}

	body, err := json.Marshal(report)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
