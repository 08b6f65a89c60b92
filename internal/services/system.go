package services

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemStatus struct {
	CapturedAt        time.Time `json:"capturedAt"`
	Database          string    `json:"database"`
	Goroutines        int       `json:"goroutines"`
	ProcessRSSBytes   int64     `json:"processRssBytes"`
	ProcessCPULoad    float64   `json:"processCpuLoad"`
	SystemMemoryTotal int64     `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64     `json:"systemMemoryUsedBytes"`
	SystemCPULoad     float64   `json:"systemCpuLoad"`
	DiskTotalBytes    int64     `json:"diskTotalBytes"`
	DiskUsedBytes     int64     `json:"diskUsedBytes"`
	ActivityClients   int       `json:"activityClients"`
}

// CaptureSystemStatus samples host and process usage. Probe failures leave
// the matching fields at zero.
func CaptureSystemStatus(ctx context.Context, db Pinger, hub *ActivityHub, diskPath string) SystemStatus {
	status := SystemStatus{
		CapturedAt: time.Now().UTC(),
		Database:   "ok",
		Goroutines: runtime.NumGoroutine(),
	}
	if err := db.Ping(ctx); err != nil {
		status.Database = "unavailable"
	}
	if hub != nil {
		status.ActivityClients = hub.Clients()
	}

	if proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if rss, err := proc.MemoryInfoWithContext(ctx); err == nil && rss != nil {
			status.ProcessRSSBytes = int64(rss.RSS)
		}
		if perc, err := proc.CPUPercentWithContext(ctx); err == nil {
			status.ProcessCPULoad = perc / 100.0
		}
	}
	if memStat, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		status.SystemMemoryTotal = int64(memStat.Total)
		status.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	if sysCPU, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(sysCPU) > 0 {
		status.SystemCPULoad = sysCPU[0] / 100.0
	}
	diskStat, err := disk.UsageWithContext(ctx, diskPath)
	if err != nil {
		diskStat, err = disk.UsageWithContext(ctx, "/")
	}
	if err == nil && diskStat != nil {
		status.DiskTotalBytes = int64(diskStat.Total)
		status.DiskUsedBytes = int64(diskStat.Used)
	}
	return status
}
