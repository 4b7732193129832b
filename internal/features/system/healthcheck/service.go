package system_healthcheck

import (
	"fmt"
	"time"

	"chorey/internal/features/webhooks"
	"chorey/internal/storage"
	cache_utils "chorey/internal/util/cache"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthcheckService struct{}

type HealthStatus struct {
	Status            string          `json:"status"`
	Timestamp         time.Time       `json:"timestamp"`
	Components        map[string]bool `json:"components"`
	Disk              *ResourceUsage  `json:"disk,omitempty"`
	Memory            *ResourceUsage  `json:"memory,omitempty"`
	WebhookQueueDepth *int64          `json:"webhookQueueDepth,omitempty"`
}

type ResourceUsage struct {
	TotalBytes  uint64  `json:"totalBytes"`
	UsedBytes   uint64  `json:"usedBytes"`
	UsedPercent float64 `json:"usedPercent"`
}

func (s *HealthcheckService) GetHealthStatus() *HealthStatus {
	status := &HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]bool),
	}

	databaseHealthy := storage.GetDb().Exec("SELECT 1").Error == nil
	status.Components["database"] = databaseHealthy
	if !databaseHealthy {
		status.Status = "unhealthy"
	}

	cacheHealthy := pingCache() == nil
	status.Components["cache"] = cacheHealthy
	if !cacheHealthy {
		status.Status = "unhealthy"
	}

	if diskUsage, err := disk.Usage("/"); err == nil {
		status.Disk = &ResourceUsage{
			TotalBytes:  diskUsage.Total,
			UsedBytes:   diskUsage.Used,
			UsedPercent: diskUsage.UsedPercent,
		}
	}

	if memoryUsage, err := mem.VirtualMemory(); err == nil {
		status.Memory = &ResourceUsage{
			TotalBytes:  memoryUsage.Total,
			UsedBytes:   memoryUsage.Used,
			UsedPercent: memoryUsage.UsedPercent,
		}
	}

	queueDepth, err := webhooks.GetDispatcher().QueueDepth()
	status.Components["webhookQueue"] = err == nil
	if err == nil {
		status.WebhookQueueDepth = &queueDepth
	}

	return status
}

func pingCache() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache ping panicked: %v", r)
		}
	}()

	cache_utils.TestCacheConnection()
	return nil
}

func (s *HealthcheckService) Describe() string {
	status := s.GetHealthStatus()
	return fmt.Sprintf("status=%s database=%t", status.Status, status.Components["database"])
}
