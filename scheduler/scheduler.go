// Package scheduler implements background job scheduling
package scheduler

import (
	"log"
	"time"

	"cityweather.app/config"
	"cityweather.app/service"
)

// Scheduler periodically refreshes persisted weather summaries so the
// listing annotations do not go stale between detail visits. Coordinates
// stored with each summary make the refresh independent of the directory.
type Scheduler struct {
	config         *config.Config
	summaryCache   *service.SummaryCache
	weatherService service.WeatherServiceInterface
}

// NewScheduler creates and configures a new task scheduler
func NewScheduler(
	config *config.Config,
	summaryCache *service.SummaryCache,
	weatherService service.WeatherServiceInterface,
) *Scheduler {
	return &Scheduler{
		config:         config,
		summaryCache:   summaryCache,
		weatherService: weatherService,
	}
}

// Start begins the scheduler's operations
func (s *Scheduler) Start() {
	interval := time.Duration(s.config.Scheduler.RefreshIntervalMinutes) * time.Minute
	go s.scheduleInterval(interval, s.refreshSummaries)
}

func (s *Scheduler) scheduleInterval(interval time.Duration, job func()) {
	job()

	ticker := time.NewTicker(interval)
	for range ticker.C {
		job()
	}
}

func (s *Scheduler) refreshSummaries() {
	for name := range s.summaryCache.All() {
		lat, lon, ok := s.summaryCache.Coordinates(name)
		if !ok {
			continue
		}

		// GetDetail writes the refreshed summary back through the cache.
		if _, err := s.weatherService.GetDetail(lat, lon, name); err != nil {
			log.Printf("Error refreshing summary for %s: %v\n", name, err)
		}
	}
}
