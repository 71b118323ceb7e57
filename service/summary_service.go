package service

import (
	"log/slog"
	"sync"

	"cityweather.app/errors"
	"cityweather.app/models"
	"cityweather.app/repository"
)

// SummaryCacheInterface defines the summary cache contract: loaded once at
// startup, persisted on every write, read by the listing flow.
type SummaryCacheInterface interface {
	Get(cityName string) (models.WeatherSummary, bool)
	Set(cityName string, lat, lon float64, summary models.WeatherSummary) error
	All() map[string]models.WeatherSummary
}

// SummaryCache is the process-wide city-name to weather-summary mapping.
// Entries are always Celsius; the gateway converts before any value reaches
// this layer. Growth is unbounded, a known limitation.
type SummaryCache struct {
	mu      sync.RWMutex
	entries map[string]models.WeatherSummary
	coords  map[string][2]float64
	repo    *repository.SummaryRepository
}

// NewSummaryCache creates an empty cache over the repository.
func NewSummaryCache(repo *repository.SummaryRepository) *SummaryCache {
	return &SummaryCache{
		entries: make(map[string]models.WeatherSummary),
		coords:  make(map[string][2]float64),
		repo:    repo,
	}
}

// Load hydrates the cache from persisted state, called once at startup. A
// corrupt store is discarded: the cache starts empty rather than failing.
func (c *SummaryCache) Load() error {
	rows, err := c.repo.LoadAll()
	if err != nil {
		stateErr := errors.NewPersistedStateError("discarding unreadable summary store", err)
		slog.Warn("Starting with an empty summary cache", "error", stateErr)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range rows {
		row := &rows[i]
		c.entries[row.CityName] = row.Summary()
		c.coords[row.CityName] = [2]float64{row.Lat, row.Lon}
	}
	slog.Info("Summary cache loaded", "entries", len(c.entries))
	return nil
}

// Get returns the cached summary for a city name.
func (c *SummaryCache) Get(cityName string) (models.WeatherSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	summary, ok := c.entries[cityName]
	return summary, ok
}

// Set overwrites the entry and persists it immediately. The in-memory map
// keeps the new value even when persistence fails, matching last-write-wins
// semantics; the error is surfaced for logging.
func (c *SummaryCache) Set(cityName string, lat, lon float64, summary models.WeatherSummary) error {
	c.mu.Lock()
	c.entries[cityName] = summary
	c.coords[cityName] = [2]float64{lat, lon}
	c.mu.Unlock()

	return c.repo.Upsert(&models.CitySummary{
		CityName: cityName,
		TempMinC: summary.TempMinC,
		TempMaxC: summary.TempMaxC,
		Icon:     summary.Icon,
		Lat:      lat,
		Lon:      lon,
	})
}

// All returns a copy of the full mapping, for the listing render step.
func (c *SummaryCache) All() map[string]models.WeatherSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]models.WeatherSummary, len(c.entries))
	for name, summary := range c.entries {
		result[name] = summary
	}
	return result
}

// Coordinates returns the stored location for a cached city, used by the
// background refresher.
func (c *SummaryCache) Coordinates(cityName string) (lat, lon float64, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	coords, ok := c.coords[cityName]
	return coords[0], coords[1], ok
}
