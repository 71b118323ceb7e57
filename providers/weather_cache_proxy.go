package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cityweather.app/metrics"
	"cityweather.app/models"
)

// WeatherCacheProxy decorates a WeatherProvider with a short-TTL
// read-through cache keyed by rounded coordinates. Hits and misses are
// recorded per cache backend.
type WeatherCacheProxy struct {
	provider WeatherProvider
	cache    Cache
	ttl      time.Duration
	metrics  *metrics.CacheMetrics
}

// NewWeatherCacheProxy wraps the provider with the given cache backend
func NewWeatherCacheProxy(provider WeatherProvider, cache Cache, ttl time.Duration, cacheType string) *WeatherCacheProxy {
	return &WeatherCacheProxy{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		metrics:  metrics.NewCacheMetrics(cacheType),
	}
}

// FetchCurrentWeather serves the snapshot from cache when fresh, otherwise
// delegates to the underlying provider and stores the result.
func (p *WeatherCacheProxy) FetchCurrentWeather(lat, lon float64) (*models.WeatherSnapshot, error) {
	key := cacheKey("weather", lat, lon)

	start := time.Now()
	if data, found := p.cache.Get(context.Background(), key); found {
		var snapshot models.WeatherSnapshot
		if err := json.Unmarshal(data, &snapshot); err == nil {
			p.metrics.RecordHit()
			p.metrics.RecordLatency("get", time.Since(start).Seconds())
			return &snapshot, nil
		}
		p.cache.Delete(context.Background(), key)
	}
	p.metrics.RecordMiss()

	snapshot, err := p.provider.FetchCurrentWeather(lat, lon)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snapshot); err == nil {
		p.cache.Set(context.Background(), key, data, p.ttl)
	}

	return snapshot, nil
}

// FetchForecast mirrors FetchCurrentWeather for the sample list.
func (p *WeatherCacheProxy) FetchForecast(lat, lon float64) ([]models.ForecastSample, error) {
	key := cacheKey("forecast", lat, lon)

	start := time.Now()
	if data, found := p.cache.Get(context.Background(), key); found {
		var samples []models.ForecastSample
		if err := json.Unmarshal(data, &samples); err == nil {
			p.metrics.RecordHit()
			p.metrics.RecordLatency("get", time.Since(start).Seconds())
			return samples, nil
		}
		p.cache.Delete(context.Background(), key)
	}
	p.metrics.RecordMiss()

	samples, err := p.provider.FetchForecast(lat, lon)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(samples); err == nil {
		p.cache.Set(context.Background(), key, data, p.ttl)
	}

	return samples, nil
}

// cacheKey rounds coordinates to four decimal places (~11m) so nearby
// lookups for the same city share an entry.
func cacheKey(kind string, lat, lon float64) string {
	return fmt.Sprintf("%s:%.4f,%.4f", kind, lat, lon)
}
