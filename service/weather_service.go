package service

import (
	"log/slog"
	"sync"

	"cityweather.app/errors"
	"cityweather.app/forecast"
	"cityweather.app/models"
	"cityweather.app/providers"
)

// Number of three-hour samples shown on the hourly strip (24 hours).
const hourlyStripSamples = 8

// WeatherServiceInterface defines the weather detail operations
type WeatherServiceInterface interface {
	GetDetail(lat, lon float64, cityName string) (*models.WeatherDetail, error)
}

// WeatherService implements the weather detail flow: coordinate validation,
// parallel current+forecast fetch, aggregation, and the summary write that
// feeds the listing view.
type WeatherService struct {
	provider  providers.WeatherProvider
	summaries SummaryCacheInterface
}

// NewWeatherService creates a new weather detail service
func NewWeatherService(provider providers.WeatherProvider, summaries SummaryCacheInterface) *WeatherService {
	return &WeatherService{
		provider:  provider,
		summaries: summaries,
	}
}

// ValidateCoordinates rejects out-of-range locations before any network
// call is made.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return errors.NewInvalidLocationError("latitude must be within [-90, 90]")
	}
	if lon < -180 || lon > 180 {
		return errors.NewInvalidLocationError("longitude must be within [-180, 180]")
	}
	return nil
}

// GetDetail fetches current weather and the five-day forecast in parallel,
// joins them into the detail payload and writes the derived summary through
// the cache.
func (s *WeatherService) GetDetail(lat, lon float64, cityName string) (*models.WeatherDetail, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	var (
		wg          sync.WaitGroup
		snapshot    *models.WeatherSnapshot
		samples     []models.ForecastSample
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		snapshot, currentErr = s.provider.FetchCurrentWeather(lat, lon)
	}()
	go func() {
		defer wg.Done()
		samples, forecastErr = s.provider.FetchForecast(lat, lon)
	}()
	wg.Wait()

	if currentErr != nil {
		return nil, currentErr
	}
	if forecastErr != nil {
		return nil, forecastErr
	}

	detail := &models.WeatherDetail{
		CityName: cityName,
		Current:  *snapshot,
		Daily:    forecast.GroupByDay(samples),
		Hourly:   forecast.FirstNHours(samples, hourlyStripSamples),
	}

	if cityName != "" {
		summary := models.WeatherSummary{
			TempMinC: snapshot.TempMinC,
			TempMaxC: snapshot.TempMaxC,
			Icon:     snapshot.Icon,
		}
		if err := s.summaries.Set(cityName, lat, lon, summary); err != nil {
			// The detail view already has its data; a failed summary
			// write only degrades the listing annotation.
			slog.Warn("Failed to persist weather summary", "city", cityName, "error", err)
		}
	}

	return detail, nil
}
