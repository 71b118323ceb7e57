package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "cityweather.app/errors"
	"cityweather.app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWeatherProvider struct {
	mu            sync.Mutex
	currentCalls  int
	forecastCalls int
	snapshot      *models.WeatherSnapshot
	samples       []models.ForecastSample
	currentErr    error
	forecastErr   error
}

func (p *fakeWeatherProvider) FetchCurrentWeather(lat, lon float64) (*models.WeatherSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentCalls++
	return p.snapshot, p.currentErr
}

func (p *fakeWeatherProvider) FetchForecast(lat, lon float64) ([]models.ForecastSample, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forecastCalls++
	return p.samples, p.forecastErr
}

func (p *fakeWeatherProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentCalls + p.forecastCalls
}

type fakeSummaryCache struct {
	mu      sync.Mutex
	entries map[string]models.WeatherSummary
	err     error
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{entries: make(map[string]models.WeatherSummary)}
}

func (c *fakeSummaryCache) Get(cityName string) (models.WeatherSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	summary, ok := c.entries[cityName]
	return summary, ok
}

func (c *fakeSummaryCache) Set(cityName string, lat, lon float64, summary models.WeatherSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.entries[cityName] = summary
	return nil
}

func (c *fakeSummaryCache) All() map[string]models.WeatherSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make(map[string]models.WeatherSummary, len(c.entries))
	for name, summary := range c.entries {
		result[name] = summary
	}
	return result
}

func testForecastSamples() []models.ForecastSample {
	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	samples := make([]models.ForecastSample, 0, 16)
	for i := 0; i < 16; i++ {
		ts := base.Add(time.Duration(i*3) * time.Hour)
		samples = append(samples, models.ForecastSample{
			Timestamp: ts.Unix(),
			TempC:     10 + float64(i),
			TempMinC:  9 + float64(i),
			TempMaxC:  11 + float64(i),
			Icon:      "01d",
		})
	}
	return samples
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"Valid", 51.5, -0.12, false},
		{"Equator", 0, 0, false},
		{"LatUpperBound", 90, 0, false},
		{"LatLowerBound", -90, 0, false},
		{"LonBounds", 0, -180, false},
		{"LatTooHigh", 90.1, 0, true},
		{"LatTooLow", -90.1, 0, true},
		{"LonTooHigh", 0, 180.1, true},
		{"LonTooLow", 0, -180.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lon)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.InvalidLocationError, appErr.Type)
		})
	}
}

func TestWeatherService_GetDetail(t *testing.T) {
	t.Run("InvalidCoordinatesSkipNetwork", func(t *testing.T) {
		provider := &fakeWeatherProvider{}
		service := NewWeatherService(provider, newFakeSummaryCache())

		_, err := service.GetDetail(200, 0, "Nowhere")

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.InvalidLocationError, appErr.Type)
		assert.Equal(t, 0, provider.calls())
	})

	t.Run("JoinsCurrentAndForecast", func(t *testing.T) {
		provider := &fakeWeatherProvider{
			snapshot: &models.WeatherSnapshot{
				TemperatureC: 12.3,
				TempMinC:     8.5,
				TempMaxC:     14.2,
				Icon:         "04d",
			},
			samples: testForecastSamples(),
		}
		summaries := newFakeSummaryCache()
		service := NewWeatherService(provider, summaries)

		detail, err := service.GetDetail(51.5, -0.12, "London")

		require.NoError(t, err)
		assert.Equal(t, "London", detail.CityName)
		assert.Equal(t, 12.3, detail.Current.TemperatureC)
		assert.Len(t, detail.Daily, 2)
		assert.Len(t, detail.Hourly, 8)

		summary, ok := summaries.Get("London")
		require.True(t, ok)
		assert.Equal(t, 8.5, summary.TempMinC)
		assert.Equal(t, 14.2, summary.TempMaxC)
		assert.Equal(t, "04d", summary.Icon)
	})

	t.Run("EmptyCityNameSkipsSummaryWrite", func(t *testing.T) {
		provider := &fakeWeatherProvider{
			snapshot: &models.WeatherSnapshot{TemperatureC: 12.3},
			samples:  testForecastSamples(),
		}
		summaries := newFakeSummaryCache()
		service := NewWeatherService(provider, summaries)

		_, err := service.GetDetail(51.5, -0.12, "")

		require.NoError(t, err)
		assert.Empty(t, summaries.All())
	})

	t.Run("CurrentWeatherErrorSurfaces", func(t *testing.T) {
		provider := &fakeWeatherProvider{
			currentErr: apperrors.NewNetworkError("current unreachable", nil),
			samples:    testForecastSamples(),
		}
		service := NewWeatherService(provider, newFakeSummaryCache())

		_, err := service.GetDetail(51.5, -0.12, "London")

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.NetworkError, appErr.Type)
	})

	t.Run("ForecastErrorSurfaces", func(t *testing.T) {
		provider := &fakeWeatherProvider{
			snapshot:    &models.WeatherSnapshot{TemperatureC: 12.3},
			forecastErr: apperrors.NewUpstreamError("forecast failed", 503, ""),
		}
		service := NewWeatherService(provider, newFakeSummaryCache())

		_, err := service.GetDetail(51.5, -0.12, "London")

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.UpstreamError, appErr.Type)
	})

	t.Run("FailedSummaryWriteDoesNotFailDetail", func(t *testing.T) {
		provider := &fakeWeatherProvider{
			snapshot: &models.WeatherSnapshot{TemperatureC: 12.3},
			samples:  testForecastSamples(),
		}
		summaries := newFakeSummaryCache()
		summaries.err = apperrors.NewDatabaseError("store unavailable", nil)
		service := NewWeatherService(provider, summaries)

		detail, err := service.GetDetail(51.5, -0.12, "London")

		require.NoError(t, err)
		assert.NotNil(t, detail)
	})
}
