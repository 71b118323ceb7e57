package providers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cityweather.app/config"
	apperrors "cityweather.app/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeatherTestProvider(serverURL string) *OpenWeatherProvider {
	return NewOpenWeatherProvider(&config.WeatherConfig{
		APIKey:  "test-api-key",
		BaseURL: serverURL,
	})
}

const currentWeatherBody = `{
	"weather": [{"description": "scattered clouds", "icon": "03d"}],
	"main": {"temp": 288.15, "feels_like": 287.15, "temp_min": 286.65, "temp_max": 289.65, "pressure": 1013, "humidity": 72},
	"wind": {"speed": 4.1},
	"dt": 1710072000,
	"sys": {"country": "GB", "sunrise": 1710050000, "sunset": 1710090000}
}`

const forecastBody = `{
	"list": [
		{"dt": 1710072000, "main": {"temp": 283.15, "temp_min": 282.15, "temp_max": 284.15}, "weather": [{"icon": "10d"}]},
		{"dt": 1710082800, "main": {"temp": 288.15, "temp_min": 287.15, "temp_max": 289.15}, "weather": [{"icon": "01d"}]}
	]
}`

func TestOpenWeatherProvider_FetchCurrentWeather(t *testing.T) {
	t.Run("ConvertsKelvinOnce", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/weather", r.URL.Path)
			query := r.URL.Query()
			assert.Equal(t, "51.5", query.Get("lat"))
			assert.Equal(t, "-0.12", query.Get("lon"))
			assert.Equal(t, "test-api-key", query.Get("appid"))
			_, present := query["units"]
			assert.False(t, present, "no units param: upstream default is Kelvin")

			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(currentWeatherBody))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := newWeatherTestProvider(mockServer.URL)
		snapshot, err := provider.FetchCurrentWeather(51.5, -0.12)

		require.NoError(t, err)
		assert.Equal(t, 15.0, snapshot.TemperatureC)
		assert.Equal(t, 14.0, snapshot.FeelsLikeC)
		assert.Equal(t, 13.5, snapshot.TempMinC)
		assert.Equal(t, 16.5, snapshot.TempMaxC)
		assert.Equal(t, 1013, snapshot.PressureHpa)
		assert.Equal(t, 72, snapshot.HumidityPct)
		assert.Equal(t, 4.1, snapshot.WindSpeedMs)
		assert.Equal(t, "03d", snapshot.Icon)
		assert.Equal(t, "scattered clouds", snapshot.Description)
		assert.Equal(t, "GB", snapshot.CountryCode)
		assert.Equal(t, int64(1710072000), snapshot.ObservedAt)
	})

	t.Run("RepeatedFetchesAgree", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := w.Write([]byte(currentWeatherBody))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := newWeatherTestProvider(mockServer.URL)
		first, err := provider.FetchCurrentWeather(51.5, -0.12)
		require.NoError(t, err)
		second, err := provider.FetchCurrentWeather(51.5, -0.12)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("MissingWeatherArray", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := w.Write([]byte(`{"weather": [], "main": {"temp": 273.15}}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := newWeatherTestProvider(mockServer.URL)
		snapshot, err := provider.FetchCurrentWeather(51.5, -0.12)

		require.NoError(t, err)
		assert.Equal(t, 0.0, snapshot.TemperatureC)
		assert.Empty(t, snapshot.Icon)
	})

	t.Run("UnauthorizedCarriesStatusAndBody", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, err := w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := newWeatherTestProvider(mockServer.URL)
		_, err := provider.FetchCurrentWeather(51.5, -0.12)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.UpstreamError, appErr.Type)
		assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode)
		assert.Contains(t, appErr.Body, "Invalid API key")
	})

	t.Run("MalformedResponse", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := w.Write([]byte("<html>gateway timeout</html>"))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := newWeatherTestProvider(mockServer.URL)
		_, err := provider.FetchCurrentWeather(51.5, -0.12)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.MalformedResponseError, appErr.Type)
	})

	t.Run("NetworkError", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		mockServer.Close()

		provider := newWeatherTestProvider(mockServer.URL)
		_, err := provider.FetchCurrentWeather(51.5, -0.12)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.NetworkError, appErr.Type)
	})
}

func TestOpenWeatherProvider_FetchForecast(t *testing.T) {
	t.Run("ConvertsAndPreservesOrder", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/forecast", r.URL.Path)
			_, err := w.Write([]byte(forecastBody))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := newWeatherTestProvider(mockServer.URL)
		samples, err := provider.FetchForecast(51.5, -0.12)

		require.NoError(t, err)
		require.Len(t, samples, 2)
		assert.Equal(t, int64(1710072000), samples[0].Timestamp)
		assert.Equal(t, 10.0, samples[0].TempC)
		assert.Equal(t, 9.0, samples[0].TempMinC)
		assert.Equal(t, 11.0, samples[0].TempMaxC)
		assert.Equal(t, "10d", samples[0].Icon)
		assert.Equal(t, int64(1710082800), samples[1].Timestamp)
		assert.Equal(t, 15.0, samples[1].TempC)
		assert.Equal(t, "01d", samples[1].Icon)
	})

	t.Run("EmptyList", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := w.Write([]byte(`{"list": []}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := newWeatherTestProvider(mockServer.URL)
		samples, err := provider.FetchForecast(51.5, -0.12)

		require.NoError(t, err)
		assert.Empty(t, samples)
	})

	t.Run("UpstreamError", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer mockServer.Close()

		provider := newWeatherTestProvider(mockServer.URL)
		_, err := provider.FetchForecast(51.5, -0.12)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.UpstreamError, appErr.Type)
		assert.Equal(t, http.StatusServiceUnavailable, appErr.StatusCode)
	})
}

func TestKelvinToCelsius(t *testing.T) {
	assert.Equal(t, 0.0, kelvinToCelsius(273.15))
	assert.Equal(t, 15.0, kelvinToCelsius(288.15))
	assert.Equal(t, -40.0, kelvinToCelsius(233.15))
	// Rounded to two decimal places.
	assert.Equal(t, 15.01, kelvinToCelsius(288.156))
}
