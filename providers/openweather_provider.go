package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"cityweather.app/config"
	"cityweather.app/errors"
	"cityweather.app/models"
)

// OpenWeatherProvider implements WeatherProvider against the OpenWeather
// current-weather and 5-day/3-hour forecast endpoints. The upstream default
// unit is Kelvin; every temperature-bearing field is converted to Celsius
// exactly once before a value leaves this provider.
type OpenWeatherProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

type openWeatherForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp    float64 `json:"temp"`
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []struct {
			Icon string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

// NewOpenWeatherProvider creates a new OpenWeather gateway
func NewOpenWeatherProvider(config *config.WeatherConfig) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchCurrentWeather retrieves a point-in-time snapshot for the coordinates.
func (p *OpenWeatherProvider) FetchCurrentWeather(lat, lon float64) (*models.WeatherSnapshot, error) {
	url := fmt.Sprintf("%s/weather?lat=%g&lon=%g&appid=%s", p.baseURL, lat, lon, p.apiKey)

	var apiResponse openWeatherResponse
	if err := p.getJSON(url, "current weather", &apiResponse); err != nil {
		return nil, err
	}

	snapshot := &models.WeatherSnapshot{
		TemperatureC: kelvinToCelsius(apiResponse.Main.Temp),
		FeelsLikeC:   kelvinToCelsius(apiResponse.Main.FeelsLike),
		TempMinC:     kelvinToCelsius(apiResponse.Main.TempMin),
		TempMaxC:     kelvinToCelsius(apiResponse.Main.TempMax),
		PressureHpa:  apiResponse.Main.Pressure,
		HumidityPct:  apiResponse.Main.Humidity,
		WindSpeedMs:  apiResponse.Wind.Speed,
		ObservedAt:   apiResponse.Dt,
		Sunrise:      apiResponse.Sys.Sunrise,
		Sunset:       apiResponse.Sys.Sunset,
		CountryCode:  apiResponse.Sys.Country,
	}
	if len(apiResponse.Weather) > 0 {
		snapshot.Icon = apiResponse.Weather[0].Icon
		snapshot.Description = apiResponse.Weather[0].Description
	}

	return snapshot, nil
}

// FetchForecast retrieves up to 40 three-hour samples (5 days) for the
// coordinates, chronological server order preserved.
func (p *OpenWeatherProvider) FetchForecast(lat, lon float64) ([]models.ForecastSample, error) {
	url := fmt.Sprintf("%s/forecast?lat=%g&lon=%g&appid=%s", p.baseURL, lat, lon, p.apiKey)

	var apiResponse openWeatherForecastResponse
	if err := p.getJSON(url, "forecast", &apiResponse); err != nil {
		return nil, err
	}

	samples := make([]models.ForecastSample, 0, len(apiResponse.List))
	for _, entry := range apiResponse.List {
		sample := models.ForecastSample{
			Timestamp: entry.Dt,
			TempC:     kelvinToCelsius(entry.Main.Temp),
			TempMinC:  kelvinToCelsius(entry.Main.TempMin),
			TempMaxC:  kelvinToCelsius(entry.Main.TempMax),
		}
		if len(entry.Weather) > 0 {
			sample.Icon = entry.Weather[0].Icon
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

func (p *OpenWeatherProvider) getJSON(url, what string, out interface{}) error {
	resp, err := p.httpClient.Get(url)
	if err != nil {
		return errors.NewNetworkError(fmt.Sprintf("failed to fetch %s", what), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.NewUpstreamError(fmt.Sprintf("%s request failed", what), resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewMalformedResponseError(fmt.Sprintf("failed to decode %s response", what), err)
	}

	return nil
}

// kelvinToCelsius converts an upstream Kelvin reading, rounded to two
// decimal places. Applied once per fetched value.
func kelvinToCelsius(k float64) float64 {
	return math.Round((k-273.15)*100) / 100
}
