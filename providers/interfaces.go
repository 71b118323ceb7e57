package providers

import (
	"cityweather.app/models"
	"cityweather.app/providers/cache"
)

// CityProvider defines the interface for the city directory gateway
type CityProvider interface {
	SearchCities(query string, offset, pageSize int, sortColumn models.SortColumn, direction models.SortDirection) ([]models.CityRecord, int, error)
	SuggestCities(prefix string, limit int) ([]models.CityRecord, error)
}

// WeatherProvider defines the interface for the weather gateway
type WeatherProvider interface {
	FetchCurrentWeather(lat, lon float64) (*models.WeatherSnapshot, error)
	FetchForecast(lat, lon float64) ([]models.ForecastSample, error)
}

// Cache is an alias to avoid circular imports
type Cache = cache.Cache
