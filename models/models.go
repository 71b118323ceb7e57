// Package models defines data structures used throughout the application
package models

import "time"

// SortColumn identifies a sortable column of the city listing.
type SortColumn string

const (
	SortByName       SortColumn = "name"
	SortByCountry    SortColumn = "cou_name_en"
	SortByTimezone   SortColumn = "timezone"
	SortByPopulation SortColumn = "population"
)

// SortDirection is the requested ordering for a sort column.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// CityRecord represents one city from the directory dataset. Records are
// immutable once fetched; identity is the record ID.
type CityRecord struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	CountryName      string  `json:"country_name"`
	Timezone         string  `json:"timezone"`
	Longitude        float64 `json:"lon"`
	Latitude         float64 `json:"lat"`
	Population       int64   `json:"population"`
	Elevation        int     `json:"elevation,omitempty"`
	FeatureCode      string  `json:"feature_code,omitempty"`
	GeonameID        int64   `json:"geoname_id,omitempty"`
	ModificationDate string  `json:"modification_date,omitempty"`
}

// SearchQuery is the user-controlled portion of the listing state. Any
// mutation invalidates the current result page set.
type SearchQuery struct {
	Text          string        `json:"text"`
	SortColumn    SortColumn    `json:"sort_column"`
	SortDirection SortDirection `json:"sort_direction"`
}

// WeatherSnapshot represents current weather for a location. All temperatures
// are Celsius; the gateway converts from the upstream unit before the value
// reaches any consumer.
type WeatherSnapshot struct {
	TemperatureC float64 `json:"temperature_c"`
	FeelsLikeC   float64 `json:"feels_like_c"`
	TempMinC     float64 `json:"temp_min_c"`
	TempMaxC     float64 `json:"temp_max_c"`
	PressureHpa  int     `json:"pressure_hpa"`
	HumidityPct  int     `json:"humidity_pct"`
	WindSpeedMs  float64 `json:"wind_speed_ms"`
	Icon         string  `json:"icon"`
	Description  string  `json:"description"`
	ObservedAt   int64   `json:"observed_at"`
	Sunrise      int64   `json:"sunrise"`
	Sunset       int64   `json:"sunset"`
	CountryCode  string  `json:"country_code"`
}

// ForecastSample is one three-hour forecast entry, Celsius.
type ForecastSample struct {
	Timestamp int64   `json:"timestamp"`
	TempC     float64 `json:"temp_c"`
	TempMinC  float64 `json:"temp_min_c"`
	TempMaxC  float64 `json:"temp_max_c"`
	Icon      string  `json:"icon"`
}

// DailyForecast is the aggregated min/max/icon summary for one calendar day.
type DailyForecast struct {
	Date     string  `json:"date"` // YYYY-MM-DD, UTC
	MinTempC float64 `json:"min_temp_c"`
	MaxTempC float64 `json:"max_temp_c"`
	Icon     string  `json:"icon"`
}

// WeatherSummary is the compact per-city entry shown on the listing and
// persisted by the summary cache. Always Celsius.
type WeatherSummary struct {
	TempMinC float64 `json:"temp_min_c"`
	TempMaxC float64 `json:"temp_max_c"`
	Icon     string  `json:"icon"`
}

// CitySummary is the persisted form of a WeatherSummary. Keyed by the city
// display name to match the listing render path; two same-named cities
// overwrite each other. Coordinates are stored so summaries can be refreshed
// without a directory lookup.
type CitySummary struct {
	CityName  string    `json:"city_name" gorm:"primaryKey"`
	TempMinC  float64   `json:"temp_min_c"`
	TempMaxC  float64   `json:"temp_max_c"`
	Icon      string    `json:"icon" gorm:"not null"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary converts the persisted row into its cache-entry form.
func (c *CitySummary) Summary() WeatherSummary {
	return WeatherSummary{
		TempMinC: c.TempMinC,
		TempMaxC: c.TempMaxC,
		Icon:     c.Icon,
	}
}

// WeatherDetail is the joined detail-view payload: current conditions plus
// the daily and hourly aggregations.
type WeatherDetail struct {
	CityName string           `json:"city_name"`
	Current  WeatherSnapshot  `json:"current"`
	Daily    []DailyForecast  `json:"daily"`
	Hourly   []ForecastSample `json:"hourly"`
}

// CityPage represents one page of listing results.
type CityPage struct {
	Records    []CityRecord `json:"records"`
	TotalCount int          `json:"total_count"`
	HasMore    bool         `json:"has_more"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// ParseSortColumn maps a column name to its SortColumn, accepting both the
// wire names and the friendlier aliases used by the API surface.
func ParseSortColumn(s string) (SortColumn, bool) {
	switch s {
	case "name":
		return SortByName, true
	case "country", "cou_name_en":
		return SortByCountry, true
	case "timezone":
		return SortByTimezone, true
	case "population":
		return SortByPopulation, true
	}
	return "", false
}
