package config

import (
	"fmt"
	"strings"

	"cityweather.app/errors"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Cities    CitiesConfig    `split_words:"true"`
	Weather   WeatherConfig   `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Search    SearchConfig    `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains settings for the summary persistence store.
// SQLite is the default; postgres is selectable for shared deployments.
type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	Path     string `envconfig:"DB_PATH" default:"cityweather.db"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"cityweather"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted postgres connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// CitiesConfig contains settings for the city directory API
type CitiesConfig struct {
	BaseURL  string `envconfig:"CITIES_API_BASE_URL" default:"https://public.opendatasoft.com/api/records/1.0/search/"`
	Dataset  string `envconfig:"CITIES_DATASET" default:"geonames-all-cities-with-a-population-1000"`
	PageSize int    `envconfig:"CITIES_PAGE_SIZE" default:"20"`
}

// WeatherConfig contains settings for the weather API service
type WeatherConfig struct {
	APIKey  string `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
}

// CacheConfig contains settings for the weather response cache
type CacheConfig struct {
	Enabled       bool   `envconfig:"CACHE_ENABLED" default:"false"`
	Type          string `envconfig:"CACHE_TYPE" default:"memory"`
	TTLMinutes    int    `envconfig:"CACHE_TTL_MINUTES" default:"10"`
	RedisAddr     string `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"CACHE_REDIS_DB" default:"0"`
}

// SearchConfig tunes the search and suggestion controllers
type SearchConfig struct {
	DebounceMillis  int `envconfig:"SEARCH_DEBOUNCE_MILLIS" default:"300"`
	SuggestMinChars int `envconfig:"SEARCH_SUGGEST_MIN_CHARS" default:"2"`
	SuggestLimit    int `envconfig:"SEARCH_SUGGEST_LIMIT" default:"5"`
}

// SchedulerConfig contains settings for the background summary refresher
type SchedulerConfig struct {
	Enabled                bool `envconfig:"SCHEDULER_ENABLED" default:"false"`
	RefreshIntervalMinutes int  `envconfig:"SUMMARY_REFRESH_INTERVAL" default:"60"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Cities.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite":
		if d.Path == "" {
			return errors.NewConfigurationError("DB_PATH cannot be empty for the sqlite driver", nil)
		}
	case "postgres":
		if d.Host == "" {
			return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
		}
		if d.Port < 1 || d.Port > 65535 {
			return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
		}
		if d.User == "" {
			return errors.NewConfigurationError("DB_USER cannot be empty", nil)
		}
		if d.Name == "" {
			return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
		}
		if err := d.validateSSLMode(); err != nil {
			return err
		}
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: sqlite, postgres", nil)
	}
	return nil
}

func (d *DatabaseConfig) validateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks city directory API configuration
func (c *CitiesConfig) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return errors.NewConfigurationError("CITIES_API_BASE_URL must start with http:// or https://", nil)
	}
	if c.Dataset == "" {
		return errors.NewConfigurationError("CITIES_DATASET cannot be empty", nil)
	}
	if c.PageSize < 1 {
		return errors.NewConfigurationError("CITIES_PAGE_SIZE must be at least 1", nil)
	}
	return nil
}

// Validate checks weather API configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.TTLMinutes < 1 {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be at least 1", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty", nil)
	}
	return nil
}

// Validate checks search controller configuration
func (s *SearchConfig) Validate() error {
	if s.DebounceMillis < 0 {
		return errors.NewConfigurationError("SEARCH_DEBOUNCE_MILLIS cannot be negative", nil)
	}
	if s.SuggestMinChars < 1 {
		return errors.NewConfigurationError("SEARCH_SUGGEST_MIN_CHARS must be at least 1", nil)
	}
	if s.SuggestLimit < 1 {
		return errors.NewConfigurationError("SEARCH_SUGGEST_LIMIT must be at least 1", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.RefreshIntervalMinutes < 1 {
		return errors.NewConfigurationError("SUMMARY_REFRESH_INTERVAL must be at least 1 minute", nil)
	}
	if s.RefreshIntervalMinutes > 10080 {
		return errors.NewConfigurationError("SUMMARY_REFRESH_INTERVAL cannot exceed 10080 minutes (7 days)", nil)
	}
	return nil
}
