package app

import (
	"log"
	"strings"

	"cityweather.app/config"
)

// ConfigDisplayer handles configuration display for startup debugging
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nDATABASE:\n")
	log.Printf("  Driver: %s\n", cfg.Database.Driver)
	if cfg.Database.Driver == "sqlite" {
		log.Printf("  Path: %s\n", cfg.Database.Path)
	} else {
		log.Printf("  Host: %s\n", cfg.Database.Host)
		log.Printf("  Port: %d\n", cfg.Database.Port)
		log.Printf("  User: %s\n", cfg.Database.User)
		log.Printf("  Password: %s\n", cd.maskString(cfg.Database.Password))
		log.Printf("  Name: %s\n", cfg.Database.Name)
		log.Printf("  SSLMode: %s\n", cfg.Database.SSLMode)
	}

	log.Printf("\nCITY DIRECTORY:\n")
	log.Printf("  Base URL: %s\n", cfg.Cities.BaseURL)
	log.Printf("  Dataset: %s\n", cfg.Cities.Dataset)
	log.Printf("  Page Size: %d\n", cfg.Cities.PageSize)

	log.Printf("\nWEATHER API:\n")
	log.Printf("  API Key: %s\n", cd.maskString(cfg.Weather.APIKey))
	log.Printf("  Base URL: %s\n", cfg.Weather.BaseURL)

	log.Printf("\nCACHE:\n")
	log.Printf("  Enabled: %t\n", cfg.Cache.Enabled)
	log.Printf("  Type: %s\n", cfg.Cache.Type)
	log.Printf("  TTL Minutes: %d\n", cfg.Cache.TTLMinutes)

	log.Printf("\nSEARCH:\n")
	log.Printf("  Debounce Millis: %d\n", cfg.Search.DebounceMillis)
	log.Printf("  Suggest Min Chars: %d\n", cfg.Search.SuggestMinChars)
	log.Printf("  Suggest Limit: %d\n", cfg.Search.SuggestLimit)

	log.Printf("\nSCHEDULER:\n")
	log.Printf("  Enabled: %t\n", cfg.Scheduler.Enabled)
	log.Printf("  Refresh Interval: %d\n", cfg.Scheduler.RefreshIntervalMinutes)

	log.Println("===================================")
}

// maskString hides all but the first and last characters of sensitive values
func (cd *ConfigDisplayer) maskString(s string) string {
	if len(s) <= 2 {
		return strings.Repeat("*", len(s))
	}
	return s[:1] + strings.Repeat("*", len(s)-2) + s[len(s)-1:]
}
