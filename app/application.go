package app

import (
	"fmt"
	"log/slog"
	"time"

	"cityweather.app/api"
	"cityweather.app/config"
	"cityweather.app/database"
	"cityweather.app/providers"
	"cityweather.app/providers/cache"
	"cityweather.app/repository"
	"cityweather.app/scheduler"
	"cityweather.app/service"
	"gorm.io/gorm"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing summary store...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Summary store initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	cityProvider := providers.NewGeonamesProvider(&app.config.Cities)
	weatherProvider, err := app.createWeatherProvider()
	if err != nil {
		return fmt.Errorf("create weather provider: %w", err)
	}

	summaryRepo := repository.NewSummaryRepository(app.db)
	summaryCache := service.NewSummaryCache(summaryRepo)
	if err := summaryCache.Load(); err != nil {
		return fmt.Errorf("load summary cache: %w", err)
	}

	cityService := service.NewCityService(cityProvider, app.config.Cities.PageSize)
	weatherService := service.NewWeatherService(weatherProvider, summaryCache)

	app.server = api.NewServer(app.config, cityService, weatherService, summaryCache)
	app.scheduler = scheduler.NewScheduler(app.config, summaryCache, weatherService)

	slog.Info("Services initialized successfully")
	return nil
}

// createWeatherProvider builds the weather gateway, optionally decorated
// with the configured response cache.
func (app *Application) createWeatherProvider() (providers.WeatherProvider, error) {
	provider := providers.NewOpenWeatherProvider(&app.config.Weather)
	if !app.config.Cache.Enabled {
		return provider, nil
	}

	ttl := time.Duration(app.config.Cache.TTLMinutes) * time.Minute

	var backend providers.Cache
	switch app.config.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         app.config.Cache.RedisAddr,
			Password:     app.config.Cache.RedisPassword,
			DB:           app.config.Cache.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		backend = redisCache
	default:
		backend = cache.NewMemoryCache()
	}

	slog.Info("Weather response cache enabled", "type", app.config.Cache.Type, "ttl", ttl)
	return providers.NewWeatherCacheProxy(provider, backend, ttl, app.config.Cache.Type), nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	if app.config.Scheduler.Enabled {
		slog.Info("Starting summary refresh scheduler...")
		go app.scheduler.Start()
	}

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
