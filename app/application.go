package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kostiantyn-povnych/weather-service/api"
	"github.com/kostiantyn-povnych/weather-service/cache"
	"github.com/kostiantyn-povnych/weather-service/config"
	"github.com/kostiantyn-povnych/weather-service/events"
	"github.com/kostiantyn-povnych/weather-service/providers"
	"github.com/kostiantyn-povnych/weather-service/ratelimit"
	"github.com/kostiantyn-povnych/weather-service/service"
	"github.com/kostiantyn-povnych/weather-service/storage"
)

// Application represents the main application with all its dependencies
type Application struct {
	config     *config.Config
	server     *api.Server
	snapshots  cache.Cache
	limiter    ratelimit.Limiter
	eventStore events.Store
}

// NewApplication creates and initializes a new application instance
func NewApplication(ctx context.Context) (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(ctx); err != nil {
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

func (app *Application) initializeServices(ctx context.Context) error {
	slog.Info("Initializing services...")

	geocoder := providers.NewOpenWeatherGeocoder(&app.config.Weather)
	provider := providers.NewOpenWeatherMapProvider(&app.config.Weather)

	snapshotCache, err := cache.NewFromConfig(&app.config.Cache)
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	app.snapshots = snapshotCache
	slog.Info("Cache ready", "type", app.config.Cache.Type)

	limiter, err := ratelimit.NewFromConfig(&app.config.RateLimit)
	if err != nil {
		return fmt.Errorf("create rate limiter: %w", err)
	}
	app.limiter = limiter
	slog.Info("Rate limiter ready", "type", app.config.RateLimit.Type)

	eventStore, err := events.NewFromConfig(ctx, &app.config.Events)
	if err != nil {
		return fmt.Errorf("create event store: %w", err)
	}
	app.eventStore = eventStore
	slog.Info("Event store ready", "type", app.config.Events.Type)

	dataStore, err := storage.NewFromConfig(ctx, &app.config.Storage)
	if err != nil {
		return fmt.Errorf("create data store: %w", err)
	}
	slog.Info("Data store ready", "type", app.config.Storage.Type)

	weatherService := service.NewWeatherService(service.Dependencies{
		Geocoder: geocoder,
		Provider: provider,
		Cache:    snapshotCache,
		Limiter:  limiter,
		Events:   eventStore,
		Storage:  dataStore,
		CacheTTL: app.config.Cache.TTL(),
	})

	app.server = api.NewServer(app.config, weatherService)

	slog.Info("Services initialized successfully")
	return nil
}

// Start begins serving HTTP requests and blocks until the server stops.
func (app *Application) Start() error {
	slog.Info("Starting server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown releases backend connections and flushes the event log.
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	var firstErr error
	for _, resource := range []interface{}{app.snapshots, app.limiter, app.eventStore} {
		closer, ok := resource.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	slog.Info("Application shutdown complete")
	return firstErr
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
