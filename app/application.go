// Package app wires configuration, storage, providers and services together
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"agroio.app/api"
	"agroio.app/config"
	"agroio.app/database"
	"agroio.app/metrics"
	"agroio.app/providers"
	"agroio.app/providers/cache"
	"agroio.app/repository"
	"agroio.app/scheduler"
	"agroio.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	server    *api.Server
	scheduler *scheduler.Scheduler
	ai        *providers.GeminiProvider
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
	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	if err := database.Seed(db); err != nil {
		slog.Error("Failed to seed database", "error", err)
		return fmt.Errorf("seed database: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	genericCache, err := app.createCache()
	if err != nil {
		return fmt.Errorf("create cache backend: %w", err)
	}

	instrumentedCache := providers.NewInstrumentedCache(genericCache, app.config.Cache.Type)
	forecastProvider, err := app.createForecastProvider(instrumentedCache)
	if err != nil {
		return fmt.Errorf("create forecast provider: %w", err)
	}

	aiProvider, err := app.createAIProvider()
	if err != nil {
		return fmt.Errorf("create AI provider: %w", err)
	}
	aiMetrics := metrics.NewAIMetrics()

	userRepo := repository.NewUserRepository(app.db)
	sessionRepo := repository.NewSessionRepository(app.db)
	taskRepo := repository.NewTaskRepository(app.db)
	vegetableRepo := repository.NewVegetableRepository(app.db)
	contactRepo := repository.NewContactRepository(app.db)
	transactionRepo := repository.NewTransactionRepository(app.db)
	harvestRepo := repository.NewHarvestRepository(app.db)
	catalogRepo := repository.NewCatalogRepository(app.db)
	marketRepo := repository.NewMarketRepository(app.db)
	communityRepo := repository.NewCommunityRepository(app.db)
	faqRepo := repository.NewFaqRepository(app.db)
	notificationRepo := repository.NewNotificationRepository(app.db)

	userService := service.NewUserService(userRepo, sessionRepo, app.config)
	weatherService := service.NewWeatherService(forecastProvider, &app.config.Weather)

	server, err := api.NewServer(api.ServerOptions{
		Config:           app.config,
		UserService:      userService,
		WeatherService:   weatherService,
		TaskService:      service.NewTaskService(taskRepo),
		VegetableService: service.NewVegetableService(vegetableRepo, aiProvider, aiMetrics),
		CashFlowService:  service.NewCashFlowService(transactionRepo, contactRepo),
		HarvestService:   service.NewHarvestService(harvestRepo, vegetableRepo),
		GardenService:    service.NewGardenDesignService(catalogRepo, aiProvider, aiMetrics),
		GardenerService:  service.NewGardenerService(aiProvider, aiMetrics),
		MarketService:    service.NewMarketService(marketRepo, aiProvider, aiMetrics),
		CommunityService: service.NewCommunityService(communityRepo),
		FaqService:       service.NewFaqService(faqRepo),
		NotificationRepo: notificationRepo,
		ForecastMetrics:  instrumentedCache,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	app.server = server
	app.scheduler = scheduler.NewScheduler(
		app.config,
		userRepo,
		sessionRepo,
		notificationRepo,
		weatherService,
		instrumentedCache,
	)

	slog.Info("Services initialized successfully")
	return nil
}

func (app *Application) createCache() (cache.GenericCacheInterface, error) {
	if app.config.Cache.Type == "redis" {
		return cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         app.config.Cache.Redis.Addr,
			Password:     app.config.Cache.Redis.Password,
			DB:           app.config.Cache.Redis.DB,
			DialTimeout:  time.Duration(app.config.Cache.Redis.DialTimeout) * time.Second,
			ReadTimeout:  time.Duration(app.config.Cache.Redis.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(app.config.Cache.Redis.WriteTimeout) * time.Second,
		})
	}
	return cache.NewMemoryCache(), nil
}

// createForecastProvider stacks the Open-Meteo client with the optional
// cache proxy and request-log decorator.
func (app *Application) createForecastProvider(instrumented cache.GenericCacheInterface) (providers.ForecastProvider, error) {
	var provider providers.ForecastProvider = providers.NewOpenMeteoProvider(&app.config.Weather)

	if app.config.Weather.EnableLogging {
		logger, err := providers.NewFileLogger(app.config.Weather.LogFilePath)
		if err != nil {
			return nil, err
		}
		provider = providers.NewForecastLoggerDecorator(provider, logger, "openmeteo")
	}

	if app.config.Weather.EnableCache {
		forecastCache := cache.NewForecastCache(instrumented)
		ttl := time.Duration(app.config.Weather.CacheTTLMinutes) * time.Minute
		provider = providers.NewForecastCacheProxy(provider, forecastCache, ttl)
	}

	return provider, nil
}

func (app *Application) createAIProvider() (providers.AIProvider, error) {
	if !app.config.AI.Enabled() {
		slog.Warn("AI_API_KEY not set, generative features will use fallbacks")
		return providers.NewDisabledAIProvider(), nil
	}

	gemini, err := providers.NewGeminiProvider(context.Background(), &app.config.AI)
	if err != nil {
		return nil, err
	}
	app.ai = gemini
	return gemini, nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	slog.Info("Starting scheduler...")
	app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.ai != nil {
		if err := app.ai.Close(); err != nil {
			slog.Warn("Error closing AI client", "error", err)
		}
	}

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
