package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"weathertracker.app/internal/adapters/database"
	"weathertracker.app/internal/adapters/external"
	"weathertracker.app/internal/adapters/infrastructure"
	"weathertracker.app/internal/adapters/messaging"
	"weathertracker.app/internal/config"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

const weatherHTTPTimeout = 10 * time.Second

type DependencyContainer struct {
	db       *gorm.DB
	registry *prometheus.Registry
	ports    *ports.ApplicationPorts
}

// DependencyOptions selects the adapters to build. DB and EmailProvider are
// built from configuration when nil.
type DependencyOptions struct {
	Config        *config.Config
	Logger        *slog.Logger
	Clock         clockwork.Clock
	DB            *gorm.DB
	EmailProvider ports.EmailProvider
}

func NewDependencyContainer(ctx context.Context, opts DependencyOptions) (*DependencyContainer, error) {
	if opts.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	configProvider := infrastructure.NewConfigProviderAdapter(opts.Config)
	container := &DependencyContainer{db: opts.DB}

	if container.db == nil {
		db, err := OpenDatabase(configProvider.GetDatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("initialize database: %w", err)
		}
		container.db = db
	}
	if err := runMigrations(container.db); err != nil {
		return nil, err
	}

	if err := container.initializePorts(ctx, configProvider, opts); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}
	return container, nil
}

// OpenDatabase connects with the configured driver: postgres in production, sqlite for local runs.
func OpenDatabase(cfg ports.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		dsn := config.DatabaseConfig{
			Host: cfg.Host, Port: cfg.Port, User: cfg.User, Password: cfg.Password, Name: cfg.Name, SSLMode: cfg.SSLMode,
		}.GetDSN()
		dialector = postgres.Open(dsn)
	default:
		return nil, errors.NewConfigurationError("unsupported database driver: "+cfg.Driver, nil)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, errors.NewDatabaseError("connect to database", err)
	}
	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.NewDatabaseError("get sqlite connection", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	slog.Info("Database connection established", "driver", cfg.Driver)
	return db, nil
}

func runMigrations(db *gorm.DB) error {
	slog.Info("Running database migrations...")
	if err := db.AutoMigrate(database.Models()...); err != nil {
		return errors.NewDatabaseError("auto migrate", err)
	}
	return nil
}

func (c *DependencyContainer) initializePorts(ctx context.Context, configProvider *infrastructure.ConfigProviderAdapter, opts DependencyOptions) error {
	logger := infrastructure.NewSlogLoggerAdapter(opts.Logger)

	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := infrastructure.NewMetrics(c.registry)

	cacheCfg := configProvider.GetCacheConfig()
	cache, err := external.NewCacheProvider(ctx, cacheCfg, opts.Clock)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	slog.Info("Cache provider initialized", "type", cacheCfg.Type)

	weatherCfg := opts.Config.Weather
	providerManager := external.NewWeatherProviderManager(external.ProviderManagerConfig{
		WeatherAPIKey:     weatherCfg.APIKey,
		WeatherAPIBaseURL: weatherCfg.BaseURL,
		OpenWeatherKey:    weatherCfg.OpenWeatherMapKey,
		OpenWeatherURL:    weatherCfg.OpenWeatherMapBaseURL,
		ProviderOrder:     weatherCfg.ProviderOrder,
		Client:            &http.Client{Timeout: weatherHTTPTimeout},
		Logger:            logger,
		Metrics:           metrics,
	})

	emailProvider := opts.EmailProvider
	if emailProvider == nil {
		smtp := external.NewSMTPEmailProviderAdapter(configProvider.GetEmailConfig())
		if err := smtp.ValidateConfiguration(); err != nil {
			return fmt.Errorf("validate email provider: %w", err)
		}
		emailProvider = smtp
	}

	var publisher ports.EventPublisher = messaging.NoopEventPublisher{}
	if eventsCfg := configProvider.GetEventsConfig(); eventsCfg.Enabled {
		kafka, err := messaging.NewKafkaEventPublisher(eventsCfg)
		if err != nil {
			return fmt.Errorf("create event publisher: %w", err)
		}
		publisher = kafka
		slog.Info("Kafka event publishing enabled", "topic", eventsCfg.KafkaTopic)
	}

	c.ports = &ports.ApplicationPorts{
		WeatherProvider: providerManager,
		Cache:           cache,
		ReadingCache:    external.NewReadingCacheAdapter(cache),

		UserRepository:         database.NewUserRepositoryAdapter(c.db),
		LocationRepository:     database.NewLocationRepositoryAdapter(c.db),
		SubscriptionRepository: database.NewSubscriptionRepositoryAdapter(c.db),
		ReadingRepository:      database.NewReadingRepositoryAdapter(c.db),
		AlertRepository:        database.NewAlertRepositoryAdapter(c.db),

		EmailProvider:  emailProvider,
		EventPublisher: publisher,

		ConfigProvider: configProvider,
		Logger:         logger,
		Metrics:        metrics,
	}
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) DB() *gorm.DB {
	return c.db
}

// Registry is the Prometheus registry served on /metrics
func (c *DependencyContainer) Registry() *prometheus.Registry {
	return c.registry
}

// Close releases the event publisher, cache and database connections
func (c *DependencyContainer) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.ports != nil {
		keep(c.ports.EventPublisher.Close())
		if closer, ok := c.ports.Cache.(interface{ Close() error }); ok {
			keep(closer.Close())
		}
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			keep(sqlDB.Close())
		}
	}
	return firstErr
}
