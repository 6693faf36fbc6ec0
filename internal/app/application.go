package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"weathertracker.app/internal/adapters/api"
	"weathertracker.app/internal/adapters/infrastructure"
	"weathertracker.app/internal/config"
	"weathertracker.app/internal/core/alert"
	"weathertracker.app/internal/core/location"
	"weathertracker.app/internal/core/notification"
	"weathertracker.app/internal/core/user"
	"weathertracker.app/internal/core/weather"
	"weathertracker.app/internal/ports"
	"weathertracker.app/internal/scheduler"
)

type Application struct {
	config *config.Config
	deps   *DependencyContainer
	clock  clockwork.Clock

	// Use Cases
	userUseCase     *user.UseCase
	locationUseCase *location.UseCase
	weatherUseCase  *weather.UseCase
	alertUseCase    *alert.UseCase
	dispatcher      *notification.UseCase

	// Adapters
	httpAdapter *api.HTTPServerAdapter
	scheduler   *scheduler.Scheduler
}

// NewApplication builds every adapter from configuration
func NewApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	clock := clockwork.NewRealClock()
	deps, err := NewDependencyContainer(ctx, DependencyOptions{Config: cfg, Logger: logger, Clock: clock})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, deps, clock)
	if err != nil {
		_ = deps.Close()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithDependencies wires use cases and adapters over an existing container
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer, clock clockwork.Clock) (*Application, error) {
	app := &Application{config: cfg, deps: deps, clock: clock}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}
	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}
	return app, nil
}

func (a *Application) initializeUseCases() error {
	p := a.deps.ApplicationPorts()
	authCfg := p.ConfigProvider.GetAuthConfig()

	tokens, err := user.NewTokenIssuer(authCfg.JWTSecret, authCfg.JWTExpiry, authCfg.Issuer, a.clock)
	if err != nil {
		return fmt.Errorf("create token issuer: %w", err)
	}
	if a.userUseCase, err = user.NewUseCase(user.UseCaseDependencies{
		UserRepo: p.UserRepository,
		Tokens:   tokens,
		Logger:   p.Logger,
	}); err != nil {
		return fmt.Errorf("create user use case: %w", err)
	}

	if a.locationUseCase, err = location.NewUseCase(location.UseCaseDependencies{
		LocationRepo:     p.LocationRepository,
		SubscriptionRepo: p.SubscriptionRepository,
		Logger:           p.Logger,
	}); err != nil {
		return fmt.Errorf("create location use case: %w", err)
	}

	if a.alertUseCase, err = alert.NewUseCase(alert.UseCaseDependencies{
		AlertRepo:        p.AlertRepository,
		SubscriptionRepo: p.SubscriptionRepository,
		Publisher:        p.EventPublisher,
		Clock:            a.clock,
		Logger:           p.Logger,
		Metrics:          p.Metrics,
	}); err != nil {
		return fmt.Errorf("create alert use case: %w", err)
	}

	// Every stored reading is handed to the alert use case for materialization.
	if a.weatherUseCase, err = weather.NewUseCase(weather.UseCaseDependencies{
		ReadingRepo:     p.ReadingRepository,
		LocationRepo:    p.LocationRepository,
		Cache:           p.ReadingCache,
		WeatherProvider: p.WeatherProvider,
		Observer:        a.alertUseCase,
		Config:          p.ConfigProvider,
		Clock:           a.clock,
		Logger:          p.Logger,
		Metrics:         p.Metrics,
	}); err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}

	if a.dispatcher, err = notification.NewUseCase(notification.UseCaseDependencies{
		Alerts:        a.alertUseCase,
		EmailProvider: p.EmailProvider,
		Config:        p.ConfigProvider,
		Clock:         a.clock,
		Logger:        p.Logger,
		Metrics:       p.Metrics,
	}); err != nil {
		return fmt.Errorf("create notification use case: %w", err)
	}

	return nil
}

func (a *Application) initializeAdapters() error {
	p := a.deps.ApplicationPorts()

	health := infrastructure.NewSystemHealthChecker(map[string]ports.HealthChecker{
		"database":          infrastructure.NewDatabaseHealthChecker(a.deps.DB()),
		"smtp":              infrastructure.NewSMTPHealthChecker(p.ConfigProvider.GetEmailConfig(), 0),
		"cache":             infrastructure.NewCacheHealthChecker(p.Cache, p.ConfigProvider.GetCacheConfig().Type),
		"weather_providers": infrastructure.NewWeatherProviderHealthChecker(p.WeatherProvider),
	})

	serverCfg := p.ConfigProvider.GetServerConfig()
	apiCfg := api.ServerConfig{Port: serverCfg.Port, CORSAllowedOrigins: serverCfg.CORSAllowedOrigins}
	if a.config.Tracing.Enabled {
		apiCfg.ServiceName = a.config.Tracing.ServiceName
	}

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config:          apiCfg,
		UserUseCase:     a.userUseCase,
		LocationUseCase: a.locationUseCase,
		WeatherUseCase:  a.weatherUseCase,
		AlertUseCase:    a.alertUseCase,
		Dispatcher:      a.dispatcher,
		HealthChecker:   health,
		Gatherer:        a.deps.Registry(),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}
	a.httpAdapter = httpAdapter

	schedCfg := p.ConfigProvider.GetSchedulerConfig()
	if !schedCfg.Enabled {
		slog.Info("Alert dispatch scheduler disabled")
		return nil
	}
	a.scheduler, err = scheduler.New(scheduler.Config{
		Interval:    schedCfg.Interval,
		DailyHour:   schedCfg.DailyHour,
		DailyMinute: schedCfg.DailyMinute,
		Location:    schedCfg.Location,
	}, a.runScheduledDispatch, a.clock, p.Logger)
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	return nil
}

func (a *Application) runScheduledDispatch(ctx context.Context, trigger string) error {
	_, err := a.dispatcher.RunDispatchOnce(notification.WithTrigger(ctx, trigger))
	return err
}

// Start runs the HTTP server and the scheduler until ctx is cancelled or one of them fails
func (a *Application) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.httpAdapter.Start(gctx)
	})

	if a.scheduler != nil {
		if err := a.scheduler.Start(gctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		g.Go(func() error {
			<-gctx.Done()
			a.scheduler.Stop()
			return nil
		})
	}

	return g.Wait()
}

// Shutdown releases adapters after Start has returned
func (a *Application) Shutdown() error {
	slog.Info("Shutting down application...")
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if err := a.deps.Close(); err != nil {
		return fmt.Errorf("close dependencies: %w", err)
	}
	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.httpAdapter.GetRouter()
}

// Dispatcher exposes the notification dispatcher for one-shot runs
func (a *Application) Dispatcher() *notification.UseCase {
	return a.dispatcher
}
