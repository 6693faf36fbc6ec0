// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"weathertracker.app/internal/core/alert"
	"weathertracker.app/internal/core/location"
	"weathertracker.app/internal/core/notification"
	"weathertracker.app/internal/core/user"
	"weathertracker.app/internal/core/weather"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port               int
	CORSAllowedOrigins []string
	ServiceName        string
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router          *gin.Engine
	config          ServerConfig
	userUseCase     UserUseCase
	locationUseCase LocationUseCase
	weatherUseCase  WeatherUseCase
	alertUseCase    AlertUseCase
	dispatcher      Dispatcher
	health          ports.SystemHealthChecker
	gatherer        prometheus.Gatherer
}

// Use case interfaces that the HTTP adapter depends on
type UserUseCase interface {
	Register(ctx context.Context, params user.RegisterParams) (*user.AuthResult, error)
	Login(ctx context.Context, params user.LoginParams) (*user.AuthResult, error)
	Authenticate(ctx context.Context, token string) (uint, error)
	GetProfile(ctx context.Context, userID uint) (*user.User, error)
	UpdateProfile(ctx context.Context, userID uint, params user.UpdateProfileParams) (*user.User, error)
	ChangePassword(ctx context.Context, userID uint, params user.ChangePasswordParams) error
	Delete(ctx context.Context, userID uint) error
}

type LocationUseCase interface {
	Create(ctx context.Context, params location.CreateLocationParams) (*location.Location, error)
	Get(ctx context.Context, id uint) (*location.Location, error)
	List(ctx context.Context) ([]*location.Location, error)
	Delete(ctx context.Context, userID, id uint) error
	Subscribe(ctx context.Context, userID, locationID uint, makeDefault bool) (*location.Subscription, error)
	Unsubscribe(ctx context.Context, userID, locationID uint) error
	SetDefault(ctx context.Context, userID, locationID uint) error
	ListSubscriptions(ctx context.Context, userID uint) ([]*location.Subscription, error)
}

type WeatherUseCase interface {
	RecordReading(ctx context.Context, reading *weather.Reading) (*weather.Reading, error)
	ListReadings(ctx context.Context, locationID uint, limit int) ([]*weather.Reading, error)
	LatestReading(ctx context.Context, locationID uint) (*weather.Reading, error)
	RefreshLocation(ctx context.Context, locationID uint) (*weather.Reading, error)
}

type AlertUseCase interface {
	ListForUser(ctx context.Context, userID uint, activeOnly bool, limit int) ([]*alert.View, error)
	ListDefaultLocationForUser(ctx context.Context, userID uint, limit int) ([]*alert.View, error)
	Get(ctx context.Context, userID, alertID uint) (*alert.View, error)
	MarkAsRead(ctx context.Context, userID, alertID uint) error
	Dismiss(ctx context.Context, userID, alertID uint) error
}

type Dispatcher interface {
	RunDispatchOnce(ctx context.Context) (notification.DispatchResult, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config          ServerConfig
	UserUseCase     UserUseCase
	LocationUseCase LocationUseCase
	WeatherUseCase  WeatherUseCase
	AlertUseCase    AlertUseCase
	Dispatcher      Dispatcher
	HealthChecker   ports.SystemHealthChecker
	Gatherer        prometheus.Gatherer
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger())
	if opts.Config.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.Config.ServiceName))
	}
	if len(opts.Config.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.Config.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			ExposeHeaders:    []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	server := &HTTPServerAdapter{
		router:          router,
		config:          opts.Config,
		userUseCase:     opts.UserUseCase,
		locationUseCase: opts.LocationUseCase,
		weatherUseCase:  opts.WeatherUseCase,
		alertUseCase:    opts.AlertUseCase,
		dispatcher:      opts.Dispatcher,
		health:          opts.HealthChecker,
		gatherer:        opts.Gatherer,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.UserUseCase == nil {
		return errors.NewValidationError("user use case is required")
	}
	if opts.LocationUseCase == nil {
		return errors.NewValidationError("location use case is required")
	}
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.AlertUseCase == nil {
		return errors.NewValidationError("alert use case is required")
	}
	if opts.Dispatcher == nil {
		return errors.NewValidationError("dispatcher is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Gatherer == nil {
		return errors.NewValidationError("metrics gatherer is required")
	}
	return nil
}

func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)
		api.GET("/health", s.getHealth)
	}

	authed := api.Group("", s.requireAuth())
	{
		authed.GET("/users/me", s.getProfile)
		authed.PUT("/users/me", s.updateProfile)
		authed.PUT("/users/me/password", s.changePassword)
		authed.DELETE("/users/me", s.deleteAccount)

		authed.GET("/locations", s.listLocations)
		authed.POST("/locations", s.createLocation)
		authed.GET("/locations/:id", s.getLocation)
		authed.DELETE("/locations/:id", s.deleteLocation)
		authed.POST("/locations/:id/subscribe", s.subscribe)
		authed.DELETE("/locations/:id/subscribe", s.unsubscribe)
		authed.PUT("/locations/:id/default", s.setDefaultLocation)
		authed.GET("/subscriptions", s.listSubscriptions)

		authed.POST("/locations/:id/readings", s.recordReading)
		authed.GET("/locations/:id/readings", s.listReadings)
		authed.GET("/locations/:id/readings/latest", s.latestReading)
		authed.POST("/locations/:id/refresh", s.refreshLocation)

		authed.GET("/alerts", s.listAlerts)
		authed.GET("/alerts/default", s.listDefaultLocationAlerts)
		authed.GET("/alerts/:id", s.getAlert)
		authed.PUT("/alerts/:id/read", s.markAlertRead)
		authed.PUT("/alerts/:id/dismiss", s.dismissAlert)

		authed.POST("/admin/alerts/dispatch", s.dispatchAlerts)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", s.config.Port)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return <-errCh
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
