package infrastructure

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"weathertracker.app/internal/ports"
)

const (
	defaultDialTimeout = 3 * time.Second
	cacheProbeKey      = "health:probe"
)

// DatabaseHealthChecker pings the underlying sql.DB
type DatabaseHealthChecker struct {
	db *gorm.DB
}

func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{Component: "database", Details: map[string]interface{}{}}

	if d.db == nil {
		return unhealthy(status, "database instance is nil")
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return unhealthy(status, "failed to get underlying database connection")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unhealthy(status, err.Error())
	}

	stats := sqlDB.Stats()
	status.Status = ports.HealthStatusHealthy
	status.Details["open_connections"] = stats.OpenConnections
	status.Details["in_use"] = stats.InUse
	return status
}

// SMTPHealthChecker opens a TCP connection to the mail relay
type SMTPHealthChecker struct {
	config  ports.EmailConfig
	timeout time.Duration
}

func NewSMTPHealthChecker(config ports.EmailConfig, timeout time.Duration) *SMTPHealthChecker {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return &SMTPHealthChecker{config: config, timeout: timeout}
}

func (s *SMTPHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	addr := net.JoinHostPort(s.config.SMTPHost, strconv.Itoa(s.config.SMTPPort))
	status := ports.HealthStatus{
		Component: "smtp",
		Details:   map[string]interface{}{"address": addr},
	}

	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		// Alerts stay pending until the relay is back, so the API keeps serving.
		status.Status = ports.HealthStatusDegraded
		status.Error = err.Error()
		return status
	}
	_ = conn.Close()

	status.Status = ports.HealthStatusHealthy
	return status
}

// CacheHealthChecker round-trips a probe key through the cache provider
type CacheHealthChecker struct {
	cache     ports.CacheProvider
	cacheType string
}

func NewCacheHealthChecker(cache ports.CacheProvider, cacheType string) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, cacheType: cacheType}
}

func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Details:   map[string]interface{}{"type": c.cacheType},
	}
	if c.cache == nil {
		return unhealthy(status, "cache provider is not configured")
	}

	if err := c.cache.Set(ctx, cacheProbeKey, []byte("ok"), time.Minute); err != nil {
		status.Status = ports.HealthStatusDegraded
		status.Error = err.Error()
		return status
	}
	if _, err := c.cache.Get(ctx, cacheProbeKey); err != nil {
		status.Status = ports.HealthStatusDegraded
		status.Error = err.Error()
		return status
	}

	if m, ok := c.cache.(ports.CacheMetrics); ok {
		stats := m.GetStats()
		status.Details["hits"] = stats.Hits
		status.Details["misses"] = stats.Misses
		status.Details["hit_ratio"] = stats.HitRatio
	}
	status.Status = ports.HealthStatusHealthy
	return status
}

// WeatherProviderHealthChecker reports the configured provider chain without calling it
type WeatherProviderHealthChecker struct {
	manager ports.WeatherProviderManager
}

func NewWeatherProviderHealthChecker(manager ports.WeatherProviderManager) *WeatherProviderHealthChecker {
	return &WeatherProviderHealthChecker{manager: manager}
}

func (w *WeatherProviderHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{Component: "weather_providers", Details: map[string]interface{}{}}
	if w.manager == nil {
		return unhealthy(status, "weather provider is not available")
	}

	info := w.manager.GetProviderInfo()
	for k, v := range info {
		status.Details[k] = v
	}
	if count, ok := info["total_providers"].(int); ok && count == 0 {
		status.Status = ports.HealthStatusDegraded
		status.Error = "no weather providers configured"
		return status
	}
	status.Status = ports.HealthStatusHealthy
	return status
}

// SystemHealthChecker runs all registered checkers concurrently
type SystemHealthChecker struct {
	checkers map[string]ports.HealthChecker
}

func NewSystemHealthChecker(checkers map[string]ports.HealthChecker) *SystemHealthChecker {
	filtered := make(map[string]ports.HealthChecker, len(checkers))
	for name, c := range checkers {
		if c != nil {
			filtered[name] = c
		}
	}
	return &SystemHealthChecker{checkers: filtered}
}

func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	var mu sync.Mutex
	results := make(map[string]ports.HealthStatus, len(s.checkers))

	g, gctx := errgroup.WithContext(ctx)
	for name, checker := range s.checkers {
		name, checker := name, checker
		g.Go(func() error {
			status := checker.Check(gctx)
			mu.Lock()
			results[name] = status
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// OverallStatus folds component results: any unhealthy wins, then degraded.
func OverallStatus(results map[string]ports.HealthStatus) string {
	overall := ports.HealthStatusHealthy
	for _, r := range results {
		switch r.Status {
		case ports.HealthStatusUnhealthy:
			return ports.HealthStatusUnhealthy
		case ports.HealthStatusDegraded:
			overall = ports.HealthStatusDegraded
		}
	}
	return overall
}

func unhealthy(status ports.HealthStatus, msg string) ports.HealthStatus {
	status.Status = ports.HealthStatusUnhealthy
	status.Error = msg
	return status
}
