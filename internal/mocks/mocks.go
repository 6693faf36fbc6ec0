// Package mocks provides testify mocks for the ports interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"weathertracker.app/internal/ports"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// NopLogger discards every log entry
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (NopLogger) Debug(string, ...ports.Field) {}
func (NopLogger) Info(string, ...ports.Field) {}
func (NopLogger) Warn(string, ...ports.Field) {}
func (NopLogger) Error(string, ...ports.Field) {}

// NopMetrics discards every metric
type NopMetrics struct{}

func NewNopMetrics() *NopMetrics { return &NopMetrics{} }

func (NopMetrics) RecordCacheHit(context.Context) {}
func (NopMetrics) RecordCacheMiss(context.Context) {}
func (NopMetrics) RecordWeatherAPICall(context.Context, string, bool) {}
func (NopMetrics) RecordAlertsMaterialized(context.Context, int, int) {}
func (NopMetrics) RecordDispatchRun(context.Context, string, int, int, time.Duration) {}

// MetricsCollector is a mock of ports.MetricsCollector
type MetricsCollector struct {
	mock.Mock
}

func NewMetricsCollector(t testingT) *MetricsCollector {
	m := &MetricsCollector{}
	register(&m.Mock, t)
	return m
}

func (m *MetricsCollector) RecordCacheHit(ctx context.Context) {
	m.Called(ctx)
}

func (m *MetricsCollector) RecordCacheMiss(ctx context.Context) {
	m.Called(ctx)
}

func (m *MetricsCollector) RecordWeatherAPICall(ctx context.Context, provider string, success bool) {
	m.Called(ctx, provider, success)
}

func (m *MetricsCollector) RecordAlertsMaterialized(ctx context.Context, created, failed int) {
	m.Called(ctx, created, failed)
}

func (m *MetricsCollector) RecordDispatchRun(ctx context.Context, trigger string, sent, failed int, duration time.Duration) {
	m.Called(ctx, trigger, sent, failed, duration)
}

// ConfigProvider is a mock of ports.ConfigProvider
type ConfigProvider struct {
	mock.Mock
}

func NewConfigProvider(t testingT) *ConfigProvider {
	m := &ConfigProvider{}
	register(&m.Mock, t)
	return m
}

func (m *ConfigProvider) GetWeatherConfig() ports.WeatherConfig {
	return m.Called().Get(0).(ports.WeatherConfig)
}

func (m *ConfigProvider) GetAppConfig() ports.AppConfig {
	return m.Called().Get(0).(ports.AppConfig)
}

func (m *ConfigProvider) GetServerConfig() ports.ServerConfig {
	return m.Called().Get(0).(ports.ServerConfig)
}

func (m *ConfigProvider) GetDatabaseConfig() ports.DatabaseConfig {
	return m.Called().Get(0).(ports.DatabaseConfig)
}

func (m *ConfigProvider) GetEmailConfig() ports.EmailConfig {
	return m.Called().Get(0).(ports.EmailConfig)
}

func (m *ConfigProvider) GetCacheConfig() ports.CacheConfig {
	return m.Called().Get(0).(ports.CacheConfig)
}

func (m *ConfigProvider) GetSchedulerConfig() ports.SchedulerConfig {
	return m.Called().Get(0).(ports.SchedulerConfig)
}

func (m *ConfigProvider) GetAuthConfig() ports.AuthConfig {
	return m.Called().Get(0).(ports.AuthConfig)
}

func (m *ConfigProvider) GetEventsConfig() ports.EventsConfig {
	return m.Called().Get(0).(ports.EventsConfig)
}
