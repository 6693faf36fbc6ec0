package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"weathertracker.app/internal/ports"
)

// EmailProvider is a mock of ports.EmailProvider
type EmailProvider struct {
	mock.Mock
}

func NewEmailProvider(t testingT) *EmailProvider {
	m := &EmailProvider{}
	register(&m.Mock, t)
	return m
}

func (m *EmailProvider) SendEmail(ctx context.Context, params ports.EmailParams) error {
	return m.Called(ctx, params).Error(0)
}

// EventPublisher is a mock of ports.EventPublisher
type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	register(&m.Mock, t)
	return m
}

func (m *EventPublisher) Publish(ctx context.Context, events ...ports.Event) error {
	return m.Called(ctx, events).Error(0)
}

func (m *EventPublisher) Close() error {
	return m.Called().Error(0)
}

// WeatherProvider is a mock of ports.WeatherProvider
type WeatherProvider struct {
	mock.Mock
}

func NewWeatherProvider(t testingT) *WeatherProvider {
	m := &WeatherProvider{}
	register(&m.Mock, t)
	return m
}

func (m *WeatherProvider) GetCurrentWeather(ctx context.Context, city string) (*ports.WeatherData, error) {
	args := m.Called(ctx, city)
	var r0 *ports.WeatherData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.WeatherData)
	}
	return r0, args.Error(1)
}

func (m *WeatherProvider) GetProviderName() string {
	return m.Called().String(0)
}

// WeatherProviderManager is a mock of ports.WeatherProviderManager
type WeatherProviderManager struct {
	mock.Mock
}

func NewWeatherProviderManager(t testingT) *WeatherProviderManager {
	m := &WeatherProviderManager{}
	register(&m.Mock, t)
	return m
}

func (m *WeatherProviderManager) GetWeather(ctx context.Context, city string) (*ports.WeatherData, error) {
	args := m.Called(ctx, city)
	var r0 *ports.WeatherData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.WeatherData)
	}
	return r0, args.Error(1)
}

func (m *WeatherProviderManager) GetProviderInfo() map[string]interface{} {
	args := m.Called()
	var r0 map[string]interface{}
	if v := args.Get(0); v != nil {
		r0 = v.(map[string]interface{})
	}
	return r0
}

// ReadingCache is a mock of ports.ReadingCache
type ReadingCache struct {
	mock.Mock
}

func NewReadingCache(t testingT) *ReadingCache {
	m := &ReadingCache{}
	register(&m.Mock, t)
	return m
}

func (m *ReadingCache) GetLatest(ctx context.Context, locationID uint) (*ports.ReadingData, error) {
	args := m.Called(ctx, locationID)
	var r0 *ports.ReadingData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.ReadingData)
	}
	return r0, args.Error(1)
}

func (m *ReadingCache) SetLatest(ctx context.Context, reading *ports.ReadingData, ttl time.Duration) error {
	return m.Called(ctx, reading, ttl).Error(0)
}

func (m *ReadingCache) Invalidate(ctx context.Context, locationID uint) error {
	return m.Called(ctx, locationID).Error(0)
}

// CacheProvider is a mock of ports.CacheProvider
type CacheProvider struct {
	mock.Mock
}

func NewCacheProvider(t testingT) *CacheProvider {
	m := &CacheProvider{}
	register(&m.Mock, t)
	return m
}

func (m *CacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	var r0 []byte
	if v := args.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, args.Error(1)
}

func (m *CacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *CacheProvider) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *CacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *CacheProvider) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
