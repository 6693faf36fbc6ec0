// Package ports defines the interfaces for external dependencies in our hexagonal architecture.
// These interfaces are implemented by adapters and mocked for testing.
package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherProvider WeatherProviderManager
	Cache           CacheProvider
	ReadingCache    ReadingCache

	// Persistence
	UserRepository         UserRepository
	LocationRepository     LocationRepository
	SubscriptionRepository SubscriptionRepository
	ReadingRepository      ReadingRepository
	AlertRepository        AlertRepository

	// Communication
	EmailProvider  EmailProvider
	EventPublisher EventPublisher

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsCollector
}
