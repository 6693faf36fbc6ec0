package external

import (
	"context"
	"fmt"

	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// WeatherProviderManagerAdapter tries each provider in order until one answers
type WeatherProviderManagerAdapter struct {
	providers []ports.WeatherProvider
	logger    ports.Logger
}

// ProviderManagerConfig describes which providers to build and in what order
type ProviderManagerConfig struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string
	OpenWeatherKey    string
	OpenWeatherURL    string
	ProviderOrder     []string
	Client            HTTPClient
	Logger            ports.Logger
	Metrics           ports.MetricsCollector
}

// NewWeatherProviderManager builds every provider that has an API key, wraps it with
// logging and metrics, and chains them in ProviderOrder.
func NewWeatherProviderManager(cfg ProviderManagerConfig) *WeatherProviderManagerAdapter {
	available := map[string]ports.WeatherProvider{}
	if cfg.WeatherAPIKey != "" {
		available["weatherapi"] = NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{
			APIKey: cfg.WeatherAPIKey, BaseURL: cfg.WeatherAPIBaseURL, Client: cfg.Client,
		})
	}
	if cfg.OpenWeatherKey != "" {
		available["openweathermap"] = NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
			APIKey: cfg.OpenWeatherKey, BaseURL: cfg.OpenWeatherURL, Client: cfg.Client,
		})
	}

	var chain []ports.WeatherProvider
	for _, name := range cfg.ProviderOrder {
		if p, ok := available[name]; ok {
			chain = append(chain, NewInstrumentedWeatherProvider(p, cfg.Logger, cfg.Metrics))
			delete(available, name)
		}
	}

	return NewWeatherProviderManagerAdapter(chain, cfg.Logger)
}

func NewWeatherProviderManagerAdapter(providers []ports.WeatherProvider, logger ports.Logger) *WeatherProviderManagerAdapter {
	return &WeatherProviderManagerAdapter{providers: providers, logger: logger}
}

// GetWeather returns the first successful answer. A not found answer stops the chain.
func (m *WeatherProviderManagerAdapter) GetWeather(ctx context.Context, city string) (*ports.WeatherData, error) {
	if len(m.providers) == 0 {
		return nil, errors.NewExternalAPIError("no weather providers configured", nil)
	}

	var lastErr error
	for i, provider := range m.providers {
		data, err := provider.GetCurrentWeather(ctx, city)
		if err == nil {
			return data, nil
		}
		if errors.IsNotFoundError(err) || ctx.Err() != nil {
			return nil, err
		}

		lastErr = err
		m.logger.Warn("Weather provider failed, trying next",
			ports.F("provider", provider.GetProviderName()),
			ports.F("attempt", i+1),
			ports.F("city", city),
			ports.F("error", err))
	}

	return nil, fmt.Errorf("all weather providers failed (tried %d): %w", len(m.providers), lastErr)
}

func (m *WeatherProviderManagerAdapter) GetProviderInfo() map[string]interface{} {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.GetProviderName()
	}
	return map[string]interface{}{
		"total_providers":  len(m.providers),
		"provider_order":   names,
		"fallback_enabled": len(m.providers) > 1,
	}
}
