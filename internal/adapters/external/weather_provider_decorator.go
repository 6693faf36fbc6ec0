package external

import (
	"context"
	"time"

	"weathertracker.app/internal/ports"
)

// InstrumentedWeatherProvider logs every provider call and records its outcome as a metric
type InstrumentedWeatherProvider struct {
	provider ports.WeatherProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector
}

func NewInstrumentedWeatherProvider(provider ports.WeatherProvider, logger ports.Logger, metrics ports.MetricsCollector) *InstrumentedWeatherProvider {
	return &InstrumentedWeatherProvider{provider: provider, logger: logger, metrics: metrics}
}

func (d *InstrumentedWeatherProvider) GetCurrentWeather(ctx context.Context, city string) (*ports.WeatherData, error) {
	name := d.provider.GetProviderName()
	start := time.Now()

	data, err := d.provider.GetCurrentWeather(ctx, city)
	took := time.Since(start)
	d.metrics.RecordWeatherAPICall(ctx, name, err == nil)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("provider", name),
			ports.F("city", city),
			ports.F("duration_ms", took.Milliseconds()),
			ports.F("error", err))
		return nil, err
	}

	d.logger.Info("Weather API request completed",
		ports.F("provider", name),
		ports.F("city", city),
		ports.F("duration_ms", took.Milliseconds()),
		ports.F("temperature", data.Temperature),
		ports.F("wind_speed", data.WindSpeed),
		ports.F("description", data.Description))
	return data, nil
}

func (d *InstrumentedWeatherProvider) GetProviderName() string {
	return d.provider.GetProviderName()
}
