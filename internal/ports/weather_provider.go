package ports

import (
	"context"
	"time"
)

// WeatherData represents a current-conditions observation returned by a provider
type WeatherData struct {
	Temperature     float64
	TemperatureUnit string
	Humidity        float64
	Description     string
	WindSpeed       float64
	WindSpeedUnit   string
	UVIndex         *float64
	City            string
	Timestamp       time.Time
}

// WeatherProvider defines the contract for weather data providers
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, city string) (*WeatherData, error)
	GetProviderName() string
}

// WeatherProviderManager defines the contract for managing multiple weather providers
type WeatherProviderManager interface {
	GetWeather(ctx context.Context, city string) (*WeatherData, error)
	GetProviderInfo() map[string]interface{}
}
