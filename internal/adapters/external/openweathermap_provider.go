package external

import (
	"context"
	"net/url"

	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap.
// The current weather endpoint carries no UV index.
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
}

type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Client  HTTPClient
}

type openWeatherMapResponse struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	client := params.Client
	if client == nil {
		client = defaultHTTPClient()
	}
	return &OpenWeatherMapProviderAdapter{apiKey: params.APIKey, baseURL: baseURL, client: client}
}

func (p *OpenWeatherMapProviderAdapter) GetCurrentWeather(ctx context.Context, city string) (*ports.WeatherData, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	q := url.Values{"q": {city}, "appid": {p.apiKey}, "units": {"metric"}}
	var resp openWeatherMapResponse
	if err := getJSON(ctx, p.client, "OpenWeatherMap", p.baseURL+"/weather?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	description := "clear sky"
	if len(resp.Weather) > 0 {
		description = resp.Weather[0].Description
	}

	return &ports.WeatherData{
		Temperature:     resp.Main.Temp,
		TemperatureUnit: "celsius",
		Humidity:        resp.Main.Humidity,
		Description:     description,
		WindSpeed:       resp.Wind.Speed,
		WindSpeedUnit:   "ms",
		City:            city,
		Timestamp:       epochOrZero(resp.Dt),
	}, nil
}

func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}
