// Package external provides adapters for external services:
// weather providers, caches and the SMTP email sender.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// HTTPClient is the subset of *http.Client the providers use
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func defaultHTTPClient() HTTPClient {
	return &http.Client{Timeout: 10 * time.Second}
}

// getJSON performs a GET and decodes a 200 response into out. 404 maps to a not found error.
func getJSON(ctx context.Context, client HTTPClient, provider, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.NewExternalAPIError("failed to build "+provider+" request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.NewExternalAPIError("failed to call "+provider, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "provider", provider, "error", closeErr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.NewNotFoundError("city not found")
	case resp.StatusCode != http.StatusOK:
		return errors.NewExternalAPIError(fmt.Sprintf("%s returned status %d", provider, resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewExternalAPIError("failed to decode "+provider+" response", err)
	}
	return nil
}

func epochOrZero(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// WeatherAPIProviderAdapter implements WeatherProvider port for WeatherAPI.com
type WeatherAPIProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
}

type WeatherAPIProviderParams struct {
	APIKey  string
	BaseURL string
	Client  HTTPClient
}

type weatherAPIResponse struct {
	Current struct {
		LastUpdatedEpoch int64   `json:"last_updated_epoch"`
		TempC            float64 `json:"temp_c"`
		Humidity         float64 `json:"humidity"`
		WindKPH          float64 `json:"wind_kph"`
		UV               float64 `json:"uv"`
		Condition        struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

func NewWeatherAPIProviderAdapter(params WeatherAPIProviderParams) *WeatherAPIProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://api.weatherapi.com/v1"
	}
	client := params.Client
	if client == nil {
		client = defaultHTTPClient()
	}
	return &WeatherAPIProviderAdapter{apiKey: params.APIKey, baseURL: baseURL, client: client}
}

func (p *WeatherAPIProviderAdapter) GetCurrentWeather(ctx context.Context, city string) (*ports.WeatherData, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	q := url.Values{"key": {p.apiKey}, "q": {city}}
	var resp weatherAPIResponse
	if err := getJSON(ctx, p.client, "WeatherAPI", p.baseURL+"/current.json?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	uv := resp.Current.UV
	return &ports.WeatherData{
		Temperature:     resp.Current.TempC,
		TemperatureUnit: "celsius",
		Humidity:        resp.Current.Humidity,
		Description:     resp.Current.Condition.Text,
		WindSpeed:       resp.Current.WindKPH,
		WindSpeedUnit:   "kmh",
		UVIndex:         &uv,
		City:            city,
		Timestamp:       epochOrZero(resp.Current.LastUpdatedEpoch),
	}, nil
}

func (p *WeatherAPIProviderAdapter) GetProviderName() string {
	return "weatherapi"
}
