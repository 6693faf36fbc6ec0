package weather

import (
	"fmt"
	"strings"
	"time"

	"weathertracker.app/internal/ports"
)

const (
	absoluteZeroCelsius    = -273.15
	absoluteZeroFahrenheit = -459.67
)

// TemperatureUnit is the unit a reading's temperature was captured in
type TemperatureUnit string

const (
	TemperatureCelsius    TemperatureUnit = "celsius"
	TemperatureFahrenheit TemperatureUnit = "fahrenheit"
)

// IsValid checks if the temperature unit is supported
func (u TemperatureUnit) IsValid() bool {
	return u == TemperatureCelsius || u == TemperatureFahrenheit
}

// Symbol returns the single-letter symbol used in messages, e.g. "C"
func (u TemperatureUnit) Symbol() string {
	if u == "" {
		return ""
	}
	return strings.ToUpper(string(u)[:1])
}

// WindSpeedUnit is the unit a reading's wind speed was captured in
type WindSpeedUnit string

const (
	WindSpeedKMH WindSpeedUnit = "kmh"
	WindSpeedMPH WindSpeedUnit = "mph"
	WindSpeedMS  WindSpeedUnit = "ms"
)

// IsValid checks if the wind speed unit is supported
func (u WindSpeedUnit) IsValid() bool {
	return u == WindSpeedKMH || u == WindSpeedMPH || u == WindSpeedMS
}

// Reading is one timestamped weather observation for a location. Readings are immutable once recorded.
type Reading struct {
	ID              uint            `json:"id"`
	LocationID      uint            `json:"location_id"`
	Temperature     float64         `json:"temperature"`
	TemperatureUnit TemperatureUnit `json:"temperature_unit"`
	Description     string          `json:"description"`
	WindSpeed       float64         `json:"wind_speed"`
	WindSpeedUnit   WindSpeedUnit   `json:"wind_speed_unit"`
	Humidity        float64         `json:"humidity"`
	UVIndex         *float64        `json:"uv_index,omitempty"`
	CapturedAt      time.Time       `json:"captured_at"`
}

// IsValid validates a reading at the ingestion boundary
func (r *Reading) IsValid() error {
	if r.LocationID == 0 {
		return fmt.Errorf("location is required")
	}
	if !r.TemperatureUnit.IsValid() {
		return fmt.Errorf("temperature unit must be one of: celsius, fahrenheit")
	}
	if !r.WindSpeedUnit.IsValid() {
		return fmt.Errorf("wind speed unit must be one of: kmh, mph, ms")
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if r.TemperatureUnit == TemperatureCelsius && r.Temperature < absoluteZeroCelsius {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	if r.TemperatureUnit == TemperatureFahrenheit && r.Temperature < absoluteZeroFahrenheit {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	if r.WindSpeed < 0 {
		return fmt.Errorf("wind speed cannot be negative")
	}
	if r.Humidity < 0 || r.Humidity > 100 {
		return fmt.Errorf("humidity must be between 0 and 100")
	}
	if r.UVIndex != nil && *r.UVIndex < 0 {
		return fmt.Errorf("uv index cannot be negative")
	}
	return nil
}

// HumidityDescription provides a human-readable description of humidity level
func (r *Reading) HumidityDescription() string {
	switch {
	case r.Humidity < 20:
		return "Very dry"
	case r.Humidity < 30:
		return "Dry"
	case r.Humidity < 60:
		return "Comfortable"
	case r.Humidity < 80:
		return "Humid"
	default:
		return "Very humid"
	}
}

// String returns a string representation of the reading
func (r *Reading) String() string {
	return fmt.Sprintf("%.1f°%s, wind %.1f %s, %.0f%% humidity, %s",
		r.Temperature, r.TemperatureUnit.Symbol(), r.WindSpeed, r.WindSpeedUnit, r.Humidity, r.Description)
}

// ToData converts the reading to its persistence representation
func (r *Reading) ToData() *ports.ReadingData {
	return &ports.ReadingData{
		ID:              r.ID,
		LocationID:      r.LocationID,
		Temperature:     r.Temperature,
		TemperatureUnit: string(r.TemperatureUnit),
		Description:     r.Description,
		WindSpeed:       r.WindSpeed,
		WindSpeedUnit:   string(r.WindSpeedUnit),
		Humidity:        r.Humidity,
		UVIndex:         r.UVIndex,
		CapturedAt:      r.CapturedAt,
	}
}

// ReadingFromData converts a persisted reading to the domain type
func ReadingFromData(data *ports.ReadingData) *Reading {
	if data == nil {
		return nil
	}
	return &Reading{
		ID:              data.ID,
		LocationID:      data.LocationID,
		Temperature:     data.Temperature,
		TemperatureUnit: TemperatureUnit(data.TemperatureUnit),
		Description:     data.Description,
		WindSpeed:       data.WindSpeed,
		WindSpeedUnit:   WindSpeedUnit(data.WindSpeedUnit),
		Humidity:        data.Humidity,
		UVIndex:         data.UVIndex,
		CapturedAt:      data.CapturedAt,
	}
}

// readingFromProvider builds a reading from a provider observation
func readingFromProvider(locationID uint, data *ports.WeatherData) *Reading {
	return &Reading{
		LocationID:      locationID,
		Temperature:     data.Temperature,
		TemperatureUnit: TemperatureUnit(data.TemperatureUnit),
		Description:     data.Description,
		WindSpeed:       data.WindSpeed,
		WindSpeedUnit:   WindSpeedUnit(data.WindSpeedUnit),
		Humidity:        data.Humidity,
		UVIndex:         data.UVIndex,
		CapturedAt:      data.Timestamp,
	}
}
