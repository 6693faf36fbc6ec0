package ports

import (
	"context"
	"time"
)

// ReadingData represents a weather reading for persistence
type ReadingData struct {
	ID              uint
	LocationID      uint
	Temperature     float64
	TemperatureUnit string
	Description     string
	WindSpeed       float64
	WindSpeedUnit   string
	Humidity        float64
	UVIndex         *float64
	CapturedAt      time.Time
	CreatedAt       time.Time
}

// ReadingRepository defines the contract for weather reading persistence
type ReadingRepository interface {
	Save(ctx context.Context, reading *ReadingData) error
	FindByID(ctx context.Context, id uint) (*ReadingData, error)
	FindLatestByLocation(ctx context.Context, locationID uint) (*ReadingData, error)
	ListByLocation(ctx context.Context, locationID uint, limit int) ([]*ReadingData, error)
}
