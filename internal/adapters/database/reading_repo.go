package database

import (
	"context"

	"gorm.io/gorm"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// ReadingRepositoryAdapter implements the ReadingRepository port using GORM.
// Readings are append-only.
type ReadingRepositoryAdapter struct {
	db *gorm.DB
}

// NewReadingRepositoryAdapter creates a new reading repository adapter
func NewReadingRepositoryAdapter(db *gorm.DB) ports.ReadingRepository {
	return &ReadingRepositoryAdapter{db: db}
}

func (r *ReadingRepositoryAdapter) Save(ctx context.Context, reading *ports.ReadingData) error {
	if reading == nil {
		return errors.NewValidationError("reading cannot be nil")
	}
	if reading.ID != 0 {
		return errors.NewValidationError("readings cannot be modified once recorded")
	}

	model := &ReadingModel{
		LocationID:      reading.LocationID,
		Temperature:     reading.Temperature,
		TemperatureUnit: reading.TemperatureUnit,
		Description:     reading.Description,
		WindSpeed:       reading.WindSpeed,
		WindSpeedUnit:   reading.WindSpeedUnit,
		Humidity:        reading.Humidity,
		UVIndex:         reading.UVIndex,
		CapturedAt:      reading.CapturedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.NewDatabaseError("failed to save reading", err)
	}

	reading.ID = model.ID
	reading.CreatedAt = model.CreatedAt
	return nil
}

func (r *ReadingRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.ReadingData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("reading ID cannot be zero")
	}

	var model ReadingModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "reading not found", "failed to find reading by ID")
	}
	return readingToData(&model), nil
}

func (r *ReadingRepositoryAdapter) FindLatestByLocation(ctx context.Context, locationID uint) (*ports.ReadingData, error) {
	var model ReadingModel
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("captured_at DESC, id DESC").
		First(&model).Error
	if err != nil {
		return nil, notFoundOr(err, "no readings for location", "failed to find latest reading")
	}
	return readingToData(&model), nil
}

// ListByLocation returns readings newest first
func (r *ReadingRepositoryAdapter) ListByLocation(ctx context.Context, locationID uint, limit int) ([]*ports.ReadingData, error) {
	var models []ReadingModel
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("captured_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list readings", err)
	}

	readings := make([]*ports.ReadingData, len(models))
	for i := range models {
		readings[i] = readingToData(&models[i])
	}
	return readings, nil
}
