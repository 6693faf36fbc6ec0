package database

import (
	"context"

	"gorm.io/gorm"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// LocationRepositoryAdapter implements the LocationRepository port using GORM
type LocationRepositoryAdapter struct {
	db *gorm.DB
}

// NewLocationRepositoryAdapter creates a new location repository adapter
func NewLocationRepositoryAdapter(db *gorm.DB) ports.LocationRepository {
	return &LocationRepositoryAdapter{db: db}
}

// Save creates the location, or updates it when it already has an ID
func (r *LocationRepositoryAdapter) Save(ctx context.Context, loc *ports.LocationData) error {
	if loc == nil {
		return errors.NewValidationError("location cannot be nil")
	}

	model := &LocationModel{
		ID:        loc.ID,
		Name:      loc.Name,
		City:      loc.City,
		Country:   loc.Country,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		CreatedBy: loc.CreatedBy,
		CreatedAt: loc.CreatedAt,
	}

	var result *gorm.DB
	if loc.ID == 0 {
		result = r.db.WithContext(ctx).Create(model)
	} else {
		result = r.db.WithContext(ctx).Save(model)
	}
	if result.Error != nil {
		return errors.NewDatabaseError("failed to save location", result.Error)
	}

	loc.ID = model.ID
	loc.CreatedAt = model.CreatedAt
	loc.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *LocationRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.LocationData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("location ID cannot be zero")
	}

	var model LocationModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "location not found", "failed to find location by ID")
	}
	return locationToData(&model), nil
}

func (r *LocationRepositoryAdapter) List(ctx context.Context) ([]*ports.LocationData, error) {
	var models []LocationModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list locations", err)
	}

	locations := make([]*ports.LocationData, len(models))
	for i := range models {
		locations[i] = locationToData(&models[i])
	}
	return locations, nil
}

// Delete removes the location and everything hanging off it in one transaction
func (r *LocationRepositoryAdapter) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.NewValidationError("location ID cannot be zero for delete")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{&AlertModel{}, &ReadingModel{}, &SubscriptionModel{}} {
			if err := tx.Where("location_id = ?", id).Delete(dependent).Error; err != nil {
				return errors.NewDatabaseError("failed to delete location dependents", err)
			}
		}

		result := tx.Delete(&LocationModel{}, id)
		if result.Error != nil {
			return errors.NewDatabaseError("failed to delete location", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("location not found")
		}
		return nil
	})
}
