package database

import (
	"context"

	"gorm.io/gorm"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// SubscriptionRepositoryAdapter implements the SubscriptionRepository port using GORM
type SubscriptionRepositoryAdapter struct {
	db *gorm.DB
}

// NewSubscriptionRepositoryAdapter creates a new subscription repository adapter
func NewSubscriptionRepositoryAdapter(db *gorm.DB) ports.SubscriptionRepository {
	return &SubscriptionRepositoryAdapter{db: db}
}

// Save inserts a subscription. The default flag is managed by SetDefault only.
func (r *SubscriptionRepositoryAdapter) Save(ctx context.Context, sub *ports.SubscriptionData) error {
	if sub == nil {
		return errors.NewValidationError("subscription cannot be nil")
	}

	model := &SubscriptionModel{UserID: sub.UserID, LocationID: sub.LocationID}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return errors.NewAlreadyExistsError("already subscribed to this location")
		}
		return errors.NewDatabaseError("failed to save subscription", err)
	}

	sub.ID = model.ID
	sub.IsDefault = false
	sub.CreatedAt = model.CreatedAt
	sub.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *SubscriptionRepositoryAdapter) Find(ctx context.Context, userID, locationID uint) (*ports.SubscriptionData, error) {
	var model SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		First(&model).Error
	if err != nil {
		return nil, notFoundOr(err, "subscription not found", "failed to find subscription")
	}
	return subscriptionToData(&model), nil
}

func (r *SubscriptionRepositoryAdapter) FindDefaultForUser(ctx context.Context, userID uint) (*ports.SubscriptionData, error) {
	var model SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&model).Error
	if err != nil {
		return nil, notFoundOr(err, "no default location", "failed to find default subscription")
	}
	return subscriptionToData(&model), nil
}

func (r *SubscriptionRepositoryAdapter) ListByLocation(ctx context.Context, locationID uint) ([]*ports.SubscriptionData, error) {
	return r.list(ctx, "location_id = ?", locationID)
}

func (r *SubscriptionRepositoryAdapter) ListByUser(ctx context.Context, userID uint) ([]*ports.SubscriptionData, error) {
	return r.list(ctx, "user_id = ?", userID)
}

// SetDefault clears the user's other defaults and flags the given subscription, atomically
func (r *SubscriptionRepositoryAdapter) SetDefault(ctx context.Context, userID, locationID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&SubscriptionModel{}).
			Where("user_id = ? AND location_id <> ? AND is_default = ?", userID, locationID, true).
			Update("is_default", false).Error
		if err != nil {
			return errors.NewDatabaseError("failed to clear default location", err)
		}

		result := tx.Model(&SubscriptionModel{}).
			Where("user_id = ? AND location_id = ?", userID, locationID).
			Update("is_default", true)
		if result.Error != nil {
			return errors.NewDatabaseError("failed to set default location", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("subscription not found")
		}
		return nil
	})
}

func (r *SubscriptionRepositoryAdapter) Delete(ctx context.Context, userID, locationID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		Delete(&SubscriptionModel{})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to delete subscription", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("subscription not found")
	}
	return nil
}

func (r *SubscriptionRepositoryAdapter) list(ctx context.Context, query string, arg uint) ([]*ports.SubscriptionData, error) {
	var models []SubscriptionModel
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id ASC").Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list subscriptions", err)
	}

	subs := make([]*ports.SubscriptionData, len(models))
	for i := range models {
		subs[i] = subscriptionToData(&models[i])
	}
	return subs, nil
}
