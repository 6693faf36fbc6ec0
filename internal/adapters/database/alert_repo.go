package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// AlertRepositoryAdapter implements the AlertRepository port using GORM
type AlertRepositoryAdapter struct {
	db *gorm.DB
}

// NewAlertRepositoryAdapter creates a new alert repository adapter
func NewAlertRepositoryAdapter(db *gorm.DB) ports.AlertRepository {
	return &AlertRepositoryAdapter{db: db}
}

// Create inserts a new alert. Alerts are never overwritten.
func (r *AlertRepositoryAdapter) Create(ctx context.Context, alert *ports.AlertData) error {
	if alert == nil {
		return errors.NewValidationError("alert cannot be nil")
	}
	if alert.ID != 0 {
		return errors.NewValidationError("alert already exists")
	}

	model := &AlertModel{
		UserID:               alert.UserID,
		LocationID:           alert.LocationID,
		ReadingID:            alert.ReadingID,
		Severity:             alert.Severity,
		Condition:            alert.Condition,
		Message:              alert.Message,
		IsActive:             alert.IsActive,
		IsRead:               alert.IsRead,
		IsForDefaultLocation: alert.IsForDefaultLocation,
		EmailSent:            alert.EmailSent,
		EmailSentAt:          alert.EmailSentAt,
		StartTime:            alert.StartTime,
		EndTime:              alert.EndTime,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.NewDatabaseError("failed to create alert", err)
	}

	alert.ID = model.ID
	alert.CreatedAt = model.CreatedAt
	alert.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *AlertRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.AlertDetailsData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("alert ID cannot be zero")
	}

	var model AlertModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "alert not found", "failed to find alert by ID")
	}

	details, err := r.withDetails(ctx, []AlertModel{model})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// ListForUser returns the user's alerts newest first
func (r *AlertRepositoryAdapter) ListForUser(ctx context.Context, userID uint, activeOnly bool, limit int) ([]*ports.AlertDetailsData, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var models []AlertModel
	if err := query.Order("start_time DESC, id DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list alerts", err)
	}
	return r.withDetails(ctx, models)
}

// ListDefaultLocationForUser returns alerts for the user's current default location, newest first.
// A user without a default location gets an empty list.
func (r *AlertRepositoryAdapter) ListDefaultLocationForUser(ctx context.Context, userID uint, limit int) ([]*ports.AlertDetailsData, error) {
	defaultLocation := r.db.Model(&SubscriptionModel{}).
		Select("location_id").
		Where("user_id = ? AND is_default = ?", userID, true)

	var models []AlertModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id IN (?)", userID, defaultLocation).
		Order("start_time DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list default location alerts", err)
	}
	return r.withDetails(ctx, models)
}

// ListPendingEmail returns active, unsent default-location alerts that started at or before cutoff, oldest first
func (r *AlertRepositoryAdapter) ListPendingEmail(ctx context.Context, cutoff time.Time) ([]*ports.AlertDetailsData, error) {
	var models []AlertModel
	err := r.db.WithContext(ctx).
		Where("is_for_default_location = ? AND email_sent = ? AND is_active = ?", true, false, true).
		Where("start_time <= ?", cutoff).
		Order("start_time ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list pending alert emails", err)
	}
	return r.withDetails(ctx, models)
}

func (r *AlertRepositoryAdapter) MarkAsRead(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&AlertModel{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to mark alert as read", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, id)
	}
	return nil
}

// Dismiss only touches active alerts so a repeat call keeps the original end time
func (r *AlertRepositoryAdapter) Dismiss(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&AlertModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "end_time": at})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to dismiss alert", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, id)
	}
	return nil
}

func (r *AlertRepositoryAdapter) MarkEmailAsSent(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&AlertModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"email_sent": true, "email_sent_at": at})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to mark alert email as sent", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, id)
	}
	return nil
}

func (r *AlertRepositoryAdapter) ensureExists(ctx context.Context, id uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&AlertModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.NewDatabaseError("failed to look up alert", err)
	}
	if count == 0 {
		return errors.NewNotFoundError("alert not found")
	}
	return nil
}

// withDetails attaches locations, readings and recipients with one query per table
func (r *AlertRepositoryAdapter) withDetails(ctx context.Context, models []AlertModel) ([]*ports.AlertDetailsData, error) {
	details := make([]*ports.AlertDetailsData, len(models))
	if len(models) == 0 {
		return details, nil
	}

	var locationIDs, readingIDs, userIDs []uint
	for _, m := range models {
		locationIDs = append(locationIDs, m.LocationID)
		readingIDs = append(readingIDs, m.ReadingID)
		userIDs = append(userIDs, m.UserID)
	}

	db := r.db.WithContext(ctx)

	var locations []LocationModel
	if err := db.Where("id IN ?", locationIDs).Find(&locations).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to load alert locations", err)
	}
	var readings []ReadingModel
	if err := db.Where("id IN ?", readingIDs).Find(&readings).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to load alert readings", err)
	}
	var users []UserModel
	if err := db.Select("id", "email", "name").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to load alert recipients", err)
	}

	locationByID := make(map[uint]*ports.LocationData, len(locations))
	for i := range locations {
		locationByID[locations[i].ID] = locationToData(&locations[i])
	}
	readingByID := make(map[uint]*ports.ReadingData, len(readings))
	for i := range readings {
		readingByID[readings[i].ID] = readingToData(&readings[i])
	}
	userByID := make(map[uint]*UserModel, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	for i := range models {
		d := &ports.AlertDetailsData{
			Alert:    alertToData(&models[i]),
			Location: locationByID[models[i].LocationID],
			Reading:  readingByID[models[i].ReadingID],
		}
		if u, ok := userByID[models[i].UserID]; ok {
			d.UserEmail = u.Email
			d.UserName = u.Name
		}
		details[i] = d
	}
	return details, nil
}
