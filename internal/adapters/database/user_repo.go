package database

import (
	"context"
	stderrors "errors"
	"strings"

	"gorm.io/gorm"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// UserRepositoryAdapter implements the UserRepository port using GORM
type UserRepositoryAdapter struct {
	db *gorm.DB
}

// NewUserRepositoryAdapter creates a new user repository adapter
func NewUserRepositoryAdapter(db *gorm.DB) ports.UserRepository {
	return &UserRepositoryAdapter{db: db}
}

// Save inserts a new user
func (r *UserRepositoryAdapter) Save(ctx context.Context, user *ports.UserData) error {
	if user == nil {
		return errors.NewValidationError("user cannot be nil")
	}

	model := &UserModel{
		Email:         user.Email,
		Name:          user.Name,
		PasswordHash:  user.PasswordHash,
		PreferredUnit: user.PreferredUnit,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return errors.NewAlreadyExistsError("email already registered")
		}
		return errors.NewDatabaseError("failed to save user", err)
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.UserData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("user ID cannot be zero")
	}

	var model UserModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "user not found", "failed to find user by ID")
	}
	return userToData(&model), nil
}

func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*ports.UserData, error) {
	if email == "" {
		return nil, errors.NewValidationError("email cannot be empty")
	}

	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, notFoundOr(err, "user not found", "failed to find user by email")
	}
	return userToData(&model), nil
}

// Update writes the mutable profile fields and password hash
func (r *UserRepositoryAdapter) Update(ctx context.Context, user *ports.UserData) error {
	if user == nil {
		return errors.NewValidationError("user cannot be nil")
	}
	if user.ID == 0 {
		return errors.NewValidationError("user ID cannot be zero for update")
	}

	result := r.db.WithContext(ctx).Model(&UserModel{ID: user.ID}).Updates(map[string]interface{}{
		"name":           user.Name,
		"password_hash":  user.PasswordHash,
		"preferred_unit": user.PreferredUnit,
	})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("user not found")
	}
	return nil
}

// Delete removes the user with their subscriptions and alerts
func (r *UserRepositoryAdapter) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.NewValidationError("user ID cannot be zero for delete")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&AlertModel{}).Error; err != nil {
			return errors.NewDatabaseError("failed to delete user alerts", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&SubscriptionModel{}).Error; err != nil {
			return errors.NewDatabaseError("failed to delete user subscriptions", err)
		}
		result := tx.Delete(&UserModel{}, id)
		if result.Error != nil {
			return errors.NewDatabaseError("failed to delete user", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("user not found")
		}
		return nil
	})
}

// notFoundOr maps gorm.ErrRecordNotFound to a not found error and anything else to a database error
func notFoundOr(err error, notFoundMsg, dbMsg string) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NewNotFoundError(notFoundMsg)
	}
	return errors.NewDatabaseError(dbMsg, err)
}

func isUniqueViolation(err error) bool {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
