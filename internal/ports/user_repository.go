package ports

import (
	"context"
	"time"
)

// UserData represents a registered user for persistence
type UserData struct {
	ID            uint
	Email         string
	Name          string
	PasswordHash  string
	PreferredUnit string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserRepository defines the contract for user persistence
type UserRepository interface {
	Save(ctx context.Context, user *UserData) error
	FindByID(ctx context.Context, id uint) (*UserData, error)
	FindByEmail(ctx context.Context, email string) (*UserData, error)
	Update(ctx context.Context, user *UserData) error
	// Delete removes the user and their subscriptions and alerts.
	Delete(ctx context.Context, id uint) error
}
