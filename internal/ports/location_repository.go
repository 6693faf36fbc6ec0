package ports

import (
	"context"
	"time"
)

// LocationData represents a tracked location for persistence
type LocationData struct {
	ID        uint
	Name      string
	City      string
	Country   string
	Latitude  float64
	Longitude float64
	CreatedBy uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubscriptionData links a user to a location. At most one subscription per user is the default.
type SubscriptionData struct {
	ID         uint
	UserID     uint
	LocationID uint
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LocationRepository defines the contract for location persistence
type LocationRepository interface {
	Save(ctx context.Context, location *LocationData) error
	FindByID(ctx context.Context, id uint) (*LocationData, error)
	List(ctx context.Context) ([]*LocationData, error)
	// Delete removes the location together with its subscriptions, readings and alerts.
	Delete(ctx context.Context, id uint) error
}

// SubscriptionRepository defines the contract for user-to-location subscription persistence
type SubscriptionRepository interface {
	Save(ctx context.Context, sub *SubscriptionData) error
	Find(ctx context.Context, userID, locationID uint) (*SubscriptionData, error)
	FindDefaultForUser(ctx context.Context, userID uint) (*SubscriptionData, error)
	ListByLocation(ctx context.Context, locationID uint) ([]*SubscriptionData, error)
	ListByUser(ctx context.Context, userID uint) ([]*SubscriptionData, error)
	SetDefault(ctx context.Context, userID, locationID uint) error
	Delete(ctx context.Context, userID, locationID uint) error
}
