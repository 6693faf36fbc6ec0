package ports

import (
	"context"
	"time"
)

// AlertData represents a materialized alert for persistence
type AlertData struct {
	ID                   uint
	UserID               uint
	LocationID           uint
	ReadingID            uint
	Severity             string
	Condition            string
	Message              string
	IsActive             bool
	IsRead               bool
	IsForDefaultLocation bool
	EmailSent            bool
	EmailSentAt          *time.Time
	StartTime            time.Time
	EndTime              *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AlertDetailsData is an alert joined with its location, reading and recipient at query time
type AlertDetailsData struct {
	Alert     AlertData
	Location  *LocationData
	Reading   *ReadingData
	UserEmail string
	UserName  string
}

// AlertRepository defines the contract for alert persistence
type AlertRepository interface {
	Create(ctx context.Context, alert *AlertData) error
	FindByID(ctx context.Context, id uint) (*AlertDetailsData, error)
	ListForUser(ctx context.Context, userID uint, activeOnly bool, limit int) ([]*AlertDetailsData, error)
	ListDefaultLocationForUser(ctx context.Context, userID uint, limit int) ([]*AlertDetailsData, error)
	// ListPendingEmail returns active, unsent, default-location alerts that started at or before cutoff.
	ListPendingEmail(ctx context.Context, cutoff time.Time) ([]*AlertDetailsData, error)
	MarkAsRead(ctx context.Context, id uint) error
	// Dismiss deactivates the alert and stamps its end time. Already dismissed alerts are left untouched.
	Dismiss(ctx context.Context, id uint, at time.Time) error
	MarkEmailAsSent(ctx context.Context, id uint, at time.Time) error
}
