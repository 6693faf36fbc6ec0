package location

import (
	"fmt"
	"strings"
	"time"

	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/validation"
)

// Location is a place whose weather is tracked
type Location struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription links a user to a location. A user has at most one default subscription.
type Subscription struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	LocationID uint      `json:"location_id"`
	IsDefault  bool      `json:"is_default"`
	Location   *Location `json:"location,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateLocationParams represents the input for creating a location
type CreateLocationParams struct {
	Name      string
	City      string
	Country   string
	Latitude  float64
	Longitude float64
	CreatedBy uint
}

// IsValid validates location creation parameters
func (p *CreateLocationParams) IsValid() error {
	if !validation.IsNotEmpty(p.Name) {
		return fmt.Errorf("name cannot be empty")
	}
	if !validation.IsNotEmpty(p.City) {
		return fmt.Errorf("city cannot be empty")
	}
	if !validation.IsValidLatitude(p.Latitude) {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if !validation.IsValidLongitude(p.Longitude) {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// Normalize trims user-provided text fields
func (p *CreateLocationParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.City = strings.TrimSpace(p.City)
	p.Country = strings.TrimSpace(p.Country)
}

// FromData converts a persisted location to the domain type
func FromData(data *ports.LocationData) *Location {
	if data == nil {
		return nil
	}
	return &Location{
		ID:        data.ID,
		Name:      data.Name,
		City:      data.City,
		Country:   data.Country,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		CreatedBy: data.CreatedBy,
		CreatedAt: data.CreatedAt,
	}
}

func subscriptionFromData(data *ports.SubscriptionData) *Subscription {
	return &Subscription{
		ID:         data.ID,
		UserID:     data.UserID,
		LocationID: data.LocationID,
		IsDefault:  data.IsDefault,
		CreatedAt:  data.CreatedAt,
	}
}
