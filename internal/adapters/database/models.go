package database

import (
	"time"

	"weathertracker.app/internal/ports"
)

// UserModel represents the database model for users
type UserModel struct {
	ID            uint   `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex;not null"`
	Name          string `gorm:"not null"`
	PasswordHash  string `gorm:"not null"`
	PreferredUnit string `gorm:"not null;default:celsius"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// LocationModel represents the database model for tracked locations
type LocationModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	City      string `gorm:"index;not null"`
	Country   string
	Latitude  float64
	Longitude float64
	CreatedBy uint `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LocationModel) TableName() string {
	return "locations"
}

// SubscriptionModel links a user to a location
type SubscriptionModel struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"uniqueIndex:idx_subscription_user_location;not null"`
	LocationID uint `gorm:"uniqueIndex:idx_subscription_user_location;index;not null"`
	IsDefault  bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ReadingModel represents the database model for weather readings
type ReadingModel struct {
	ID              uint    `gorm:"primaryKey"`
	LocationID      uint    `gorm:"index:idx_reading_location_captured;not null"`
	Temperature     float64 `gorm:"not null"`
	TemperatureUnit string  `gorm:"not null"`
	Description     string  `gorm:"not null"`
	WindSpeed       float64 `gorm:"not null"`
	WindSpeedUnit   string  `gorm:"not null"`
	Humidity        float64 `gorm:"not null"`
	UVIndex         *float64
	CapturedAt      time.Time `gorm:"index:idx_reading_location_captured;not null"`
	CreatedAt       time.Time
}

func (ReadingModel) TableName() string {
	return "readings"
}

// AlertModel represents the database model for materialized alerts
type AlertModel struct {
	ID                   uint   `gorm:"primaryKey"`
	UserID               uint   `gorm:"index;not null"`
	LocationID           uint   `gorm:"index;not null"`
	ReadingID            uint   `gorm:"index;not null"`
	Severity             string `gorm:"not null"`
	Condition            string `gorm:"not null"`
	Message              string `gorm:"not null"`
	IsActive             bool   `gorm:"index;not null"`
	IsRead               bool   `gorm:"not null;default:false"`
	IsForDefaultLocation bool   `gorm:"index:idx_alert_pending;not null"`
	EmailSent            bool   `gorm:"index:idx_alert_pending;not null;default:false"`
	EmailSentAt          *time.Time
	StartTime            time.Time `gorm:"index;not null"`
	EndTime              *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (AlertModel) TableName() string {
	return "alerts"
}

// Models lists every model for AutoMigrate
func Models() []interface{} {
	return []interface{}{
		&UserModel{},
		&LocationModel{},
		&SubscriptionModel{},
		&ReadingModel{},
		&AlertModel{},
	}
}

func userToData(m *UserModel) *ports.UserData {
	return &ports.UserData{
		ID:            m.ID,
		Email:         m.Email,
		Name:          m.Name,
		PasswordHash:  m.PasswordHash,
		PreferredUnit: m.PreferredUnit,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func locationToData(m *LocationModel) *ports.LocationData {
	return &ports.LocationData{
		ID:        m.ID,
		Name:      m.Name,
		City:      m.City,
		Country:   m.Country,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func subscriptionToData(m *SubscriptionModel) *ports.SubscriptionData {
	return &ports.SubscriptionData{
		ID:         m.ID,
		UserID:     m.UserID,
		LocationID: m.LocationID,
		IsDefault:  m.IsDefault,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func readingToData(m *ReadingModel) *ports.ReadingData {
	return &ports.ReadingData{
		ID:              m.ID,
		LocationID:      m.LocationID,
		Temperature:     m.Temperature,
		TemperatureUnit: m.TemperatureUnit,
		Description:     m.Description,
		WindSpeed:       m.WindSpeed,
		WindSpeedUnit:   m.WindSpeedUnit,
		Humidity:        m.Humidity,
		UVIndex:         m.UVIndex,
		CapturedAt:      m.CapturedAt,
		CreatedAt:       m.CreatedAt,
	}
}

func alertToData(m *AlertModel) ports.AlertData {
	return ports.AlertData{
		ID:                   m.ID,
		UserID:               m.UserID,
		LocationID:           m.LocationID,
		ReadingID:            m.ReadingID,
		Severity:             m.Severity,
		Condition:            m.Condition,
		Message:              m.Message,
		IsActive:             m.IsActive,
		IsRead:               m.IsRead,
		IsForDefaultLocation: m.IsForDefaultLocation,
		EmailSent:            m.EmailSent,
		EmailSentAt:          m.EmailSentAt,
		StartTime:            m.StartTime,
		EndTime:              m.EndTime,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
