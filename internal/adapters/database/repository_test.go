package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"weathertracker.app/internal/ports"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// every pooled connection to :memory: would be a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *ports.UserData {
	user := &ports.UserData{Email: email, Name: "User " + email, PasswordHash: "hash", PreferredUnit: "celsius"}
	require.NoError(t, NewUserRepositoryAdapter(db).Save(context.Background(), user))
	return user
}

func seedLocation(t *testing.T, db *gorm.DB, city string, createdBy uint) *ports.LocationData {
	loc := &ports.LocationData{Name: city, City: city, Country: "UA", CreatedBy: createdBy}
	require.NoError(t, NewLocationRepositoryAdapter(db).Save(context.Background(), loc))
	return loc
}

func seedReading(t *testing.T, db *gorm.DB, locationID uint, capturedAt time.Time) *ports.ReadingData {
	reading := &ports.ReadingData{
		LocationID:      locationID,
		Temperature:     36,
		TemperatureUnit: "celsius",
		Description:     "clear sky",
		WindSpeed:       10,
		WindSpeedUnit:   "kmh",
		Humidity:        40,
		CapturedAt:      capturedAt,
	}
	require.NoError(t, NewReadingRepositoryAdapter(db).Save(context.Background(), reading))
	return reading
}

func subscribe(t *testing.T, db *gorm.DB, userID, locationID uint, makeDefault bool) {
	repo := NewSubscriptionRepositoryAdapter(db)
	require.NoError(t, repo.Save(context.Background(), &ports.SubscriptionData{UserID: userID, LocationID: locationID}))
	if makeDefault {
		require.NoError(t, repo.SetDefault(context.Background(), userID, locationID))
	}
}
