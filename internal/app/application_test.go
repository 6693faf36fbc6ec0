package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"weathertracker.app/internal/config"
	"weathertracker.app/internal/core/notification"
	"weathertracker.app/internal/mocks"
	"weathertracker.app/internal/ports"
)

func testConfig() *config.Config {
	return &config.Config{
		AppBaseURL: "http://localhost:8080",
		Server:     config.ServerConfig{Port: 8080},
		Database:   config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		Weather: config.WeatherConfig{
			EnableCache: true, CacheTTLMinutes: 10, ProviderOrder: []string{"weatherapi", "openweathermap"},
		},
		Email:     config.EmailConfig{SMTPHost: "127.0.0.1", SMTPPort: 2525, FromName: "Weather Tracker", FromAddress: "alerts@weathertracker.app"},
		Scheduler: config.SchedulerConfig{Enabled: false, IntervalMinutes: 30, DailyAt: "06:00", Timezone: "UTC", SendTimeoutSeconds: 5},
		Cache:     config.CacheConfig{Type: config.CacheTypeMemory},
		Auth:      config.AuthConfig{JWTSecret: "integration-test-secret", JWTExpiryHours: 1, Issuer: "weathertracker"},
		Logging:   config.LoggingConfig{Level: "info", Format: "json"},
	}
}

func newTestApplication(t *testing.T, email ports.EmailProvider) *Application {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	cfg := testConfig()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	deps, err := NewDependencyContainer(context.Background(), DependencyOptions{
		Config: cfg, Clock: clock, DB: db, EmailProvider: email,
	})
	require.NoError(t, err)

	app, err := NewApplicationWithDependencies(cfg, deps, clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })
	return app
}

func call(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func TestApplication_ReadingToAlertEmail(t *testing.T) {
	email := mocks.NewEmailProvider(t)
	email.On("SendEmail", mock.Anything, mock.MatchedBy(func(p ports.EmailParams) bool {
		return p.To == "olena@example.com" && strings.Contains(p.Subject, "Extreme heat warning: 36°C")
	})).Return(nil).Once()

	app := newTestApplication(t, email)
	router := app.GetRouter()

	w := call(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "olena@example.com", "password": "secret-pass", "name": "Olena",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var auth struct {
		Token string `json:"token"`
	}
	decode(t, w, &auth)

	w = call(t, router, http.MethodPost, "/api/locations", auth.Token, map[string]interface{}{
		"name": "Home", "city": "Kyiv", "country": "UA", "latitude": 50.45, "longitude": 30.52,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var loc struct {
		ID uint `json:"id"`
	}
	decode(t, w, &loc)
	locPath := "/api/locations/" + jsonNumber(loc.ID)

	w = call(t, router, http.MethodPost, locPath+"/subscribe", auth.Token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"is_default":true`)

	w = call(t, router, http.MethodPost, locPath+"/readings", auth.Token, map[string]interface{}{
		"temperature": 36, "temperature_unit": "celsius", "description": "clear",
		"wind_speed": 10, "wind_speed_unit": "kmh", "humidity": 30,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(t, router, http.MethodGet, locPath+"/readings/latest", auth.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"temperature":36`)

	w = call(t, router, http.MethodGet, "/api/alerts/default", auth.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var alerts []struct {
		ID        uint   `json:"id"`
		Condition string `json:"condition"`
		EmailSent bool   `json:"email_sent"`
	}
	decode(t, w, &alerts)
	require.Len(t, alerts, 1)
	assert.Equal(t, "extreme_heat", alerts[0].Condition)
	assert.False(t, alerts[0].EmailSent)

	w = call(t, router, http.MethodPost, "/api/admin/alerts/dispatch", auth.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result notification.DispatchResult
	decode(t, w, &result)
	assert.Equal(t, 1, result.Sent)
	assert.Zero(t, result.Failed)

	// Sent alerts are not picked up again.
	result, err := app.Dispatcher().RunDispatchOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Sent)

	w = call(t, router, http.MethodPut, "/api/alerts/"+jsonNumber(alerts[0].ID)+"/dismiss", auth.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = call(t, router, http.MethodGet, "/api/alerts?active=true", auth.Token, nil)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestApplication_HealthAndMetrics(t *testing.T) {
	app := newTestApplication(t, mocks.NewEmailProvider(t))
	router := app.GetRouter()

	w := call(t, router, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database"`)

	w = call(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNewDependencyContainer_RequiresConfig(t *testing.T) {
	_, err := NewDependencyContainer(context.Background(), DependencyOptions{})
	require.Error(t, err)
}

func TestOpenDatabase_UnknownDriver(t *testing.T) {
	_, err := OpenDatabase(ports.DatabaseConfig{Driver: "mysql"})
	require.Error(t, err)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
