package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathertracker.app/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	originalEnv := os.Environ()
	t.Cleanup(func() {
		os.Clearenv()
		for _, e := range originalEnv {
			if key, value, ok := strings.Cut(e, "="); ok {
				_ = os.Setenv(key, value)
			}
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("AUTH_JWT_SECRET", "0123456789abcdef"))

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "postgres", config.Database.Driver)
		assert.Equal(t, 30, config.Scheduler.IntervalMinutes)
		assert.Equal(t, "06:00", config.Scheduler.DailyAt)
		assert.Equal(t, 30, config.Scheduler.SendTimeoutSeconds)
		assert.True(t, config.Scheduler.Enabled)
		assert.Equal(t, CacheTypeMemory, config.Cache.Type)
		assert.False(t, config.Events.Enabled)
		assert.Equal(t, []string{"weatherapi", "openweathermap"}, config.Weather.ProviderOrder)
		assert.Equal(t, "http://localhost:8080", config.AppBaseURL)
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.Nil(t, config)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("AUTH_JWT_SECRET", "0123456789abcdef"))
		require.NoError(t, os.Setenv("SERVER_PORT", "9090"))
		require.NoError(t, os.Setenv("DB_DRIVER", "sqlite"))
		require.NoError(t, os.Setenv("DB_SQLITE_PATH", "/tmp/test.db"))
		require.NoError(t, os.Setenv("EMAIL_SMTP_HOST", "smtp.test.com"))
		require.NoError(t, os.Setenv("EMAIL_SMTP_PORT", "465"))
		require.NoError(t, os.Setenv("EMAIL_SMTP_USERNAME", "custom-username"))
		require.NoError(t, os.Setenv("EMAIL_SMTP_PASSWORD", "custom-password"))
		require.NoError(t, os.Setenv("SCHEDULER_INTERVAL_MINUTES", "15"))
		require.NoError(t, os.Setenv("SCHEDULER_DAILY_AT", "07:30"))
		require.NoError(t, os.Setenv("SCHEDULER_TIMEZONE", "UTC"))
		require.NoError(t, os.Setenv("CACHE_TYPE", "redis"))
		require.NoError(t, os.Setenv("REDIS_ADDR", "redis:6379"))
		require.NoError(t, os.Setenv("EVENTS_ENABLED", "true"))
		require.NoError(t, os.Setenv("EVENTS_KAFKA_BROKERS", "k1:9092,k2:9092"))
		require.NoError(t, os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com"))
		require.NoError(t, os.Setenv("APP_URL", "https://custom.example.com"))

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "sqlite", config.Database.Driver)
		assert.Equal(t, "/tmp/test.db", config.Database.SQLitePath)
		assert.Equal(t, "smtp.test.com", config.Email.SMTPHost)
		assert.Equal(t, 465, config.Email.SMTPPort)
		assert.Equal(t, 15, config.Scheduler.IntervalMinutes)
		assert.Equal(t, CacheTypeRedis, config.Cache.Type)
		assert.Equal(t, "redis:6379", config.Cache.Redis.Addr)
		assert.True(t, config.Events.Enabled)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, config.Events.KafkaBrokers)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, config.Server.CORSAllowedOrigins)

		hour, minute, err := config.Scheduler.DailyTime()
		require.NoError(t, err)
		assert.Equal(t, 7, hour)
		assert.Equal(t, 30, minute)
	})

	t.Run("GetDSN", func(t *testing.T) {
		dbConfig := DatabaseConfig{
			Host:     "test-host",
			Port:     5432,
			User:     "test-user",
			Password: "test-password",
			Name:     "test-db",
			SSLMode:  "disable",
		}

		expectedDSN := "host=test-host port=5432 user=test-user password=test-password dbname=test-db sslmode=disable"
		assert.Equal(t, expectedDSN, dbConfig.GetDSN())
	})
}

func TestSchedulerConfig_Validate(t *testing.T) {
	valid := SchedulerConfig{IntervalMinutes: 30, DailyAt: "06:00", Timezone: "UTC", SendTimeoutSeconds: 30}

	tests := []struct {
		name    string
		mutate  func(c *SchedulerConfig)
		wantErr string
	}{
		{"Valid", func(c *SchedulerConfig) {}, ""},
		{"ZeroInterval", func(c *SchedulerConfig) { c.IntervalMinutes = 0 }, "SCHEDULER_INTERVAL_MINUTES"},
		{"BadDailyAt", func(c *SchedulerConfig) { c.DailyAt = "6am" }, "SCHEDULER_DAILY_AT"},
		{"BadTimezone", func(c *SchedulerConfig) { c.Timezone = "Mars/Olympus" }, "SCHEDULER_TIMEZONE"},
		{"ZeroSendTimeout", func(c *SchedulerConfig) { c.SendTimeoutSeconds = 0 }, "SCHEDULER_SEND_TIMEOUT_SECONDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCacheType(t *testing.T) {
	var ct CacheType
	require.NoError(t, ct.UnmarshalText([]byte("redis")))
	assert.Equal(t, CacheTypeRedis, ct)
	assert.True(t, ct.IsValid())

	require.NoError(t, ct.UnmarshalText([]byte("memcached")))
	assert.Equal(t, CacheTypeUnknown, ct)
	assert.False(t, ct.IsValid())
}

func TestDatabaseConfig_Validate(t *testing.T) {
	assert.NoError(t, (&DatabaseConfig{Driver: "sqlite", SQLitePath: "x.db"}).Validate())
	assert.Error(t, (&DatabaseConfig{Driver: "mysql"}).Validate())
	assert.Error(t, (&DatabaseConfig{Driver: "postgres", Host: "h", Port: 5432, User: "u", Name: "n", SSLMode: "prefer"}).Validate())
	assert.NoError(t, (&DatabaseConfig{Driver: "postgres", Host: "h", Port: 5432, User: "u", Name: "n", SSLMode: "require"}).Validate())
}

func TestEventsConfig_Validate(t *testing.T) {
	assert.NoError(t, (&EventsConfig{Enabled: false}).Validate())
	assert.Error(t, (&EventsConfig{Enabled: true, KafkaTopic: "t"}).Validate())
	assert.NoError(t, (&EventsConfig{Enabled: true, KafkaBrokers: []string{"b:9092"}, KafkaTopic: "t"}).Validate())
}

func TestLoggingConfig_Validate(t *testing.T) {
	assert.NoError(t, (&LoggingConfig{Level: "DEBUG", Format: "text"}).Validate())
	assert.Error(t, (&LoggingConfig{Level: "verbose", Format: "json"}).Validate())
	assert.Error(t, (&LoggingConfig{Level: "info", Format: "xml"}).Validate())
}
