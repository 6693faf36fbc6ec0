package infrastructure

import (
	"time"

	"weathertracker.app/internal/config"
	"weathertracker.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port over the validated environment config
type ConfigProviderAdapter struct {
	config *config.Config
}

func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{config: cfg}
}

func (c *ConfigProviderAdapter) GetAppConfig() ports.AppConfig {
	return ports.AppConfig{BaseURL: c.config.AppBaseURL}
}

func (c *ConfigProviderAdapter) GetDatabaseConfig() ports.DatabaseConfig {
	db := c.config.Database
	return ports.DatabaseConfig{
		Driver:     db.Driver,
		Host:       db.Host,
		Port:       db.Port,
		User:       db.User,
		Password:   db.Password,
		Name:       db.Name,
		SSLMode:    db.SSLMode,
		SQLitePath: db.SQLitePath,
	}
}

func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port:               c.config.Server.Port,
		CORSAllowedOrigins: c.config.Server.CORSAllowedOrigins,
	}
}

func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		EnableCache: c.config.Weather.EnableCache,
		CacheTTL:    time.Duration(c.config.Weather.CacheTTLMinutes) * time.Minute,
	}
}

func (c *ConfigProviderAdapter) GetEmailConfig() ports.EmailConfig {
	e := c.config.Email
	return ports.EmailConfig{
		SMTPHost:     e.SMTPHost,
		SMTPPort:     e.SMTPPort,
		SMTPUsername: e.SMTPUsername,
		SMTPPassword: e.SMTPPassword,
		FromName:     e.FromName,
		FromAddress:  e.FromAddress,
	}
}

func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	r := c.config.Cache.Redis
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         r.Addr,
			Password:     r.Password,
			DB:           r.DB,
			DialTimeout:  r.DialTimeout,
			ReadTimeout:  r.ReadTimeout,
			WriteTimeout: r.WriteTimeout,
		},
	}
}

// GetSchedulerConfig resolves the daily trigger time and zone. Both were checked by
// config.Validate, so parse failures fall back to 06:00 local.
func (c *ConfigProviderAdapter) GetSchedulerConfig() ports.SchedulerConfig {
	s := c.config.Scheduler
	hour, minute, err := s.DailyTime()
	if err != nil {
		hour, minute = 6, 0
	}
	loc, err := s.Location()
	if err != nil {
		loc = time.Local
	}
	return ports.SchedulerConfig{
		Enabled:     s.Enabled,
		Interval:    time.Duration(s.IntervalMinutes) * time.Minute,
		DailyHour:   hour,
		DailyMinute: minute,
		Location:    loc,
		SendTimeout: time.Duration(s.SendTimeoutSeconds) * time.Second,
	}
}

func (c *ConfigProviderAdapter) GetAuthConfig() ports.AuthConfig {
	return ports.AuthConfig{
		JWTSecret: c.config.Auth.JWTSecret,
		JWTExpiry: time.Duration(c.config.Auth.JWTExpiryHours) * time.Hour,
		Issuer:    c.config.Auth.Issuer,
	}
}

func (c *ConfigProviderAdapter) GetEventsConfig() ports.EventsConfig {
	return ports.EventsConfig{
		Enabled:      c.config.Events.Enabled,
		KafkaBrokers: c.config.Events.KafkaBrokers,
		KafkaTopic:   c.config.Events.KafkaTopic,
	}
}
