package weather

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

const (
	defaultReadingsLimit = 50
	maxReadingsLimit     = 500
)

// ReadingObserver is notified after a reading has been stored
type ReadingObserver interface {
	OnReadingRecorded(ctx context.Context, reading *Reading) error
}

type UseCase struct {
	readingRepo     ports.ReadingRepository
	locationRepo    ports.LocationRepository
	cache           ports.ReadingCache
	weatherProvider ports.WeatherProviderManager
	observer        ReadingObserver
	config          ports.ConfigProvider
	clock           clockwork.Clock
	logger          ports.Logger
	metrics         ports.MetricsCollector
}

type UseCaseDependencies struct {
	ReadingRepo     ports.ReadingRepository
	LocationRepo    ports.LocationRepository
	Cache           ports.ReadingCache
	WeatherProvider ports.WeatherProviderManager
	Observer        ReadingObserver
	Config          ports.ConfigProvider
	Clock           clockwork.Clock
	Logger          ports.Logger
	Metrics         ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.ReadingRepo == nil {
		return nil, errors.NewValidationError("reading repository is required")
	}
	if deps.LocationRepo == nil {
		return nil, errors.NewValidationError("location repository is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Observer == nil {
		return nil, errors.NewValidationError("reading observer is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Clock == nil {
		return nil, errors.NewValidationError("clock is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics collector is required")
	}

	return &UseCase{
		readingRepo:     deps.ReadingRepo,
		locationRepo:    deps.LocationRepo,
		cache:           deps.Cache,
		weatherProvider: deps.WeatherProvider,
		observer:        deps.Observer,
		config:          deps.Config,
		clock:           deps.Clock,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
	}, nil
}

// RecordReading validates and stores a reading, invalidates the latest-reading cache and
// hands the stored reading to the observer. Observer failures are logged; the reading stays recorded.
func (uc *UseCase) RecordReading(ctx context.Context, reading *Reading) (*Reading, error) {
	if reading == nil {
		return nil, errors.NewValidationError("reading is required")
	}
	if reading.CapturedAt.IsZero() {
		reading.CapturedAt = uc.clock.Now()
	}
	if err := reading.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid reading: " + err.Error())
	}

	if _, err := uc.locationRepo.FindByID(ctx, reading.LocationID); err != nil {
		return nil, fmt.Errorf("find location %d: %w", reading.LocationID, err)
	}

	data := reading.ToData()
	if err := uc.readingRepo.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("save reading: %w", err)
	}
	stored := ReadingFromData(data)

	uc.logger.Debug("Reading recorded",
		ports.F("reading_id", stored.ID),
		ports.F("location_id", stored.LocationID),
		ports.F("temperature", stored.Temperature))

	if uc.config.GetWeatherConfig().EnableCache {
		if err := uc.cache.Invalidate(ctx, stored.LocationID); err != nil {
			uc.logger.Warn("Failed to invalidate latest reading cache",
				ports.F("location_id", stored.LocationID),
				ports.F("error", err))
		}
	}

	if err := uc.observer.OnReadingRecorded(ctx, stored); err != nil {
		uc.logger.Error("Failed to process recorded reading",
			ports.F("reading_id", stored.ID),
			ports.F("location_id", stored.LocationID),
			ports.F("error", err))
	}

	return stored, nil
}

func (uc *UseCase) ListReadings(ctx context.Context, locationID uint, limit int) ([]*Reading, error) {
	if limit <= 0 {
		limit = defaultReadingsLimit
	}
	if limit > maxReadingsLimit {
		limit = maxReadingsLimit
	}

	rows, err := uc.readingRepo.ListByLocation(ctx, locationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list readings for location %d: %w", locationID, err)
	}

	readings := make([]*Reading, 0, len(rows))
	for _, row := range rows {
		readings = append(readings, ReadingFromData(row))
	}
	return readings, nil
}

// LatestReading serves the most recent reading, from cache when enabled.
func (uc *UseCase) LatestReading(ctx context.Context, locationID uint) (*Reading, error) {
	if uc.config.GetWeatherConfig().EnableCache {
		cached, err := uc.cache.GetLatest(ctx, locationID)
		if err == nil && cached != nil {
			uc.metrics.RecordCacheHit(ctx)
			uc.logger.Debug("Latest reading found in cache", ports.F("location_id", locationID))
			return ReadingFromData(cached), nil
		}
		uc.metrics.RecordCacheMiss(ctx)
	}

	data, err := uc.readingRepo.FindLatestByLocation(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("find latest reading for location %d: %w", locationID, err)
	}

	uc.cacheLatest(ctx, data)
	return ReadingFromData(data), nil
}

// RefreshLocation fetches current conditions for the location from the provider chain and records them.
func (uc *UseCase) RefreshLocation(ctx context.Context, locationID uint) (*Reading, error) {
	loc, err := uc.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("find location %d: %w", locationID, err)
	}

	current, err := uc.weatherProvider.GetWeather(ctx, loc.City)
	if err != nil {
		// Preserve NotFoundError from providers
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("weather provider failed", err)
	}

	reading := readingFromProvider(locationID, current)
	if reading.CapturedAt.IsZero() {
		reading.CapturedAt = uc.clock.Now()
	}

	return uc.RecordReading(ctx, reading)
}

func (uc *UseCase) cacheLatest(ctx context.Context, data *ports.ReadingData) {
	cfg := uc.config.GetWeatherConfig()
	if !cfg.EnableCache {
		return
	}
	if err := uc.cache.SetLatest(ctx, data, cfg.CacheTTL); err != nil {
		uc.logger.Warn("Failed to cache latest reading",
			ports.F("location_id", data.LocationID),
			ports.F("error", err))
	}
}
