package alert

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"weathertracker.app/internal/core/weather"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type UseCase struct {
	alertRepo        ports.AlertRepository
	subscriptionRepo ports.SubscriptionRepository
	publisher        ports.EventPublisher
	clock            clockwork.Clock
	logger           ports.Logger
	metrics          ports.MetricsCollector
}

type UseCaseDependencies struct {
	AlertRepo        ports.AlertRepository
	SubscriptionRepo ports.SubscriptionRepository
	Publisher        ports.EventPublisher
	Clock            clockwork.Clock
	Logger           ports.Logger
	Metrics          ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.AlertRepo == nil {
		return nil, errors.NewValidationError("alert repository is required")
	}
	if deps.SubscriptionRepo == nil {
		return nil, errors.NewValidationError("subscription repository is required")
	}
	if deps.Publisher == nil {
		return nil, errors.NewValidationError("event publisher is required")
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
		alertRepo:        deps.AlertRepo,
		subscriptionRepo: deps.SubscriptionRepo,
		publisher:        deps.Publisher,
		clock:            deps.Clock,
		logger:           deps.Logger,
		metrics:          deps.Metrics,
	}, nil
}

// Materialize fans the reading's candidates out to every subscriber of the location.
// A failed insert is logged and counted; the remaining inserts still run.
func (uc *UseCase) Materialize(ctx context.Context, reading *weather.Reading, locationID uint) (*MaterializeResult, error) {
	if reading == nil || reading.ID == 0 {
		return nil, errors.NewValidationError("a stored reading is required")
	}

	result := &MaterializeResult{}

	candidates := Evaluate(*reading)
	if len(candidates) == 0 {
		uc.logger.Debug("Reading triggered no alerts",
			ports.F("reading_id", reading.ID),
			ports.F("location_id", locationID))
		return result, nil
	}

	subscriptions, err := uc.subscriptionRepo.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions for location %d: %w", locationID, err)
	}
	if len(subscriptions) == 0 {
		uc.logger.Debug("Location has no subscribers",
			ports.F("location_id", locationID),
			ports.F("candidates", len(candidates)))
		return result, nil
	}

	now := uc.clock.Now()
	events := make([]ports.Event, 0, len(subscriptions)*len(candidates))

	for _, sub := range subscriptions {
		for _, candidate := range candidates {
			a := &Alert{
				UserID:               sub.UserID,
				LocationID:           locationID,
				ReadingID:            reading.ID,
				Severity:             candidate.Severity,
				Condition:            candidate.Condition,
				Message:              candidate.Message,
				IsActive:             true,
				IsForDefaultLocation: sub.IsDefault,
				StartTime:            now,
			}

			data := a.toData()
			if err := uc.alertRepo.Create(ctx, data); err != nil {
				uc.logger.Error("Failed to create alert",
					ports.F("user_id", sub.UserID),
					ports.F("location_id", locationID),
					ports.F("reading_id", reading.ID),
					ports.F("condition", candidate.Condition),
					ports.F("error", err))
				result.Failed++
				continue
			}

			created := FromData(data)
			result.Alerts = append(result.Alerts, created)
			events = append(events, created.createdEvent())
		}
	}

	uc.metrics.RecordAlertsMaterialized(ctx, len(result.Alerts), result.Failed)

	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			uc.logger.Warn("Failed to publish alert events",
				ports.F("count", len(events)),
				ports.F("error", err))
		}
	}

	uc.logger.Info("Alerts materialized",
		ports.F("reading_id", reading.ID),
		ports.F("location_id", locationID),
		ports.F("subscribers", len(subscriptions)),
		ports.F("candidates", len(candidates)),
		ports.F("created", len(result.Alerts)),
		ports.F("failed", result.Failed))

	return result, nil
}

// OnReadingRecorded materializes alerts for a freshly stored reading.
func (uc *UseCase) OnReadingRecorded(ctx context.Context, reading *weather.Reading) error {
	if _, err := uc.Materialize(ctx, reading, reading.LocationID); err != nil {
		return fmt.Errorf("materialize alerts: %w", err)
	}
	return nil
}

func (uc *UseCase) ListForUser(ctx context.Context, userID uint, activeOnly bool, limit int) ([]*View, error) {
	rows, err := uc.alertRepo.ListForUser(ctx, userID, activeOnly, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list alerts for user %d: %w", userID, err)
	}
	return viewsFromData(rows), nil
}

// ListDefaultLocationForUser returns alerts for the user's current default location,
// or an empty list when the user has none.
func (uc *UseCase) ListDefaultLocationForUser(ctx context.Context, userID uint, limit int) ([]*View, error) {
	rows, err := uc.alertRepo.ListDefaultLocationForUser(ctx, userID, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list default location alerts for user %d: %w", userID, err)
	}
	return viewsFromData(rows), nil
}

// ListPendingEmail returns the dispatcher's batch, bounded to alerts starting before the end of tomorrow.
func (uc *UseCase) ListPendingEmail(ctx context.Context) ([]*View, error) {
	cutoff := EndOfTomorrow(uc.clock.Now())
	rows, err := uc.alertRepo.ListPendingEmail(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list pending email alerts: %w", err)
	}
	return viewsFromData(rows), nil
}

func (uc *UseCase) Get(ctx context.Context, userID, alertID uint) (*View, error) {
	row, err := uc.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("find alert %d: %w", alertID, err)
	}
	if row.Alert.UserID != userID {
		return nil, errors.NewNotFoundError("alert not found")
	}
	return ViewFromData(row), nil
}

// MarkAsRead is idempotent.
func (uc *UseCase) MarkAsRead(ctx context.Context, userID, alertID uint) error {
	if _, err := uc.Get(ctx, userID, alertID); err != nil {
		return err
	}
	if err := uc.alertRepo.MarkAsRead(ctx, alertID); err != nil {
		return fmt.Errorf("mark alert %d as read: %w", alertID, err)
	}
	return nil
}

// Dismiss deactivates the alert. Dismissing twice keeps the first end time.
func (uc *UseCase) Dismiss(ctx context.Context, userID, alertID uint) error {
	if _, err := uc.Get(ctx, userID, alertID); err != nil {
		return err
	}
	if err := uc.alertRepo.Dismiss(ctx, alertID, uc.clock.Now()); err != nil {
		return fmt.Errorf("dismiss alert %d: %w", alertID, err)
	}
	uc.logger.Debug("Alert dismissed", ports.F("alert_id", alertID), ports.F("user_id", userID))
	return nil
}

// MarkEmailAsSent flags the alert as emailed. A repeat call only re-stamps the sent time.
func (uc *UseCase) MarkEmailAsSent(ctx context.Context, alertID uint) error {
	if err := uc.alertRepo.MarkEmailAsSent(ctx, alertID, uc.clock.Now()); err != nil {
		return fmt.Errorf("mark alert %d email as sent: %w", alertID, err)
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func viewsFromData(rows []*ports.AlertDetailsData) []*View {
	views := make([]*View, 0, len(rows))
	for _, row := range rows {
		views = append(views, ViewFromData(row))
	}
	return views
}
