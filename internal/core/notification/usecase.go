package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"weathertracker.app/internal/core/alert"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// AlertStore is the part of the alert store the dispatcher needs
type AlertStore interface {
	ListPendingEmail(ctx context.Context) ([]*alert.View, error)
	MarkEmailAsSent(ctx context.Context, alertID uint) error
}

type UseCase struct {
	alerts        AlertStore
	emailProvider ports.EmailProvider
	config        ports.ConfigProvider
	clock         clockwork.Clock
	logger        ports.Logger
	metrics       ports.MetricsCollector
}

type UseCaseDependencies struct {
	Alerts        AlertStore
	EmailProvider ports.EmailProvider
	Config        ports.ConfigProvider
	Clock         clockwork.Clock
	Logger        ports.Logger
	Metrics       ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Alerts == nil {
		return nil, errors.NewValidationError("alert store is required")
	}
	if deps.EmailProvider == nil {
		return nil, errors.NewValidationError("email provider is required")
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
		alerts:        deps.Alerts,
		emailProvider: deps.EmailProvider,
		config:        deps.Config,
		clock:         deps.Clock,
		logger:        deps.Logger,
		metrics:       deps.Metrics,
	}, nil
}

// RunDispatchOnce emails every pending default-location alert and marks it sent.
// Individual failures are counted, never returned; only a failed batch query is an error.
// Delivery is at-least-once: an alert whose mark fails after a successful send is retried next run.
func (uc *UseCase) RunDispatchOnce(ctx context.Context) (DispatchResult, error) {
	started := uc.clock.Now()
	trigger := triggerFrom(ctx)
	result := DispatchResult{RunID: uuid.NewString()}

	pending, err := uc.alerts.ListPendingEmail(ctx)
	if err != nil {
		return result, fmt.Errorf("list pending alerts: %w", err)
	}

	if len(pending) == 0 {
		uc.logger.Debug("No pending alert emails",
			ports.F("run_id", result.RunID),
			ports.F("trigger", trigger))
		result.Took = uc.clock.Since(started)
		uc.metrics.RecordDispatchRun(ctx, trigger, 0, 0, result.Took)
		return result, nil
	}

	uc.logger.Info("Dispatching alert emails",
		ports.F("run_id", result.RunID),
		ports.F("trigger", trigger),
		ports.F("count", len(pending)))

	baseURL := uc.config.GetAppConfig().BaseURL
	sendTimeout := uc.config.GetSchedulerConfig().SendTimeout

	for i, a := range pending {
		if ctx.Err() != nil {
			uc.logger.Warn("Dispatch run interrupted",
				ports.F("run_id", result.RunID),
				ports.F("remaining", len(pending)-i),
				ports.F("error", ctx.Err()))
			break
		}

		if err := uc.dispatchOne(ctx, a, baseURL, sendTimeout); err != nil {
			uc.logger.Error("Failed to dispatch alert email",
				ports.F("run_id", result.RunID),
				ports.F("alert_id", a.ID),
				ports.F("user_id", a.UserID),
				ports.F("error", err))
			result.Failed++
			continue
		}
		result.Sent++
	}

	result.Took = uc.clock.Since(started)
	uc.metrics.RecordDispatchRun(ctx, trigger, result.Sent, result.Failed, result.Took)

	uc.logger.Info("Alert email dispatch completed",
		ports.F("run_id", result.RunID),
		ports.F("trigger", trigger),
		ports.F("total", len(pending)),
		ports.F("sent", result.Sent),
		ports.F("failed", result.Failed),
		ports.F("duration_ms", result.Took.Milliseconds()))

	return result, nil
}

func (uc *UseCase) dispatchOne(ctx context.Context, a *alert.View, baseURL string, sendTimeout time.Duration) error {
	if a.UserEmail == "" {
		return errors.NewValidationError("alert recipient has no email address")
	}

	subject, body, err := buildAlertEmail(a, baseURL)
	if err != nil {
		return err
	}

	sendCtx := ctx
	if sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, sendTimeout)
		defer cancel()
	}

	if err := uc.emailProvider.SendEmail(sendCtx, ports.EmailParams{
		To:      a.UserEmail,
		Subject: subject,
		Body:    body,
		IsHTML:  true,
	}); err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}

	if err := uc.alerts.MarkEmailAsSent(ctx, a.ID); err != nil {
		return fmt.Errorf("mark alert email as sent: %w", err)
	}

	uc.logger.Debug("Alert email sent",
		ports.F("alert_id", a.ID),
		ports.F("email", a.UserEmail),
		ports.F("condition", a.Condition))
	return nil
}
