// Package scheduler runs a job on two independent triggers: a fixed interval and once a day
// at a wall-clock time. Runs from the two triggers may overlap.
package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// Trigger names passed to the job
const (
	TriggerInterval = "interval"
	TriggerDaily    = "daily"
)

// Job is the unit of work invoked by both triggers
type Job func(ctx context.Context, trigger string) error

type Config struct {
	Interval    time.Duration
	DailyHour   int
	DailyMinute int
	Location    *time.Location
}

// Validate checks the trigger configuration
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return errors.NewConfigurationError("scheduler interval must be positive", nil)
	}
	if c.DailyHour < 0 || c.DailyHour > 23 || c.DailyMinute < 0 || c.DailyMinute > 59 {
		return errors.NewConfigurationError("scheduler daily time is out of range", nil)
	}
	return nil
}

type Scheduler struct {
	cfg    Config
	job    Job
	clock  clockwork.Clock
	logger ports.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

func New(cfg Config, job Job, clock clockwork.Clock, logger ports.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.NewValidationError("job is required")
	}
	if clock == nil {
		return nil, errors.NewValidationError("clock is required")
	}
	if logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Scheduler{cfg: cfg, job: job, clock: clock, logger: logger}, nil
}

// Start launches both triggers. They keep firing until Stop is called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	s.wg.Add(2)
	go s.runInterval(runCtx)
	go s.runDaily(runCtx)

	s.logger.Info("Scheduler started",
		ports.F("interval", s.cfg.Interval.String()),
		ports.F("daily_at", fmt.Sprintf("%02d:%02d", s.cfg.DailyHour, s.cfg.DailyMinute)),
		ports.F("timezone", s.cfg.Location.String()))
	return nil
}

// Stop cancels both triggers and waits for an in-flight run to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runInterval(ctx context.Context) {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.runJob(ctx, TriggerInterval)
		}
	}
}

func (s *Scheduler) runDaily(ctx context.Context) {
	defer s.wg.Done()

	for {
		now := s.clock.Now()
		next := NextDailyRun(now, s.cfg.DailyHour, s.cfg.DailyMinute, s.cfg.Location)
		timer := s.clock.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.Chan():
			s.runJob(ctx, TriggerDaily)
		}
	}
}

// runJob shields the trigger loop from job errors and panics.
func (s *Scheduler) runJob(ctx context.Context, trigger string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scheduled job panicked",
				ports.F("trigger", trigger),
				ports.F("panic", fmt.Sprint(r)),
				ports.F("stack", string(debug.Stack())))
		}
	}()

	if err := s.job(ctx, trigger); err != nil {
		s.logger.Error("Scheduled job failed",
			ports.F("trigger", trigger),
			ports.F("error", err))
	}
}

// NextDailyRun returns the first hour:minute in loc strictly after now.
func NextDailyRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}
