package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mockPorts "weathertracker.app/internal/mocks"
	"weathertracker.app/pkg/errors"
)

func testConfig() Config {
	return Config{Interval: 30 * time.Minute, DailyHour: 6, DailyMinute: 0, Location: time.UTC}
}

func waitForCall(t *testing.T, calls <-chan string) string {
	t.Helper()
	select {
	case trigger := <-calls:
		return trigger
	case <-time.After(2 * time.Second):
		t.Fatal("job was not invoked")
		return ""
	}
}

func startScheduler(t *testing.T, clock *clockwork.FakeClock, job Job) *Scheduler {
	t.Helper()
	s, err := New(testConfig(), job, clock, mockPorts.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	// interval ticker plus the daily timer
	require.NoError(t, clock.BlockUntilContext(ctx, 2))
	return s
}

func TestScheduler_IntervalAndDailyTriggers(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC))
	calls := make(chan string, 10)
	startScheduler(t, clock, func(ctx context.Context, trigger string) error {
		calls <- trigger
		return nil
	})

	clock.Advance(30 * time.Minute)
	assert.Equal(t, TriggerInterval, waitForCall(t, calls))

	// 06:00 fires both triggers
	clock.Advance(30 * time.Minute)
	got := []string{waitForCall(t, calls), waitForCall(t, calls)}
	assert.ElementsMatch(t, []string{TriggerInterval, TriggerDaily}, got)
}

func TestScheduler_JobFailureKeepsTriggerAlive(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC))
	calls := make(chan string, 10)
	var runs int32
	startScheduler(t, clock, func(ctx context.Context, trigger string) error {
		defer func() { calls <- trigger }()
		switch atomic.AddInt32(&runs, 1) {
		case 1:
			panic("smtp client exploded")
		case 2:
			return fmt.Errorf("database unavailable")
		}
		return nil
	})

	clock.Advance(30 * time.Minute)
	assert.Equal(t, TriggerInterval, waitForCall(t, calls))

	clock.Advance(30 * time.Minute)
	waitForCall(t, calls)
	waitForCall(t, calls)

	clock.Advance(30 * time.Minute)
	assert.Equal(t, TriggerInterval, waitForCall(t, calls))
	assert.Equal(t, int32(4), atomic.LoadInt32(&runs))
}

func TestScheduler_StopEndsTriggers(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC))
	var runs int32
	s := startScheduler(t, clock, func(ctx context.Context, trigger string) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	s.Stop()
	clock.Advance(24 * time.Hour)
	time.Sleep(20 * time.Millisecond)

	assert.Zero(t, atomic.LoadInt32(&runs))
	// second Stop is a no-op
	s.Stop()
}

func TestScheduler_StartTwice(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := startScheduler(t, clock, func(ctx context.Context, trigger string) error { return nil })

	err := s.Start(context.Background())
	assert.Error(t, err)
}

func TestNew_Validation(t *testing.T) {
	job := func(ctx context.Context, trigger string) error { return nil }
	clock := clockwork.NewFakeClock()
	logger := mockPorts.NewNopLogger()

	_, err := New(Config{Interval: 0}, job, clock, logger)
	assert.True(t, errors.IsConfigurationError(err))

	_, err = New(Config{Interval: time.Minute, DailyHour: 24}, job, clock, logger)
	assert.True(t, errors.IsConfigurationError(err))

	_, err = New(testConfig(), nil, clock, logger)
	assert.True(t, errors.IsValidationError(err))

	s, err := New(Config{Interval: time.Minute}, job, clock, logger)
	require.NoError(t, err)
	assert.Equal(t, time.Local, s.cfg.Location)
}

func TestNextDailyRun(t *testing.T) {
	kyiv := time.FixedZone("EEST", 3*60*60)

	tests := []struct {
		name string
		now  time.Time
		loc  *time.Location
		want time.Time
	}{
		{
			name: "LaterToday",
			now:  time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "ExactlyNowMovesToTomorrow",
			now:  time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: time.Date(2024, 6, 2, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "MonthRollover",
			now:  time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "ConfiguredZone",
			now:  time.Date(2024, 6, 1, 2, 30, 0, 0, time.UTC), // 05:30 in kyiv
			loc:  kyiv,
			want: time.Date(2024, 6, 1, 6, 0, 0, 0, kyiv),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDailyRun(tt.now, 6, 0, tt.loc)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}
