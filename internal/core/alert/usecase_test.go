package alert

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weathertracker.app/internal/core/weather"
	mockPorts "weathertracker.app/internal/mocks"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	alertRepo *mockPorts.AlertRepository
	subRepo   *mockPorts.SubscriptionRepository
	publisher *mockPorts.EventPublisher
	clock     *clockwork.FakeClock
}

func newTestUseCase(t *testing.T) (*UseCase, testDeps) {
	deps := testDeps{
		alertRepo: mockPorts.NewAlertRepository(t),
		subRepo:   mockPorts.NewSubscriptionRepository(t),
		publisher: mockPorts.NewEventPublisher(t),
		clock:     clockwork.NewFakeClockAt(fixedNow),
	}

	uc, err := NewUseCase(UseCaseDependencies{
		AlertRepo:        deps.alertRepo,
		SubscriptionRepo: deps.subRepo,
		Publisher:        deps.publisher,
		Clock:            deps.clock,
		Logger:           mockPorts.NewNopLogger(),
		Metrics:          mockPorts.NewNopMetrics(),
	})
	require.NoError(t, err)
	return uc, deps
}

func storedReading(temp, wind float64, description string) *weather.Reading {
	r := reading(temp, wind, description)
	r.ID = 42
	r.LocationID = 7
	return &r
}

func TestUseCase_Materialize_FansOutToEverySubscriber(t *testing.T) {
	uc, deps := newTestUseCase(t)

	subs := []*ports.SubscriptionData{
		{ID: 1, UserID: 10, LocationID: 7, IsDefault: true},
		{ID: 2, UserID: 11, LocationID: 7, IsDefault: false},
		{ID: 3, UserID: 12, LocationID: 7, IsDefault: true},
	}
	deps.subRepo.On("ListByLocation", mock.Anything, uint(7)).Return(subs, nil).Once()

	var created []*ports.AlertData
	nextID := uint(100)
	deps.alertRepo.On("Create", mock.Anything, mock.AnythingOfType("*ports.AlertData")).
		Run(func(args mock.Arguments) {
			a := args.Get(1).(*ports.AlertData)
			a.ID = nextID
			nextID++
			created = append(created, a)
		}).Return(nil).Times(6)
	deps.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []ports.Event) bool {
		return len(events) == 6 && events[0].Type == EventTypeCreated
	})).Return(nil).Once()

	// 36°C with 60 km/h wind: extreme heat and high wind.
	result, err := uc.Materialize(context.Background(), storedReading(36, 60, "clear"), 7)

	require.NoError(t, err)
	assert.Len(t, result.Alerts, 6)
	assert.Zero(t, result.Failed)
	require.Len(t, created, 6)

	defaultByUser := map[uint]bool{10: true, 11: false, 12: true}
	for _, a := range created {
		assert.Equal(t, defaultByUser[a.UserID], a.IsForDefaultLocation, "user %d", a.UserID)
		assert.True(t, a.IsActive)
		assert.False(t, a.IsRead)
		assert.False(t, a.EmailSent)
		assert.Equal(t, uint(42), a.ReadingID)
		assert.Equal(t, uint(7), a.LocationID)
		assert.True(t, fixedNow.Equal(a.StartTime))
	}
}

func TestUseCase_Materialize_NoCandidates(t *testing.T) {
	uc, _ := newTestUseCase(t)

	result, err := uc.Materialize(context.Background(), storedReading(20, 5, "clear"), 7)

	require.NoError(t, err)
	assert.Empty(t, result.Alerts)
	assert.Zero(t, result.Failed)
}

func TestUseCase_Materialize_NoSubscribers(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.subRepo.On("ListByLocation", mock.Anything, uint(7)).Return([]*ports.SubscriptionData{}, nil).Once()

	result, err := uc.Materialize(context.Background(), storedReading(40, 0, "clear"), 7)

	require.NoError(t, err)
	assert.Empty(t, result.Alerts)
}

func TestUseCase_Materialize_IsolatesFailedInserts(t *testing.T) {
	uc, deps := newTestUseCase(t)

	subs := []*ports.SubscriptionData{
		{UserID: 10, IsDefault: true},
		{UserID: 11},
		{UserID: 12},
	}
	deps.subRepo.On("ListByLocation", mock.Anything, uint(7)).Return(subs, nil)
	deps.alertRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *ports.AlertData) bool { return a.UserID == 11 })).
		Return(errors.NewDatabaseError("insert failed", fmt.Errorf("disk full")))
	deps.alertRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *ports.AlertData) bool { return a.UserID != 11 })).
		Return(nil)
	deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := uc.Materialize(context.Background(), storedReading(36, 0, "clear"), 7)

	require.NoError(t, err)
	assert.Len(t, result.Alerts, 2)
	assert.Equal(t, 1, result.Failed)
}

func TestUseCase_Materialize_PublishFailureIsNotFatal(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.subRepo.On("ListByLocation", mock.Anything, uint(7)).Return([]*ports.SubscriptionData{{UserID: 1}}, nil)
	deps.alertRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(fmt.Errorf("broker unavailable"))

	result, err := uc.Materialize(context.Background(), storedReading(36, 0, "clear"), 7)

	require.NoError(t, err)
	assert.Len(t, result.Alerts, 1)
}

func TestUseCase_Materialize_SubscriptionLookupFails(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.subRepo.On("ListByLocation", mock.Anything, uint(7)).Return(nil, errors.NewDatabaseError("query failed", nil))

	_, err := uc.Materialize(context.Background(), storedReading(36, 0, "clear"), 7)

	require.Error(t, err)
	assert.True(t, errors.IsDatabaseError(err))
}

func TestUseCase_Materialize_RequiresStoredReading(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Materialize(context.Background(), &weather.Reading{Temperature: 40}, 7)

	assert.True(t, errors.IsValidationError(err))
}

func TestUseCase_ListPendingEmail_UsesEndOfTomorrow(t *testing.T) {
	uc, deps := newTestUseCase(t)

	expectedCutoff := time.Date(2024, 6, 2, 23, 59, 59, 999000000, time.UTC)
	deps.alertRepo.On("ListPendingEmail", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return cutoff.Equal(expectedCutoff)
	})).Return([]*ports.AlertDetailsData{
		{Alert: ports.AlertData{ID: 1, UserID: 10, Severity: "high", Condition: "extreme_heat"}, UserEmail: "a@example.com"},
	}, nil).Once()

	views, err := uc.ListPendingEmail(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, SeverityHigh, views[0].Severity)
	assert.Equal(t, ConditionExtremeHeat, views[0].Condition)
	assert.Equal(t, "a@example.com", views[0].UserEmail)
}

func TestUseCase_ListForUser_NormalizesLimit(t *testing.T) {
	uc, deps := newTestUseCase(t)

	deps.alertRepo.On("ListForUser", mock.Anything, uint(10), true, DefaultListLimit).Return([]*ports.AlertDetailsData{}, nil).Once()
	deps.alertRepo.On("ListForUser", mock.Anything, uint(10), false, MaxListLimit).Return([]*ports.AlertDetailsData{}, nil).Once()

	_, err := uc.ListForUser(context.Background(), 10, true, 0)
	require.NoError(t, err)
	_, err = uc.ListForUser(context.Background(), 10, false, 5000)
	require.NoError(t, err)
}

func TestUseCase_ListDefaultLocationForUser_Empty(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.alertRepo.On("ListDefaultLocationForUser", mock.Anything, uint(10), 5).Return(nil, nil).Once()

	views, err := uc.ListDefaultLocationForUser(context.Background(), 10, 5)

	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestUseCase_Dismiss_UsesClock(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.alertRepo.On("FindByID", mock.Anything, uint(5)).
		Return(&ports.AlertDetailsData{Alert: ports.AlertData{ID: 5, UserID: 10, IsActive: true}}, nil)
	deps.alertRepo.On("Dismiss", mock.Anything, uint(5), fixedNow).Return(nil).Once()

	require.NoError(t, uc.Dismiss(context.Background(), 10, 5))
}

func TestUseCase_ScopesAlertsToOwner(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.alertRepo.On("FindByID", mock.Anything, uint(5)).
		Return(&ports.AlertDetailsData{Alert: ports.AlertData{ID: 5, UserID: 10}}, nil)

	assert.True(t, errors.IsNotFoundError(uc.MarkAsRead(context.Background(), 99, 5)))
	assert.True(t, errors.IsNotFoundError(uc.Dismiss(context.Background(), 99, 5)))
	_, err := uc.Get(context.Background(), 99, 5)
	assert.True(t, errors.IsNotFoundError(err))

	deps.alertRepo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
	deps.alertRepo.AssertNotCalled(t, "Dismiss", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_MarkAsRead(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.alertRepo.On("FindByID", mock.Anything, uint(5)).
		Return(&ports.AlertDetailsData{Alert: ports.AlertData{ID: 5, UserID: 10}}, nil)
	deps.alertRepo.On("MarkAsRead", mock.Anything, uint(5)).Return(nil).Twice()

	require.NoError(t, uc.MarkAsRead(context.Background(), 10, 5))
	require.NoError(t, uc.MarkAsRead(context.Background(), 10, 5))
}

func TestUseCase_MarkEmailAsSent(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.alertRepo.On("MarkEmailAsSent", mock.Anything, uint(5), fixedNow).Return(nil).Once()

	require.NoError(t, uc.MarkEmailAsSent(context.Background(), 5))
}

func TestUseCase_Constructor_Validation(t *testing.T) {
	valid := UseCaseDependencies{
		AlertRepo:        mockPorts.NewAlertRepository(t),
		SubscriptionRepo: mockPorts.NewSubscriptionRepository(t),
		Publisher:        mockPorts.NewEventPublisher(t),
		Clock:            clockwork.NewFakeClock(),
		Logger:           mockPorts.NewNopLogger(),
		Metrics:          mockPorts.NewNopMetrics(),
	}

	tests := []struct {
		name   string
		mutate func(d *UseCaseDependencies)
		errMsg string
	}{
		{"MissingAlertRepo", func(d *UseCaseDependencies) { d.AlertRepo = nil }, "alert repository is required"},
		{"MissingSubscriptionRepo", func(d *UseCaseDependencies) { d.SubscriptionRepo = nil }, "subscription repository is required"},
		{"MissingPublisher", func(d *UseCaseDependencies) { d.Publisher = nil }, "event publisher is required"},
		{"MissingClock", func(d *UseCaseDependencies) { d.Clock = nil }, "clock is required"},
		{"MissingLogger", func(d *UseCaseDependencies) { d.Logger = nil }, "logger is required"},
		{"MissingMetrics", func(d *UseCaseDependencies) { d.Metrics = nil }, "metrics collector is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := valid
			tt.mutate(&deps)
			uc, err := NewUseCase(deps)
			assert.Nil(t, uc)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
