package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"weathertracker.app/internal/ports"
)

// AlertRepository is a mock of ports.AlertRepository
type AlertRepository struct {
	mock.Mock
}

func NewAlertRepository(t testingT) *AlertRepository {
	m := &AlertRepository{}
	register(&m.Mock, t)
	return m
}

func (m *AlertRepository) Create(ctx context.Context, alert *ports.AlertData) error {
	return m.Called(ctx, alert).Error(0)
}

func (m *AlertRepository) FindByID(ctx context.Context, id uint) (*ports.AlertDetailsData, error) {
	args := m.Called(ctx, id)
	var r0 *ports.AlertDetailsData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.AlertDetailsData)
	}
	return r0, args.Error(1)
}

func (m *AlertRepository) ListForUser(ctx context.Context, userID uint, activeOnly bool, limit int) ([]*ports.AlertDetailsData, error) {
	args := m.Called(ctx, userID, activeOnly, limit)
	return alertRows(args.Get(0)), args.Error(1)
}

func (m *AlertRepository) ListDefaultLocationForUser(ctx context.Context, userID uint, limit int) ([]*ports.AlertDetailsData, error) {
	args := m.Called(ctx, userID, limit)
	return alertRows(args.Get(0)), args.Error(1)
}

func (m *AlertRepository) ListPendingEmail(ctx context.Context, cutoff time.Time) ([]*ports.AlertDetailsData, error) {
	args := m.Called(ctx, cutoff)
	return alertRows(args.Get(0)), args.Error(1)
}

func (m *AlertRepository) MarkAsRead(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AlertRepository) Dismiss(ctx context.Context, id uint, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *AlertRepository) MarkEmailAsSent(ctx context.Context, id uint, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func alertRows(v interface{}) []*ports.AlertDetailsData {
	if v == nil {
		return nil
	}
	return v.([]*ports.AlertDetailsData)
}

// SubscriptionRepository is a mock of ports.SubscriptionRepository
type SubscriptionRepository struct {
	mock.Mock
}

func NewSubscriptionRepository(t testingT) *SubscriptionRepository {
	m := &SubscriptionRepository{}
	register(&m.Mock, t)
	return m
}

func (m *SubscriptionRepository) Save(ctx context.Context, sub *ports.SubscriptionData) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *SubscriptionRepository) Find(ctx context.Context, userID, locationID uint) (*ports.SubscriptionData, error) {
	args := m.Called(ctx, userID, locationID)
	var r0 *ports.SubscriptionData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.SubscriptionData)
	}
	return r0, args.Error(1)
}

func (m *SubscriptionRepository) FindDefaultForUser(ctx context.Context, userID uint) (*ports.SubscriptionData, error) {
	args := m.Called(ctx, userID)
	var r0 *ports.SubscriptionData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.SubscriptionData)
	}
	return r0, args.Error(1)
}

func (m *SubscriptionRepository) ListByLocation(ctx context.Context, locationID uint) ([]*ports.SubscriptionData, error) {
	args := m.Called(ctx, locationID)
	var r0 []*ports.SubscriptionData
	if v := args.Get(0); v != nil {
		r0 = v.([]*ports.SubscriptionData)
	}
	return r0, args.Error(1)
}

func (m *SubscriptionRepository) ListByUser(ctx context.Context, userID uint) ([]*ports.SubscriptionData, error) {
	args := m.Called(ctx, userID)
	var r0 []*ports.SubscriptionData
	if v := args.Get(0); v != nil {
		r0 = v.([]*ports.SubscriptionData)
	}
	return r0, args.Error(1)
}

func (m *SubscriptionRepository) SetDefault(ctx context.Context, userID, locationID uint) error {
	return m.Called(ctx, userID, locationID).Error(0)
}

func (m *SubscriptionRepository) Delete(ctx context.Context, userID, locationID uint) error {
	return m.Called(ctx, userID, locationID).Error(0)
}

// LocationRepository is a mock of ports.LocationRepository
type LocationRepository struct {
	mock.Mock
}

func NewLocationRepository(t testingT) *LocationRepository {
	m := &LocationRepository{}
	register(&m.Mock, t)
	return m
}

func (m *LocationRepository) Save(ctx context.Context, location *ports.LocationData) error {
	return m.Called(ctx, location).Error(0)
}

func (m *LocationRepository) FindByID(ctx context.Context, id uint) (*ports.LocationData, error) {
	args := m.Called(ctx, id)
	var r0 *ports.LocationData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.LocationData)
	}
	return r0, args.Error(1)
}

func (m *LocationRepository) List(ctx context.Context) ([]*ports.LocationData, error) {
	args := m.Called(ctx)
	var r0 []*ports.LocationData
	if v := args.Get(0); v != nil {
		r0 = v.([]*ports.LocationData)
	}
	return r0, args.Error(1)
}

func (m *LocationRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// ReadingRepository is a mock of ports.ReadingRepository
type ReadingRepository struct {
	mock.Mock
}

func NewReadingRepository(t testingT) *ReadingRepository {
	m := &ReadingRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ReadingRepository) Save(ctx context.Context, reading *ports.ReadingData) error {
	return m.Called(ctx, reading).Error(0)
}

func (m *ReadingRepository) FindByID(ctx context.Context, id uint) (*ports.ReadingData, error) {
	args := m.Called(ctx, id)
	var r0 *ports.ReadingData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.ReadingData)
	}
	return r0, args.Error(1)
}

func (m *ReadingRepository) FindLatestByLocation(ctx context.Context, locationID uint) (*ports.ReadingData, error) {
	args := m.Called(ctx, locationID)
	var r0 *ports.ReadingData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.ReadingData)
	}
	return r0, args.Error(1)
}

func (m *ReadingRepository) ListByLocation(ctx context.Context, locationID uint, limit int) ([]*ports.ReadingData, error) {
	args := m.Called(ctx, locationID, limit)
	var r0 []*ports.ReadingData
	if v := args.Get(0); v != nil {
		r0 = v.([]*ports.ReadingData)
	}
	return r0, args.Error(1)
}

// UserRepository is a mock of ports.UserRepository
type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	register(&m.Mock, t)
	return m
}

func (m *UserRepository) Save(ctx context.Context, user *ports.UserData) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uint) (*ports.UserData, error) {
	args := m.Called(ctx, id)
	var r0 *ports.UserData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.UserData)
	}
	return r0, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*ports.UserData, error) {
	args := m.Called(ctx, email)
	var r0 *ports.UserData
	if v := args.Get(0); v != nil {
		r0 = v.(*ports.UserData)
	}
	return r0, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *ports.UserData) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
