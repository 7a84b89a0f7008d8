package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"birthdaybot/internal/domain"
	"birthdaybot/internal/geo"
)

// MockUserRepository is a mock for repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Find(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Save(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) ListRegistered() ([]domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockGeocoder is a mock for geo.Geocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Forward(ctx context.Context, city string) (*geo.Coordinates, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Coordinates), args.Error(1)
}

func (m *MockGeocoder) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)
	return args.String(0), args.Error(1)
}

// MockTimezoneResolver is a mock for geo.TimezoneResolver
type MockTimezoneResolver struct {
	mock.Mock
}

func (m *MockTimezoneResolver) TimezoneAt(lat, lon float64) string {
	args := m.Called(lat, lon)
	return args.String(0)
}

// MockSender is a mock for service.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendText(userID int64, text string) error {
	args := m.Called(userID, text)
	return args.Error(0)
}
