package testutil

import (
	"time"

	"go.uber.org/zap"

	"birthdaybot/internal/domain"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewRegisteredUser creates a fully-registered test user
func NewRegisteredUser(userID int64, birthday time.Time, timezone string) *domain.User {
	return &domain.User{
		UserID:               userID,
		Birthday:             &birthday,
		Timezone:             &timezone,
		NotificationsEnabled: true,
		CreatedAt:            time.Now(),
	}
}

// NewBareUser creates a user record with neither birthday nor timezone
func NewBareUser(userID int64) *domain.User {
	return &domain.User{
		UserID:               userID,
		NotificationsEnabled: true,
		CreatedAt:            time.Now(),
	}
}
