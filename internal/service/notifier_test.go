package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"birthdaybot/internal/domain"
	"birthdaybot/internal/testutil"
)

func TestNotifierService_Scan_MidnightWindow(t *testing.T) {
	birthday := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)
	user := testutil.NewRegisteredUser(1, birthday, "Europe/Paris")

	tests := []struct {
		name       string
		nowUTC     time.Time
		expectSend bool
	}{
		{
			// 00:03 local in Paris (winter, UTC+1)
			name:       "inside window",
			nowUTC:     time.Date(2025, time.January, 1, 23, 3, 0, 0, time.UTC),
			expectSend: true,
		},
		{
			// 00:08 local: the window has passed
			name:       "five minutes later",
			nowUTC:     time.Date(2025, time.January, 1, 23, 8, 0, 0, time.UTC),
			expectSend: false,
		},
		{
			name:       "just before local midnight",
			nowUTC:     time.Date(2025, time.January, 1, 22, 59, 0, 0, time.UTC),
			expectSend: false,
		},
		{
			name:       "midday",
			nowUTC:     time.Date(2025, time.January, 1, 11, 0, 0, 0, time.UTC),
			expectSend: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(testutil.MockUserRepository)
			users.On("ListRegistered").Return([]domain.User{*user}, nil)

			sender := new(testutil.MockSender)
			if tt.expectSend {
				sender.On("SendText", int64(1), mock.AnythingOfType("string")).Return(nil)
			}

			svc := NewNotifierService(users, sender, testutil.NewTestLogger())
			svc.Scan(tt.nowUTC)

			if tt.expectSend {
				sender.AssertNumberOfCalls(t, "SendText", 1)
			} else {
				sender.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything)
			}
		})
	}
}

// A failure for one user must not abort the scan for the rest.
func TestNotifierService_Scan_FailuresAreIsolated(t *testing.T) {
	birthday := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	broken := *testutil.NewRegisteredUser(1, birthday, "Mars/Olympus")
	failing := *testutil.NewRegisteredUser(2, birthday, "Europe/Paris")
	healthy := *testutil.NewRegisteredUser(3, birthday, "Europe/Paris")

	users := new(testutil.MockUserRepository)
	users.On("ListRegistered").Return([]domain.User{broken, failing, healthy}, nil)

	sender := new(testutil.MockSender)
	sender.On("SendText", int64(2), mock.AnythingOfType("string")).Return(fmt.Errorf("blocked by user"))
	sender.On("SendText", int64(3), mock.AnythingOfType("string")).Return(nil)

	svc := NewNotifierService(users, sender, testutil.NewTestLogger())
	// 00:03 local in Paris
	svc.Scan(time.Date(2025, time.January, 1, 23, 3, 0, 0, time.UTC))

	sender.AssertExpectations(t)
	sender.AssertNotCalled(t, "SendText", int64(1), mock.Anything)
}

func TestNotifierService_Scan_SkipsDisabled(t *testing.T) {
	birthday := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)
	muted := testutil.NewRegisteredUser(1, birthday, "Europe/Paris")
	muted.NotificationsEnabled = false

	users := new(testutil.MockUserRepository)
	users.On("ListRegistered").Return([]domain.User{*muted}, nil)

	sender := new(testutil.MockSender)
	svc := NewNotifierService(users, sender, testutil.NewTestLogger())
	svc.Scan(time.Date(2025, time.January, 1, 23, 3, 0, 0, time.UTC))

	sender.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything)
}

func TestNotifierService_Scan_ListError(t *testing.T) {
	users := new(testutil.MockUserRepository)
	users.On("ListRegistered").Return(nil, fmt.Errorf("db down"))

	sender := new(testutil.MockSender)
	svc := NewNotifierService(users, sender, testutil.NewTestLogger())
	svc.Scan(time.Now())

	sender.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything)
}

func TestCountdownText(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected string
	}{
		{name: "birthday today", days: 0, expected: "🎉 С днём рождения!"},
		{name: "tomorrow variant", days: 1, expected: "🎂 Ваш день рождения уже завтра!"},
		{name: "numeric count", days: 42, expected: "🎉 До вашего дня рождения осталось 42 дней!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountdownText(tt.days))
		})
	}
}
