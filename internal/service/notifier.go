package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"birthdaybot/internal/domain"
	"birthdaybot/internal/repository"
)

// Sender delivers a plain text message to a user
type Sender interface {
	SendText(userID int64, text string) error
}

// NotifierService scans registered users and sends the birthday countdown to
// anyone whose local clock just crossed midnight. The eligibility window is
// exactly as wide as the poll interval, so each user is notified once per
// local calendar day without a persisted marker.
type NotifierService struct {
	users  repository.UserRepository
	sender Sender
	logger *zap.Logger
}

// NewNotifierService creates the midnight notifier
func NewNotifierService(users repository.UserRepository, sender Sender, logger *zap.Logger) *NotifierService {
	return &NotifierService{
		users:  users,
		sender: sender,
		logger: logger,
	}
}

// Scan runs one notification cycle. Per-user failures are logged and
// skipped; they never abort the rest of the scan.
func (s *NotifierService) Scan(now time.Time) {
	users, err := s.users.ListRegistered()
	if err != nil {
		s.logger.Error("Failed to list registered users", zap.Error(err))
		return
	}

	for _, u := range users {
		if !u.NotificationsEnabled {
			continue
		}

		loc, err := time.LoadLocation(*u.Timezone)
		if err != nil {
			s.logger.Error("Failed to load user timezone",
				zap.Int64("user_id", u.UserID),
				zap.String("timezone", *u.Timezone),
				zap.Error(err),
			)
			continue
		}

		local := now.In(loc)
		if local.Hour() != 0 || local.Minute() >= 5 {
			continue
		}

		days := domain.DaysUntil(*u.Birthday, local)
		if err := s.sender.SendText(u.UserID, CountdownText(days)); err != nil {
			s.logger.Error("Failed to send notification",
				zap.Int64("user_id", u.UserID),
				zap.Error(err),
			)
			continue
		}

		s.logger.Info("Notification sent",
			zap.Int64("user_id", u.UserID),
			zap.Int("days_left", days),
		)
	}
}

// CountdownText renders the days-until count, with distinguished wording for
// the birthday itself and for the eve
func CountdownText(days int) string {
	switch days {
	case 0:
		return "🎉 С днём рождения!"
	case 1:
		return "🎂 Ваш день рождения уже завтра!"
	default:
		return fmt.Sprintf("🎉 До вашего дня рождения осталось %d дней!", days)
	}
}
