package repository

import (
	"birthdaybot/internal/domain"
)

// UserRepository defines user record operations
type UserRepository interface {
	// Find returns the user record or (nil, nil) when absent
	Find(userID int64) (*domain.User, error)
	// Save upserts the whole record keyed by user id
	Save(user *domain.User) error
	// Delete removes the record entirely
	Delete(userID int64) error
	// ListRegistered returns all users with both birthday and timezone set
	ListRegistered() ([]domain.User, error)
}
