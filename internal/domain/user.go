package domain

import "time"

// User represents a bot user's persisted record
type User struct {
	UserID               int64
	Birthday             *time.Time
	Timezone             *string
	City                 *string
	NotificationsEnabled bool
	CreatedAt            time.Time
}

// FullyRegistered reports whether both birthday and timezone are set.
// Day-count queries and notifications require this.
func (u *User) FullyRegistered() bool {
	return u != nil && u.Birthday != nil && u.Timezone != nil
}
