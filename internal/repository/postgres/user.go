package postgres

import (
	"database/sql"
	"time"

	"birthdaybot/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Find returns a user record by id, or (nil, nil) if it doesn't exist
func (r *UserRepo) Find(userID int64) (*domain.User, error) {
	query := `
		SELECT user_id, birthday, timezone, city, notifications_enabled, created_at
		FROM users
		WHERE user_id = $1
	`
	row := r.db.QueryRow(query, userID)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Save upserts the record: insert on first write, full update afterwards
func (r *UserRepo) Save(user *domain.User) error {
	query := `
		INSERT INTO users (user_id, birthday, timezone, city, notifications_enabled)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET
			birthday = EXCLUDED.birthday,
			timezone = EXCLUDED.timezone,
			city = EXCLUDED.city,
			notifications_enabled = EXCLUDED.notifications_enabled
	`
	_, err := r.db.Exec(query,
		user.UserID,
		nullTime(user.Birthday),
		nullString(user.Timezone),
		nullString(user.City),
		user.NotificationsEnabled,
	)
	return err
}

// Delete removes the user record
func (r *UserRepo) Delete(userID int64) error {
	query := `DELETE FROM users WHERE user_id = $1`
	_, err := r.db.Exec(query, userID)
	return err
}

// ListRegistered returns all fully-registered users
func (r *UserRepo) ListRegistered() ([]domain.User, error) {
	query := `
		SELECT user_id, birthday, timezone, city, notifications_enabled, created_at
		FROM users
		WHERE birthday IS NOT NULL AND timezone IS NOT NULL
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s scanner) (*domain.User, error) {
	var (
		user     domain.User
		birthday sql.NullTime
		timezone sql.NullString
		city     sql.NullString
	)

	err := s.Scan(
		&user.UserID,
		&birthday,
		&timezone,
		&city,
		&user.NotificationsEnabled,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if birthday.Valid {
		t := birthday.Time
		user.Birthday = &t
	}
	if timezone.Valid {
		v := timezone.String
		user.Timezone = &v
	}
	if city.Valid {
		v := city.String
		user.City = &v
	}
	return &user, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
