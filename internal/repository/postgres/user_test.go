package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"birthdaybot/internal/domain"
)

const selectColumns = "user_id, birthday, timezone, city, notifications_enabled, created_at"

func userColumns() []string {
	return []string{"user_id", "birthday", "timezone", "city", "notifications_enabled", "created_at"}
}

func TestUserRepo_Find(t *testing.T) {
	birthday := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedUser  *domain.User
		expectedError bool
	}{
		{
			name:   "registered user",
			userID: 123,
			mockRows: sqlmock.NewRows(userColumns()).
				AddRow(int64(123), birthday, "Europe/Paris", "Paris", true, created),
			expectedUser: &domain.User{
				UserID:               123,
				Birthday:             &birthday,
				Timezone:             strPtr("Europe/Paris"),
				City:                 strPtr("Paris"),
				NotificationsEnabled: true,
				CreatedAt:            created,
			},
		},
		{
			name:   "partial registration",
			userID: 456,
			mockRows: sqlmock.NewRows(userColumns()).
				AddRow(int64(456), birthday, nil, nil, true, created),
			expectedUser: &domain.User{
				UserID:               456,
				Birthday:             &birthday,
				NotificationsEnabled: true,
				CreatedAt:            created,
			},
		},
		{
			name:         "user not exists",
			userID:       789,
			mockRows:     sqlmock.NewRows(userColumns()),
			expectedUser: nil,
		},
		{
			name:          "database error",
			userID:        321,
			mockError:     fmt.Errorf("db down"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			query := "SELECT " + selectColumns + " FROM users WHERE user_id = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnRows(tt.mockRows)
			}

			user, err := repo.Find(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_Save(t *testing.T) {
	birthday := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		user *domain.User
	}{
		{
			name: "full record",
			user: &domain.User{
				UserID:               123,
				Birthday:             &birthday,
				Timezone:             strPtr("Europe/Moscow"),
				City:                 strPtr("Москва"),
				NotificationsEnabled: true,
			},
		},
		{
			name: "birthday only",
			user: &domain.User{
				UserID:   456,
				Birthday: &birthday,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			mock.ExpectExec("INSERT INTO users").
				WithArgs(
					tt.user.UserID,
					nullTime(tt.user.Birthday),
					nullString(tt.user.Timezone),
					nullString(tt.user.City),
					tt.user.NotificationsEnabled,
				).
				WillReturnResult(sqlmock.NewResult(0, 1))

			assert.NoError(t, repo.Save(tt.user))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectExec("DELETE FROM users WHERE user_id = \\$1").
		WithArgs(int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(123))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ListRegistered(t *testing.T) {
	birthday := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(int64(1), birthday, "Europe/Paris", "Paris", true, created).
		AddRow(int64(2), birthday, "Asia/Tokyo", nil, true, created)

	mock.ExpectQuery("SELECT " + selectColumns + " FROM users WHERE birthday IS NOT NULL AND timezone IS NOT NULL").
		WillReturnRows(rows)

	users, err := repo.ListRegistered()
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].UserID)
	assert.Equal(t, "Europe/Paris", *users[0].Timezone)
	assert.Nil(t, users[1].City)
	assert.True(t, users[1].FullyRegistered())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func strPtr(s string) *string {
	return &s
}
