package domain

import (
	"regexp"
	"time"
)

const birthdayLayout = "02.01.2006"

var birthdayRe = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// ParseBirthday parses a typed DD.MM.YYYY date. A string that does not match
// the pattern returns ErrBadDateFormat; a matching string that is not a real
// calendar date (e.g. 31.02.2000) returns ErrInvalidDate.
func ParseBirthday(s string) (time.Time, error) {
	if !birthdayRe.MatchString(s) {
		return time.Time{}, ErrBadDateFormat
	}
	t, err := time.Parse(birthdayLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatBirthday renders a date as DD.MM.YYYY
func FormatBirthday(t time.Time) string {
	return t.Format(birthdayLayout)
}

// DaysUntil returns the whole-day count until the next occurrence of the
// birthday's month/day relative to now's local date. Returns 0 on the
// birthday itself.
func DaysUntil(birthday, now time.Time) int {
	today := civilDate(now)
	next := civilOccurrence(birthday, now.Year())
	if next.Before(today) {
		next = civilOccurrence(birthday, now.Year()+1)
	}
	return int(next.Sub(today).Hours() / 24)
}

// DaysSince returns the whole-day count since the most recent past occurrence
// of the birthday's month/day relative to now's local date. Returns 0 on the
// birthday itself.
func DaysSince(birthday, now time.Time) int {
	today := civilDate(now)
	last := civilOccurrence(birthday, now.Year())
	if last.After(today) {
		last = civilOccurrence(birthday, now.Year()-1)
	}
	return int(today.Sub(last).Hours() / 24)
}

// civilDate drops the time-of-day and location, keeping only the calendar
// date in UTC so that day arithmetic is immune to DST transitions.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// civilOccurrence places the birthday's month/day into the given year.
// February 29 normalizes to March 1 in non-leap years.
func civilOccurrence(birthday time.Time, year int) time.Time {
	return time.Date(year, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
}
