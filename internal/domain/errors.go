package domain

import "errors"

var (
	// ErrBadDateFormat means the input does not match DD.MM.YYYY
	ErrBadDateFormat = errors.New("date must match DD.MM.YYYY")
	// ErrInvalidDate means the input matched the pattern but is not a real calendar date
	ErrInvalidDate = errors.New("invalid calendar date")
	// ErrNoTimezone means the geocoder or timezone lookup yielded nothing
	ErrNoTimezone = errors.New("timezone could not be resolved")
	// ErrNotRegistered means the user has no birthday or timezone on record
	ErrNotRegistered = errors.New("registration is not complete")
	// ErrWrongPhase means an action arrived that the current phase does not accept
	ErrWrongPhase = errors.New("action not valid in current phase")
)
