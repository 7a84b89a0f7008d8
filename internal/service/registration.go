package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"birthdaybot/internal/domain"
	"birthdaybot/internal/geo"
	"birthdaybot/internal/repository"
)

// defaultPickerYear is where the year picker opens when nothing was selected yet
const defaultPickerYear = 2000

// TimezoneCandidate is a resolved timezone awaiting user confirmation
type TimezoneCandidate struct {
	City      string
	Timezone  string
	LocalTime string // current wall clock in that timezone, HH:MM
}

// RegistrationService drives the registration and settings-change dialogue
// flows: it owns conversation state, validates input, talks to the geocoder
// and commits confirmed values to the user repository.
type RegistrationService struct {
	users    repository.UserRepository
	geocoder geo.Geocoder
	tzr      geo.TimezoneResolver
	states   *StateStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewRegistrationService creates the conversation service
func NewRegistrationService(
	users repository.UserRepository,
	geocoder geo.Geocoder,
	tzr geo.TimezoneResolver,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		users:    users,
		geocoder: geocoder,
		tzr:      tzr,
		states:   NewStateStore(),
		logger:   logger,
		now:      time.Now,
	}
}

// Phase returns the user's current conversation phase
func (s *RegistrationService) Phase(userID int64) domain.Phase {
	return s.states.Get(userID).Phase
}

// StartRegistration enters the registration flow and returns the year page
// the picker should open on
func (s *RegistrationService) StartRegistration(userID int64) int {
	state := s.states.Get(userID)
	*state = domain.ConversationState{Phase: domain.PhaseWaitingBirthday}
	return s.pickerPage(state)
}

// StartBirthdayChange enters the settings flow for a new birthday
func (s *RegistrationService) StartBirthdayChange(userID int64) int {
	state := s.states.Get(userID)
	*state = domain.ConversationState{Phase: domain.PhaseWaitingNewBirthday}
	return s.pickerPage(state)
}

// StartTimezoneChange enters the settings flow for a new timezone
func (s *RegistrationService) StartTimezoneChange(userID int64) {
	state := s.states.Get(userID)
	*state = domain.ConversationState{Phase: domain.PhaseWaitingNewTimezone}
}

// SubmitTypedDate handles a typed DD.MM.YYYY birthday. On success the
// candidate is held in scratch and, in the registration flow, the phase
// advances to confirmation. Validation errors leave the phase untouched.
func (s *RegistrationService) SubmitTypedDate(userID int64, text string) (time.Time, error) {
	state := s.states.Get(userID)
	if state.Phase != domain.PhaseWaitingBirthday && state.Phase != domain.PhaseWaitingNewBirthday {
		return time.Time{}, domain.ErrWrongPhase
	}

	birthday, err := domain.ParseBirthday(text)
	if err != nil {
		return time.Time{}, err
	}

	state.Birthday = &birthday
	if state.Phase == domain.PhaseWaitingBirthday {
		state.Phase = domain.PhaseConfirmBirthday
	}
	return birthday, nil
}

// SelectYear records the picked year; the outer phase does not change
func (s *RegistrationService) SelectYear(userID int64, year int) error {
	state := s.states.Get(userID)
	if state.Phase != domain.PhaseWaitingBirthday && state.Phase != domain.PhaseWaitingNewBirthday {
		return domain.ErrWrongPhase
	}
	state.Year = year
	return nil
}

// SelectMonth records the picked month; the outer phase does not change
func (s *RegistrationService) SelectMonth(userID int64, month int) error {
	state := s.states.Get(userID)
	if state.Phase != domain.PhaseWaitingBirthday && state.Phase != domain.PhaseWaitingNewBirthday {
		return domain.ErrWrongPhase
	}
	state.Month = month
	return nil
}

// SelectDay completes the calendar-picker path: the composed date becomes the
// candidate, exactly as the typed path would produce it
func (s *RegistrationService) SelectDay(userID int64, year, month, day int) (time.Time, error) {
	state := s.states.Get(userID)
	if state.Phase != domain.PhaseWaitingBirthday && state.Phase != domain.PhaseWaitingNewBirthday {
		return time.Time{}, domain.ErrWrongPhase
	}
	if month < 1 || month > 12 || day < 1 || day > domain.DaysInMonth(year, month) {
		return time.Time{}, domain.ErrInvalidDate
	}

	birthday := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	state.Year = year
	state.Month = month
	state.Birthday = &birthday
	if state.Phase == domain.PhaseWaitingBirthday {
		state.Phase = domain.PhaseConfirmBirthday
	}
	return birthday, nil
}

// YearPage returns the page the picker should reopen on, derived from the
// year selected so far
func (s *RegistrationService) YearPage(userID int64) int {
	return s.pickerPage(s.states.Get(userID))
}

// ConfirmBirthday commits the candidate date. In the registration flow the
// dialogue advances to timezone capture (returns true); in the settings flow
// it completes (returns false).
func (s *RegistrationService) ConfirmBirthday(userID int64) (bool, error) {
	state := s.states.Get(userID)
	if state.Birthday == nil {
		return false, domain.ErrWrongPhase
	}

	switch state.Phase {
	case domain.PhaseConfirmBirthday:
		if err := s.saveBirthday(userID, *state.Birthday); err != nil {
			return false, err
		}
		state.Phase = domain.PhaseWaitingTimezone
		return true, nil
	case domain.PhaseWaitingNewBirthday:
		if err := s.saveBirthday(userID, *state.Birthday); err != nil {
			return false, err
		}
		s.states.Clear(userID)
		return false, nil
	default:
		return false, domain.ErrWrongPhase
	}
}

// ChangeBirthday discards the candidate and reopens date entry from the
// picker's default page
func (s *RegistrationService) ChangeBirthday(userID int64) (int, error) {
	state := s.states.Get(userID)
	switch state.Phase {
	case domain.PhaseConfirmBirthday:
		state.Phase = domain.PhaseWaitingBirthday
	case domain.PhaseWaitingNewBirthday:
		// settings flow confirms inside the same phase
	default:
		return 0, domain.ErrWrongPhase
	}
	state.Birthday = nil
	state.Year = 0
	state.Month = 0
	return s.pickerPage(state), nil
}

// SubmitCity resolves a free-text city name to a timezone candidate via
// forward geocoding. No result re-prompts without a phase change.
func (s *RegistrationService) SubmitCity(ctx context.Context, userID int64, city string) (*TimezoneCandidate, error) {
	state := s.states.Get(userID)
	if state.Phase != domain.PhaseWaitingTimezone && state.Phase != domain.PhaseWaitingNewTimezone {
		return nil, domain.ErrWrongPhase
	}

	coords, err := s.geocoder.Forward(ctx, city)
	if err != nil {
		return nil, err
	}
	if coords == nil {
		return nil, domain.ErrNoTimezone
	}

	tz := s.tzr.TimezoneAt(coords.Lat, coords.Lon)
	if tz == "" {
		return nil, domain.ErrNoTimezone
	}
	return s.holdTimezone(state, tz, city)
}

// SubmitLocation resolves a shared geolocation to a timezone candidate.
// The reverse-geocoded city is best effort; its absence is not an error.
func (s *RegistrationService) SubmitLocation(ctx context.Context, userID int64, lat, lon float64) (*TimezoneCandidate, error) {
	state := s.states.Get(userID)
	if state.Phase != domain.PhaseWaitingTimezone && state.Phase != domain.PhaseWaitingNewTimezone {
		return nil, domain.ErrWrongPhase
	}

	tz := s.tzr.TimezoneAt(lat, lon)
	if tz == "" {
		return nil, domain.ErrNoTimezone
	}

	city, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		s.logger.Warn("Reverse geocode failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		city = ""
	}
	return s.holdTimezone(state, tz, city)
}

// ConfirmTimezone commits the candidate timezone (and city) and completes
// the flow. Returns true when this finished first-time registration.
func (s *RegistrationService) ConfirmTimezone(userID int64) (bool, error) {
	state := s.states.Get(userID)
	if state.Timezone == "" {
		return false, domain.ErrWrongPhase
	}
	if state.Phase != domain.PhaseConfirmTimezone && state.Phase != domain.PhaseConfirmNewTimezone {
		return false, domain.ErrWrongPhase
	}
	registered := state.Phase == domain.PhaseConfirmTimezone

	user, err := s.users.Find(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		user = &domain.User{UserID: userID, NotificationsEnabled: true}
	}
	tz := state.Timezone
	user.Timezone = &tz
	if state.City != "" {
		city := state.City
		user.City = &city
	}
	if err := s.users.Save(user); err != nil {
		return false, err
	}

	s.states.Clear(userID)
	return registered, nil
}

// ChangeTimezone discards the candidate and re-prompts for a city or location
func (s *RegistrationService) ChangeTimezone(userID int64) error {
	state := s.states.Get(userID)
	switch state.Phase {
	case domain.PhaseConfirmTimezone:
		state.Phase = domain.PhaseWaitingTimezone
	case domain.PhaseConfirmNewTimezone:
		state.Phase = domain.PhaseWaitingNewTimezone
	case domain.PhaseWaitingTimezone, domain.PhaseWaitingNewTimezone:
		// already prompting
	default:
		return domain.ErrWrongPhase
	}
	state.Timezone = ""
	state.City = ""
	return nil
}

// DaysUntil answers "how many days until the next birthday" in the user's
// local timezone. Requires a fully registered user.
func (s *RegistrationService) DaysUntil(userID int64) (int, error) {
	user, now, err := s.registeredNow(userID)
	if err != nil {
		return 0, err
	}
	return domain.DaysUntil(*user.Birthday, now), nil
}

// DaysSince answers "how many days since the last birthday" in the user's
// local timezone. Requires a fully registered user.
func (s *RegistrationService) DaysSince(userID int64) (int, error) {
	user, now, err := s.registeredNow(userID)
	if err != nil {
		return 0, err
	}
	return domain.DaysSince(*user.Birthday, now), nil
}

// Settings returns the persisted record for display
func (s *RegistrationService) Settings(userID int64) (*domain.User, error) {
	user, err := s.users.Find(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotRegistered
	}
	return user, nil
}

// StartOptOut asks for a second confirmation before the destructive delete
func (s *RegistrationService) StartOptOut(userID int64) {
	state := s.states.Get(userID)
	*state = domain.ConversationState{Phase: domain.PhaseConfirmOptOut}
}

// ConfirmOptOut deletes the whole user record; re-registration is required
// afterwards
func (s *RegistrationService) ConfirmOptOut(userID int64) error {
	state := s.states.Get(userID)
	if state.Phase != domain.PhaseConfirmOptOut {
		return domain.ErrWrongPhase
	}
	if err := s.users.Delete(userID); err != nil {
		return err
	}
	s.states.Clear(userID)
	return nil
}

// CancelOptOut leaves the record untouched
func (s *RegistrationService) CancelOptOut(userID int64) {
	state := s.states.Get(userID)
	if state.Phase == domain.PhaseConfirmOptOut {
		s.states.Clear(userID)
	}
}

func (s *RegistrationService) holdTimezone(state *domain.ConversationState, tz, city string) (*TimezoneCandidate, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.logger.Warn("Resolver returned unloadable timezone", zap.String("timezone", tz), zap.Error(err))
		return nil, domain.ErrNoTimezone
	}

	state.Timezone = tz
	state.City = city
	if state.Phase == domain.PhaseWaitingTimezone {
		state.Phase = domain.PhaseConfirmTimezone
	} else {
		state.Phase = domain.PhaseConfirmNewTimezone
	}

	return &TimezoneCandidate{
		City:      city,
		Timezone:  tz,
		LocalTime: s.now().In(loc).Format("15:04"),
	}, nil
}

func (s *RegistrationService) saveBirthday(userID int64, birthday time.Time) error {
	user, err := s.users.Find(userID)
	if err != nil {
		return err
	}
	if user == nil {
		user = &domain.User{UserID: userID, NotificationsEnabled: true}
	}
	user.Birthday = &birthday
	return s.users.Save(user)
}

func (s *RegistrationService) registeredNow(userID int64) (*domain.User, time.Time, error) {
	user, err := s.users.Find(userID)
	if err != nil {
		return nil, time.Time{}, err
	}
	if !user.FullyRegistered() {
		return nil, time.Time{}, domain.ErrNotRegistered
	}
	loc, err := time.LoadLocation(*user.Timezone)
	if err != nil {
		return nil, time.Time{}, err
	}
	return user, s.now().In(loc), nil
}

func (s *RegistrationService) pickerPage(state *domain.ConversationState) int {
	year := state.Year
	if year == 0 {
		year = defaultPickerYear
	}
	return domain.PageForYear(year, domain.EndYear(s.now()))
}
