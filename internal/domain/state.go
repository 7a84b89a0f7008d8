package domain

import "time"

// Phase represents where a user is in a registration or settings flow
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseWaitingBirthday    Phase = "waiting_for_birthday"
	PhaseConfirmBirthday    Phase = "confirm_birthday"
	PhaseWaitingTimezone    Phase = "waiting_for_timezone"
	PhaseConfirmTimezone    Phase = "confirm_timezone"
	PhaseWaitingNewBirthday Phase = "waiting_for_new_birthday"
	PhaseWaitingNewTimezone Phase = "waiting_for_new_timezone"
	PhaseConfirmNewTimezone Phase = "confirm_new_timezone"
	PhaseConfirmOptOut      Phase = "confirm_opt_out"
)

// ConversationState holds working memory for one in-progress dialogue flow.
// It is keyed by user id, created on first touch and cleared when the flow
// completes or is cancelled. Only on confirmation are its fields committed
// to the persisted User record.
type ConversationState struct {
	Phase Phase

	// Calendar picker cursor
	Year  int
	Month int

	// Pending values awaiting confirmation
	Birthday *time.Time
	Timezone string
	City     string
}
