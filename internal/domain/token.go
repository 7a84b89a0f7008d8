package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Action tags the operation a callback token carries
type Action int

const (
	ActionNoop Action = iota
	ActionSelectYear
	ActionYearPrev
	ActionYearNext
	ActionBackToYears
	ActionSelectMonth
	ActionBackToMonths
	ActionSelectDay
	ActionConfirmDate
	ActionChangeDate
	ActionConfirmBirthday
	ActionChangeBirthday
	ActionConfirmTimezone
	ActionChangeTimezone
	ActionOptOutConfirm
	ActionOptOutCancel
)

// Token is a structured callback action: an operation tag plus its
// parameters. Encode and ParseToken round-trip losslessly.
type Token struct {
	Action Action
	Year   int
	Month  int
	Day    int
	Page   int
	Date   string // DD.MM.YYYY, for ActionConfirmDate
	TZ     string // IANA name, for ActionConfirmTimezone
}

// Encode renders the token as callback data.
func (t Token) Encode() string {
	switch t.Action {
	case ActionSelectYear:
		return fmt.Sprintf("cal:year:%d:%d", t.Year, t.Page)
	case ActionYearPrev:
		return fmt.Sprintf("cal:year_prev:%d", t.Page)
	case ActionYearNext:
		return fmt.Sprintf("cal:year_next:%d", t.Page)
	case ActionBackToYears:
		return "cal:back_to_years"
	case ActionSelectMonth:
		return fmt.Sprintf("cal:month:%d:%d", t.Year, t.Month)
	case ActionBackToMonths:
		return fmt.Sprintf("cal:back_to_months:%d", t.Year)
	case ActionSelectDay:
		return fmt.Sprintf("cal:day:%d:%d:%d", t.Year, t.Month, t.Day)
	case ActionConfirmDate:
		return "cal:confirm:" + t.Date
	case ActionChangeDate:
		return "cal:change"
	case ActionConfirmBirthday:
		return "confirm_birthday"
	case ActionChangeBirthday:
		return "change_birthday"
	case ActionConfirmTimezone:
		return "confirm_timezone:" + t.TZ
	case ActionChangeTimezone:
		return "change_timezone"
	case ActionOptOutConfirm:
		return "optout_confirm"
	case ActionOptOutCancel:
		return "optout_cancel"
	default:
		return "noop"
	}
}

// ParseToken decodes callback data into a Token. Unknown or malformed data
// returns an error; the caller treats that as unhandled input.
func ParseToken(data string) (Token, error) {
	switch data {
	case "noop":
		return Token{Action: ActionNoop}, nil
	case "cal:back_to_years":
		return Token{Action: ActionBackToYears}, nil
	case "cal:change":
		return Token{Action: ActionChangeDate}, nil
	case "confirm_birthday":
		return Token{Action: ActionConfirmBirthday}, nil
	case "change_birthday":
		return Token{Action: ActionChangeBirthday}, nil
	case "change_timezone":
		return Token{Action: ActionChangeTimezone}, nil
	case "optout_confirm":
		return Token{Action: ActionOptOutConfirm}, nil
	case "optout_cancel":
		return Token{Action: ActionOptOutCancel}, nil
	}

	if tz, ok := strings.CutPrefix(data, "confirm_timezone:"); ok {
		if tz == "" {
			return Token{}, fmt.Errorf("empty timezone in token %q", data)
		}
		return Token{Action: ActionConfirmTimezone, TZ: tz}, nil
	}
	if date, ok := strings.CutPrefix(data, "cal:confirm:"); ok {
		if _, err := ParseBirthday(date); err != nil {
			return Token{}, fmt.Errorf("bad date in token %q: %w", data, err)
		}
		return Token{Action: ActionConfirmDate, Date: date}, nil
	}

	parts := strings.Split(data, ":")
	if len(parts) < 2 || parts[0] != "cal" {
		return Token{}, fmt.Errorf("unknown callback token %q", data)
	}

	nums, err := parseInts(parts[2:])
	if err != nil {
		return Token{}, fmt.Errorf("bad parameters in token %q: %w", data, err)
	}

	switch parts[1] {
	case "year":
		if len(nums) != 2 {
			return Token{}, fmt.Errorf("token %q: want year and page", data)
		}
		return Token{Action: ActionSelectYear, Year: nums[0], Page: nums[1]}, nil
	case "year_prev":
		if len(nums) != 1 {
			return Token{}, fmt.Errorf("token %q: want page", data)
		}
		return Token{Action: ActionYearPrev, Page: nums[0]}, nil
	case "year_next":
		if len(nums) != 1 {
			return Token{}, fmt.Errorf("token %q: want page", data)
		}
		return Token{Action: ActionYearNext, Page: nums[0]}, nil
	case "month":
		if len(nums) != 2 {
			return Token{}, fmt.Errorf("token %q: want year and month", data)
		}
		return Token{Action: ActionSelectMonth, Year: nums[0], Month: nums[1]}, nil
	case "back_to_months":
		if len(nums) != 1 {
			return Token{}, fmt.Errorf("token %q: want year", data)
		}
		return Token{Action: ActionBackToMonths, Year: nums[0]}, nil
	case "day":
		if len(nums) != 3 {
			return Token{}, fmt.Errorf("token %q: want year, month and day", data)
		}
		return Token{Action: ActionSelectDay, Year: nums[0], Month: nums[1], Day: nums[2]}, nil
	}

	return Token{}, fmt.Errorf("unknown callback token %q", data)
}

func parseInts(parts []string) ([]int, error) {
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, nil
}
