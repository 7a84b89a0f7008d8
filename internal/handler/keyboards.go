package handler

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"birthdaybot/internal/domain"
)

// Main menu phrases, matched case-insensitively in handleText
const (
	menuDaysUntil      = "сколько дней до дня рождения?"
	menuDaysSince      = "сколько дней со дня рождения?"
	menuChangeDate     = "изменить дату"
	menuChangeTimezone = "изменить часовой пояс"
	menuSettings       = "настройки"
	menuOptOut         = "отключить уведомления"
)

var monthNames = []string{
	"январь", "февраль", "март", "апрель",
	"май", "июнь", "июль", "август",
	"сентябрь", "октябрь", "ноябрь", "декабрь",
}

// yearsKeyboard builds one page of the year picker with bounded navigation
func yearsKeyboard(page, endYear int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	page = domain.ClampYearPage(page, endYear)

	var rows []tele.Row
	row := tele.Row{}
	for _, year := range domain.YearsOnPage(page, endYear) {
		token := domain.Token{Action: domain.ActionSelectYear, Year: year, Page: page}
		row = append(row, markup.Data(strconv.Itoa(year), token.Encode()))
		if len(row) == 5 {
			rows = append(rows, row)
			row = tele.Row{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	nav := tele.Row{}
	if page > 0 {
		nav = append(nav, markup.Data("←", domain.Token{Action: domain.ActionYearPrev, Page: page}.Encode()))
	} else {
		nav = append(nav, markup.Data(" ", "noop"))
	}
	if page < domain.MaxYearPage(endYear) {
		nav = append(nav, markup.Data("→", domain.Token{Action: domain.ActionYearNext, Page: page}.Encode()))
	} else {
		nav = append(nav, markup.Data(" ", "noop"))
	}
	rows = append(rows, nav)

	markup.Inline(rows...)
	return markup
}

// monthsKeyboard builds the month picker for a chosen year
func monthsKeyboard(year int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row
	for i := 0; i < 12; i += 3 {
		row := tele.Row{}
		for j := i; j < i+3; j++ {
			token := domain.Token{Action: domain.ActionSelectMonth, Year: year, Month: j + 1}
			row = append(row, markup.Data(monthNames[j], token.Encode()))
		}
		rows = append(rows, row)
	}

	back := domain.Token{Action: domain.ActionBackToYears}.Encode()
	rows = append(rows, tele.Row{
		markup.Data("←", back),
		markup.Data(strconv.Itoa(year), back),
		markup.Data(" ", "noop"),
	})

	markup.Inline(rows...)
	return markup
}

// daysKeyboard builds the day picker for a chosen year and month
func daysKeyboard(year, month int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row
	row := tele.Row{}
	for day := 1; day <= domain.DaysInMonth(year, month); day++ {
		token := domain.Token{Action: domain.ActionSelectDay, Year: year, Month: month, Day: day}
		row = append(row, markup.Data(strconv.Itoa(day), token.Encode()))
		if len(row) == 7 {
			rows = append(rows, row)
			row = tele.Row{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	back := domain.Token{Action: domain.ActionBackToMonths, Year: year}.Encode()
	label := fmt.Sprintf("%d, %s.", year, string([]rune(monthNames[month-1])[:3]))
	rows = append(rows, tele.Row{
		markup.Data("←", back),
		markup.Data(label, back),
		markup.Data(" ", "noop"),
	})

	markup.Inline(rows...)
	return markup
}

// pickedDateKeyboard confirms a date chosen in the calendar picker
func pickedDateKeyboard(date string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("Подтвердить", domain.Token{Action: domain.ActionConfirmDate, Date: date}.Encode()),
		markup.Data("Изменить", domain.Token{Action: domain.ActionChangeDate}.Encode()),
	))
	return markup
}

// typedDateKeyboard confirms a typed date
func typedDateKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("✅ Подтвердить", domain.Token{Action: domain.ActionConfirmBirthday}.Encode())),
		markup.Row(markup.Data("✏️ Изменить", domain.Token{Action: domain.ActionChangeBirthday}.Encode())),
	)
	return markup
}

// timezoneKeyboard confirms a resolved timezone
func timezoneKeyboard(tz string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("Подтвердить", domain.Token{Action: domain.ActionConfirmTimezone, TZ: tz}.Encode()),
		markup.Data("Изменить", domain.Token{Action: domain.ActionChangeTimezone}.Encode()),
	))
	return markup
}

// optOutKeyboard asks for the second confirmation before deleting the record
func optOutKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("🔕 Да, отключить", domain.Token{Action: domain.ActionOptOutConfirm}.Encode()),
		markup.Data("Отмена", domain.Token{Action: domain.ActionOptOutCancel}.Encode()),
	))
	return markup
}

// locationKeyboard offers to share a geolocation instead of typing a city
func locationKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(markup.Row(markup.Location("📬 Поделиться часовым поясом")))
	return markup
}

// mainMenuKeyboard is the persistent reply keyboard shown after registration
func mainMenuKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text("Сколько дней до дня рождения?")),
		markup.Row(markup.Text("Сколько дней со дня рождения?")),
		markup.Row(markup.Text("Изменить дату"), markup.Text("Изменить часовой пояс")),
		markup.Row(markup.Text("Настройки"), markup.Text("Отключить уведомления")),
	)
	return markup
}
