package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"birthdaybot/internal/domain"
	"birthdaybot/internal/service"
)

// handleText handles all text messages: menu phrases first, then input
// the active phase is waiting for, then the fallback
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Menu phrases win over in-progress flow input: a menu phrase is never
	// a valid date or city, and matching it first lets a user leave an
	// abandoned flow without finishing it.
	switch strings.ToLower(text) {
	case menuDaysUntil:
		return h.handleDaysUntil(c)
	case menuDaysSince:
		return h.handleDaysSince(c)
	case menuChangeDate:
		page := h.reg.StartBirthdayChange(userID)
		return c.Send("Выберите год своего рождения или введите дату в формате ДД.ММ.ГГГГ:", yearsKeyboard(page, endYear()))
	case menuChangeTimezone:
		h.reg.StartTimezoneChange(userID)
		return c.Send("Отправьте новый город или поделитесь геолокацией:", locationKeyboard())
	case menuSettings:
		return h.handleSettings(c)
	case menuOptOut:
		h.reg.StartOptOut(userID)
		return c.Send(
			"🔕 Отключить уведомления?\n\nВсе ваши данные будут удалены, и для возврата потребуется повторная регистрация.",
			optOutKeyboard(),
		)
	}

	switch h.reg.Phase(userID) {
	case domain.PhaseWaitingBirthday, domain.PhaseWaitingNewBirthday:
		return h.submitTypedDate(c, userID, text)
	case domain.PhaseWaitingTimezone, domain.PhaseWaitingNewTimezone:
		return h.submitCity(c, userID, text)
	default:
		return c.Send(fallbackText(h.reg.Phase(userID)))
	}
}

// handleLocation handles a shared geolocation during timezone capture
func (h *Handler) handleLocation(c tele.Context) error {
	userID := c.Sender().ID
	loc := c.Message().Location
	if loc == nil {
		return nil
	}

	candidate, err := h.reg.SubmitLocation(context.Background(), userID, float64(loc.Lat), float64(loc.Lng))
	switch {
	case errors.Is(err, domain.ErrWrongPhase):
		return c.Send(fallbackText(h.reg.Phase(userID)))
	case errors.Is(err, domain.ErrNoTimezone):
		return c.Send("❗ Не удалось определить часовой пояс. Попробуйте отправить геолокацию ещё раз или назовите город.")
	case err != nil:
		h.logger.Error("Failed to resolve timezone from location",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Send(errorText)
	}

	return c.Send(timezoneCandidateText(candidate), timezoneKeyboard(candidate.Timezone), tele.ModeHTML)
}

func (h *Handler) submitTypedDate(c tele.Context, userID int64, text string) error {
	birthday, err := h.reg.SubmitTypedDate(userID, text)
	switch {
	case errors.Is(err, domain.ErrBadDateFormat):
		return c.Send("❗ Пожалуйста, введите дату в формате ДД.ММ.ГГГГ (например, 16.10.2008)")
	case errors.Is(err, domain.ErrInvalidDate):
		return c.Send("❗ Некорректная дата. Попробуйте ещё раз.")
	case err != nil:
		return c.Send(fallbackText(h.reg.Phase(userID)))
	}

	return c.Send(
		fmt.Sprintf("📅 Ваша дата рождения: <b>%s</b>\nВсё верно?", domain.FormatBirthday(birthday)),
		typedDateKeyboard(),
		tele.ModeHTML,
	)
}

func (h *Handler) submitCity(c tele.Context, userID int64, city string) error {
	candidate, err := h.reg.SubmitCity(context.Background(), userID, city)
	switch {
	case errors.Is(err, domain.ErrNoTimezone):
		return c.Send("❗ Не удалось определить часовой пояс. Попробуйте отправить геолокацию или другой город.")
	case err != nil:
		h.logger.Error("Failed to resolve timezone from city",
			zap.Int64("user_id", userID),
			zap.String("city", city),
			zap.Error(err),
		)
		return c.Send(errorText)
	}

	return c.Send(timezoneCandidateText(candidate), timezoneKeyboard(candidate.Timezone), tele.ModeHTML)
}

func (h *Handler) handleDaysUntil(c tele.Context) error {
	userID := c.Sender().ID

	days, err := h.reg.DaysUntil(userID)
	if errors.Is(err, domain.ErrNotRegistered) {
		return c.Send("Сначала завершите регистрацию!")
	}
	if err != nil {
		h.logger.Error("Failed to compute days until birthday", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(errorText)
	}

	return c.Send(service.CountdownText(days))
}

func (h *Handler) handleDaysSince(c tele.Context) error {
	userID := c.Sender().ID

	days, err := h.reg.DaysSince(userID)
	if errors.Is(err, domain.ErrNotRegistered) {
		return c.Send("Сначала завершите регистрацию!")
	}
	if err != nil {
		h.logger.Error("Failed to compute days since birthday", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(errorText)
	}

	if days == 0 {
		return c.Send("🎉 С днём рождения!")
	}
	return c.Send(fmt.Sprintf("📅 С вашего дня рождения прошло %d дней!", days))
}

func (h *Handler) handleSettings(c tele.Context) error {
	userID := c.Sender().ID

	user, err := h.reg.Settings(userID)
	if errors.Is(err, domain.ErrNotRegistered) {
		return c.Send("Сначала завершите регистрацию!")
	}
	if err != nil {
		h.logger.Error("Failed to load settings", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(errorText)
	}

	birthday := "—"
	if user.Birthday != nil {
		birthday = domain.FormatBirthday(*user.Birthday)
	}
	timezone := "—"
	if user.Timezone != nil {
		timezone = *user.Timezone
	}
	city := "—"
	if user.City != nil {
		city = *user.City
	}
	notifications := "✅ включены"
	if !user.NotificationsEnabled {
		notifications = "🔕 отключены"
	}

	return c.Send(fmt.Sprintf(
		"⚙️ Ваши настройки:\n\n📅 Дата рождения: %s\n🏙 Город: %s\n🌍 Часовой пояс: %s\n🔔 Уведомления: %s",
		birthday, city, timezone, notifications,
	))
}

func timezoneCandidateText(candidate *service.TimezoneCandidate) string {
	if candidate.City == "" {
		return fmt.Sprintf(
			"🌍 Ваш часовой пояс: <b>%s</b>\nМестное время: %s\nВсё верно?",
			candidate.Timezone, candidate.LocalTime,
		)
	}
	return fmt.Sprintf(
		"🌍 Город: %s\nЧасовой пояс: <b>%s</b>\nМестное время: %s\nВсё верно?",
		candidate.City, candidate.Timezone, candidate.LocalTime,
	)
}
