package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"birthdaybot/internal/domain"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified,
// just acknowledge the callback; otherwise acknowledge and return the error
// so the caller can send a new message instead
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// edit replaces the callback's message, falling back to a fresh send
func (h *Handler) edit(c tele.Context, userID int64, text string, opts ...interface{}) error {
	if err := c.Edit(text, opts...); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, opts...)
	}
	return c.Respond()
}

// handleCallback handles ALL callback queries by decoding the action token
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}
	userID := c.Sender().ID

	data := cleanCallbackData(callback.Data)
	token, err := domain.ParseToken(data)
	if err != nil {
		h.logger.Warn("Unhandled callback",
			zap.String("data", data),
			zap.Int64("user_id", userID),
		)
		return c.Respond()
	}

	switch token.Action {
	case domain.ActionNoop:
		return c.Respond()

	case domain.ActionSelectYear:
		if err := h.reg.SelectYear(userID, token.Year); err != nil {
			return h.respondExpired(c, userID)
		}
		return h.edit(c, userID, "Выберите месяц", monthsKeyboard(token.Year))

	case domain.ActionYearPrev:
		page := domain.ClampYearPage(token.Page-1, endYear())
		return h.edit(c, userID, "Пожалуйста, выберите год своего рождения:", yearsKeyboard(page, endYear()))

	case domain.ActionYearNext:
		page := domain.ClampYearPage(token.Page+1, endYear())
		return h.edit(c, userID, "Пожалуйста, выберите год своего рождения:", yearsKeyboard(page, endYear()))

	case domain.ActionBackToYears:
		page := h.reg.YearPage(userID)
		return h.edit(c, userID, "Пожалуйста, выберите год своего рождения:", yearsKeyboard(page, endYear()))

	case domain.ActionSelectMonth:
		if err := h.reg.SelectMonth(userID, token.Month); err != nil {
			return h.respondExpired(c, userID)
		}
		return h.edit(c, userID, "Выберите день", daysKeyboard(token.Year, token.Month))

	case domain.ActionBackToMonths:
		return h.edit(c, userID, "Выберите месяц", monthsKeyboard(token.Year))

	case domain.ActionSelectDay:
		birthday, err := h.reg.SelectDay(userID, token.Year, token.Month, token.Day)
		if err != nil {
			return h.respondExpired(c, userID)
		}
		date := domain.FormatBirthday(birthday)
		return h.edit(c, userID, fmt.Sprintf("Выбрана дата %s", date), pickedDateKeyboard(date))

	case domain.ActionConfirmDate, domain.ActionConfirmBirthday:
		return h.confirmBirthday(c, userID)

	case domain.ActionChangeDate, domain.ActionChangeBirthday:
		page, err := h.reg.ChangeBirthday(userID)
		if err != nil {
			return h.respondExpired(c, userID)
		}
		return h.edit(c, userID, "Пожалуйста, выберите год своего рождения:", yearsKeyboard(page, endYear()))

	case domain.ActionConfirmTimezone:
		return h.confirmTimezone(c, userID)

	case domain.ActionChangeTimezone:
		if err := h.reg.ChangeTimezone(userID); err != nil {
			return h.respondExpired(c, userID)
		}
		if err := h.edit(c, userID, "Пожалуйста, отправьте новый город или поделитесь геолокацией."); err != nil {
			return err
		}
		return c.Send("Отправьте город или поделитесь геолокацией:", locationKeyboard())

	case domain.ActionOptOutConfirm:
		if err := h.reg.ConfirmOptOut(userID); err != nil {
			if errors.Is(err, domain.ErrWrongPhase) {
				return h.respondExpired(c, userID)
			}
			h.logger.Error("Failed to delete user record", zap.Int64("user_id", userID), zap.Error(err))
			return h.edit(c, userID, errorText)
		}
		h.logger.Info("User opted out, record deleted", zap.Int64("user_id", userID))
		return h.edit(c, userID, "🔕 Уведомления отключены, все данные удалены.\nЧтобы вернуться — /start.")

	case domain.ActionOptOutCancel:
		h.reg.CancelOptOut(userID)
		return h.edit(c, userID, "Хорошо, ничего не меняем.")
	}

	return c.Respond()
}

func (h *Handler) confirmBirthday(c tele.Context, userID int64) error {
	needTimezone, err := h.reg.ConfirmBirthday(userID)
	if err != nil {
		if errors.Is(err, domain.ErrWrongPhase) {
			return h.respondExpired(c, userID)
		}
		h.logger.Error("Failed to save birthday", zap.Int64("user_id", userID), zap.Error(err))
		return h.edit(c, userID, errorText)
	}

	if !needTimezone {
		return h.edit(c, userID, "Дата рождения обновлена!")
	}

	if err := h.edit(c, userID, "Теперь отправьте ваш город или поделитесь геолокацией для определения часового пояса."); err != nil {
		return err
	}
	return c.Send("Отправьте город или поделитесь геолокацией:", locationKeyboard())
}

func (h *Handler) confirmTimezone(c tele.Context, userID int64) error {
	registered, err := h.reg.ConfirmTimezone(userID)
	if err != nil {
		if errors.Is(err, domain.ErrWrongPhase) {
			return h.respondExpired(c, userID)
		}
		h.logger.Error("Failed to save timezone", zap.Int64("user_id", userID), zap.Error(err))
		return h.edit(c, userID, errorText)
	}

	text := "🌍 Ваш часовой пояс обновлён!"
	if registered {
		text = "🌍 Часовой пояс сохранён. Регистрация завершена! 🎉"
	}
	if err := h.edit(c, userID, text); err != nil {
		return err
	}
	return c.Send("🏠 Главное меню\n\nВыберите действие:", mainMenuKeyboard())
}

// respondExpired acknowledges a tap that no longer matches the current phase
// (stale keyboard, retransmitted tap) without mutating anything
func (h *Handler) respondExpired(c tele.Context, userID int64) error {
	h.logger.Debug("Callback ignored: wrong phase",
		zap.Int64("user_id", userID),
		zap.String("phase", string(h.reg.Phase(userID))),
	)
	return c.Respond(&tele.CallbackResponse{Text: "Эта кнопка уже неактуальна"})
}
