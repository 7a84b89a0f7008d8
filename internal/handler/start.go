package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart begins (or restarts) registration
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started registration",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	page := h.reg.StartRegistration(userID)
	return c.Send(
		"🎉 Привет! Я помогу тебе отслеживать, сколько осталось до твоего дня рождения.\n"+
			"Пожалуйста, выберите год своего рождения или введите дату в формате ДД.ММ.ГГГГ:",
		yearsKeyboard(page, endYear()),
	)
}

// handleMenu shows the main menu keyboard
func (h *Handler) handleMenu(c tele.Context) error {
	return c.Send("🏠 Главное меню\n\nВыберите действие:", mainMenuKeyboard())
}

// handleHelp lists the available commands
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(
		"Доступные команды:\n" +
			"/start — начать регистрацию\n" +
			"/menu — главное меню\n" +
			"/timezone — изменить часовой пояс\n" +
			"/help — эта справка",
	)
}

// handleTimezoneCommand jumps straight into the timezone-change flow
func (h *Handler) handleTimezoneCommand(c tele.Context) error {
	h.reg.StartTimezoneChange(c.Sender().ID)
	return c.Send("Отправьте новый город или поделитесь геолокацией:", locationKeyboard())
}
