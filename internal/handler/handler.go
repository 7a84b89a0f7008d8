package handler

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"birthdaybot/internal/domain"
	"birthdaybot/internal/service"
)

// Handler manages all bot interactions
type Handler struct {
	bot    *tele.Bot
	reg    *service.RegistrationService
	logger *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, reg *service.RegistrationService, logger *zap.Logger) *Handler {
	return &Handler{
		bot:    bot,
		reg:    reg,
		logger: logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/menu", h.handleMenu)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/timezone", h.handleTimezoneCommand)

	// Text messages and shared locations
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnLocation, h.handleLocation)

	// Callback queries (inline buttons)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// SendText sends a plain text message to a user.
// This makes Handler satisfy service.Sender for the notifier.
func (h *Handler) SendText(userID int64, text string) error {
	_, err := h.bot.Send(&tele.User{ID: userID}, text)
	return err
}

// endYear bounds the year picker to next year
func endYear() int {
	return domain.EndYear(time.Now())
}

// fallbackText names the current phase so a stuck user can orient themselves
func fallbackText(phase domain.Phase) string {
	return "Я не понял команду.\n" +
		"Если вы только начали — используйте /start и следуйте инструкции.\n" +
		"Если что-то не работает — попробуйте пройти регистрацию заново или напишите /start.\n" +
		"Текущее состояние: " + string(phase)
}

const errorText = "Произошла ошибка. Попробуйте позже."
