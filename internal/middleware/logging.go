package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging creates update-logging middleware: every handled update is logged
// with the sender, the kind of input and how long the handler took
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			err := next(c)

			fields := []zap.Field{
				zap.Int64("user_id", c.Sender().ID),
				zap.Duration("took", time.Since(start)),
			}
			switch {
			case c.Callback() != nil:
				fields = append(fields, zap.String("kind", "callback"))
			case c.Message() != nil && c.Message().Location != nil:
				fields = append(fields, zap.String("kind", "location"))
			default:
				fields = append(fields, zap.String("kind", "text"))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
				logger.Error("Update failed", fields...)
				return err
			}

			logger.Debug("Update handled", fields...)
			return nil
		}
	}
}
