package middleware

import (
	"context"

	"dictionary/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const passwordPrompt = "Hi! This dictionary is private. Send /start and then the password."

// AuthMiddleware creates authentication middleware
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			// Check authorization
			authorized, err := authService.IsAuthorized(context.Background(), userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send("Something went wrong. Please try again later.")
			}

			if !authorized {
				logger.Warn("Unauthorized request rejected", zap.Int64("user_id", userID))
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: passwordPrompt, ShowAlert: true})
				}
				return c.Send(passwordPrompt)
			}

			return next(c)
		}
	}
}
