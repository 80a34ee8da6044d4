package handler

import (
	"context"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	mainMenuText       = "🌸 My Pretty Dictionary\n\nChoose an action:"
	passwordPromptText = "Hi! This dictionary is private. Send the password to continue:"
	genericErrorText   = "Something went wrong. Please try again later."
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Check if authorized
	authorized, err := h.authService.IsAuthorized(context.Background(), userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(genericErrorText)
	}

	h.ResetState(userID)

	if !authorized {
		return c.Send(passwordPromptText)
	}

	// Show main menu
	return h.render(c, userID, mainMenuText, mainMenuMarkup())
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	return h.render(c, userID, mainMenuText, mainMenuMarkup())
}
