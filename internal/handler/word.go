package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dictionary/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const clearSearchToken = "-"

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	raw := c.Text()
	text := strings.TrimSpace(raw)

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	ctx := context.Background()

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(genericErrorText)
	}

	// If not authorized, check password
	if !authorized {
		if !h.authService.CheckPassword(text) {
			return c.Send("Wrong password.")
		}

		if err := h.authService.AuthorizeUser(ctx, userID); err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send(genericErrorText)
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send("✅ Access granted!\n\n"+mainMenuText, mainMenuMarkup())
	}

	// User is authorized, handle based on state
	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingMeaning:
		h.UpdateState(userID, func(s *domain.StateData) {
			s.State = domain.StateWaitingCategory
			s.PendingMeaning = raw
		})
		return c.Send("Which category? (e.g., Flowers)", cancelMarkup())

	case domain.StateWaitingCategory:
		return h.saveDraft(c, state.Draft(raw))

	case domain.StateWaitingSearch:
		term := searchTermFrom(raw)
		h.UpdateState(userID, func(s *domain.StateData) {
			s.State = domain.StateIdle
			s.SearchTerm = term
			s.Page = 1
		})
		return h.showList(c, userID)

	default:
		// Idle or waiting for a word: the message is the word
		h.UpdateState(userID, func(s *domain.StateData) {
			s.State = domain.StateWaitingMeaning
			s.PendingWord = raw
			s.PendingMeaning = ""
		})
		return c.Send(fmt.Sprintf("What does %q mean?", text), cancelMarkup())
	}
}

// handleAddStart starts the add flow
func (h *Handler) handleAddStart(c tele.Context) error {
	userID := c.Sender().ID

	h.UpdateState(userID, func(s *domain.StateData) {
		s.State = domain.StateWaitingWord
		s.PendingWord = ""
		s.PendingMeaning = ""
	})

	return h.render(c, userID, "Send the word you want to add:", cancelMarkup())
}

// saveDraft stores the assembled entry and reports the outcome
func (h *Handler) saveDraft(c tele.Context, draft domain.WordEntry) error {
	userID := c.Sender().ID

	entry, err := h.store.Add(context.Background(), draft.Word, draft.Meaning, draft.Category)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			h.UpdateState(userID, func(s *domain.StateData) {
				s.State = domain.StateWaitingWord
				s.PendingWord = ""
				s.PendingMeaning = ""
			})
			h.notify(c, "All fields are required to add a word.")
			return c.Send("Send the word you want to add:", cancelMarkup())
		}

		h.logger.Error("Failed to save word",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send("Could not save the word. Please try again.")
	}

	h.logger.Info("Word saved",
		zap.Int64("user_id", userID),
		zap.String("word", entry.Word),
		zap.String("category", entry.Category),
	)

	// Ready for the next word
	h.UpdateState(userID, func(s *domain.StateData) {
		s.State = domain.StateWaitingWord
		s.PendingWord = ""
		s.PendingMeaning = ""
	})

	h.notify(c, fmt.Sprintf("🌸 The word %q has been added successfully!", entry.Word))
	return c.Send("Send the next word, or go back with /start", cancelMarkup())
}

// handleSearchCommand handles /search <term>; without a term it clears the search
func (h *Handler) handleSearchCommand(c tele.Context) error {
	userID := c.Sender().ID
	term := searchTermFrom(c.Message().Payload)

	h.UpdateState(userID, func(s *domain.StateData) {
		s.State = domain.StateIdle
		s.SearchTerm = term
		s.Page = 1
	})

	return h.showList(c, userID)
}

// handleSearchStart asks for a search term
func (h *Handler) handleSearchStart(c tele.Context) error {
	userID := c.Sender().ID

	h.UpdateState(userID, func(s *domain.StateData) {
		s.State = domain.StateWaitingSearch
	})

	return h.render(c, userID,
		fmt.Sprintf("Send a word to search for (%q clears the search):", clearSearchToken),
		cancelMarkup(),
	)
}

// handleClearSearch drops the search term
func (h *Handler) handleClearSearch(c tele.Context) error {
	userID := c.Sender().ID

	h.UpdateState(userID, func(s *domain.StateData) {
		s.SearchTerm = ""
		s.Page = 1
	})

	return h.showList(c, userID)
}

// searchTermFrom returns input unchanged as a search term, or "" when it is
// blank or the clear token
func searchTermFrom(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || trimmed == clearSearchToken {
		return ""
	}
	return input
}
