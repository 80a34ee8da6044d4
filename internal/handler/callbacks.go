package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"dictionary/internal/domain"
	"dictionary/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const pageSize = 10

// Callback data prefixes for dynamic buttons
const (
	prefixPage     = "page_"
	prefixDelete   = "del_"
	prefixConfirm  = "yes_"
	prefixCategory = "cat_"
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

// handleCallback handles dynamic callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch {
	case strings.HasPrefix(data, prefixPage):
		return h.handlePagination(c, strings.TrimPrefix(data, prefixPage))
	case strings.HasPrefix(data, prefixDelete):
		return h.handleDeleteRequest(c, strings.TrimPrefix(data, prefixDelete))
	case strings.HasPrefix(data, prefixConfirm):
		return h.handleDeleteConfirmed(c, strings.TrimPrefix(data, prefixConfirm))
	case strings.HasPrefix(data, prefixCategory):
		return h.handleCategorySelection(c, strings.TrimPrefix(data, prefixCategory))
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleList shows the filtered word list for the user
func (h *Handler) handleList(c tele.Context) error {
	return h.showList(c, c.Sender().ID)
}

func (h *Handler) showList(c tele.Context, userID int64) error {
	state := h.GetState(userID)
	entries := h.store.Filter(state.SearchTerm, state.Category)
	progress := h.statsService.Progress(state.SearchTerm, state.Category)

	text, markup, page := listView(entries, state, progress)
	if page != state.Page {
		h.UpdateState(userID, func(s *domain.StateData) { s.Page = page })
	}

	return h.render(c, userID, text, markup)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, pageStr string) error {
	userID := c.Sender().ID

	page, err := strconv.Atoi(strings.TrimSpace(pageStr))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}

	h.UpdateState(userID, func(s *domain.StateData) { s.Page = page })
	return h.showList(c, userID)
}

// handleCategories shows the category filter
func (h *Handler) handleCategories(c tele.Context) error {
	userID := c.Sender().ID
	categories, counts := h.statsService.CategoryCounts()

	if len(categories) == 0 {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{
				Text:      "No words found. Add some! 🌼",
				ShowAlert: true,
			})
		}
		return c.Send("No words found. Add some! 🌼")
	}

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{markup.Row(btnAllCategories)}
	for _, category := range categories {
		btnText := fmt.Sprintf("%s (%d)", category, counts[category])
		rows = append(rows, markup.Row(markup.Data(btnText, prefixCategory+categoryKey(category))))
	}
	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)

	return h.render(c, userID, "🏷 Choose a category:", markup)
}

// handleCategorySelection filters the list by the chosen category
func (h *Handler) handleCategorySelection(c tele.Context, key string) error {
	userID := c.Sender().ID

	category, ok := findCategory(h.store.Categories(), strings.TrimSpace(key))
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "This category no longer exists"})
	}

	h.UpdateState(userID, func(s *domain.StateData) {
		s.Category = category
		s.Page = 1
	})
	return h.showList(c, userID)
}

// categoryKey names a category in callback data, which Telegram caps at 64 bytes
func categoryKey(category string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(category)).String()
}

// findCategory returns the category whose key is key
func findCategory(categories []string, key string) (string, bool) {
	for _, category := range categories {
		if categoryKey(category) == key {
			return category, true
		}
	}
	return "", false
}

// handleAllCategories removes the category filter
func (h *Handler) handleAllCategories(c tele.Context) error {
	userID := c.Sender().ID

	h.UpdateState(userID, func(s *domain.StateData) {
		s.Category = ""
		s.Page = 1
	})
	return h.showList(c, userID)
}

// handleDeleteRequest asks the user to confirm a deletion
func (h *Handler) handleDeleteRequest(c tele.Context, idStr string) error {
	userID := c.Sender().ID

	id, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid word"})
	}

	entry, ok := h.store.Get(id)
	if !ok {
		return c.Respond(&tele.CallbackResponse{
			Text:      "This word no longer exists",
			ShowAlert: true,
		})
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("Yes, delete", prefixConfirm+entry.ID.String()), btnKeep),
	)

	return h.render(c, userID, fmt.Sprintf("Are you sure you want to delete %q? 🌸", entry.Word), markup)
}

// handleDeleteConfirmed deletes the entry the user confirmed
func (h *Handler) handleDeleteConfirmed(c tele.Context, idStr string) error {
	userID := c.Sender().ID

	id, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid word"})
	}

	// The Yes button is the confirmation.
	removed, err := h.store.Delete(context.Background(), id, service.Confirmed)
	if err != nil {
		var rangeErr *domain.IndexOutOfRangeError
		if errors.As(err, &rangeErr) {
			h.logger.Warn("Delete target missing", zap.String("id", id.String()), zap.Int64("user_id", userID))
			return c.Respond(&tele.CallbackResponse{
				Text:      "This word no longer exists",
				ShowAlert: true,
			})
		}
		h.logger.Error("Failed to delete word", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Could not delete the word"})
	}

	h.notify(c, fmt.Sprintf("🌺 The word %q has been deleted.", removed.Word))
	return h.showList(c, userID)
}

// listView renders one page of the filtered list.
// It returns the page actually shown, clamped to the available pages.
func listView(entries []domain.WordEntry, state domain.StateData, progress service.Progress) (string, *tele.ReplyMarkup, int) {
	totalPages := (len(entries) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	page := state.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var b strings.Builder
	b.WriteString("🌺 Your Words")
	if filters := describeFilters(state); filters != "" {
		b.WriteString(" (" + filters + ")")
	}
	b.WriteString("\n\n")

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	if len(entries) == 0 {
		b.WriteString("No words found. Add some! 🌼\n")
	} else {
		start := (page - 1) * pageSize
		end := min(start+pageSize, len(entries))
		for i, entry := range entries[start:end] {
			b.WriteString(formatEntry(start+i+1, entry))
			b.WriteString("\n")
			rows = append(rows, markup.Row(markup.Data("❌ "+entry.Word, prefixDelete+entry.ID.String())))
		}
	}

	fmt.Fprintf(&b, "\nTotal Words: %d\n%s %d%%", progress.Total, progress.Bar(), progress.Percent())

	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("%s%d", prefixPage, page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("%s%d", prefixPage, page+1)))
		}
		rows = append(rows, navRow)
	}

	filterRow := tele.Row{btnSearch, btnCategories}
	if state.SearchTerm != "" {
		filterRow = append(filterRow, btnClearSearch)
	}
	rows = append(rows, filterRow, markup.Row(btnAdd, btnBack))
	markup.Inline(rows...)

	return b.String(), markup, page
}

func describeFilters(state domain.StateData) string {
	var parts []string
	if state.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search: %q", state.SearchTerm))
	}
	if state.Category != "" {
		parts = append(parts, "category: "+state.Category)
	}
	return strings.Join(parts, ", ")
}

func formatEntry(n int, entry domain.WordEntry) string {
	return fmt.Sprintf("%d. %s - %s [%s]", n, entry.Word, entry.Meaning, entry.Category)
}
