package handler

import (
	"sync"
	"time"

	"dictionary/internal/domain"
	"dictionary/internal/middleware"
	"dictionary/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	authService  *service.AuthService
	store        *service.WordStore
	statsService *service.StatsService
	logger       *zap.Logger

	// How long transient notifications stay visible
	notificationTTL time.Duration

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	store *service.WordStore,
	statsService *service.StatsService,
	notificationTTL time.Duration,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:             bot,
		authService:     authService,
		store:           store,
		statsService:    statsService,
		logger:          logger,
		notificationTTL: notificationTTL,
		states:          make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Open to everyone: /start shows the password prompt, text carries the password
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)

	authorized := h.bot.Group()
	authorized.Use(middleware.AuthMiddleware(h.authService, h.logger))

	// Commands
	authorized.Handle("/add", h.handleAddStart)
	authorized.Handle("/list", h.handleList)
	authorized.Handle("/search", h.handleSearchCommand)
	authorized.Handle("/categories", h.handleCategories)

	// Callback queries (inline buttons)
	authorized.Handle(&btnAdd, h.handleAddStart)
	authorized.Handle(&btnList, h.handleList)
	authorized.Handle(&btnSearch, h.handleSearchStart)
	authorized.Handle(&btnCategories, h.handleCategories)
	authorized.Handle(&btnAllCategories, h.handleAllCategories)
	authorized.Handle(&btnClearSearch, h.handleClearSearch)
	authorized.Handle(&btnKeep, h.handleList)
	authorized.Handle(&btnCancel, h.handleCancel)
	authorized.Handle(&btnBack, h.handleStart)

	// Generic callback handler for dynamic data
	authorized.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns a copy of user's current state
func (h *Handler) GetState(userID int64) domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return domain.StateData{State: domain.StateIdle, Page: 1}
	}
	return *state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = &state
}

// UpdateState applies fn to user's state and returns the result
func (h *Handler) UpdateState(userID int64, fn func(*domain.StateData)) domain.StateData {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()

	state, exists := h.states[userID]
	if !exists {
		state = &domain.StateData{State: domain.StateIdle, Page: 1}
		h.states[userID] = state
	}
	fn(state)
	return *state
}

// ResetState ends any input flow but keeps the user's filters
func (h *Handler) ResetState(userID int64) {
	h.UpdateState(userID, func(s *domain.StateData) {
		s.State = domain.StateIdle
		s.PendingWord = ""
		s.PendingMeaning = ""
	})
}

// Inline keyboard buttons
var (
	btnAdd = tele.Btn{
		Unique: "add",
		Text:   "💖 Add word",
	}
	btnList = tele.Btn{
		Unique: "list",
		Text:   "🌺 My words",
	}
	btnSearch = tele.Btn{
		Unique: "search",
		Text:   "🔍 Search",
	}
	btnClearSearch = tele.Btn{
		Unique: "clear_search",
		Text:   "✖️ Clear search",
	}
	btnCategories = tele.Btn{
		Unique: "categories",
		Text:   "🏷 Categories",
	}
	btnAllCategories = tele.Btn{
		Unique: "all_categories",
		Text:   "All categories",
	}
	btnKeep = tele.Btn{
		Unique: "keep",
		Text:   "No, keep it",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Back",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnAdd),
		menu.Row(btnList),
		menu.Row(btnSearch, btnCategories),
	)
	return menu
}

// cancelMarkup returns a keyboard with a single cancel button
func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
