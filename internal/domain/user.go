package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle            UserState = "idle"
	StateWaitingWord     UserState = "waiting_word"
	StateWaitingMeaning  UserState = "waiting_meaning"
	StateWaitingCategory UserState = "waiting_category"
	StateWaitingSearch   UserState = "waiting_search"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State UserState

	// Add flow
	PendingWord    string
	PendingMeaning string

	// Filtered view, kept across states
	SearchTerm string
	Category   string
	Page       int
}

// Draft returns the entry being assembled by the add flow
func (s *StateData) Draft(category string) WordEntry {
	return WordEntry{Word: s.PendingWord, Meaning: s.PendingMeaning, Category: category}
}
