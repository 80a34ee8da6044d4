package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// WordEntry represents a single dictionary record
type WordEntry struct {
	// ID identifies the entry in memory only; it is never persisted
	ID       uuid.UUID `json:"-"`
	Word     string    `json:"word"`
	Meaning  string    `json:"meaning"`
	Category string    `json:"category"`
}

// NewWordEntry creates an entry with a fresh identity
func NewWordEntry(word, meaning, category string) WordEntry {
	return WordEntry{
		ID:       uuid.New(),
		Word:     word,
		Meaning:  meaning,
		Category: category,
	}
}

// Validate checks that every field has non-whitespace content and is valid UTF-8.
// Values are not modified.
func (e WordEntry) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"word", e.Word},
		{"meaning", e.Meaning},
		{"category", e.Category},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name}
		}
		// Invalid bytes would not survive the slot encoding unchanged.
		if !utf8.ValidString(f.value) {
			return &ValidationError{Field: f.name, Reason: "must be valid UTF-8"}
		}
	}
	return nil
}

// SameContent reports whether two entries carry the same word, meaning and category
func (e WordEntry) SameContent(other WordEntry) bool {
	return e.Word == other.Word && e.Meaning == other.Meaning && e.Category == other.Category
}
