package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"dictionary/internal/domain"

	"github.com/google/uuid"
)

// EncodeEntries serializes entries to compact JSON, the form written to the words slot.
// HTML characters are not escaped and no trailing newline is written.
func EncodeEntries(entries []domain.WordEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.WordEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeEntries parses the words slot. Every decoded entry gets a fresh ID.
// An element that is null or lacks a non-empty field makes the whole slot corrupt.
func DecodeEntries(data []byte) ([]domain.WordEntry, error) {
	var entries []domain.WordEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &domain.CorruptStateError{Err: err}
	}
	if entries == nil {
		entries = []domain.WordEntry{}
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, &domain.CorruptStateError{Err: fmt.Errorf("entry %d: %w", i, err)}
		}
		entries[i].ID = uuid.New()
	}
	return entries, nil
}
