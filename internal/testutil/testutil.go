package testutil

import (
	"context"
	"slices"
	"sync"

	"dictionary/internal/domain"
	"dictionary/internal/repository"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestEntry creates a test entry with a fresh ID
func NewTestEntry(word, meaning, category string) domain.WordEntry {
	return domain.NewWordEntry(word, meaning, category)
}

// MemorySlots is an in-memory repository.SlotStorage
type MemorySlots struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int

	// SetErr, when non-nil, is returned by every Set
	SetErr error
}

// NewMemorySlots creates storage pre-filled with values
func NewMemorySlots(values map[string]string) *MemorySlots {
	m := &MemorySlots{values: make(map[string][]byte)}
	for k, v := range values {
		m.values[k] = []byte(v)
	}
	return m
}

func (m *MemorySlots) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return nil, repository.ErrSlotNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemorySlots) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = slices.Clone(value)
	m.writes++
	return nil
}

// Raw returns the stored value as a string and whether the key exists
func (m *MemorySlots) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	return string(v), ok
}

// Writes returns the number of successful Set calls
func (m *MemorySlots) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
