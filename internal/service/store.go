package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"dictionary/internal/domain"
	"dictionary/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Confirmer is asked before a deletion commits. Returning false aborts it.
type Confirmer func(entry domain.WordEntry) bool

// Confirmed approves every deletion. Use it when confirmation was collected
// before calling Delete, e.g. through a Yes button.
func Confirmed(domain.WordEntry) bool { return true }

// WordStore owns the ordered list of entries and the words slot
type WordStore struct {
	slots  repository.SlotStorage
	logger *zap.Logger

	mu      sync.RWMutex
	entries []domain.WordEntry

	listenersMux sync.Mutex
	listeners    map[int]func([]domain.WordEntry)
	nextListener int
}

// NewWordStore creates an empty store. Call Initialize to load the slot.
func NewWordStore(slots repository.SlotStorage, logger *zap.Logger) *WordStore {
	return &WordStore{
		slots:     slots,
		logger:    logger,
		entries:   []domain.WordEntry{},
		listeners: make(map[int]func([]domain.WordEntry)),
	}
}

// Initialize loads the words slot.
// A missing slot yields an empty store. An undecodable slot is logged and
// also yields an empty store; the slot is left as is until the next write.
func (s *WordStore) Initialize(ctx context.Context) error {
	data, err := s.slots.Get(ctx, repository.WordsSlot)
	if errors.Is(err, repository.ErrSlotNotFound) {
		s.replace([]domain.WordEntry{})
		s.logger.Info("No saved words, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load words: %w", err)
	}

	entries, err := DecodeEntries(data)
	if err != nil {
		var corrupt *domain.CorruptStateError
		if !errors.As(err, &corrupt) {
			return err
		}
		s.logger.Warn("Saved words are corrupt, starting empty",
			zap.Error(err),
			zap.Int("bytes", len(data)),
		)
		entries = []domain.WordEntry{}
	}

	s.replace(entries)
	s.logger.Info("Words loaded", zap.Int("count", len(entries)))
	return nil
}

// Add validates and appends a new entry, then persists the whole list.
// Values are stored exactly as given; trimming only applies to validation.
func (s *WordStore) Add(ctx context.Context, word, meaning, category string) (domain.WordEntry, error) {
	entry := domain.NewWordEntry(word, meaning, category)
	if err := entry.Validate(); err != nil {
		return domain.WordEntry{}, err
	}

	s.mu.Lock()
	updated := append(slices.Clip(s.entries), entry)
	if err := s.persist(ctx, updated); err != nil {
		s.mu.Unlock()
		return domain.WordEntry{}, err
	}
	s.entries = updated
	snapshot := slices.Clone(updated)
	s.mu.Unlock()

	s.logger.Info("Word added",
		zap.String("word", entry.Word),
		zap.String("category", entry.Category),
		zap.Int("total", len(snapshot)),
	)
	s.notify(snapshot)

	return entry, nil
}

// Delete removes the entry with the given ID after confirm approves it.
// confirm runs while the store is locked and must not call back into it.
func (s *WordStore) Delete(ctx context.Context, id uuid.UUID, confirm Confirmer) (domain.WordEntry, error) {
	s.mu.Lock()
	index := slices.IndexFunc(s.entries, func(e domain.WordEntry) bool { return e.ID == id })
	if index < 0 {
		n := len(s.entries)
		s.mu.Unlock()
		return domain.WordEntry{}, &domain.IndexOutOfRangeError{Index: -1, Len: n, ID: id}
	}
	return s.deleteLocked(ctx, index, confirm)
}

// DeleteAt removes the entry at index in the full, unfiltered list
func (s *WordStore) DeleteAt(ctx context.Context, index int, confirm Confirmer) (domain.WordEntry, error) {
	s.mu.Lock()
	if index < 0 || index >= len(s.entries) {
		n := len(s.entries)
		s.mu.Unlock()
		return domain.WordEntry{}, &domain.IndexOutOfRangeError{Index: index, Len: n}
	}
	return s.deleteLocked(ctx, index, confirm)
}

// deleteLocked expects s.mu held and releases it
func (s *WordStore) deleteLocked(ctx context.Context, index int, confirm Confirmer) (domain.WordEntry, error) {
	target := s.entries[index]
	if confirm == nil || !confirm(target) {
		s.mu.Unlock()
		return domain.WordEntry{}, domain.ErrDeleteNotConfirmed
	}

	updated := slices.Delete(slices.Clone(s.entries), index, index+1)
	if err := s.persist(ctx, updated); err != nil {
		s.mu.Unlock()
		return domain.WordEntry{}, err
	}
	s.entries = updated
	snapshot := slices.Clone(updated)
	s.mu.Unlock()

	s.logger.Info("Word deleted",
		zap.String("word", target.Word),
		zap.Int("index", index),
		zap.Int("total", len(snapshot)),
	)
	s.notify(snapshot)

	return target, nil
}

// GetAll returns a copy of every entry in insertion order
func (s *WordStore) GetAll() []domain.WordEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Len returns the number of stored entries
func (s *WordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Get returns the entry with the given ID
func (s *WordStore) Get(id uuid.UUID) (domain.WordEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.WordEntry{}, false
}

// Query yields entries whose word contains search (case-insensitive) and whose
// category equals category. Empty arguments match everything.
// The sequence is recomputed from the current list every time it is ranged over.
func (s *WordStore) Query(search, category string) iter.Seq[domain.WordEntry] {
	return func(yield func(domain.WordEntry) bool) {
		for _, e := range s.GetAll() {
			if !Matches(e, search, category) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Filter is Query collected into a slice
func (s *WordStore) Filter(search, category string) []domain.WordEntry {
	filtered := slices.Collect(s.Query(search, category))
	if filtered == nil {
		return []domain.WordEntry{}
	}
	return filtered
}

// Categories returns distinct categories in order of first appearance
func (s *WordStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories, _ := countCategories(s.entries)
	return categories
}

// countCategories returns the distinct categories of entries in first-appearance
// order, with the number of entries in each
func countCategories(entries []domain.WordEntry) ([]string, map[string]int) {
	categories := []string{}
	counts := make(map[string]int)
	for _, e := range entries {
		if counts[e.Category] == 0 {
			categories = append(categories, e.Category)
		}
		counts[e.Category]++
	}
	return categories, counts
}

// Subscribe registers fn to receive a snapshot after every successful mutation.
// The returned func removes the subscription.
func (s *WordStore) Subscribe(fn func([]domain.WordEntry)) (cancel func()) {
	s.listenersMux.Lock()
	defer s.listenersMux.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.listenersMux.Lock()
		defer s.listenersMux.Unlock()
		delete(s.listeners, id)
	}
}

// Matches reports whether e passes the search and category filters
func Matches(e domain.WordEntry, search, category string) bool {
	if category != "" && e.Category != category {
		return false
	}
	return strings.Contains(strings.ToLower(e.Word), strings.ToLower(search))
}

func (s *WordStore) persist(ctx context.Context, entries []domain.WordEntry) error {
	data, err := EncodeEntries(entries)
	if err != nil {
		return fmt.Errorf("failed to encode words: %w", err)
	}
	if err := s.slots.Set(ctx, repository.WordsSlot, data); err != nil {
		s.logger.Error("Failed to persist words", zap.Error(err))
		return fmt.Errorf("failed to save words: %w", err)
	}
	return nil
}

func (s *WordStore) replace(entries []domain.WordEntry) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

func (s *WordStore) notify(snapshot []domain.WordEntry) {
	s.listenersMux.Lock()
	fns := make([]func([]domain.WordEntry), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMux.Unlock()

	for _, fn := range fns {
		fn(slices.Clone(snapshot))
	}
}
