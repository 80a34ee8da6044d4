package service

import (
	"testing"

	"dictionary/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name            string
		progress        Progress
		expectedPercent int
		expectedBar     string
	}{
		{
			name:            "empty dictionary",
			progress:        Progress{Total: 0, Matched: 0},
			expectedPercent: 0,
			expectedBar:     "░░░░░░░░░░",
		},
		{
			name:            "everything matches",
			progress:        Progress{Total: 4, Matched: 4},
			expectedPercent: 100,
			expectedBar:     "██████████",
		},
		{
			name:            "one of three",
			progress:        Progress{Total: 3, Matched: 1},
			expectedPercent: 33,
			expectedBar:     "███░░░░░░░",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedPercent, tt.progress.Percent())
			assert.Equal(t, tt.expectedBar, tt.progress.Bar())
		})
	}
}

func TestStatsService_Progress(t *testing.T) {
	store, _ := newLoadedStore(t, flowersAndTrees)
	service := NewStatsService(store)

	assert.Equal(t, Progress{Total: 3, Matched: 3}, service.Progress("", ""))
	assert.Equal(t, Progress{Total: 3, Matched: 2}, service.Progress("", "Flowers"))
	assert.Equal(t, Progress{Total: 3, Matched: 1}, service.Progress("OA", ""))
}

func TestStatsService_CategoryCounts(t *testing.T) {
	store, _ := newLoadedStore(t, flowersAndTrees)
	service := NewStatsService(store)

	categories, counts := service.CategoryCounts()

	assert.Equal(t, []string{"Flowers", "Trees"}, categories)
	assert.Equal(t, map[string]int{"Flowers": 2, "Trees": 1}, counts)
}

func TestStatsService_CategoryCounts_Empty(t *testing.T) {
	store, _ := newLoadedStore(t, "")

	categories, counts := NewStatsService(store).CategoryCounts()

	assert.Equal(t, []string{}, categories)
	assert.Empty(t, counts)
}

func TestCountCategories(t *testing.T) {
	entries := []domain.WordEntry{
		{Word: "oak", Meaning: "a tree", Category: "Trees"},
		{Word: "rose", Meaning: "a flower", Category: "Flowers"},
		{Word: "elm", Meaning: "a tree", Category: "Trees"},
		{Word: "lily", Meaning: "a flower", Category: "flowers"},
	}

	categories, counts := countCategories(entries)

	assert.Equal(t, []string{"Trees", "Flowers", "flowers"}, categories)
	assert.Equal(t, map[string]int{"Trees": 2, "Flowers": 1, "flowers": 1}, counts)
	for _, c := range categories {
		assert.Positive(t, counts[c], c)
	}
}
