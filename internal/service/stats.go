package service

import (
	"strings"
)

const progressBarWidth = 10

// Progress summarizes how much of the dictionary a filtered view shows
type Progress struct {
	Total   int
	Matched int
}

// Percent returns Matched/Total as a whole percentage, 0 for an empty dictionary
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Matched * 100 / p.Total
}

// Bar renders the ratio as a fixed-width text bar
func (p Progress) Bar() string {
	filled := 0
	if p.Total > 0 {
		filled = p.Matched * progressBarWidth / p.Total
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
}

// StatsService computes dictionary statistics
type StatsService struct {
	store *WordStore
}

// NewStatsService creates a new stats service
func NewStatsService(store *WordStore) *StatsService {
	return &StatsService{store: store}
}

// Progress counts the entries matching the filters against the full dictionary
func (s *StatsService) Progress(search, category string) Progress {
	all := s.store.GetAll()

	matched := 0
	for _, e := range all {
		if Matches(e, search, category) {
			matched++
		}
	}

	return Progress{Total: len(all), Matched: matched}
}

// CategoryCounts returns the number of entries per category, in first-occurrence order.
// Names and counts come from the same snapshot.
func (s *StatsService) CategoryCounts() ([]string, map[string]int) {
	return countCategories(s.store.GetAll())
}
