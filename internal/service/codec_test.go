package service

import (
	"errors"
	"testing"

	"dictionary/internal/domain"
	"dictionary/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEntries(t *testing.T) {
	tests := []struct {
		name     string
		entries  []domain.WordEntry
		expected string
	}{
		{
			name:     "nil list",
			entries:  nil,
			expected: `[]`,
		},
		{
			name:     "single entry",
			entries:  []domain.WordEntry{testutil.NewTestEntry("rose", "a flower", "Flowers")},
			expected: `[{"word":"rose","meaning":"a flower","category":"Flowers"}]`,
		},
		{
			name:     "html characters are not escaped",
			entries:  []domain.WordEntry{testutil.NewTestEntry("<b>", "a & b", "Tags")},
			expected: `[{"word":"<b>","meaning":"a & b","category":"Tags"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEntries(tt.entries)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestEntries_RoundTrip(t *testing.T) {
	entries := []domain.WordEntry{
		testutil.NewTestEntry("rose", "a flower", "Flowers"),
		testutil.NewTestEntry("  oak", "a tree ", "Trees"),
		testutil.NewTestEntry("rose", "a flower", "Flowers"),
		testutil.NewTestEntry("café", "\"coffee\" in French", "Français"),
	}

	data, err := EncodeEntries(entries)
	require.NoError(t, err)

	decoded, err := DecodeEntries(data)
	require.NoError(t, err)

	require.Len(t, decoded, len(entries))
	for i := range entries {
		assert.True(t, entries[i].SameContent(decoded[i]), "entry %d differs", i)
	}

	again, err := EncodeEntries(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestDecodeEntries_AssignsDistinctIDs(t *testing.T) {
	decoded, err := DecodeEntries([]byte(`[{"word":"a","meaning":"b","category":"c"},{"word":"a","meaning":"b","category":"c"}]`))

	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.NotEqual(t, decoded[0].ID, decoded[1].ID)
}

func TestDecodeEntries_Corrupt(t *testing.T) {
	tests := []string{
		"",
		"{",
		`"words"`,
		`{"word":"rose"}`,
		`[1,2]`,
		`[null]`,
		`[{}]`,
		`[{"word":null,"meaning":"m","category":"c"}]`,
		`[{"word":"rose","meaning":"a flower","category":"Flowers"},{"word":"lily","meaning":" ","category":"Flowers"}]`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := DecodeEntries([]byte(input))

			var corrupt *domain.CorruptStateError
			assert.True(t, errors.As(err, &corrupt))
		})
	}
}
