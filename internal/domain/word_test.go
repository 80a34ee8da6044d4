package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWordEntry_Validate(t *testing.T) {
	tests := []struct {
		name          string
		entry         WordEntry
		expectedField string
	}{
		{
			name:  "all fields set",
			entry: WordEntry{Word: "rose", Meaning: "a flower", Category: "Flowers"},
		},
		{
			name:  "surrounding whitespace is fine",
			entry: WordEntry{Word: "  rose ", Meaning: "a flower", Category: "Flowers"},
		},
		{
			name:          "empty word",
			entry:         WordEntry{Word: "", Meaning: "a flower", Category: "Flowers"},
			expectedField: "word",
		},
		{
			name:          "whitespace meaning",
			entry:         WordEntry{Word: "rose", Meaning: " \t\n", Category: "Flowers"},
			expectedField: "meaning",
		},
		{
			name:          "empty category",
			entry:         WordEntry{Word: "rose", Meaning: "a flower", Category: ""},
			expectedField: "category",
		},
		{
			name:          "invalid utf-8 meaning",
			entry:         WordEntry{Word: "rose", Meaning: "a fl\xffower", Category: "Flowers"},
			expectedField: "meaning",
		},
		{
			name:          "empty word wins over invalid utf-8 category",
			entry:         WordEntry{Word: " ", Meaning: "a flower", Category: "\xfe"},
			expectedField: "word",
		},
		{
			name:          "everything empty reports word first",
			entry:         WordEntry{},
			expectedField: "word",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()

			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.expectedField, verr.Field)
		})
	}
}

func TestNewWordEntry(t *testing.T) {
	a := NewWordEntry("rose", "a flower", "Flowers")
	b := NewWordEntry("rose", "a flower", "Flowers")

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.SameContent(b))
}

func TestIndexOutOfRangeError_Error(t *testing.T) {
	byIndex := &IndexOutOfRangeError{Index: 5, Len: 2}
	assert.Equal(t, "index 5 out of range [0,2)", byIndex.Error())

	id := uuid.MustParse("8c5b1a2e-4a7d-4c1e-9b43-1f2a3b4c5d6e")
	byID := &IndexOutOfRangeError{Index: -1, Len: 3, ID: id}
	assert.Contains(t, byID.Error(), id.String())
}

func TestCorruptStateError_Unwrap(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	err := &CorruptStateError{Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "corrupt persisted state")
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "word is required", (&ValidationError{Field: "word"}).Error())
	assert.Equal(t, "meaning must be valid UTF-8", (&ValidationError{Field: "meaning", Reason: "must be valid UTF-8"}).Error())
}
