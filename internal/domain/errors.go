package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrDeleteNotConfirmed is returned when a deletion was not affirmatively confirmed
var ErrDeleteNotConfirmed = errors.New("deletion not confirmed")

// ValidationError is returned when a field is empty or not valid UTF-8
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// IndexOutOfRangeError is returned when a delete targets an entry the store does not hold
type IndexOutOfRangeError struct {
	Index int
	Len   int
	ID    uuid.UUID
}

func (e *IndexOutOfRangeError) Error() string {
	if e.ID != uuid.Nil {
		return fmt.Sprintf("entry %s not found among %d entries", e.ID, e.Len)
	}
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Len)
}

// CorruptStateError is returned when persisted data cannot be decoded
type CorruptStateError struct {
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt persisted state: %v", e.Err)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}
