package repository

import (
	"context"
	"errors"
)

// Slot keys
const (
	WordsSlot           = "words"
	AuthorizedUsersSlot = "authorized_users"
)

// ErrSlotNotFound is returned by Get when nothing was ever written to the key
var ErrSlotNotFound = errors.New("slot not found")

// SlotStorage is durable key-value storage with whole-value writes
type SlotStorage interface {
	// Get returns the stored value or ErrSlotNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the stored value
	Set(ctx context.Context, key string, value []byte) error
}
