package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dictionary/internal/repository"
)

// SlotRepo implements repository.SlotStorage on the slots table
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo creates a new slot repository
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// Get returns the value stored under key
func (r *SlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := `SELECT value FROM slots WHERE key = $1`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}

	return []byte(value), nil
}

// Set overwrites the value stored under key
func (r *SlotRepo) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("set slot %q: %w", key, err)
	}
	return nil
}
