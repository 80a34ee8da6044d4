package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"dictionary/internal/repository"
)

// AuthService handles authentication logic
type AuthService struct {
	slots       repository.SlotStorage
	botPassword string

	mu     sync.Mutex
	loaded bool
	users  []int64
}

// NewAuthService creates a new auth service
func NewAuthService(slots repository.SlotStorage, botPassword string) *AuthService {
	return &AuthService{
		slots:       slots,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return s.botPassword != "" && password == s.botPassword
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return false, err
	}
	return slices.Contains(s.users, userID), nil
}

// AuthorizeUser authorizes a user and persists the list
func (s *AuthService) AuthorizeUser(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return err
	}
	if slices.Contains(s.users, userID) {
		return nil
	}

	updated := append(slices.Clip(s.users), userID)
	data, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	if err := s.slots.Set(ctx, repository.AuthorizedUsersSlot, data); err != nil {
		return fmt.Errorf("failed to save authorized users: %w", err)
	}
	s.users = updated
	return nil
}

func (s *AuthService) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	data, err := s.slots.Get(ctx, repository.AuthorizedUsersSlot)
	switch {
	case errors.Is(err, repository.ErrSlotNotFound):
		s.users = nil
	case err != nil:
		return fmt.Errorf("failed to load authorized users: %w", err)
	default:
		if err := json.Unmarshal(data, &s.users); err != nil {
			return fmt.Errorf("failed to decode authorized users: %w", err)
		}
	}

	s.loaded = true
	return nil
}
