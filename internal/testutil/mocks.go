package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSlotStorage is a mock for repository.SlotStorage
type MockSlotStorage struct {
	mock.Mock
}

func (m *MockSlotStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSlotStorage) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
