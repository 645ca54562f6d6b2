package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"legalyze/internal/domain"
)

// MockHistoryRepository is a mock implementation of port.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.HistoryEntry, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Int(1), args.Error(2)
}
