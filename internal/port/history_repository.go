package port

import (
	"context"

	"legalyze/internal/domain"
)

// HistoryRepository persists completed analyses.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) error
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.HistoryEntry, int, error)
}
