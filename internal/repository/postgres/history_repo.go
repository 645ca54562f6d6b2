package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"legalyze/internal/domain"
	"legalyze/internal/port"
)

type historyRepo struct {
	db *sqlx.DB
}

// NewHistoryRepo creates a new PostgreSQL-backed HistoryRepository.
func NewHistoryRepo(db *sqlx.DB) port.HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	entry.CreatedAt = time.Now().UTC()

	query := `INSERT INTO analysis_history
		(id, owner_id, session_id, file_name, document_type, model_used,
		 risk_score, degraded, outcome, created_at)
		VALUES (:id, :owner_id, :session_id, :file_name, :document_type, :model_used,
		 :risk_score, :degraded, :outcome, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("historyRepo.Create: %w", err)
	}
	return nil
}

func (r *historyRepo) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.HistoryEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM analysis_history WHERE owner_id = $1", ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("historyRepo.ListByOwner count: %w", err)
	}

	entries := []domain.HistoryEntry{}
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM analysis_history
		 WHERE owner_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("historyRepo.ListByOwner: %w", err)
	}
	return entries, total, nil
}
