package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo is the PostgreSQL ShiftRepository (usable with pool or tx).
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository builds the adapter. Pass a pool or tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

// Create persists a day-close record.
func (r *ShiftRepo) Create(b *entity.ShiftBoundary) error {
	query := `
		INSERT INTO shift_boundaries (id, franchise_id, closing, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, b.ID, b.FranchiseID, b.Closing, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert shift boundary: %w", err)
	}
	return nil
}

// LatestClose returns the most recent closing boundary for the franchise,
// or nil when the franchise has never closed a shift.
func (r *ShiftRepo) LatestClose(franchiseID string) (*entity.ShiftBoundary, error) {
	query := `
		SELECT id, franchise_id, closing, created_at
		FROM shift_boundaries
		WHERE franchise_id = $1 AND closing
		ORDER BY created_at DESC
		LIMIT 1`
	var b entity.ShiftBoundary
	err := r.q.QueryRow(context.Background(), query, franchiseID).Scan(
		&b.ID, &b.FranchiseID, &b.Closing, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest shift close: %w", err)
	}
	return &b, nil
}
