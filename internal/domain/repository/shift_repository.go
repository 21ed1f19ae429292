package repository

import "github.com/franchisedesk/ledger-api/internal/domain/entity"

// ShiftRepository is the persistence port for day-close records.
type ShiftRepository interface {
	Create(b *entity.ShiftBoundary) error
	// LatestClose returns the most recent closing boundary for the
	// franchise, or nil when none exists.
	LatestClose(franchiseID string) (*entity.ShiftBoundary, error)
}
