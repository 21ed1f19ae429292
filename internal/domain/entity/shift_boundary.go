package entity

import "time"

// ShiftBoundary is a day-close record. It defines the left edge of the
// current shift's visible history window and starts the 12-hour re-open lock.
type ShiftBoundary struct {
	ID          string
	FranchiseID string
	Closing     bool
	CreatedAt   time.Time
}
