package ledger

import (
	"time"

	"github.com/franchisedesk/ledger-api/internal/timeutil"
)

// Wall-clock gates of the order lifecycle. Both are pure predicates of
// `now`: a stale client simply recomputes the state on every check, there
// is no background job.
const (
	// CancellationWindow is the period after creation during which an
	// invoice may still be hard-deleted.
	CancellationWindow = 5 * time.Minute

	// ShiftLockDuration is how long a day-close keeps the shift locked
	// before it self-expires.
	ShiftLockDuration = 12 * time.Hour
)

// CancelState of an invoice relative to its cancellation window.
type CancelState int

const (
	Cancellable CancelState = iota
	Expired
)

func (s CancelState) String() string {
	if s == Cancellable {
		return "cancellable"
	}
	return "expired"
}

// CancelStateAt derives the cancellation state at the given wall-clock
// instant. Expired is terminal and irreversible.
func CancelStateAt(createdAt, now time.Time) CancelState {
	if now.Before(createdAt.Add(CancellationWindow)) {
		return Cancellable
	}
	return Expired
}

// CancelDeadline returns the instant at which the window closes.
func CancelDeadline(createdAt time.Time) time.Time {
	return createdAt.Add(CancellationWindow)
}

// ShiftState of a franchise relative to its last day-close.
type ShiftState int

const (
	ShiftOpen ShiftState = iota
	ShiftLocked
)

func (s ShiftState) String() string {
	if s == ShiftOpen {
		return "open"
	}
	return "locked"
}

// ShiftStateAt derives the shift state at the given instant. A nil
// lastClose means the franchise has never closed a shift. The lock
// self-expires after ShiftLockDuration without any explicit action.
func ShiftStateAt(lastClose *time.Time, now time.Time) ShiftState {
	if lastClose == nil {
		return ShiftOpen
	}
	if now.Before(lastClose.Add(ShiftLockDuration)) {
		return ShiftLocked
	}
	return ShiftOpen
}

// ShiftWindowStart returns the left edge of the current shift's visible
// history: the last day-close, or the start of the IST calendar day when
// no boundary exists yet.
func ShiftWindowStart(lastClose *time.Time, now time.Time) time.Time {
	if lastClose != nil {
		return *lastClose
	}
	return timeutil.StartOfDay(now)
}
