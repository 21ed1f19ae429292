package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. Status only ever moves forward:
// incoming -> packed -> dispatched.
const (
	StatusIncoming   = "incoming"
	StatusPacked     = "packed"
	StatusDispatched = "dispatched"
)

var statusRank = map[string]int{
	StatusIncoming:   0,
	StatusPacked:     1,
	StatusDispatched: 2,
}

// ValidStatus reports whether s is a known invoice status.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// StatusMovesForward reports whether the transition from -> to is a strict
// forward progression. Same-status and backward transitions are rejected.
func StatusMovesForward(from, to string) bool {
	a, okA := statusRank[from]
	b, okB := statusRank[to]
	return okA && okB && b > a
}

// Invoice is a persisted billing document. Created once by the stock
// deduction transaction; totals are derived from the line snapshots and
// never edited independently of them.
type Invoice struct {
	ID            string
	FranchiseID   string
	InvoiceNumber string

	// Customer snapshot, copied at creation time.
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string

	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	CGST        decimal.Decimal
	SGST        decimal.Decimal
	RoundOff    decimal.Decimal // TotalAmount - (Subtotal + TaxAmount), |x| < 1.00
	TotalAmount decimal.Decimal // grand total rounded to the nearest whole rupee

	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []LineItem
}
