package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is one sellable inventory row of a franchise.
// Quantity is mutated only by the atomic decrement inside a billing
// transaction or by direct stock-management edits.
type StockItem struct {
	ID          string
	FranchiseID string
	Name        string
	Unit        string          // pcs, kg, box...
	Quantity    decimal.Decimal // current inventory count
	Price       decimal.Decimal // unit sale price
	GSTRate     decimal.Decimal // percent (0, 5, 12, 18, 28)
	HSNCode     string
	Threshold   decimal.Decimal // low-stock trigger
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock reports whether the item has fallen to its reorder threshold.
func (s *StockItem) LowStock() bool {
	return s.Quantity.LessThanOrEqual(s.Threshold)
}
