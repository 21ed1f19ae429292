package repository

import (
	"github.com/shopspring/decimal"

	"github.com/franchisedesk/ledger-api/internal/domain/entity"
)

// StockItemRepository is the persistence port for franchise inventory.
type StockItemRepository interface {
	GetByID(id string) (*entity.StockItem, error)
	List(franchiseID string) ([]*entity.StockItem, error)
	LowStock(franchiseID string) ([]*entity.StockItem, error)
	Create(item *entity.StockItem) error
	Update(item *entity.StockItem) error

	// DecrementAtomic subtracts quantity from the item's stock as one
	// conditional operation at the storage layer: it fails with
	// domain.ErrInsufficientStock when the result would go below zero,
	// never as a read-modify-write pair performed by the caller.
	DecrementAtomic(id, franchiseID string, quantity decimal.Decimal) error
}
