package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo is the PostgreSQL StockItemRepository (usable with pool or tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository builds the adapter. Pass a pool or tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, franchise_id, name, unit, quantity, price, gst_rate, hsn_code, threshold, created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	var hsn *string
	err := row.Scan(
		&s.ID, &s.FranchiseID, &s.Name, &s.Unit, &s.Quantity, &s.Price,
		&s.GSTRate, &hsn, &s.Threshold, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if hsn != nil {
		s.HSNCode = *hsn
	}
	return &s, nil
}

// GetByID returns one stock item, or nil when it does not exist.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// List returns the franchise's stock catalogue ordered by name.
func (r *StockItemRepo) List(franchiseID string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE franchise_id = $1 ORDER BY name`
	return r.queryItems(query, franchiseID)
}

// LowStock returns items at or below their reorder threshold.
func (r *StockItemRepo) LowStock(franchiseID string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE franchise_id = $1 AND quantity <= threshold ORDER BY name`
	return r.queryItems(query, franchiseID)
}

func (r *StockItemRepo) queryItems(query string, args ...any) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Create inserts a stock item.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, franchise_id, name, unit, quantity, price, gst_rate, hsn_code, threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.FranchiseID, item.Name, item.Unit, item.Quantity,
		item.Price, item.GSTRate, nullIfEmpty(item.HSNCode), item.Threshold,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// Update persists a direct stock-management edit of the item.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET name = $2, unit = $3, quantity = $4, price = $5, gst_rate = $6,
		    hsn_code = $7, threshold = $8, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Unit, item.Quantity, item.Price,
		item.GSTRate, nullIfEmpty(item.HSNCode), item.Threshold,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	return nil
}

// DecrementAtomic subtracts quantity as one conditional UPDATE. The
// `quantity >= $3` guard makes concurrent decrements against the same row
// serialize at the database: the loser matches zero rows and the whole
// transaction rolls back instead of losing an update or going negative.
func (r *StockItemRepo) DecrementAtomic(id, franchiseID string, quantity decimal.Decimal) error {
	query := `
		UPDATE stock_items
		SET quantity = quantity - $3, updated_at = now()
		WHERE id = $1 AND franchise_id = $2 AND quantity >= $3`
	tag, err := r.q.Exec(context.Background(), query, id, franchiseID, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from an insufficient one.
		var exists bool
		check := `SELECT EXISTS(SELECT 1 FROM stock_items WHERE id = $1 AND franchise_id = $2)`
		if err := r.q.QueryRow(context.Background(), check, id, franchiseID).Scan(&exists); err != nil {
			return fmt.Errorf("check stock item: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}
