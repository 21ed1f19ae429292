package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo is the PostgreSQL InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persists the invoice header.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, franchise_id, invoice_number, customer_name, customer_phone, customer_address,
		                      subtotal, tax_amount, cgst, sgst, round_off, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.FranchiseID, inv.InvoiceNumber,
		inv.CustomerName, nullIfEmpty(inv.CustomerPhone), nullIfEmpty(inv.CustomerAddress),
		inv.Subtotal, inv.TaxAmount, inv.CGST, inv.SGST, inv.RoundOff, inv.TotalAmount,
		inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persists one line snapshot.
func (r *InvoiceRepo) CreateLine(line *entity.LineItem) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, stock_item_id, item_name, unit, hsn_code, quantity, unit_price, gst_rate, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.StockItemID, line.ItemName, line.Unit,
		nullIfEmpty(line.HSNCode), line.Quantity, line.UnitPrice, line.GSTRate, line.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

const invoiceColumns = `id, franchise_id, invoice_number, customer_name, customer_phone, customer_address,
	subtotal, tax_amount, cgst, sgst, round_off, total_amount, status, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var phone, address *string
	err := row.Scan(
		&inv.ID, &inv.FranchiseID, &inv.InvoiceNumber,
		&inv.CustomerName, &phone, &address,
		&inv.Subtotal, &inv.TaxAmount, &inv.CGST, &inv.SGST,
		&inv.RoundOff, &inv.TotalAmount, &inv.Status,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if phone != nil {
		inv.CustomerPhone = *phone
	}
	if address != nil {
		inv.CustomerAddress = *address
	}
	return &inv, nil
}

// GetByID returns the invoice header, or nil when it does not exist.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetLines returns the ordered line snapshots of an invoice.
func (r *InvoiceRepo) GetLines(invoiceID string) ([]entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, stock_item_id, item_name, unit, hsn_code, quantity, unit_price, gst_rate, line_total
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.LineItem
	for rows.Next() {
		var l entity.LineItem
		var hsn *string
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.StockItemID, &l.ItemName, &l.Unit,
			&hsn, &l.Quantity, &l.UnitPrice, &l.GSTRate, &l.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		if hsn != nil {
			l.HSNCode = *hsn
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// List returns the franchise's invoices ordered by creation time, newest
// first, optionally bounded by createdAfter/createdBefore.
func (r *InvoiceRepo) List(franchiseID string, createdAfter, createdBefore *time.Time) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE franchise_id = $1`
	args := []any{franchiseID}
	if createdAfter != nil {
		args = append(args, *createdAfter)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if createdBefore != nil {
		args = append(args, *createdBefore)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateStatus persists the forward-only status field.
func (r *InvoiceRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	query := `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete hard-deletes the invoice and its lines. Only order cancellation
// within the window calls this.
func (r *InvoiceRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
