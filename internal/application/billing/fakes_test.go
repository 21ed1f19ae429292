package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/repository"
)

// In-memory fakes for the persistence and notification ports.

type fakeStockRepo struct {
	items map[string]*entity.StockItem
}

func newFakeStockRepo(items ...*entity.StockItem) *fakeStockRepo {
	r := &fakeStockRepo{items: make(map[string]*entity.StockItem)}
	for _, it := range items {
		copied := *it
		r.items[it.ID] = &copied
	}
	return r
}

func (r *fakeStockRepo) GetByID(id string) (*entity.StockItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *it
	return &copied, nil
}

func (r *fakeStockRepo) List(franchiseID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range r.items {
		if it.FranchiseID == franchiseID {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) LowStock(franchiseID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range r.items {
		if it.FranchiseID == franchiseID && it.LowStock() {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) Create(item *entity.StockItem) error {
	if _, ok := r.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeStockRepo) Update(item *entity.StockItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeStockRepo) DecrementAtomic(id, franchiseID string, quantity decimal.Decimal) error {
	it, ok := r.items[id]
	if !ok || it.FranchiseID != franchiseID {
		return domain.ErrNotFound
	}
	if it.Quantity.LessThan(quantity) {
		return domain.ErrInsufficientStock
	}
	it.Quantity = it.Quantity.Sub(quantity)
	return nil
}

func (r *fakeStockRepo) quantity(id string) decimal.Decimal {
	return r.items[id].Quantity
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	lines    map[string][]entity.LineItem
}

func newFakeInvoiceRepo(invoices ...*entity.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		lines:    make(map[string][]entity.LineItem),
	}
	for _, inv := range invoices {
		copied := *inv
		r.invoices[inv.ID] = &copied
		r.lines[inv.ID] = append([]entity.LineItem(nil), inv.Lines...)
	}
	return r
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	if _, ok := r.invoices[inv.ID]; ok {
		return domain.ErrDuplicate
	}
	copied := *inv
	copied.Lines = nil
	r.invoices[inv.ID] = &copied
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(line *entity.LineItem) error {
	r.lines[line.InvoiceID] = append(r.lines[line.InvoiceID], *line)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (r *fakeInvoiceRepo) GetLines(invoiceID string) ([]entity.LineItem, error) {
	return append([]entity.LineItem(nil), r.lines[invoiceID]...), nil
}

func (r *fakeInvoiceRepo) List(franchiseID string, createdAfter, createdBefore *time.Time) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.FranchiseID != franchiseID {
			continue
		}
		if createdAfter != nil && inv.CreatedAt.Before(*createdAfter) {
			continue
		}
		if createdBefore != nil && !inv.CreatedAt.Before(*createdBefore) {
			continue
		}
		copied := *inv
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	if _, ok := r.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.invoices, id)
	delete(r.lines, id)
	return nil
}

type fakeShiftRepo struct {
	boundaries []*entity.ShiftBoundary
}

func (r *fakeShiftRepo) Create(b *entity.ShiftBoundary) error {
	copied := *b
	r.boundaries = append(r.boundaries, &copied)
	return nil
}

func (r *fakeShiftRepo) LatestClose(franchiseID string) (*entity.ShiftBoundary, error) {
	var latest *entity.ShiftBoundary
	for _, b := range r.boundaries {
		if b.FranchiseID != franchiseID || !b.Closing {
			continue
		}
		if latest == nil || b.CreatedAt.After(latest.CreatedAt) {
			latest = b
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

type fakeNotifier struct {
	published []string // "table/franchiseID"
}

func (n *fakeNotifier) Publish(ctx context.Context, table, franchiseID string) error {
	n.published = append(n.published, table+"/"+franchiseID)
	return nil
}

// fakeTxRunner snapshots both repos before the callback and restores them
// when it fails, mirroring a real rollback: an aborted billing transaction
// leaves no partial stock deduction and no orphaned invoice.
type fakeTxRunner struct {
	stock      *fakeStockRepo
	invoices   *fakeInvoiceRepo
	rolledBack bool
}

func (tr *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	stockRepo repository.StockItemRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	stockSnap := snapshotStock(tr.stock)
	invSnap, lineSnap := snapshotInvoices(tr.invoices)

	if err := fn(tr.stock, tr.invoices); err != nil {
		tr.stock.items = stockSnap
		tr.invoices.invoices = invSnap
		tr.invoices.lines = lineSnap
		tr.rolledBack = true
		return err
	}
	return nil
}

func snapshotStock(r *fakeStockRepo) map[string]*entity.StockItem {
	snap := make(map[string]*entity.StockItem, len(r.items))
	for id, it := range r.items {
		copied := *it
		snap[id] = &copied
	}
	return snap
}

func snapshotInvoices(r *fakeInvoiceRepo) (map[string]*entity.Invoice, map[string][]entity.LineItem) {
	invSnap := make(map[string]*entity.Invoice, len(r.invoices))
	for id, inv := range r.invoices {
		copied := *inv
		invSnap[id] = &copied
	}
	lineSnap := make(map[string][]entity.LineItem, len(r.lines))
	for id, lines := range r.lines {
		lineSnap[id] = append([]entity.LineItem(nil), lines...)
	}
	return invSnap, lineSnap
}

type fakePDF struct {
	rendered *PrintableInvoice
}

func (g *fakePDF) Render(ctx context.Context, doc *PrintableInvoice) ([]byte, error) {
	g.rendered = doc
	return []byte("%PDF-fake"), nil
}
