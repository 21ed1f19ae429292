package billing

import (
	"context"

	"github.com/franchisedesk/ledger-api/internal/domain/repository"
)

// BillingTxRunner executes a function inside one database transaction that
// spans stock and invoice repositories. The invoice write and the stock
// decrements succeed or fail together: a reader can never observe a
// decremented stock item without the invoice that caused it.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		stockRepo repository.StockItemRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// ChangeNotifier publishes a change notification for a table scoped to one
// franchise. Publishing is best-effort: consumers must tolerate lost and
// duplicated notifications (eventual re-fetch, idempotent refresh).
type ChangeNotifier interface {
	Publish(ctx context.Context, table, franchiseID string) error
}

// ChangeSubscriber delivers change notifications for a table+franchise
// channel until ctx is cancelled. onChange must be idempotent.
type ChangeSubscriber interface {
	Subscribe(ctx context.Context, table, franchiseID string, onChange func()) error
}

// InvoicePDFGenerator renders a paginated invoice for print.
type InvoicePDFGenerator interface {
	Render(ctx context.Context, doc *PrintableInvoice) ([]byte, error)
}
