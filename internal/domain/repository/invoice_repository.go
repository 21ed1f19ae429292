package repository

import (
	"time"

	"github.com/franchisedesk/ledger-api/internal/domain/entity"
)

// InvoiceRepository is the persistence port for invoices and their line
// snapshots. Create/CreateLine must be composable with the stock decrement
// into one transaction.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	CreateLine(line *entity.LineItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetLines(invoiceID string) ([]entity.LineItem, error)
	// List returns invoices for a franchise ordered by creation time,
	// optionally bounded by createdAfter/createdBefore.
	List(franchiseID string, createdAfter, createdBefore *time.Time) ([]*entity.Invoice, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
	// Delete hard-deletes the invoice and its lines. Used only by order
	// cancellation while the window is open.
	Delete(id string) error
}
