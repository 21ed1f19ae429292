package billing

import (
	"context"
	"time"

	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/ledger"
	"github.com/franchisedesk/ledger-api/internal/domain/repository"
	"github.com/franchisedesk/ledger-api/internal/timeutil"
)

// CancelInvoiceUseCase governs the short cancellation window after order
// creation and the forward-only status progression of an invoice.
type CancelInvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	notifier    ChangeNotifier
	now         func() time.Time
}

// NewCancelInvoiceUseCase builds the use case.
func NewCancelInvoiceUseCase(invoiceRepo repository.InvoiceRepository, notifier ChangeNotifier) *CancelInvoiceUseCase {
	return &CancelInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		notifier:    notifier,
		now:         timeutil.Now,
	}
}

// Cancel hard-deletes the invoice while its cancellation window is open.
// After the window the order is immutable: the attempt is rejected with
// domain.ErrWindowExpired so the caller can render the exact condition.
func (uc *CancelInvoiceUseCase) Cancel(ctx context.Context, franchiseID, id string) error {
	inv, err := uc.fetch(franchiseID, id)
	if err != nil {
		return err
	}
	if ledger.CancelStateAt(inv.CreatedAt, uc.now()) == ledger.Expired {
		return domain.ErrWindowExpired
	}
	if err := uc.invoiceRepo.Delete(id); err != nil {
		return err
	}
	_ = uc.notifier.Publish(ctx, "invoices", franchiseID)
	return nil
}

// UpdateStatus moves the invoice status strictly forward
// (incoming -> packed -> dispatched). Unknown statuses are invalid input;
// same-status and backward transitions conflict with current state.
func (uc *CancelInvoiceUseCase) UpdateStatus(ctx context.Context, franchiseID, id, newStatus string) error {
	if !entity.ValidStatus(newStatus) {
		return domain.ErrInvalidInput
	}
	inv, err := uc.fetch(franchiseID, id)
	if err != nil {
		return err
	}
	if !entity.StatusMovesForward(inv.Status, newStatus) {
		return domain.ErrConflict
	}
	if err := uc.invoiceRepo.UpdateStatus(id, newStatus, uc.now()); err != nil {
		return err
	}
	_ = uc.notifier.Publish(ctx, "invoices", franchiseID)
	return nil
}

func (uc *CancelInvoiceUseCase) fetch(franchiseID, id string) (*entity.Invoice, error) {
	if franchiseID == "" || id == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.FranchiseID != franchiseID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}
