package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/franchisedesk/ledger-api/internal/application/dto"
	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/ledger"
	"github.com/franchisedesk/ledger-api/internal/domain/repository"
	"github.com/franchisedesk/ledger-api/internal/timeutil"
)

// ShiftUseCase governs the day-close boundary of a franchise and scopes
// "today's history" queries to the current shift window.
type ShiftUseCase struct {
	shiftRepo   repository.ShiftRepository
	invoiceRepo repository.InvoiceRepository
	notifier    ChangeNotifier
	now         func() time.Time
}

// NewShiftUseCase builds the use case.
func NewShiftUseCase(shiftRepo repository.ShiftRepository, invoiceRepo repository.InvoiceRepository, notifier ChangeNotifier) *ShiftUseCase {
	return &ShiftUseCase{
		shiftRepo:   shiftRepo,
		invoiceRepo: invoiceRepo,
		notifier:    notifier,
		now:         timeutil.Now,
	}
}

// CloseShift creates a closing boundary while the shift is open. While the
// 12-hour lock is running the attempt is rejected with domain.ErrShiftLocked;
// the lock self-expires, no explicit re-open exists.
func (uc *ShiftUseCase) CloseShift(ctx context.Context, franchiseID string) (*entity.ShiftBoundary, error) {
	if franchiseID == "" {
		return nil, domain.ErrInvalidInput
	}
	lastClose, err := uc.lastCloseTime(franchiseID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if ledger.ShiftStateAt(lastClose, now) == ledger.ShiftLocked {
		return nil, domain.ErrShiftLocked
	}
	boundary := &entity.ShiftBoundary{
		ID:          uuid.New().String(),
		FranchiseID: franchiseID,
		Closing:     true,
		CreatedAt:   now,
	}
	if err := uc.shiftRepo.Create(boundary); err != nil {
		return nil, err
	}
	_ = uc.notifier.Publish(ctx, "shift_boundaries", franchiseID)
	return boundary, nil
}

// Status reports the current shift state and history window for the UI,
// re-derived from the wall clock on every call.
func (uc *ShiftUseCase) Status(ctx context.Context, franchiseID string) (*dto.ShiftStatusResponse, error) {
	if franchiseID == "" {
		return nil, domain.ErrInvalidInput
	}
	lastClose, err := uc.lastCloseTime(franchiseID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	resp := &dto.ShiftStatusResponse{
		State:       ledger.ShiftStateAt(lastClose, now).String(),
		WindowStart: timeutil.FormatIST(ledger.ShiftWindowStart(lastClose, now), time.RFC3339),
	}
	if lastClose != nil {
		resp.LastClose = timeutil.FormatIST(*lastClose, time.RFC3339)
	}
	return resp, nil
}

// ListInvoices returns invoices for the franchise. With no explicit bounds
// the list is scoped to the current shift window: everything created since
// the last day-close, or since IST midnight when no close exists yet.
func (uc *ShiftUseCase) ListInvoices(ctx context.Context, franchiseID string, from, to *time.Time) ([]*dto.InvoiceResponse, error) {
	if franchiseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if from == nil {
		lastClose, err := uc.lastCloseTime(franchiseID)
		if err != nil {
			return nil, err
		}
		start := ledger.ShiftWindowStart(lastClose, uc.now())
		from = &start
	}
	invoices, err := uc.invoiceRepo.List(franchiseID, from, to)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, now))
	}
	return out, nil
}

func (uc *ShiftUseCase) lastCloseTime(franchiseID string) (*time.Time, error) {
	boundary, err := uc.shiftRepo.LatestClose(franchiseID)
	if err != nil {
		return nil, err
	}
	if boundary == nil {
		return nil, nil
	}
	t := boundary.CreatedAt
	return &t, nil
}
