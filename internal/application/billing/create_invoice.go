package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/franchisedesk/ledger-api/internal/application/dto"
	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/ledger"
	"github.com/franchisedesk/ledger-api/internal/domain/repository"
	"github.com/franchisedesk/ledger-api/internal/timeutil"
)

// CreateInvoiceUseCase turns a candidate order into a persisted invoice and
// deducts inventory in a single transaction.
type CreateInvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	notifier    ChangeNotifier
	now         func() time.Time
}

// NewCreateInvoiceUseCase builds the use case. invoiceRepo is the
// pool-bound repository used for reads outside the transaction.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	notifier ChangeNotifier,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		notifier:    notifier,
		now:         timeutil.Now,
	}
}

// orderLine is one merged, ordered stock reference of the request.
type orderLine struct {
	stockItemID string
	quantity    decimal.Decimal
}

// CreateInvoice validates the order, snapshots the referenced stock items,
// prices them, persists the invoice with status incoming and decrements
// stock — all inside one transaction. Any failure rolls back the whole
// operation: no invoice without its deduction, no deduction without its
// invoice.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, franchiseID string, in dto.CreateOrderRequest) (*dto.InvoiceResponse, error) {
	if franchiseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Merge duplicate stock references, preserving first-occurrence order.
	merged := make([]orderLine, 0, len(in.Items))
	index := make(map[string]int, len(in.Items))
	for _, item := range in.Items {
		if item.StockItemID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if i, ok := index[item.StockItemID]; ok {
			merged[i].quantity = merged[i].quantity.Add(item.Quantity)
			continue
		}
		index[item.StockItemID] = len(merged)
		merged = append(merged, orderLine{stockItemID: item.StockItemID, quantity: item.Quantity})
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		FranchiseID:     franchiseID,
		InvoiceNumber:   fmt.Sprintf("INV-%d", now.Unix()),
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		Status:          entity.StatusIncoming,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.txRunner.RunBilling(ctx, func(
		stockRepo repository.StockItemRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// 1) Snapshot every referenced item and deduct its stock. The
		// decrement is a conditional UPDATE at the storage layer, so two
		// concurrent orders against the same item can never both succeed
		// past the available quantity.
		inputs := make([]ledger.LineInput, 0, len(merged))
		for _, line := range merged {
			item, err := stockRepo.GetByID(line.stockItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if item.FranchiseID != franchiseID {
				return domain.ErrForbidden
			}
			if err := stockRepo.DecrementAtomic(item.ID, franchiseID, line.quantity); err != nil {
				return err
			}
			inputs = append(inputs, ledger.LineInput{
				Quantity:  line.quantity,
				UnitPrice: item.Price,
				GSTRate:   item.GSTRate,
			})
			inv.Lines = append(inv.Lines, entity.LineItem{
				ID:          uuid.New().String(),
				InvoiceID:   inv.ID,
				StockItemID: item.ID,
				ItemName:    item.Name,
				Unit:        item.Unit,
				HSNCode:     item.HSNCode,
				Quantity:    line.quantity,
				UnitPrice:   item.Price,
				GSTRate:     item.GSTRate,
			})
		}

		// 2) Aggregate ledger figures, rounded once at the invoice level.
		figures, totals, err := ledger.Calculate(inputs)
		if err != nil {
			return err
		}
		for i := range inv.Lines {
			inv.Lines[i].LineTotal = figures[i].LineTotal
		}
		inv.Subtotal = totals.Subtotal
		inv.TaxAmount = totals.TaxAmount
		inv.CGST = totals.CGST
		inv.SGST = totals.SGST
		inv.TotalAmount, inv.RoundOff = ledger.GrandTotal(totals)

		// 3) Persist header and line snapshots.
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for i := range inv.Lines {
			if err := invoiceRepo.CreateLine(&inv.Lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort realtime refresh; subscribers re-fetch on their own if a
	// notification is lost.
	_ = uc.notifier.Publish(ctx, "invoices", franchiseID)
	_ = uc.notifier.Publish(ctx, "stock_items", franchiseID)

	return toInvoiceResponse(inv, now), nil
}

// GetInvoice returns a full invoice with its line snapshots.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, franchiseID, id string) (*dto.InvoiceResponse, error) {
	if id == "" {
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
	lines, err := uc.invoiceRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return toInvoiceResponse(inv, uc.now()), nil
}

func toInvoiceResponse(inv *entity.Invoice, now time.Time) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		FranchiseID:     inv.FranchiseID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerName:    inv.CustomerName,
		CustomerPhone:   inv.CustomerPhone,
		CustomerAddress: inv.CustomerAddress,
		Subtotal:        inv.Subtotal,
		TaxAmount:       inv.TaxAmount,
		CGST:            inv.CGST,
		SGST:            inv.SGST,
		RoundOff:        inv.RoundOff,
		TotalAmount:     inv.TotalAmount,
		Status:          inv.Status,
		CreatedAt:       timeutil.FormatIST(inv.CreatedAt, time.RFC3339),
		Cancellable:     ledger.CancelStateAt(inv.CreatedAt, now) == ledger.Cancellable,
		Lines:           make([]dto.LineItemResponse, 0, len(inv.Lines)),
	}
	for _, l := range inv.Lines {
		resp.Lines = append(resp.Lines, dto.LineItemResponse{
			ID:          l.ID,
			StockItemID: l.StockItemID,
			ItemName:    l.ItemName,
			Unit:        l.Unit,
			HSNCode:     l.HSNCode,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			GSTRate:     l.GSTRate,
			LineTotal:   l.LineTotal,
		})
	}
	return resp
}
