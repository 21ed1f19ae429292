package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/franchisedesk/ledger-api/internal/application/dto"
	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/repository"
	"github.com/franchisedesk/ledger-api/internal/timeutil"
)

// StockUseCase covers the direct stock views the billing screens need:
// item catalogue, single reads and the low-stock list. Deductions never go
// through here — only through the invoice transaction.
type StockUseCase struct {
	stockRepo repository.StockItemRepository
	notifier  ChangeNotifier
	now       func() time.Time
}

// NewStockUseCase builds the use case.
func NewStockUseCase(stockRepo repository.StockItemRepository, notifier ChangeNotifier) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, notifier: notifier, now: timeutil.Now}
}

// Create registers a new stock item for the franchise.
func (uc *StockUseCase) Create(ctx context.Context, franchiseID string, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	if franchiseID == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() || in.Price.IsNegative() || in.GSTRate.IsNegative() || in.Threshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	item := &entity.StockItem{
		ID:          uuid.New().String(),
		FranchiseID: franchiseID,
		Name:        in.Name,
		Unit:        in.Unit,
		Quantity:    in.Quantity,
		Price:       in.Price,
		GSTRate:     in.GSTRate,
		HSNCode:     in.HSNCode,
		Threshold:   in.Threshold,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.stockRepo.Create(item); err != nil {
		return nil, err
	}
	_ = uc.notifier.Publish(ctx, "stock_items", franchiseID)
	return toStockResponse(item), nil
}

// Get returns one stock item of the franchise.
func (uc *StockUseCase) Get(ctx context.Context, franchiseID, id string) (*dto.StockItemResponse, error) {
	if franchiseID == "" || id == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.FranchiseID != franchiseID {
		return nil, domain.ErrForbidden
	}
	return toStockResponse(item), nil
}

// List returns the franchise's full stock catalogue.
func (uc *StockUseCase) List(ctx context.Context, franchiseID string) ([]*dto.StockItemResponse, error) {
	if franchiseID == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.stockRepo.List(franchiseID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(items), nil
}

// LowStock returns items at or below their reorder threshold.
func (uc *StockUseCase) LowStock(ctx context.Context, franchiseID string) ([]*dto.StockItemResponse, error) {
	if franchiseID == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.stockRepo.LowStock(franchiseID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(items), nil
}

func toStockResponse(item *entity.StockItem) *dto.StockItemResponse {
	return &dto.StockItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Unit:      item.Unit,
		Quantity:  item.Quantity,
		Price:     item.Price,
		GSTRate:   item.GSTRate,
		HSNCode:   item.HSNCode,
		Threshold: item.Threshold,
		LowStock:  item.LowStock(),
	}
}

func toStockResponses(items []*entity.StockItem) []*dto.StockItemResponse {
	out := make([]*dto.StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toStockResponse(item))
	}
	return out
}
