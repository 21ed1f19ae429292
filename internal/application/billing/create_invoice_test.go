package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franchisedesk/ledger-api/internal/application/dto"
	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/timeutil"
)

const testFranchiseID = "franchise-1"

var fixedNow = time.Date(2025, 3, 10, 14, 30, 0, 0, timeutil.IST)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testStockItem(id, name, qty, price, rate string) *entity.StockItem {
	return &entity.StockItem{
		ID:          id,
		FranchiseID: testFranchiseID,
		Name:        name,
		Unit:        "pcs",
		Quantity:    dec(qty),
		Price:       dec(price),
		GSTRate:     dec(rate),
		HSNCode:     "0902",
	}
}

func newCreateUC(stock *fakeStockRepo, invoices *fakeInvoiceRepo) (*CreateInvoiceUseCase, *fakeTxRunner, *fakeNotifier) {
	tx := &fakeTxRunner{stock: stock, invoices: invoices}
	notifier := &fakeNotifier{}
	uc := NewCreateInvoiceUseCase(tx, invoices, notifier)
	uc.now = func() time.Time { return fixedNow }
	return uc, tx, notifier
}

func TestCreateInvoice_DeductsStockAndPersistsTotals(t *testing.T) {
	stock := newFakeStockRepo(testStockItem("item-1", "Tea Powder", "50", "100", "18"))
	invoices := newFakeInvoiceRepo()
	uc, _, notifier := newCreateUC(stock, invoices)

	resp, err := uc.CreateInvoice(context.Background(), testFranchiseID, dto.CreateOrderRequest{
		CustomerName: "Asha Traders",
		Items:        []dto.OrderItemRequest{{StockItemID: "item-1", Quantity: dec("2")}},
	})
	require.NoError(t, err)

	assert.True(t, stock.quantity("item-1").Equal(dec("48")), "stock deducted")
	assert.Equal(t, entity.StatusIncoming, resp.Status)
	assert.True(t, resp.Subtotal.Equal(dec("200.00")))
	assert.True(t, resp.TaxAmount.Equal(dec("36.00")))
	assert.True(t, resp.CGST.Equal(dec("18.00")))
	assert.True(t, resp.SGST.Equal(dec("18.00")))
	assert.True(t, resp.TotalAmount.Equal(dec("236")))
	assert.True(t, resp.RoundOff.Equal(decimal.Zero))
	assert.True(t, resp.Cancellable, "fresh invoice must be inside its cancellation window")
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "Tea Powder", resp.Lines[0].ItemName, "line carries the item snapshot")
	assert.True(t, resp.Lines[0].LineTotal.Equal(dec("236.00")))

	// Both the invoice table and the stock table got a change notification.
	assert.Contains(t, notifier.published, "invoices/"+testFranchiseID)
	assert.Contains(t, notifier.published, "stock_items/"+testFranchiseID)

	stored, err := invoices.GetByID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored, "invoice persisted")
}

func TestCreateInvoice_InsufficientStockRollsBackEverything(t *testing.T) {
	stock := newFakeStockRepo(
		testStockItem("item-1", "Tea Powder", "50", "100", "18"),
		testStockItem("item-2", "Sugar", "1", "40", "5"),
	)
	invoices := newFakeInvoiceRepo()
	uc, tx, notifier := newCreateUC(stock, invoices)

	_, err := uc.CreateInvoice(context.Background(), testFranchiseID, dto.CreateOrderRequest{
		CustomerName: "Asha Traders",
		Items: []dto.OrderItemRequest{
			{StockItemID: "item-1", Quantity: dec("2")},
			{StockItemID: "item-2", Quantity: dec("5")}, // only 1 available
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, tx.rolledBack, "transaction must roll back")
	assert.True(t, stock.quantity("item-1").Equal(dec("50")), "first deduction undone")
	assert.True(t, stock.quantity("item-2").Equal(dec("1")))
	assert.Empty(t, invoices.invoices, "no invoice persisted")
	assert.Empty(t, notifier.published, "no notification for a failed order")
}

func TestCreateInvoice_UnknownItemRollsBack(t *testing.T) {
	stock := newFakeStockRepo(testStockItem("item-1", "Tea Powder", "50", "100", "18"))
	invoices := newFakeInvoiceRepo()
	uc, tx, _ := newCreateUC(stock, invoices)

	_, err := uc.CreateInvoice(context.Background(), testFranchiseID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{StockItemID: "item-1", Quantity: dec("2")},
			{StockItemID: "missing", Quantity: dec("1")},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, tx.rolledBack)
	assert.True(t, stock.quantity("item-1").Equal(dec("50")))
}

func TestCreateInvoice_OtherFranchiseItemForbidden(t *testing.T) {
	foreign := testStockItem("item-x", "Oil", "10", "200", "12")
	foreign.FranchiseID = "franchise-2"
	stock := newFakeStockRepo(foreign)
	invoices := newFakeInvoiceRepo()
	uc, _, _ := newCreateUC(stock, invoices)

	_, err := uc.CreateInvoice(context.Background(), testFranchiseID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{StockItemID: "item-x", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, invoices.invoices)
}

func TestCreateInvoice_MergesDuplicateItemReferences(t *testing.T) {
	stock := newFakeStockRepo(testStockItem("item-1", "Tea Powder", "50", "100", "18"))
	invoices := newFakeInvoiceRepo()
	uc, _, _ := newCreateUC(stock, invoices)

	resp, err := uc.CreateInvoice(context.Background(), testFranchiseID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{StockItemID: "item-1", Quantity: dec("2")},
			{StockItemID: "item-1", Quantity: dec("3")},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Lines, 1, "duplicate references collapse into one line")
	assert.True(t, resp.Lines[0].Quantity.Equal(dec("5")))
	assert.True(t, stock.quantity("item-1").Equal(dec("45")), "deducted once with the merged quantity")
}

func TestCreateInvoice_RejectsEmptyAndInvalidOrders(t *testing.T) {
	stock := newFakeStockRepo(testStockItem("item-1", "Tea Powder", "50", "100", "18"))
	invoices := newFakeInvoiceRepo()
	uc, _, _ := newCreateUC(stock, invoices)

	_, err := uc.CreateInvoice(context.Background(), testFranchiseID, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "empty order")

	_, err = uc.CreateInvoice(context.Background(), testFranchiseID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{StockItemID: "item-1", Quantity: dec("0")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "zero quantity")

	_, err = uc.CreateInvoice(context.Background(), testFranchiseID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{StockItemID: "item-1", Quantity: dec("-1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "negative quantity")

	_, err = uc.CreateInvoice(context.Background(), "", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{StockItemID: "item-1", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "missing franchise")
}

func TestGetInvoice_LoadsLinesAndScopesToFranchise(t *testing.T) {
	stock := newFakeStockRepo(testStockItem("item-1", "Tea Powder", "50", "100", "18"))
	invoices := newFakeInvoiceRepo()
	uc, _, _ := newCreateUC(stock, invoices)

	created, err := uc.CreateInvoice(context.Background(), testFranchiseID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{StockItemID: "item-1", Quantity: dec("2")}},
	})
	require.NoError(t, err)

	got, err := uc.GetInvoice(context.Background(), testFranchiseID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.Len(t, got.Lines, 1)

	_, err = uc.GetInvoice(context.Background(), "franchise-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetInvoice(context.Background(), testFranchiseID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
