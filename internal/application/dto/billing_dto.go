package dto

import "github.com/shopspring/decimal"

// ErrorResponse is the uniform error body for the HTTP surface.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one requested row: stock item reference + quantity.
type OrderItemRequest struct {
	StockItemID string          `json:"stock_item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreateOrderRequest is the body for POST /api/invoices. The customer
// fields are snapshotted onto the invoice.
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone,omitempty"`
	CustomerAddress string             `json:"customer_address,omitempty"`
	Items           []OrderItemRequest `json:"items"`
}

// LineItemResponse is one invoice line in responses.
type LineItemResponse struct {
	ID          string          `json:"id"`
	StockItemID string          `json:"stock_item_id"`
	ItemName    string          `json:"item_name"`
	Unit        string          `json:"unit"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse is the full invoice with ledger figures and lines.
type InvoiceResponse struct {
	ID              string             `json:"id"`
	FranchiseID     string             `json:"franchise_id"`
	InvoiceNumber   string             `json:"invoice_number"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone,omitempty"`
	CustomerAddress string             `json:"customer_address,omitempty"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	TaxAmount       decimal.Decimal    `json:"tax_amount"`
	CGST            decimal.Decimal    `json:"cgst"`
	SGST            decimal.Decimal    `json:"sgst"`
	RoundOff        decimal.Decimal    `json:"round_off"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Status          string             `json:"status"`
	CreatedAt       string             `json:"created_at"`
	Cancellable     bool               `json:"cancellable"`
	Lines           []LineItemResponse `json:"lines"`
}

// UpdateStatusRequest is the body for PATCH /api/invoices/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ShiftStatusResponse describes the franchise's shift lock for the UI.
type ShiftStatusResponse struct {
	State       string `json:"state"` // open | locked
	LastClose   string `json:"last_close,omitempty"`
	WindowStart string `json:"window_start"`
}

// CreateStockItemRequest is the body for POST /api/stock.
type CreateStockItemRequest struct {
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	GSTRate   decimal.Decimal `json:"gst_rate"`
	HSNCode   string          `json:"hsn_code,omitempty"`
	Threshold decimal.Decimal `json:"threshold,omitempty"`
}

// StockItemResponse is one inventory row in responses.
type StockItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	GSTRate   decimal.Decimal `json:"gst_rate"`
	HSNCode   string          `json:"hsn_code,omitempty"`
	Threshold decimal.Decimal `json:"threshold"`
	LowStock  bool            `json:"low_stock"`
}
