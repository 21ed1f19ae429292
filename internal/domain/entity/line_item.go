package entity

import "github.com/shopspring/decimal"

// LineItem is one priced, taxed row of an invoice. All fields are copied
// from the stock item at invoice-creation time so later stock edits never
// retroactively alter historical invoices.
type LineItem struct {
	ID          string
	InvoiceID   string
	StockItemID string
	ItemName    string
	Unit        string
	HSNCode     string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	GSTRate     decimal.Decimal // percent
	LineTotal   decimal.Decimal // round2(qty * price * (1 + rate/100))
}
