package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/franchisedesk/ledger-api/internal/domain"
)

// LineInput is the pricing input for one candidate order row.
type LineInput struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	GSTRate   decimal.Decimal // percent (18 means 18%)
}

// LineFigures are the per-line monetary figures, rounded to 2 decimals.
type LineFigures struct {
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	LineTotal     decimal.Decimal
}

// Totals are the invoice-level aggregates. Aggregation happens on exact
// decimals; rounding is applied once at the end so per-line rounding error
// never compounds across many rows.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	CGST      decimal.Decimal
	SGST      decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// Calculate prices an ordered list of line inputs. The tax split is always
// the intra-state 50/50 CGST/SGST split; IGST is not modelled.
// Negative quantity, price or rate is rejected, not clamped.
func Calculate(lines []LineInput) ([]LineFigures, Totals, error) {
	var subtotal, tax decimal.Decimal
	out := make([]LineFigures, 0, len(lines))

	for _, in := range lines {
		if in.Quantity.IsNegative() || in.UnitPrice.IsNegative() || in.GSTRate.IsNegative() {
			return nil, Totals{}, domain.ErrInvalidInput
		}
		taxable := in.Quantity.Mul(in.UnitPrice)
		lineTax := taxable.Mul(in.GSTRate).Div(oneHundred)
		half := lineTax.Div(decimal.NewFromInt(2))

		out = append(out, LineFigures{
			TaxableAmount: taxable.Round(2),
			TaxAmount:     lineTax.Round(2),
			CGST:          half.Round(2),
			SGST:          half.Round(2),
			LineTotal:     taxable.Add(lineTax).Round(2),
		})
		subtotal = subtotal.Add(taxable)
		tax = tax.Add(lineTax)
	}

	halfTax := tax.Div(decimal.NewFromInt(2)).Round(2)
	totals := Totals{
		Subtotal:  subtotal.Round(2),
		TaxAmount: tax.Round(2),
		CGST:      halfTax,
		SGST:      halfTax,
	}
	return out, totals, nil
}

// GrandTotal applies the canonical invoice rounding policy: the payable
// total is subtotal+tax rounded half-up to the nearest whole rupee, and
// roundOff is the reported delta. |roundOff| <= 0.50 always holds.
func GrandTotal(t Totals) (total, roundOff decimal.Decimal) {
	exact := t.Subtotal.Add(t.TaxAmount)
	total = exact.Round(0)
	roundOff = total.Sub(exact)
	return total, roundOff
}

// RoundOff reports the delta between a caller-supplied final total and the
// computed subtotal+tax. It does not decide the caller's rounding policy.
func RoundOff(finalTotal, subtotal, tax decimal.Decimal) decimal.Decimal {
	return finalTotal.Sub(subtotal.Add(tax))
}
