// Package pdf renders the print representation of a franchise invoice.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: franchise + invoice number + date                  │
//	│  CUSTOMER: name / phone / address snapshot                  │
//	│  ───────────────────────────────────────────────────────    │
//	│  TABLE: Qty | Item | HSN | Rate | GST% | Line Total         │
//	│  (blank padding rows keep every page the same height)       │
//	│  ───────────────────────────────────────────────────────    │
//	│  TOTALS: subtotal / CGST / SGST / round off / GRAND TOTAL   │
//	│  AMOUNT IN WORDS                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/franchisedesk/ledger-api/internal/application/billing"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/ledger"
	"github.com/franchisedesk/ledger-api/internal/timeutil"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.InvoicePDFGenerator = (*MarotoInvoiceGenerator)(nil)

// MarotoInvoiceGenerator implements billing.InvoicePDFGenerator with Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator builds the generator.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// Render draws one PDF page per paginator page, keeping the table height
// uniform via the padding rows the paginator computed.
func (g *MarotoInvoiceGenerator) Render(_ context.Context, doc *billing.PrintableInvoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+doc.Invoice.InvoiceNumber, true).
		Build()

	m := maroto.New(cfg)

	for _, p := range doc.Pages {
		pg := page.New()
		pg.Add(headerRow(doc.Invoice, p))
		pg.Add(customerRow(doc.Invoice))
		pg.Add(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))
		pg.Add(tableHeaderRow())
		for _, item := range p.Items {
			pg.Add(itemRow(item))
		}
		for i := 0; i < p.PaddingRowCount; i++ {
			pg.Add(blankRow())
		}
		pg.Add(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))
		if p.PageIndex == p.TotalPages-1 {
			pg.Add(totalsRows(doc.Invoice)...)
			pg.Add(wordsRow(doc.AmountWords))
		}
		m.AddPages(pg)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return out.GetBytes(), nil
}

// headerRow: invoice number + date (left), page counter (right).
func headerRow(inv *entity.Invoice, p ledger.Page) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 8,
			}),
		),
		col.New(4).Add(
			text.New(timeutil.FormatIST(inv.CreatedAt, timeutil.DisplayLayout), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Page %d of %d", p.PageIndex+1, p.TotalPages), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// customerRow: the customer snapshot stored on the invoice.
func customerRow(inv *entity.Invoice) core.Row {
	contact := inv.CustomerPhone
	if inv.CustomerAddress != "" {
		if contact != "" {
			contact += "   |   "
		}
		contact += inv.CustomerAddress
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Qty", 1, align.Center),
		h("Item", 4, align.Left),
		h("HSN", 2, align.Center),
		h("Rate", 2, align.Right),
		h("GST%", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

func itemRow(item entity.LineItem) core.Row {
	return row.New(6).Add(
		col.New(1).Add(text.New(item.Quantity.String()+" "+item.Unit,
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(4).Add(text.New(item.ItemName,
			props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(2).Add(text.New(item.HSNCode,
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New("Rs. "+item.UnitPrice.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(1).Add(text.New(item.GSTRate.StringFixed(0)+"%",
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New("Rs. "+item.LineTotal.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

// blankRow keeps the table grid at uniform height on the last page.
func blankRow() core.Row {
	return row.New(6).Add(col.New(12))
}

func totalsRows(inv *entity.Invoice) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right})
	}
	pair := func(l, v string) core.Row {
		return row.New(5).Add(col.New(6), col.New(3).Add(label(l)), col.New(3).Add(value(v)))
	}
	grand := row.New(7).Add(
		col.New(6),
		col.New(3).Add(text.New("GRAND TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
		})),
		col.New(3).Add(text.New("Rs. "+inv.TotalAmount.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary,
		})),
	)
	return []core.Row{
		pair("Subtotal:", "Rs. "+inv.Subtotal.StringFixed(2)),
		pair("CGST:", "Rs. "+inv.CGST.StringFixed(2)),
		pair("SGST:", "Rs. "+inv.SGST.StringFixed(2)),
		pair("Round Off:", "Rs. "+inv.RoundOff.StringFixed(2)),
		grand,
	}
}

func wordsRow(words string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(words, props.Text{
				Style: fontstyle.Italic, Size: 9, Top: 2, Color: colorGray,
			}),
		),
	)
}
