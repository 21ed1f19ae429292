package billing

import (
	"context"

	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/ledger"
	"github.com/franchisedesk/ledger-api/internal/domain/repository"
)

// Print templates observed across the console screens. Page size is a
// template property, never hard-coded in the paginator.
const (
	TemplateA4      = "a4"
	TemplateCompact = "compact"
)

// PrintConfig carries the per-template page sizes.
type PrintConfig struct {
	PageSizeA4      int // rows per page on the A4 layout
	PageSizeCompact int // rows per page on the compact layout
}

// PrintableInvoice is the render-facing output consumed by the layout
// renderer: the persisted invoice, its print pages and the grand total in
// words. The engine never formats presentation markup itself.
type PrintableInvoice struct {
	Invoice     *entity.Invoice
	Pages       []ledger.Page
	AmountWords string
	Template    string
}

// PrintUseCase prepares a persisted invoice for printing.
type PrintUseCase struct {
	invoiceRepo repository.InvoiceRepository
	pdf         InvoicePDFGenerator
	cfg         PrintConfig
}

// NewPrintUseCase builds the use case.
func NewPrintUseCase(invoiceRepo repository.InvoiceRepository, pdf InvoicePDFGenerator, cfg PrintConfig) *PrintUseCase {
	return &PrintUseCase{invoiceRepo: invoiceRepo, pdf: pdf, cfg: cfg}
}

// BuildPrintable loads the invoice, paginates its lines for the requested
// template and renders the total in words.
func (uc *PrintUseCase) BuildPrintable(ctx context.Context, franchiseID, id, template string) (*PrintableInvoice, error) {
	pageSize, err := uc.pageSize(template)
	if err != nil {
		return nil, err
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

	pages, err := ledger.Paginate(lines, pageSize)
	if err != nil {
		return nil, err
	}
	// TotalAmount is already rounded to a whole rupee by the ledger policy.
	words, err := ledger.AmountInWords(inv.TotalAmount.IntPart())
	if err != nil {
		return nil, err
	}
	return &PrintableInvoice{
		Invoice:     inv,
		Pages:       pages,
		AmountWords: words,
		Template:    template,
	}, nil
}

// RenderPDF produces the print PDF for the invoice.
func (uc *PrintUseCase) RenderPDF(ctx context.Context, franchiseID, id, template string) ([]byte, error) {
	doc, err := uc.BuildPrintable(ctx, franchiseID, id, template)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Render(ctx, doc)
}

func (uc *PrintUseCase) pageSize(template string) (int, error) {
	switch template {
	case TemplateA4, "":
		return uc.cfg.PageSizeA4, nil
	case TemplateCompact:
		return uc.cfg.PageSizeCompact, nil
	default:
		return 0, domain.ErrInvalidInput
	}
}
