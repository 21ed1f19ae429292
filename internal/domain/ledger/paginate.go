package ledger

import (
	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
)

// Page is one print-ready chunk of an invoice's line items. PaddingRowCount
// tells the print layout how many blank table rows to render so every page
// has uniform height.
type Page struct {
	PageIndex       int
	TotalPages      int
	Items           []entity.LineItem
	PaddingRowCount int
}

// Paginate splits an ordered list of line items into fixed-size pages.
// Page k holds items [k*pageSize, (k+1)*pageSize) in original order, so
// concatenating all pages reproduces the exact input sequence. Only the
// last page carries padding. An empty list still yields one well-formed
// empty page. pageSize varies by print template and must be >= 1.
func Paginate(items []entity.LineItem, pageSize int) ([]Page, error) {
	if pageSize < 1 {
		return nil, domain.ErrInvalidInput
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	pages := make([]Page, 0, totalPages)
	for k := 0; k < totalPages; k++ {
		start := k * pageSize
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		chunk := items[start:end]
		padding := 0
		if k == totalPages-1 {
			padding = pageSize - len(chunk)
		}
		pages = append(pages, Page{
			PageIndex:       k,
			TotalPages:      totalPages,
			Items:           chunk,
			PaddingRowCount: padding,
		})
	}
	return pages, nil
}
