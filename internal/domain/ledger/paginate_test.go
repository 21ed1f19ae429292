package ledger_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franchisedesk/ledger-api/internal/domain"
	"github.com/franchisedesk/ledger-api/internal/domain/entity"
	"github.com/franchisedesk/ledger-api/internal/domain/ledger"
)

func makeLines(n int) []entity.LineItem {
	items := make([]entity.LineItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, entity.LineItem{ID: fmt.Sprintf("line-%03d", i)})
	}
	return items
}

// Concatenating all pages reproduces the exact input order.
func TestPaginate_RoundTripPreservesOrder(t *testing.T) {
	items := makeLines(37)
	pages, err := ledger.Paginate(items, 15)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	var flat []entity.LineItem
	for _, p := range pages {
		flat = append(flat, p.Items...)
	}
	assert.Equal(t, items, flat)
}

// An exact multiple of the page size fills the last page completely.
func TestPaginate_ExactMultiple(t *testing.T) {
	pages, err := ledger.Paginate(makeLines(30), 15)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	last := pages[1]
	assert.Len(t, last.Items, 15)
	assert.Equal(t, 0, last.PaddingRowCount)
}

// Only the last page carries padding; every earlier page is full.
func TestPaginate_PaddingOnLastPageOnly(t *testing.T) {
	pages, err := ledger.Paginate(makeLines(20), 15)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Len(t, pages[0].Items, 15)
	assert.Equal(t, 0, pages[0].PaddingRowCount)
	assert.Len(t, pages[1].Items, 5)
	assert.Equal(t, 10, pages[1].PaddingRowCount)

	for _, p := range pages {
		assert.Equal(t, 2, p.TotalPages)
		assert.Equal(t, 15, len(p.Items)+p.PaddingRowCount, "page %d height", p.PageIndex)
	}
}

// An empty invoice still yields one well-formed fully-padded page.
func TestPaginate_EmptyInput(t *testing.T) {
	pages, err := ledger.Paginate(nil, 12)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	assert.Equal(t, 0, pages[0].PageIndex)
	assert.Equal(t, 1, pages[0].TotalPages)
	assert.Empty(t, pages[0].Items)
	assert.Equal(t, 12, pages[0].PaddingRowCount)
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	_, err := ledger.Paginate(makeLines(3), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.Paginate(makeLines(3), -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaginate_PageIndexesAreSequential(t *testing.T) {
	pages, err := ledger.Paginate(makeLines(45), 12)
	require.NoError(t, err)
	require.Len(t, pages, 4)
	for i, p := range pages {
		assert.Equal(t, i, p.PageIndex)
		assert.Equal(t, 4, p.TotalPages)
	}
}
