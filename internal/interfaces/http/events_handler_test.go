package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/franchisedesk/ledger-api/internal/interfaces/http"
)

// stubSubscriber fires onChange immediately when firing is set, otherwise
// just waits out the context like an idle channel.
type stubSubscriber struct {
	firing bool
	table  string
}

func (s *stubSubscriber) Subscribe(ctx context.Context, table, franchiseID string, onChange func()) error {
	s.table = table
	if s.firing {
		onChange()
	}
	<-ctx.Done()
	return ctx.Err()
}

func eventsApp(sub *stubSubscriber) *fiber.App {
	app := fiber.New()
	handler := apphttp.NewEventsHandler(sub)
	app.Get("/api/events/:table", apphttp.AuthMiddleware(testJWTSecret), handler.Watch)
	return app
}

func TestEventsWatch_ReturnsOnChange(t *testing.T) {
	sub := &stubSubscriber{firing: true}
	app := eventsApp(sub)

	req := httptest.NewRequest(http.MethodGet, "/api/events/invoices?wait=5", nil)
	req.Header.Set("Authorization", tokenForRole(t, "store"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "invoices", sub.table)
}

func TestEventsWatch_TimesOutWithNoContent(t *testing.T) {
	app := eventsApp(&stubSubscriber{})

	req := httptest.NewRequest(http.MethodGet, "/api/events/stock_items?wait=1", nil)
	req.Header.Set("Authorization", tokenForRole(t, "store"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestEventsWatch_UnknownTableRejected(t *testing.T) {
	app := eventsApp(&stubSubscriber{})

	req := httptest.NewRequest(http.MethodGet, "/api/events/users", nil)
	req.Header.Set("Authorization", tokenForRole(t, "store"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
