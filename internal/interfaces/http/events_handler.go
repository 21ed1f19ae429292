package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/franchisedesk/ledger-api/internal/application/billing"
	"github.com/franchisedesk/ledger-api/internal/application/dto"
)

var watchableTables = map[string]bool{
	"invoices":         true,
	"stock_items":      true,
	"shift_boundaries": true,
}

// EventsHandler exposes change notifications as a long-poll: clients wait
// on a table's channel and re-fetch the view when a change lands. Lost
// notifications are harmless — the next poll or periodic re-fetch catches up.
type EventsHandler struct {
	subscriber billing.ChangeSubscriber
}

// NewEventsHandler builds the handler.
func NewEventsHandler(subscriber billing.ChangeSubscriber) *EventsHandler {
	return &EventsHandler{subscriber: subscriber}
}

// Watch blocks until a change lands on the table's franchise channel or the
// wait expires (204 on timeout).
// GET /api/events/:table?wait=30
func (h *EventsHandler) Watch(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	table := c.Params("table")
	if !watchableTables[table] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown table"})
	}
	wait := c.QueryInt("wait", 30)
	if wait < 1 || wait > 60 {
		wait = 30
	}

	ctx, cancel := context.WithTimeout(c.Context(), time.Duration(wait)*time.Second)
	defer cancel()

	changed := false
	_ = h.subscriber.Subscribe(ctx, table, franchiseID, func() {
		changed = true
		cancel()
	})

	if !changed {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(fiber.Map{"table": table, "changed": true})
}
