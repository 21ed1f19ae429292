package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/franchisedesk/ledger-api/internal/application/billing"
	"github.com/franchisedesk/ledger-api/internal/application/dto"
)

// ShiftHandler serves the day-close endpoints.
type ShiftHandler struct {
	shiftUC *billing.ShiftUseCase
}

// NewShiftHandler builds the handler.
func NewShiftHandler(shiftUC *billing.ShiftUseCase) *ShiftHandler {
	return &ShiftHandler{shiftUC: shiftUC}
}

// Close records a day-close boundary. Rejected with 409 SHIFT_LOCKED while
// the previous close is under its 12-hour lock.
// POST /api/shift/close
func (h *ShiftHandler) Close(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	boundary, err := h.shiftUC.CloseShift(c.Context(), franchiseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(boundary)
}

// Status reports the shift state and current history window.
// GET /api/shift/status
func (h *ShiftHandler) Status(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	status, err := h.shiftUC.Status(c.Context(), franchiseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}
