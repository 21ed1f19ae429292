package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/franchisedesk/ledger-api/internal/application/billing"
	"github.com/franchisedesk/ledger-api/internal/application/dto"
)

// StockHandler serves the stock catalogue endpoints.
type StockHandler struct {
	stockUC *billing.StockUseCase
}

// NewStockHandler builds the handler.
func NewStockHandler(stockUC *billing.StockUseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC}
}

// Create registers a stock item.
// POST /api/stock
func (h *StockHandler) Create(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	item, err := h.stockUC.Create(c.Context(), franchiseID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List returns the franchise's full catalogue.
// GET /api/stock
func (h *StockHandler) List(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	items, err := h.stockUC.List(c.Context(), franchiseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// LowStock returns items at or below their reorder threshold.
// GET /api/stock/low
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	items, err := h.stockUC.LowStock(c.Context(), franchiseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// GetByID returns one stock item.
// GET /api/stock/:id
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	item, err := h.stockUC.Get(c.Context(), franchiseID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}
