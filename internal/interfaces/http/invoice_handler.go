package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/franchisedesk/ledger-api/internal/application/billing"
	"github.com/franchisedesk/ledger-api/internal/application/dto"
)

// InvoiceHandler serves the billing endpoints (protected).
type InvoiceHandler struct {
	createUC *billing.CreateInvoiceUseCase
	cancelUC *billing.CancelInvoiceUseCase
	shiftUC  *billing.ShiftUseCase
	printUC  *billing.PrintUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(
	createUC *billing.CreateInvoiceUseCase,
	cancelUC *billing.CancelInvoiceUseCase,
	shiftUC *billing.ShiftUseCase,
	printUC *billing.PrintUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{createUC: createUC, cancelUC: cancelUC, shiftUC: shiftUC, printUC: printUC}
}

// Create bills an order and deducts stock in one transaction.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	invoice, err := h.createUC.CreateInvoice(c.Context(), franchiseID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetByID returns a full invoice with its lines.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	invoice, err := h.createUC.GetInvoice(c.Context(), franchiseID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// List returns the current shift's invoices, or an explicit range when
// from/to query params are given (RFC3339).
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: expected RFC3339"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: expected RFC3339"})
		}
		to = &t
	}
	invoices, err := h.shiftUC.ListInvoices(c.Context(), franchiseID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}

// Cancel hard-deletes an order while its 5-minute window is open.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	if err := h.cancelUC.Cancel(c.Context(), franchiseID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus moves the invoice status forward.
// PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.cancelUC.UpdateStatus(c.Context(), franchiseID, c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Print renders the invoice PDF for the requested template (a4|compact).
// GET /api/invoices/:id/print?template=a4
func (h *InvoiceHandler) Print(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	pdfBytes, err := h.printUC.RenderPDF(c.Context(), franchiseID, c.Params("id"), c.Query("template"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// Pages returns the print pages as JSON for renderers that lay out their
// own markup.
// GET /api/invoices/:id/pages?template=compact
func (h *InvoiceHandler) Pages(c *fiber.Ctx) error {
	franchiseID := GetFranchiseID(c)
	if franchiseID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	doc, err := h.printUC.BuildPrintable(c.Context(), franchiseID, c.Params("id"), c.Query("template"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"invoice_id":     doc.Invoice.ID,
		"invoice_number": doc.Invoice.InvoiceNumber,
		"amount_words":   doc.AmountWords,
		"pages":          doc.Pages,
	})
}
