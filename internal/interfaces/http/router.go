package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/franchisedesk/ledger-api/internal/application/billing"
)

// RouterDeps holds the dependencies for the router.
type RouterDeps struct {
	CreateInvoice *billing.CreateInvoiceUseCase
	CancelInvoice *billing.CancelInvoiceUseCase
	ShiftUC       *billing.ShiftUseCase
	PrintUC       *billing.PrintUseCase
	StockUC       *billing.StockUseCase
	Subscriber    billing.ChangeSubscriber
	JWTSecret     string
}

// Router registers the API routes. All billing routes require a Bearer
// token; catalogue writes need franchise-level access and the day-close
// belongs to the store console.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.CancelInvoice, deps.ShiftUC, deps.PrintUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", invoiceHandler.Cancel)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Get("/:id/print", invoiceHandler.Print)
	invoices.Get("/:id/pages", invoiceHandler.Pages)

	// Stock catalogue
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Post("/", RequireRole("franchise", "central"), stockHandler.Create)
	stock.Get("/", stockHandler.List)
	stock.Get("/low", stockHandler.LowStock)
	stock.Get("/:id", stockHandler.GetByID)

	// Shift boundary
	shift := protected.Group("/shift")
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shift.Post("/close", RequireRole("store", "franchise"), shiftHandler.Close)
	shift.Get("/status", shiftHandler.Status)

	// Realtime refresh (long-poll)
	eventsHandler := NewEventsHandler(deps.Subscriber)
	protected.Get("/events/:table", eventsHandler.Watch)
}
