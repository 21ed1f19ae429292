package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/franchisedesk/ledger-api/internal/application/billing"
	"github.com/franchisedesk/ledger-api/internal/infrastructure/notify"
	infrapdf "github.com/franchisedesk/ledger-api/internal/infrastructure/pdf"
	"github.com/franchisedesk/ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/franchisedesk/ledger-api/internal/interfaces/http"
	"github.com/franchisedesk/ledger-api/pkg/config"
	"github.com/franchisedesk/ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := notify.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to Redis")
	}
	defer func() { _ = redisClient.Close() }()
	notifier := notify.NewRedisNotifier(redisClient, log)

	stockRepo := postgres.NewStockItemRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	createInvoiceUC := billing.NewCreateInvoiceUseCase(txRunner, invoiceRepo, notifier)
	cancelInvoiceUC := billing.NewCancelInvoiceUseCase(invoiceRepo, notifier)
	shiftUC := billing.NewShiftUseCase(shiftRepo, invoiceRepo, notifier)
	stockUC := billing.NewStockUseCase(stockRepo, notifier)

	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator()
	printUC := billing.NewPrintUseCase(invoiceRepo, pdfGenerator, billing.PrintConfig{
		PageSizeA4:      cfg.Print.PageSizeA4,
		PageSizeCompact: cfg.Print.PageSizeCompact,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateInvoice: createInvoiceUC,
		CancelInvoice: cancelInvoiceUC,
		ShiftUC:       shiftUC,
		PrintUC:       printUC,
		StockUC:       stockUC,
		Subscriber:    notifier,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
