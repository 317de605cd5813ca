package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/resto-inventario-api/internal/application/inventory"
	"github.com/jhoicas/resto-inventario-api/internal/application/purchasing"
	infraedi "github.com/jhoicas/resto-inventario-api/internal/infrastructure/edi"
	"github.com/jhoicas/resto-inventario-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/resto-inventario-api/internal/infrastructure/pdf"
	"github.com/jhoicas/resto-inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/resto-inventario-api/internal/interfaces/http"
	"github.com/jhoicas/resto-inventario-api/pkg/config"
	"github.com/jhoicas/resto-inventario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := notify.NewLogNotifier(log)
	defaults := inventory.CreateDefaults{
		MinimumStock: cfg.Inventory.DefaultMinimumStock,
		Unit:         cfg.Inventory.DefaultUnit,
		Category:     cfg.Inventory.DefaultCategory,
	}
	policy := inventory.Policy{
		AllowNegativeAdjustment: cfg.Inventory.AllowNegativeAdjustment,
	}

	itemUC := inventory.NewItemUseCase(itemRepo, defaults)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, itemRepo, movRepo, notifier, policy)
	transferUC := inventory.NewTransferUseCase(txRunner, notifier, defaults)
	consumptionUC := inventory.NewConsumptionUseCase(txRunner, itemRepo, notifier)
	receiptUC := inventory.NewReceiptUseCase(txRunner, notifier, defaults)
	reportingUC := inventory.NewReportingUseCase(itemRepo, cfg.Inventory.LowStockScanLimit)

	pdfGenerator := infrapdf.NewMarotoOrderGenerator()
	xmlExporter := infraedi.NewOrderXMLExporter()
	purchaseUC := purchasing.NewPurchaseOrderUseCase(
		txRunner, orderRepo, pdfGenerator, xmlExporter,
		defaults, cfg.Purchasing.ExpectedDeliveryDays,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Resto Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:        itemUC,
		LedgerUC:      ledgerUC,
		TransferUC:    transferUC,
		ConsumptionUC: consumptionUC,
		ReceiptUC:     receiptUC,
		ReportingUC:   reportingUC,
		PurchaseUC:    purchaseUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
