package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario-api/internal/application/inventory"
	"github.com/jhoicas/resto-inventario-api/internal/application/purchasing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC        *inventory.ItemUseCase
	LedgerUC      *inventory.LedgerUseCase
	TransferUC    *inventory.TransferUseCase
	ConsumptionUC *inventory.ConsumptionUseCase
	ReceiptUC     *inventory.ReceiptUseCase
	ReportingUC   *inventory.ReportingUseCase
	PurchaseUC    *purchasing.PurchaseOrderUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todas las rutas del dominio requieren
// Bearer Token; el tenant sale del token, nunca de la petición.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Insumos (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Post("/bulk-import", itemHandler.BulkImport)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", RequireRole("admin", "gerente"), itemHandler.Delete)

	// Motor de inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.TransferUC, deps.ConsumptionUC, deps.ReceiptUC)
	invGroup.Post("/stock", inventoryHandler.UpdateStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/receipts", inventoryHandler.ProcessReceipt)
	invGroup.Post("/transfers", RequireRole("admin", "gerente"), inventoryHandler.Transfer)
	invGroup.Post("/consumption", inventoryHandler.ConsumeRecipe)
	invGroup.Post("/validate", inventoryHandler.ValidateStock)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportingUC)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/statistics", reportHandler.Statistics)

	// Órdenes de compra (protegido)
	orders := protected.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	orders.Post("/", RequireRole("admin", "gerente"), orderHandler.Generate)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", RequireRole("admin", "gerente"), orderHandler.UpdateStatus)
	orders.Post("/:id/receive", RequireRole("admin", "gerente"), orderHandler.Receive)
	orders.Get("/:id/pdf", orderHandler.ExportPDF)
	orders.Get("/:id/xml", orderHandler.ExportXML)
}
