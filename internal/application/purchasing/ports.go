package purchasing

import (
	"context"

	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
)

// TxRunner transacción que abarca inventario y órdenes: recibir una orden
// muta stock, libro y estado de la orden en una sola unidad atómica.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// OrderPDFGenerator render de la orden de compra para imprimir/enviar.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.PurchaseOrder) ([]byte, error)
}

// OrderXMLExporter documento XML de la orden para intercambio con proveedores.
type OrderXMLExporter interface {
	ExportOrderXML(order *entity.PurchaseOrder) ([]byte, error)
}
