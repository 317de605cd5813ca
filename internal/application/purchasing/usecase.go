package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-inventario-api/internal/application/dto"
	appinventory "github.com/jhoicas/resto-inventario-api/internal/application/inventory"
	"github.com/jhoicas/resto-inventario-api/internal/domain"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
	"github.com/jhoicas/resto-inventario-api/pkg/normalize"
)

// PurchaseOrderUseCase genera y gestiona órdenes de compra a proveedor.
// La generación es una derivación pura de los renglones solicitados; el
// agregado se persiste con su máquina de estados y al recibirse alimenta el
// inventario por la misma vía auditada que una recepción manual.
type PurchaseOrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.PurchaseOrderRepository
	pdfGen       OrderPDFGenerator
	xmlExporter  OrderXMLExporter
	defaults     appinventory.CreateDefaults
	deliveryDays int
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	pdfGen OrderPDFGenerator,
	xmlExporter OrderXMLExporter,
	defaults appinventory.CreateDefaults,
	deliveryDays int,
) *PurchaseOrderUseCase {
	if deliveryDays <= 0 {
		deliveryDays = 7
	}
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		pdfGen:       pdfGen,
		xmlExporter:  xmlExporter,
		defaults:     defaults,
		deliveryDays: deliveryDays,
	}
}

// GeneratePurchaseOrder deriva la orden: total por renglón, folio generado,
// estado PENDING y entrega esperada a deliveryDays días. Se persiste.
func (uc *PurchaseOrderUseCase) GeneratePurchaseOrder(ctx context.Context, tenantID, userID string, in dto.GenerateOrderRequest) (*entity.PurchaseOrder, error) {
	if in.OutletID == "" || in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	orderID := uuid.New().String()
	total := decimal.Zero
	lines := make([]entity.PurchaseOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.ItemName == "" || !l.Quantity.IsPositive() || l.EstimatedUnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		lineTotal := l.Quantity.Mul(l.EstimatedUnitCost)
		total = total.Add(lineTotal)
		lines = append(lines, entity.PurchaseOrderLine{
			ID:                uuid.New().String(),
			OrderID:           orderID,
			ItemName:          l.ItemName,
			Quantity:          l.Quantity,
			Unit:              l.Unit,
			EstimatedUnitCost: l.EstimatedUnitCost,
			TotalCost:         lineTotal,
		})
	}

	order := &entity.PurchaseOrder{
		ID:               orderID,
		TenantID:         tenantID,
		OutletID:         in.OutletID,
		SupplierID:       in.SupplierID,
		OrderNumber:      newOrderNumber(now),
		Status:           entity.OrderStatusPending,
		Lines:            lines,
		TotalCost:        total,
		Notes:            in.Notes,
		ExpectedDelivery: now.AddDate(0, 0, uc.deliveryDays),
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        userID,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// newOrderNumber genera el folio: OC-YYYYMMDD-XXXXXXXX.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("OC-%s-%s", now.Format("20060102"), suffix)
}

// GetOrder obtiene la orden verificando pertenencia al tenant.
func (uc *PurchaseOrderUseCase) GetOrder(ctx context.Context, tenantID, id string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// ListOrders lista órdenes del tenant con filtros.
func (uc *PurchaseOrderUseCase) ListOrders(ctx context.Context, tenantID, outletID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.List(tenantID, outletID, status, limit, offset)
}

// UpdateOrderStatus aplica una transición simple (APPROVED, ORDERED, CANCELLED).
// RECEIVED no pasa por aquí: recibir muta inventario, ver ReceiveOrder.
func (uc *PurchaseOrderUseCase) UpdateOrderStatus(ctx context.Context, tenantID, id, to string) (*entity.PurchaseOrder, error) {
	if to == entity.OrderStatusReceived {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.GetOrder(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := order.Transition(to, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.UpdateStatus(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ReceiveOrder marca la orden como RECEIVED e ingresa la mercancía al
// inventario en la misma transacción: cada renglón incrementa (o crea) el
// insumo y escribe un movimiento IN referenciando el folio de la orden.
func (uc *PurchaseOrderUseCase) ReceiveOrder(ctx context.Context, tenantID, userID, id string) (*entity.PurchaseOrder, error) {
	var received *entity.PurchaseOrder

	err := uc.txRunner.RunPurchasing(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.TenantID != tenantID {
			return domain.ErrForbidden
		}
		now := time.Now()
		if err := order.Transition(entity.OrderStatusReceived, now); err != nil {
			return err
		}
		if err := orderRepo.UpdateStatus(order); err != nil {
			return err
		}

		txID := uuid.New().String()
		for _, line := range order.Lines {
			nameKey := normalize.ItemName(line.ItemName)
			item, err := itemRepo.GetByNameForUpdate(tenantID, order.OutletID, nameKey)
			if err != nil {
				return err
			}
			var previous decimal.Decimal
			var updated *entity.InventoryItem
			if item == nil {
				unit := line.Unit
				if unit == "" {
					unit = uc.defaults.Unit
				}
				item = &entity.InventoryItem{
					ID:            uuid.New().String(),
					TenantID:      tenantID,
					OutletID:      order.OutletID,
					Name:          line.ItemName,
					NameKey:       nameKey,
					Category:      uc.defaults.Category,
					Unit:          unit,
					CurrentStock:  line.Quantity,
					MinimumStock:  decimal.NewFromFloat(uc.defaults.MinimumStock),
					UnitCost:      line.EstimatedUnitCost,
					SupplierID:    &order.SupplierID,
					LastRestocked: &now,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				if err := itemRepo.Create(item); err != nil {
					return err
				}
				updated = item
			} else {
				previous = item.CurrentStock
				item.UnitCost = line.EstimatedUnitCost
				item.SupplierID = &order.SupplierID
				item.LastRestocked = &now
				item.UpdatedAt = now
				if err := itemRepo.Update(item); err != nil {
					return err
				}
				updated, err = itemRepo.AddStock(item.ID, line.Quantity, now)
				if err != nil {
					return err
				}
			}
			mov := &entity.StockMovement{
				TransactionID: txID,
				ItemID:        updated.ID,
				TenantID:      tenantID,
				OutletID:      order.OutletID,
				Type:          entity.MovementTypeIN,
				Quantity:      line.Quantity,
				PreviousStock: previous,
				NewStock:      updated.CurrentStock,
				Reason:        "recepción de orden de compra",
				Reference:     order.OrderNumber,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		received = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

// ExportOrderPDF genera el PDF de la orden.
func (uc *PurchaseOrderUseCase) ExportOrderPDF(ctx context.Context, tenantID, id string) ([]byte, error) {
	order, err := uc.GetOrder(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateOrderPDF(ctx, order)
}

// ExportOrderXML genera el documento XML de la orden para el proveedor.
func (uc *PurchaseOrderUseCase) ExportOrderXML(ctx context.Context, tenantID, id string) ([]byte, error) {
	order, err := uc.GetOrder(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return uc.xmlExporter.ExportOrderXML(order)
}

// ToOrderDTO mapea el agregado al DTO de respuesta.
func ToOrderDTO(order *entity.PurchaseOrder) dto.OrderDTO {
	lines := make([]dto.OrderLineDTO, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, dto.OrderLineDTO{
			ItemName:          l.ItemName,
			Quantity:          l.Quantity,
			Unit:              l.Unit,
			EstimatedUnitCost: l.EstimatedUnitCost,
			TotalCost:         l.TotalCost,
		})
	}
	return dto.OrderDTO{
		ID:               order.ID,
		OutletID:         order.OutletID,
		SupplierID:       order.SupplierID,
		OrderNumber:      order.OrderNumber,
		Status:           order.Status,
		Lines:            lines,
		TotalCost:        order.TotalCost,
		Notes:            order.Notes,
		ExpectedDelivery: order.ExpectedDelivery,
		CreatedAt:        order.CreatedAt,
	}
}
