package repository

import (
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	List(tenantID, outletID, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(order *entity.PurchaseOrder) error
}
