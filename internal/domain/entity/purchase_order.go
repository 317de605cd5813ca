package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-inventario-api/internal/domain"
)

// Estados de una orden de compra.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusApproved  = "APPROVED"
	OrderStatusOrdered   = "ORDERED"
	OrderStatusReceived  = "RECEIVED"
	OrderStatusCancelled = "CANCELLED"
)

// orderTransitions define la máquina de estados:
// PENDING → APPROVED → ORDERED → RECEIVED, con CANCELLED alcanzable
// desde cualquier estado no terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:  {OrderStatusApproved, OrderStatusCancelled},
	OrderStatusApproved: {OrderStatusOrdered, OrderStatusCancelled},
	OrderStatusOrdered:  {OrderStatusReceived, OrderStatusCancelled},
}

// PurchaseOrderLine es un renglón de la orden.
type PurchaseOrderLine struct {
	ID                string
	OrderID           string
	ItemName          string
	Quantity          decimal.Decimal
	Unit              string
	EstimatedUnitCost decimal.Decimal
	TotalCost         decimal.Decimal // Quantity * EstimatedUnitCost
}

// PurchaseOrder es el agregado de orden de compra a proveedor.
type PurchaseOrder struct {
	ID               string
	TenantID         string
	OutletID         string
	SupplierID       string
	OrderNumber      string
	Status           string
	Lines            []PurchaseOrderLine
	TotalCost        decimal.Decimal
	Notes            string
	ExpectedDelivery time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CreatedBy        string
}

// CanTransition indica si el cambio de estado es legal.
func (o *PurchaseOrder) CanTransition(to string) bool {
	for _, s := range orderTransitions[o.Status] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition aplica el cambio de estado o devuelve ErrConflict si es ilegal.
func (o *PurchaseOrder) Transition(to string, at time.Time) error {
	if !o.CanTransition(to) {
		return domain.ErrConflict
	}
	o.Status = to
	o.UpdatedAt = at
	return nil
}
