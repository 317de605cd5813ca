package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest un renglón de la orden de compra.
type OrderLineRequest struct {
	ItemName          string          `json:"item_name"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit,omitempty"`
	EstimatedUnitCost decimal.Decimal `json:"estimated_unit_cost"`
}

// GenerateOrderRequest body para POST /api/purchase-orders.
type GenerateOrderRequest struct {
	OutletID   string             `json:"outlet_id"`
	SupplierID string             `json:"supplier_id"`
	Lines      []OrderLineRequest `json:"lines"`
	Notes      string             `json:"notes,omitempty"`
}

// OrderLineDTO renglón en respuestas.
type OrderLineDTO struct {
	ItemName          string          `json:"item_name"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit,omitempty"`
	EstimatedUnitCost decimal.Decimal `json:"estimated_unit_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
}

// OrderDTO orden de compra en respuestas.
type OrderDTO struct {
	ID               string          `json:"id"`
	OutletID         string          `json:"outlet_id"`
	SupplierID       string          `json:"supplier_id"`
	OrderNumber      string          `json:"order_number"`
	Status           string          `json:"status"`
	Lines            []OrderLineDTO  `json:"lines"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	Notes            string          `json:"notes,omitempty"`
	ExpectedDelivery time.Time       `json:"expected_delivery"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ListOrdersRequest query params para GET /api/purchase-orders.
type ListOrdersRequest struct {
	OutletID string `query:"outlet_id"`
	Status   string `query:"status"`
	PageRequest
}
