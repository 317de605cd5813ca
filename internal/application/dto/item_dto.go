package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	OutletID     string           `json:"outlet_id"`
	Name         string           `json:"name"`
	Category     string           `json:"category,omitempty"`
	Unit         string           `json:"unit,omitempty"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
	MinimumStock decimal.Decimal  `json:"minimum_stock"`
	MaximumStock *decimal.Decimal `json:"maximum_stock,omitempty"`
	UnitCost     decimal.Decimal  `json:"unit_cost"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id. Solo atributos descriptivos;
// el stock se muta únicamente a través del libro de movimientos.
type UpdateItemRequest struct {
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	MinimumStock *decimal.Decimal `json:"minimum_stock,omitempty"`
	MaximumStock *decimal.Decimal `json:"maximum_stock,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
}

// ItemDTO representación de un insumo en respuestas.
type ItemDTO struct {
	ID            string           `json:"id"`
	OutletID      string           `json:"outlet_id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Unit          string           `json:"unit"`
	CurrentStock  decimal.Decimal  `json:"current_stock"`
	MinimumStock  decimal.Decimal  `json:"minimum_stock"`
	MaximumStock  *decimal.Decimal `json:"maximum_stock,omitempty"`
	UnitCost      decimal.Decimal  `json:"unit_cost"`
	SupplierID    *string          `json:"supplier_id,omitempty"`
	LastRestocked *time.Time       `json:"last_restocked,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ListItemsRequest query params para GET /api/items.
type ListItemsRequest struct {
	OutletID     string `query:"outlet_id"`
	Category     string `query:"category"`
	Search       string `query:"search"`
	LowStockOnly bool   `query:"low_stock_only"`
	PageRequest
}

// BulkImportRequest body para POST /api/items/bulk-import.
type BulkImportRequest struct {
	Items []CreateItemRequest `json:"items"`
}

// BulkImportError identifica el renglón fallido y su causa.
type BulkImportError struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error"`
}

// BulkImportResult manifiesto best-effort del import masivo.
type BulkImportResult struct {
	Total      int               `json:"total"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Created    []ItemDTO         `json:"created"`
	Errors     []BulkImportError `json:"errors"`
}

// StatisticsDTO agregados de inventario para el dashboard.
type StatisticsDTO struct {
	OutletID        string          `json:"outlet_id,omitempty"`
	ItemCount       int             `json:"item_count"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
}
