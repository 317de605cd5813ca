package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida comunes en cocina.
const (
	UnitKilogram = "kg"
	UnitGram     = "g"
	UnitLiter    = "l"
	UnitMiliLiter = "ml"
	UnitPiece    = "pz"
)

// Categorías de insumo.
const (
	CategoryProtein   = "proteina"
	CategoryProduce   = "verduras"
	CategoryDairy     = "lacteos"
	CategoryDryGoods  = "secos"
	CategoryBeverages = "bebidas"
	CategoryGeneral   = "general"
)

// InventoryItem representa el stock de un insumo en una sucursal.
// La identidad lógica es (TenantID, OutletID, NameKey); NameKey es el nombre
// normalizado (ver pkg/normalize) para que "Café" y "cafe" sean el mismo insumo.
// Invariante: CurrentStock nunca es negativo.
type InventoryItem struct {
	ID            string
	TenantID      string
	OutletID      string
	Name          string
	NameKey       string
	Category      string
	Unit          string
	CurrentStock  decimal.Decimal
	MinimumStock  decimal.Decimal
	MaximumStock  *decimal.Decimal
	UnitCost      decimal.Decimal
	SupplierID    *string
	LastRestocked *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOutOfStock indica si el insumo está agotado.
func (i *InventoryItem) IsOutOfStock() bool {
	return i.CurrentStock.LessThanOrEqual(decimal.Zero)
}

// IsLowStock indica si el insumo está en o por debajo del mínimo.
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinimumStock)
}

// StockValue devuelve el valor del stock actual al costo unitario vigente.
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.CurrentStock.Mul(i.UnitCost)
}
