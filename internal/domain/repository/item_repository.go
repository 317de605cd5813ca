package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
)

// ItemFilter filtros para listar insumos.
type ItemFilter struct {
	TenantID     string
	OutletID     string // vacío = todas las sucursales del tenant
	Category     string
	Search       string // búsqueda por nombre (ILIKE)
	LowStockOnly bool
	Limit        int
	Offset       int
}

// StockStats agregados de inventario para el dashboard.
type StockStats struct {
	ItemCount       int
	TotalStockValue decimal.Decimal // sum(current_stock * unit_cost)
	LowStockCount   int             // 0 < stock <= mínimo
	OutOfStockCount int
}

// ItemRepository puerto de persistencia para insumos de inventario.
// Los métodos *ForUpdate bloquean la fila (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción del TxRunner.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetByIDForUpdate(id string) (*entity.InventoryItem, error)
	GetByName(tenantID, outletID, nameKey string) (*entity.InventoryItem, error)
	GetByNameForUpdate(tenantID, outletID, nameKey string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	Delete(tenantID, id string) error
	List(filter ItemFilter) ([]*entity.InventoryItem, int, error)

	// DecrementStock resta qty en una sola sentencia condicionada a que el
	// resultado quede >= 0 y devuelve la fila actualizada; ErrInsufficientStock
	// si la guarda no se cumple. Es la única vía de salida de stock.
	DecrementStock(id string, qty decimal.Decimal) (*entity.InventoryItem, error)

	// AddStock suma qty (qty > 0) y refresca last_restocked.
	AddStock(id string, qty decimal.Decimal, restockedAt time.Time) (*entity.InventoryItem, error)

	Stats(tenantID, outletID string) (*StockStats, error)
}
