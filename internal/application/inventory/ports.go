package inventory

import (
	"context"

	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: o todo lo que hace fn queda escrito, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// Notifier recibe cada mutación confirmada para los dashboards en tiempo real.
// La entrega es responsabilidad de la capa externa; el motor solo emite.
type Notifier interface {
	StockChanged(ctx context.Context, item *entity.InventoryItem, movement *entity.StockMovement, severity string)
}

// Policy políticas del motor (ver pkg/config.InventoryConfig).
type Policy struct {
	AllowNegativeAdjustment bool
}

// CreateDefaults atributos por defecto al crear insumos implícitamente
// durante una recepción o un traslado a sucursal sin registro.
type CreateDefaults struct {
	MinimumStock float64
	Unit         string
	Category     string
}
