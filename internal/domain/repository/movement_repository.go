package repository

import (
	"time"

	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
)

// MovementRepository puerto del libro de movimientos. Solo inserta y lista:
// las entradas son inmutables una vez escritas.
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByOutlet(tenantID, outletID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
