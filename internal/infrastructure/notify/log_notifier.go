// Package notify publica los cambios de stock confirmados hacia los
// dashboards. Esta implementación los emite como eventos estructurados;
// un consumidor externo (tail del log, colector) los reenvía en tiempo real.
package notify

import (
	"context"

	"github.com/jhoicas/resto-inventario-api/internal/application/inventory"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/pkg/logger"
)

var _ inventory.Notifier = (*LogNotifier)(nil)

// LogNotifier emite cada mutación de stock como evento estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// StockChanged emite el evento. Nunca falla ni bloquea al motor: la mutación
// ya fue confirmada en BD cuando llega aquí.
func (n *LogNotifier) StockChanged(_ context.Context, item *entity.InventoryItem, movement *entity.StockMovement, severity string) {
	ev := n.log.Info()
	if severity == entity.SeverityCritical {
		ev = n.log.Warn()
	}
	ev.
		Str("event", "stock_changed").
		Str("tenant_id", item.TenantID).
		Str("outlet_id", item.OutletID).
		Str("item_id", item.ID).
		Str("item_name", item.Name).
		Str("movement_type", movement.Type).
		Str("quantity", movement.Quantity.String()).
		Str("new_stock", item.CurrentStock.String()).
		Str("severity", severity).
		Msg("cambio de stock confirmado")
}
