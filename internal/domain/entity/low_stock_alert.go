package entity

import "github.com/shopspring/decimal"

// Severidades de alerta de stock bajo.
const (
	SeverityCritical = "CRITICAL" // stock en cero
	SeverityWarning  = "WARNING"  // stock en o por debajo del mínimo
)

// LowStockAlert es una alerta derivada del estado actual; no se persiste.
type LowStockAlert struct {
	ItemID       string
	ItemName     string
	OutletID     string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	Unit         string
	Severity     string
	Message      string
}

// AlertSeverity deriva la severidad para un insumo: CRITICAL si está agotado,
// WARNING si está en o por debajo del mínimo, cadena vacía si está normal.
func AlertSeverity(item *InventoryItem) string {
	switch {
	case item.IsOutOfStock():
		return SeverityCritical
	case item.IsLowStock():
		return SeverityWarning
	default:
		return ""
	}
}
