package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN          = "IN"           // entrada (recepción de mercancía)
	MovementTypeOUT         = "OUT"          // salida (consumo, merma)
	MovementTypeADJUSTMENT  = "ADJUSTMENT"   // ajuste absoluto (conteo físico)
	MovementTypeTRANSFEROUT = "TRANSFER_OUT" // salida por traslado entre sucursales
	MovementTypeTRANSFERIN  = "TRANSFER_IN"  // entrada por traslado entre sucursales
)

// StockMovement es una entrada del libro de movimientos (append-only).
// Registra cada mutación de stock con el antes y el después; una vez escrita
// nunca se modifica ni se borra: es la pista de auditoría del inventario.
type StockMovement struct {
	ID            string
	TransactionID string // agrupa las entradas de una misma operación (ej. traslado, receta)
	ItemID        string
	TenantID      string
	OutletID      string
	Type          string
	Quantity      decimal.Decimal // con signo: positivo entra, negativo sale
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reason        string
	Reference     string // folio de recepción, orden, receta, etc.
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
