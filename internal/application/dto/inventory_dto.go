package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateStockRequest body para POST /api/inventory/stock.
// type ∈ {IN, OUT, ADJUSTMENT}; para ADJUSTMENT quantity es el valor absoluto a fijar.
type UpdateStockRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Type      string          `json:"type"`
	Reason    string          `json:"reason,omitempty"`
	Reference string          `json:"reference,omitempty"`
}

// MovementDTO entrada del libro de movimientos en respuestas.
type MovementDTO struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ItemID        string          `json:"item_id"`
	OutletID      string          `json:"outlet_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reason        string          `json:"reason,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// ListMovementsRequest query params para GET /api/inventory/movements.
type ListMovementsRequest struct {
	ItemID   string     `query:"item_id"`
	OutletID string     `query:"outlet_id"`
	From     *time.Time `query:"from"`
	To       *time.Time `query:"to"`
	PageRequest
}

// ReceiptLineRequest un renglón de recepción de mercancía.
type ReceiptLineRequest struct {
	ItemName   string           `json:"item_name"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	ExpiryDate *time.Time       `json:"expiry_date,omitempty"`
}

// ProcessReceiptRequest body para POST /api/inventory/receipts.
type ProcessReceiptRequest struct {
	OutletID      string               `json:"outlet_id"`
	SupplierID    *string              `json:"supplier_id,omitempty"`
	ReceiptNumber string               `json:"receipt_number"`
	Lines         []ReceiptLineRequest `json:"lines"`
	Notes         string               `json:"notes,omitempty"`
}

// ReceiptLineResult resultado de un renglón aplicado.
type ReceiptLineResult struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	NewStock decimal.Decimal `json:"new_stock"`
	Created  bool            `json:"created"` // el insumo no existía y se creó
}

// ReceiptLineError renglón rechazado con su causa.
type ReceiptLineError struct {
	Index    int    `json:"index"`
	ItemName string `json:"item_name,omitempty"`
	Error    string `json:"error"`
}

// ReceiptResult manifiesto best-effort de la recepción.
type ReceiptResult struct {
	ReceiptNumber  string              `json:"receipt_number"`
	ProcessedItems []ReceiptLineResult `json:"processed_items"`
	Errors         []ReceiptLineError  `json:"errors"`
	TotalValue     decimal.Decimal     `json:"total_value"` // sum(quantity * unit_cost) de lo aplicado
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ItemName     string          `json:"item_name"`
	FromOutletID string          `json:"from_outlet_id"`
	ToOutletID   string          `json:"to_outlet_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason,omitempty"`
}

// TransferResult snapshots resultantes de un traslado.
type TransferResult struct {
	ItemName         string          `json:"item_name"`
	FromOutletID     string          `json:"from_outlet_id"`
	ToOutletID       string          `json:"to_outlet_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	SourceStock      decimal.Decimal `json:"source_stock"`
	DestinationStock decimal.Decimal `json:"destination_stock"`
	DestinationNew   bool            `json:"destination_created"`
	TransferredAt    time.Time       `json:"transferred_at"`
}

// IngredientRequirement un ingrediente de la receta con su cantidad por unidad.
type IngredientRequirement struct {
	Name            string          `json:"name"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// ConsumeRecipeRequest body para POST /api/inventory/consumption.
type ConsumeRecipeRequest struct {
	OutletID    string                  `json:"outlet_id"`
	RecipeID    string                  `json:"recipe_id,omitempty"`
	RecipeName  string                  `json:"recipe_name"`
	Quantity    int64                   `json:"quantity"` // multiplicador, >= 1
	Ingredients []IngredientRequirement `json:"ingredients"`
}

// ShortageDTO faltante detectado en la fase de validación.
type ShortageDTO struct {
	ItemName  string          `json:"item_name"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
	Shortage  decimal.Decimal `json:"shortage"`
}

// ConsumedItemDTO ingrediente descontado en el commit.
type ConsumedItemDTO struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Consumed decimal.Decimal `json:"consumed"`
	NewStock decimal.Decimal `json:"new_stock"`
}

// ConsumptionResult resultado todo-o-nada del consumo de receta.
type ConsumptionResult struct {
	RecipeName string            `json:"recipe_name"`
	Applied    bool              `json:"applied"`
	Consumed   []ConsumedItemDTO `json:"consumed,omitempty"`
	Shortages  []ShortageDTO     `json:"shortages,omitempty"`
}

// LowStockAlertDTO alerta derivada para el dashboard.
type LowStockAlertDTO struct {
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	OutletID     string          `json:"outlet_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Unit         string          `json:"unit"`
	Severity     string          `json:"severity"`
	Message      string          `json:"message"`
}
