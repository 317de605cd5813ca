package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-inventario-api/internal/application/dto"
	"github.com/jhoicas/resto-inventario-api/internal/domain"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
	"github.com/jhoicas/resto-inventario-api/pkg/normalize"
)

// ReceiptUseCase ingesta recepciones de proveedor. Semántica best-effort:
// cada renglón se evalúa y aplica de forma independiente; un renglón inválido
// queda en el manifiesto de errores sin abortar a sus hermanos. Contraste
// deliberado con traslados y recetas, que son todo-o-nada.
type ReceiptUseCase struct {
	txRunner TxRunner
	notifier Notifier
	defaults CreateDefaults
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(txRunner TxRunner, notifier Notifier, defaults CreateDefaults) *ReceiptUseCase {
	return &ReceiptUseCase{txRunner: txRunner, notifier: notifier, defaults: defaults}
}

// ReceiptInput entrada para procesar una recepción.
type ReceiptInput struct {
	TenantID      string
	UserID        string
	OutletID      string
	SupplierID    *string
	ReceiptNumber string
	Notes         string
	Lines         []dto.ReceiptLineRequest
}

// ProcessStockReceipt aplica la recepción renglón por renglón. Si el insumo
// existe se incrementa su stock y el costo unitario se sobreescribe con el
// último costo recibido (last-cost-wins); si no existe se crea con los
// defaults configurados. Cada renglón corre en su propia transacción.
func (uc *ReceiptUseCase) ProcessStockReceipt(ctx context.Context, input ReceiptInput) (*dto.ReceiptResult, error) {
	if input.OutletID == "" || input.ReceiptNumber == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	result := &dto.ReceiptResult{
		ReceiptNumber: input.ReceiptNumber,
		TotalValue:    decimal.Zero,
	}

	for i, line := range input.Lines {
		lineResult, item, mov, err := uc.processLine(ctx, input, line)
		if err != nil {
			result.Errors = append(result.Errors, dto.ReceiptLineError{
				Index:    i,
				ItemName: line.ItemName,
				Error:    err.Error(),
			})
			continue
		}
		result.ProcessedItems = append(result.ProcessedItems, *lineResult)
		if line.UnitCost != nil {
			result.TotalValue = result.TotalValue.Add(line.Quantity.Mul(*line.UnitCost))
		} else {
			result.TotalValue = result.TotalValue.Add(line.Quantity.Mul(item.UnitCost))
		}
		if uc.notifier != nil {
			uc.notifier.StockChanged(ctx, item, mov, entity.AlertSeverity(item))
		}
	}
	return result, nil
}

// processLine aplica un renglón en su propia transacción.
func (uc *ReceiptUseCase) processLine(
	ctx context.Context,
	input ReceiptInput,
	line dto.ReceiptLineRequest,
) (*dto.ReceiptLineResult, *entity.InventoryItem, *entity.StockMovement, error) {
	if line.ItemName == "" {
		return nil, nil, nil, domain.ErrInvalidInput
	}
	if !line.Quantity.IsPositive() {
		return nil, nil, nil, domain.ErrInvalidInput
	}
	if line.UnitCost != nil && line.UnitCost.IsNegative() {
		return nil, nil, nil, domain.ErrInvalidInput
	}

	nameKey := normalize.ItemName(line.ItemName)
	now := time.Now()
	var lineResult *dto.ReceiptLineResult
	var updated *entity.InventoryItem
	var mov *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetByNameForUpdate(input.TenantID, input.OutletID, nameKey)
		if err != nil {
			return err
		}

		var previous decimal.Decimal
		created := false
		if item == nil {
			// Creación implícita con defaults configurados.
			unitCost := decimal.Zero
			if line.UnitCost != nil {
				unitCost = *line.UnitCost
			}
			item = &entity.InventoryItem{
				ID:            uuid.New().String(),
				TenantID:      input.TenantID,
				OutletID:      input.OutletID,
				Name:          line.ItemName,
				NameKey:       nameKey,
				Category:      uc.defaults.Category,
				Unit:          uc.defaults.Unit,
				CurrentStock:  line.Quantity,
				MinimumStock:  decimal.NewFromFloat(uc.defaults.MinimumStock),
				UnitCost:      unitCost,
				SupplierID:    input.SupplierID,
				LastRestocked: &now,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := itemRepo.Create(item); err != nil {
				return err
			}
			updated = item
			created = true
		} else {
			previous = item.CurrentStock
			// last-cost-wins: el último costo recibido sobreescribe el vigente.
			if line.UnitCost != nil {
				item.UnitCost = *line.UnitCost
			}
			if input.SupplierID != nil {
				item.SupplierID = input.SupplierID
			}
			item.LastRestocked = &now
			item.UpdatedAt = now
			if err := itemRepo.Update(item); err != nil {
				return err
			}
			updated, err = itemRepo.AddStock(item.ID, line.Quantity, now)
			if err != nil {
				return err
			}
		}

		mov = &entity.StockMovement{
			TransactionID: uuid.New().String(),
			ItemID:        updated.ID,
			TenantID:      input.TenantID,
			OutletID:      input.OutletID,
			Type:          entity.MovementTypeIN,
			Quantity:      line.Quantity,
			PreviousStock: previous,
			NewStock:      updated.CurrentStock,
			Reason:        "recepción de mercancía",
			Reference:     input.ReceiptNumber,
			CreatedAt:     now,
			CreatedBy:     input.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		lineResult = &dto.ReceiptLineResult{
			ItemID:   updated.ID,
			ItemName: updated.Name,
			Quantity: line.Quantity,
			NewStock: updated.CurrentStock,
			Created:  created,
		}
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return lineResult, updated, mov, nil
}
