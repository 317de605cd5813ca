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

// TransferUseCase traslada stock de un insumo entre dos sucursales en una sola
// transacción. Propiedad de conservación: la suma de stock del insumo entre
// origen y destino es la misma antes y después del traslado.
type TransferUseCase struct {
	txRunner TxRunner
	notifier Notifier
	defaults CreateDefaults
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, notifier Notifier, defaults CreateDefaults) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, notifier: notifier, defaults: defaults}
}

// TransferInput entrada para un traslado.
type TransferInput struct {
	TenantID     string
	UserID       string
	ItemName     string
	FromOutletID string
	ToOutletID   string
	Quantity     decimal.Decimal
	Reason       string
}

// TransferStock valida, bloquea las filas en orden canónico de sucursal para
// evitar deadlocks entre traslados cruzados, descuenta del origen con guarda
// SQL y suma (o crea) en el destino. Escribe TRANSFER_OUT y TRANSFER_IN con el
// mismo transaction_id.
func (uc *TransferUseCase) TransferStock(ctx context.Context, input TransferInput) (*dto.TransferResult, error) {
	if input.ItemName == "" || input.FromOutletID == "" || input.ToOutletID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.FromOutletID == input.ToOutletID {
		return nil, domain.ErrSameOutlet
	}
	if !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	nameKey := normalize.ItemName(input.ItemName)
	now := time.Now()
	txID := uuid.New().String()
	result := &dto.TransferResult{
		ItemName:     input.ItemName,
		FromOutletID: input.FromOutletID,
		ToOutletID:   input.ToOutletID,
		Quantity:     input.Quantity,
		TransferredAt: now,
	}
	var outMov, inMov *entity.StockMovement
	var srcUpdated, dstUpdated *entity.InventoryItem

	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		// Bloquear ambas filas en orden canónico (outlet_id ascendente).
		var source, dest *entity.InventoryItem
		var err error
		if input.FromOutletID < input.ToOutletID {
			source, err = itemRepo.GetByNameForUpdate(input.TenantID, input.FromOutletID, nameKey)
			if err != nil {
				return err
			}
			dest, err = itemRepo.GetByNameForUpdate(input.TenantID, input.ToOutletID, nameKey)
		} else {
			dest, err = itemRepo.GetByNameForUpdate(input.TenantID, input.ToOutletID, nameKey)
			if err != nil {
				return err
			}
			source, err = itemRepo.GetByNameForUpdate(input.TenantID, input.FromOutletID, nameKey)
		}
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrNotFound
		}
		if source.CurrentStock.LessThan(input.Quantity) {
			return domain.ErrInsufficientStock
		}

		srcPrevious := source.CurrentStock
		srcUpdated, err = itemRepo.DecrementStock(source.ID, input.Quantity)
		if err != nil {
			return err
		}

		var dstPrevious decimal.Decimal
		if dest == nil {
			// Primer traslado a esta sucursal: se crea el registro sembrado
			// con los atributos del origen. El stock previo del destino es 0,
			// así que la conservación se mantiene.
			dest = &entity.InventoryItem{
				ID:           uuid.New().String(),
				TenantID:     source.TenantID,
				OutletID:     input.ToOutletID,
				Name:         source.Name,
				NameKey:      source.NameKey,
				Category:     source.Category,
				Unit:         source.Unit,
				CurrentStock: input.Quantity,
				MinimumStock: decimal.NewFromFloat(uc.defaults.MinimumStock),
				UnitCost:     source.UnitCost,
				SupplierID:   source.SupplierID,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := itemRepo.Create(dest); err != nil {
				return err
			}
			dstUpdated = dest
			result.DestinationNew = true
		} else {
			dstPrevious = dest.CurrentStock
			dstUpdated, err = itemRepo.AddStock(dest.ID, input.Quantity, now)
			if err != nil {
				return err
			}
		}

		outMov = &entity.StockMovement{
			TransactionID: txID,
			ItemID:        source.ID,
			TenantID:      source.TenantID,
			OutletID:      input.FromOutletID,
			Type:          entity.MovementTypeTRANSFEROUT,
			Quantity:      input.Quantity.Neg(),
			PreviousStock: srcPrevious,
			NewStock:      srcUpdated.CurrentStock,
			Reason:        input.Reason,
			Reference:     "traslado a " + input.ToOutletID,
			CreatedAt:     now,
			CreatedBy:     input.UserID,
		}
		if err := movRepo.Create(outMov); err != nil {
			return err
		}
		inMov = &entity.StockMovement{
			TransactionID: txID,
			ItemID:        dstUpdated.ID,
			TenantID:      source.TenantID,
			OutletID:      input.ToOutletID,
			Type:          entity.MovementTypeTRANSFERIN,
			Quantity:      input.Quantity,
			PreviousStock: dstPrevious,
			NewStock:      dstUpdated.CurrentStock,
			Reason:        input.Reason,
			Reference:     "traslado desde " + input.FromOutletID,
			CreatedAt:     now,
			CreatedBy:     input.UserID,
		}
		if err := movRepo.Create(inMov); err != nil {
			return err
		}

		result.SourceStock = srcUpdated.CurrentStock
		result.DestinationStock = dstUpdated.CurrentStock
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.StockChanged(ctx, srcUpdated, outMov, entity.AlertSeverity(srcUpdated))
		uc.notifier.StockChanged(ctx, dstUpdated, inMov, entity.AlertSeverity(dstUpdated))
	}
	return result, nil
}
