package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-inventario-api/internal/domain"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
)

// LedgerUseCase aplica deltas de stock (IN/OUT/ADJUSTMENT) de forma transaccional
// con bloqueo de fila y escribe la entrada correspondiente del libro de movimientos
// en la misma transacción.
type LedgerUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	notifier Notifier
	policy   Policy
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	notifier Notifier,
	policy Policy,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		notifier: notifier,
		policy:   policy,
	}
}

// UpdateStockInput entrada para aplicar un movimiento simple.
// Para IN/OUT se usa el valor absoluto de Quantity; para ADJUSTMENT,
// Quantity es el valor absoluto que quedará como stock.
type UpdateStockInput struct {
	TenantID  string
	UserID    string
	ItemID    string
	Quantity  decimal.Decimal
	Type      string
	Reason    string
	Reference string
}

// UpdateStockOutput insumo actualizado más la entrada del libro.
type UpdateStockOutput struct {
	Item     *entity.InventoryItem
	Movement *entity.StockMovement
}

// UpdateStock inicia una transacción, bloquea la fila del insumo, aplica el
// delta según el tipo y escribe el movimiento. El invariante stock >= 0 se
// garantiza doble: la guarda SQL de DecrementStock y la validación previa.
func (uc *LedgerUseCase) UpdateStock(ctx context.Context, input UpdateStockInput) (*UpdateStockOutput, error) {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		if input.Quantity.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if input.Quantity.IsNegative() && !uc.policy.AllowNegativeAdjustment {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()
	out := &UpdateStockOutput{}

	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetByIDForUpdate(input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.TenantID != input.TenantID {
			return domain.ErrForbidden
		}

		previous := item.CurrentStock
		var updated *entity.InventoryItem
		var signed decimal.Decimal

		switch input.Type {
		case entity.MovementTypeIN:
			qty := input.Quantity.Abs()
			signed = qty
			updated, err = itemRepo.AddStock(item.ID, qty, now)
		case entity.MovementTypeOUT:
			qty := input.Quantity.Abs()
			signed = qty.Neg()
			updated, err = itemRepo.DecrementStock(item.ID, qty)
		case entity.MovementTypeADJUSTMENT:
			item.CurrentStock = input.Quantity
			item.UpdatedAt = now
			signed = input.Quantity.Sub(previous)
			err = itemRepo.Update(item)
			updated = item
		}
		if err != nil {
			return err
		}

		mov := &entity.StockMovement{
			TransactionID: txID,
			ItemID:        item.ID,
			TenantID:      item.TenantID,
			OutletID:      item.OutletID,
			Type:          input.Type,
			Quantity:      signed,
			PreviousStock: previous,
			NewStock:      updated.CurrentStock,
			Reason:        input.Reason,
			Reference:     input.Reference,
			CreatedAt:     now,
			CreatedBy:     input.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		out.Item = updated
		out.Movement = mov
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.StockChanged(ctx, out.Item, out.Movement, entity.AlertSeverity(out.Item))
	}
	return out, nil
}

// GetStockMovements lista el libro por insumo o por sucursal, con rango de
// fechas y paginación. Al consultar por insumo se verifica la pertenencia al tenant.
func (uc *LedgerUseCase) GetStockMovements(
	ctx context.Context,
	tenantID, itemID, outletID string,
	from, to *time.Time,
	limit, offset int,
) ([]*entity.StockMovement, error) {
	if itemID != "" {
		item, err := uc.itemRepo.GetByID(itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if item.TenantID != tenantID {
			return nil, domain.ErrForbidden
		}
		return uc.movRepo.ListByItem(itemID, from, to, limit, offset)
	}
	if outletID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByOutlet(tenantID, outletID, from, to, limit, offset)
}
