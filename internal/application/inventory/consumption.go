package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-inventario-api/internal/application/dto"
	"github.com/jhoicas/resto-inventario-api/internal/domain"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
	"github.com/jhoicas/resto-inventario-api/pkg/normalize"
)

// ConsumptionUseCase descuenta los ingredientes de una receta en bloque.
// Protocolo en dos fases dentro de una sola transacción: primero se bloquean
// y validan todas las filas, después se descuentan. Si cualquier ingrediente
// falta, ninguno se descuenta (todo-o-nada).
type ConsumptionUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	notifier Notifier
}

// NewConsumptionUseCase construye el caso de uso.
func NewConsumptionUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, notifier Notifier) *ConsumptionUseCase {
	return &ConsumptionUseCase{txRunner: txRunner, itemRepo: itemRepo, notifier: notifier}
}

// ConsumptionInput entrada para consumir una receta.
type ConsumptionInput struct {
	TenantID    string
	UserID      string
	OutletID    string
	RecipeID    string
	RecipeName  string
	Quantity    int64 // multiplicador de la receta, >= 1
	Ingredients []dto.IngredientRequirement
}

type ingredientNeed struct {
	name     string
	nameKey  string
	required decimal.Decimal
}

// buildNeeds normaliza, agrega duplicados y ordena por clave canónica.
// El orden de bloqueo determinista evita deadlocks entre recetas cruzadas.
func buildNeeds(input ConsumptionInput) ([]ingredientNeed, error) {
	multiplier := decimal.NewFromInt(input.Quantity)
	byKey := make(map[string]*ingredientNeed, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		if ing.Name == "" || !ing.QuantityPerUnit.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		key := normalize.ItemName(ing.Name)
		required := ing.QuantityPerUnit.Mul(multiplier)
		if n, ok := byKey[key]; ok {
			n.required = n.required.Add(required)
			continue
		}
		byKey[key] = &ingredientNeed{name: ing.Name, nameKey: key, required: required}
	}
	needs := make([]ingredientNeed, 0, len(byKey))
	for _, n := range byKey {
		needs = append(needs, *n)
	}
	sort.Slice(needs, func(i, j int) bool { return needs[i].nameKey < needs[j].nameKey })
	return needs, nil
}

// ProcessRecipeConsumption ejecuta el consumo. Si hay faltantes devuelve el
// reporte completo junto con ErrInsufficientStock y no descuenta nada; si no,
// descuenta todos los ingredientes y escribe un movimiento OUT por cada uno
// con el mismo transaction_id.
func (uc *ConsumptionUseCase) ProcessRecipeConsumption(ctx context.Context, input ConsumptionInput) (*dto.ConsumptionResult, error) {
	if input.OutletID == "" || input.RecipeName == "" || input.Quantity < 1 || len(input.Ingredients) == 0 {
		return nil, domain.ErrInvalidInput
	}
	needs, err := buildNeeds(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txID := uuid.New().String()
	result := &dto.ConsumptionResult{RecipeName: input.RecipeName}
	reference := input.RecipeID
	if reference == "" {
		reference = input.RecipeName
	}

	var notifyItems []*entity.InventoryItem
	var notifyMovs []*entity.StockMovement

	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		// Fase 1: bloquear y validar todos los ingredientes.
		locked := make([]*entity.InventoryItem, len(needs))
		for i, need := range needs {
			item, err := itemRepo.GetByNameForUpdate(input.TenantID, input.OutletID, need.nameKey)
			if err != nil {
				return err
			}
			available := decimal.Zero
			if item != nil {
				available = item.CurrentStock
			}
			if item == nil || available.LessThan(need.required) {
				result.Shortages = append(result.Shortages, dto.ShortageDTO{
					ItemName:  need.name,
					Required:  need.required,
					Available: available,
					Shortage:  need.required.Sub(available),
				})
				continue
			}
			locked[i] = item
		}
		if len(result.Shortages) > 0 {
			return domain.ErrInsufficientStock
		}

		// Fase 2: commit. Las filas siguen bloqueadas, así que la validación
		// no puede quedar obsoleta entre fases.
		for i, need := range needs {
			item := locked[i]
			previous := item.CurrentStock
			updated, err := itemRepo.DecrementStock(item.ID, need.required)
			if err != nil {
				return err
			}
			mov := &entity.StockMovement{
				TransactionID: txID,
				ItemID:        item.ID,
				TenantID:      item.TenantID,
				OutletID:      item.OutletID,
				Type:          entity.MovementTypeOUT,
				Quantity:      need.required.Neg(),
				PreviousStock: previous,
				NewStock:      updated.CurrentStock,
				Reason:        "consumo receta " + input.RecipeName,
				Reference:     reference,
				CreatedAt:     now,
				CreatedBy:     input.UserID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			result.Consumed = append(result.Consumed, dto.ConsumedItemDTO{
				ItemID:   item.ID,
				ItemName: item.Name,
				Consumed: need.required,
				NewStock: updated.CurrentStock,
			})
			notifyItems = append(notifyItems, updated)
			notifyMovs = append(notifyMovs, mov)
		}
		result.Applied = true
		return nil
	})
	if err != nil {
		if len(result.Shortages) > 0 {
			// Rechazo todo-o-nada con reporte de faltantes.
			return result, domain.ErrInsufficientStock
		}
		return nil, err
	}

	if uc.notifier != nil {
		for i, item := range notifyItems {
			uc.notifier.StockChanged(ctx, item, notifyMovs[i], entity.AlertSeverity(item))
		}
	}
	return result, nil
}

// ValidateStockForOrder ejecuta solo la fase de validación, sin bloqueos ni
// mutaciones: informa qué faltaría para preparar la receta en este momento.
func (uc *ConsumptionUseCase) ValidateStockForOrder(ctx context.Context, input ConsumptionInput) (*dto.ConsumptionResult, error) {
	if input.OutletID == "" || input.Quantity < 1 || len(input.Ingredients) == 0 {
		return nil, domain.ErrInvalidInput
	}
	needs, err := buildNeeds(input)
	if err != nil {
		return nil, err
	}

	result := &dto.ConsumptionResult{RecipeName: input.RecipeName}
	for _, need := range needs {
		item, err := uc.itemRepo.GetByName(input.TenantID, input.OutletID, need.nameKey)
		if err != nil {
			return nil, err
		}
		available := decimal.Zero
		if item != nil {
			available = item.CurrentStock
		}
		if item == nil || available.LessThan(need.required) {
			result.Shortages = append(result.Shortages, dto.ShortageDTO{
				ItemName:  need.name,
				Required:  need.required,
				Available: available,
				Shortage:  need.required.Sub(available),
			})
		}
	}
	result.Applied = len(result.Shortages) == 0
	return result, nil
}
