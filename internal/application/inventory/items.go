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

// ItemUseCase CRUD de insumos más el import masivo. El stock de un insumo
// existente nunca se toca por aquí; eso es territorio del libro de movimientos.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	defaults CreateDefaults
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository, defaults CreateDefaults) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, defaults: defaults}
}

// CreateItem da de alta un insumo. (tenant, sucursal, nombre) es único;
// un duplicado devuelve ErrDuplicate.
func (uc *ItemUseCase) CreateItem(ctx context.Context, tenantID string, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	if in.OutletID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock.IsNegative() || in.MinimumStock.IsNegative() || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	category := in.Category
	if category == "" {
		category = uc.defaults.Category
	}
	unit := in.Unit
	if unit == "" {
		unit = uc.defaults.Unit
	}
	minStock := in.MinimumStock
	if minStock.IsZero() {
		minStock = decimal.NewFromFloat(uc.defaults.MinimumStock)
	}

	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		OutletID:     in.OutletID,
		Name:         in.Name,
		NameKey:      normalize.ItemName(in.Name),
		Category:     category,
		Unit:         unit,
		CurrentStock: in.CurrentStock,
		MinimumStock: minStock,
		MaximumStock: in.MaximumStock,
		UnitCost:     in.UnitCost,
		SupplierID:   in.SupplierID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem obtiene un insumo verificando pertenencia al tenant.
func (uc *ItemUseCase) GetItem(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

// UpdateItem actualiza atributos descriptivos (no el stock).
func (uc *ItemUseCase) UpdateItem(ctx context.Context, tenantID, id string, in dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := uc.GetItem(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
		item.NameKey = normalize.ItemName(*in.Name)
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.MinimumStock != nil {
		if in.MinimumStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.MinimumStock = *in.MinimumStock
	}
	if in.MaximumStock != nil {
		item.MaximumStock = in.MaximumStock
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.UnitCost = *in.UnitCost
	}
	if in.SupplierID != nil {
		item.SupplierID = in.SupplierID
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem elimina el registro del insumo. Los movimientos históricos se
// conservan: el libro es append-only.
func (uc *ItemUseCase) DeleteItem(ctx context.Context, tenantID, id string) error {
	if _, err := uc.GetItem(ctx, tenantID, id); err != nil {
		return err
	}
	return uc.itemRepo.Delete(tenantID, id)
}

// ListItems lista con filtros y paginación; devuelve también el total.
func (uc *ItemUseCase) ListItems(ctx context.Context, filter repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	if filter.TenantID == "" {
		return nil, 0, domain.ErrInvalidInput
	}
	return uc.itemRepo.List(filter)
}

// BulkImportItems alta masiva best-effort: cada renglón se intenta de forma
// independiente y los fallos quedan identificados por índice en el manifiesto.
func (uc *ItemUseCase) BulkImportItems(ctx context.Context, tenantID string, items []dto.CreateItemRequest) (*dto.BulkImportResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	result := &dto.BulkImportResult{Total: len(items)}
	for i, in := range items {
		item, err := uc.CreateItem(ctx, tenantID, in)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.BulkImportError{
				Index: i,
				Name:  in.Name,
				Error: err.Error(),
			})
			continue
		}
		result.Successful++
		result.Created = append(result.Created, toItemDTO(item))
	}
	return result, nil
}

// toItemDTO mapea la entidad al DTO de respuesta.
func toItemDTO(item *entity.InventoryItem) dto.ItemDTO {
	return dto.ItemDTO{
		ID:            item.ID,
		OutletID:      item.OutletID,
		Name:          item.Name,
		Category:      item.Category,
		Unit:          item.Unit,
		CurrentStock:  item.CurrentStock,
		MinimumStock:  item.MinimumStock,
		MaximumStock:  item.MaximumStock,
		UnitCost:      item.UnitCost,
		SupplierID:    item.SupplierID,
		LastRestocked: item.LastRestocked,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// ToItemDTO versión exportada para handlers.
func ToItemDTO(item *entity.InventoryItem) dto.ItemDTO { return toItemDTO(item) }
