package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-inventario-api/internal/domain"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, tenant_id, outlet_id, name, name_key, category, unit,
	current_stock, minimum_stock, maximum_stock, unit_cost, supplier_id,
	last_restocked, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(
		&i.ID, &i.TenantID, &i.OutletID, &i.Name, &i.NameKey, &i.Category, &i.Unit,
		&i.CurrentStock, &i.MinimumStock, &i.MaximumStock, &i.UnitCost, &i.SupplierID,
		&i.LastRestocked, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste un insumo nuevo. (tenant_id, outlet_id, name_key) es único.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, tenant_id, outlet_id, name, name_key, category, unit,
			current_stock, minimum_stock, maximum_stock, unit_cost, supplier_id,
			last_restocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TenantID, item.OutletID, item.Name, item.NameKey, item.Category, item.Unit,
		item.CurrentStock, item.MinimumStock, item.MaximumStock, item.UnitCost, item.SupplierID,
		item.LastRestocked, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID; nil si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByIDForUpdate obtiene y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return item, nil
}

// GetByName obtiene por identidad lógica (tenant, sucursal, nombre normalizado).
func (r *ItemRepo) GetByName(tenantID, outletID, nameKey string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE tenant_id = $1 AND outlet_id = $2 AND name_key = $3`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, tenantID, outletID, nameKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by name: %w", err)
	}
	return item, nil
}

// GetByNameForUpdate obtiene por identidad lógica y bloquea la fila.
func (r *ItemRepo) GetByNameForUpdate(tenantID, outletID, nameKey string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE tenant_id = $1 AND outlet_id = $2 AND name_key = $3
		FOR UPDATE`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, tenantID, outletID, nameKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by name for update: %w", err)
	}
	return item, nil
}

// Update actualiza todos los atributos mutables del insumo.
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			name = $2, name_key = $3, category = $4, unit = $5,
			current_stock = $6, minimum_stock = $7, maximum_stock = $8,
			unit_cost = $9, supplier_id = $10, last_restocked = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.NameKey, item.Category, item.Unit,
		item.CurrentStock, item.MinimumStock, item.MaximumStock,
		item.UnitCost, item.SupplierID, item.LastRestocked, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el insumo. Los movimientos históricos no se tocan.
func (r *ItemRepo) Delete(tenantID, id string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory_items WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock resta qty en una sola sentencia con guarda de no-negatividad.
// Si la guarda no se cumple (o la fila no existe) no hay filas afectadas y se
// devuelve ErrInsufficientStock: el stock nunca puede quedar negativo por esta vía.
func (r *ItemRepo) DecrementStock(id string, qty decimal.Decimal) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET current_stock = current_stock - $2, updated_at = now()
		WHERE id = $1 AND current_stock >= $2
		RETURNING ` + itemColumns
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id, qty))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInsufficientStock
		}
		return nil, fmt.Errorf("decrement stock: %w", err)
	}
	return item, nil
}

// AddStock suma qty y refresca last_restocked.
func (r *ItemRepo) AddStock(id string, qty decimal.Decimal, restockedAt time.Time) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET current_stock = current_stock + $2, last_restocked = $3, updated_at = $3
		WHERE id = $1
		RETURNING ` + itemColumns
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id, qty, restockedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("add stock: %w", err)
	}
	return item, nil
}

// List lista con filtros y devuelve además el total sin paginar.
func (r *ItemRepo) List(filter repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	where := ` WHERE tenant_id = $1`
	args := []any{filter.TenantID}
	pos := 2
	if filter.OutletID != "" {
		where += fmt.Sprintf(" AND outlet_id = $%d", pos)
		args = append(args, filter.OutletID)
		pos++
	}
	if filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.LowStockOnly {
		where += " AND current_stock <= minimum_stock"
	}

	var total int
	countQuery := `SELECT count(*) FROM inventory_items` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM inventory_items` + where +
		fmt.Sprintf(" ORDER BY outlet_id, name_key LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, total, rows.Err()
}

// Stats agregados por tenant (y opcionalmente por sucursal).
func (r *ItemRepo) Stats(tenantID, outletID string) (*repository.StockStats, error) {
	query := `
		SELECT count(*),
			COALESCE(sum(current_stock * unit_cost), 0),
			count(*) FILTER (WHERE current_stock > 0 AND current_stock <= minimum_stock),
			count(*) FILTER (WHERE current_stock <= 0)
		FROM inventory_items WHERE tenant_id = $1`
	args := []any{tenantID}
	if outletID != "" {
		query += ` AND outlet_id = $2`
		args = append(args, outletID)
	}
	var s repository.StockStats
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ItemCount, &s.TotalStockValue, &s.LowStockCount, &s.OutOfStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &s, nil
}
