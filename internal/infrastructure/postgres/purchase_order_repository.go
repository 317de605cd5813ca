package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/resto-inventario-api/internal/domain"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = `id, tenant_id, outlet_id, supplier_id, order_number, status,
	total_cost, notes, expected_delivery, created_at, updated_at, created_by`

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden y sus renglones.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, tenant_id, outlet_id, supplier_id, order_number, status,
			total_cost, notes, expected_delivery, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.TenantID, order.OutletID, order.SupplierID, order.OrderNumber,
		order.Status, order.TotalCost, order.Notes, order.ExpectedDelivery,
		order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	lineQuery := `
		INSERT INTO purchase_order_lines (id, order_id, item_name, quantity, unit, estimated_unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, l := range order.Lines {
		_, err := r.q.Exec(context.Background(), lineQuery,
			l.ID, l.OrderID, l.ItemName, l.Quantity, l.Unit, l.EstimatedUnitCost, l.TotalCost)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus renglones; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	order, err := r.scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadLines(order); err != nil {
		return nil, err
	}
	return order, nil
}

// List lista órdenes del tenant con filtros opcionales de sucursal y estado.
func (r *PurchaseOrderRepo) List(tenantID, outletID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE tenant_id = $1`
	args := []any{tenantID}
	pos := 2
	if outletID != "" {
		query += fmt.Sprintf(" AND outlet_id = $%d", pos)
		args = append(args, outletID)
		pos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, order := range list {
		if err := r.loadLines(order); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateStatus persiste el estado ya validado por la máquina de estados del agregado.
func (r *PurchaseOrderRepo) UpdateStatus(order *entity.PurchaseOrder) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = $3 WHERE id = $1`,
		order.ID, order.Status, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(
		&o.ID, &o.TenantID, &o.OutletID, &o.SupplierID, &o.OrderNumber, &o.Status,
		&o.TotalCost, &o.Notes, &o.ExpectedDelivery, &o.CreatedAt, &o.UpdatedAt, &o.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) loadLines(order *entity.PurchaseOrder) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, item_name, quantity, unit, estimated_unit_cost, total_cost
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY item_name`, order.ID)
	if err != nil {
		return fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemName, &l.Quantity, &l.Unit,
			&l.EstimatedUnitCost, &l.TotalCost); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		order.Lines = append(order.Lines, l)
	}
	return rows.Err()
}
