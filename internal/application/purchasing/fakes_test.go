package purchasing_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/resto-inventario-api/internal/application/inventory"
	"github.com/jhoicas/resto-inventario-api/internal/application/purchasing"
	"github.com/jhoicas/resto-inventario-api/internal/domain"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el módulo de compras
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenant = "tenant-1"
	testUser   = "user-1"
)

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.InventoryItem)}
}

func (r *fakeItemRepo) findByName(tenantID, outletID, nameKey string) *entity.InventoryItem {
	for _, item := range r.items {
		if item.TenantID == tenantID && item.OutletID == outletID && item.NameKey == nameKey {
			return item
		}
	}
	return nil
}

func (r *fakeItemRepo) Create(item *entity.InventoryItem) error {
	if r.findByName(item.TenantID, item.OutletID, item.NameKey) != nil {
		return domain.ErrDuplicate
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	c := *item
	r.items[item.ID] = &c
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	c := *item
	return &c, nil
}

func (r *fakeItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) GetByName(tenantID, outletID, nameKey string) (*entity.InventoryItem, error) {
	item := r.findByName(tenantID, outletID, nameKey)
	if item == nil {
		return nil, nil
	}
	c := *item
	return &c, nil
}

func (r *fakeItemRepo) GetByNameForUpdate(tenantID, outletID, nameKey string) (*entity.InventoryItem, error) {
	return r.GetByName(tenantID, outletID, nameKey)
}

func (r *fakeItemRepo) Update(item *entity.InventoryItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *item
	r.items[item.ID] = &c
	return nil
}

func (r *fakeItemRepo) Delete(tenantID, id string) error {
	item, ok := r.items[id]
	if !ok || item.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) DecrementStock(id string, qty decimal.Decimal) (*entity.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok || item.CurrentStock.LessThan(qty) {
		return nil, domain.ErrInsufficientStock
	}
	item.CurrentStock = item.CurrentStock.Sub(qty)
	c := *item
	return &c, nil
}

func (r *fakeItemRepo) AddStock(id string, qty decimal.Decimal, restockedAt time.Time) (*entity.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	item.CurrentStock = item.CurrentStock.Add(qty)
	item.LastRestocked = &restockedAt
	item.UpdatedAt = restockedAt
	c := *item
	return &c, nil
}

func (r *fakeItemRepo) List(filter repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	var out []*entity.InventoryItem
	for _, item := range r.items {
		if item.TenantID == filter.TenantID {
			c := *item
			out = append(out, &c)
		}
	}
	return out, len(out), nil
}

func (r *fakeItemRepo) Stats(tenantID, outletID string) (*repository.StockStats, error) {
	return &repository.StockStats{}, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	m := *movement
	r.movements = append(r.movements, &m)
	return nil
}

func (r *fakeMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByOutlet(tenantID, outletID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.TenantID == tenantID && m.OutletID == outletID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
}

var _ repository.PurchaseOrderRepository = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.PurchaseOrder)}
}

func cloneOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *o
	c.Lines = append([]entity.PurchaseOrderLine(nil), o.Lines...)
	return &c
}

func (r *fakeOrderRepo) Create(order *entity.PurchaseOrder) error {
	for _, existing := range r.orders {
		if existing.OrderNumber == order.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

func (r *fakeOrderRepo) List(tenantID, outletID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, order := range r.orders {
		if order.TenantID != tenantID {
			continue
		}
		if outletID != "" && order.OutletID != outletID {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		out = append(out, cloneOrder(order))
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(order *entity.PurchaseOrder) error {
	existing, ok := r.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Status = order.Status
	existing.UpdatedAt = order.UpdatedAt
	return nil
}

// fakeTxRunner ejecuta fn sobre los fakes; rollback por snapshot ante error.
type fakeTxRunner struct {
	items  *fakeItemRepo
	movs   *fakeMovementRepo
	orders *fakeOrderRepo
}

var _ purchasing.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunPurchasing(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	itemSnap := make(map[string]*entity.InventoryItem, len(r.items.items))
	for id, item := range r.items.items {
		c := *item
		itemSnap[id] = &c
	}
	movSnap := append([]*entity.StockMovement(nil), r.movs.movements...)
	orderSnap := make(map[string]*entity.PurchaseOrder, len(r.orders.orders))
	for id, order := range r.orders.orders {
		orderSnap[id] = cloneOrder(order)
	}
	if err := fn(r.items, r.movs, r.orders); err != nil {
		r.items.items = itemSnap
		r.movs.movements = movSnap
		r.orders.orders = orderSnap
		return err
	}
	return nil
}

// stubPDFGenerator y stubXMLExporter registran la llamada y devuelven bytes fijos.
type stubPDFGenerator struct{ calls int }

func (g *stubPDFGenerator) GenerateOrderPDF(_ context.Context, order *entity.PurchaseOrder) ([]byte, error) {
	g.calls++
	return []byte("%PDF " + order.OrderNumber), nil
}

type stubXMLExporter struct{ calls int }

func (e *stubXMLExporter) ExportOrderXML(order *entity.PurchaseOrder) ([]byte, error) {
	e.calls++
	return []byte("<PurchaseOrder>" + order.OrderNumber + "</PurchaseOrder>"), nil
}

func testDefaults() appinventory.CreateDefaults {
	return appinventory.CreateDefaults{MinimumStock: 5, Unit: "pz", Category: "general"}
}
