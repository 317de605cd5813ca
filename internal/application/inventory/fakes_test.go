package inventory_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/resto-inventario-api/internal/application/inventory"
	"github.com/jhoicas/resto-inventario-api/internal/domain"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: repositorios + runner transaccional con rollback por snapshot
// ──────────────────────────────────────────────────────────────────────────────

func cloneItem(i *entity.InventoryItem) *entity.InventoryItem {
	c := *i
	if i.MaximumStock != nil {
		v := *i.MaximumStock
		c.MaximumStock = &v
	}
	if i.SupplierID != nil {
		v := *i.SupplierID
		c.SupplierID = &v
	}
	if i.LastRestocked != nil {
		v := *i.LastRestocked
		c.LastRestocked = &v
	}
	return &c
}

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.InventoryItem)}
}

func (r *fakeItemRepo) snapshot() map[string]*entity.InventoryItem {
	snap := make(map[string]*entity.InventoryItem, len(r.items))
	for id, item := range r.items {
		snap[id] = cloneItem(item)
	}
	return snap
}

func (r *fakeItemRepo) restore(snap map[string]*entity.InventoryItem) {
	r.items = snap
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
	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneItem(item), nil
}

func (r *fakeItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) GetByName(tenantID, outletID, nameKey string) (*entity.InventoryItem, error) {
	item := r.findByName(tenantID, outletID, nameKey)
	if item == nil {
		return nil, nil
	}
	return cloneItem(item), nil
}

func (r *fakeItemRepo) GetByNameForUpdate(tenantID, outletID, nameKey string) (*entity.InventoryItem, error) {
	return r.GetByName(tenantID, outletID, nameKey)
}

func (r *fakeItemRepo) Update(item *entity.InventoryItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[item.ID] = cloneItem(item)
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
	item.UpdatedAt = time.Now()
	return cloneItem(item), nil
}

func (r *fakeItemRepo) AddStock(id string, qty decimal.Decimal, restockedAt time.Time) (*entity.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	item.CurrentStock = item.CurrentStock.Add(qty)
	item.LastRestocked = &restockedAt
	item.UpdatedAt = restockedAt
	return cloneItem(item), nil
}

func (r *fakeItemRepo) List(filter repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	var matched []*entity.InventoryItem
	for _, item := range r.items {
		if item.TenantID != filter.TenantID {
			continue
		}
		if filter.OutletID != "" && item.OutletID != filter.OutletID {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.LowStockOnly && item.CurrentStock.GreaterThan(item.MinimumStock) {
			continue
		}
		matched = append(matched, cloneItem(item))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].OutletID != matched[j].OutletID {
			return matched[i].OutletID < matched[j].OutletID
		}
		return matched[i].NameKey < matched[j].NameKey
	})
	total := len(matched)
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeItemRepo) Stats(tenantID, outletID string) (*repository.StockStats, error) {
	stats := &repository.StockStats{TotalStockValue: decimal.Zero}
	for _, item := range r.items {
		if item.TenantID != tenantID {
			continue
		}
		if outletID != "" && item.OutletID != outletID {
			continue
		}
		stats.ItemCount++
		stats.TotalStockValue = stats.TotalStockValue.Add(item.CurrentStock.Mul(item.UnitCost))
		switch {
		case !item.CurrentStock.IsPositive():
			stats.OutOfStockCount++
		case item.CurrentStock.LessThanOrEqual(item.MinimumStock):
			stats.LowStockCount++
		}
	}
	return stats, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func (r *fakeMovementRepo) snapshot() []*entity.StockMovement {
	snap := make([]*entity.StockMovement, len(r.movements))
	copy(snap, r.movements)
	return snap
}

func (r *fakeMovementRepo) restore(snap []*entity.StockMovement) {
	r.movements = snap
}

func (r *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	m := *movement
	r.movements = append(r.movements, &m)
	return nil
}

func (r *fakeMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m *entity.StockMovement) bool { return m.ItemID == itemID }, from, to, limit, offset)
}

func (r *fakeMovementRepo) ListByOutlet(tenantID, outletID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m *entity.StockMovement) bool {
		return m.TenantID == tenantID && m.OutletID == outletID
	}, from, to, limit, offset)
}

func (r *fakeMovementRepo) list(match func(*entity.StockMovement) bool, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if !match(m) {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeTxRunner ejecuta fn sobre los fakes y simula rollback restaurando un
// snapshot cuando fn falla, igual que una transacción real.
type fakeTxRunner struct {
	items *fakeItemRepo
	movs  *fakeMovementRepo
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	itemSnap := r.items.snapshot()
	movSnap := r.movs.snapshot()
	if err := fn(r.items, r.movs); err != nil {
		r.items.restore(itemSnap)
		r.movs.restore(movSnap)
		return err
	}
	return nil
}

// recordingNotifier acumula las notificaciones emitidas.
type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) StockChanged(_ context.Context, item *entity.InventoryItem, movement *entity.StockMovement, severity string) {
	n.events = append(n.events, movement.Type+":"+item.Name+":"+severity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Builders
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenant = "tenant-1"
	testUser   = "user-1"
)

func seedItem(repo *fakeItemRepo, outletID, name string, stock, minimum float64) *entity.InventoryItem {
	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		TenantID:     testTenant,
		OutletID:     outletID,
		Name:         name,
		NameKey:      strings.ToLower(name),
		Category:     entity.CategoryGeneral,
		Unit:         entity.UnitPiece,
		CurrentStock: decimal.NewFromFloat(stock),
		MinimumStock: decimal.NewFromFloat(minimum),
		UnitCost:     decimal.NewFromFloat(10),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	repo.items[item.ID] = item
	return item
}

func testDefaults() inventory.CreateDefaults {
	return inventory.CreateDefaults{MinimumStock: 5, Unit: "pz", Category: "general"}
}
