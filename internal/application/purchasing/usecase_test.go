package purchasing_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resto-inventario-api/internal/application/dto"
	"github.com/jhoicas/resto-inventario-api/internal/application/purchasing"
	"github.com/jhoicas/resto-inventario-api/internal/domain"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
)

type fixture struct {
	uc     *purchasing.PurchaseOrderUseCase
	items  *fakeItemRepo
	movs   *fakeMovementRepo
	orders *fakeOrderRepo
	pdf    *stubPDFGenerator
	xml    *stubXMLExporter
}

func newFixture(deliveryDays int) *fixture {
	items := newFakeItemRepo()
	movs := &fakeMovementRepo{}
	orders := newFakeOrderRepo()
	pdf := &stubPDFGenerator{}
	xml := &stubXMLExporter{}
	runner := &fakeTxRunner{items: items, movs: movs, orders: orders}
	uc := purchasing.NewPurchaseOrderUseCase(runner, orders, pdf, xml, testDefaults(), deliveryDays)
	return &fixture{uc: uc, items: items, movs: movs, orders: orders, pdf: pdf, xml: xml}
}

func ordenBasica() dto.GenerateOrderRequest {
	return dto.GenerateOrderRequest{
		OutletID:   "outlet-1",
		SupplierID: "prov-7",
		Lines: []dto.OrderLineRequest{
			{ItemName: "Tomate", Quantity: decimal.NewFromInt(10), Unit: "kg", EstimatedUnitCost: decimal.NewFromFloat(2.5)},
			{ItemName: "Queso", Quantity: decimal.NewFromInt(4), Unit: "kg", EstimatedUnitCost: decimal.NewFromInt(30)},
		},
		Notes: "pedido semanal",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GeneratePurchaseOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneratePurchaseOrder_DerivaTotalesYPersiste(t *testing.T) {
	f := newFixture(7)

	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.True(t, order.TotalCost.Equal(decimal.NewFromInt(145)), "10*2.5 + 4*30 = 145")
	require.Len(t, order.Lines, 2)
	assert.True(t, order.Lines[0].TotalCost.Equal(decimal.NewFromInt(25)))

	// Folio OC-YYYYMMDD-XXXXXXXX
	assert.True(t, strings.HasPrefix(order.OrderNumber, "OC-"+time.Now().Format("20060102")+"-"),
		"folio inesperado: %s", order.OrderNumber)

	// Entrega esperada ≈ hoy + 7 días.
	expected := time.Now().AddDate(0, 0, 7)
	assert.WithinDuration(t, expected, order.ExpectedDelivery, time.Minute)

	persisted, err := f.orders.GetByID(order.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted, "la orden debe quedar persistida")
	assert.Equal(t, testUser, persisted.CreatedBy)
}

func TestGeneratePurchaseOrder_EntradasInvalidas(t *testing.T) {
	f := newFixture(7)

	casos := []dto.GenerateOrderRequest{
		{OutletID: "", SupplierID: "p", Lines: ordenBasica().Lines},
		{OutletID: "o", SupplierID: "", Lines: ordenBasica().Lines},
		{OutletID: "o", SupplierID: "p", Lines: nil},
		{OutletID: "o", SupplierID: "p", Lines: []dto.OrderLineRequest{
			{ItemName: "x", Quantity: decimal.Zero, EstimatedUnitCost: decimal.NewFromInt(1)},
		}},
		{OutletID: "o", SupplierID: "p", Lines: []dto.OrderLineRequest{
			{ItemName: "x", Quantity: decimal.NewFromInt(1), EstimatedUnitCost: decimal.NewFromInt(-1)},
		}},
	}
	for _, in := range casos {
		_, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateOrderStatus_TransicionesLegales(t *testing.T) {
	f := newFixture(7)
	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)

	order, err = f.uc.UpdateOrderStatus(context.Background(), testTenant, order.ID, entity.OrderStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusApproved, order.Status)

	order, err = f.uc.UpdateOrderStatus(context.Background(), testTenant, order.ID, entity.OrderStatusOrdered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusOrdered, order.Status)
}

func TestUpdateOrderStatus_TransicionIlegalEsConflicto(t *testing.T) {
	f := newFixture(7)
	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)

	// PENDING → ORDERED sin pasar por APPROVED.
	_, err = f.uc.UpdateOrderStatus(context.Background(), testTenant, order.ID, entity.OrderStatusOrdered)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// RECEIVED no pasa por la vía simple.
	_, err = f.uc.UpdateOrderStatus(context.Background(), testTenant, order.ID, entity.OrderStatusReceived)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateOrderStatus_CancelableDesdeNoTerminal(t *testing.T) {
	f := newFixture(7)
	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)

	order, err = f.uc.UpdateOrderStatus(context.Background(), testTenant, order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, order.Status)

	// Cancelada es terminal.
	_, err = f.uc.UpdateOrderStatus(context.Background(), testTenant, order.ID, entity.OrderStatusApproved)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGetOrder_TenantAjenoProhibido(t *testing.T) {
	f := newFixture(7)
	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)

	_, err = f.uc.GetOrder(context.Background(), "tenant-ajeno", order.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.GetOrder(context.Background(), testTenant, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveOrder — puente hacia el inventario
// ──────────────────────────────────────────────────────────────────────────────

func avanzarAOrdered(t *testing.T, f *fixture, id string) {
	t.Helper()
	_, err := f.uc.UpdateOrderStatus(context.Background(), testTenant, id, entity.OrderStatusApproved)
	require.NoError(t, err)
	_, err = f.uc.UpdateOrderStatus(context.Background(), testTenant, id, entity.OrderStatusOrdered)
	require.NoError(t, err)
}

func TestReceiveOrder_IngresaMercanciaAlInventario(t *testing.T) {
	f := newFixture(7)
	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)
	avanzarAOrdered(t, f, order.ID)

	received, err := f.uc.ReceiveOrder(context.Background(), testTenant, testUser, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, received.Status)

	// Los insumos no existían: se crean con el stock de la orden.
	tomate, err := f.items.GetByName(testTenant, "outlet-1", "tomate")
	require.NoError(t, err)
	require.NotNil(t, tomate)
	assert.True(t, tomate.CurrentStock.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "kg", tomate.Unit, "la unidad viene del renglón de la orden")
	require.NotNil(t, tomate.SupplierID)
	assert.Equal(t, "prov-7", *tomate.SupplierID)

	// Cada renglón deja un IN referenciando el folio, mismo transaction_id.
	require.Len(t, f.movs.movements, 2)
	for _, m := range f.movs.movements {
		assert.Equal(t, entity.MovementTypeIN, m.Type)
		assert.Equal(t, received.OrderNumber, m.Reference)
		assert.Equal(t, f.movs.movements[0].TransactionID, m.TransactionID)
	}
}

func TestReceiveOrder_ExistenteSumaStock(t *testing.T) {
	f := newFixture(7)
	now := time.Now()
	f.items.items["seed"] = &entity.InventoryItem{
		ID: "seed", TenantID: testTenant, OutletID: "outlet-1",
		Name: "Tomate", NameKey: "tomate",
		CurrentStock: decimal.NewFromInt(3),
		UnitCost:     decimal.NewFromInt(1),
		CreatedAt:    now, UpdatedAt: now,
	}

	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)
	avanzarAOrdered(t, f, order.ID)

	_, err = f.uc.ReceiveOrder(context.Background(), testTenant, testUser, order.ID)
	require.NoError(t, err)

	got, _ := f.items.GetByID("seed")
	assert.True(t, got.CurrentStock.Equal(decimal.NewFromInt(13)), "3 + 10 de la orden")
	assert.True(t, got.UnitCost.Equal(decimal.NewFromFloat(2.5)), "el costo estimado sobreescribe al vigente")
}

func TestReceiveOrder_DesdePendingEsConflicto(t *testing.T) {
	f := newFixture(7)
	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)

	_, err = f.uc.ReceiveOrder(context.Background(), testTenant, testUser, order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Nada entró al inventario.
	assert.Empty(t, f.movs.movements)
	assert.Empty(t, f.items.items)

	persisted, _ := f.orders.GetByID(order.ID)
	assert.Equal(t, entity.OrderStatusPending, persisted.Status, "el estado no debe cambiar")
}

func TestReceiveOrder_Idempotencia_RecibirDosVecesFalla(t *testing.T) {
	f := newFixture(7)
	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)
	avanzarAOrdered(t, f, order.ID)

	_, err = f.uc.ReceiveOrder(context.Background(), testTenant, testUser, order.ID)
	require.NoError(t, err)

	_, err = f.uc.ReceiveOrder(context.Background(), testTenant, testUser, order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "RECEIVED es terminal")
	assert.Len(t, f.movs.movements, 2, "la segunda recepción no duplica movimientos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestExportOrder_PDFyXML(t *testing.T) {
	f := newFixture(7)
	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)

	pdfBytes, err := f.uc.ExportOrderPDF(context.Background(), testTenant, order.ID)
	require.NoError(t, err)
	assert.Contains(t, string(pdfBytes), order.OrderNumber)
	assert.Equal(t, 1, f.pdf.calls)

	xmlBytes, err := f.uc.ExportOrderXML(context.Background(), testTenant, order.ID)
	require.NoError(t, err)
	assert.Contains(t, string(xmlBytes), order.OrderNumber)
	assert.Equal(t, 1, f.xml.calls)

	// Tenant ajeno no exporta.
	_, err = f.uc.ExportOrderPDF(context.Background(), "tenant-ajeno", order.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// El default de días de entrega aplica cuando el valor configurado es inválido.
func TestNewPurchaseOrderUseCase_DeliveryDaysDefault(t *testing.T) {
	f := newFixture(0)
	order, err := f.uc.GeneratePurchaseOrder(context.Background(), testTenant, testUser, ordenBasica())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), order.ExpectedDelivery, time.Minute)
}
