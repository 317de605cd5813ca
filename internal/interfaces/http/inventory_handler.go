package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario-api/internal/application/dto"
	"github.com/jhoicas/resto-inventario-api/internal/application/inventory"
	"github.com/jhoicas/resto-inventario-api/internal/domain"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
)

// InventoryHandler maneja el motor de inventario: movimientos de stock,
// recepciones, traslados y consumo de recetas (protegido).
type InventoryHandler struct {
	ledger      *inventory.LedgerUseCase
	transfer    *inventory.TransferUseCase
	consumption *inventory.ConsumptionUseCase
	receipt     *inventory.ReceiptUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.LedgerUseCase,
	transfer *inventory.TransferUseCase,
	consumption *inventory.ConsumptionUseCase,
	receipt *inventory.ReceiptUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		ledger:      ledger,
		transfer:    transfer,
		consumption: consumption,
		receipt:     receipt,
	}
}

// UpdateStock godoc
// @Summary      Aplicar movimiento de stock (IN, OUT, ADJUSTMENT)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStockRequest  true  "Movimiento"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      422   {object}  dto.Envelope
// @Router       /api/inventory/stock [post]
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("item_id es requerido"))
	}
	out, err := h.ledger.UpdateStock(c.Context(), inventory.UpdateStockInput{
		TenantID:  GetTenantID(c),
		UserID:    GetUserID(c),
		ItemID:    in.ItemID,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Reason:    in.Reason,
		Reference: in.Reference,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{
		"item":     inventory.ToItemDTO(out.Item),
		"movement": toMovementDTO(out.Movement),
	}))
}

// ListMovements godoc
// @Summary      Consultar el libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id    query  string  false  "Por insumo"
// @Param        outlet_id  query  string  false  "Por sucursal"
// @Param        from       query  string  false  "Desde (RFC3339)"
// @Param        to         query  string  false  "Hasta (RFC3339)"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.Envelope
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("query inválido"))
	}
	in.DefaultPage()

	movements, err := h.ledger.GetStockMovements(c.Context(),
		GetTenantID(c), in.ItemID, in.OutletID, in.From, in.To, in.Limit, in.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return c.JSON(dto.OKMeta(out, dto.PageResponse{Limit: in.Limit, Offset: in.Offset}))
}

// ProcessReceipt godoc
// @Summary      Procesar recepción de mercancía (best-effort por renglón)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessReceiptRequest  true  "Recepción"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) ProcessReceipt(c *fiber.Ctx) error {
	var in dto.ProcessReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	result, err := h.receipt.ProcessStockReceipt(c.Context(), inventory.ReceiptInput{
		TenantID:      GetTenantID(c),
		UserID:        GetUserID(c),
		OutletID:      in.OutletID,
		SupplierID:    in.SupplierID,
		ReceiptNumber: in.ReceiptNumber,
		Notes:         in.Notes,
		Lines:         in.Lines,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(result))
}

// Transfer godoc
// @Summary      Trasladar stock entre sucursales (atómico)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Traslado"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      422   {object}  dto.Envelope
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	result, err := h.transfer.TransferStock(c.Context(), inventory.TransferInput{
		TenantID:     GetTenantID(c),
		UserID:       GetUserID(c),
		ItemName:     in.ItemName,
		FromOutletID: in.FromOutletID,
		ToOutletID:   in.ToOutletID,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(result))
}

// ConsumeRecipe godoc
// @Summary      Consumir ingredientes de una receta (todo-o-nada)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRecipeRequest  true  "Receta y multiplicador"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      422   {object}  dto.Envelope
// @Router       /api/inventory/consumption [post]
func (h *InventoryHandler) ConsumeRecipe(c *fiber.Ctx) error {
	var in dto.ConsumeRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	result, err := h.consumption.ProcessRecipeConsumption(c.Context(), inventory.ConsumptionInput{
		TenantID:    GetTenantID(c),
		UserID:      GetUserID(c),
		OutletID:    in.OutletID,
		RecipeID:    in.RecipeID,
		RecipeName:  in.RecipeName,
		Quantity:    in.Quantity,
		Ingredients: in.Ingredients,
	})
	if err != nil {
		// Rechazo por faltantes: reporte completo en el cuerpo, nada descontado.
		if errors.Is(err, domain.ErrInsufficientStock) && result != nil {
			return c.Status(fiber.StatusUnprocessableEntity).
				JSON(dto.FailData("stock insuficiente para la receta", result))
		}
		return fail(c, err)
	}
	return c.JSON(dto.OK(result))
}

// ValidateStock godoc
// @Summary      Validar disponibilidad para una receta sin descontar
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRecipeRequest  true  "Receta y multiplicador"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Router       /api/inventory/validate [post]
func (h *InventoryHandler) ValidateStock(c *fiber.Ctx) error {
	var in dto.ConsumeRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	result, err := h.consumption.ValidateStockForOrder(c.Context(), inventory.ConsumptionInput{
		TenantID:    GetTenantID(c),
		OutletID:    in.OutletID,
		RecipeID:    in.RecipeID,
		RecipeName:  in.RecipeName,
		Quantity:    in.Quantity,
		Ingredients: in.Ingredients,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(result))
}

// toMovementDTO mapea la entidad del libro al DTO de respuesta.
func toMovementDTO(m *entity.StockMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ItemID:        m.ItemID,
		OutletID:      m.OutletID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Reference:     m.Reference,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
