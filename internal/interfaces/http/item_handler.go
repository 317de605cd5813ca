package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario-api/internal/application/dto"
	"github.com/jhoicas/resto-inventario-api/internal/application/inventory"
	"github.com/jhoicas/resto-inventario-api/internal/domain/repository"
)

// ItemHandler maneja las peticiones HTTP para insumos (protegido).
type ItemHandler struct {
	uc *inventory.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear insumo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del insumo"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	item, err := h.uc.CreateItem(c.Context(), GetTenantID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(inventory.ToItemDTO(item)))
}

// GetByID godoc
// @Summary      Obtener insumo por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("id es requerido"))
	}
	item, err := h.uc.GetItem(c.Context(), GetTenantID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(inventory.ToItemDTO(item)))
}

// List godoc
// @Summary      Listar insumos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        outlet_id       query  string  false  "Sucursal"
// @Param        category        query  string  false  "Categoría"
// @Param        search          query  string  false  "Búsqueda por nombre"
// @Param        low_stock_only  query  bool    false  "Solo stock bajo"
// @Param        limit           query  int     false  "Límite"   default(20)
// @Param        offset          query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.Envelope
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var in dto.ListItemsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("query inválido"))
	}
	in.DefaultPage()

	items, total, err := h.uc.ListItems(c.Context(), repository.ItemFilter{
		TenantID:     GetTenantID(c),
		OutletID:     in.OutletID,
		Category:     in.Category,
		Search:       in.Search,
		LowStockOnly: in.LowStockOnly,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, inventory.ToItemDTO(item))
	}
	return c.JSON(dto.OKMeta(out, dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total}))
}

// Update godoc
// @Summary      Actualizar insumo (atributos descriptivos, no stock)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.UpdateItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("id es requerido"))
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	item, err := h.uc.UpdateItem(c.Context(), GetTenantID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(inventory.ToItemDTO(item)))
}

// Delete godoc
// @Summary      Eliminar insumo (el historial de movimientos se conserva)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("id es requerido"))
	}
	if err := h.uc.DeleteItem(c.Context(), GetTenantID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Envelope{Success: true, Message: "insumo eliminado"})
}

// BulkImport godoc
// @Summary      Importación masiva de insumos (best-effort)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkImportRequest  true  "Insumos a importar"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Router       /api/items/bulk-import [post]
func (h *ItemHandler) BulkImport(c *fiber.Ctx) error {
	var in dto.BulkImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	result, err := h.uc.BulkImportItems(c.Context(), GetTenantID(c), in.Items)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(result))
}
