package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario-api/internal/application/dto"
	"github.com/jhoicas/resto-inventario-api/internal/application/purchasing"
)

// PurchaseOrderHandler gestiona las órdenes de compra a proveedor (protegido).
type PurchaseOrderHandler struct {
	uc *purchasing.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateOrderRequest  true  "Renglones solicitados"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	order, err := h.uc.GeneratePurchaseOrder(c.Context(), GetTenantID(c), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(purchasing.ToOrderDTO(order)))
}

// GetByID godoc
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("id es requerido"))
	}
	order, err := h.uc.GetOrder(c.Context(), GetTenantID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(purchasing.ToOrderDTO(order)))
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        outlet_id  query  string  false  "Sucursal"
// @Param        status     query  string  false  "Estado"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.Envelope
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var in dto.ListOrdersRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("query inválido"))
	}
	in.DefaultPage()

	orders, err := h.uc.ListOrders(c.Context(), GetTenantID(c), in.OutletID, in.Status, in.Limit, in.Offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, purchasing.ToOrderDTO(o))
	}
	return c.JSON(dto.OKMeta(out, dto.PageResponse{Limit: in.Limit, Offset: in.Offset}))
}

// UpdateStatus godoc
// @Summary      Transicionar estado de la orden (APPROVED, ORDERED, CANCELLED)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  object  true  "{status}"
// @Success      200   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/purchase-orders/{id}/status [put]
func (h *PurchaseOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("id es requerido"))
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil || in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("status es requerido"))
	}
	order, err := h.uc.UpdateOrderStatus(c.Context(), GetTenantID(c), id, in.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(purchasing.ToOrderDTO(order)))
}

// Receive godoc
// @Summary      Recibir la orden e ingresar la mercancía al inventario
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("id es requerido"))
	}
	order, err := h.uc.ReceiveOrder(c.Context(), GetTenantID(c), GetUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(purchasing.ToOrderDTO(order)))
}

// ExportPDF godoc
// @Summary      Descargar la orden en PDF
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  byte
// @Failure      404  {object}  dto.Envelope
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *PurchaseOrderHandler) ExportPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("id es requerido"))
	}
	pdfBytes, err := h.uc.ExportOrderPDF(c.Context(), GetTenantID(c), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orden-compra.pdf"`)
	return c.Send(pdfBytes)
}

// ExportXML godoc
// @Summary      Descargar la orden en XML para el proveedor
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  byte
// @Failure      404  {object}  dto.Envelope
// @Router       /api/purchase-orders/{id}/xml [get]
func (h *PurchaseOrderHandler) ExportXML(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("id es requerido"))
	}
	xmlBytes, err := h.uc.ExportOrderXML(c.Context(), GetTenantID(c), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orden-compra.xml"`)
	return c.Send(xmlBytes)
}
