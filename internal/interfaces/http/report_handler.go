package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario-api/internal/application/dto"
	"github.com/jhoicas/resto-inventario-api/internal/application/inventory"
)

// ReportHandler lecturas derivadas: alertas de stock bajo y estadísticas (protegido).
type ReportHandler struct {
	uc *inventory.ReportingUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.ReportingUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Alertas de stock bajo (CRITICAL/WARNING)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        outlet_id  query  string  false  "Sucursal (vacío = todas)"
// @Success      200  {object}  dto.Envelope
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	alerts, err := h.uc.CheckLowStock(c.Context(), GetTenantID(c), c.Query("outlet_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OKMeta(alerts, fiber.Map{"count": len(alerts)}))
}

// Statistics godoc
// @Summary      Estadísticas de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        outlet_id  query  string  false  "Sucursal (vacío = todas)"
// @Success      200  {object}  dto.Envelope
// @Router       /api/reports/statistics [get]
func (h *ReportHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.uc.GetStatistics(c.Context(), GetTenantID(c), c.Query("outlet_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OK(stats))
}
