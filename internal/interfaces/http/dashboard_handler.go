package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/salesflow-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen, los insights y el reporte PDF.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los KPIs del negocio: ventas de hoy, ingresos, margen estimado,
// balance de stock, deudas y los productos con stock bajo.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetBusinessID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetInsights mensajes de recomendación derivados de los datos.
// GET /api/insights
func (h *DashboardHandler) GetInsights(c *fiber.Ctx) error {
	list, err := h.uc.GetInsights(c.UserContext(), GetBusinessID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// BusinessReport godoc
// @Summary      Reporte del negocio en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/business.pdf [get]
func (h *DashboardHandler) BusinessReport(c *fiber.Ctx) error {
	data, err := h.uc.BusinessReportPDF(c.UserContext(), GetBusinessID(c), GetBusinessName(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="reporte.pdf"`)
	return c.Send(data)
}
