package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SaleHandler registro y consulta de ventas.
type SaleHandler struct {
	store     *store.Store
	dashboard *analytics.DashboardUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(st *store.Store, dashboard *analytics.DashboardUseCase) *SaleHandler {
	return &SaleHandler{store: st, dashboard: dashboard}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock del producto en la misma operación. Sin amount se usa precio × cantidad; sin date, hoy.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "product_id, quantity, amount, date"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if !bind(c, &in) {
		return nil
	}
	ctx := c.UserContext()
	businessID := GetBusinessID(c)
	sale, err := h.store.AddSale(ctx, businessID, store.SaleInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Amount:    in.Amount,
		Date:      in.Date,
	})
	if err != nil {
		return writeError(c, err)
	}
	name := ""
	if products, err := h.store.ListProducts(ctx, businessID); err == nil {
		for _, p := range products {
			if p.ID == sale.ProductID {
				name = p.Name
				break
			}
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSaleResponse(sale, name))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.dashboard.ListSales(c.UserContext(), GetBusinessID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar ventas a Excel
// @Tags         sales
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/sales/export [get]
func (h *SaleHandler) Export(c *fiber.Ctx) error {
	data, err := h.dashboard.ExportSales(c.UserContext(), GetBusinessID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas.xlsx"`)
	return c.Send(data)
}
