package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	store             *store.Store
	lowStockThreshold int
}

// NewProductHandler construye el handler.
func NewProductHandler(st *store.Store, lowStockThreshold int) *ProductHandler {
	return &ProductHandler{store: st, lowStockThreshold: lowStockThreshold}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if !bind(c, &in) {
		return nil
	}
	p, err := h.store.AddProduct(c.UserContext(), GetBusinessID(c), store.ProductInput{
		Name:      in.Name,
		UnitPrice: in.UnitPrice,
		Quantity:  in.Quantity,
		Category:  in.Category,
		Supplier:  in.Supplier,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(p, h.lowStockThreshold))
}

// List godoc
// @Summary      Listar productos
// @Description  Productos del negocio en orden de alta, con valor en inventario y marca de stock bajo.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.store.ListProducts(c.UserContext(), GetBusinessID(c))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProductResponse(p, h.lowStockThreshold))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if !bind(c, &in) {
		return nil
	}
	p, err := h.store.UpdateProduct(c.UserContext(), GetBusinessID(c), c.Params("id"), entity.ProductPatch{
		Name:      in.Name,
		UnitPrice: in.UnitPrice,
		Quantity:  in.Quantity,
		Category:  in.Category,
		Supplier:  in.Supplier,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p, h.lowStockThreshold))
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Las ventas del producto se conservan.
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteProduct(c.UserContext(), GetBusinessID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
