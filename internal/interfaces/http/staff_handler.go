package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/store"
)

// StaffHandler alta y gestión del personal (solo admin).
type StaffHandler struct {
	store *store.Store
}

// NewStaffHandler construye el handler.
func NewStaffHandler(st *store.Store) *StaffHandler {
	return &StaffHandler{store: st}
}

// List godoc
// @Summary      Listar personal
// @Tags         staff
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StaffResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/staff [get]
func (h *StaffHandler) List(c *fiber.Ctx) error {
	list, err := h.store.ListStaff(c.UserContext(), GetBusinessID(c))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StaffResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewStaffResponse(m))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar empleado
// @Description  Crea la ficha y la credencial (rol staff) del empleado.
// @Tags         staff
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStaffRequest  true  "name, email, role, password"
// @Success      201   {object}  dto.StaffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff [post]
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStaffRequest
	if !bind(c, &in) {
		return nil
	}
	m, err := h.store.AddStaffMember(c.UserContext(), GetBusinessID(c), store.StaffInput{
		Name:         in.Name,
		Email:        in.Email,
		RoleLabel:    in.RoleLabel,
		Password:     in.Password,
		BusinessName: GetBusinessName(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStaffResponse(m))
}

// UpdateStatus godoc
// @Summary      Activar o desactivar empleado
// @Description  Un empleado inactivo no puede iniciar sesión.
// @Tags         staff
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdateStaffStatusRequest  true  "active o inactive"
// @Success      200   {object}  dto.StaffResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/staff/{id}/status [patch]
func (h *StaffHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStaffStatusRequest
	if !bind(c, &in) {
		return nil
	}
	m, err := h.store.UpdateStaffStatus(c.UserContext(), GetBusinessID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewStaffResponse(m))
}

// ResetPassword godoc
// @Summary      Restablecer contraseña de empleado
// @Tags         staff
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.ResetStaffPasswordRequest  true  "password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/staff/{id}/password [post]
func (h *StaffHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetStaffPasswordRequest
	if !bind(c, &in) {
		return nil
	}
	if err := h.store.ResetStaffPassword(c.UserContext(), GetBusinessID(c), c.Params("id"), in.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña actualizada"})
}
