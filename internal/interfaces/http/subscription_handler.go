package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/subscription"
)

// SubscriptionHandler estado y activación del plan.
type SubscriptionHandler struct {
	uc *subscription.UseCase
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(uc *subscription.UseCase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

// Get godoc
// @Summary      Estado de la suscripción
// @Tags         subscription
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subscription [get]
func (h *SubscriptionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetBusinessID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Activar suscripción
// @Description  Registra un pago: el plan queda activo 30 días desde hoy.
// @Tags         subscription
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/subscription/activate [post]
func (h *SubscriptionHandler) Activate(c *fiber.Ctx) error {
	out, err := h.uc.Activate(c.UserContext(), GetBusinessID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
