package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
)

// planChecker es el contrato mínimo que necesita el middleware para verificar el plan.
// Lo implementa *subscription.UseCase.
type planChecker interface {
	IsActive(ctx context.Context, businessID string) (bool, error)
}

// RequireActivePlan bloquea las escrituras de un negocio con la prueba o el plan vencido.
// Debe usarse DESPUÉS de AuthMiddleware. Las lecturas (GET/HEAD) siempre pasan.
//
// Comportamiento:
//   - 402 Payment Required → plan vencido o inexistente.
//   - 503 Service Unavailable → fallo al consultar la suscripción.
func RequireActivePlan(checker planChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead {
			return c.Next()
		}
		active, err := checker.IsActive(c.UserContext(), GetBusinessID(c))
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PLAN_CHECK_FAILED",
				Message: "no se pudo verificar la suscripción, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Code:    "PLAN_EXPIRED",
				Message: "la suscripción venció; actívala para seguir registrando datos",
			})
		}
		return c.Next()
	}
}
