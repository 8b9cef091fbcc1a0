package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain/authz"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// Locals keys de la sesión en Fiber.
const (
	LocalUserID       = "user_id"
	LocalBusinessID   = "business_id"
	LocalRole         = "role"
	LocalBusinessName = "business_name"
	LocalToken        = "token"
)

// sessionReader lo que el middleware necesita del caso de uso de auth.
type sessionReader interface {
	GetSession(ctx context.Context, token string) (*entity.Session, error)
}

// AuthMiddleware valida el Bearer Token, restaura la sesión (perfil, revocación, estado)
// y carga usuario, negocio y rol en c.Locals.
func AuthMiddleware(sessions sessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		session, err := sessions.GetSession(c.UserContext(), tokenString)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalUserID, session.UserID)
		c.Locals(LocalBusinessID, session.BusinessID)
		c.Locals(LocalRole, session.Role)
		c.Locals(LocalBusinessName, session.BusinessName)
		c.Locals(LocalToken, tokenString)
		return c.Next()
	}
}

// RequireAction corta con 403 si el rol de la sesión no puede ejecutar la acción.
// Debe ir después de AuthMiddleware.
func RequireAction(action authz.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authz.Can(GetRole(c), action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "tu rol no permite " + string(action),
			})
		}
		return c.Next()
	}
}

func local(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return local(c, LocalUserID) }

// GetBusinessID devuelve el negocio de la sesión.
func GetBusinessID(c *fiber.Ctx) string { return local(c, LocalBusinessID) }

// GetRole devuelve admin o staff.
func GetRole(c *fiber.Ctx) string { return local(c, LocalRole) }

// GetBusinessName nombre visible del negocio.
func GetBusinessName(c *fiber.Ctx) string { return local(c, LocalBusinessName) }

// GetToken token crudo de la petición (para logout).
func GetToken(c *fiber.Ctx) string { return local(c, LocalToken) }
