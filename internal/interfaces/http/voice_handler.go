package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
	"github.com/jhoicas/salesflow-api/internal/domain/authz"
	"github.com/jhoicas/salesflow-api/internal/domain/voice"
)

// VoiceHandler interpreta dictados ya transcritos.
type VoiceHandler struct {
	uc *usecase.VoiceUseCase
}

// NewVoiceHandler construye el handler.
func NewVoiceHandler(uc *usecase.VoiceUseCase) *VoiceHandler {
	return &VoiceHandler{uc: uc}
}

// Interpret godoc
// @Summary      Interpretar dictado
// @Description  Convierte un texto como "Rice 5kg, quantity 10, price 25 GHS" en un borrador de producto,
//               o "sold 5 Rice 5kg" en uno de venta. Con commit=true lo registra.
//               Usa el LLM configurado y, si falla, el parser de reglas. Timeout interno de 10 s.
// @Tags         voice
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VoiceRequest  true  "transcript, commit"
// @Success      200   {object}  dto.VoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Router       /api/voice/interpret [post]
func (h *VoiceHandler) Interpret(c *fiber.Ctx) error {
	var in dto.VoiceRequest
	if !bind(c, &in) {
		return nil
	}
	role := GetRole(c)
	out, err := h.uc.InterpretGuarded(c.UserContext(), GetBusinessID(c), in, func(i voice.Intent) bool {
		if i == voice.IntentSale {
			return authz.Can(role, authz.SalesWrite)
		}
		return authz.Can(role, authz.InventoryWrite)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
