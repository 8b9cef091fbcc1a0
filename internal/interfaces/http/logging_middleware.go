package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/pkg/logger"
)

// RequestLogger registra cada petición. Las respuestas 5xx incluyen el error original,
// que nunca se expone al cliente.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if cause, ok := c.Locals(localError).(error); ok {
				ev = ev.Err(cause)
			} else if err != nil {
				ev = ev.Err(err)
			}
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("business_id", GetBusinessID(c)).
			Msg("http")
		return err
	}
}
