package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymdesk-api/pkg/logger"
)

// LocalErrorCause guarda la causa de una respuesta 5xx ya escrita, para el log de la petición.
const LocalErrorCause = "error_cause"

// RequestLogger registra cada petición con método, ruta, status y duración.
// Las respuestas 5xx se registran como error con su causa.
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
			cause := err
			if cause == nil {
				cause, _ = c.Locals(LocalErrorCause).(error)
			}
			ev = log.Error().Err(cause)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("owner_id", GetOwnerID(c)).
			Msg("http")
		return err
	}
}
