package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// RequestLogger registra método, ruta, status y latencia de cada petición.
// Va después de OptionalAuth para incluir el usuario cuando lo hay.
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

		logged := err
		if handled, ok := c.Locals(LocalError).(error); ok && logged == nil {
			logged = handled
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(logged)
		}
		if userID := GetUserID(c); userID != "" {
			ev = ev.Str("user_id", userID)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http request")
		return err
	}
}
