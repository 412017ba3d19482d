package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Sparepart-api/pkg/logger"
)

// AccessLog registra método, ruta, status y latencia de cada petición.
func AccessLog(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
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

		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		}
		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", rid).
			Msg("request")
		return err
	}
}
