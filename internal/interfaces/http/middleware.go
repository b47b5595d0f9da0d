package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/cadastro-clientes/pkg/logger"
	"github.com/jhoicas/cadastro-clientes/pkg/metrics"
)

// RequestIDHeader cabecera con el ID de la solicitud.
const RequestIDHeader = fiber.HeaderXRequestID

// RequestID asigna un UUID a cada solicitud (o respeta el recibido).
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		Generator:  uuid.NewString,
		ContextKey: "requestid",
	})
}

// GetRequestID devuelve el ID asignado por RequestID.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// AccessLog registra cada solicitud y alimenta las métricas HTTP. m puede ser nil.
func AccessLog(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}
		route := c.Route().Path
		m.ObserveRequest(c.Method(), route, status, start)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http request")
		return err
	}
}
