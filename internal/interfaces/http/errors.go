package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
)

// ErrorHandler convierte los errores de los handlers en páginas HTML:
// 404 para recursos inexistentes, 500 para fallas de almacenamiento u otras.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusFor(err)
		if code == fiber.StatusNotFound {
			return render(c.Status(code), ViewNotFound, fiber.Map{"Title": "Não encontrado"})
		}
		if code < fiber.StatusInternalServerError {
			return c.Status(code).SendString(err.Error())
		}

		log.Error().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("error interno")
		return render(c.Status(code), ViewError, fiber.Map{
			"Title":     "Erro",
			"RequestID": GetRequestID(c),
		})
	}
}

// statusFor código HTTP de un error devuelto por un handler.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// render responde texto plano si la vista falla.
func render(c *fiber.Ctx, view string, data fiber.Map) error {
	if err := c.Render(view, data); err != nil {
		return c.SendString(utils.StatusMessage(c.Response().StatusCode()))
	}
	return nil
}
