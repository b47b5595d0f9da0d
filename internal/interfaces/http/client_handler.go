package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/internal/domain/validation"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
)

// ClientHandler páginas del cadastro de clientes.
type ClientHandler struct {
	uc  *usecase.ClientUseCase
	log *logger.Logger
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase, log *logger.Logger) *ClientHandler {
	return &ClientHandler{uc: uc, log: log}
}

// List GET /clients?q=
func (h *ClientHandler) List(c *fiber.Ctx) error {
	q := c.Query("q")
	list, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.Render(ViewClientsList, fiber.Map{
		"Title":   "Clientes",
		"Query":   q,
		"Clients": list,
	})
}

// New GET /clients/new
func (h *ClientHandler) New(c *fiber.Ctx) error {
	return h.renderForm(c, h.uc.NewForm())
}

// Create POST /clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		// Cuerpo ilegible: se valida como formulario vacío.
		h.log.Debug().Err(err).Msg("body del formulario de alta")
	}
	if _, err := h.uc.Create(c.UserContext(), in); err != nil {
		var errs validation.Errors
		if errors.As(err, &errs) {
			return h.renderForm(c, h.uc.CreateFormWithErrors(in, errs))
		}
		return err
	}
	return c.Redirect("/clients", fiber.StatusFound)
}

// Edit GET /clients/:id/edit
func (h *ClientHandler) Edit(c *fiber.Ctx) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}
	form, err := h.uc.EditForm(c.UserContext(), id)
	if err != nil {
		return notFoundOr(err)
	}
	return h.renderForm(c, form)
}

// Update POST /clients/:id/update
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		h.log.Debug().Err(err).Int64("id", id).Msg("body del formulario de edición")
	}
	if _, err := h.uc.Update(c.UserContext(), id, in); err != nil {
		var errs validation.Errors
		if errors.As(err, &errs) {
			form, ferr := h.uc.UpdateFormWithErrors(c.UserContext(), id, in, errs)
			if ferr != nil {
				return notFoundOr(ferr)
			}
			return h.renderForm(c, form)
		}
		return notFoundOr(err)
	}
	return c.Redirect("/clients", fiber.StatusFound)
}

// Delete POST /clients/:id/delete. Siempre redirige; un ID inexistente no es error.
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.Redirect("/clients", fiber.StatusFound)
}

func (h *ClientHandler) renderForm(c *fiber.Ctx, form dto.ClientFormView) error {
	return c.Render(ViewClientForm, fiber.Map{
		"Title": "Cliente",
		"Form":  form,
	})
}

// clientID lee :id; un valor no numérico responde 404.
func clientID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fiber.ErrNotFound
	}
	return err
}
