package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/application/usecase"
)

// EmpleadoHandler maneja las peticiones HTTP de empleados (protegido).
type EmpleadoHandler struct {
	uc *usecase.EmpleadoUseCase
}

// NewEmpleadoHandler construye el handler.
func NewEmpleadoHandler(uc *usecase.EmpleadoUseCase) *EmpleadoHandler {
	return &EmpleadoHandler{uc: uc}
}

// Create POST /api/empleados
func (h *EmpleadoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmpleadoRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/empleados/:id
func (h *EmpleadoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/empleados?q=&limit=&offset=
func (h *EmpleadoHandler) List(c *fiber.Ctx) error {
	var q busquedaQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), q.Q, q.PageRequest)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/empleados/:id
func (h *EmpleadoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmpleadoRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/empleados/:id (inactiva)
func (h *EmpleadoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
