package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ventas/internal/application/compras"
	"github.com/jhoicas/gestion-ventas/internal/application/dto"
)

// CompraHandler maneja las peticiones HTTP de compras (protegido).
type CompraHandler struct {
	uc *compras.UseCase
}

// NewCompraHandler construye el handler.
func NewCompraHandler(uc *compras.UseCase) *CompraHandler {
	return &CompraHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra
// @Description  Queda PENDIENTE salvo que recibir_inmediato sea true.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompraRequest  true  "proveedor_id, items"
// @Success      201   {object}  dto.CompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *CompraHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompraRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Registrar(c.UserContext(), GetEmpleadoID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/compras/:id
func (h *CompraHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/compras?proveedor_id=&estado=&desde=&hasta=
func (h *CompraHandler) List(c *fiber.Ctx) error {
	var in dto.CompraFiltroRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Listar(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recibir godoc
// @Summary      Recibir compra
// @Description  Ingresa la mercancía y recalcula el costo promedio ponderado.
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.CompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/recibir [post]
func (h *CompraHandler) Recibir(c *fiber.Ctx) error {
	out, err := h.uc.Recibir(c.UserContext(), GetEmpleadoID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Anular POST /api/compras/:id/anular. 409 INSUFFICIENT_STOCK si la mercancía ya salió.
func (h *CompraHandler) Anular(c *fiber.Ctx) error {
	out, err := h.uc.Anular(c.UserContext(), GetEmpleadoID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
