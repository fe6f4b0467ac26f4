package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/application/inventario"
)

// InventarioHandler ajustes manuales y kardex (protegido).
type InventarioHandler struct {
	uc *inventario.UseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *inventario.UseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// Ajustar godoc
// @Summary      Registrar ajuste de inventario
// @Description  Cantidad positiva suma y negativa resta. El motivo es obligatorio.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteRequest  true  "producto_id, cantidad, motivo"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajustes [post]
func (h *InventarioHandler) Ajustar(c *fiber.Ctx) error {
	var in dto.AjusteRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Ajustar(c.UserContext(), GetEmpleadoID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Kardex godoc
// @Summary      Kardex de un producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        productoId  path   string  true   "ID del producto"
// @Param        desde       query  string  false  "Fecha inicial (2006-01-02)"
// @Param        hasta       query  string  false  "Fecha final inclusiva (2006-01-02)"
// @Success      200  {object}  dto.KardexResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/kardex/{productoId} [get]
func (h *InventarioHandler) Kardex(c *fiber.Ctx) error {
	var in dto.KardexRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Kardex(c.UserContext(), c.Params("productoId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
