package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/application/ventas"
)

// VentaHandler maneja las peticiones HTTP de ventas (protegido).
type VentaHandler struct {
	uc *ventas.UseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *ventas.UseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock de cada línea en una sola transacción. Sin stock suficiente no se guarda nada.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVentaRequest  true  "cliente_id, items"
// @Success      201   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVentaRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Registrar(c.UserContext(), GetEmpleadoID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.VentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        cliente_id  query  string  false  "Cliente"
// @Param        estado      query  string  false  "REGISTRADA | ANULADA"
// @Param        desde       query  string  false  "Fecha inicial (2006-01-02)"
// @Param        hasta       query  string  false  "Fecha final inclusiva (2006-01-02)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.VentaListResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	var in dto.VentaFiltroRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Listar(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Anular godoc
// @Summary      Anular venta
// @Description  Devuelve al inventario lo vendido.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.VentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/anular [post]
func (h *VentaHandler) Anular(c *fiber.Ctx) error {
	out, err := h.uc.Anular(c.UserContext(), GetEmpleadoID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Comprobante godoc
// @Summary      Descargar comprobante PDF
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/comprobante [get]
func (h *VentaHandler) Comprobante(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ComprobantePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
