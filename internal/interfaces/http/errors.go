package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/pkg/validator"
)

// LocalError guarda el error interno para el log de acceso.
const LocalError = "error"

var (
	errCuerpoInvalido = errors.New("cuerpo inválido")
	errQueryInvalida  = errors.New("parámetros de consulta inválidos")
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// writeError traduce errores de dominio a respuestas HTTP. Lo no reconocido es 500
// y el detalle solo va al log.
func writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errCuerpoInvalido) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	if errors.Is(err, errQueryInvalida) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: ve.Fields,
		})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: mensaje(err, m.target)})
		}
	}
	c.Locals(LocalError, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// mensaje quita el prefijo del sentinel: "recurso no encontrado: cliente X" -> "cliente X".
func mensaje(err, target error) string {
	msg := err.Error()
	if detalle, ok := strings.CutPrefix(msg, target.Error()+": "); ok {
		return detalle
	}
	return msg
}

// bindJSON decodifica el cuerpo y valida los tags `validate`.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errCuerpoInvalido
	}
	return validator.Struct(dst)
}

// bindQuery decodifica la query string y la valida.
func bindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return errQueryInvalida
	}
	return validator.Struct(dst)
}
