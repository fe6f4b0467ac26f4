package ports

import (
	"context"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// LineaComprobante detalle de venta con los datos del producto para impresión.
type LineaComprobante struct {
	entity.DetalleVenta
	Codigo string
	Nombre string
}

// ComprobanteVenta datos completos para la representación gráfica de una venta.
type ComprobanteVenta struct {
	Venta    *entity.Venta
	Cliente  *entity.Cliente
	Empleado *entity.Empleado // puede ser nil si el empleado fue eliminado
	Lineas   []LineaComprobante
}

// ComprobanteGenerator genera el PDF del comprobante de venta.
type ComprobanteGenerator interface {
	GenerarComprobanteVenta(ctx context.Context, c ComprobanteVenta) ([]byte, error)
}
