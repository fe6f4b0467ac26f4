package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-ventas/internal/domain"
)

// Estados de una venta.
const (
	VentaRegistrada = "REGISTRADA"
	VentaAnulada    = "ANULADA"
)

// Venta es la cabecera de una venta a un cliente.
type Venta struct {
	ID            string
	Numero        string // V-000001
	ClienteID     string
	EmpleadoID    string
	Fecha         time.Time
	Subtotal      decimal.Decimal
	Impuesto      decimal.Decimal
	Total         decimal.Decimal
	Estado        string
	Observaciones string
	Detalles      []*DetalleVenta
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DetalleVenta es una línea de la venta.
type DetalleVenta struct {
	ID             string
	VentaID        string
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	TasaImpuesto   decimal.Decimal
	Subtotal       decimal.Decimal
	ValorImpuesto  decimal.Decimal
	Total          decimal.Decimal
}

// NuevaVenta crea una venta vacía en estado REGISTRADA.
func NuevaVenta(clienteID, empleadoID string, fecha time.Time) *Venta {
	return &Venta{
		ID:         uuid.New().String(),
		ClienteID:  clienteID,
		EmpleadoID: empleadoID,
		Fecha:      fecha,
		Estado:     VentaRegistrada,
		CreatedAt:  fecha,
		UpdatedAt:  fecha,
	}
}

// AgregarDetalle añade una línea y recalcula los totales. Si el producto ya
// está en la venta con el mismo precio se suman las cantidades.
func (v *Venta) AgregarDetalle(productoID string, cantidad, precio, tasa decimal.Decimal) error {
	if !validarLinea(productoID, cantidad, precio, DecimalesPrecio) {
		return fmt.Errorf("%w: línea de venta %q", domain.ErrInvalidInput, productoID)
	}
	for _, d := range v.Detalles {
		if d.ProductoID != productoID {
			continue
		}
		if !d.PrecioUnitario.Equal(precio) {
			return fmt.Errorf("%w: producto %s repetido con precios distintos", domain.ErrInvalidInput, productoID)
		}
		d.Cantidad = d.Cantidad.Add(cantidad)
		d.Subtotal, d.ValorImpuesto, d.Total = calcularLinea(d.Cantidad, d.PrecioUnitario, d.TasaImpuesto)
		v.CalcularTotales()
		return nil
	}
	d := &DetalleVenta{
		ID:             uuid.New().String(),
		VentaID:        v.ID,
		ProductoID:     productoID,
		Cantidad:       cantidad,
		PrecioUnitario: precio,
		TasaImpuesto:   tasa,
	}
	d.Subtotal, d.ValorImpuesto, d.Total = calcularLinea(cantidad, precio, tasa)
	v.Detalles = append(v.Detalles, d)
	v.CalcularTotales()
	return nil
}

// CalcularTotales suma las líneas en la cabecera.
func (v *Venta) CalcularTotales() {
	v.Subtotal, v.Impuesto, v.Total = decimal.Zero, decimal.Zero, decimal.Zero
	for _, d := range v.Detalles {
		v.Subtotal = v.Subtotal.Add(d.Subtotal)
		v.Impuesto = v.Impuesto.Add(d.ValorImpuesto)
		v.Total = v.Total.Add(d.Total)
	}
}

// Anular pasa la venta a ANULADA. Solo se anulan ventas REGISTRADAS.
func (v *Venta) Anular(now time.Time) error {
	if v.Estado != VentaRegistrada {
		return fmt.Errorf("%w: venta %s en estado %s", domain.ErrInvalidTransition, v.Numero, v.Estado)
	}
	v.Estado = VentaAnulada
	v.UpdatedAt = now
	return nil
}
