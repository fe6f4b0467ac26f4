package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-ventas/internal/domain"
)

// Estados de una compra.
const (
	CompraPendiente = "PENDIENTE" // registrada, mercancía aún no ingresa
	CompraRecibida  = "RECIBIDA"  // stock y costo actualizados
	CompraAnulada   = "ANULADA"
)

// Compra es la cabecera de una compra a un proveedor.
type Compra struct {
	ID             string
	Numero         string // C-000001
	ProveedorID    string
	EmpleadoID     string
	Fecha          time.Time
	Subtotal       decimal.Decimal
	Impuesto       decimal.Decimal
	Total          decimal.Decimal
	Estado         string
	Observaciones  string
	FechaRecepcion *time.Time
	Detalles       []*DetalleCompra
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DetalleCompra es una línea de la compra.
type DetalleCompra struct {
	ID            string
	CompraID      string
	ProductoID    string
	Cantidad      decimal.Decimal
	CostoUnitario decimal.Decimal
	TasaImpuesto  decimal.Decimal
	Subtotal      decimal.Decimal
	ValorImpuesto decimal.Decimal
	Total         decimal.Decimal
}

// NuevaCompra crea una compra vacía en estado PENDIENTE.
func NuevaCompra(proveedorID, empleadoID string, fecha time.Time) *Compra {
	return &Compra{
		ID:          uuid.New().String(),
		ProveedorID: proveedorID,
		EmpleadoID:  empleadoID,
		Fecha:       fecha,
		Estado:      CompraPendiente,
		CreatedAt:   fecha,
		UpdatedAt:   fecha,
	}
}

// AgregarDetalle añade una línea y recalcula los totales. Un producto repetido
// con el mismo costo suma cantidades.
func (c *Compra) AgregarDetalle(productoID string, cantidad, costo, tasa decimal.Decimal) error {
	if !validarLinea(productoID, cantidad, costo, DecimalesCosto) {
		return fmt.Errorf("%w: línea de compra %q", domain.ErrInvalidInput, productoID)
	}
	for _, d := range c.Detalles {
		if d.ProductoID != productoID {
			continue
		}
		if !d.CostoUnitario.Equal(costo) {
			return fmt.Errorf("%w: producto %s repetido con costos distintos", domain.ErrInvalidInput, productoID)
		}
		d.Cantidad = d.Cantidad.Add(cantidad)
		d.Subtotal, d.ValorImpuesto, d.Total = calcularLinea(d.Cantidad, d.CostoUnitario, d.TasaImpuesto)
		c.CalcularTotales()
		return nil
	}
	d := &DetalleCompra{
		ID:            uuid.New().String(),
		CompraID:      c.ID,
		ProductoID:    productoID,
		Cantidad:      cantidad,
		CostoUnitario: costo,
		TasaImpuesto:  tasa,
	}
	d.Subtotal, d.ValorImpuesto, d.Total = calcularLinea(cantidad, costo, tasa)
	c.Detalles = append(c.Detalles, d)
	c.CalcularTotales()
	return nil
}

// CalcularTotales suma las líneas en la cabecera.
func (c *Compra) CalcularTotales() {
	c.Subtotal, c.Impuesto, c.Total = decimal.Zero, decimal.Zero, decimal.Zero
	for _, d := range c.Detalles {
		c.Subtotal = c.Subtotal.Add(d.Subtotal)
		c.Impuesto = c.Impuesto.Add(d.ValorImpuesto)
		c.Total = c.Total.Add(d.Total)
	}
}

// PuedeTransicionarA aplica la máquina de estados:
// PENDIENTE -> RECIBIDA | ANULADA, RECIBIDA -> ANULADA. ANULADA es terminal.
func (c *Compra) PuedeTransicionarA(destino string) bool {
	switch c.Estado {
	case CompraPendiente:
		return destino == CompraRecibida || destino == CompraAnulada
	case CompraRecibida:
		return destino == CompraAnulada
	}
	return false
}

// MarcarRecibida registra la recepción de la mercancía.
func (c *Compra) MarcarRecibida(now time.Time) error {
	if !c.PuedeTransicionarA(CompraRecibida) {
		return fmt.Errorf("%w: compra %s en estado %s", domain.ErrInvalidTransition, c.Numero, c.Estado)
	}
	c.Estado = CompraRecibida
	c.FechaRecepcion = &now
	c.UpdatedAt = now
	return nil
}

// Anular pasa la compra a ANULADA.
func (c *Compra) Anular(now time.Time) error {
	if !c.PuedeTransicionarA(CompraAnulada) {
		return fmt.Errorf("%w: compra %s en estado %s", domain.ErrInvalidTransition, c.Numero, c.Estado)
	}
	c.Estado = CompraAnulada
	c.UpdatedAt = now
	return nil
}
