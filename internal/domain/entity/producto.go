package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un artículo que se compra y se vende.
// Costo es promedio ponderado calculado desde las compras recibidas; Stock solo
// cambia mediante movimientos de inventario.
type Producto struct {
	ID           string
	CategoriaID  string
	Codigo       string // SKU, único
	Nombre       string
	Descripcion  string
	PrecioVenta  decimal.Decimal
	Costo        decimal.Decimal
	TasaImpuesto decimal.Decimal // porcentaje: 0, 5, 19
	Stock        decimal.Decimal
	StockMinimo  decimal.Decimal
	Estado       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Activo indica si el producto puede venderse o comprarse.
func (p *Producto) Activo() bool { return p.Estado == EstadoActivo }

// BajoStockMinimo es true cuando el stock está en o por debajo del mínimo.
func (p *Producto) BajoStockMinimo() bool {
	return p.Stock.LessThanOrEqual(p.StockMinimo)
}

// TasaImpuestoValida acepta 0, 5 y 19 (IVA Colombia).
func TasaImpuestoValida(t decimal.Decimal) bool {
	return t.Equal(decimal.Zero) || t.Equal(decimal.NewFromInt(5)) || t.Equal(decimal.NewFromInt(19))
}
