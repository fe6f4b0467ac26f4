package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaVentaRequest una línea de la venta. Si PrecioUnitario es nil se usa el precio del producto.
type LineaVentaRequest struct {
	ProductoID     string           `json:"producto_id" validate:"required,uuid"`
	Cantidad       decimal.Decimal  `json:"cantidad" validate:"gt=0"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario" validate:"omitempty,gte=0"`
}

// CreateVentaRequest entrada para registrar una venta.
type CreateVentaRequest struct {
	ClienteID     string              `json:"cliente_id" validate:"required,uuid"`
	Fecha         *time.Time          `json:"fecha"`
	Observaciones string              `json:"observaciones" validate:"max=500"`
	Items         []LineaVentaRequest `json:"items" validate:"required,min=1,dive"`
}

// VentaFiltroRequest filtros del listado de ventas. Fechas en formato 2006-01-02.
type VentaFiltroRequest struct {
	PageRequest
	ClienteID string `query:"cliente_id" validate:"omitempty,uuid"`
	Estado    string `query:"estado" validate:"omitempty,oneof=REGISTRADA ANULADA"`
	Desde     string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta     string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
}

// DetalleVentaResponse salida de una línea.
type DetalleVentaResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	TasaImpuesto   decimal.Decimal `json:"tasa_impuesto"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ValorImpuesto  decimal.Decimal `json:"valor_impuesto"`
	Total          decimal.Decimal `json:"total"`
}

// VentaResponse salida de una venta.
type VentaResponse struct {
	ID            string                 `json:"id"`
	Numero        string                 `json:"numero"`
	ClienteID     string                 `json:"cliente_id"`
	EmpleadoID    string                 `json:"empleado_id"`
	Fecha         time.Time              `json:"fecha"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	Impuesto      decimal.Decimal        `json:"impuesto"`
	Total         decimal.Decimal        `json:"total"`
	Estado        string                 `json:"estado"`
	Observaciones string                 `json:"observaciones"`
	Detalles      []DetalleVentaResponse `json:"detalles,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// VentaListResponse lista paginada de ventas (solo cabeceras).
type VentaListResponse struct {
	Items []VentaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
