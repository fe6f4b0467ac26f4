package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaCompraRequest una línea de la compra. Si TasaImpuesto es nil se usa la del producto.
type LineaCompraRequest struct {
	ProductoID    string           `json:"producto_id" validate:"required,uuid"`
	Cantidad      decimal.Decimal  `json:"cantidad" validate:"gt=0"`
	CostoUnitario decimal.Decimal  `json:"costo_unitario" validate:"gte=0"`
	TasaImpuesto  *decimal.Decimal `json:"tasa_impuesto"`
}

// CreateCompraRequest entrada para registrar una compra.
type CreateCompraRequest struct {
	ProveedorID      string               `json:"proveedor_id" validate:"required,uuid"`
	Fecha            *time.Time           `json:"fecha"`
	Observaciones    string               `json:"observaciones" validate:"max=500"`
	RecibirInmediato bool                 `json:"recibir_inmediato"`
	Items            []LineaCompraRequest `json:"items" validate:"required,min=1,dive"`
}

// CompraFiltroRequest filtros del listado de compras. Fechas en formato 2006-01-02.
type CompraFiltroRequest struct {
	PageRequest
	ProveedorID string `query:"proveedor_id" validate:"omitempty,uuid"`
	Estado      string `query:"estado" validate:"omitempty,oneof=PENDIENTE RECIBIDA ANULADA"`
	Desde       string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta       string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
}

// DetalleCompraResponse salida de una línea.
type DetalleCompraResponse struct {
	ID            string          `json:"id"`
	ProductoID    string          `json:"producto_id"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	TasaImpuesto  decimal.Decimal `json:"tasa_impuesto"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ValorImpuesto decimal.Decimal `json:"valor_impuesto"`
	Total         decimal.Decimal `json:"total"`
}

// CompraResponse salida de una compra.
type CompraResponse struct {
	ID             string                  `json:"id"`
	Numero         string                  `json:"numero"`
	ProveedorID    string                  `json:"proveedor_id"`
	EmpleadoID     string                  `json:"empleado_id"`
	Fecha          time.Time               `json:"fecha"`
	Subtotal       decimal.Decimal         `json:"subtotal"`
	Impuesto       decimal.Decimal         `json:"impuesto"`
	Total          decimal.Decimal         `json:"total"`
	Estado         string                  `json:"estado"`
	Observaciones  string                  `json:"observaciones"`
	FechaRecepcion *time.Time              `json:"fecha_recepcion,omitempty"`
	Detalles       []DetalleCompraResponse `json:"detalles,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// CompraListResponse lista paginada de compras (solo cabeceras).
type CompraListResponse struct {
	Items []CompraResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
