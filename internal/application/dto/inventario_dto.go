package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AjusteRequest ajuste manual de stock. Cantidad positiva suma, negativa resta.
type AjusteRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad" validate:"required"`
	Motivo     string          `json:"motivo" validate:"required,max=500"`
}

// KardexRequest filtros del kardex de un producto. Fechas en formato 2006-01-02.
type KardexRequest struct {
	PageRequest
	Desde string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
}

// MovimientoResponse salida de un movimiento de inventario.
type MovimientoResponse struct {
	ID            string          `json:"id"`
	ProductoID    string          `json:"producto_id"`
	Tipo          string          `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	CostoTotal    decimal.Decimal `json:"costo_total"`
	StockFinal    decimal.Decimal `json:"stock_final"`
	Referencia    string          `json:"referencia"`
	Motivo        string          `json:"motivo"`
	EmpleadoID    string          `json:"empleado_id,omitempty"`
	Fecha         time.Time       `json:"fecha"`
}

// KardexResponse movimientos de un producto.
type KardexResponse struct {
	ProductoID string               `json:"producto_id"`
	Items      []MovimientoResponse `json:"items"`
	Page       PageResponse         `json:"page"`
}
