package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoriaRequest entrada para crear una categoría.
type CreateCategoriaRequest struct {
	Nombre      string `json:"nombre" validate:"required,max=120"`
	Descripcion string `json:"descripcion"`
}

// UpdateCategoriaRequest actualización parcial de una categoría.
type UpdateCategoriaRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=1,max=120"`
	Descripcion *string `json:"descripcion"`
	Estado      *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// CategoriaResponse salida de una categoría.
type CategoriaResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Estado      string    `json:"estado"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoriaListResponse lista paginada de categorías.
type CategoriaListResponse struct {
	Items []CategoriaResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateProductoRequest entrada para crear un producto. Costo y stock inician en 0.
type CreateProductoRequest struct {
	CategoriaID  string          `json:"categoria_id" validate:"required,uuid"`
	Codigo       string          `json:"codigo" validate:"required,max=50"`
	Nombre       string          `json:"nombre" validate:"required,max=200"`
	Descripcion  string          `json:"descripcion"`
	PrecioVenta  decimal.Decimal `json:"precio_venta" validate:"gte=0"`
	TasaImpuesto decimal.Decimal `json:"tasa_impuesto"`
	StockMinimo  decimal.Decimal `json:"stock_minimo" validate:"gte=0"`
}

// UpdateProductoRequest entrada para actualizar un producto (sin Costo ni Stock).
type UpdateProductoRequest struct {
	CategoriaID  *string          `json:"categoria_id" validate:"omitempty,uuid"`
	Codigo       *string          `json:"codigo" validate:"omitempty,min=1,max=50"`
	Nombre       *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Descripcion  *string          `json:"descripcion"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta" validate:"omitempty,gte=0"`
	TasaImpuesto *decimal.Decimal `json:"tasa_impuesto"`
	StockMinimo  *decimal.Decimal `json:"stock_minimo" validate:"omitempty,gte=0"`
	Estado       *string          `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// ProductoFiltroRequest filtros del listado de productos.
type ProductoFiltroRequest struct {
	PageRequest
	CategoriaID string `query:"categoria_id" validate:"omitempty,uuid"`
	Busqueda    string `query:"q"`
	SoloActivos bool   `query:"activos"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID              string          `json:"id"`
	CategoriaID     string          `json:"categoria_id"`
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	Descripcion     string          `json:"descripcion"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	Costo           decimal.Decimal `json:"costo"`
	TasaImpuesto    decimal.Decimal `json:"tasa_impuesto"`
	Stock           decimal.Decimal `json:"stock"`
	StockMinimo     decimal.Decimal `json:"stock_minimo"`
	BajoStockMinimo bool            `json:"bajo_stock_minimo"`
	Estado          string          `json:"estado"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
