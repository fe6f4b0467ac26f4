package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// ProductoFiltro criterios opcionales para listar productos.
type ProductoFiltro struct {
	CategoriaID string
	Busqueda    string // código o nombre
	SoloActivos bool
}

// ProductoRepository define el puerto de persistencia para Producto.
type ProductoRepository interface {
	Create(ctx context.Context, producto *entity.Producto) error
	GetByID(ctx context.Context, id string) (*entity.Producto, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.Producto, error)
	// Update no modifica Stock ni Costo (se manejan con movimientos).
	Update(ctx context.Context, producto *entity.Producto) error
	List(ctx context.Context, filtro ProductoFiltro, limit, offset int) ([]*entity.Producto, error)
	// ListBajoStock devuelve productos activos con stock <= stock mínimo, mayor déficit primero.
	ListBajoStock(ctx context.Context, limit int) ([]*entity.Producto, error)

	// GetForUpdate obtiene el producto bloqueando la fila (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Producto, error)
	UpdateStockYCosto(ctx context.Context, id string, stock, costo decimal.Decimal) error
}
