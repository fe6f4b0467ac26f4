package repository

import (
	"context"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// ProveedorRepository define el puerto de persistencia para Proveedor.
type ProveedorRepository interface {
	Create(ctx context.Context, proveedor *entity.Proveedor) error
	GetByID(ctx context.Context, id string) (*entity.Proveedor, error)
	GetByDocumento(ctx context.Context, tipo, numero string) (*entity.Proveedor, error)
	Update(ctx context.Context, proveedor *entity.Proveedor) error
	List(ctx context.Context, busqueda string, limit, offset int) ([]*entity.Proveedor, error)
}
