package repository

import (
	"context"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// CategoriaRepository define el puerto de persistencia para Categoria.
type CategoriaRepository interface {
	Create(ctx context.Context, categoria *entity.Categoria) error
	GetByID(ctx context.Context, id string) (*entity.Categoria, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Categoria, error)
	Update(ctx context.Context, categoria *entity.Categoria) error
	List(ctx context.Context, limit, offset int) ([]*entity.Categoria, error)
	Delete(ctx context.Context, id string) error
	// CountProductos cuenta los productos asociados (para impedir borrar categorías en uso).
	CountProductos(ctx context.Context, id string) (int, error)
}
