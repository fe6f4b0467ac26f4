package repository

import (
	"context"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para Cliente.
// GetByID y GetByDocumento devuelven (nil, nil) si no existe.
type ClienteRepository interface {
	Create(ctx context.Context, cliente *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	GetByDocumento(ctx context.Context, tipo, numero string) (*entity.Cliente, error)
	Update(ctx context.Context, cliente *entity.Cliente) error
	// List filtra por nombre o documento cuando busqueda no está vacío.
	List(ctx context.Context, busqueda string, limit, offset int) ([]*entity.Cliente, error)
}
