package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// CompraFiltro criterios opcionales para listar compras.
type CompraFiltro struct {
	ProveedorID string
	Estado      string
	Desde       *time.Time
	Hasta       *time.Time
}

// CompraRepository define el puerto de persistencia para Compra y sus detalles.
type CompraRepository interface {
	NextNumero(ctx context.Context) (int64, error)
	Create(ctx context.Context, compra *entity.Compra) error
	GetByID(ctx context.Context, id string) (*entity.Compra, error)
	// GetForUpdate bloquea la cabecera hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Compra, error)
	List(ctx context.Context, filtro CompraFiltro, limit, offset int) ([]*entity.Compra, error)
	// UpdateEstado persiste estado, fecha de recepción y updated_at.
	UpdateEstado(ctx context.Context, compra *entity.Compra) error
}
