package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// MovimientoRepository define el puerto de persistencia del kardex.
type MovimientoRepository interface {
	Create(ctx context.Context, movimiento *entity.MovimientoInventario) error
	ListByProducto(ctx context.Context, productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error)
}
