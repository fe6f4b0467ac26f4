package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// VentaFiltro criterios opcionales para listar ventas.
type VentaFiltro struct {
	ClienteID string
	Estado    string
	Desde     *time.Time
	Hasta     *time.Time
}

// VentaRepository define el puerto de persistencia para Venta y sus detalles.
type VentaRepository interface {
	// NextNumero reserva el siguiente consecutivo de venta.
	NextNumero(ctx context.Context) (int64, error)
	// Create guarda cabecera y detalles.
	Create(ctx context.Context, venta *entity.Venta) error
	// GetByID devuelve la venta con sus detalles, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Venta, error)
	// List devuelve solo cabeceras.
	// GetForUpdate bloquea la cabecera hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Venta, error)
	List(ctx context.Context, filtro VentaFiltro, limit, offset int) ([]*entity.Venta, error)
	UpdateEstado(ctx context.Context, venta *entity.Venta) error
}
