package repository

import (
	"context"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// EmpleadoRepository define el puerto de persistencia para Empleado.
type EmpleadoRepository interface {
	Create(ctx context.Context, empleado *entity.Empleado) error
	GetByID(ctx context.Context, id string) (*entity.Empleado, error)
	GetByEmail(ctx context.Context, email string) (*entity.Empleado, error)
	GetByDocumento(ctx context.Context, tipo, numero string) (*entity.Empleado, error)
	Update(ctx context.Context, empleado *entity.Empleado) error
	List(ctx context.Context, busqueda string, limit, offset int) ([]*entity.Empleado, error)
}
