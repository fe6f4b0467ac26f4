package ports

import (
	"context"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// ProductoCache es el caché de lectura de productos. Es de mejor esfuerzo:
// un fallo del backend se registra y se trata como miss, nunca corta la operación.
type ProductoCache interface {
	Get(ctx context.Context, id string) (*entity.Producto, bool)
	Set(ctx context.Context, p *entity.Producto)
	// Invalidate elimina las entradas; se llama después de confirmar la transacción.
	Invalidate(ctx context.Context, ids ...string)
}
