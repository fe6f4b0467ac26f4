package cache

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-ventas/internal/application/ports"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepository)(nil)

// ProductoRepository decora un ProductoRepository con lectura a través del caché.
// GetByID consulta primero el caché; las escrituras invalidan la entrada.
// GetForUpdate y UpdateStockYCosto van directo al repositorio: se usan dentro de
// transacciones y el llamador invalida tras el commit.
type ProductoRepository struct {
	repository.ProductoRepository
	cache ports.ProductoCache
}

// NewProductoRepository envuelve next con el caché.
func NewProductoRepository(next repository.ProductoRepository, cache ports.ProductoCache) *ProductoRepository {
	return &ProductoRepository{ProductoRepository: next, cache: cache}
}

func (r *ProductoRepository) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	if p, ok := r.cache.Get(ctx, id); ok {
		return p, nil
	}
	p, err := r.ProductoRepository.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	r.cache.Set(ctx, p)
	return p, nil
}

func (r *ProductoRepository) Update(ctx context.Context, p *entity.Producto) error {
	if err := r.ProductoRepository.Update(ctx, p); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, p.ID)
	return nil
}

func (r *ProductoRepository) UpdateStockYCosto(ctx context.Context, id string, stock, costo decimal.Decimal) error {
	if err := r.ProductoRepository.UpdateStockYCosto(ctx, id, stock, costo); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, id)
	return nil
}
