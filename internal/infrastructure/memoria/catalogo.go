package memoria

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

var (
	_ repository.CategoriaRepository = (*CategoriaRepo)(nil)
	_ repository.ProductoRepository  = (*ProductoRepo)(nil)
)

// CategoriaRepo categorías en memoria.
type CategoriaRepo struct{ s *Store }

func NewCategoriaRepository(s *Store) *CategoriaRepo { return &CategoriaRepo{s: s} }

func (r *CategoriaRepo) Create(_ context.Context, c *entity.Categoria) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.categorias {
		if strings.EqualFold(o.Nombre, c.Nombre) {
			return domain.ErrDuplicate
		}
	}
	r.s.categorias[c.ID] = *c
	return nil
}

func (r *CategoriaRepo) GetByID(_ context.Context, id string) (*entity.Categoria, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categorias[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoriaRepo) GetByNombre(_ context.Context, nombre string) (*entity.Categoria, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categorias {
		if strings.EqualFold(c.Nombre, nombre) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoriaRepo) Update(_ context.Context, c *entity.Categoria) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categorias[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categorias[c.ID] = *c
	return nil
}

func (r *CategoriaRepo) List(_ context.Context, limit, offset int) ([]*entity.Categoria, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Categoria, 0, len(r.s.categorias))
	for _, c := range r.s.categorias {
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, limit, offset), nil
}

func (r *CategoriaRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categorias[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.productos {
		if p.CategoriaID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categorias, id)
	return nil
}

func (r *CategoriaRepo) CountProductos(_ context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.productos {
		if p.CategoriaID == id {
			n++
		}
	}
	return n, nil
}

// ProductoRepo productos en memoria. GetForUpdate no bloquea: TxRunner ya serializa.
type ProductoRepo struct{ s *Store }

func NewProductoRepository(s *Store) *ProductoRepo { return &ProductoRepo{s: s} }

func (r *ProductoRepo) Create(_ context.Context, p *entity.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.productos {
		if o.Codigo == p.Codigo {
			return domain.ErrDuplicate
		}
	}
	r.s.productos[p.ID] = *p
	return nil
}

func (r *ProductoRepo) GetByID(_ context.Context, id string) (*entity.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.productos[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductoRepo) GetByCodigo(_ context.Context, codigo string) (*entity.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.productos {
		if p.Codigo == codigo {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Producto, error) {
	return r.GetByID(ctx, id)
}

// Update conserva stock y costo guardados.
func (r *ProductoRepo) Update(_ context.Context, p *entity.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	actual, ok := r.s.productos[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.s.productos {
		if o.ID != p.ID && o.Codigo == p.Codigo {
			return domain.ErrDuplicate
		}
	}
	nuevo := *p
	nuevo.Stock, nuevo.Costo = actual.Stock, actual.Costo
	r.s.productos[p.ID] = nuevo
	return nil
}

func (r *ProductoRepo) List(_ context.Context, f repository.ProductoFiltro, limit, offset int) ([]*entity.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b := strings.ToLower(f.Busqueda)
	var out []*entity.Producto
	for _, p := range r.s.productos {
		if f.CategoriaID != "" && p.CategoriaID != f.CategoriaID {
			continue
		}
		if f.SoloActivos && !p.Activo() {
			continue
		}
		if b != "" && !strings.Contains(strings.ToLower(p.Codigo), b) && !strings.Contains(strings.ToLower(p.Nombre), b) {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, limit, offset), nil
}

func (r *ProductoRepo) ListBajoStock(_ context.Context, limit int) ([]*entity.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Producto
	for _, p := range r.s.productos {
		if p.Activo() && p.BajoStockMinimo() {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di := out[i].StockMinimo.Sub(out[i].Stock)
		dj := out[j].StockMinimo.Sub(out[j].Stock)
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		return out[i].Nombre < out[j].Nombre
	})
	return page(out, limit, 0), nil
}

// UpdateStockYCosto rechaza stock negativo, como el CHECK de la tabla.
func (r *ProductoRepo) UpdateStockYCosto(_ context.Context, id string, stock, costo decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stock.IsNegative() {
		return domain.ErrInsufficientStock
	}
	p.Stock, p.Costo, p.UpdatedAt = stock, costo, time.Now()
	r.s.productos[id] = p
	return nil
}
