package memoria

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

var (
	_ repository.VentaRepository      = (*VentaRepo)(nil)
	_ repository.CompraRepository     = (*CompraRepo)(nil)
	_ repository.MovimientoRepository = (*MovimientoRepo)(nil)
)

func enRango(t time.Time, desde, hasta *time.Time) bool {
	if desde != nil && t.Before(*desde) {
		return false
	}
	if hasta != nil && !t.Before(*hasta) {
		return false
	}
	return true
}

func copiarVenta(v entity.Venta) entity.Venta {
	detalles := make([]*entity.DetalleVenta, len(v.Detalles))
	for i, d := range v.Detalles {
		cp := *d
		detalles[i] = &cp
	}
	v.Detalles = detalles
	return v
}

func copiarCompra(c entity.Compra) entity.Compra {
	detalles := make([]*entity.DetalleCompra, len(c.Detalles))
	for i, d := range c.Detalles {
		cp := *d
		detalles[i] = &cp
	}
	c.Detalles = detalles
	if c.FechaRecepcion != nil {
		f := *c.FechaRecepcion
		c.FechaRecepcion = &f
	}
	return c
}

// VentaRepo ventas en memoria.
type VentaRepo struct{ s *Store }

func NewVentaRepository(s *Store) *VentaRepo { return &VentaRepo{s: s} }

func (r *VentaRepo) NextNumero(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ventaSeq++
	return r.s.ventaSeq, nil
}

func (r *VentaRepo) Create(_ context.Context, v *entity.Venta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.ventas {
		if o.Numero == v.Numero {
			return domain.ErrDuplicate
		}
	}
	r.s.ventas[v.ID] = copiarVenta(*v)
	return nil
}

func (r *VentaRepo) GetByID(_ context.Context, id string) (*entity.Venta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.ventas[id]
	if !ok {
		return nil, nil
	}
	cp := copiarVenta(v)
	return &cp, nil
}

// GetForUpdate no bloquea: TxRunner ya serializa.
func (r *VentaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Venta, error) {
	return r.GetByID(ctx, id)
}

func (r *VentaRepo) List(_ context.Context, f repository.VentaFiltro, limit, offset int) ([]*entity.Venta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Venta
	for _, v := range r.s.ventas {
		if f.ClienteID != "" && v.ClienteID != f.ClienteID {
			continue
		}
		if f.Estado != "" && v.Estado != f.Estado {
			continue
		}
		if !enRango(v.Fecha, f.Desde, f.Hasta) {
			continue
		}
		v.Detalles = nil
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Fecha.Equal(out[j].Fecha) {
			return out[i].Fecha.After(out[j].Fecha)
		}
		return out[i].Numero > out[j].Numero
	})
	return page(out, limit, offset), nil
}

func (r *VentaRepo) UpdateEstado(_ context.Context, v *entity.Venta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	actual, ok := r.s.ventas[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	actual.Estado, actual.UpdatedAt = v.Estado, v.UpdatedAt
	r.s.ventas[v.ID] = actual
	return nil
}

// CompraRepo compras en memoria.
type CompraRepo struct{ s *Store }

func NewCompraRepository(s *Store) *CompraRepo { return &CompraRepo{s: s} }

func (r *CompraRepo) NextNumero(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.compraSeq++
	return r.s.compraSeq, nil
}

func (r *CompraRepo) Create(_ context.Context, c *entity.Compra) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.compras {
		if o.Numero == c.Numero {
			return domain.ErrDuplicate
		}
	}
	r.s.compras[c.ID] = copiarCompra(*c)
	return nil
}

func (r *CompraRepo) GetByID(_ context.Context, id string) (*entity.Compra, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.compras[id]
	if !ok {
		return nil, nil
	}
	cp := copiarCompra(c)
	return &cp, nil
}

// GetForUpdate no bloquea: TxRunner ya serializa.
func (r *CompraRepo) GetForUpdate(ctx context.Context, id string) (*entity.Compra, error) {
	return r.GetByID(ctx, id)
}

func (r *CompraRepo) List(_ context.Context, f repository.CompraFiltro, limit, offset int) ([]*entity.Compra, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Compra
	for _, c := range r.s.compras {
		if f.ProveedorID != "" && c.ProveedorID != f.ProveedorID {
			continue
		}
		if f.Estado != "" && c.Estado != f.Estado {
			continue
		}
		if !enRango(c.Fecha, f.Desde, f.Hasta) {
			continue
		}
		c.Detalles = nil
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Fecha.Equal(out[j].Fecha) {
			return out[i].Fecha.After(out[j].Fecha)
		}
		return out[i].Numero > out[j].Numero
	})
	return page(out, limit, offset), nil
}

func (r *CompraRepo) UpdateEstado(_ context.Context, c *entity.Compra) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	actual, ok := r.s.compras[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	actual.Estado, actual.FechaRecepcion, actual.UpdatedAt = c.Estado, c.FechaRecepcion, c.UpdatedAt
	r.s.compras[c.ID] = actual
	return nil
}

// MovimientoRepo kardex en memoria.
type MovimientoRepo struct{ s *Store }

func NewMovimientoRepository(s *Store) *MovimientoRepo { return &MovimientoRepo{s: s} }

func (r *MovimientoRepo) Create(_ context.Context, m *entity.MovimientoInventario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movimientos = append(r.s.movimientos, *m)
	return nil
}

// ListByProducto conserva el orden de inserción (cronológico).
func (r *MovimientoRepo) ListByProducto(_ context.Context, productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MovimientoInventario
	for _, m := range r.s.movimientos {
		if m.ProductoID == productoID && enRango(m.Fecha, desde, hasta) {
			out = append(out, &m)
		}
	}
	return page(out, limit, offset), nil
}
