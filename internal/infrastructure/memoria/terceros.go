package memoria

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

var (
	_ repository.ClienteRepository   = (*ClienteRepo)(nil)
	_ repository.ProveedorRepository = (*ProveedorRepo)(nil)
	_ repository.EmpleadoRepository  = (*EmpleadoRepo)(nil)
)

func coincide(p entity.Persona, extra, busqueda string) bool {
	if busqueda == "" {
		return true
	}
	b := strings.ToLower(busqueda)
	return strings.Contains(strings.ToLower(p.NombreCompleto()), b) ||
		strings.Contains(strings.ToLower(p.NumeroDocumento), b) ||
		strings.Contains(strings.ToLower(extra), b)
}

// ClienteRepo clientes en memoria.
type ClienteRepo struct{ s *Store }

func NewClienteRepository(s *Store) *ClienteRepo { return &ClienteRepo{s: s} }

func (r *ClienteRepo) Create(_ context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.clientes {
		if o.TipoDocumento == c.TipoDocumento && o.NumeroDocumento == c.NumeroDocumento {
			return domain.ErrDuplicate
		}
	}
	r.s.clientes[c.ID] = *c
	return nil
}

func (r *ClienteRepo) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clientes[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClienteRepo) GetByDocumento(_ context.Context, tipo, numero string) (*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clientes {
		if c.TipoDocumento == tipo && c.NumeroDocumento == numero {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClienteRepo) Update(_ context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clientes[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.clientes[c.ID] = *c
	return nil
}

func (r *ClienteRepo) List(_ context.Context, busqueda string, limit, offset int) ([]*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Cliente
	for _, c := range r.s.clientes {
		if coincide(c.Persona, "", busqueda) {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NombreCompleto() < out[j].NombreCompleto() })
	return page(out, limit, offset), nil
}

// ProveedorRepo proveedores en memoria.
type ProveedorRepo struct{ s *Store }

func NewProveedorRepository(s *Store) *ProveedorRepo { return &ProveedorRepo{s: s} }

func (r *ProveedorRepo) Create(_ context.Context, p *entity.Proveedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.proveedores {
		if o.TipoDocumento == p.TipoDocumento && o.NumeroDocumento == p.NumeroDocumento {
			return domain.ErrDuplicate
		}
	}
	r.s.proveedores[p.ID] = *p
	return nil
}

func (r *ProveedorRepo) GetByID(_ context.Context, id string) (*entity.Proveedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.proveedores[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProveedorRepo) GetByDocumento(_ context.Context, tipo, numero string) (*entity.Proveedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.proveedores {
		if p.TipoDocumento == tipo && p.NumeroDocumento == numero {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProveedorRepo) Update(_ context.Context, p *entity.Proveedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.proveedores[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.proveedores[p.ID] = *p
	return nil
}

func (r *ProveedorRepo) List(_ context.Context, busqueda string, limit, offset int) ([]*entity.Proveedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Proveedor
	for _, p := range r.s.proveedores {
		if coincide(p.Persona, p.RazonSocial, busqueda) {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NombreComercial() < out[j].NombreComercial() })
	return page(out, limit, offset), nil
}

// EmpleadoRepo empleados en memoria.
type EmpleadoRepo struct{ s *Store }

func NewEmpleadoRepository(s *Store) *EmpleadoRepo { return &EmpleadoRepo{s: s} }

func (r *EmpleadoRepo) Create(_ context.Context, e *entity.Empleado) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.empleados {
		if o.Email == e.Email || (o.TipoDocumento == e.TipoDocumento && o.NumeroDocumento == e.NumeroDocumento) {
			return domain.ErrDuplicate
		}
	}
	r.s.empleados[e.ID] = *e
	return nil
}

func (r *EmpleadoRepo) find(match func(entity.Empleado) bool) *entity.Empleado {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.empleados {
		if match(e) {
			return &e
		}
	}
	return nil
}

func (r *EmpleadoRepo) GetByID(_ context.Context, id string) (*entity.Empleado, error) {
	return r.find(func(e entity.Empleado) bool { return e.ID == id }), nil
}

func (r *EmpleadoRepo) GetByEmail(_ context.Context, email string) (*entity.Empleado, error) {
	email = strings.ToLower(email)
	return r.find(func(e entity.Empleado) bool { return e.Email == email }), nil
}

func (r *EmpleadoRepo) GetByDocumento(_ context.Context, tipo, numero string) (*entity.Empleado, error) {
	return r.find(func(e entity.Empleado) bool { return e.TipoDocumento == tipo && e.NumeroDocumento == numero }), nil
}

func (r *EmpleadoRepo) Update(_ context.Context, e *entity.Empleado) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.empleados[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.empleados[e.ID] = *e
	return nil
}

func (r *EmpleadoRepo) List(_ context.Context, busqueda string, limit, offset int) ([]*entity.Empleado, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Empleado
	for _, e := range r.s.empleados {
		if coincide(e.Persona, e.Email, busqueda) {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NombreCompleto() < out[j].NombreCompleto() })
	return page(out, limit, offset), nil
}
