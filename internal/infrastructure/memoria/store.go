// Package memoria implementa los puertos de persistencia en memoria. Se usa en
// pruebas de casos de uso y handlers, donde no hay PostgreSQL disponible.
package memoria

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

// Store guarda todas las tablas. Los repositorios son vistas sobre el mismo Store.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	clientes    map[string]entity.Cliente
	proveedores map[string]entity.Proveedor
	empleados   map[string]entity.Empleado
	categorias  map[string]entity.Categoria
	productos   map[string]entity.Producto
	ventas      map[string]entity.Venta
	compras     map[string]entity.Compra
	movimientos []entity.MovimientoInventario

	ventaSeq  int64
	compraSeq int64
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		clientes:    map[string]entity.Cliente{},
		proveedores: map[string]entity.Proveedor{},
		empleados:   map[string]entity.Empleado{},
		categorias:  map[string]entity.Categoria{},
		productos:   map[string]entity.Producto{},
		ventas:      map[string]entity.Venta{},
		compras:     map[string]entity.Compra{},
	}
}

type snapshot struct {
	clientes    map[string]entity.Cliente
	proveedores map[string]entity.Proveedor
	empleados   map[string]entity.Empleado
	categorias  map[string]entity.Categoria
	productos   map[string]entity.Producto
	ventas      map[string]entity.Venta
	compras     map[string]entity.Compra
	movimientos []entity.MovimientoInventario
	ventaSeq    int64
	compraSeq   int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		clientes:    maps.Clone(s.clientes),
		proveedores: maps.Clone(s.proveedores),
		empleados:   maps.Clone(s.empleados),
		categorias:  maps.Clone(s.categorias),
		productos:   maps.Clone(s.productos),
		ventas:      maps.Clone(s.ventas),
		compras:     maps.Clone(s.compras),
		movimientos: append([]entity.MovimientoInventario(nil), s.movimientos...),
		ventaSeq:    s.ventaSeq,
		compraSeq:   s.compraSeq,
	}
}

// restore vuelve al snapshot. Las secuencias no retroceden, igual que en PostgreSQL.
func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientes = snap.clientes
	s.proveedores = snap.proveedores
	s.empleados = snap.empleados
	s.categorias = snap.categorias
	s.productos = snap.productos
	s.ventas = snap.ventas
	s.compras = snap.compras
	s.movimientos = snap.movimientos
}

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y deshace los cambios si fn falla.
type TxRunner struct {
	store *Store
	// Commits cuenta las transacciones confirmadas (útil en pruebas).
	Commits int
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	snap := r.store.snapshot()
	repos := repository.TxRepos{
		Productos:   NewProductoRepository(r.store),
		Movimientos: NewMovimientoRepository(r.store),
		Ventas:      NewVentaRepository(r.store),
		Compras:     NewCompraRepository(r.store),
	}
	if err := fn(repos); err != nil {
		r.store.restore(snap)
		return err
	}
	r.Commits++
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
