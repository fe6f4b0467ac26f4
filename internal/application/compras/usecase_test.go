package compras_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-ventas/internal/application/compras"
	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/infrastructure/cache"
	"github.com/jhoicas/gestion-ventas/internal/infrastructure/memoria"
	"github.com/jhoicas/gestion-ventas/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

type entorno struct {
	store *memoria.Store
	cache *cache.MemoryProductoCache
	uc    *compras.UseCase
}

func nuevoEntorno(t *testing.T) entorno {
	t.Helper()
	ctx := context.Background()
	s := memoria.NewStore()

	proveedores := memoria.NewProveedorRepository(s)
	require.NoError(t, proveedores.Create(ctx, &entity.Proveedor{ID: "prov", Persona: entity.Persona{
		TipoDocumento: "NIT", NumeroDocumento: "900", Nombres: "Distribuidora",
	}, RazonSocial: "Distribuidora SAS", Estado: entity.EstadoActivo}))
	require.NoError(t, proveedores.Create(ctx, &entity.Proveedor{ID: "viejo", Persona: entity.Persona{
		TipoDocumento: "NIT", NumeroDocumento: "901", Nombres: "Viejo",
	}, Estado: entity.EstadoInactivo}))

	empleados := memoria.NewEmpleadoRepository(s)
	require.NoError(t, empleados.Create(ctx, &entity.Empleado{ID: "bod", Persona: entity.Persona{
		TipoDocumento: "CC", NumeroDocumento: "11", Nombres: "Bruno", Email: "bruno@x.co",
	}, Rol: entity.RolBodeguero, Estado: entity.EstadoActivo}))
	require.NoError(t, empleados.Create(ctx, &entity.Empleado{ID: "vend", Persona: entity.Persona{
		TipoDocumento: "CC", NumeroDocumento: "10", Nombres: "Vera", Email: "vera@x.co",
	}, Rol: entity.RolVendedor, Estado: entity.EstadoActivo}))
	require.NoError(t, empleados.Create(ctx, &entity.Empleado{ID: "adm", Persona: entity.Persona{
		TipoDocumento: "CC", NumeroDocumento: "12", Nombres: "Ana", Email: "ana@x.co",
	}, Rol: entity.RolAdmin, Estado: entity.EstadoActivo}))
	require.NoError(t, empleados.Create(ctx, &entity.Empleado{ID: "retirado", Persona: entity.Persona{
		TipoDocumento: "CC", NumeroDocumento: "13", Nombres: "Rita", Email: "rita@x.co",
	}, Rol: entity.RolBodeguero, Estado: entity.EstadoInactivo}))

	productos := memoria.NewProductoRepository(s)
	require.NoError(t, productos.Create(ctx, &entity.Producto{
		ID: "p1", Codigo: "ARR", Nombre: "Arroz", PrecioVenta: d("2000"), Costo: d("1000"),
		TasaImpuesto: d("19"), Stock: d("10"), Estado: entity.EstadoActivo,
	}))

	c := cache.NewMemoryProductoCache(time.Minute)
	uc := compras.NewUseCase(
		memoria.NewTxRunner(s),
		memoria.NewCompraRepository(s),
		proveedores,
		empleados,
		cache.NewProductoRepository(productos, c),
		c,
		logger.Nop(),
	)
	return entorno{store: s, cache: c, uc: uc}
}

func (e entorno) producto(t *testing.T) *entity.Producto {
	t.Helper()
	p, err := memoria.NewProductoRepository(e.store).GetByID(context.Background(), "p1")
	require.NoError(t, err)
	return p
}

func compraP1(cantidad, costo string) dto.CreateCompraRequest {
	return dto.CreateCompraRequest{
		ProveedorID: "prov",
		Items:       []dto.LineaCompraRequest{{ProductoID: "p1", Cantidad: d(cantidad), CostoUnitario: d(costo)}},
	}
}

func TestRegistrar_PendienteNoMueveStock(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)

	c, err := e.uc.Registrar(ctx, "bod", compraP1("5", "1600"))
	require.NoError(t, err)
	assert.Equal(t, "C-000001", c.Numero)
	assert.Equal(t, entity.CompraPendiente, c.Estado)
	assert.Nil(t, c.FechaRecepcion)
	assert.Equal(t, "8000", c.Subtotal.String())
	assert.Equal(t, "1520", c.Impuesto.String())
	assert.Equal(t, "9520", c.Total.String())

	p := e.producto(t)
	assert.Equal(t, "10", p.Stock.String())
	assert.Equal(t, "1000", p.Costo.String())
}

func TestRecibir_ActualizaStockYCostoPromedio(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	c, err := e.uc.Registrar(ctx, "bod", compraP1("5", "1600"))
	require.NoError(t, err)

	r, err := e.uc.Recibir(ctx, "bod", c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CompraRecibida, r.Estado)
	assert.NotNil(t, r.FechaRecepcion)

	p := e.producto(t)
	assert.Equal(t, "15", p.Stock.String())
	assert.Equal(t, "1200", p.Costo.String())

	got, err := e.uc.Obtener(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CompraRecibida, got.Estado)

	_, err = e.uc.Recibir(ctx, "bod", c.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "15", e.producto(t).Stock.String())

	_, err = e.uc.Recibir(ctx, "bod", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrar_RecibirInmediato(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	req := compraP1("10", "3000")
	req.RecibirInmediato = true
	req.Items[0].TasaImpuesto = ptr(decimal.Zero)

	c, err := e.uc.Registrar(ctx, "bod", req)
	require.NoError(t, err)
	assert.Equal(t, entity.CompraRecibida, c.Estado)
	assert.True(t, c.Impuesto.IsZero())

	p := e.producto(t)
	assert.Equal(t, "20", p.Stock.String())
	assert.Equal(t, "2000", p.Costo.String())
}

func TestAnular_PendienteYRecibida(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)

	pendiente, err := e.uc.Registrar(ctx, "bod", compraP1("5", "1600"))
	require.NoError(t, err)
	a, err := e.uc.Anular(ctx, "adm", pendiente.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CompraAnulada, a.Estado)
	assert.Equal(t, "10", e.producto(t).Stock.String())

	_, err = e.uc.Recibir(ctx, "bod", pendiente.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	req := compraP1("5", "1600")
	req.RecibirInmediato = true
	recibida, err := e.uc.Registrar(ctx, "bod", req)
	require.NoError(t, err)
	require.Equal(t, "1200", e.producto(t).Costo.String())

	_, err = e.uc.Anular(ctx, "adm", recibida.ID)
	require.NoError(t, err)
	p := e.producto(t)
	assert.Equal(t, "10", p.Stock.String())
	assert.Equal(t, "1000", p.Costo.String())

	movs, err := memoria.NewMovimientoRepository(e.store).ListByProducto(ctx, "p1", nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovimientoSalida, movs[1].Tipo)
	assert.Equal(t, "-5", movs[1].Cantidad.String())

	_, err = e.uc.Anular(ctx, "adm", recibida.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAnular_MercanciaYaVendida(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	req := compraP1("5", "1600")
	req.RecibirInmediato = true
	c, err := e.uc.Registrar(ctx, "bod", req)
	require.NoError(t, err)

	// Queda menos de lo comprado.
	require.NoError(t, memoria.NewProductoRepository(e.store).UpdateStockYCosto(ctx, "p1", d("3"), d("1200")))

	_, err = e.uc.Anular(ctx, "adm", c.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := e.uc.Obtener(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CompraRecibida, got.Estado)
	assert.Equal(t, "3", e.producto(t).Stock.String())
}

func TestRecibirYAnular_EmpleadoSinPermiso(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	c, err := e.uc.Registrar(ctx, "bod", compraP1("5", "1600"))
	require.NoError(t, err)

	for _, id := range []string{"vend", "retirado", "no-existe"} {
		_, err = e.uc.Recibir(ctx, id, c.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden, id)
	}
	assert.Equal(t, "10", e.producto(t).Stock.String())

	// Anular es solo de admin, aunque el bodeguero pueda recibir.
	for _, id := range []string{"bod", "vend", "no-existe"} {
		_, err = e.uc.Anular(ctx, id, c.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden, id)
	}

	_, err = e.uc.Recibir(ctx, "bod", c.ID)
	require.NoError(t, err)
	_, err = e.uc.Anular(ctx, "no-existe", c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "15", e.producto(t).Stock.String())

	got, err := e.uc.Obtener(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CompraRecibida, got.Estado)
}

func TestRegistrar_DecimalesFueraDeEscala(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)

	_, err := e.uc.Registrar(ctx, "bod", compraP1("0.00001", "1000"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Registrar(ctx, "bod", compraP1("1", "1000.12345"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := e.uc.Registrar(ctx, "bod", compraP1("1.5", "1000.1234"))
	require.NoError(t, err)
	assert.Equal(t, "1500.19", c.Subtotal.String())
}

func TestRegistrar_Validaciones(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)

	_, err := e.uc.Registrar(ctx, "vend", compraP1("1", "1"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	req := compraP1("1", "1")
	req.ProveedorID = "viejo"
	_, err = e.uc.Registrar(ctx, "bod", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = compraP1("1", "1")
	req.ProveedorID = "nadie"
	_, err = e.uc.Registrar(ctx, "bod", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = compraP1("1", "1")
	req.Items[0].TasaImpuesto = ptr(d("7"))
	_, err = e.uc.Registrar(ctx, "bod", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = compraP1("1", "1")
	req.Items = append(req.Items, dto.LineaCompraRequest{ProductoID: "p1", Cantidad: d("1"), CostoUnitario: d("2")})
	_, err = e.uc.Registrar(ctx, "bod", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mismo producto con costos distintos")

	_, err = e.uc.Registrar(ctx, "bod", dto.CreateCompraRequest{ProveedorID: "prov"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListar(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	_, err := e.uc.Registrar(ctx, "bod", compraP1("1", "1000"))
	require.NoError(t, err)
	req := compraP1("1", "1000")
	req.RecibirInmediato = true
	_, err = e.uc.Registrar(ctx, "bod", req)
	require.NoError(t, err)

	all, err := e.uc.Listar(ctx, dto.CompraFiltroRequest{ProveedorID: "prov"})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	recibidas, err := e.uc.Listar(ctx, dto.CompraFiltroRequest{Estado: entity.CompraRecibida})
	require.NoError(t, err)
	require.Len(t, recibidas.Items, 1)
	assert.Equal(t, "C-000002", recibidas.Items[0].Numero)
}
