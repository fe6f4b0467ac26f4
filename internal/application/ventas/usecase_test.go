package ventas_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/application/ports"
	"github.com/jhoicas/gestion-ventas/internal/application/ventas"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/infrastructure/cache"
	"github.com/jhoicas/gestion-ventas/internal/infrastructure/memoria"
	"github.com/jhoicas/gestion-ventas/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

type pdfStub struct {
	recibido ports.ComprobanteVenta
	err      error
}

func (p *pdfStub) GenerarComprobanteVenta(_ context.Context, c ports.ComprobanteVenta) ([]byte, error) {
	p.recibido = c
	return []byte("%PDF-stub"), p.err
}

type entorno struct {
	store *memoria.Store
	cache *cache.MemoryProductoCache
	pdf   *pdfStub
	uc    *ventas.UseCase
}

func nuevoEntorno(t *testing.T) entorno {
	t.Helper()
	ctx := context.Background()
	s := memoria.NewStore()

	clientes := memoria.NewClienteRepository(s)
	require.NoError(t, clientes.Create(ctx, &entity.Cliente{ID: "c1", Persona: entity.Persona{
		TipoDocumento: "CC", NumeroDocumento: "1", Nombres: "Ana",
	}, Estado: entity.EstadoActivo}))
	require.NoError(t, clientes.Create(ctx, &entity.Cliente{ID: "c2", Persona: entity.Persona{
		TipoDocumento: "CC", NumeroDocumento: "2", Nombres: "Luis",
	}, Estado: entity.EstadoInactivo}))

	empleados := memoria.NewEmpleadoRepository(s)
	require.NoError(t, empleados.Create(ctx, &entity.Empleado{ID: "vend", Persona: entity.Persona{
		TipoDocumento: "CC", NumeroDocumento: "10", Nombres: "Vera", Email: "vera@x.co",
	}, Rol: entity.RolVendedor, Estado: entity.EstadoActivo}))
	require.NoError(t, empleados.Create(ctx, &entity.Empleado{ID: "bod", Persona: entity.Persona{
		TipoDocumento: "CC", NumeroDocumento: "11", Nombres: "Bruno", Email: "bruno@x.co",
	}, Rol: entity.RolBodeguero, Estado: entity.EstadoActivo}))
	require.NoError(t, empleados.Create(ctx, &entity.Empleado{ID: "adm", Persona: entity.Persona{
		TipoDocumento: "CC", NumeroDocumento: "12", Nombres: "Ana", Email: "ana@x.co",
	}, Rol: entity.RolAdmin, Estado: entity.EstadoActivo}))
	require.NoError(t, empleados.Create(ctx, &entity.Empleado{ID: "ex-admin", Persona: entity.Persona{
		TipoDocumento: "CC", NumeroDocumento: "13", Nombres: "Elsa", Email: "elsa@x.co",
	}, Rol: entity.RolAdmin, Estado: entity.EstadoInactivo}))

	productos := memoria.NewProductoRepository(s)
	require.NoError(t, productos.Create(ctx, &entity.Producto{
		ID: "p1", Codigo: "ARR", Nombre: "Arroz", PrecioVenta: d("5000"), Costo: d("3000"),
		TasaImpuesto: d("19"), Stock: d("10"), Estado: entity.EstadoActivo,
	}))
	require.NoError(t, productos.Create(ctx, &entity.Producto{
		ID: "p2", Codigo: "LEC", Nombre: "Leche", PrecioVenta: d("4000"), Costo: d("2500"),
		TasaImpuesto: d("5"), Stock: d("2"), Estado: entity.EstadoActivo,
	}))
	require.NoError(t, productos.Create(ctx, &entity.Producto{
		ID: "p3", Codigo: "OLD", Nombre: "Descontinuado", PrecioVenta: d("1"),
		TasaImpuesto: d("0"), Stock: d("5"), Estado: entity.EstadoInactivo,
	}))

	c := cache.NewMemoryProductoCache(time.Minute)
	pdf := &pdfStub{}
	uc := ventas.NewUseCase(
		memoria.NewTxRunner(s),
		memoria.NewVentaRepository(s),
		clientes,
		empleados,
		cache.NewProductoRepository(productos, c),
		c,
		pdf,
		logger.Nop(),
	)
	return entorno{store: s, cache: c, pdf: pdf, uc: uc}
}

func (e entorno) stock(t *testing.T, id string) string {
	t.Helper()
	p, err := memoria.NewProductoRepository(e.store).GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock.String()
}

func (e entorno) kardex(t *testing.T, id string) []*entity.MovimientoInventario {
	t.Helper()
	list, err := memoria.NewMovimientoRepository(e.store).ListByProducto(context.Background(), id, nil, nil, 100, 0)
	require.NoError(t, err)
	return list
}

func TestRegistrar_DescuentaStockYCalculaTotales(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)

	v, err := e.uc.Registrar(ctx, "vend", dto.CreateVentaRequest{
		ClienteID: "c1",
		Items: []dto.LineaVentaRequest{
			{ProductoID: "p1", Cantidad: d("2")},
			{ProductoID: "p2", Cantidad: d("1"), PrecioUnitario: ptr(d("3800"))},
			{ProductoID: "p1", Cantidad: d("1")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "V-000001", v.Numero)
	assert.Equal(t, entity.VentaRegistrada, v.Estado)
	require.Len(t, v.Detalles, 2, "las líneas del mismo producto se fusionan")
	assert.Equal(t, "3", v.Detalles[0].Cantidad.String())
	// 3*5000 = 15000 (+19% 2850) ; 1*3800 = 3800 (+5% 190)
	assert.Equal(t, "18800", v.Subtotal.String())
	assert.Equal(t, "3040", v.Impuesto.String())
	assert.Equal(t, "21840", v.Total.String())

	assert.Equal(t, "7", e.stock(t, "p1"))
	assert.Equal(t, "1", e.stock(t, "p2"))

	movs := e.kardex(t, "p1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovimientoSalida, movs[0].Tipo)
	assert.Equal(t, "-3", movs[0].Cantidad.String())
	assert.Equal(t, "3000", movs[0].CostoUnitario.String())
	assert.Equal(t, v.ID, movs[0].Referencia)

	_, ok := e.cache.Get(ctx, "p1")
	assert.False(t, ok, "la venta invalida el caché de los productos vendidos")

	otra, err := e.uc.Registrar(ctx, "vend", dto.CreateVentaRequest{
		ClienteID: "c1", Items: []dto.LineaVentaRequest{{ProductoID: "p1", Cantidad: d("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "V-000002", otra.Numero)
}

func TestRegistrar_StockInsuficienteEsAtomico(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)

	_, err := e.uc.Registrar(ctx, "vend", dto.CreateVentaRequest{
		ClienteID: "c1",
		Items: []dto.LineaVentaRequest{
			{ProductoID: "p1", Cantidad: d("4")},
			{ProductoID: "p2", Cantidad: d("3")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, "10", e.stock(t, "p1"), "la primera línea se revierte")
	assert.Equal(t, "2", e.stock(t, "p2"))
	assert.Empty(t, e.kardex(t, "p1"))

	list, err := e.uc.Listar(ctx, dto.VentaFiltroRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestRegistrar_Validaciones(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	linea := []dto.LineaVentaRequest{{ProductoID: "p1", Cantidad: d("1")}}

	cases := []struct {
		name       string
		empleadoID string
		req        dto.CreateVentaRequest
		want       error
	}{
		{"sin líneas", "vend", dto.CreateVentaRequest{ClienteID: "c1"}, domain.ErrInvalidInput},
		{"bodeguero no vende", "bod", dto.CreateVentaRequest{ClienteID: "c1", Items: linea}, domain.ErrForbidden},
		{"empleado inexistente", "nadie", dto.CreateVentaRequest{ClienteID: "c1", Items: linea}, domain.ErrForbidden},
		{"cliente inexistente", "vend", dto.CreateVentaRequest{ClienteID: "zz", Items: linea}, domain.ErrNotFound},
		{"cliente inactivo", "vend", dto.CreateVentaRequest{ClienteID: "c2", Items: linea}, domain.ErrInvalidInput},
		{"producto inexistente", "vend", dto.CreateVentaRequest{ClienteID: "c1",
			Items: []dto.LineaVentaRequest{{ProductoID: "zz", Cantidad: d("1")}}}, domain.ErrNotFound},
		{"producto inactivo", "vend", dto.CreateVentaRequest{ClienteID: "c1",
			Items: []dto.LineaVentaRequest{{ProductoID: "p3", Cantidad: d("1")}}}, domain.ErrInvalidInput},
		{"cantidad cero", "vend", dto.CreateVentaRequest{ClienteID: "c1",
			Items: []dto.LineaVentaRequest{{ProductoID: "p1", Cantidad: decimal.Zero}}}, domain.ErrInvalidInput},
		{"cantidad bajo 4 decimales", "vend", dto.CreateVentaRequest{ClienteID: "c1",
			Items: []dto.LineaVentaRequest{{ProductoID: "p1", Cantidad: d("0.00001")}}}, domain.ErrInvalidInput},
		{"producto repetido con precios distintos", "vend", dto.CreateVentaRequest{ClienteID: "c1",
			Items: []dto.LineaVentaRequest{{ProductoID: "p1", Cantidad: d("1")}, {ProductoID: "p1", Cantidad: d("1"), PrecioUnitario: ptr(d("4500"))}}}, domain.ErrInvalidInput},
		{"precio con 3 decimales", "vend", dto.CreateVentaRequest{ClienteID: "c1",
			Items: []dto.LineaVentaRequest{{ProductoID: "p1", Cantidad: d("3"), PrecioUnitario: ptr(d("0.333"))}}}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.uc.Registrar(ctx, tc.empleadoID, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, "10", e.stock(t, "p1"))
}

func TestAnular_RestauraStock(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)

	v, err := e.uc.Registrar(ctx, "vend", dto.CreateVentaRequest{
		ClienteID: "c1", Items: []dto.LineaVentaRequest{{ProductoID: "p1", Cantidad: d("4")}},
	})
	require.NoError(t, err)
	require.Equal(t, "6", e.stock(t, "p1"))

	anulada, err := e.uc.Anular(ctx, "adm", v.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VentaAnulada, anulada.Estado)
	assert.Equal(t, "10", e.stock(t, "p1"))

	movs := e.kardex(t, "p1")
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovimientoEntrada, movs[1].Tipo)
	assert.Equal(t, "4", movs[1].Cantidad.String())

	_, err = e.uc.Anular(ctx, "adm", v.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "10", e.stock(t, "p1"))

	_, err = e.uc.Anular(ctx, "adm", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnular_SoloAdminActivo(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	v, err := e.uc.Registrar(ctx, "vend", dto.CreateVentaRequest{
		ClienteID: "c1", Items: []dto.LineaVentaRequest{{ProductoID: "p1", Cantidad: d("4")}},
	})
	require.NoError(t, err)

	for _, id := range []string{"vend", "bod", "ex-admin", "no-existe"} {
		_, err = e.uc.Anular(ctx, id, v.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden, id)
	}
	assert.Equal(t, "6", e.stock(t, "p1"))
	assert.Len(t, e.kardex(t, "p1"), 1)

	got, err := e.uc.Obtener(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VentaRegistrada, got.Estado)
}

func TestRegistrar_PrecioConDosDecimales(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	v, err := e.uc.Registrar(ctx, "vend", dto.CreateVentaRequest{
		ClienteID: "c1",
		Items:     []dto.LineaVentaRequest{{ProductoID: "p1", Cantidad: d("3"), PrecioUnitario: ptr(d("0.33"))}},
	})
	require.NoError(t, err)
	require.Len(t, v.Detalles, 1)
	assert.Equal(t, "0.99", v.Detalles[0].Subtotal.String())
}

func TestListarYObtener(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	v, err := e.uc.Registrar(ctx, "vend", dto.CreateVentaRequest{
		ClienteID: "c1", Items: []dto.LineaVentaRequest{{ProductoID: "p1", Cantidad: d("1")}},
	})
	require.NoError(t, err)

	got, err := e.uc.Obtener(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, got.Detalles, 1)

	_, err = e.uc.Obtener(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := e.uc.Listar(ctx, dto.VentaFiltroRequest{ClienteID: "c1", Estado: entity.VentaRegistrada})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Empty(t, list.Items[0].Detalles)
	assert.Equal(t, 20, list.Page.Limit)

	list, err = e.uc.Listar(ctx, dto.VentaFiltroRequest{Estado: entity.VentaAnulada})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	_, err = e.uc.Listar(ctx, dto.VentaFiltroRequest{Desde: "2024-02-01", Hasta: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComprobantePDF(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	v, err := e.uc.Registrar(ctx, "vend", dto.CreateVentaRequest{
		ClienteID: "c1", Items: []dto.LineaVentaRequest{{ProductoID: "p2", Cantidad: d("1")}},
	})
	require.NoError(t, err)

	out, nombre, err := e.uc.ComprobantePDF(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "venta_V-000001.pdf", nombre)
	assert.NotEmpty(t, out)
	assert.Equal(t, "Ana", e.pdf.recibido.Cliente.Nombres)
	require.NotNil(t, e.pdf.recibido.Empleado)
	assert.Equal(t, "vend", e.pdf.recibido.Empleado.ID)
	require.Len(t, e.pdf.recibido.Lineas, 1)
	assert.Equal(t, "Leche", e.pdf.recibido.Lineas[0].Nombre)

	e.pdf.err = errors.New("fuente no disponible")
	_, _, err = e.uc.ComprobantePDF(ctx, v.ID)
	assert.Error(t, err)

	_, _, err = e.uc.ComprobantePDF(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
