package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/application/usecase"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/infrastructure/memoria"
)

func ptr[T any](v T) *T { return &v }

func persona(numero string) dto.PersonaRequest {
	return dto.PersonaRequest{
		TipoDocumento:   "cc",
		NumeroDocumento: " " + numero + " ",
		Nombres:         "Ana",
		Apellidos:       "Pérez",
		Email:           "Ana.Perez@Ejemplo.com",
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Clientes
// ─────────────────────────────────────────────────────────────────────────────

func TestClienteUseCase_CreateNormalizaYRechazaDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewClienteUseCase(memoria.NewClienteRepository(memoria.NewStore()))

	c, err := uc.Create(ctx, dto.CreateClienteRequest{PersonaRequest: persona("1001")})
	require.NoError(t, err)
	assert.Equal(t, "CC", c.TipoDocumento)
	assert.Equal(t, "1001", c.NumeroDocumento)
	assert.Equal(t, "ana.perez@ejemplo.com", c.Email)
	assert.Equal(t, "Ana Pérez", c.NombreCompleto)
	assert.Equal(t, entity.EstadoActivo, c.Estado)

	_, err = uc.Create(ctx, dto.CreateClienteRequest{PersonaRequest: persona("1001")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClienteUseCase_TipoDocumentoInvalido(t *testing.T) {
	uc := usecase.NewClienteUseCase(memoria.NewClienteRepository(memoria.NewStore()))
	req := persona("1")
	req.TipoDocumento = "XX"

	_, err := uc.Create(context.Background(), dto.CreateClienteRequest{PersonaRequest: req})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClienteUseCase_UpdateParcialYDeleteLogico(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewClienteUseCase(memoria.NewClienteRepository(memoria.NewStore()))
	c, err := uc.Create(ctx, dto.CreateClienteRequest{PersonaRequest: persona("2002")})
	require.NoError(t, err)

	upd, err := uc.Update(ctx, c.ID, dto.UpdateClienteRequest{PersonaUpdate: dto.PersonaUpdate{Telefono: ptr("3001234567")}})
	require.NoError(t, err)
	assert.Equal(t, "3001234567", upd.Telefono)
	assert.Equal(t, "Ana", upd.Nombres)

	require.NoError(t, uc.Delete(ctx, c.ID))
	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoInactivo, got.Estado)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClienteUseCase_ListPaginaPorDefecto(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewClienteUseCase(memoria.NewClienteRepository(memoria.NewStore()))
	for _, n := range []string{"1", "2", "3"} {
		_, err := uc.Create(ctx, dto.CreateClienteRequest{PersonaRequest: persona(n)})
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
	assert.Equal(t, 20, list.Page.Limit)

	list, err = uc.List(ctx, "2", dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "2", list.Items[0].NumeroDocumento)
}

// ─────────────────────────────────────────────────────────────────────────────
// Proveedores
// ─────────────────────────────────────────────────────────────────────────────

func TestProveedorUseCase_NombreComercial(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProveedorUseCase(memoria.NewProveedorRepository(memoria.NewStore()))

	req := persona("900123456")
	req.TipoDocumento = "NIT"
	p, err := uc.Create(ctx, dto.CreateProveedorRequest{PersonaRequest: req, RazonSocial: "Distribuidora Andina SAS"})
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora Andina SAS", p.NombreComercial)

	p, err = uc.Update(ctx, p.ID, dto.UpdateProveedorRequest{RazonSocial: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", p.NombreComercial)
}

// ─────────────────────────────────────────────────────────────────────────────
// Empleados
// ─────────────────────────────────────────────────────────────────────────────

func TestEmpleadoUseCase_CreateHasheaPassword(t *testing.T) {
	ctx := context.Background()
	repo := memoria.NewEmpleadoRepository(memoria.NewStore())
	uc := usecase.NewEmpleadoUseCase(repo)

	e, err := uc.Create(ctx, dto.CreateEmpleadoRequest{PersonaRequest: persona("3003"), Rol: entity.RolVendedor, Password: "secreto123"})
	require.NoError(t, err)

	guardado, _ := repo.GetByID(ctx, e.ID)
	require.NotNil(t, guardado)
	assert.NotEqual(t, "secreto123", guardado.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("secreto123")))
}

func TestEmpleadoUseCase_EmailObligatorioYUnico(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewEmpleadoUseCase(memoria.NewEmpleadoRepository(memoria.NewStore()))

	sinEmail := persona("4004")
	sinEmail.Email = ""
	_, err := uc.Create(ctx, dto.CreateEmpleadoRequest{PersonaRequest: sinEmail, Rol: entity.RolAdmin, Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateEmpleadoRequest{PersonaRequest: persona("4004"), Rol: entity.RolAdmin, Password: "secreto123"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateEmpleadoRequest{PersonaRequest: persona("5005"), Rol: entity.RolAdmin, Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEmpleadoUseCase_UpdateCambiaPasswordYRol(t *testing.T) {
	ctx := context.Background()
	repo := memoria.NewEmpleadoRepository(memoria.NewStore())
	uc := usecase.NewEmpleadoUseCase(repo)
	e, err := uc.Create(ctx, dto.CreateEmpleadoRequest{PersonaRequest: persona("6006"), Rol: entity.RolVendedor, Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, e.ID, dto.UpdateEmpleadoRequest{Rol: ptr("gerente")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	upd, err := uc.Update(ctx, e.ID, dto.UpdateEmpleadoRequest{Rol: ptr(entity.RolBodeguero), Password: ptr("otraClave99")})
	require.NoError(t, err)
	assert.Equal(t, entity.RolBodeguero, upd.Rol)

	guardado, _ := repo.GetByID(ctx, e.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("otraClave99")))
}

// ─────────────────────────────────────────────────────────────────────────────
// Categorías y productos
// ─────────────────────────────────────────────────────────────────────────────

type catalogo struct {
	categorias *usecase.CategoriaUseCase
	productos  *usecase.ProductoUseCase
}

func nuevoCatalogo() catalogo {
	s := memoria.NewStore()
	cats := memoria.NewCategoriaRepository(s)
	return catalogo{
		categorias: usecase.NewCategoriaUseCase(cats),
		productos:  usecase.NewProductoUseCase(memoria.NewProductoRepository(s), cats),
	}
}

func TestCategoriaUseCase_NombreUnicoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	c := nuevoCatalogo()

	_, err := c.categorias.Create(ctx, dto.CreateCategoriaRequest{Nombre: "Granos"})
	require.NoError(t, err)
	_, err = c.categorias.Create(ctx, dto.CreateCategoriaRequest{Nombre: " granos "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoriaUseCase_DeleteConProductosEsConflicto(t *testing.T) {
	ctx := context.Background()
	c := nuevoCatalogo()
	cat, err := c.categorias.Create(ctx, dto.CreateCategoriaRequest{Nombre: "Aseo"})
	require.NoError(t, err)
	_, err = c.productos.Create(ctx, dto.CreateProductoRequest{CategoriaID: cat.ID, Codigo: "JAB-1", Nombre: "Jabón", TasaImpuesto: decimal.NewFromInt(19)})
	require.NoError(t, err)

	err = c.categorias.Delete(ctx, cat.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	vacia, err := c.categorias.Create(ctx, dto.CreateCategoriaRequest{Nombre: "Vacía"})
	require.NoError(t, err)
	assert.NoError(t, c.categorias.Delete(ctx, vacia.ID))
}

func TestProductoUseCase_Create(t *testing.T) {
	ctx := context.Background()
	c := nuevoCatalogo()
	cat, err := c.categorias.Create(ctx, dto.CreateCategoriaRequest{Nombre: "Granos"})
	require.NoError(t, err)

	p, err := c.productos.Create(ctx, dto.CreateProductoRequest{
		CategoriaID:  cat.ID,
		Codigo:       " arr-500 ",
		Nombre:       "Arroz 500 g",
		PrecioVenta:  decimal.NewFromInt(2500),
		TasaImpuesto: decimal.NewFromInt(5),
		StockMinimo:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "ARR-500", p.Codigo)
	assert.True(t, p.Costo.IsZero())
	assert.True(t, p.Stock.IsZero())
	assert.True(t, p.BajoStockMinimo)

	_, err = c.productos.Create(ctx, dto.CreateProductoRequest{CategoriaID: cat.ID, Codigo: "ARR-500", Nombre: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductoUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	c := nuevoCatalogo()
	cat, _ := c.categorias.Create(ctx, dto.CreateCategoriaRequest{Nombre: "Granos"})

	_, err := c.productos.Create(ctx, dto.CreateProductoRequest{CategoriaID: cat.ID, Codigo: "X", Nombre: "X", TasaImpuesto: decimal.NewFromInt(16)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.productos.Create(ctx, dto.CreateProductoRequest{CategoriaID: "no-existe", Codigo: "X", Nombre: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := c.productos.Create(ctx, dto.CreateProductoRequest{CategoriaID: cat.ID, Codigo: "X", Nombre: "X"})
	require.NoError(t, err)
	_, err = c.productos.Update(ctx, p.ID, dto.UpdateProductoRequest{PrecioVenta: ptr(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// precio_venta NUMERIC(14,2), stock_minimo NUMERIC(14,4)
	_, err = c.productos.Create(ctx, dto.CreateProductoRequest{CategoriaID: cat.ID, Codigo: "Y", Nombre: "Y",
		PrecioVenta: decimal.RequireFromString("0.333")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.productos.Update(ctx, p.ID, dto.UpdateProductoRequest{PrecioVenta: ptr(decimal.RequireFromString("10.005"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.productos.Update(ctx, p.ID, dto.UpdateProductoRequest{StockMinimo: ptr(decimal.RequireFromString("0.00001"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := c.productos.Update(ctx, p.ID, dto.UpdateProductoRequest{PrecioVenta: ptr(decimal.RequireFromString("10.50"))})
	require.NoError(t, err)
	assert.Equal(t, "10.5", got.PrecioVenta.String())
}

func TestProductoUseCase_ListBajoStockYDelete(t *testing.T) {
	ctx := context.Background()
	c := nuevoCatalogo()
	cat, _ := c.categorias.Create(ctx, dto.CreateCategoriaRequest{Nombre: "Granos"})

	bajo, err := c.productos.Create(ctx, dto.CreateProductoRequest{CategoriaID: cat.ID, Codigo: "A", Nombre: "A", StockMinimo: decimal.NewFromInt(5)})
	require.NoError(t, err)
	_, err = c.productos.Create(ctx, dto.CreateProductoRequest{CategoriaID: cat.ID, Codigo: "B", Nombre: "B", StockMinimo: decimal.Zero})
	require.NoError(t, err)

	list, err := c.productos.ListBajoStock(ctx, dto.PageRequest{})
	require.NoError(t, err)
	// stock 0 <= mínimo 0 también cuenta
	assert.Len(t, list.Items, 2)
	assert.Equal(t, bajo.ID, list.Items[0].ID)

	require.NoError(t, c.productos.Delete(ctx, bajo.ID))
	list, err = c.productos.ListBajoStock(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	activos, err := c.productos.List(ctx, dto.ProductoFiltroRequest{SoloActivos: true})
	require.NoError(t, err)
	assert.Len(t, activos.Items, 1)
}
