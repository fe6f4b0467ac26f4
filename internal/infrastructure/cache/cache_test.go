package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
	"github.com/jhoicas/gestion-ventas/pkg/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// MemoryProductoCache
// ─────────────────────────────────────────────────────────────────────────────

func TestMemoryProductoCache_GetSetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryProductoCache(time.Minute)

	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)

	c.Set(ctx, &entity.Producto{ID: "p1", Nombre: "Arroz"})
	p, ok := c.Get(ctx, "p1")
	require.True(t, ok)
	assert.Equal(t, "Arroz", p.Nombre)

	// la copia devuelta no altera lo guardado
	p.Nombre = "otro"
	p2, _ := c.Get(ctx, "p1")
	assert.Equal(t, "Arroz", p2.Nombre)

	c.Invalidate(ctx, "p1")
	_, ok = c.Get(ctx, "p1")
	assert.False(t, ok)
}

func TestMemoryProductoCache_Expira(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryProductoCache(time.Minute)
	ahora := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return ahora }

	c.Set(ctx, &entity.Producto{ID: "p1"})
	ahora = ahora.Add(2 * time.Minute)

	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestProductoKey(t *testing.T) {
	assert.Equal(t, "gestion-ventas:producto:abc", productoKey("abc"))
}

// ─────────────────────────────────────────────────────────────────────────────
// RedisProductoCache (miniredis en proceso)
// ─────────────────────────────────────────────────────────────────────────────

func nuevoRedisCache(t *testing.T, ttl time.Duration) (*RedisProductoCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr(), TTL: ttl})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisProductoCache(client, ttl, zerolog.Nop()), mr
}

func TestRedisProductoCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, mr := nuevoRedisCache(t, time.Minute)

	c.Set(ctx, &entity.Producto{
		ID: "p1", Codigo: "ARR", Nombre: "Arroz",
		PrecioVenta: decimal.RequireFromString("2500.50"), Stock: decimal.RequireFromString("7.25"),
		Estado: entity.EstadoActivo,
	})
	assert.True(t, mr.Exists(productoKey("p1")))
	assert.Equal(t, time.Minute, mr.TTL(productoKey("p1")))

	p, ok := c.Get(ctx, "p1")
	require.True(t, ok)
	assert.Equal(t, "Arroz", p.Nombre)
	assert.True(t, p.PrecioVenta.Equal(decimal.RequireFromString("2500.5")))
	assert.Equal(t, "7.25", p.Stock.String())
	assert.True(t, p.Activo())

	mr.FastForward(2 * time.Minute)
	_, ok = c.Get(ctx, "p1")
	assert.False(t, ok, "expiró por TTL")
}

func TestRedisProductoCache_Miss(t *testing.T) {
	c, _ := nuevoRedisCache(t, time.Minute)
	p, ok := c.Get(context.Background(), "no-existe")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestRedisProductoCache_EntradaCorrupta(t *testing.T) {
	c, mr := nuevoRedisCache(t, time.Minute)
	require.NoError(t, mr.Set(productoKey("p1"), "{no-json"))

	p, ok := c.Get(context.Background(), "p1")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestRedisProductoCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c, mr := nuevoRedisCache(t, time.Minute)
	c.Set(ctx, &entity.Producto{ID: "p1"})
	c.Set(ctx, &entity.Producto{ID: "p2"})
	c.Set(ctx, &entity.Producto{ID: "p3"})

	c.Invalidate(ctx, "p1", "p2", "no-existe")
	c.Invalidate(ctx)

	assert.False(t, mr.Exists(productoKey("p1")))
	assert.False(t, mr.Exists(productoKey("p2")))
	_, ok := c.Get(ctx, "p3")
	assert.True(t, ok)
}

func TestRedisProductoCache_ServidorCaido(t *testing.T) {
	ctx := context.Background()
	c, mr := nuevoRedisCache(t, time.Minute)
	c.Set(ctx, &entity.Producto{ID: "p1"})
	mr.Close()

	// sin Redis el caché solo falla la lectura; el repositorio sigue contra la base
	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)
	c.Set(ctx, &entity.Producto{ID: "p2"})
	c.Invalidate(ctx, "p1")
}

func TestNewRedisClient_SinServidor(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// ProductoRepository (lectura a través del caché)
// ─────────────────────────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	repository.ProductoRepository
	productos map[string]*entity.Producto
	lecturas  int
}

func (f *fakeProductoRepo) GetByID(_ context.Context, id string) (*entity.Producto, error) {
	f.lecturas++
	p, ok := f.productos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductoRepo) Update(_ context.Context, p *entity.Producto) error {
	f.productos[p.ID] = p
	return nil
}

func (f *fakeProductoRepo) UpdateStockYCosto(_ context.Context, id string, stock, costo decimal.Decimal) error {
	f.productos[id].Stock = stock
	f.productos[id].Costo = costo
	return nil
}

func TestProductoRepository_LeeUnaVezYLuegoDelCache(t *testing.T) {
	ctx := context.Background()
	base := &fakeProductoRepo{productos: map[string]*entity.Producto{"p1": {ID: "p1", Nombre: "Arroz"}}}
	repo := NewProductoRepository(base, NewMemoryProductoCache(time.Minute))

	for i := 0; i < 3; i++ {
		p, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Arroz", p.Nombre)
	}
	assert.Equal(t, 1, base.lecturas)
}

func TestProductoRepository_NoCacheaInexistentes(t *testing.T) {
	ctx := context.Background()
	base := &fakeProductoRepo{productos: map[string]*entity.Producto{}}
	repo := NewProductoRepository(base, NewMemoryProductoCache(time.Minute))

	p, err := repo.GetByID(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, p)
	_, _ = repo.GetByID(ctx, "x")
	assert.Equal(t, 2, base.lecturas)
}

func TestProductoRepository_EscrituraInvalida(t *testing.T) {
	ctx := context.Background()
	base := &fakeProductoRepo{productos: map[string]*entity.Producto{"p1": {ID: "p1", Nombre: "Arroz"}}}
	repo := NewProductoRepository(base, NewMemoryProductoCache(time.Minute))

	_, _ = repo.GetByID(ctx, "p1")
	require.NoError(t, repo.Update(ctx, &entity.Producto{ID: "p1", Nombre: "Arroz integral"}))

	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Arroz integral", p.Nombre)
	assert.Equal(t, 2, base.lecturas)

	require.NoError(t, repo.UpdateStockYCosto(ctx, "p1", decimal.NewFromInt(7), decimal.NewFromInt(100)))
	p, _ = repo.GetByID(ctx, "p1")
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, 3, base.lecturas)
}
