package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestion-ventas/internal/application/ports"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/pkg/config"
)

var _ ports.ProductoCache = (*RedisProductoCache)(nil)

const productoKeyPrefix = "gestion-ventas:producto:"

// RedisProductoCache guarda productos serializados en JSON con TTL.
type RedisProductoCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisClient abre el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewRedisProductoCache construye el caché sobre un cliente existente.
func NewRedisProductoCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisProductoCache {
	return &RedisProductoCache{client: client, ttl: ttl, log: log}
}

func productoKey(id string) string {
	return productoKeyPrefix + id
}

func (c *RedisProductoCache) Get(ctx context.Context, id string) (*entity.Producto, bool) {
	data, err := c.client.Get(ctx, productoKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("producto_id", id).Msg("cache: get")
		}
		return nil, false
	}
	var p entity.Producto
	if err := json.Unmarshal(data, &p); err != nil {
		c.log.Warn().Err(err).Str("producto_id", id).Msg("cache: entrada corrupta")
		return nil, false
	}
	return &p, true
}

func (c *RedisProductoCache) Set(ctx context.Context, p *entity.Producto) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productoKey(p.ID), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("producto_id", p.ID).Msg("cache: set")
	}
}

func (c *RedisProductoCache) Invalidate(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productoKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("producto_ids", ids).Msg("cache: invalidate")
	}
}
