package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/gestion-ventas/internal/application/ports"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

var _ ports.ProductoCache = (*MemoryProductoCache)(nil)

type memoryItem struct {
	producto   entity.Producto
	expiration time.Time
}

// MemoryProductoCache caché en proceso, usado cuando no hay Redis configurado.
type MemoryProductoCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryProductoCache crea el caché; ttl <= 0 significa sin expiración.
func NewMemoryProductoCache(ttl time.Duration) *MemoryProductoCache {
	return &MemoryProductoCache{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get devuelve una copia para que el llamador no altere la entrada guardada.
func (c *MemoryProductoCache) Get(_ context.Context, id string) (*entity.Producto, bool) {
	c.mu.RLock()
	item, ok := c.items[id]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !item.expiration.IsZero() && c.now().After(item.expiration) {
		c.mu.Lock()
		delete(c.items, id)
		c.mu.Unlock()
		return nil, false
	}
	p := item.producto
	return &p, true
}

func (c *MemoryProductoCache) Set(_ context.Context, p *entity.Producto) {
	item := memoryItem{producto: *p}
	if c.ttl > 0 {
		item.expiration = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.items[p.ID] = item
	c.mu.Unlock()
}

func (c *MemoryProductoCache) Invalidate(_ context.Context, ids ...string) {
	c.mu.Lock()
	for _, id := range ids {
		delete(c.items, id)
	}
	c.mu.Unlock()
}

// Len cantidad de entradas (incluye expiradas aún no purgadas).
func (c *MemoryProductoCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
