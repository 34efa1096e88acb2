package usecase

import (
	"sync"

	"swapdmarket/internal/domain/entity"
)

// CatalogCache holds the loaded product list for the life of the process until invalidated.
type CatalogCache struct {
	mu       sync.RWMutex
	products []entity.Product
	loaded   bool

	// generation advances on every invalidation.
	generation uint64
}

func NewCatalogCache() *CatalogCache {
	return &CatalogCache{}
}

// Get returns the cached products and whether the cache is loaded.
func (c *CatalogCache) Get() ([]entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products, c.loaded
}

// Generation identifies the current cache epoch for SetAt.
func (c *CatalogCache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// SetAt stores products read during generation gen. It reports false, storing
// nothing, when the cache was invalidated since.
func (c *CatalogCache) SetAt(gen uint64, products []entity.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return false
	}
	c.products = products
	c.loaded = true
	return true
}

func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.loaded = false
	c.generation++
}

// Remove drops a product from a loaded cache.
func (c *CatalogCache) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return
	}
	kept := make([]entity.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	c.products = kept
}

// Update replaces a cached product in place.
func (c *CatalogCache) Update(productID string, fn func(p *entity.Product)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return
	}
	updated := make([]entity.Product, len(c.products))
	copy(updated, c.products)
	for i := range updated {
		if updated[i].ID == productID {
			fn(&updated[i])
		}
	}
	c.products = updated
}
