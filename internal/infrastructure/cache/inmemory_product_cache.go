package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/catalog"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

type productEntry struct {
	product   catalog.Product
	expiresAt time.Time
}

// InMemoryProductCache implements catalog.ProductCache using an in-memory
// map. Suitable for single-instance deployments and testing.
type InMemoryProductCache struct {
	mu        sync.RWMutex
	entries   map[string]productEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryProductCache creates an in-memory product cache and starts a
// background goroutine that evicts expired entries
func NewInMemoryProductCache(ttl time.Duration) *InMemoryProductCache {
	if ttl <= 0 {
		ttl = catalog.DefaultCacheConfig().TTL
	}
	cache := &InMemoryProductCache{
		entries:  make(map[string]productEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// Get returns the cached product or nil on a miss
func (c *InMemoryProductCache) Get(ctx context.Context, scope shared.Scope, id uuid.UUID) (*catalog.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[c.key(scope, id)]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	product := entry.product
	return &product, nil
}

// Set stores a product
func (c *InMemoryProductCache) Set(ctx context.Context, product *catalog.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[c.key(product.Scope, product.ID)] = productEntry{
		product:   *product,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// Invalidate drops one product from the cache
func (c *InMemoryProductCache) Invalidate(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, c.key(scope, id))
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryProductCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
	})
	c.wg.Wait()
	return nil
}

func (c *InMemoryProductCache) key(scope shared.Scope, id uuid.UUID) string {
	return string(scope) + ":" + id.String()
}

func (c *InMemoryProductCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *InMemoryProductCache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
