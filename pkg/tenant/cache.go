package tenant

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Cache stores resolved tenants between requests.
type Cache interface {
	// Get retrieves a tenant from cache by key.
	Get(ctx context.Context, key string) (*Tenant, bool)

	// Set stores a tenant in cache with the given TTL.
	Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration)

	// Delete removes a tenant from cache.
	Delete(ctx context.Context, key string)
}

// DefaultCacheSize is the default maximum number of items in the cache.
const DefaultCacheSize = 1000

type cacheEntry struct {
	key       string
	tenant    *Tenant
	expiresAt time.Time
}

// inMemoryCache is a size-bounded LRU with per-entry TTL.
// Expired entries are dropped lazily on access or when evicted.
type inMemoryCache struct {
	mu      sync.Mutex
	items   map[string]*list.Element
	order   *list.List // front = most recently used
	maxSize int
	now     func() time.Time
}

// NewInMemoryCache creates an in-memory cache holding up to size tenants.
// A non-positive size falls back to DefaultCacheSize.
func NewInMemoryCache(size int) Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &inMemoryCache{
		items:   make(map[string]*list.Element),
		order:   list.New(),
		maxSize: size,
		now:     time.Now,
	}
}

func (c *inMemoryCache) Get(_ context.Context, key string) (*Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*cacheEntry)
	if c.now().After(entry.expiresAt) {
		c.remove(elem)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return entry.tenant, true
}

func (c *inMemoryCache) Set(_ context.Context, key string, tenant *Tenant, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.tenant = tenant
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, tenant: tenant, expiresAt: expiresAt})
	for c.order.Len() > c.maxSize {
		c.remove(c.order.Back())
	}
}

func (c *inMemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

func (c *inMemoryCache) remove(elem *list.Element) {
	entry := c.order.Remove(elem).(*cacheEntry)
	delete(c.items, entry.key)
}

// noOpCache is a cache that doesn't cache anything.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache. Useful in tests.
func NewNoOpCache() Cache {
	return noOpCache{}
}

func (noOpCache) Get(context.Context, string) (*Tenant, bool)          { return nil, false }
func (noOpCache) Set(context.Context, string, *Tenant, time.Duration) {}
func (noOpCache) Delete(context.Context, string)                      {}
