package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

// Loader produces the value for a cache key on miss or refresh.
type Loader[V any] func(ctx context.Context) (V, error)

type ttlEntry[V any] struct {
	val      V
	storedAt time.Time
}

// TTL is an in-memory cache with a stale-while-revalidate window. Entries are
// fresh for FreshFor, then served stale for up to StaleFor while a single
// background refresh runs. Past StaleFor the load blocks the caller.
type TTL[V any] struct {
	freshFor time.Duration
	staleFor time.Duration

	mu      sync.RWMutex
	entries map[string]ttlEntry[V]

	sf  singleflight.Group
	log *logger.Logger

	stopOnce sync.Once
	stop     chan struct{}

	// refreshTimeout bounds the detached background refresh.
	refreshTimeout time.Duration
}

// NewTTL builds a cache. staleFor is the total lifetime of an entry and must
// be at least freshFor; passing staleFor == freshFor disables the
// stale-serving window.
func NewTTL[V any](freshFor, staleFor time.Duration, log *logger.Logger) *TTL[V] {
	if staleFor < freshFor {
		staleFor = freshFor
	}
	c := &TTL[V]{
		freshFor:       freshFor,
		staleFor:       staleFor,
		entries:        make(map[string]ttlEntry[V]),
		log:            log,
		stop:           make(chan struct{}),
		refreshTimeout: 30 * time.Second,
	}
	go c.janitor()
	return c
}

func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Since(e.storedAt) >= c.staleFor {
		var zero V
		return zero, false
	}
	return e.val, true
}

func (c *TTL[V]) Set(key string, val V) {
	c.mu.Lock()
	c.entries[key] = ttlEntry[V]{val: val, storedAt: time.Now()}
	c.mu.Unlock()
}

func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// GetOrLoad returns the cached value when fresh, serves a stale value while
// revalidating in the background, and otherwise loads synchronously.
// Concurrent loads of the same key are collapsed into one loader call.
func (c *TTL[V]) GetOrLoad(ctx context.Context, key string, load Loader[V]) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		age := time.Since(e.storedAt)
		if age < c.freshFor {
			return e.val, nil
		}
		if age < c.staleFor {
			c.refreshAsync(key, load)
			return e.val, nil
		}
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// Another goroutine may have filled the entry while we waited.
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && time.Since(e.storedAt) < c.freshFor {
			return e.val, nil
		}
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, val)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

func (c *TTL[V]) refreshAsync(key string, load Loader[V]) {
	go func() {
		_, _, _ = c.sf.Do("refresh:"+key, func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), c.refreshTimeout)
			defer cancel()
			val, err := load(ctx)
			if err != nil {
				if c.log != nil {
					c.log.Warn("stale refresh failed, keeping stale entry", "key", key, "error", err)
				}
				return nil, err
			}
			c.Set(key, val)
			return nil, nil
		})
	}()
}

func (c *TTL[V]) janitor() {
	interval := c.staleFor
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *TTL[V]) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	for k, e := range c.entries {
		if now.Sub(e.storedAt) >= c.staleFor {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

func (c *TTL[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Len reports live (non-expired) entries.
func (c *TTL[V]) Len() int {
	now := time.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.entries {
		if now.Sub(e.storedAt) < c.staleFor {
			n++
		}
	}
	return n
}
