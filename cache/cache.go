// Package cache is an in-process TTL cache with per-entry expiry, lazy plus
// periodic eviction, and a single-flight combinator for memoizing expensive
// lookups.
package cache

import (
	"context"
	"regexp"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL           = time.Hour
	DefaultSweepInterval = 5 * time.Minute
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache stores opaque values under string keys. One instance is constructed
// at startup and injected into every consumer; Start/Stop bracket the
// background sweep so shutdown leaves no lingering goroutine.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]

	defaultTTL time.Duration
	sweepEvery time.Duration

	flight singleflight.Group
	log    *zap.Logger

	stop   chan struct{}
	closed chan struct{}
}

func New[V any](defaultTTL, sweepEvery time.Duration, log *zap.Logger) *Cache[V] {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if sweepEvery <= 0 {
		sweepEvery = DefaultSweepInterval
	}
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
		sweepEvery: sweepEvery,
		log:        log,
		stop:       make(chan struct{}),
		closed:     make(chan struct{}),
	}
}

func (c *Cache[V]) Start() { go c.sweepLoop() }

func (c *Cache[V]) Stop() {
	close(c.stop)
	<-c.closed
}

// Get returns the live value for key. An entry found past its expiry is
// deleted on the way out and reported as absent.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}

	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// re-check: a writer may have refreshed the entry since the read
		if cur, ok := c.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

// Set stores value under key, overwriting unconditionally. A non-positive
// ttl falls back to the cache default.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache[V]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

// DeletePattern removes every key matching the regexp and returns how many
// were removed. Linear scan; the cache holds thousands of entries at most.
func (c *Cache[V]) DeletePattern(pattern string) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if re.MatchString(k) {
			delete(c.entries, k)
			n++
		}
	}
	return n, nil
}

func (c *Cache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrSet returns the live value for key, or invokes produce to compute and
// store one. Concurrent callers for the same key share a single produce
// invocation; all of them receive its value or its error. A failed produce
// caches nothing, so the next call retries cleanly.
//
// ctx cancels only this caller's wait. The in-flight produce keeps running
// for the benefit of the other waiters, which is why it receives a context
// detached from this caller's cancellation.
func (c *Cache[V]) GetOrSet(ctx context.Context, key string, ttl time.Duration, produce func(context.Context) (V, error)) (V, error) {
	var zero V

	if v, ok := c.Get(key); ok {
		return v, nil
	}

	ch := c.flight.DoChan(key, func() (any, error) {
		// another caller may have stored between our miss and the flight
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := produce(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.Set(key, v, ttl)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

func (c *Cache[V]) sweepLoop() {
	ticker := time.NewTicker(c.sweepEvery)
	defer ticker.Stop()
	defer close(c.closed)

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			removed := c.sweep()
			if removed > 0 && c.log != nil {
				c.log.Debug("cache sweep", zap.Int("removed", removed))
			}
		}
	}
}

func (c *Cache[V]) sweep() int {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}
