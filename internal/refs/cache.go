package refs

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key derives the cache key for a command invocation. The argument hash is
// fixed width, so keys of different identifiers never collide, and each
// argument is length-prefixed so ["a b"] and ["a", "b"] hash differently.
func Key(id ID, args []string) string {
	h := sha256.New()
	var n [binary.MaxVarintLen64]byte
	for _, a := range args {
		h.Write(n[:binary.PutUvarint(n[:], uint64(len(a)))])
		h.Write([]byte(a))
	}
	return id.String() + "@" + hex.EncodeToString(h.Sum(nil))
}

// Cache holds memoized command results for the lifetime of an Env.
// Entries never expire; they are removed only by Flush or Reset.
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
	hits    int
	misses  int
	group   singleflight.Group
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// peek is Get without touching the hit and miss counters.
func (c *Cache) peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores v under key, replacing any previous value.
func (c *Cache) Set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = v
}

// Flush removes the entry for key and reports whether it was present.
func (c *Cache) Flush(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Reset drops every entry and the hit/miss counters.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
	c.hits, c.misses = 0, 0
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns how many lookups hit and missed since the last Reset.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Memoize wraps fn so that each distinct (id, args) pair is computed once
// per Env cache. Errors are returned but never cached. Concurrent callers
// with the same key share a single computation.
func Memoize(id ID, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, env *Env, args []string) (any, error) {
		if env.Cache == nil {
			return fn(ctx, env, args)
		}
		key := Key(id, args)
		if v, ok := env.Cache.Get(key); ok {
			return v, nil
		}
		v, err, _ := env.Cache.group.Do(key, func() (any, error) {
			// A caller that missed before the previous flight stored its value.
			if v, ok := env.Cache.peek(key); ok {
				return v, nil
			}
			v, err := fn(ctx, env, args)
			if err != nil {
				return nil, err
			}
			env.Cache.Set(key, v)
			return v, nil
		})
		return v, err
	}
}
