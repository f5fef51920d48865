// Package cache implements the in-memory TTL cache with stale fallback that
// fronts CI test-result lookups. Entries outlive their TTL so a failing
// refetch can fall back to the last known payload.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/util"
)

// ErrInvalidPayload marks a fetched payload that failed structural
// validation. Invalid payloads are never cached and never substituted by a
// stale entry.
var ErrInvalidPayload = errors.New("invalid payload")

// FetchFunc loads a fresh payload for a key on miss or expiry
type FetchFunc[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	payload   V
	fetchedAt time.Time
}

// Cache is a keyed TTL cache safe for concurrent use. Concurrent misses for
// one key may both fetch; they converge on whichever write lands last.
type Cache[V any] struct {
	mu       sync.RWMutex
	entries  map[string]entry[V]
	validate func(V) error
	now      func() time.Time
}

// Option configures a Cache
type Option[V any] func(*Cache[V])

// WithValidator installs a structural check run on every fetched payload
// before it is cached or returned
func WithValidator[V any](fn func(V) error) Option[V] {
	return func(c *Cache[V]) { c.validate = fn }
}

// WithClock overrides the time source, for tests
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *Cache[V]) { c.now = now }
}

// New builds an empty cache
func New[V any](opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key joins the dimensions of a composite cache key
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

// Set primes the entry for key with the current timestamp
func (c *Cache[V]) Set(key string, payload V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{payload: payload, fetchedAt: c.now()}
	c.mu.Unlock()
}

// Get returns the payload for key while its age is below ttl
func (c *Cache[V]) Get(key string, ttl time.Duration) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.fetchedAt) >= ttl {
		return zero, false
	}
	return e.payload, true
}

// GetOrFetch returns the cached payload while it is fresh, otherwise invokes
// fetch. A valid fetched payload overwrites the entry. A payload failing
// validation is dropped and reported, with no stale substitution. A fetch
// failure falls back to the prior payload for the key regardless of its age,
// leaving the stored timestamp untouched; with no prior entry the failure
// propagates.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc[V]) (V, error) {
	if payload, ok := c.Get(key, ttl); ok {
		return payload, nil
	}

	var zero V
	payload, err := fetch(ctx)
	if err != nil {
		c.mu.RLock()
		prior, exists := c.entries[key]
		c.mu.RUnlock()
		if exists {
			util.Logger.Sugar().Warnf("serving stale payload for %s after fetch failure: %v", key, err)
			return prior.payload, nil
		}
		return zero, err
	}

	if c.validate != nil {
		if verr := c.validate(payload); verr != nil {
			return zero, fmt.Errorf("%w for %s: %v", ErrInvalidPayload, key, verr)
		}
	}

	c.Set(key, payload)
	return payload, nil
}

// Invalidate removes one key, reporting whether it existed
func (c *Cache[V]) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

// InvalidatePrefix removes every key under prefix and returns the count
func (c *Cache[V]) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear drops every entry and returns the count
func (c *Cache[V]) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := len(c.entries)
	c.entries = make(map[string]entry[V])
	return removed
}

// Len reports the number of entries, fresh or stale
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
