// Package querycache is a keyed cache over remote fetches. It gives
// the view layer the primitives the console assumes: concurrent
// queries for the same key share one in-flight request, results stay
// cached until their TTL elapses or a mutation invalidates them, and
// failed queries are retried once before surfacing an error state.
package querycache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Options controls one query's caching behavior.
type Options struct {
	// TTL is how long a result stays fresh. It doubles as the
	// refetch interval for polled queries: a caller re-issuing the
	// query after the TTL gets a fresh fetch. Zero means the result
	// never expires on its own.
	TTL time.Duration

	// Retries is the number of automatic retries after a failed
	// fetch. Queries default to one retry; mutations never retry.
	Retries int
}

// Entry is a snapshot of one cache slot, used by views to render
// loading/error states synchronously.
type Entry struct {
	Data      any
	Err       error
	FetchedAt time.Time
	Loading   bool
}

type slot struct {
	data      any
	err       error
	fetchedAt time.Time
	ttl       time.Duration
	loading   bool
}

// Cache is safe for concurrent use; bubbletea commands run fetches on
// their own goroutines.
type Cache struct {
	mu     sync.RWMutex
	slots  map[string]*slot
	group  singleflight.Group
	logger *slog.Logger
	now    func() time.Time
}

// New creates an empty cache.
func New(logger *slog.Logger) *Cache {
	return &Cache{
		slots:  make(map[string]*slot),
		logger: logger.With("component", "querycache"),
		now:    time.Now,
	}
}

// KeyOf builds a composite cache key from its parts, e.g.
// KeyOf("tickets", page, size, filters).
func KeyOf(parts ...any) string {
	formatted := make([]string, len(parts))
	for i, part := range parts {
		formatted[i] = fmt.Sprintf("%+v", part)
	}
	return strings.Join(formatted, "/")
}

// Query returns the cached value for key, fetching it when the slot is
// empty or stale. Identical concurrent calls coalesce into a single
// fetch. A failed fetch (after retries) is recorded in the slot's
// error state and returned; the next Query for the key fetches again.
func Query[T any](c *Cache, ctx context.Context, key string, opts Options, fetch func(context.Context) (T, error)) (T, error) {
	if cached, ok := fresh[T](c, key); ok {
		return cached, nil
	}

	c.markLoading(key, opts.TTL)
	result, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// completed the fetch while this one waited on the group.
		if cached, ok := fresh[T](c, key); ok {
			return cached, nil
		}
		value, fetchErr := fetch(ctx)
		for attempt := 0; fetchErr != nil && attempt < opts.Retries; attempt++ {
			c.logger.Debug("retrying query", "key", key, "error", fetchErr)
			value, fetchErr = fetch(ctx)
		}
		c.store(key, value, fetchErr, opts.TTL)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// Mutate performs a one-shot write operation. Nothing is cached and
// nothing is retried; callers invalidate related key prefixes after a
// successful mutation.
func Mutate[T any](c *Cache, ctx context.Context, mutate func(context.Context) (T, error)) (T, error) {
	return mutate(ctx)
}

// Peek returns the current slot state without triggering a fetch.
func (c *Cache) Peek(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.slots[key]
	if !ok {
		return Entry{}, false
	}
	return Entry{Data: s.data, Err: s.err, FetchedAt: s.fetchedAt, Loading: s.loading}, true
}

// Invalidate removes every entry whose key starts with prefix. An
// empty prefix clears the whole cache (used on terminal refocus).
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.slots {
		if strings.HasPrefix(key, prefix) {
			delete(c.slots, key)
		}
	}
}

func fresh[T any](c *Cache, key string) (T, bool) {
	var zero T
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.slots[key]
	if !ok || s.loading || s.err != nil {
		return zero, false
	}
	if s.ttl > 0 && c.now().Sub(s.fetchedAt) >= s.ttl {
		return zero, false
	}
	value, ok := s.data.(T)
	return value, ok
}

func (c *Cache) markLoading(key string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[key]
	if !ok {
		s = &slot{ttl: ttl}
		c.slots[key] = s
	}
	s.loading = true
}

func (c *Cache) store(key string, data any, err error, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		// Keep the previous data so views can render stale content
		// next to the error state.
		s, ok := c.slots[key]
		if !ok {
			s = &slot{}
			c.slots[key] = s
		}
		s.err = err
		s.loading = false
		s.fetchedAt = c.now()
		s.ttl = ttl
		return
	}
	c.slots[key] = &slot{data: data, fetchedAt: c.now(), ttl: ttl}
}
