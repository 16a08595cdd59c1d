// Package cache keeps the latest successful list page per query and
// collapses identical in-flight list requests into one.
package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/tradieone/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Key identifies one list query.
type Key struct {
	Kind       domain.Kind
	PageNumber int
	PageSize   int
	Keyword    string
}

// KeyFor builds the key of a list query. opts must already carry defaults.
func KeyFor(kind domain.Kind, opts domain.ListOptions) Key {
	return Key{Kind: kind, PageNumber: opts.PageNumber, PageSize: opts.PageSize, Keyword: opts.Keyword}
}

func (k Key) String() string {
	return fmt.Sprintf("%s?pageNumber=%d&pageSize=%d&keyword=%q", k.Kind, k.PageNumber, k.PageSize, k.Keyword)
}

// Loader fetches a page from the backend.
type Loader func(ctx context.Context) (domain.Page, error)

// ListCache is safe for concurrent use. It starts no goroutines of its own.
type ListCache struct {
	mu      sync.RWMutex
	entries map[Key]domain.Page
	// gen is bumped per kind on Invalidate; loads begun under an older
	// generation neither store nor share their result with newer callers.
	gen   map[domain.Kind]uint64
	group singleflight.Group
}

func New() *ListCache {
	return &ListCache{
		entries: make(map[Key]domain.Page),
		gen:     make(map[domain.Kind]uint64),
	}
}

// Peek returns the cached page for k without loading.
func (c *ListCache) Peek(k Key) (domain.Page, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[k]
	return p, ok
}

// Fetch always loads k, deduplicating concurrent identical calls, and
// stores a successful result.
func (c *ListCache) Fetch(ctx context.Context, k Key, load Loader) (domain.Page, error) {
	gen := c.generation(k.Kind)
	flight := fmt.Sprintf("%d/%s", gen, k)

	v, err, _ := c.group.Do(flight, func() (any, error) {
		page, err := load(ctx)
		if err != nil {
			return domain.Page{}, err
		}
		c.mu.Lock()
		if c.gen[k.Kind] == gen {
			c.entries[k] = page
		}
		c.mu.Unlock()
		return page, nil
	})
	if err != nil {
		return domain.Page{}, err
	}
	return v.(domain.Page), nil
}

// Get returns the cached page for k when present and loads it otherwise.
func (c *ListCache) Get(ctx context.Context, k Key, load Loader) (domain.Page, error) {
	if p, ok := c.Peek(k); ok {
		return p, nil
	}
	return c.Fetch(ctx, k, load)
}

// Invalidate drops every cached page of kind.
func (c *ListCache) Invalidate(kind domain.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen[kind]++
	for k := range c.entries {
		if k.Kind == kind {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of cached pages.
func (c *ListCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ListCache) generation(kind domain.Kind) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen[kind]
}
