package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/danmuck/petty/internal/terms"
	"golang.org/x/sync/singleflight"
)

// Cached remembers the last loaded mapping until the next Save or
// Invalidate. Concurrent misses share one underlying Load.
type Cached struct {
	next Store

	mu      sync.RWMutex
	mapping terms.Mapping
	valid   bool
	gen     uint64

	group singleflight.Group
}

// NewCached wraps next.
func NewCached(next Store) *Cached {
	return &Cached{next: next}
}

func (c *Cached) Load(ctx context.Context) (terms.Mapping, error) {
	c.mu.RLock()
	if c.valid {
		out := c.mapping.Clone()
		c.mu.RUnlock()
		return out, nil
	}
	gen := c.gen
	c.mu.RUnlock()

	// loads started under different generations never share a result
	v, err, _ := c.group.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		m, err := c.next.Load(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		// an invalidation during the load makes this result stale
		if c.gen == gen {
			c.mapping = m.Clone()
			c.valid = true
		}
		c.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(terms.Mapping).Clone(), nil
}

func (c *Cached) Save(ctx context.Context, m terms.Mapping) error {
	err := c.next.Save(ctx, m)
	c.Invalidate()
	return err
}

// Invalidate drops the cached mapping.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mapping = nil
	c.gen++
	c.mu.Unlock()
}
