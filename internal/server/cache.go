package server

import (
	"sync"
	"time"

	"github.com/mj1618/ifwm/internal/model"
)

// LayoutCache provides a TTL-based cache over the layout snapshot file.
type LayoutCache struct {
	mu        sync.Mutex
	path      string
	ttl       time.Duration
	layout    model.Layout
	timestamp time.Time
	valid     bool
	now       func() time.Time
}

// NewLayoutCache creates a new cache over path. A ttl of 0 disables caching.
func NewLayoutCache(path string, ttl time.Duration) *LayoutCache {
	return &LayoutCache{path: path, ttl: ttl, now: time.Now}
}

// Layout returns the cached layout if within TTL, otherwise reads it fresh.
func (c *LayoutCache) Layout() (model.Layout, error) {
	if c.ttl == 0 {
		return model.LoadLayout(c.path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.now().Sub(c.timestamp) < c.ttl {
		return c.layout, nil
	}
	layout, err := model.LoadLayout(c.path)
	if err != nil {
		return model.Layout{}, err
	}
	c.layout, c.timestamp, c.valid = layout, c.now(), true
	return layout, nil
}

// Invalidate drops the cached layout.
func (c *LayoutCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}
