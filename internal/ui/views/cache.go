package views

import (
	"treenav/internal/domain"
	"treenav/internal/ui/services/damage"
)

// RowCache keeps rendered rows between frames, keyed by item path. Damage
// reports decide what is thrown away: a localized report drops at most two
// rows, a full one drops everything.
type RowCache struct {
	rows   map[string]string
	hits   int
	misses int
}

// NewRowCache creates an empty cache
func NewRowCache() *RowCache {
	return &RowCache{rows: make(map[string]string)}
}

// Apply invalidates the rows named by d
func (c *RowCache) Apply(d damage.Damage) {
	switch d.Kind {
	case damage.Full:
		c.Clear()
	case damage.Localized:
		for _, row := range d.Rows {
			delete(c.rows, row.Path.String())
		}
	}
}

// Get returns the rendered row for p
func (c *RowCache) Get(p domain.Path) (string, bool) {
	s, ok := c.rows[p.String()]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return s, ok
}

// Put stores the rendered row for p
func (c *RowCache) Put(p domain.Path, rendered string) {
	c.rows[p.String()] = rendered
}

// Clear drops every row
func (c *RowCache) Clear() {
	c.rows = make(map[string]string)
}

// Len returns the number of cached rows
func (c *RowCache) Len() int {
	return len(c.rows)
}

// Stats returns hit and miss counts since the cache was created
func (c *RowCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
