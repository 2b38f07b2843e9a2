package engine

import "treenav/internal/domain"

// NextVisible moves c to the next item a viewer would see, skipping closed
// and hidden subtrees in one step each. It returns the node it lands on, or
// nil (with c unchanged) when c is already on the last visible item.
func (e *Engine) NextVisible(c *Cursor) (domain.Node, error) {
	if !c.IsSet() {
		return nil, nil
	}
	e.set.Copy(&e.set.undo, c)
	n, err := e.nextVisible(c)
	if n == nil {
		e.set.Copy(c, &e.set.undo)
	}
	return n, err
}

func (e *Engine) nextVisible(c *Cursor) (domain.Node, error) {
	if c.depth > c.openDepth {
		// Inside a closed or hidden subtree: leave the on-screen ancestor row
		// and skip the rest of it.
		c.depth = c.openDepth
		row, err := e.fetch(c.path, c.depth)
		if err != nil {
			return nil, err
		}
		if e.visible(row) {
			c.pixel += e.height(row)
		}
		c.path[c.depth]++
		return e.settleForward(c)
	}

	cur, err := e.fetch(c.path, c.depth)
	if err != nil {
		return nil, err
	}
	if !e.visible(cur) {
		c.path[c.depth]++
		return e.settleForward(c)
	}

	c.pixel += e.height(cur)
	kids := 0
	if e.provider.IsOpen(cur) {
		if kids, err = e.children(c.path, c.depth); err != nil {
			return nil, err
		}
	}
	if kids > 0 {
		if err := e.set.ensure(c.depth + 2); err != nil {
			return nil, err
		}
		c.depth++
		c.path[c.depth] = 0
		c.openDepth = c.depth
	} else {
		c.path[c.depth]++
	}
	return e.settleForward(c)
}

// settleForward resolves c's last index to the first in-range visible
// sibling, popping to the parent's next sibling whenever a level runs out.
func (e *Engine) settleForward(c *Cursor) (domain.Node, error) {
	for {
		cnt, err := e.count(c.path, c.depth)
		if err != nil {
			return nil, err
		}
		if c.path[c.depth] >= cnt {
			if c.depth == 0 {
				return nil, nil
			}
			c.depth--
			c.openDepth = c.depth
			c.path[c.depth]++
			continue
		}

		n, err := e.fetch(c.path, c.depth)
		if err != nil {
			return nil, err
		}
		if n == nil {
			// shrank since the count was read; re-read and pop
			continue
		}
		if !e.provider.IsVisible(n) {
			c.path[c.depth]++
			continue
		}
		return n, nil
	}
}

// PreviousVisible moves c to the previous visible item. Stepping back into
// an open container lands on its deepest last visible descendant. It
// returns nil (with c unchanged) when c is on the first visible item.
//
// A cursor inside a closed or hidden subtree first snaps back to its
// on-screen ancestor, the same rule NextVisible applies, and then steps.
// The ancestor row itself is therefore skipped: from B1 inside closed B the
// result is the row above B, not B. Use Parent to land on the ancestor.
func (e *Engine) PreviousVisible(c *Cursor) (domain.Node, error) {
	if !c.IsSet() {
		return nil, nil
	}
	e.set.Copy(&e.set.undo, c)
	n, err := e.previousVisible(c)
	if n == nil {
		e.set.Copy(c, &e.set.undo)
	}
	return n, err
}

func (e *Engine) previousVisible(c *Cursor) (domain.Node, error) {
	if c.depth > c.openDepth {
		c.depth = c.openDepth
	}

	for {
		if idx := c.path[c.depth]; idx > 0 {
			cnt, err := e.count(c.path, c.depth)
			if err != nil {
				return nil, err
			}
			if idx > cnt {
				idx = cnt
			}
			if idx == 0 {
				c.path[c.depth] = 0
				continue
			}
			c.path[c.depth] = idx - 1

			n, err := e.fetch(c.path, c.depth)
			if err != nil {
				return nil, err
			}
			if !e.visible(n) {
				continue
			}
			if n, err = e.lastVisibleDescendant(c, n); err != nil {
				return nil, err
			}
			c.openDepth = c.depth
			c.pixel -= e.height(n)
			return n, nil
		}

		if c.depth == 0 {
			return nil, nil
		}
		c.depth--
		c.openDepth = c.depth
		parent, err := e.fetch(c.path, c.depth)
		if err != nil {
			return nil, err
		}
		if !e.visible(parent) {
			continue
		}
		c.pixel -= e.height(parent)
		return parent, nil
	}
}

// lastVisibleDescendant descends from n (at c.depth) through open
// containers to the deepest last visible child.
func (e *Engine) lastVisibleDescendant(c *Cursor, n domain.Node) (domain.Node, error) {
	for e.provider.IsOpen(n) {
		kids, err := e.children(c.path, c.depth)
		if err != nil {
			return nil, err
		}
		if kids == 0 {
			return n, nil
		}
		if err := e.set.ensure(c.depth + 2); err != nil {
			return nil, err
		}

		c.depth++
		var found domain.Node
		for i := kids - 1; i >= 0 && found == nil; i-- {
			c.path[c.depth] = i
			child, err := e.fetch(c.path, c.depth)
			if err != nil {
				return nil, err
			}
			if e.visible(child) {
				found = child
			}
		}
		if found == nil {
			c.depth--
			return n, nil
		}
		n = found
	}
	return n, nil
}

// NextRaw moves c to the next node in pre-order regardless of visibility or
// open state. Pixel bookkeeping still follows what is on screen, so a raw
// walk leaves c with a valid PixelPosition.
func (e *Engine) NextRaw(c *Cursor) (domain.Node, error) {
	if !c.IsSet() {
		return nil, nil
	}
	e.set.Copy(&e.set.undo, c)
	n, err := e.nextRaw(c)
	if n == nil {
		e.set.Copy(c, &e.set.undo)
	}
	return n, err
}

func (e *Engine) nextRaw(c *Cursor) (domain.Node, error) {
	onScreen := c.depth == c.openDepth
	cur, err := e.fetch(c.path, c.depth)
	if err != nil {
		return nil, err
	}

	kids := 0
	if cur != nil {
		if kids, err = e.children(c.path, c.depth); err != nil {
			return nil, err
		}
	}
	visible := e.visible(cur)

	if kids > 0 {
		if err := e.set.ensure(c.depth + 2); err != nil {
			return nil, err
		}
		if onScreen && visible && e.provider.IsOpen(cur) {
			c.pixel += e.height(cur)
			c.openDepth = c.depth + 1
		}
		c.depth++
		c.path[c.depth] = 0
	} else {
		if onScreen && visible {
			c.pixel += e.height(cur)
		}
		c.path[c.depth]++
	}
	return e.settleRaw(c)
}

func (e *Engine) settleRaw(c *Cursor) (domain.Node, error) {
	for {
		cnt, err := e.count(c.path, c.depth)
		if err != nil {
			return nil, err
		}
		if c.path[c.depth] >= cnt {
			if c.depth == 0 {
				return nil, nil
			}
			c.depth--
			switch {
			case c.openDepth > c.depth:
				// leaving an open container; its row was counted on the way in
				c.openDepth = c.depth
			case c.openDepth == c.depth:
				// leaving a closed row whose children were walked off screen
				row, err := e.fetch(c.path, c.depth)
				if err != nil {
					return nil, err
				}
				if e.visible(row) {
					c.pixel += e.height(row)
				}
			}
			c.path[c.depth]++
			continue
		}

		n, err := e.fetch(c.path, c.depth)
		if err != nil {
			return nil, err
		}
		if n == nil {
			continue
		}
		return n, nil
	}
}

// LastVisible moves c to the last visible item. It walks the whole visible
// tree so that PixelPosition is exact.
func (e *Engine) LastVisible(c *Cursor) (domain.Node, error) {
	last, err := e.GotoTop(c)
	for last != nil && err == nil {
		var n domain.Node
		if n, err = e.NextVisible(c); n == nil {
			break
		}
		last = n
	}
	return last, err
}

// NextSibling moves c to the next visible item at the same level under the
// same parent. It returns nil (with c unchanged) when there is none or c is
// not on screen.
func (e *Engine) NextSibling(c *Cursor) (domain.Node, error) {
	if !c.OnScreen() {
		return nil, nil
	}
	depth := c.depth
	e.set.Copy(&e.set.undo, c)
	for {
		n, err := e.nextVisible(c)
		if err != nil || n == nil || c.depth < depth {
			e.set.Copy(c, &e.set.undo)
			return nil, err
		}
		if c.depth == depth {
			return n, nil
		}
	}
}

// PreviousSibling moves c to the previous visible item at the same level
// under the same parent
func (e *Engine) PreviousSibling(c *Cursor) (domain.Node, error) {
	if !c.OnScreen() {
		return nil, nil
	}
	depth := c.depth
	e.set.Copy(&e.set.undo, c)
	for {
		n, err := e.previousVisible(c)
		if err != nil || n == nil || c.depth < depth {
			e.set.Copy(c, &e.set.undo)
			return nil, err
		}
		if c.depth == depth {
			return n, nil
		}
	}
}

// Parent moves c to its parent item. For a cursor inside a closed subtree
// this only drops a level; otherwise it walks back so PixelPosition stays
// exact.
func (e *Engine) Parent(c *Cursor) (domain.Node, error) {
	if !c.IsSet() || c.depth == 0 {
		return nil, nil
	}
	if c.depth > c.openDepth {
		c.depth--
		return e.fetch(c.path, c.depth)
	}

	depth := c.depth
	e.set.Copy(&e.set.undo, c)
	for {
		n, err := e.previousVisible(c)
		if err != nil || n == nil {
			e.set.Copy(c, &e.set.undo)
			return nil, err
		}
		if c.depth < depth {
			return n, nil
		}
	}
}

// FirstChild moves c into the first visible child of an open, on-screen
// container. It returns nil (with c unchanged) otherwise.
func (e *Engine) FirstChild(c *Cursor) (domain.Node, error) {
	if !c.OnScreen() {
		return nil, nil
	}
	depth := c.depth
	e.set.Copy(&e.set.undo, c)
	n, err := e.nextVisible(c)
	if err != nil || n == nil || c.depth != depth+1 {
		e.set.Copy(c, &e.set.undo)
		return nil, err
	}
	return n, nil
}
