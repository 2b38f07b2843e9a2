package engine

import "treenav/internal/domain"

// GotoTop moves c to the first visible item. An empty tree, or one whose
// top-level items are all hidden, leaves c unset and returns nil.
func (e *Engine) GotoTop(c *Cursor) (domain.Node, error) {
	c.path[0] = 0
	c.depth = 0
	c.openDepth = 0
	c.pixel = 0

	n, err := e.settleForward(c)
	if n == nil {
		c.unset()
	}
	return n, err
}

// GotoPath moves c to exactly the given path, re-deriving OpenDepth and
// PixelPosition as if the item had just been visited. The target may lie
// inside a closed subtree. A path the tree does not contain leaves c unset
// and returns nil.
func (e *Engine) GotoPath(c *Cursor, target domain.Path) (domain.Node, error) {
	if len(target) == 0 || target[0] < 0 {
		c.unset()
		return nil, nil
	}
	if err := e.set.ensure(len(target)); err != nil {
		return nil, err
	}
	goal := e.set.goal[:len(target)]
	copy(goal, target)
	return e.gotoGoal(c, goal)
}

// GotoCursor re-derives dst from src's saved path. Used to restore the
// current position from the focus position after a layout pass.
func (e *Engine) GotoCursor(dst, src *Cursor) (domain.Node, error) {
	if !src.IsSet() {
		dst.unset()
		return nil, nil
	}
	return e.GotoPath(dst, domain.Path(src.path[:src.depth+1]))
}

func (e *Engine) gotoGoal(c *Cursor, goal []int) (domain.Node, error) {
	openDepth := 0
	var target domain.Node
	for level := range goal {
		n, err := e.fetch(goal, level)
		if err != nil {
			return nil, err
		}
		if n == nil {
			c.unset()
			return nil, nil
		}
		target = n
		if level == openDepth && level < len(goal)-1 && e.visible(n) && e.provider.IsOpen(n) {
			openDepth = level + 1
		}
	}

	// Walk the visible rows to the one the target occupies (or the first
	// visible row after it when that row is hidden).
	row := domain.Path(goal[:openDepth+1])
	pixel := 0
	n, err := e.GotoTop(c)
	for n != nil && err == nil {
		if !ComparePaths(domain.Path(c.path[:c.depth+1]), row).Precedes() {
			pixel = c.pixel
			break
		}
		pixel = c.pixel + e.height(n)
		n, err = e.NextVisible(c)
	}
	if err != nil {
		return nil, err
	}

	copy(c.path, goal)
	c.depth = len(goal) - 1
	c.openDepth = openDepth
	c.pixel = pixel
	return target, nil
}

// GotoFirstRaw moves c to the first top-level node whether or not it is
// visible; the starting point for walks that must reach every node.
func (e *Engine) GotoFirstRaw(c *Cursor) (domain.Node, error) {
	c.path[0] = 0
	c.depth = 0
	c.openDepth = 0
	c.pixel = 0

	n, err := e.settleRaw(c)
	if n == nil {
		c.unset()
	}
	return n, err
}
