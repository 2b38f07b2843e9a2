package engine

import "treenav/internal/domain"

// GotoPixelOffset moves c to the visible item whose vertical span contains
// content row y. viewportTop is the current scroll offset.
//
// When y lies in the lower half of the scrolled region and FirstVisible is
// valid the walk starts there; otherwise it starts from the top. It returns
// nil when y is above or below the content; c is then left on the nearest
// item.
func (e *Engine) GotoPixelOffset(c *Cursor, y, viewportTop int) (domain.Node, error) {
	if y < 0 {
		return nil, nil
	}

	var n domain.Node
	var err error
	if fv := e.set.Get(FirstVisible); fv.OnScreen() && y >= viewportTop/2 {
		e.set.Copy(c, fv)
		if n = e.NodeAt(c); !e.visible(n) {
			n = nil
		}
	}
	if n == nil {
		if n, err = e.GotoTop(c); n == nil {
			return nil, err
		}
	}

	for c.pixel > y {
		prev, err := e.PreviousVisible(c)
		if err != nil {
			return nil, err
		}
		if prev == nil {
			break
		}
		n = prev
	}
	for y >= c.pixel+e.height(n) {
		next, err := e.NextVisible(c)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, nil
		}
		n = next
	}
	return n, nil
}
