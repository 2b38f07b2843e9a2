package engine

import "treenav/internal/domain"

// Order is the relative tree position of two cursors
type Order int

const (
	// OrderBefore means a comes before b and is not its ancestor
	OrderBefore Order = iota
	OrderSame
	// OrderAfter means a comes after b and is not its descendant
	OrderAfter
	// OrderAncestor means a is an ancestor of b
	OrderAncestor
	// OrderDescendant means b is an ancestor of a
	OrderDescendant
)

// String returns a readable order name
func (o Order) String() string {
	switch o {
	case OrderBefore:
		return "before"
	case OrderSame:
		return "same"
	case OrderAfter:
		return "after"
	case OrderAncestor:
		return "ancestor"
	case OrderDescendant:
		return "descendant"
	default:
		return "unknown"
	}
}

// Precedes reports whether a position with this order is visited before the
// other one in a pre-order walk
func (o Order) Precedes() bool {
	return o == OrderBefore || o == OrderAncestor
}

// Compare orders a against b. Unset cursors sort before everything.
func Compare(a, b *Cursor) Order {
	return ComparePaths(a.path[:a.depth+1], b.path[:b.depth+1])
}

// ComparePaths compares two paths lexicographically over the shorter length.
// A tie at the shorter length means one is a prefix (ancestor) of the other.
func ComparePaths(a, b domain.Path) Order {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return OrderBefore
		case a[i] > b[i]:
			return OrderAfter
		}
	}
	switch {
	case len(a) == len(b):
		return OrderSame
	case len(a) < len(b):
		return OrderAncestor
	default:
		return OrderDescendant
	}
}

// ComparePath orders a cursor against a saved path without copying it
func ComparePath(c *Cursor, p domain.Path) Order {
	return ComparePaths(c.path[:c.depth+1], p)
}
