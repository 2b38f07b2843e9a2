package damage

import "treenav/internal/domain"

// Kind says how much of the viewport must be redrawn
type Kind int

const (
	None Kind = iota
	Localized
	Full
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Localized:
		return "localized"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// Region is a vertical span of content rows
type Region struct {
	Top    int
	Height int
}

// Row is one changed item: its path and where it was drawn
type Row struct {
	Path   domain.Path
	Region Region
}

// Damage is what a redraw pass has to repaint. For Localized damage Rows
// holds one or two entries; it is reused by the tracker and only valid until
// the next note.
type Damage struct {
	Kind Kind
	Rows []Row
}
