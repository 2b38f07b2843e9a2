package outline

// Item is one node of an in-memory outline. A nil Children slice makes the
// item a leaf unless Container is set.
type Item struct {
	Label       string  `toml:"label"`
	Description string  `toml:"description,omitempty"`
	Open        bool    `toml:"open,omitempty"`
	Hidden      bool    `toml:"hidden,omitempty"`
	Disabled    bool    `toml:"disabled,omitempty"`
	Container   bool    `toml:"container,omitempty"`
	Height      int     `toml:"height,omitempty"`
	Selected    bool    `toml:"selected,omitempty"`
	Children    []*Item `toml:"item,omitempty"`
}

// IsContainer reports whether the item can hold children
func (it *Item) IsContainer() bool {
	return it.Container || it.Children != nil
}

// Leaf creates a leaf item
func Leaf(label string) *Item {
	return &Item{Label: label}
}

// Branch creates a container item
func Branch(label string, open bool, children ...*Item) *Item {
	if children == nil {
		children = []*Item{}
	}
	return &Item{Label: label, Open: open, Container: true, Children: children}
}

// Hide marks the item hidden and returns it for chaining
func (it *Item) Hide() *Item {
	it.Hidden = true
	return it
}

// Disable marks the item inactive and returns it for chaining
func (it *Item) Disable() *Item {
	it.Disabled = true
	return it
}

// WithHeight sets a row height and returns the item for chaining
func (it *Item) WithHeight(h int) *Item {
	it.Height = h
	return it
}

// WithDescription sets secondary text and returns the item for chaining
func (it *Item) WithDescription(text string) *Item {
	it.Description = text
	return it
}
