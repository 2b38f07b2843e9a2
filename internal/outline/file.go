package outline

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Document is the on-disk form of an outline:
//
//	title = "Projects"
//	[[item]]
//	label = "Work"
//	open = true
//	  [[item.item]]
//	  label = "Report"
type Document struct {
	Title         string  `toml:"title,omitempty"`
	DefaultHeight int     `toml:"default_height,omitempty"`
	Items         []*Item `toml:"item"`
}

// Decode reads an outline document
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse outline: %w", err)
	}
	return &doc, nil
}

// Tree builds a provider from the document
func (d *Document) Tree() *Tree {
	return NewWithHeight(d.DefaultHeight, d.Items...)
}

// LoadFile reads an outline document from path and builds its tree
func LoadFile(path string) (*Tree, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open outline: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, "", err
	}
	return doc.Tree(), doc.Title, nil
}

// Encode writes the tree as an outline document
func (t *Tree) Encode(w io.Writer, title string) error {
	t.mu.RLock()
	doc := Document{
		Title:         title,
		DefaultHeight: t.defaultHeight,
		Items:         t.roots,
	}
	enc := toml.NewEncoder(w)
	err := enc.Encode(doc)
	t.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to write outline: %w", err)
	}
	return nil
}
