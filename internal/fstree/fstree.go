package fstree

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"treenav/internal/domain"
)

// Entry is one file or directory. Directory listings are read on first
// access and cached until Reload.
type Entry struct {
	Name   string
	Path   string
	Dir    bool
	Size   int64
	Hidden bool

	open     bool
	selected bool
	loaded   bool
	children []*Entry
	err      error
}

// Options tune what a Tree shows
type Options struct {
	// ShowHidden makes dotfiles visible
	ShowHidden bool
	// Skip lists directory names that are never listed, e.g. node_modules
	Skip []string
}

// Tree is a lazy node provider over a file system. Nodes handed to the
// engine are *Entry values.
type Tree struct {
	mu         sync.Mutex
	fsys       fs.FS
	root       *Entry
	showHidden bool
	skip       map[string]bool
	selected   int
}

// New creates a tree over fsys rooted at "."
func New(fsys fs.FS, opts Options) *Tree {
	t := &Tree{
		fsys:       fsys,
		root:       &Entry{Name: ".", Path: ".", Dir: true, open: true},
		showHidden: opts.ShowHidden,
		skip:       make(map[string]bool),
	}
	for _, name := range opts.Skip {
		t.skip[name] = true
	}
	return t
}

// Open creates a tree over a directory on disk
func Open(dir string, opts Options) (*Tree, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open directory: %s is not a directory", dir)
	}
	return New(os.DirFS(dir), opts), nil
}

// SetShowHidden changes dotfile visibility
func (t *Tree) SetShowHidden(show bool) {
	t.mu.Lock()
	t.showHidden = show
	t.mu.Unlock()
}

// ShowHidden reports whether dotfiles are visible
func (t *Tree) ShowHidden() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.showHidden
}

// Reload drops the cached listing of the directory at p so the next access
// reads it again. Open and selected state of surviving entries is kept.
func (t *Tree) Reload(p domain.Path) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e := t.lookup(p); e != nil && e.Dir {
		e.loaded = false
	}
}

// ReloadAll drops every cached listing
func (t *Tree) ReloadAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	var walk func(e *Entry)
	walk = func(e *Entry) {
		e.loaded = false
		for _, c := range e.children {
			if c.Dir {
				walk(c)
			}
		}
	}
	walk(t.root)
}

// Err returns the error from listing the directory at p, if any
func (t *Tree) Err(p domain.Path) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e := t.lookup(p); e != nil {
		return e.err
	}
	return nil
}

// Entry returns the entry addressed by p
func (t *Tree) Entry(p domain.Path) (*Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.lookup(p)
	return e, e != nil
}

// ChildAt implements domain.Provider
func (t *Tree) ChildAt(p domain.Path, level int) domain.Node {
	if level < 0 || level >= len(p) {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if e := t.lookup(p[:level+1]); e != nil {
		return e
	}
	return nil
}

// ChildCount implements domain.Provider
func (t *Tree) ChildCount(p domain.Path, level int) int {
	if level < 0 || level > len(p) {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.lookup(p[:level])
	if e == nil || !e.Dir {
		return -1
	}
	return len(t.list(e))
}

// IsVisible implements domain.Provider
func (t *Tree) IsVisible(n domain.Node) bool {
	e, ok := n.(*Entry)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.showHidden || !e.Hidden
}

// IsOpen implements domain.Provider
func (t *Tree) IsOpen(n domain.Node) bool {
	e, ok := n.(*Entry)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return e.Dir && e.open
}

// Height implements domain.Provider
func (t *Tree) Height(domain.Node) int {
	return 1
}

// SetOpen implements domain.Expander
func (t *Tree) SetOpen(n domain.Node, open bool) {
	if e, ok := n.(*Entry); ok {
		t.mu.Lock()
		e.open = open
		t.mu.Unlock()
	}
}

// IsSelected implements domain.Selector
func (t *Tree) IsSelected(n domain.Node) bool {
	e, ok := n.(*Entry)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return e.selected
}

// SetSelected implements domain.Selector
func (t *Tree) SetSelected(n domain.Node, selected bool) {
	e, ok := n.(*Entry)
	if !ok {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if e.selected == selected {
		return
	}
	e.selected = selected
	if selected {
		t.selected++
	} else {
		t.selected--
	}
}

// SelectedCount implements domain.SelectionCounter
func (t *Tree) SelectedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

// Label implements domain.Labeler
func (t *Tree) Label(n domain.Node) string {
	e, ok := n.(*Entry)
	if !ok {
		return ""
	}
	if e.Dir {
		return e.Name + "/"
	}
	return e.Name
}

// Description implements domain.Describer
func (t *Tree) Description(n domain.Node) string {
	e, ok := n.(*Entry)
	if !ok {
		return ""
	}
	if e.Dir {
		return "dir"
	}
	return fmt.Sprintf("%d bytes", e.Size)
}

// lookup resolves p from the root, listing directories on the way;
// caller holds the lock
func (t *Tree) lookup(p domain.Path) *Entry {
	e := t.root
	for _, idx := range p {
		if !e.Dir {
			return nil
		}
		children := t.list(e)
		if idx < 0 || idx >= len(children) {
			return nil
		}
		e = children[idx]
	}
	return e
}

// list returns a directory's children, reading them on first use.
// Directories sort before files, each group by name.
func (t *Tree) list(dir *Entry) []*Entry {
	if dir.loaded {
		return dir.children
	}
	dir.loaded = true

	des, err := fs.ReadDir(t.fsys, dir.Path)
	dir.err = err
	if err != nil {
		log.Printf("Error listing %s: %v", dir.Path, err)
	}

	previous := make(map[string]*Entry, len(dir.children))
	for _, c := range dir.children {
		previous[c.Name] = c
	}

	children := make([]*Entry, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if de.IsDir() && t.skip[name] {
			continue
		}
		e, ok := previous[name]
		if ok && e.Dir == de.IsDir() {
			delete(previous, name)
		} else {
			e = &Entry{
				Name:   name,
				Path:   path.Join(dir.Path, name),
				Dir:    de.IsDir(),
				Hidden: strings.HasPrefix(name, "."),
			}
		}
		if info, err := de.Info(); err == nil && !e.Dir {
			e.Size = info.Size()
		}
		children = append(children, e)
	}
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].Dir != children[j].Dir {
			return children[i].Dir
		}
		return children[i].Name < children[j].Name
	})
	// entries that disappeared take their selection with them
	for _, gone := range previous {
		t.selected -= countSelected(gone)
	}
	dir.children = children
	return children
}

// countSelected counts selected entries in the cached subtree of e
func countSelected(e *Entry) int {
	n := 0
	if e.selected {
		n++
	}
	for _, c := range e.children {
		n += countSelected(c)
	}
	return n
}
