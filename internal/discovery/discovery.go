package discovery

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchellh/go-homedir"

	"treenav/internal/config"
	"treenav/internal/domain"
	"treenav/internal/eventbus"
	"treenav/internal/fstree"
	"treenav/internal/outline"
)

// Kind says what a source path turned out to be
type Kind string

const (
	KindOutline   Kind = "outline"
	KindDirectory Kind = "directory"
)

var (
	// ErrReadOnly is returned when saving a source that has no file form
	ErrReadOnly = errors.New("source is read-only")
)

// Source is a resolved tree ready to hand to the engine
type Source struct {
	Path     string
	Kind     Kind
	Title    string
	Provider domain.Provider

	settings config.UISettings
}

// DiscoveryService works out whether a path is an outline file or a
// directory and builds the matching provider
type DiscoveryService interface {
	Open(path string) (*Source, error)
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus      eventbus.EventBus
	settings config.UISettings
	mu       sync.Mutex
}

// NewDiscoveryService creates a new discovery service. bus may be nil.
func NewDiscoveryService(bus eventbus.EventBus, cfg *config.Config) DiscoveryService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &discoveryService{
		bus:      bus,
		settings: cfg.UISettings,
	}
}

// Open resolves path. Directories become lazy file trees; anything else is
// parsed as an outline document.
func (ds *discoveryService) Open(path string) (*Source, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if path == "" {
		path = "."
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand source path: %w", err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}

	src := &Source{Path: path, settings: ds.settings}
	if info.IsDir() {
		src.Kind = KindDirectory
		err = src.loadDirectory()
	} else {
		src.Kind = KindOutline
		err = src.loadOutline()
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Opened %s source %s", src.Kind, src.Path)
	if ds.bus != nil {
		ds.bus.Publish(eventbus.SourceLoadedEvent{Source: src.Path, Kind: string(src.Kind)})
	}
	return src, nil
}

func (s *Source) loadDirectory() error {
	tree, err := fstree.Open(s.Path, fstree.Options{
		ShowHidden: s.settings.ShowHidden,
		Skip:       s.settings.Skip,
	})
	if err != nil {
		return err
	}
	s.Title = filepath.Base(s.Path)
	s.Provider = tree
	return nil
}

func (s *Source) loadOutline() error {
	f, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("failed to open outline: %w", err)
	}
	defer f.Close()

	doc, err := outline.Decode(f)
	if err != nil {
		return err
	}
	if doc.DefaultHeight == 0 {
		doc.DefaultHeight = s.settings.RowHeight
	}
	s.Title = doc.Title
	if s.Title == "" {
		s.Title = filepath.Base(s.Path)
	}
	s.Provider = doc.Tree()
	return nil
}

// Reload reads the source again. Directories are re-listed in place; an
// outline is parsed into a new provider, in which case replaced is true and
// the caller must hand Provider to the engine again.
func (s *Source) Reload() (replaced bool, err error) {
	switch s.Kind {
	case KindDirectory:
		if tree, ok := s.Provider.(*fstree.Tree); ok {
			tree.ReloadAll()
		}
		return false, nil
	default:
		if err := s.loadOutline(); err != nil {
			return false, err
		}
		return true, nil
	}
}

// SetShowHidden changes dotfile visibility of a directory source. It
// reports whether anything could change.
func (s *Source) SetShowHidden(show bool) bool {
	tree, ok := s.Provider.(*fstree.Tree)
	if !ok {
		return false
	}
	tree.SetShowHidden(show)
	return true
}

// Save writes an outline, including its open and selected state, back to
// its file
func (s *Source) Save() error {
	tree, ok := s.Provider.(*outline.Tree)
	if !ok {
		return ErrReadOnly
	}
	var buf bytes.Buffer
	if err := tree.Encode(&buf, s.Title); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save outline: %w", err)
	}
	log.Printf("Saved outline to %s", s.Path)
	return nil
}
