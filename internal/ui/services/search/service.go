package search

import (
	"log"

	"treenav/internal/domain"
	"treenav/internal/engine"
	"treenav/internal/ui/services/events"
)

// Service finds nodes by label, description or state. The search walks
// every node, including hidden ones and those under closed containers.
type Service struct {
	state      *State
	filter     Filter
	engine     *engine.Engine
	bus        events.EventBus
	navigateFn func(domain.Path) error // Function to reveal and move to a match
}

// NewService creates a new search service
func NewService(e *engine.Engine, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state:  &State{},
		engine: e,
		bus:    bus,
	}
}

// SetNavigateFunction sets the function to navigate to a match
func (s *Service) SetNavigateFunction(fn func(domain.Path) error) {
	s.navigateFn = fn
}

// StartSearch begins a new search
func (s *Service) StartSearch(query string) error {
	if query == s.state.Query {
		return nil // Same search
	}

	s.state.Query = query
	s.filter = ParseFilter(query)
	s.bus.Publish(SearchStartedEvent{Query: query})

	if s.filter.Empty() {
		s.clearSearch()
		return nil
	}

	return s.performSearch()
}

// Refresh re-runs the current query after the tree changed
func (s *Service) Refresh() error {
	if s.state.Query == "" {
		return nil
	}
	return s.performSearch()
}

// ClearSearch clears the current search
func (s *Service) ClearSearch() {
	s.clearSearch()
}

// NavigateNext moves to the next search result
func (s *Service) NavigateNext() error {
	return s.navigateBy(1)
}

// NavigatePrevious moves to the previous search result
func (s *Service) NavigatePrevious() error {
	return s.navigateBy(-1)
}

// GotoCurrentMatch moves to the current match without advancing
func (s *Service) GotoCurrentMatch() error {
	return s.navigateToCurrentMatch()
}

// GetQuery returns the current search query
func (s *Service) GetQuery() string {
	return s.state.Query
}

// GetMatchCount returns the number of matches
func (s *Service) GetMatchCount() int {
	return len(s.state.Matches)
}

// GetCurrentMatch returns the path of the current match, nil if none
func (s *Service) GetCurrentMatch() domain.Path {
	if len(s.state.Matches) == 0 {
		return nil
	}
	return s.state.Matches[s.state.CurrentMatch]
}

// GetCurrentIndex returns the position of the current match, -1 if none
func (s *Service) GetCurrentIndex() int {
	if len(s.state.Matches) == 0 {
		return -1
	}
	return s.state.CurrentMatch
}

// IsMatch checks if a path is a search match
func (s *Service) IsMatch(p domain.Path) bool {
	for _, match := range s.state.Matches {
		if match.Equal(p) {
			return true
		}
	}
	return false
}

// ShouldHighlight reports whether text contains the plain part of the
// query
func (s *Service) ShouldHighlight(text string) bool {
	return s.filter.MatchesText(text)
}

// HighlightText returns the text to mark inside matching labels, empty for
// qualifier queries
func (s *Service) HighlightText() string {
	return s.filter.Text
}

// Internal methods
func (s *Service) performSearch() error {
	var current domain.Path
	if len(s.state.Matches) > 0 {
		current = s.state.Matches[s.state.CurrentMatch]
	}

	s.state.Matches = s.state.Matches[:0]
	walker := s.engine.Cursor(engine.Scratch)
	n, err := s.engine.GotoFirstRaw(walker)
	for n != nil && err == nil {
		if s.filter.Matches(s.engine, walker, n) {
			s.state.Matches = append(s.state.Matches, walker.Path())
		}
		n, err = s.engine.NextRaw(walker)
	}
	if err != nil {
		log.Printf("Search for '%s' stopped: %v", s.state.Query, err)
	}

	// Keep the current match when it still matches
	s.state.CurrentMatch = 0
	for i, m := range s.state.Matches {
		if current != nil && m.Equal(current) {
			s.state.CurrentMatch = i
			break
		}
	}

	log.Printf("Search completed for '%s': found %d matches", s.state.Query, len(s.state.Matches))

	var first domain.Path
	if len(s.state.Matches) > 0 {
		first = s.state.Matches[0]
	}
	s.bus.Publish(SearchCompletedEvent{
		Query:      s.state.Query,
		MatchCount: len(s.state.Matches),
		FirstMatch: first,
	})
	return err
}

func (s *Service) clearSearch() {
	s.state.Query = ""
	s.filter = Filter{}
	s.state.Matches = nil
	s.state.CurrentMatch = 0

	s.bus.Publish(SearchClearedEvent{})
}

func (s *Service) navigateBy(delta int) error {
	if len(s.state.Matches) == 0 {
		return nil
	}

	oldMatch := s.state.CurrentMatch
	s.state.CurrentMatch = (s.state.CurrentMatch + delta + len(s.state.Matches)) % len(s.state.Matches)

	if err := s.navigateToCurrentMatch(); err != nil {
		return err
	}

	s.bus.Publish(SearchNavigatedEvent{
		Old: s.state.Matches[oldMatch],
		New: s.state.Matches[s.state.CurrentMatch],
	})
	return nil
}

func (s *Service) navigateToCurrentMatch() error {
	if s.navigateFn == nil || len(s.state.Matches) == 0 {
		return nil
	}
	return s.navigateFn(s.state.Matches[s.state.CurrentMatch])
}
