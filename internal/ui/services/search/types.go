package search

import "treenav/internal/domain"

// State holds search state
type State struct {
	Query        string
	Matches      []domain.Path // Paths of matching nodes in tree order
	CurrentMatch int           // Current match index in Matches slice
}

// Event types
type SearchStartedEvent struct {
	Query string
}

type SearchCompletedEvent struct {
	Query      string
	MatchCount int
	FirstMatch domain.Path // nil if none
}

type SearchClearedEvent struct{}

type SearchNavigatedEvent struct {
	Old domain.Path
	New domain.Path
}
