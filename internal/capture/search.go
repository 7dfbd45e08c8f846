package capture

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/eykoh/wayfarer/internal/domain"
)

// SearchEngine wraps the geocoding search call and keeps the result list of
// the most recently issued query.
//
// Staleness rule: every dispatched request carries a monotonically increasing
// token; when a response arrives, it is applied only if its token is still
// the highest one issued. A slow response to an earlier query therefore never
// overwrites a later query's results, regardless of completion order.
type SearchEngine struct {
	geo Geocoder

	mu       sync.Mutex
	seq      uint64
	inFlight int
	results  []domain.LocationCandidate
}

// NewSearchEngine constructs a SearchEngine backed by the provided Geocoder.
func NewSearchEngine(geo Geocoder) *SearchEngine {
	return &SearchEngine{geo: geo}
}

// Search issues a query and returns the engine's result list after the
// response was handled. For the common (newest) request that is the fresh
// provider results; for a superseded request it is whatever the newer request
// produced, so callers can always render the returned slice directly.
//
// An empty or whitespace-only query is rejected with domain.ErrValidation
// before any provider call and without touching engine state. Provider
// failures leave the previous results untouched and are returned as
// domain.ErrUnavailable; an empty result list on success is a valid outcome
// and replaces the previous results.
func (e *SearchEngine) Search(ctx context.Context, query string) ([]domain.LocationCandidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("capture.SearchEngine.Search: %w: query is empty", domain.ErrValidation)
	}

	e.mu.Lock()
	e.seq++
	token := e.seq
	e.inFlight++
	e.mu.Unlock()

	found, err := e.geo.Search(ctx, query)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight--

	if err != nil {
		return e.resultsLocked(), fmt.Errorf("capture.SearchEngine.Search: %w", classify(err))
	}
	if token == e.seq {
		e.results = found
	}
	return e.resultsLocked(), nil
}

// Searching reports whether any search request is still outstanding.
func (e *SearchEngine) Searching() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inFlight > 0
}

// Results returns a copy of the currently applied result list.
func (e *SearchEngine) Results() []domain.LocationCandidate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resultsLocked()
}

// resultsLocked copies the result list; callers must hold e.mu.
func (e *SearchEngine) resultsLocked() []domain.LocationCandidate {
	return append([]domain.LocationCandidate(nil), e.results...)
}
