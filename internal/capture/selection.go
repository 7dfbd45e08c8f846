package capture

import (
	"sync"

	"github.com/eykoh/wayfarer/internal/domain"
)

// Selection holds the current result list, the chosen candidate, and the
// collapsed flag that decides which of the two the consumer renders.
//
// Invariants: collapsed implies a selection exists; a selection, once made,
// survives result-list replacement until Clear. While collapsed, Visible
// returns only the selected candidate even if the results were refreshed
// underneath; the single-card view stays authoritative until Expand.
type Selection struct {
	mu        sync.Mutex
	results   []domain.LocationCandidate
	selected  *domain.LocationCandidate
	collapsed bool
}

// NewSelection returns an empty, expanded selection.
func NewSelection() *Selection {
	return &Selection{}
}

// SetResults replaces the result list wholesale. The current selection and
// the collapsed flag are retained.
func (s *Selection) SetResults(results []domain.LocationCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append([]domain.LocationCandidate(nil), results...)
}

// Select chooses a candidate and collapses the view to it.
func (s *Selection) Select(c domain.LocationCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &c
	s.collapsed = true
}

// Assign makes c the sole result and the current selection, collapsed.
// Used by the geolocation resolver, which bypasses the manual pick.
func (s *Selection) Assign(c domain.LocationCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = []domain.LocationCandidate{c}
	s.selected = &c
	s.collapsed = true
}

// Expand re-exposes the full result list. The selection is retained.
func (s *Selection) Expand() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed = false
}

// Clear drops the selection, the results, and the collapsed flag.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.selected = nil
	s.collapsed = false
}

// Selected returns the chosen candidate, if any.
func (s *Selection) Selected() (domain.LocationCandidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return domain.LocationCandidate{}, false
	}
	return *s.selected, true
}

// Collapsed reports whether only the selected candidate should be shown.
func (s *Selection) Collapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed
}

// Results returns a copy of the full result list regardless of collapse.
func (s *Selection) Results() []domain.LocationCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LocationCandidate(nil), s.results...)
}

// Visible implements the display rule: the selected candidate alone while
// collapsed, otherwise the full result list.
func (s *Selection) Visible() []domain.LocationCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collapsed && s.selected != nil {
		return []domain.LocationCandidate{*s.selected}
	}
	return append([]domain.LocationCandidate(nil), s.results...)
}

// CanExpand reports whether expanding is meaningful: the view is collapsed
// and there is more than one result to go back to.
func (s *Selection) CanExpand() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed && len(s.results) > 1
}
