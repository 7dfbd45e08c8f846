package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/eykoh/wayfarer/internal/domain"
	"github.com/eykoh/wayfarer/internal/repo"
)

// TripService derives trips from check-in history. Trips are never stored:
// every listing rebuilds them from scratch, so edits and deletions of
// check-ins are reflected immediately without any bookkeeping.
type TripService struct {
	repo      repo.CheckInRepo
	homeLabel string
}

// NewTripService constructs a TripService. homeLabel is the substring that
// marks a check-in as at home (matched case-insensitively against the
// location label); home check-ins never belong to a trip.
func NewTripService(r repo.CheckInRepo, homeLabel string) *TripService {
	return &TripService{repo: r, homeLabel: homeLabel}
}

// List returns all derived trips, most recently ended first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	history, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	return BuildTrips(history, s.homeLabel), nil
}

// CheckInsByTrip returns the check-ins of one derived trip, oldest first.
// Returns domain.ErrNotFound if no trip with that ID exists in the current
// derivation.
func (s *TripService) CheckInsByTrip(ctx context.Context, tripID string) ([]domain.CheckIn, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.CheckInsByTrip: %w", err)
	}
	for _, trip := range trips {
		if trip.ID == tripID {
			return trip.CheckIns, nil
		}
	}
	return nil, fmt.Errorf("service.TripService.CheckInsByTrip: %w", domain.ErrNotFound)
}

// maxTripGap is the longest pause between consecutive away check-ins that
// still counts as the same trip.
const maxTripGap = 48 * time.Hour

// BuildTrips walks check-ins in visited-at ascending order and groups
// consecutive away-from-home entries into trips. A home check-in closes the
// current trip and is excluded; a gap of more than two days between visits
// also starts a new trip.
//
// IDs are positional ("trip-0", "trip-1", ...) in walk order. The result is
// sorted by end date descending and is always non-nil.
func BuildTrips(checkIns []domain.CheckIn, homeLabel string) []domain.Trip {
	type draft struct {
		start, end time.Time
		countries  map[string]struct{}
		cities     map[string]struct{}
		checkIns   []domain.CheckIn
	}

	var (
		drafts  []*draft
		current *draft
	)
	newDraft := func(at time.Time) *draft {
		return &draft{
			start:     at,
			end:       at,
			countries: map[string]struct{}{},
			cities:    map[string]struct{}{},
		}
	}

	for _, entry := range checkIns {
		label := entry.LocationLabel
		if label == "" {
			label = entry.LocationName
		}
		if isHomeLabel(label, homeLabel) {
			if current != nil {
				drafts = append(drafts, current)
				current = nil
			}
			continue
		}

		switch {
		case current == nil:
			current = newDraft(entry.VisitedAt)
		case entry.VisitedAt.Sub(current.end) > maxTripGap:
			drafts = append(drafts, current)
			current = newDraft(entry.VisitedAt)
		default:
			current.end = entry.VisitedAt
		}

		country, city := locationParts(label)
		if country != "" {
			current.countries[country] = struct{}{}
		}
		if city != "" {
			current.cities[city] = struct{}{}
		}
		current.checkIns = append(current.checkIns, entry)
	}
	if current != nil {
		drafts = append(drafts, current)
	}

	trips := make([]domain.Trip, 0, len(drafts))
	for i, d := range drafts {
		countries := sortedKeys(d.countries)
		cities := sortedKeys(d.cities)
		trips = append(trips, domain.Trip{
			ID:         fmt.Sprintf("trip-%d", i),
			Display:    tripDisplay(countries, cities),
			Countries:  countries,
			Cities:     cities,
			MonthLabel: d.end.Format("January 2006"),
			StartAt:    d.start,
			EndAt:      d.end,
			CheckIns:   d.checkIns,
		})
	}

	sort.Slice(trips, func(i, j int) bool {
		return trips[i].EndAt.After(trips[j].EndAt)
	})
	return trips
}

// isHomeLabel reports whether label refers to the home location.
// The match is a case-insensitive substring test, so "Orchard Road, Singapore"
// counts as home when the home label is "Singapore".
func isHomeLabel(label, homeLabel string) bool {
	if label == "" || homeLabel == "" {
		return false
	}
	return strings.Contains(strings.ToLower(label), strings.ToLower(homeLabel))
}

// locationParts extracts (country, city) from a comma-separated location
// label. The country is the last part; the city is the second to last.
func locationParts(label string) (country, city string) {
	var parts []string
	for _, part := range strings.Split(label, ",") {
		if p := strings.TrimSpace(part); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", ""
	}
	country = parts[len(parts)-1]
	if len(parts) >= 2 {
		city = parts[len(parts)-2]
	}
	return country, city
}

// tripDisplay picks the card title: the country list when the trip spans
// several countries, otherwise the city list, otherwise the lone country.
func tripDisplay(countries, cities []string) string {
	switch {
	case len(countries) > 1:
		return strings.Join(countries, ", ")
	case len(cities) > 0:
		return strings.Join(cities, ", ")
	case len(countries) == 1:
		return countries[0]
	default:
		return "Trip"
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
