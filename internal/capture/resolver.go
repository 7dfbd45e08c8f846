package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/eykoh/wayfarer/internal/domain"
)

// Resolver performs the quick check-in locate: request the device position
// once, reverse-geocode it, and bind the result directly as the selection.
//
// At most one locate runs at a time; a second call while one is in flight is
// ignored, not queued. The position request may block for as long as the host
// keeps a permission prompt open; cancel ctx to give up.
type Resolver struct {
	positions PositionSource
	geo       Geocoder
	selection *Selection

	mu       sync.Mutex
	locating bool
}

// NewResolver constructs a Resolver that assigns successful locates into sel.
func NewResolver(positions PositionSource, geo Geocoder, sel *Selection) *Resolver {
	return &Resolver{positions: positions, geo: geo, selection: sel}
}

// Locate resolves the current device position to a location candidate and
// assigns it as the sole result and current selection, collapsed, with no manual
// pick needed. The second return is false when the call was ignored because
// another locate was already in flight.
//
// On permission denial it returns domain.ErrPermissionDenied; on any other
// failure domain.ErrUnavailable. Neither changes the selection.
func (r *Resolver) Locate(ctx context.Context) (domain.LocationCandidate, bool, error) {
	r.mu.Lock()
	if r.locating {
		r.mu.Unlock()
		return domain.LocationCandidate{}, false, nil
	}
	r.locating = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.locating = false
		r.mu.Unlock()
	}()

	lat, lon, err := r.positions.CurrentPosition(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return domain.LocationCandidate{}, true, fmt.Errorf("capture.Resolver.Locate: %w", err)
		}
		return domain.LocationCandidate{}, true, fmt.Errorf("capture.Resolver.Locate: %w", classify(err))
	}

	cand, err := r.geo.Reverse(ctx, lat, lon)
	if err != nil {
		return domain.LocationCandidate{}, true, fmt.Errorf("capture.Resolver.Locate: %w", classify(err))
	}

	r.selection.Assign(cand)
	return cand, true, nil
}

// Locating reports whether a locate request is outstanding.
func (r *Resolver) Locating() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locating
}
