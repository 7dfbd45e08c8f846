// Package capture implements the interactive check-in flow: free-text
// location search, one-shot device geolocation, the collapsed-selection model
// and the date/time form that composes a submittable check-in.
//
// Every controller owns its state behind its own mutex and may be called from
// any goroutine; blocking provider calls are made with the mutex released.
// Per operation channel at most one winning outcome is applied: search uses a
// monotonic sequence token, locate and save refuse re-entrant dispatch.
// Failures are classified into the domain sentinels and never escape a
// controller unwrapped.
package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/eykoh/wayfarer/internal/domain"
)

// Geocoder resolves free-text queries and coordinate pairs to location
// candidates. *geocode.Client and its cached wrapper satisfy it.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]domain.LocationCandidate, error)
	Reverse(ctx context.Context, lat, lon float64) (domain.LocationCandidate, error)
}

// PositionSource is the platform's one-shot device position request.
// CurrentPosition may block until the host resolves or rejects a permission
// prompt; it should honor ctx cancellation. A denial is reported as
// domain.ErrPermissionDenied.
type PositionSource interface {
	CurrentPosition(ctx context.Context) (lat, lon float64, err error)
}

// CheckInStore persists composed check-ins. The API client satisfies it.
type CheckInStore interface {
	CreateCheckIn(ctx context.Context, in domain.NewCheckIn) (domain.CheckIn, error)
}

// classify maps an arbitrary collaborator failure onto the error taxonomy.
// Already-classified errors pass through; everything else is transient.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, domain.ErrPermissionDenied),
		errors.Is(err, domain.ErrNotFound):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
}
