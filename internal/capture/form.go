package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eykoh/wayfarer/internal/domain"
)

// Form composes a picked date, a picked time, and the selected location into
// a submittable check-in. Date and time stay independent until Save merges
// them exactly once, in the form's location, at the moment of saving.
type Form struct {
	store CheckInStore
	sel   *Selection
	loc   *time.Location
	now   func() time.Time

	mu     sync.Mutex
	date   domain.Date
	tod    domain.TimeOfDay
	saving bool
}

// NewForm constructs a Form over the given selection, persisting through
// store and composing timestamps in loc. A nil loc means time.Local.
func NewForm(sel *Selection, store CheckInStore, loc *time.Location) *Form {
	if loc == nil {
		loc = time.Local
	}
	f := &Form{store: store, sel: sel, loc: loc, now: time.Now}
	f.date = domain.DateOf(f.now().In(loc))
	return f
}

// SetDate records the picked calendar date.
func (f *Form) SetDate(d domain.Date) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.date = d
}

// SetTime records the picked time of day.
func (f *Form) SetTime(t domain.TimeOfDay) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tod = t
}

// UseToday resets the date to today in the form's location. The picked time
// is left untouched.
func (f *Form) UseToday() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.date = domain.DateOf(f.now().In(f.loc))
}

// Date returns the currently picked date.
func (f *Form) Date() domain.Date {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.date
}

// TimeOfDay returns the currently picked time.
func (f *Form) TimeOfDay() domain.TimeOfDay {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tod
}

// Saving reports whether a save is in flight.
func (f *Form) Saving() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saving
}

// Save validates the draft, composes the timestamp, and persists the
// check-in. Without a selected location or a picked date it fails with
// domain.ErrValidation before any persistence call. A save while another is
// in flight is rejected the same way.
//
// On success the draft is reset (selection cleared, date back to today) and
// the stored record is returned for insertion into the caller's collection.
// On failure the draft is preserved so the user can retry.
func (f *Form) Save(ctx context.Context) (domain.CheckIn, error) {
	sel, ok := f.sel.Selected()
	if !ok {
		return domain.CheckIn{}, fmt.Errorf("capture.Form.Save: %w: no location selected", domain.ErrValidation)
	}

	f.mu.Lock()
	if f.saving {
		f.mu.Unlock()
		return domain.CheckIn{}, fmt.Errorf("capture.Form.Save: %w: save already in progress", domain.ErrValidation)
	}
	if f.date.IsZero() {
		f.mu.Unlock()
		return domain.CheckIn{}, fmt.Errorf("capture.Form.Save: %w: no date picked", domain.ErrValidation)
	}
	visitedAt := f.date.At(f.tod, f.loc)
	f.saving = true
	f.mu.Unlock()

	stored, err := f.store.CreateCheckIn(ctx, domain.NewCheckIn{
		LocationName:  sel.Name,
		LocationLabel: sel.Formatted,
		Latitude:      sel.Latitude,
		Longitude:     sel.Longitude,
		VisitedAt:     visitedAt,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.saving = false
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("capture.Form.Save: %w", classify(err))
	}

	f.sel.Clear()
	f.date = domain.DateOf(f.now().In(f.loc))
	f.tod = domain.TimeOfDay{}
	return stored, nil
}
