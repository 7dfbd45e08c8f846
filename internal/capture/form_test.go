package capture_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eykoh/wayfarer/internal/capture"
	"github.com/eykoh/wayfarer/internal/domain"
)

// recordingStore is a test double for capture.CheckInStore.
type recordingStore struct {
	mu      sync.Mutex
	calls   int
	last    domain.NewCheckIn
	stored  domain.CheckIn
	err     error
	gate    chan struct{} // when non-nil, CreateCheckIn blocks until closed
}

func (s *recordingStore) CreateCheckIn(_ context.Context, in domain.NewCheckIn) (domain.CheckIn, error) {
	s.mu.Lock()
	s.calls++
	s.last = in
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return s.stored, s.err
}

func selectionWith(c domain.LocationCandidate) *capture.Selection {
	sel := capture.NewSelection()
	sel.SetResults([]domain.LocationCandidate{c})
	sel.Select(c)
	return sel
}

func TestForm_SaveWithoutSelectionIsValidationError(t *testing.T) {
	store := &recordingStore{}
	f := capture.NewForm(capture.NewSelection(), store, time.UTC)

	_, err := f.Save(context.Background())

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, store.calls, "no persistence call without a location")
}

func TestForm_SaveComposesDateAndTimeInLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)

	cand := domain.LocationCandidate{
		ID:        "42",
		Name:      "Tiong Bahru Bakery",
		Formatted: "56 Eng Hoon Street, Singapore",
		Latitude:  1.2841,
		Longitude: 103.8320,
	}
	store := &recordingStore{stored: domain.CheckIn{LocationName: cand.Name}}
	f := capture.NewForm(selectionWith(cand), store, loc)

	f.SetDate(domain.Date{Year: 2024, Month: time.May, Day: 14})
	f.SetTime(domain.TimeOfDay{Hour: 18, Minute: 30})

	_, err = f.Save(context.Background())
	require.NoError(t, err)

	want := time.Date(2024, time.May, 14, 18, 30, 0, 0, loc)
	assert.True(t, store.last.VisitedAt.Equal(want), "got %v, want %v", store.last.VisitedAt, want)
	assert.Equal(t, cand.Name, store.last.LocationName)
	assert.Equal(t, cand.Formatted, store.last.LocationLabel)
	assert.Equal(t, cand.Latitude, store.last.Latitude)
	assert.Equal(t, cand.Longitude, store.last.Longitude)
}

func TestForm_SuccessResetsDraft(t *testing.T) {
	cand := domain.LocationCandidate{ID: "42", Name: "Somewhere"}
	sel := selectionWith(cand)
	store := &recordingStore{}
	f := capture.NewForm(sel, store, time.UTC)
	f.SetDate(domain.Date{Year: 2024, Month: time.May, Day: 14})

	_, err := f.Save(context.Background())
	require.NoError(t, err)

	_, ok := sel.Selected()
	assert.False(t, ok, "selection cleared after successful save")
	assert.Equal(t, domain.Today(time.UTC), f.Date(), "date reset to today")
	assert.False(t, f.Saving())
}

func TestForm_FailurePreservesDraft(t *testing.T) {
	cand := domain.LocationCandidate{ID: "42", Name: "Somewhere"}
	sel := selectionWith(cand)
	store := &recordingStore{err: domain.ErrUnavailable}
	f := capture.NewForm(sel, store, time.UTC)

	date := domain.Date{Year: 2024, Month: time.May, Day: 14}
	tod := domain.TimeOfDay{Hour: 9, Minute: 15}
	f.SetDate(date)
	f.SetTime(tod)

	_, err := f.Save(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnavailable)
	selected, ok := sel.Selected()
	require.True(t, ok, "selection kept for retry")
	assert.Equal(t, "42", selected.ID)
	assert.Equal(t, date, f.Date())
	assert.Equal(t, tod, f.TimeOfDay())
	assert.False(t, f.Saving())
}

func TestForm_ConcurrentSaveRejected(t *testing.T) {
	cand := domain.LocationCandidate{ID: "42"}
	store := &recordingStore{gate: make(chan struct{})}
	f := capture.NewForm(selectionWith(cand), store, time.UTC)
	f.SetDate(domain.Date{Year: 2024, Month: time.May, Day: 14})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = f.Save(context.Background())
	}()

	require.Eventually(t, f.Saving, time.Second, time.Millisecond)

	_, err := f.Save(context.Background())
	assert.ErrorIs(t, err, domain.ErrValidation, "re-entrant save refused")

	close(store.gate)
	wg.Wait()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, 1, store.calls)
}

func TestForm_UseTodayKeepsPickedTime(t *testing.T) {
	f := capture.NewForm(capture.NewSelection(), &recordingStore{}, time.UTC)
	f.SetDate(domain.Date{Year: 2020, Month: time.January, Day: 1})
	f.SetTime(domain.TimeOfDay{Hour: 18, Minute: 30})

	f.UseToday()

	assert.Equal(t, domain.Today(time.UTC), f.Date())
	assert.Equal(t, domain.TimeOfDay{Hour: 18, Minute: 30}, f.TimeOfDay())
}
