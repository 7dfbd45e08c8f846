package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eykoh/wayfarer/internal/domain"
	"github.com/eykoh/wayfarer/internal/repo"
	"github.com/eykoh/wayfarer/testutil"
)

// newTestRepo returns a CheckInRepo bound to a transaction that is rolled
// back when the test finishes, so tests never see each other's rows.
func newTestRepo(t *testing.T) (repo.CheckInRepo, pgx.Tx) {
	t.Helper()

	pool := testutil.NewPool(t)
	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return repo.NewCheckInRepo(tx), tx
}

func newCheckIn(name string, visitedAt time.Time) domain.NewCheckIn {
	return domain.NewCheckIn{
		LocationName:  name,
		LocationLabel: name + ", Singapore",
		Latitude:      1.3521,
		Longitude:     103.8198,
		VisitedAt:     visitedAt,
	}
}

func TestCheckInRepo_CreateAndGet(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	visited := time.Date(2024, time.May, 14, 18, 30, 0, 0, time.UTC)
	created, err := r.Create(ctx, newCheckIn("Tiong Bahru Bakery", visited))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Tiong Bahru Bakery", created.LocationName)
	assert.Equal(t, "Tiong Bahru Bakery, Singapore", created.LocationLabel)
	assert.True(t, created.VisitedAt.Equal(visited))
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.LocationName, got.LocationName)
}

func TestCheckInRepo_GetByID_NotFound(t *testing.T) {
	r, _ := newTestRepo(t)

	_, err := r.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckInRepo_ListOrdersMostRecentFirst(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		_, err := r.Create(ctx, newCheckIn(name, base.AddDate(0, 0, i)))
		require.NoError(t, err)
	}

	items, total, err := r.List(ctx, domain.CheckInFilter{}, domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.EqualValues(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "third", items[0].LocationName)
	assert.Equal(t, "second", items[1].LocationName)

	page2, _, err := r.List(ctx, domain.CheckInFilter{}, domain.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "first", page2[0].LocationName)
}

func TestCheckInRepo_ListFiltersByYearAndMonth(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	times := []time.Time{
		time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2024, time.May, 14, 12, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
	for i, at := range times {
		_, err := r.Create(ctx, newCheckIn("c", at))
		require.NoError(t, err, "row %d", i)
	}

	_, total, err := r.List(ctx, domain.CheckInFilter{Year: 2024}, domain.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = r.List(ctx, domain.CheckInFilter{Year: 2024, Month: time.May}, domain.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestCheckInRepo_ListAllAscending(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	// Insert out of chronological order.
	for _, d := range []int{2, 0, 1} {
		_, err := r.Create(ctx, newCheckIn("c", base.AddDate(0, 0, d)))
		require.NoError(t, err)
	}

	items, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.True(t, items[0].VisitedAt.Before(items[1].VisitedAt))
	assert.True(t, items[1].VisitedAt.Before(items[2].VisitedAt))
}

func TestCheckInRepo_Update(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	visited := time.Date(2024, time.May, 14, 18, 30, 0, 0, time.UTC)
	created, err := r.Create(ctx, newCheckIn("Old Name", visited))
	require.NoError(t, err)

	in := newCheckIn("New Name", visited.Add(time.Hour))
	updated, err := r.Update(ctx, created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New Name", updated.LocationName)
	assert.True(t, updated.VisitedAt.Equal(visited.Add(time.Hour)))
}

func TestCheckInRepo_Update_NotFound(t *testing.T) {
	r, _ := newTestRepo(t)

	_, err := r.Update(context.Background(), uuid.New(), newCheckIn("x", time.Now()))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckInRepo_Delete(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, newCheckIn("c", time.Now()))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, r.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestCheckInRepo_Stats(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	times := []time.Time{
		time.Date(2023, time.July, 1, 12, 0, 0, 0, time.UTC),  // previous year
		time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), // this year
		time.Date(2024, time.May, 2, 12, 0, 0, 0, time.UTC),   // this month
		time.Date(2024, time.May, 19, 12, 0, 0, 0, time.UTC),  // this month
	}
	for _, at := range times {
		_, err := r.Create(ctx, newCheckIn("c", at))
		require.NoError(t, err)
	}

	stats, err := r.Stats(ctx, now)
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.Total)
	assert.EqualValues(t, 3, stats.ThisYear)
	assert.EqualValues(t, 2, stats.ThisMonth)
}

// TestCheckInRepo_Stats_ZoneBoundary verifies that the month boundary follows
// now's location: a visit late on April 30 UTC is already May in Singapore.
func TestCheckInRepo_Stats_ZoneBoundary(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	loc, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)

	_, err = r.Create(ctx, newCheckIn("c", time.Date(2024, time.April, 30, 23, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	stats, err := r.Stats(ctx, time.Date(2024, time.May, 20, 12, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ThisMonth, "counts toward May in Singapore")

	statsUTC, err := r.Stats(ctx, time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.EqualValues(t, 0, statsUTC.ThisMonth, "still April in UTC")
}
