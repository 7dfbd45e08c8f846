// Package repo contains all database access logic for the Wayfarer API.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/eykoh/wayfarer/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CheckInRepo defines the persistence operations for check-ins.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the services to be unit-tested with a mock.
type CheckInRepo interface {
	// Create inserts a new check-in and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, in domain.NewCheckIn) (domain.CheckIn, error)

	// GetByID retrieves a single check-in by its UUID primary key.
	// Returns domain.ErrNotFound if no check-in with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.CheckIn, error)

	// List returns one page of check-ins matching the filter, most recent
	// first, together with the total number of matching rows.
	List(ctx context.Context, f domain.CheckInFilter, p domain.PaginationParams) ([]domain.CheckIn, int64, error)

	// ListAll returns every check-in ordered by visited_at ascending.
	// Trip derivation walks the full history oldest-first.
	ListAll(ctx context.Context) ([]domain.CheckIn, error)

	// Update overwrites the mutable fields of an existing check-in and
	// returns the updated record. Returns domain.ErrNotFound if it does not
	// exist.
	Update(ctx context.Context, id uuid.UUID, in domain.NewCheckIn) (domain.CheckIn, error)

	// Delete removes a check-in by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Stats returns the all-time, current-year, and current-month check-in
	// counts relative to now.
	Stats(ctx context.Context, now time.Time) (domain.CheckInStats, error)
}

// pgCheckInRepo is the Postgres implementation of CheckInRepo.
type pgCheckInRepo struct {
	db db
}

// NewCheckInRepo constructs a CheckInRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCheckInRepo(db db) CheckInRepo {
	return &pgCheckInRepo{db: db}
}

const checkInColumns = `id, location_name, location_label, latitude, longitude, visited_at, created_at, updated_at`

// Create inserts a new check-in row and returns the full persisted record.
func (r *pgCheckInRepo) Create(ctx context.Context, in domain.NewCheckIn) (domain.CheckIn, error) {
	const q = `
		INSERT INTO check_ins (location_name, location_label, latitude, longitude, visited_at)
		VALUES (@location_name, @location_label, @latitude, @longitude, @visited_at)
		RETURNING ` + checkInColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"location_name":  in.LocationName,
		"location_label": in.LocationLabel,
		"latitude":       in.Latitude,
		"longitude":      in.Longitude,
		"visited_at":     in.VisitedAt,
	})
	result, err := scanCheckIn(row)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("repo.CheckInRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a check-in by primary key.
func (r *pgCheckInRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CheckIn, error) {
	const q = `SELECT ` + checkInColumns + ` FROM check_ins WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanCheckIn(row)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("repo.CheckInRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of check-ins, most recent visit first, plus the total
// row count for the same filter.
func (r *pgCheckInRepo) List(ctx context.Context, f domain.CheckInFilter, p domain.PaginationParams) ([]domain.CheckIn, int64, error) {
	where, args := filterClause(f)

	var total int64
	countQ := `SELECT count(*) FROM check_ins` + where
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.CheckInRepo.List: count: %w", err)
	}

	args["limit"] = p.Limit
	args["offset"] = p.Offset()
	listQ := `SELECT ` + checkInColumns + ` FROM check_ins` + where + `
		ORDER BY visited_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, listQ, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CheckInRepo.List: %w", err)
	}
	defer rows.Close()

	items, err := collectCheckIns(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CheckInRepo.List: %w", err)
	}
	return items, total, nil
}

// ListAll returns the full check-in history, oldest visit first.
func (r *pgCheckInRepo) ListAll(ctx context.Context) ([]domain.CheckIn, error) {
	const q = `SELECT ` + checkInColumns + ` FROM check_ins ORDER BY visited_at ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CheckInRepo.ListAll: %w", err)
	}
	defer rows.Close()

	items, err := collectCheckIns(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.CheckInRepo.ListAll: %w", err)
	}
	return items, nil
}

// Update overwrites the mutable fields of a check-in and returns the updated record.
func (r *pgCheckInRepo) Update(ctx context.Context, id uuid.UUID, in domain.NewCheckIn) (domain.CheckIn, error) {
	const q = `
		UPDATE check_ins
		SET location_name  = @location_name,
		    location_label = @location_label,
		    latitude       = @latitude,
		    longitude      = @longitude,
		    visited_at     = @visited_at,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + checkInColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":             id,
		"location_name":  in.LocationName,
		"location_label": in.LocationLabel,
		"latitude":       in.Latitude,
		"longitude":      in.Longitude,
		"visited_at":     in.VisitedAt,
	})
	result, err := scanCheckIn(row)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("repo.CheckInRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a check-in by primary key.
func (r *pgCheckInRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM check_ins WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CheckInRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CheckInRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// Stats counts check-ins all time and within the current year and month.
// Boundaries are computed in now's location so "this month" matches what the
// user's calendar says.
func (r *pgCheckInRepo) Stats(ctx context.Context, now time.Time) (domain.CheckInStats, error) {
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	const q = `
		SELECT
			count(*),
			count(*) FILTER (WHERE visited_at >= @year_start),
			count(*) FILTER (WHERE visited_at >= @month_start)
		FROM check_ins`

	var stats domain.CheckInStats
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"year_start":  yearStart,
		"month_start": monthStart,
	})
	if err := row.Scan(&stats.Total, &stats.ThisYear, &stats.ThisMonth); err != nil {
		return domain.CheckInStats{}, fmt.Errorf("repo.CheckInRepo.Stats: %w", err)
	}
	return stats, nil
}

// filterClause builds the WHERE clause for a year/month filter.
// A month without a year is ignored, matching the HTTP contract.
func filterClause(f domain.CheckInFilter) (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	if f.Year == 0 {
		return "", args
	}

	start := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	if f.Month != 0 {
		start = time.Date(f.Year, f.Month, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	}
	args["start"] = start
	args["end"] = end
	return ` WHERE visited_at >= @start AND visited_at < @end`, args
}

// collectCheckIns drains rows into a slice.
func collectCheckIns(rows pgx.Rows) ([]domain.CheckIn, error) {
	var items []domain.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanCheckIn to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanCheckIn maps a single database row into a domain.CheckIn.
func scanCheckIn(s scanner) (domain.CheckIn, error) {
	var (
		c  domain.CheckIn
		id pgtype.UUID
	)

	err := s.Scan(&id, &c.LocationName, &c.LocationLabel, &c.Latitude, &c.Longitude,
		&c.VisitedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CheckIn{}, domain.ErrNotFound
		}
		return domain.CheckIn{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}
