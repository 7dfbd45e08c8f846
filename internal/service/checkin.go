// Package service implements the business logic between HTTP handlers and the
// persistence layer.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eykoh/wayfarer/internal/domain"
	"github.com/eykoh/wayfarer/internal/repo"
)

// CheckInPage is the listing response: one page of check-ins plus the counts
// the dashboard renders next to it.
type CheckInPage struct {
	Items []domain.CheckIn    `json:"items"`
	Total int64               `json:"total"`
	Stats domain.CheckInStats `json:"stats"`
}

// CheckInService implements business logic for check-in operations.
type CheckInService struct {
	repo repo.CheckInRepo
	now  func() time.Time
}

// NewCheckInService constructs a CheckInService backed by the provided repo.
// Stats boundaries ("this year", "this month") are computed in loc, so the
// counts follow the user's calendar rather than the server host's zone.
// A nil loc means time.Local.
func NewCheckInService(r repo.CheckInRepo, loc *time.Location) *CheckInService {
	if loc == nil {
		loc = time.Local
	}
	return &CheckInService{
		repo: r,
		now:  func() time.Time { return time.Now().In(loc) },
	}
}

// Create validates and persists a new check-in.
// Returns domain.ErrValidation if input violates business rules.
func (s *CheckInService) Create(ctx context.Context, in domain.NewCheckIn) (domain.CheckIn, error) {
	if err := validateCheckIn(in); err != nil {
		return domain.CheckIn{}, err
	}
	result, err := s.repo.Create(ctx, in)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("service.CheckInService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single check-in by ID.
// Returns domain.ErrNotFound if no check-in with that ID exists.
func (s *CheckInService) GetByID(ctx context.Context, id uuid.UUID) (domain.CheckIn, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("service.CheckInService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of check-ins, most recent visit first, together with
// the overall stats block. Items is always non-nil so callers can safely
// range over it.
func (s *CheckInService) List(ctx context.Context, f domain.CheckInFilter, p domain.PaginationParams) (CheckInPage, error) {
	p.Normalize()

	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return CheckInPage{}, fmt.Errorf("service.CheckInService.List: %w", err)
	}
	if items == nil {
		items = []domain.CheckIn{}
	}

	stats, err := s.repo.Stats(ctx, s.now())
	if err != nil {
		return CheckInPage{}, fmt.Errorf("service.CheckInService.List: %w", err)
	}

	return CheckInPage{Items: items, Total: total, Stats: stats}, nil
}

// Update validates and persists changes to an existing check-in.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// check-in does not exist.
func (s *CheckInService) Update(ctx context.Context, id uuid.UUID, in domain.NewCheckIn) (domain.CheckIn, error) {
	if err := validateCheckIn(in); err != nil {
		return domain.CheckIn{}, err
	}
	result, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("service.CheckInService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a check-in by ID.
// Returns domain.ErrNotFound if the check-in does not exist.
func (s *CheckInService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CheckInService.Delete: %w", err)
	}
	return nil
}

// validateCheckIn enforces business rules common to both Create and Update.
//   - LocationName must be non-empty (whitespace-only names are rejected).
//   - Coordinates must be within valid WGS84 range.
//   - VisitedAt must be set.
func validateCheckIn(in domain.NewCheckIn) error {
	if strings.TrimSpace(in.LocationName) == "" {
		return fmt.Errorf("%w: location_name is required", domain.ErrValidation)
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}
	if in.VisitedAt.IsZero() {
		return fmt.Errorf("%w: visited_at is required", domain.ErrValidation)
	}
	return nil
}
