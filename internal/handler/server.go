// Package handler implements the HTTP handlers for the Wayfarer API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, checkin.go, trip.go, geocode.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/eykoh/wayfarer/internal/domain"
	"github.com/eykoh/wayfarer/internal/service"
)

// CheckInServicer defines the business operations the check-in handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type CheckInServicer interface {
	Create(ctx context.Context, in domain.NewCheckIn) (domain.CheckIn, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.CheckIn, error)
	List(ctx context.Context, f domain.CheckInFilter, p domain.PaginationParams) (service.CheckInPage, error)
	Update(ctx context.Context, id uuid.UUID, in domain.NewCheckIn) (domain.CheckIn, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TripServicer defines the trip-listing operations the trip handlers depend on.
type TripServicer interface {
	List(ctx context.Context) ([]domain.Trip, error)
	CheckInsByTrip(ctx context.Context, tripID string) ([]domain.CheckIn, error)
}

// Geocoder defines the lookups the geocoding proxy handlers depend on.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]domain.LocationCandidate, error)
	Reverse(ctx context.Context, lat, lon float64) (domain.LocationCandidate, error)
}

// Server holds the dependencies shared by all API endpoints.
type Server struct {
	checkIns CheckInServicer
	trips    TripServicer
	geocoder Geocoder
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(checkIns CheckInServicer, trips TripServicer, geocoder Geocoder) *Server {
	return &Server{
		checkIns: checkIns,
		trips:    trips,
		geocoder: geocoder,
		validate: validator.New(),
	}
}

// Routes mounts every API endpoint on a fresh router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", s.handleOpenAPI)

	r.Route("/check-ins", func(r chi.Router) {
		r.Post("/", s.handleCreateCheckIn)
		r.Get("/", s.handleListCheckIns)
		r.Route("/{checkInID}", func(r chi.Router) {
			r.Get("/", s.handleGetCheckIn)
			r.Put("/", s.handleUpdateCheckIn)
			r.Delete("/", s.handleDeleteCheckIn)
		})
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.handleListTrips)
		r.Get("/{tripID}/check-ins", s.handleTripCheckIns)
	})

	r.Route("/geocode", func(r chi.Router) {
		r.Get("/search", s.handleGeocodeSearch)
		r.Get("/reverse", s.handleGeocodeReverse)
	})

	return r
}

// parseUUIDParam extracts and parses a UUID path parameter. On failure it
// writes a 404 (an unparseable ID can never name an existing resource) and
// returns false.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
		return uuid.Nil, false
	}
	return id, true
}
