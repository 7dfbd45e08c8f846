package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eykoh/wayfarer/internal/domain"
)

// tripsResponse wraps the trip listing so the shape can grow without
// breaking clients.
type tripsResponse struct {
	Trips []domain.Trip `json:"trips"`
}

// tripCheckInsResponse carries the ordered check-ins of one trip.
type tripCheckInsResponse struct {
	CheckIns []domain.CheckIn `json:"check_ins"`
}

// handleListTrips implements GET /trips. Trips are derived from check-in
// history on every call, most recently ended first.
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripsResponse{Trips: trips})
}

// handleTripCheckIns implements GET /trips/{tripID}/check-ins, returning the
// trip's check-ins oldest first for day-by-day aggregation.
func (s *Server) handleTripCheckIns(w http.ResponseWriter, r *http.Request) {
	checkIns, err := s.trips.CheckInsByTrip(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if checkIns == nil {
		checkIns = []domain.CheckIn{}
	}
	writeJSON(w, http.StatusOK, tripCheckInsResponse{CheckIns: checkIns})
}
