package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/eykoh/wayfarer/internal/domain"
)

// geocodeResultsResponse wraps forward-search candidates.
type geocodeResultsResponse struct {
	Results []domain.LocationCandidate `json:"results"`
}

// handleGeocodeSearch implements GET /geocode/search?q=. An empty query is a
// validation failure like any other (422); upstream failures surface as 502
// via the sentinel mapping.
func (s *Server) handleGeocodeSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "query parameter q is required")
		return
	}

	results, err := s.geocoder.Search(r.Context(), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if results == nil {
		results = []domain.LocationCandidate{}
	}
	writeJSON(w, http.StatusOK, geocodeResultsResponse{Results: results})
}

// handleGeocodeReverse implements GET /geocode/reverse?lat=&lon=.
func (s *Server) handleGeocodeReverse(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "query parameter lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "query parameter lon must be a number")
		return
	}

	candidate, err := s.geocoder.Reverse(r.Context(), lat, lon)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}
