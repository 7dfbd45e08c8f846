package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/eykoh/wayfarer/internal/domain"
)

// checkInRequest is the JSON body for creating or updating a check-in.
type checkInRequest struct {
	LocationName  string  `json:"location_name" validate:"required"`
	LocationLabel string  `json:"location_label"`
	Latitude      float64 `json:"latitude" validate:"latitude"`
	Longitude     float64 `json:"longitude" validate:"longitude"`
	VisitedAt     string  `json:"visited_at" validate:"required"`
}

// decodeCheckIn parses, validates, and converts a check-in request body.
// On failure it writes the error response itself and returns false.
func (s *Server) decodeCheckIn(w http.ResponseWriter, r *http.Request) (domain.NewCheckIn, bool) {
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return domain.NewCheckIn{}, false
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return domain.NewCheckIn{}, false
	}
	visitedAt, err := parseTimestamp(req.VisitedAt)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "visited_at must be an RFC 3339 timestamp")
		return domain.NewCheckIn{}, false
	}
	return domain.NewCheckIn{
		LocationName:  req.LocationName,
		LocationLabel: req.LocationLabel,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		VisitedAt:     visitedAt,
	}, true
}

// parseTimestamp accepts RFC 3339 and the bare "2006-01-02T15:04:05" form
// some clients send without a zone offset; the latter is taken as UTC.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
}

// handleCreateCheckIn implements POST /check-ins.
func (s *Server) handleCreateCheckIn(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeCheckIn(w, r)
	if !ok {
		return
	}
	created, err := s.checkIns.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleListCheckIns implements GET /check-ins with optional page, limit,
// year, and month query parameters.
func (s *Server) handleListCheckIns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter domain.CheckInFilter
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", "year must be an integer")
			return
		}
		filter.Year = year
	}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", "month must be between 1 and 12")
			return
		}
		filter.Month = time.Month(month)
	}

	page, err := s.checkIns.List(r.Context(), filter, pagination(q.Get("page"), q.Get("limit")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// pagination builds PaginationParams from raw query values, ignoring
// anything unparseable in favor of the defaults.
func pagination(pageStr, limitStr string) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(pageStr); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(limitStr); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}

// handleGetCheckIn implements GET /check-ins/{checkInID}.
func (s *Server) handleGetCheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "checkInID")
	if !ok {
		return
	}
	checkIn, err := s.checkIns.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkIn)
}

// handleUpdateCheckIn implements PUT /check-ins/{checkInID}.
func (s *Server) handleUpdateCheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "checkInID")
	if !ok {
		return
	}
	in, ok := s.decodeCheckIn(w, r)
	if !ok {
		return
	}
	updated, err := s.checkIns.Update(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteCheckIn implements DELETE /check-ins/{checkInID}.
func (s *Server) handleDeleteCheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "checkInID")
	if !ok {
		return
	}
	if err := s.checkIns.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
