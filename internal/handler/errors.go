package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/eykoh/wayfarer/internal/domain"
)

// errorDetail is the machine-readable error payload.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the envelope every non-2xx response carries.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are
// ignored: the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeDomainError maps a sentinel-wrapped service error onto an HTTP status:
//
//	ErrValidation       → 422 validation_error
//	ErrNotFound         → 404 not_found
//	ErrUnavailable      → 502 upstream_unavailable
//	ErrPermissionDenied → 403 permission_denied
//
// Anything unclassified is a 500 with a generic message so internals never
// leak to clients.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "upstream_unavailable", unwrapMessage(err))
	case errors.Is(err, domain.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "permission_denied", unwrapMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error by dropping the "pkg.Type.Method: " call-path prefixes and the
// sentinel text itself.
// e.g. "service.CheckInService.Create: validation error: location_name is required"
// → "location_name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrNotFound.Error(),
		domain.ErrUnavailable.Error(),
		domain.ErrPermissionDenied.Error(),
	} {
		if i := strings.Index(msg, sentinel+": "); i >= 0 {
			return msg[i+len(sentinel)+2:]
		}
	}
	return msg
}
