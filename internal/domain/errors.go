package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing location, empty search query, save while another save is
// running). It is always recovered locally: the action is blocked before any
// network or database call is made.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnavailable is returned when an external collaborator (geocoding
// provider, device position, persistence) fails transiently. Prior state is
// preserved and the operation can be retried by repeating the user action.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrUnavailable = errors.New("temporarily unavailable")

// ErrPermissionDenied is returned when the user denies the device position
// request. It is surfaced distinctly from ErrUnavailable so consumers can
// suggest manual search instead of a retry.
var ErrPermissionDenied = errors.New("permission denied")
