// Package domain contains the core data types for the Wayfarer application.
// This package has zero external behavior and is imported by every other
// internal package (capture, geocode, repo, service, handler).
package domain

// LocationCandidate is a single geocoding result: either one entry of a
// free-text search or the reverse-geocoded current position. Candidates are
// immutable once returned by the provider; committing one to a check-in
// copies its fields rather than referencing it.
type LocationCandidate struct {
	// ID is the provider's stable identifier for this result (Nominatim
	// place_id), or a "lat-lon" pair when the provider omits one.
	ID string `json:"id"`
	// Name is the short place name, falling back to the display name when
	// the provider has no distinct name for the result.
	Name string `json:"name"`
	// Formatted is the condensed human-readable address.
	Formatted string `json:"formatted"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}
