package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn is a persisted record of the user being at a location at a point
// in time. It is created only by a successful save of a check-in draft and is
// owned by the persistence layer; everything else holds read-only copies.
type CheckIn struct {
	ID            uuid.UUID `json:"id"`
	LocationName  string    `json:"location_name"`
	LocationLabel string    `json:"location_label"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	VisitedAt     time.Time `json:"visited_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewCheckIn is the payload for creating or updating a check-in.
// VisitedAt carries the already-composed timestamp; the date and time parts
// are merged exactly once, by the capture form, before this struct exists.
type NewCheckIn struct {
	LocationName  string    `json:"location_name"`
	LocationLabel string    `json:"location_label"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	VisitedAt     time.Time `json:"visited_at"`
}

// CheckInStats summarizes check-in counts for the list response:
// all time, the current calendar year, and the current calendar month.
type CheckInStats struct {
	Total     int64 `json:"all_total"`
	ThisYear  int64 `json:"year_total"`
	ThisMonth int64 `json:"month_total"`
}

// CheckInFilter narrows a check-in listing to a calendar year, and optionally
// to one month within that year. Month without Year is ignored.
type CheckInFilter struct {
	Year  int
	Month time.Month
}
