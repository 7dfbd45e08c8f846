package domain

import "time"

// Trip is a derived grouping of consecutive away-from-home check-ins.
// Trips are never stored: they are rebuilt from check-in history on every
// listing, so their IDs ("trip-0", "trip-1", ...) are positional and only
// stable for as long as the underlying check-ins do not change.
type Trip struct {
	ID         string    `json:"id"`
	Display    string    `json:"display"`
	Countries  []string  `json:"countries"`
	Cities     []string  `json:"cities"`
	MonthLabel string    `json:"month_label"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	CheckIns   []CheckIn `json:"check_ins"`
}
