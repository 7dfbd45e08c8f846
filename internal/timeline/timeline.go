// Package timeline turns a trip's check-in history into the day-grouped
// sequence the timeline view renders.
package timeline

import (
	"sort"
	"time"

	"github.com/eykoh/wayfarer/internal/domain"
)

// labelFormat renders a calendar day as e.g. "Tue, 14 May 2024".
const labelFormat = "Mon, 02 Jan 2006"

// Group is one calendar day of check-ins, labeled for display.
// Groups are derived on every call and never persisted.
type Group struct {
	Label   string           `json:"label"`
	Entries []domain.CheckIn `json:"entries"`
}

// Groups buckets records by the calendar day of VisitedAt in loc and returns
// the days ordered most recent first. Within a day, the input order is
// preserved; the input itself is assumed already chronological within a day
// and is not re-sorted. A nil or empty input yields an empty (non-nil) slice.
//
// Groups is a pure function of its input: it holds no state and never
// mutates records.
func Groups(records []domain.CheckIn, loc *time.Location) []Group {
	groups := []Group{}
	index := make(map[time.Time]int, len(records))
	var days []time.Time

	for _, rec := range records {
		day := dayOf(rec.VisitedAt, loc)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			days = append(days, day)
			groups = append(groups, Group{Label: day.Format(labelFormat)})
		}
		groups[i].Entries = append(groups[i].Entries, rec)
	}

	// Order days descending without disturbing entry order inside each day.
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	ordered := make([]Group, 0, len(groups))
	for _, day := range days {
		ordered = append(ordered, groups[index[day]])
	}
	return ordered
}

// dayOf truncates a timestamp to its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
