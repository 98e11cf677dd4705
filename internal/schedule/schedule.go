// Package schedule derives next-due dates for recurring maintenance.
package schedule

import (
	"sort"
	"time"

	"milling-shop-backend/internal/model"
	"milling-shop-backend/internal/parse"
)

const day = 24 * time.Hour

// Activity is a suggested maintenance activity with its usual recurrence.
type Activity struct {
	Name          string `json:"name"`
	IntervalCount int    `json:"interval_count"`
	IntervalUnit  string `json:"interval_unit"`
}

// DefaultActivities are offered when recording maintenance.
var DefaultActivities = []Activity{
	{Name: "General cleaning", IntervalCount: 1, IntervalUnit: string(parse.UnitWeek)},
}

// Interval returns the recurrence of a record. First-class fields win; records
// without them fall back to the label, and a label with no recurrence means
// every 1 week.
func Interval(rec model.MaintenanceRecord) parse.Interval {
	if rec.IntervalCount > 0 && rec.IntervalUnit != "" {
		return parse.Interval{Count: rec.IntervalCount, Unit: parse.NormalizeUnit(rec.IntervalUnit)}
	}
	if iv, ok := parse.ParseInterval(rec.ActivityText); ok {
		return iv
	}
	return parse.Interval{Count: 1, Unit: parse.UnitWeek}
}

// NextDue adds the record's interval to its performed date. Months are 30 days
// and years 365. ok is false for units the scheduler does not know.
func NextDue(rec model.MaintenanceRecord) (time.Time, bool) {
	iv := Interval(rec)
	var step time.Duration
	switch iv.Unit {
	case parse.UnitWeek:
		step = 7 * day
	case parse.UnitMonth:
		step = 30 * day
	case parse.UnitYear:
		step = 365 * day
	default:
		return time.Time{}, false
	}
	return rec.PerformedAt.Add(time.Duration(iv.Count) * step), true
}

// Scheduled pairs a record with its derived next-due date.
type Scheduled struct {
	model.MaintenanceRecord
	NextDue *time.Time `json:"next_due"`
}

// Annotate attaches next-due dates to records, keeping their order.
func Annotate(records []model.MaintenanceRecord) []Scheduled {
	out := make([]Scheduled, 0, len(records))
	for _, rec := range records {
		s := Scheduled{MaintenanceRecord: rec}
		if due, ok := NextDue(rec); ok {
			s.NextDue = &due
		}
		out = append(out, s)
	}
	return out
}

type groupKey struct {
	machine  string
	activity string
}

// Upcoming keeps, per (machine, activity label), the record with the soonest
// next-due date not before now, and sorts the result by that date.
func Upcoming(records []model.MaintenanceRecord, now time.Time) []Scheduled {
	best := make(map[groupKey]Scheduled)
	for _, s := range Annotate(records) {
		if s.NextDue == nil || s.NextDue.Before(now) {
			continue
		}
		key := groupKey{machine: s.Machine, activity: s.ActivityText}
		if cur, ok := best[key]; !ok || s.NextDue.Before(*cur.NextDue) {
			best[key] = s
		}
	}

	out := make([]Scheduled, 0, len(best))
	for _, s := range best {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].NextDue.Equal(*out[j].NextDue) {
			return out[i].NextDue.Before(*out[j].NextDue)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
