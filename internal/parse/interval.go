package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Unit is a maintenance recurrence unit.
type Unit string

const (
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
	UnitYear  Unit = "year"
)

var (
	// "Cleaning (every 2 week)" and the legacy "Limpieza (cada 2 semana)".
	intervalRe = regexp.MustCompile(`(?i)\b(?:every|cada)\s+(\d+)\s+([\p{L}]+)`)

	unitAliases = map[string]Unit{
		"week":    UnitWeek,
		"weeks":   UnitWeek,
		"semana":  UnitWeek,
		"semanas": UnitWeek,
		"month":   UnitMonth,
		"months":  UnitMonth,
		"mes":     UnitMonth,
		"meses":   UnitMonth,
		"year":    UnitYear,
		"years":   UnitYear,
		"año":     UnitYear,
		"años":    UnitYear,
	}
)

// Interval is a recurrence such as "every 3 month".
type Interval struct {
	Count int
	Unit  Unit
}

// Known reports whether the unit is one the scheduler can add to a date.
func (i Interval) Known() bool {
	return i.Unit == UnitWeek || i.Unit == UnitMonth || i.Unit == UnitYear
}

// NormalizeUnit maps a unit word (English or legacy Spanish, singular or plural)
// to its canonical form. Unknown words are returned lower-cased.
func NormalizeUnit(raw string) Unit {
	word := strings.ToLower(strings.TrimSpace(raw))
	if u, ok := unitAliases[word]; ok {
		return u
	}
	return Unit(word)
}

// ParseInterval extracts the "every N unit" recurrence embedded in an activity label.
// ok is false when the label carries no such pattern.
func ParseInterval(text string) (Interval, bool) {
	m := intervalRe.FindStringSubmatch(text)
	if m == nil {
		return Interval{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Interval{}, false
	}
	return Interval{Count: n, Unit: NormalizeUnit(m[2])}, true
}

// FormatActivity renders the label stored for an activity with a recurrence.
func FormatActivity(activity string, count int, unit string) string {
	activity = strings.TrimSpace(activity)
	if count <= 0 || strings.TrimSpace(unit) == "" {
		return activity
	}
	return fmt.Sprintf("%s (every %d %s)", activity, count, strings.TrimSpace(unit))
}
