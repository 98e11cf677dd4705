package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milling-shop-backend/internal/model"
)

var base = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestNextDue(t *testing.T) {
	testCases := []struct {
		name     string
		rec      model.MaintenanceRecord
		expected time.Time
		ok       bool
	}{
		{
			name:     "first-class weeks",
			rec:      model.MaintenanceRecord{IntervalCount: 2, IntervalUnit: "week", PerformedAt: base},
			expected: base.Add(14 * 24 * time.Hour),
			ok:       true,
		},
		{
			name:     "month is thirty days",
			rec:      model.MaintenanceRecord{IntervalCount: 1, IntervalUnit: "month", PerformedAt: base},
			expected: base.Add(30 * 24 * time.Hour),
			ok:       true,
		},
		{
			name:     "year is 365 days",
			rec:      model.MaintenanceRecord{IntervalCount: 1, IntervalUnit: "year", PerformedAt: base},
			expected: base.Add(365 * 24 * time.Hour),
			ok:       true,
		},
		{
			name:     "parsed from legacy label",
			rec:      model.MaintenanceRecord{ActivityText: "Limpieza (cada 3 mes)", PerformedAt: base},
			expected: base.Add(90 * 24 * time.Hour),
			ok:       true,
		},
		{
			name:     "no interval defaults to one week",
			rec:      model.MaintenanceRecord{ActivityText: "General cleaning", PerformedAt: base},
			expected: base.Add(7 * 24 * time.Hour),
			ok:       true,
		},
		{
			name: "unknown unit has no next due",
			rec:  model.MaintenanceRecord{IntervalCount: 3, IntervalUnit: "day", PerformedAt: base},
			ok:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			due, ok := NextDue(tc.rec)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, tc.expected.Equal(due), "expected %s, got %s", tc.expected, due)
			}
		})
	}
}

func TestUpcoming(t *testing.T) {
	now := base.Add(10 * 24 * time.Hour)
	records := []model.MaintenanceRecord{
		// A weekly, performed twice: only the later one is still upcoming.
		{ID: 1, Machine: "A", ActivityText: "Clean (every 1 week)", IntervalCount: 1, IntervalUnit: "week", PerformedAt: base},
		{ID: 2, Machine: "A", ActivityText: "Clean (every 1 week)", IntervalCount: 1, IntervalUnit: "week", PerformedAt: base.Add(8 * 24 * time.Hour)},
		// Same activity on another machine is its own group.
		{ID: 3, Machine: "B", ActivityText: "Clean (every 1 week)", IntervalCount: 1, IntervalUnit: "week", PerformedAt: base.Add(5 * 24 * time.Hour)},
		// Monthly, due later than everything else.
		{ID: 4, Machine: "A", ActivityText: "Filter (every 1 month)", IntervalCount: 1, IntervalUnit: "month", PerformedAt: base},
		// Overdue, dropped.
		{ID: 5, Machine: "C", ActivityText: "Oil (every 1 week)", IntervalCount: 1, IntervalUnit: "week", PerformedAt: base},
		// Unknown unit, dropped.
		{ID: 6, Machine: "C", ActivityText: "Odd (every 1 day)", IntervalCount: 1, IntervalUnit: "day", PerformedAt: now},
	}

	upcoming := Upcoming(records, now)
	require.Len(t, upcoming, 3)

	ids := []int64{upcoming[0].ID, upcoming[1].ID, upcoming[2].ID}
	assert.Equal(t, []int64{3, 2, 4}, ids)
	for i := 1; i < len(upcoming); i++ {
		assert.False(t, upcoming[i].NextDue.Before(*upcoming[i-1].NextDue))
	}
}

func TestUpcoming_KeepsSoonestWithinGroup(t *testing.T) {
	now := base
	records := []model.MaintenanceRecord{
		{ID: 1, Machine: "A", ActivityText: "Clean (every 1 week)", PerformedAt: base.Add(3 * 24 * time.Hour)},
		{ID: 2, Machine: "A", ActivityText: "Clean (every 1 week)", PerformedAt: base.Add(1 * 24 * time.Hour)},
	}

	upcoming := Upcoming(records, now)
	require.Len(t, upcoming, 1)
	assert.Equal(t, int64(2), upcoming[0].ID)
}
