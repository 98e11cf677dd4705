package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInterval(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected Interval
		ok       bool
	}{
		{
			name:     "English weekly",
			text:     "General cleaning (every 1 week)",
			expected: Interval{Count: 1, Unit: UnitWeek},
			ok:       true,
		},
		{
			name:     "English plural months",
			text:     "Spindle check (every 6 months)",
			expected: Interval{Count: 6, Unit: UnitMonth},
			ok:       true,
		},
		{
			name:     "Legacy Spanish year",
			text:     "Calibración (cada 1 año)",
			expected: Interval{Count: 1, Unit: UnitYear},
			ok:       true,
		},
		{
			name:     "Legacy Spanish month",
			text:     "Filtro (cada 3 mes)",
			expected: Interval{Count: 3, Unit: UnitMonth},
			ok:       true,
		},
		{
			name:     "Upper case keyword",
			text:     "Filter EVERY 2 WEEK",
			expected: Interval{Count: 2, Unit: UnitWeek},
			ok:       true,
		},
		{
			name:     "Unknown unit is kept",
			text:     "Oil (every 3 day)",
			expected: Interval{Count: 3, Unit: Unit("day")},
			ok:       true,
		},
		{
			name: "No pattern",
			text: "General cleaning",
			ok:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			interval, ok := ParseInterval(tc.text)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, interval)
			}
		})
	}
}

func TestIntervalKnown(t *testing.T) {
	assert.True(t, Interval{Count: 1, Unit: UnitYear}.Known())
	assert.False(t, Interval{Count: 1, Unit: Unit("day")}.Known())
}

func TestFormatActivity(t *testing.T) {
	assert.Equal(t, "Cleaning (every 2 week)", FormatActivity(" Cleaning ", 2, "week"))
	assert.Equal(t, "Cleaning", FormatActivity("Cleaning", 0, "week"))
	assert.Equal(t, "Cleaning", FormatActivity("Cleaning", 2, ""))
}
