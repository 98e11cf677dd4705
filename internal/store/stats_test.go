package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milling-shop-backend/internal/model"
)

func TestWeekStart(t *testing.T) {
	// 2024-03-14 is a Thursday.
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), WeekStart(testNow))
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStart(monday))
	sunday := time.Date(2024, 3, 17, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStart(sunday))
}

func TestInventoryStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seedNewBlock(t, s, "Zirconia", "A1", 14, 3)
	seedNewBlock(t, s, "PMMA", "A1", 14, 2)
	seedNewBlock(t, s, "PMMA", "B2", 14, 4)

	orders := []model.Order{
		{OrderCode: "O1", Material: "Zirconia", Shade: "A1", Machine: "A", ModelCount: 3, CreatedAt: testNow},
		{OrderCode: "O2", Material: "PMMA", Shade: "B2", Machine: "A", ModelCount: 2, CreatedAt: testNow.Add(-24 * time.Hour)},
		{OrderCode: "O3", Material: "Zirconia", Shade: "A1", Machine: "B", ModelCount: 5, CreatedAt: testNow.Add(-48 * time.Hour)},
		{OrderCode: "O4", Material: "Zirconia", Shade: "C1", Machine: "A", ModelCount: 7, CreatedAt: testNow.Add(-7 * 24 * time.Hour)},
	}
	require.NoError(t, s.DB().Create(&orders).Error)

	stats, err := s.InventoryStats(ctx, testNow)
	require.NoError(t, err)

	assert.Equal(t, []ShadeCount{{Shade: "A1", Count: 5}, {Shade: "B2", Count: 4}}, stats.BlocksByShade)
	assert.Equal(t, []MachineWeekCount{
		{Week: "2024-11", Machine: "A", Count: 5},
		{Week: "2024-11", Machine: "B", Count: 5},
		{Week: "2024-10", Machine: "A", Count: 7},
	}, stats.ModelsByMachine)
	assert.Equal(t, []ShadeCount{{Shade: "A1", Count: 8}, {Shade: "B2", Count: 2}}, stats.WeekByShade)
	assert.Equal(t, []MaterialCount{{Material: "PMMA", Count: 2}, {Material: "Zirconia", Count: 8}}, stats.WeekByMaterial)
	assert.Equal(t, []DayCount{
		{Day: "2024-03-14", Count: 3},
		{Day: "2024-03-13", Count: 2},
		{Day: "2024-03-12", Count: 5},
		{Day: "2024-03-07", Count: 7},
	}, stats.ModelsByDay)
}

func TestInventoryStats_KeepsLatestDays(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var orders []model.Order
	for i := 0; i < 20; i++ {
		orders = append(orders, model.Order{OrderCode: "O", Machine: "A", ModelCount: 1, CreatedAt: testNow.Add(-time.Duration(i) * 24 * time.Hour)})
	}
	require.NoError(t, s.DB().Create(&orders).Error)

	stats, err := s.InventoryStats(ctx, testNow)
	require.NoError(t, err)
	require.Len(t, stats.ModelsByDay, 14)
	assert.Equal(t, "2024-03-14", stats.ModelsByDay[0].Day)
	assert.Equal(t, "2024-03-01", stats.ModelsByDay[13].Day)
}
