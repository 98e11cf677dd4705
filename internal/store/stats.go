package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"milling-shop-backend/internal/model"
)

const (
	machineWeekBuckets = 32
	dailyBuckets       = 14
)

// ShadeCount is a quantity per block shade.
type ShadeCount struct {
	Shade string `json:"shade"`
	Count int    `json:"count"`
}

// MaterialCount is a quantity per material.
type MaterialCount struct {
	Material string `json:"material"`
	Count    int    `json:"count"`
}

// MachineWeekCount is the models milled on one machine in one ISO week ("2024-07").
type MachineWeekCount struct {
	Week    string `json:"week"`
	Machine string `json:"machine"`
	Count   int    `json:"count"`
}

// DayCount is the models milled on one day ("2024-02-15").
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// InventoryStats feeds the dashboard charts.
type InventoryStats struct {
	BlocksByShade   []ShadeCount       `json:"blocks_by_shade"`
	ModelsByMachine []MachineWeekCount `json:"models_by_machine"`
	WeekByShade     []ShadeCount       `json:"week_by_shade"`
	WeekByMaterial  []MaterialCount    `json:"week_by_material"`
	ModelsByDay     []DayCount         `json:"models_by_day"`
	WeekStart       time.Time          `json:"week_start"`
}

// WeekStart returns Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}

func isoWeek(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-%02d", year, week)
}

// InventoryStats aggregates current block stock and milled models.
// Week and day buckets are newest first.
func (s *gormStore) InventoryStats(ctx context.Context, now time.Time) (InventoryStats, error) {
	stats := InventoryStats{WeekStart: WeekStart(now)}

	if err := s.db.WithContext(ctx).
		Model(&model.Block{}).
		Select("shade, SUM(quantity) AS count").
		Group("shade").
		Order("shade").
		Scan(&stats.BlocksByShade).Error; err != nil {
		return InventoryStats{}, fmt.Errorf("failed to sum blocks by shade: %w", err)
	}

	var orders []model.Order
	if err := s.db.WithContext(ctx).
		Select("machine", "shade", "material", "model_count", "created_at").
		Find(&orders).Error; err != nil {
		return InventoryStats{}, fmt.Errorf("failed to load orders for stats: %w", err)
	}

	byMachine := map[[2]string]int{}
	byDay := map[string]int{}
	byShade := map[string]int{}
	byMaterial := map[string]int{}
	for _, o := range orders {
		byMachine[[2]string{isoWeek(o.CreatedAt), o.Machine}] += o.ModelCount
		byDay[o.CreatedAt.UTC().Format(time.DateOnly)] += o.ModelCount
		if !o.CreatedAt.Before(stats.WeekStart) {
			byShade[o.Shade] += o.ModelCount
			byMaterial[o.Material] += o.ModelCount
		}
	}

	for k, n := range byMachine {
		stats.ModelsByMachine = append(stats.ModelsByMachine, MachineWeekCount{Week: k[0], Machine: k[1], Count: n})
	}
	sort.Slice(stats.ModelsByMachine, func(i, j int) bool {
		a, b := stats.ModelsByMachine[i], stats.ModelsByMachine[j]
		if a.Week != b.Week {
			return a.Week > b.Week
		}
		return a.Machine < b.Machine
	})
	if len(stats.ModelsByMachine) > machineWeekBuckets {
		stats.ModelsByMachine = stats.ModelsByMachine[:machineWeekBuckets]
	}

	for d, n := range byDay {
		stats.ModelsByDay = append(stats.ModelsByDay, DayCount{Day: d, Count: n})
	}
	sort.Slice(stats.ModelsByDay, func(i, j int) bool { return stats.ModelsByDay[i].Day > stats.ModelsByDay[j].Day })
	if len(stats.ModelsByDay) > dailyBuckets {
		stats.ModelsByDay = stats.ModelsByDay[:dailyBuckets]
	}

	for shade, n := range byShade {
		stats.WeekByShade = append(stats.WeekByShade, ShadeCount{Shade: shade, Count: n})
	}
	sort.Slice(stats.WeekByShade, func(i, j int) bool { return stats.WeekByShade[i].Shade < stats.WeekByShade[j].Shade })

	for material, n := range byMaterial {
		stats.WeekByMaterial = append(stats.WeekByMaterial, MaterialCount{Material: material, Count: n})
	}
	sort.Slice(stats.WeekByMaterial, func(i, j int) bool {
		return stats.WeekByMaterial[i].Material < stats.WeekByMaterial[j].Material
	})

	return stats, nil
}
