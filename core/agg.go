package core

import (
	"slices"
	"time"

	"github.com/huangsam/heatmap/schema"
)

// GridOptions controls how scored records are bucketed into year grids.
type GridOptions struct {
	YearMode schema.YearMode
	Weeks    int // Number of week columns, 52 or 53
}

// weekRange returns the number of week columns, defaulting to 52.
func (o GridOptions) weekRange() int {
	if o.Weeks <= 0 {
		return schema.DefaultWeeks
	}
	return o.Weeks
}

// isoWeekday maps time.Weekday onto the ISO convention where Monday is 0.
func isoWeekday(d time.Weekday) int {
	return (int(d) + 6) % schema.DaysPerWeek
}

// bucketYear returns the grid a record belongs to under the given year mode.
// Calendar mode uses the timestamp's own year, so a late-December day that falls
// into ISO week 1 lands in week 1 of the earlier year.
func bucketYear(r schema.ScoredRecord, mode schema.YearMode) int {
	if mode == schema.ISOYear {
		return r.ISOYear
	}
	return r.Year
}

// BuildYearGrids sums points per weekday and ISO week for every year present in the
// records. Grids are returned in ascending year order and always carry every cell;
// slots without records stay unobserved. Records whose ISO week does not fit the
// configured week range are counted in the returned stats and left out of the grid.
func BuildYearGrids(records []schema.ScoredRecord, opts GridOptions) ([]schema.YearGrid, schema.AggregateStats) {
	weeks := opts.weekRange()

	var stats schema.AggregateStats
	grids := make(map[int]*schema.YearGrid)
	for _, r := range records {
		year := bucketYear(r, opts.YearMode)
		grid, ok := grids[year]
		if !ok {
			g := schema.NewYearGrid(year, weeks)
			grid = &g
			grids[year] = grid
		}
		if r.ISOWeek > weeks {
			stats.DroppedWeek53++
			continue
		}
		cell := &grid.Cells[r.Weekday][r.ISOWeek-1]
		cell.Points += r.Points
		cell.Observed = true
	}

	years := make([]int, 0, len(grids))
	for year := range grids {
		years = append(years, year)
	}
	slices.Sort(years)

	result := make([]schema.YearGrid, len(years))
	for i, year := range years {
		result[i] = *grids[year]
	}
	return result, stats
}
