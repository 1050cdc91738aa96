// Package schema has configs, models and error kinds for all parts of heatmap.
package schema

import "time"

// RawRecord is a single row of the immersion log as read from disk.
// The timestamp is kept verbatim so that the cleaner owns date parsing.
type RawRecord struct {
	Line      int     // 1-based line number in the source file, header included
	CreatedAt string  // Raw created_at value
	MediaType string  // Raw media_type value, possibly namespaced
	Amount    float64 // Amount consumed
}

// LogRecord is a cleaned immersion log entry.
type LogRecord struct {
	Line      int       `json:"line"`
	CreatedAt time.Time `json:"created_at"`
	Media     MediaType `json:"media"` // Normalized, upper-cased label
	Amount    float64   `json:"amount"`
}

// ScoredRecord is a LogRecord with its points and calendar coordinates.
type ScoredRecord struct {
	LogRecord
	Points  float64 `json:"points"`
	Known   bool    `json:"known"`    // False when the media type has no weight
	Year    int     `json:"year"`     // Calendar year of CreatedAt
	ISOYear int     `json:"iso_year"` // ISO week-year of CreatedAt
	ISOWeek int     `json:"iso_week"` // 1-53
	Weekday int     `json:"weekday"`  // 0 = Monday ... 6 = Sunday
}

// Cell is one day slot of a YearGrid.
// Observed distinguishes a slot that received records from one that never did.
type Cell struct {
	Points   float64 `json:"points"`
	Observed bool    `json:"observed"`
}

// Value returns the summed points and whether the cell holds data.
func (c Cell) Value() (float64, bool) {
	return c.Points, c.Observed
}

// YearGrid is the dense weekday x ISO-week matrix of summed points for one year.
// Cells[d][w] holds weekday d (0 = Monday) and ISO week w+1.
type YearGrid struct {
	Year  int                 `json:"year"`
	Weeks int                 `json:"weeks"`
	Cells [DaysPerWeek][]Cell `json:"cells"`
}

// NewYearGrid returns a grid with every cell marked as no data.
func NewYearGrid(year, weeks int) YearGrid {
	g := YearGrid{Year: year, Weeks: weeks}
	for d := range DaysPerWeek {
		g.Cells[d] = make([]Cell, weeks)
	}
	return g
}

// At returns the cell for a weekday (0-6) and ISO week (1-based).
func (g *YearGrid) At(weekday, week int) Cell {
	return g.Cells[weekday][week-1]
}

// Range returns the minimum and maximum observed points and whether any cell is observed.
func (g *YearGrid) Range() (lo, hi float64, ok bool) {
	for d := range DaysPerWeek {
		for _, c := range g.Cells[d] {
			if !c.Observed {
				continue
			}
			if !ok {
				lo, hi, ok = c.Points, c.Points, true
				continue
			}
			lo = min(lo, c.Points)
			hi = max(hi, c.Points)
		}
	}
	return lo, hi, ok
}

// AggregateStats counts records that the aggregator could not place in a grid.
type AggregateStats struct {
	DroppedWeek53 int
}

// HeatmapOutput is the result of running the full pipeline once.
type HeatmapOutput struct {
	Records []ScoredRecord
	Grids   []YearGrid
	Stats   AggregateStats
}

// YearSummary describes the activity recorded in a single year.
type YearSummary struct {
	Year          int                   `json:"year"`
	Records       int                   `json:"records"`
	ActiveDays    int                   `json:"active_days"`
	TotalPoints   float64               `json:"total_points"`
	BestDay       string                `json:"best_day"`
	BestDayPoints float64               `json:"best_day_points"`
	MeanPerDay    float64               `json:"mean_per_active_day"`
	LongestStreak int                   `json:"longest_streak"`
	ByMedia       map[MediaType]float64 `json:"by_media"`
}

// GridCellRow is a flat representation of one grid cell for exports.
type GridCellRow struct {
	Year     int     `json:"year"`
	Week     int     `json:"week"`
	Weekday  int     `json:"weekday"`
	Points   float64 `json:"points"`
	Observed bool    `json:"observed"`
}

// GridCellRows flattens grids into one row per cell, year by year and
// weekday-major within a year.
func GridCellRows(grids []YearGrid) []GridCellRow {
	var rows []GridCellRow
	for _, g := range grids {
		for d := range DaysPerWeek {
			for w, cell := range g.Cells[d] {
				rows = append(rows, GridCellRow{
					Year:     g.Year,
					Week:     w + 1,
					Weekday:  d,
					Points:   cell.Points,
					Observed: cell.Observed,
				})
			}
		}
	}
	return rows
}

// ExportRun holds metadata stamped on every export.
type ExportRun struct {
	RunID       string    `json:"run_id"`
	CreatedAt   time.Time `json:"created_at"`
	InputPath   string    `json:"input_path"`
	Media       string    `json:"media"`
	YearMode    YearMode  `json:"year_mode"`
	Weeks       int       `json:"weeks"`
	RecordCount int       `json:"record_count"`
}

// WeightRow describes one entry of the weight table for display.
type WeightRow struct {
	Media  MediaType `json:"media"`
	Weight float64   `json:"weight"`
}
