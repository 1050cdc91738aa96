package core

import (
	"slices"
	"time"

	"github.com/huangsam/heatmap/schema"
)

const dayLayout = "2006-01-02"

// SummarizeYears computes per-year activity statistics from scored records.
// Years and the week range follow the grids, so records left out of a grid are
// left out of its summary too. Summaries are sorted ascending.
func SummarizeYears(records []schema.ScoredRecord, opts GridOptions) []schema.YearSummary {
	type yearAcc struct {
		summary schema.YearSummary
		days    map[string]float64
	}

	weeks := opts.weekRange()
	acc := make(map[int]*yearAcc)
	for _, r := range records {
		year := bucketYear(r, opts.YearMode)
		a, ok := acc[year]
		if !ok {
			a = &yearAcc{
				summary: schema.YearSummary{Year: year, ByMedia: make(map[schema.MediaType]float64)},
				days:    make(map[string]float64),
			}
			acc[year] = a
		}
		if r.ISOWeek > weeks {
			continue
		}
		a.summary.Records++
		a.summary.TotalPoints += r.Points
		a.summary.ByMedia[r.Media] += r.Points
		a.days[r.CreatedAt.Format(dayLayout)] += r.Points
	}

	years := make([]int, 0, len(acc))
	for year := range acc {
		years = append(years, year)
	}
	slices.Sort(years)

	result := make([]schema.YearSummary, 0, len(years))
	for _, year := range years {
		a := acc[year]
		s := a.summary
		s.ActiveDays = len(a.days)
		if s.ActiveDays > 0 {
			s.MeanPerDay = s.TotalPoints / float64(s.ActiveDays)
		}
		s.BestDay, s.BestDayPoints = bestDay(a.days)
		s.LongestStreak = longestStreak(a.days)
		result = append(result, s)
	}
	return result
}

// bestDay returns the day with the most points; ties go to the earliest day.
func bestDay(days map[string]float64) (string, float64) {
	keys := sortedDays(days)
	best, bestPoints := "", 0.0
	for i, day := range keys {
		if i == 0 || days[day] > bestPoints {
			best, bestPoints = day, days[day]
		}
	}
	return best, bestPoints
}

// longestStreak counts the longest run of consecutive days with at least one record.
func longestStreak(days map[string]float64) int {
	keys := sortedDays(days)
	longest, current := 0, 0
	var prev time.Time
	for i, day := range keys {
		t, _ := time.Parse(dayLayout, day)
		if i > 0 && t.Sub(prev) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		longest = max(longest, current)
		prev = t
	}
	return longest
}

func sortedDays(days map[string]float64) []string {
	keys := make([]string, 0, len(days))
	for day := range days {
		keys = append(keys, day)
	}
	slices.Sort(keys)
	return keys
}
