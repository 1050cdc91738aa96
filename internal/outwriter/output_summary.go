package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSummary writes per-year statistics in the configured format.
func PrintSummary(summaries []schema.YearSummary, cfg *contract.Config) error {
	switch cfg.Format {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, summaries)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, summaries, cfg)
		}, "Wrote table")
	}
}

// writeSummaryTable renders one row per year with the strongest media type.
func writeSummaryTable(w io.Writer, summaries []schema.YearSummary, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Year", "Records", "Active Days", "Points", "Best Day", "Best", "Mean/Day", "Streak", "Top Media"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	total := 0.0
	for _, s := range summaries {
		data = append(data, []string{
			strconv.Itoa(s.Year),
			strconv.Itoa(s.Records),
			strconv.Itoa(s.ActiveDays),
			fmtPoints(s.TotalPoints),
			s.BestDay,
			fmtPoints(s.BestDayPoints),
			fmtPoints(s.MeanPerDay),
			strconv.Itoa(s.LongestStreak),
			topMedia(s.ByMedia),
		})
		total += s.TotalPoints
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d year(s), %s points total (media: %s)\n", len(summaries), fmtPoints(total), cfg.MediaLabel())
	return err
}

// writeSummaryCSV writes one row per year with a points column for every weighted media type.
func writeSummaryCSV(w io.Writer, summaries []schema.YearSummary) error {
	header := []string{"year", "records", "active_days", "total_points", "best_day", "best_day_points", "mean_per_active_day", "longest_streak"}
	for _, m := range schema.AllMediaTypes {
		header = append(header, "points_"+strings.ToLower(string(m)))
	}

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range summaries {
			record := []string{
				strconv.Itoa(s.Year),
				strconv.Itoa(s.Records),
				strconv.Itoa(s.ActiveDays),
				fmtPoints(s.TotalPoints),
				s.BestDay,
				fmtPoints(s.BestDayPoints),
				fmtPoints(s.MeanPerDay),
				strconv.Itoa(s.LongestStreak),
			}
			for _, m := range schema.AllMediaTypes {
				record = append(record, fmtPoints(s.ByMedia[m]))
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// topMedia returns the media type with the most points, ties broken alphabetically.
func topMedia(byMedia map[schema.MediaType]float64) string {
	keys := make([]schema.MediaType, 0, len(byMedia))
	for m := range byMedia {
		keys = append(keys, m)
	}
	slices.Sort(keys)

	best := "-"
	bestPoints := 0.0
	for _, m := range keys {
		if byMedia[m] > bestPoints {
			best, bestPoints = string(m), byMedia[m]
		}
	}
	return best
}
