package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
)

// gridExport is the JSON document written by the export command.
type gridExport struct {
	Run     schema.ExportRun      `json:"run"`
	Cells   []schema.GridCellRow  `json:"cells"`
	Records []schema.ScoredRecord `json:"records"`
}

// WriteGridExport writes the dense grid cells (CSV) or the full export document (JSON).
func WriteGridExport(run schema.ExportRun, output *schema.HeatmapOutput, cfg *contract.Config) error {
	cells := schema.GridCellRows(output.Grids)
	switch cfg.Format {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, gridExport{Run: run, Cells: cells, Records: output.Records})
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridCSV(w, run.RunID, cells)
		}, "Wrote CSV")
	}
}

func writeGridCSV(w io.Writer, runID string, cells []schema.GridCellRow) error {
	header := []string{"run_id", "year", "week", "weekday", "points", "observed"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range cells {
			points := ""
			if c.Observed {
				points = strconv.FormatFloat(c.Points, 'g', -1, 64)
			}
			record := []string{
				runID,
				strconv.Itoa(c.Year),
				strconv.Itoa(c.Week),
				strconv.Itoa(c.Weekday),
				points,
				strconv.FormatBool(c.Observed),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
