// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
)

// OutWriter provides a unified interface for all textual output.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints per-year statistics using the configured output format.
func (ow *OutWriter) WriteSummary(summaries []schema.YearSummary, cfg *contract.Config) error {
	return PrintSummary(summaries, cfg)
}

// WriteWeights prints the weight table using the configured output format.
func (ow *OutWriter) WriteWeights(rows []schema.WeightRow, cfg *contract.Config) error {
	return PrintWeights(rows, cfg)
}

// WritePreview draws the grids on the terminal.
func (ow *OutWriter) WritePreview(grids []schema.YearGrid, cfg *contract.Config) error {
	return PrintPreview(grids, cfg)
}

// WriteGridExport writes grid cells and scored records as CSV or JSON.
func (ow *OutWriter) WriteGridExport(run schema.ExportRun, output *schema.HeatmapOutput, cfg *contract.Config) error {
	return WriteGridExport(run, output, cfg)
}
