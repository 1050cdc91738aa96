// Package core turns an immersion log into per-year heatmap grids and drives
// every command that reports on them.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/internal/dbexport"
	"github.com/huangsam/heatmap/internal/outwriter"
	"github.com/huangsam/heatmap/internal/parquet"
	"github.com/huangsam/heatmap/internal/render"
	"github.com/huangsam/heatmap/schema"
)

// ExecutorFunc defines the function signature for the commands that need the pipeline.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, source contract.RecordSource) error

// ExecuteRender builds the grids and writes the heatmap image.
// It serves as the main entry point for the root command.
func ExecuteRender(ctx context.Context, cfg *contract.Config, source contract.RecordSource) error {
	output, err := BuildHeatmap(ctx, cfg, source)
	if err != nil {
		return err
	}
	opts := render.Options{Format: cfg.ImageFormat, Palette: cfg.Palette, DPI: cfg.DPI}
	if err := render.RenderFile(cfg.OutputPath, output.Grids, opts); err != nil {
		return err
	}
	contract.PrintSuccess(os.Stdout, "Heatmap saved to %s", cfg.OutputPath)
	return nil
}

// ExecutePreview builds the grids and draws them on the terminal.
func ExecutePreview(ctx context.Context, cfg *contract.Config, source contract.RecordSource) error {
	output, err := BuildHeatmap(ctx, cfg, source)
	if err != nil {
		return err
	}
	if len(output.Grids) == 0 {
		if cfg.MediaFilterEnabled() {
			contract.PrintHint(os.Stderr, "No records to preview for media %s", cfg.MediaLabel())
			return nil
		}
		contract.PrintHint(os.Stderr, "No records to preview")
		return nil
	}
	return outwriter.NewOutWriter().WritePreview(output.Grids, cfg)
}

// ExecuteSummary prints per-year statistics for the selected records.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, source contract.RecordSource) error {
	output, err := BuildHeatmap(ctx, cfg, source)
	if err != nil {
		return err
	}
	summaries := SummarizeYears(output.Records, GridOptions{YearMode: cfg.YearMode, Weeks: cfg.Weeks})
	return outwriter.NewOutWriter().WriteSummary(summaries, cfg)
}

// ExecuteExport writes grid cells and scored records in the configured format.
func ExecuteExport(ctx context.Context, cfg *contract.Config, source contract.RecordSource) error {
	if (cfg.Format == schema.ParquetOut || cfg.Format == schema.SQLiteOut) && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for %s export", cfg.Format)
	}
	output, err := BuildHeatmap(ctx, cfg, source)
	if err != nil {
		return err
	}
	run := NewExportRun(cfg, source.Name(), output)

	switch cfg.Format {
	case schema.ParquetOut:
		cellsPath, recordsPath, err := parquet.WriteExport(cfg.OutputFile, run.RunID, output.Grids, output.Records)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s and %s\n", cellsPath, recordsPath)
		return nil
	case schema.SQLiteOut:
		store, err := dbexport.Open(cfg.OutputFile)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		if err := WriteExportStore(store, run, output); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote SQLite run %s to %s\n", run.RunID, cfg.OutputFile)
		return nil
	default:
		return outwriter.NewOutWriter().WriteGridExport(run, output, cfg)
	}
}

// ExecuteWeights prints the fixed weight table. It does not read any input.
func ExecuteWeights(cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteWeights(schema.WeightRows(), cfg)
}

// NewExportRun stamps an export with a fresh run id and the settings that produced it.
func NewExportRun(cfg *contract.Config, inputPath string, output *schema.HeatmapOutput) schema.ExportRun {
	return schema.ExportRun{
		RunID:       uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		InputPath:   inputPath,
		Media:       cfg.MediaLabel(),
		YearMode:    cfg.YearMode,
		Weeks:       cfg.Weeks,
		RecordCount: len(output.Records),
	}
}

// WriteExportStore persists one export run with its cells and records.
func WriteExportStore(store contract.ExportStore, run schema.ExportRun, output *schema.HeatmapOutput) error {
	return store.WriteExport(run, schema.GridCellRows(output.Grids), output.Records)
}
