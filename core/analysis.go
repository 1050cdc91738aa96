package core

import (
	"context"
	"fmt"

	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
)

// BuildHeatmap runs the loader, cleaner, scorer and aggregator once, in that order.
// Non-fatal findings (label drift, unknown media types, dropped week-53 records)
// are logged as warnings; anything else aborts the run.
func BuildHeatmap(ctx context.Context, cfg *contract.Config, source contract.RecordSource) (*schema.HeatmapOutput, error) {
	raw, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	contract.LogDebug("Loaded immersion log", map[string]any{"source": source.Name(), "rows": len(raw)})

	records, drift, err := CleanRecords(raw, CleanOptions{LabelFormat: cfg.LabelFormat, Media: cfg.Media})
	if err != nil {
		return nil, err
	}
	if drift != nil {
		contract.LogWarn("Media labels were not normalized", drift)
	}
	cleaned := map[string]any{"kept": len(records)}
	if cfg.MediaFilterEnabled() {
		cleaned["media"] = cfg.MediaLabel()
	}
	contract.LogDebug("Cleaned records", cleaned)

	scored, unknown, err := ScoreRecords(records, cfg.Strict)
	if err != nil {
		return nil, err
	}
	for _, media := range unknown {
		contract.LogWarn(fmt.Sprintf("Media type %s has no weight and contributes zero points", media), nil)
	}

	grids, stats := BuildYearGrids(scored, GridOptions{YearMode: cfg.YearMode, Weeks: cfg.Weeks})
	if stats.DroppedWeek53 > 0 {
		contract.LogWarn(fmt.Sprintf("Dropped %d record(s) in ISO week 53 (use --week53 to keep them)", stats.DroppedWeek53), nil)
	}
	contract.LogDebug("Built year grids", map[string]any{"records": len(scored), "years": len(grids), "weeks": cfg.Weeks})

	return &schema.HeatmapOutput{Records: scored, Grids: grids, Stats: stats}, nil
}
