package cmd

import (
	"github.com/huangsam/heatmap/core"
	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
	"github.com/spf13/cobra"
)

// exportCmd writes the grids and scored records for other tools.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export grid cells and scored records.",
	Long: `Export the data behind the heatmap.

Formats:
- csv: one row per grid cell (empty points mean no data)
- json: run metadata, grid cells and scored records in one document
- parquet: <output-file>.cells.parquet and <output-file>.records.parquet
- sqlite: appends the run to a database file, creating the tables if needed

Every export is stamped with a fresh run id.

Examples:
  # Grid cells as CSV on stdout
  heatmap export -i log.csv

  # Keep a history of runs in SQLite
  heatmap export -i log.csv --format sqlite --output-file heatmap.db`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetupWrapper(cmd, args); err != nil {
			return err
		}
		return contract.ValidateOutputFormat(cfg, input, schema.CSVOut, schema.JSONOut, schema.ParquetOut, schema.SQLiteOut)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := runWithSource(core.ExecuteExport); err != nil {
			contract.LogFatal("Cannot export heatmap data", err)
		}
	},
}
