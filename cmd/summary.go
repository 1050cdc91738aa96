package cmd

import (
	"github.com/huangsam/heatmap/core"
	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
	"github.com/spf13/cobra"
)

// summaryCmd prints per-year statistics.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-year totals, best day and streaks.",
	Long: `Summarize the scored log one year at a time.

For each year, shows:
- Number of records and active days
- Total points, and points per media type
- Best day and mean points per active day
- Longest run of consecutive active days

Examples:
  # Summarize the log in ./data
  heatmap summary

  # Export the summary as JSON
  heatmap summary -i log.csv --format json --output-file summary.json`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetupWrapper(cmd, args); err != nil {
			return err
		}
		return contract.ValidateOutputFormat(cfg, input, schema.TextOut, schema.CSVOut, schema.JSONOut)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := runWithSource(core.ExecuteSummary); err != nil {
			contract.LogFatal("Cannot summarize log", err)
		}
	},
}
