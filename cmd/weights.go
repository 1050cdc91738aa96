package cmd

import (
	"github.com/huangsam/heatmap/core"
	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
	"github.com/spf13/cobra"
)

// weightsCmd displays the fixed weight table.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Display the points awarded per unit of each media type.",
	Long: `Show the fixed weight table used to turn amounts into points.

No log is read; this is purely informational.

Examples:
  heatmap weights
  heatmap weights --format csv`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetupWrapper(cmd, args); err != nil {
			return err
		}
		return contract.ValidateOutputFormat(cfg, input, schema.TextOut, schema.CSVOut, schema.JSONOut)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWeights(cfg); err != nil {
			contract.LogFatal("Cannot display weights", err)
		}
	},
}
