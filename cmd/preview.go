package cmd

import (
	"github.com/huangsam/heatmap/core"
	"github.com/huangsam/heatmap/internal/contract"
	"github.com/spf13/cobra"
)

// previewCmd draws the heatmap in the terminal.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Draw the heatmap in the terminal.",
	Long: `Run the same pipeline as the image renderer and draw every year as colored
cells in the terminal, using the palette selected with --cmap.

With --color no, cells are drawn with shading characters instead.

Examples:
  # Preview the log in ./data
  heatmap preview

  # Preview listening time only, without colors
  heatmap preview -i log.csv --media LISTENING --color no`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetupWrapper(cmd, args); err != nil {
			return err
		}
		return contract.ValidatePalette(cfg, input)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := runWithSource(core.ExecutePreview); err != nil {
			contract.LogFatal("Cannot preview heatmap", err)
		}
	},
}
