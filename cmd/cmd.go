// Package cmd defines the command-line interface for heatmap.
package cmd

import (
	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add subcommands to the root command
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("input", "i", "", "Path to the immersion log CSV (default: the only file in --data-dir)")
	rootCmd.PersistentFlags().String("data-dir", contract.DefaultDataDir, "Directory searched for the log when --input is not given")
	rootCmd.PersistentFlags().StringP("media", "m", string(schema.AllMedia), "Comma-separated media types to include, or ALL")
	rootCmd.PersistentFlags().String("label-format", string(schema.AutoLabels), "Media label format: auto or prefixed or plain")
	rootCmd.PersistentFlags().String("year-mode", string(schema.CalendarYear), "Year bucketing: calendar or iso")
	rootCmd.PersistentFlags().Bool("week53", false, "Keep ISO week 53 as an extra column instead of dropping it")
	rootCmd.PersistentFlags().Bool("strict-categories", false, "Fail on media types that have no weight")
	rootCmd.PersistentFlags().String("cmap", string(schema.GreensPalette), "Color map: Greens or Blues or Reds or Purples or Oranges")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind the render flags of rootCmd to Viper
	rootCmd.Flags().StringP("output", "o", "", "Path of the image to write (.png, .jpg, .tif, .svg, .pdf, .eps)")
	rootCmd.Flags().Int("dpi", contract.DefaultDPI, "Resolution for raster images")
	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		contract.LogFatal("Error binding render flags", err)
	}

	// Subcommand flags are bound to Viper in sharedSetup, once the running command is known
	summaryCmd.Flags().String("format", string(schema.TextOut), "Output format: text or csv or json")
	summaryCmd.Flags().String("output-file", "", "Optional path to write output to")

	exportCmd.Flags().String("format", string(schema.CSVOut), "Export format: csv or json or parquet or sqlite")
	exportCmd.Flags().String("output-file", "", "Path to write to (base name for parquet, database file for sqlite)")

	weightsCmd.Flags().String("format", string(schema.TextOut), "Output format: text or csv or json")
	weightsCmd.Flags().String("output-file", "", "Optional path to write output to")
}
