package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/heatmap/core"
	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/internal/loader"
	"github.com/huangsam/heatmap/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd renders the heatmap image. Every other view hangs off it as a subcommand.
var rootCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Render an immersion log as a per-year weekday by week heatmap.",
	Long: `Heatmap reads an immersion log (created_at, media_type, amount), converts every
entry into points using a fixed weight per media type and draws one strip per year.

Each strip has 7 weekday rows (Monday on top) and one column per ISO week.
Days with no entries stay dark; the color scale is shared by every year.

Examples:
  # Render the only file in ./data
  heatmap -o heatmap.png

  # Render reading and manga only, in blue
  heatmap -i log.csv -o reading.svg --media READING,MANGA --cmap Blues

  # Keep ISO week 53 and bucket by ISO week-year
  heatmap -i log.csv -o out.pdf --week53 --year-mode iso`,
	Version:            version,
	Args:               cobra.NoArgs,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetupWrapper(cmd, args); err != nil {
			return err
		}
		return contract.ValidateRenderTarget(cfg, input)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return runWithSource(core.ExecuteRender)
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A .env file is optional; real environment variables win over it.
	_ = godotenv.Load()

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".heatmap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("HEATMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("media", string(schema.AllMedia))
	viper.SetDefault("data-dir", contract.DefaultDataDir)
	viper.SetDefault("label-format", string(schema.AutoLabels))
	viper.SetDefault("year-mode", string(schema.CalendarYear))
	viper.SetDefault("cmap", string(schema.GreensPalette))
	viper.SetDefault("dpi", contract.DefaultDPI)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, cmd *cobra.Command, _ []string) error {
	// Subcommands share flag names like --format, so their local flags are
	// bound only for the command that actually runs.
	if cmd.HasParent() {
		if err := viper.BindPFlags(cmd.LocalNonPersistentFlags()); err != nil {
			return fmt.Errorf("error binding %s flags: %w", cmd.Name(), err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	contract.SetVerbose(cfg.Verbose)
	contract.SetColorEnabled(cfg.UseColors)
	contract.LogDebug("Configuration resolved", map[string]any{
		"config":       viper.ConfigFileUsed(),
		"media":        cfg.MediaLabel(),
		"label_format": string(cfg.LabelFormat),
		"year_mode":    string(cfg.YearMode),
		"weeks":        cfg.Weeks,
	})
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// resolveSource returns the log to read. Without --input, the data directory
// must hold exactly one file. A nil source and nil error means discovery
// failed and guidance has already been printed.
func resolveSource() (contract.RecordSource, error) {
	if cfg.InputPath != "" {
		return loader.NewCSVSource(cfg.InputPath), nil
	}

	path, err := loader.DiscoverInput(cfg.DataDir)
	if err != nil {
		var inputErr *schema.InputError
		if errors.As(err, &inputErr) && inputErr.Discovery {
			contract.LogDebug("Input discovery failed", map[string]any{"dir": cfg.DataDir, "reason": inputErr.Reason})
			contract.PrintHint(os.Stdout, "No input file found in the ./%s directory, please provide an input path.", cfg.DataDir)
			return nil, nil
		}
		return nil, err
	}
	return loader.NewCSVSource(path), nil
}

// runWithSource resolves the input and hands it to an executor.
func runWithSource(execute core.ExecutorFunc) error {
	source, err := resolveSource()
	if err != nil || source == nil {
		return err
	}
	return execute(rootCtx, cfg, source)
}

// Execute runs the root command and returns the first error it hits.
func Execute() error {
	return rootCmd.Execute()
}
