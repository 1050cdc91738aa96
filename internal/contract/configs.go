package contract

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/heatmap/schema"
)

// Default values for configuration.
const (
	DefaultDataDir = "data"
	DefaultDPI     = 100
	MinDPI         = 36
	MaxDPI         = 600
)

// Config holds the runtime configuration for one invocation.
// This struct is the "final, validated" config.
type Config struct {
	InputPath string // Resolved immersion log path (empty until discovery runs)
	DataDir   string // Directory searched when InputPath is not given

	Media       []schema.MediaType // Selected media; contains AllMedia when unfiltered
	LabelFormat schema.LabelFormat
	YearMode    schema.YearMode
	Weeks       int // 52, or 53 when week 53 is kept
	Strict      bool

	OutputPath  string // Image path for the render command
	ImageFormat schema.ImageFormat
	Palette     schema.Palette
	DPI         int

	Format     schema.OutputMode // Format for summary, export and weights
	OutputFile string            // Optional path for summary, export and weights

	Width     int  // Terminal width override (0 = auto-detect)
	UseColors bool // Enable colored terminal output
	Verbose   bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Input       string `mapstructure:"input"`
	DataDir     string `mapstructure:"data-dir"`
	Media       string `mapstructure:"media"`
	LabelFormat string `mapstructure:"label-format"`
	YearMode    string `mapstructure:"year-mode"`
	Week53      bool   `mapstructure:"week53"`
	Strict      bool   `mapstructure:"strict-categories"`
	Width       int    `mapstructure:"width"`
	Color       string `mapstructure:"color"`
	Verbose     bool   `mapstructure:"verbose"`
	Cmap        string `mapstructure:"cmap"`

	// --- Fields from rootCmd.Flags() ---
	Output string `mapstructure:"output"`
	DPI    int    `mapstructure:"dpi"`

	// --- Fields from summary, export and weights flags ---
	Format     string `mapstructure:"format"`
	OutputFile string `mapstructure:"output-file"`
}

// MediaFilterEnabled reports whether records should be filtered by media type.
func (c *Config) MediaFilterEnabled() bool {
	return !slices.Contains(c.Media, schema.AllMedia)
}

// MediaLabel returns the media selection as a comma-separated string.
func (c *Config) MediaLabel() string {
	parts := make([]string, len(c.Media))
	for i, m := range c.Media {
		parts[i] = string(m)
	}
	return strings.Join(parts, ",")
}

// ProcessAndValidate performs all parsing and validation shared by every command
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processMediaSelection(cfg, input); err != nil {
		return err
	}
	if err := processPipelineModes(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateRenderTarget checks the inputs that only the render command needs.
func ValidateRenderTarget(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputPath = strings.TrimSpace(input.Output)
	if cfg.OutputPath == "" {
		return fmt.Errorf("output path is required (use --output)")
	}

	ext := strings.ToLower(filepath.Ext(cfg.OutputPath))
	format, ok := schema.ImageExtensions[ext]
	if !ok {
		return fmt.Errorf("unsupported image extension %q. must be .png, .jpg, .jpeg, .tif, .tiff, .svg, .pdf or .eps", ext)
	}
	cfg.ImageFormat = format

	if err := ValidatePalette(cfg, input); err != nil {
		return err
	}

	cfg.DPI = input.DPI
	if cfg.DPI == 0 {
		cfg.DPI = DefaultDPI
	}
	if cfg.DPI < MinDPI || cfg.DPI > MaxDPI {
		return fmt.Errorf("dpi must be between %d and %d (received %d)", MinDPI, MaxDPI, input.DPI)
	}
	return nil
}

// ValidatePalette resolves --cmap, defaulting to Greens.
func ValidatePalette(cfg *Config, input *ConfigRawInput) error {
	cfg.Palette = schema.GreensPalette
	if input.Cmap == "" {
		return nil
	}
	palette, err := ParsePalette(input.Cmap)
	if err != nil {
		return err
	}
	cfg.Palette = palette
	return nil
}

// ValidateOutputFormat checks the --format value against the formats a command supports.
func ValidateOutputFormat(cfg *Config, input *ConfigRawInput, allowed ...schema.OutputMode) error {
	cfg.OutputFile = strings.TrimSpace(input.OutputFile)
	cfg.Format = schema.TextOut
	if input.Format != "" {
		cfg.Format = schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Format)))
	}
	if _, ok := schema.ValidOutputModes[cfg.Format]; !ok || !slices.Contains(allowed, cfg.Format) {
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		return fmt.Errorf("invalid format '%s'. must be %s", input.Format, strings.Join(names, ", "))
	}
	return nil
}

// validateSimpleInputs transfers and validates fields that need no cross-checks.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = strings.TrimSpace(input.Input)
	cfg.DataDir = strings.TrimSpace(input.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	cfg.Strict = input.Strict
	cfg.Verbose = input.Verbose

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	colorValue := input.Color
	if colorValue == "" {
		colorValue = "yes"
	}
	colors, err := ParseBoolString(colorValue)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	return nil
}

// processMediaSelection parses the comma-separated media selection.
// Entries are case-insensitive; ALL anywhere in the list disables filtering.
func processMediaSelection(cfg *Config, input *ConfigRawInput) error {
	raw := input.Media
	if strings.TrimSpace(raw) == "" {
		raw = string(schema.AllMedia)
	}

	cfg.Media = nil
	for part := range strings.SplitSeq(raw, ",") {
		m := schema.MediaType(strings.ToUpper(strings.TrimSpace(part)))
		if m == "" {
			continue
		}
		if m != schema.AllMedia && !schema.IsWeighted(m) {
			return fmt.Errorf("invalid media type '%s'. must be ALL or one of %s", strings.TrimSpace(part), mediaChoices())
		}
		if !slices.Contains(cfg.Media, m) {
			cfg.Media = append(cfg.Media, m)
		}
	}
	if len(cfg.Media) == 0 {
		cfg.Media = []schema.MediaType{schema.AllMedia}
	}
	return nil
}

// processPipelineModes handles label normalization, year bucketing and week range.
func processPipelineModes(cfg *Config, input *ConfigRawInput) error {
	cfg.LabelFormat = schema.AutoLabels
	if input.LabelFormat != "" {
		cfg.LabelFormat = schema.LabelFormat(strings.ToLower(strings.TrimSpace(input.LabelFormat)))
	}
	if _, ok := schema.ValidLabelFormats[cfg.LabelFormat]; !ok {
		return fmt.Errorf("invalid label format '%s'. must be auto, prefixed, plain", input.LabelFormat)
	}

	cfg.YearMode = schema.CalendarYear
	if input.YearMode != "" {
		cfg.YearMode = schema.YearMode(strings.ToLower(strings.TrimSpace(input.YearMode)))
	}
	if _, ok := schema.ValidYearModes[cfg.YearMode]; !ok {
		return fmt.Errorf("invalid year mode '%s'. must be calendar, iso", input.YearMode)
	}

	cfg.Weeks = schema.DefaultWeeks
	if input.Week53 {
		cfg.Weeks = schema.ExtendedWeeks
	}
	return nil
}

// ParsePalette matches a palette name case-insensitively.
func ParsePalette(s string) (schema.Palette, error) {
	for _, p := range schema.AllPalettes {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid palette '%s'. must be Greens, Blues, Reds, Purples, Oranges", s)
}

func mediaChoices() string {
	names := make([]string, len(schema.AllMediaTypes))
	for i, m := range schema.AllMediaTypes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
