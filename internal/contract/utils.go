package contract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console messages.
var (
	SuccessColor = color.New(color.FgGreen, color.Bold) // SuccessColor marks completed work.
	HintColor    = color.New(color.FgYellow)            // HintColor marks guidance for the user.
	MutedColor   = color.New(color.FgHiBlack)           // MutedColor marks secondary details.
)

// SetColorEnabled toggles colored console output globally.
func SetColorEnabled(enabled bool) {
	color.NoColor = !enabled
}

// PrintSuccess writes a success line to w.
func PrintSuccess(w io.Writer, format string, args ...any) {
	_, _ = SuccessColor.Fprintf(w, format+"\n", args...)
}

// PrintHint writes a guidance line to w.
func PrintHint(w io.Writer, format string, args ...any) {
	_, _ = HintColor.Fprintf(w, format+"\n", args...)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// FormatPoints renders a point value with the given precision, trimming "-0".
func FormatPoints(v float64, precision int) string {
	s := fmt.Sprintf("%.*f", precision, v)
	if strings.Trim(s, "-0.") == "" {
		return fmt.Sprintf("%.*f", precision, 0.0)
	}
	return s
}
