package outwriter

import (
	"os"

	"github.com/huangsam/heatmap/internal/contract"
	"golang.org/x/term"
)

// Preview geometry.
const (
	defaultTermWidth = 80
	rowLabelWidth    = 4 // "Mon " prefix
)

// GetTerminalWidth returns the configured width, the detected terminal width,
// or a conservative default when neither is available.
func GetTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return defaultTermWidth
	}
	return detected
}

// previewCellWidth picks two columns per cell when the whole year fits, one otherwise.
// A row never reaches the last terminal column.
func previewCellWidth(termWidth, weeks int) int {
	if rowLabelWidth+2*weeks < termWidth {
		return 2
	}
	return 1
}
