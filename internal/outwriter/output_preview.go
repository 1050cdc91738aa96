package outwriter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/internal/render"
	"github.com/huangsam/heatmap/schema"
)

var (
	weekdayLabels = [schema.DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	shadeGlyphs   = []string{"░", "▒", "▓", "█"}
)

// PrintPreview draws the grids on stdout using the same colormap and scale as the image.
func PrintPreview(grids []schema.YearGrid, cfg *contract.Config) error {
	cmap, err := render.NewColormap(cfg.Palette)
	if err != nil {
		return err
	}
	cellWidth := 1
	if len(grids) > 0 {
		cellWidth = previewCellWidth(GetTerminalWidth(cfg), grids[0].Weeks)
	}
	return writePreview(os.Stdout, grids, cmap, cellWidth, cfg.UseColors)
}

// writePreview renders one block per year. With colors enabled every cell is a
// truecolor background; otherwise cells are shaded with block glyphs and
// empty or non-positive cells stay blank.
func writePreview(w io.Writer, grids []schema.YearGrid, cmap *render.Colormap, cellWidth int, useColors bool) error {
	lo, hi, ok := render.ScaleRange(grids)
	for _, g := range grids {
		if _, err := fmt.Fprintln(w, contract.SuccessColor.Sprint(render.TitleFor(g.Year))); err != nil {
			return err
		}
		for d := range schema.DaysPerWeek {
			var b strings.Builder
			b.WriteString(weekdayLabels[d])
			b.WriteString(" ")
			for _, cell := range g.Cells[d] {
				b.WriteString(previewCell(cell, cmap, lo, hi, cellWidth, useColors))
			}
			if _, err := fmt.Fprintln(w, b.String()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if ok {
		_, err := fmt.Fprintln(w, contract.MutedColor.Sprintf("Scale: %s to %s points", fmtPoints(lo), fmtPoints(hi)))
		return err
	}
	return nil
}

func previewCell(cell schema.Cell, cmap *render.Colormap, lo, hi float64, cellWidth int, useColors bool) string {
	if useColors {
		r, g, b, _ := cmap.ColorFor(cell, lo, hi).RGBA()
		return color.BgRGB(int(r>>8), int(g>>8), int(b>>8)).Sprint(strings.Repeat(" ", cellWidth))
	}
	if !cell.Observed || cell.Points <= 0 {
		return strings.Repeat(" ", cellWidth)
	}
	idx := cmap.Index(cell.Points, lo, hi)
	level := idx * len(shadeGlyphs) / render.ColormapSize
	return strings.Repeat(shadeGlyphs[level], cellWidth)
}
