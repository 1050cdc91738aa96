// Package render draws year grids as a heatmap image using gonum/plot's vg canvases.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/huangsam/heatmap/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Figure geometry.
const (
	FigureWidth  = 12 * vg.Inch
	StripHeight  = 2 * vg.Inch // one strip per year
	margin       = 0.15 * vg.Inch
	titleHeight  = 0.3 * vg.Inch
	cellGap      = 1.5 // points between neighbouring cells
	barFraction  = 0.025
	barPad       = 0.02
	barAspect    = 10
	titleSizePts = 12
	defaultDPI   = 100
)

// outputFileMode matches what os.Create gives a new file under the usual umask.
const outputFileMode = 0o644

// Options selects the encoding and colors of a rendered heatmap.
type Options struct {
	Format  schema.ImageFormat
	Palette schema.Palette
	DPI     int // Raster formats only
}

// TitleFor returns the strip title for a year.
func TitleFor(year int) string {
	return fmt.Sprintf("Immersion Heatmap - %d", year)
}

// Render draws every grid as one strip, stacked vertically in the given order,
// with a single shared color bar, and encodes the figure to w.
func Render(w io.Writer, grids []schema.YearGrid, opts Options) error {
	if len(grids) == 0 {
		return schema.ErrNoRecords
	}
	cmap, err := NewColormap(opts.Palette)
	if err != nil {
		return err
	}

	height := StripHeight * vg.Length(len(grids))
	canvas, err := newCanvas(opts.Format, FigureWidth, height, opts.DPI)
	if err != nil {
		return err
	}

	dc := draw.New(canvas)
	fillRect(dc, Figure, 0, 0, FigureWidth, height)

	lo, hi, _ := ScaleRange(grids)
	layout := newLayout(grids, height)
	for i := range grids {
		drawStrip(dc, layout, i, &grids[i], cmap, lo, hi)
	}
	drawColorbar(dc, layout, cmap)

	if opts.Format == schema.EPSImage {
		w = &epsHeaderWriter{w: w}
	}
	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode %s image: %w", opts.Format, err)
	}
	return nil
}

// epsMagic is the first line every EPS reader expects.
const epsMagic = "%!PS-Adobe-3.0 EPSF-3.0"

// epsHeaderWriter drops the extra '%' vgeps puts in front of the magic line.
type epsHeaderWriter struct {
	w    io.Writer
	seen bool
}

func (e *epsHeaderWriter) Write(p []byte) (int, error) {
	if e.seen {
		return e.w.Write(p)
	}
	e.seen = true
	if bytes.HasPrefix(p, []byte("%"+epsMagic)) {
		if _, err := e.w.Write(p[1:]); err != nil {
			return 0, err
		}
		return len(p), nil
	}
	return e.w.Write(p)
}

// RenderFile renders to a temporary file next to path and renames it into place,
// so a failed render never leaves a partial image behind.
func RenderFile(path string, grids []schema.YearGrid, opts Options) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".heatmap-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Render(tmp, grids, opts); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(outputFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}

// newCanvas picks the vg backend for an image format.
func newCanvas(format schema.ImageFormat, w, h vg.Length, dpi int) (vg.CanvasWriterTo, error) {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	raster := func() *vgimg.Canvas {
		return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	}
	switch format {
	case schema.PNGImage:
		return vgimg.PngCanvas{Canvas: raster()}, nil
	case schema.JPEGImage:
		return vgimg.JpegCanvas{Canvas: raster()}, nil
	case schema.TIFFImage:
		return vgimg.TiffCanvas{Canvas: raster()}, nil
	case schema.SVGImage:
		return vgsvg.New(w, h), nil
	case schema.PDFImage:
		return vgpdf.New(w, h), nil
	case schema.EPSImage:
		return vgeps.New(w, h), nil
	default:
		return nil, fmt.Errorf("unsupported image format '%s'", format)
	}
}

// layout holds the computed geometry shared by all strips.
type layout struct {
	height    vg.Length
	stripH    vg.Length
	cell      vg.Length
	gridLeft  vg.Length
	barLeft   vg.Length
	barWidth  vg.Length
	barBottom vg.Length
	barHeight vg.Length
}

func newLayout(grids []schema.YearGrid, height vg.Length) layout {
	weeks := grids[0].Weeks
	barWidth := barFraction * FigureWidth
	pad := barPad * FigureWidth
	gridArea := FigureWidth - 2*margin - barWidth - pad

	cell := min(gridArea/vg.Length(weeks), (StripHeight-titleHeight-2*margin)/schema.DaysPerWeek)
	gridWidth := cell * vg.Length(weeks)

	barHeight := min(height-2*margin, barAspect*barWidth)
	barWidth = min(barWidth, barHeight/barAspect)

	return layout{
		height:    height,
		stripH:    StripHeight,
		cell:      cell,
		gridLeft:  margin + (gridArea-gridWidth)/2,
		barLeft:   margin + gridArea + pad,
		barWidth:  barWidth,
		barBottom: (height - barHeight) / 2,
		barHeight: barHeight,
	}
}

// drawStrip draws the title and cells of the i-th grid from the top.
// Monday is the top row and ISO week 1 the leftmost column.
func drawStrip(dc draw.Canvas, l layout, i int, grid *schema.YearGrid, cmap *Colormap, lo, hi float64) {
	stripTop := l.height - vg.Length(i)*l.stripH
	titleStyle := draw.TextStyle{
		Color:   TitleColor,
		Font:    font.Font{Typeface: "Liberation", Variant: "Sans", Size: vg.Points(titleSizePts)},
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
	dc.FillText(titleStyle, vg.Point{X: FigureWidth / 2, Y: stripTop - margin}, TitleFor(grid.Year))

	gridTop := stripTop - margin - titleHeight
	inset := vg.Points(cellGap / 2)
	for d := range schema.DaysPerWeek {
		for w := range grid.Weeks {
			x := l.gridLeft + vg.Length(w)*l.cell
			y := gridTop - vg.Length(d+1)*l.cell
			fillRect(dc, cmap.ColorFor(grid.At(d, w+1), lo, hi), x+inset, y+inset, l.cell-2*inset, l.cell-2*inset)
		}
	}
}

// drawColorbar draws the colormap bottom to top without ticks or outline.
func drawColorbar(dc draw.Canvas, l layout, cmap *Colormap) {
	colors := cmap.Colors()
	step := l.barHeight / vg.Length(len(colors))
	for k, c := range colors {
		// Overlap neighbours slightly so vector viewers show no seams.
		fillRect(dc, c, l.barLeft, l.barBottom+vg.Length(k)*step, l.barWidth, step*1.05)
	}
}

func fillRect(dc draw.Canvas, c color.Color, x, y, w, h vg.Length) {
	dc.FillPolygon(c, []vg.Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	})
}
