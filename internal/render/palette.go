package render

import (
	"fmt"
	"image/color"

	"github.com/huangsam/heatmap/schema"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
)

// Colormap layout.
const (
	ColormapSize = 256
	truncateHigh = 0.7 // fraction of the reversed base map that is kept
)

// brewerStops are the 9-class ColorBrewer sequences from lightest to darkest.
var brewerStops = map[schema.Palette][]string{
	schema.GreensPalette:  {"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b"},
	schema.BluesPalette:   {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"},
	schema.RedsPalette:    {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"},
	schema.PurplesPalette: {"#fcfbfd", "#efedf5", "#dadaeb", "#bcbddc", "#9e9ac8", "#807dba", "#6a51a3", "#54278f", "#3f007d"},
	schema.OrangesPalette: {"#fff5eb", "#fee6ce", "#fdd0a2", "#fdae6b", "#fd8d3c", "#f16913", "#d94801", "#a63603", "#7f2704"},
}

// Fixed figure colors.
var (
	Background = mustHex(schema.BackgroundColor)
	Figure     = mustHex(schema.FigureColor)
	TitleColor = color.White
)

// Colormap is a lookup table from normalized values to colors.
// Entry 0 is the background so that the lowest values blend into empty cells.
type Colormap struct {
	colors []color.Color
}

var _ palette.Palette = &Colormap{}

// NewColormap builds the reversed, truncated lookup table for a palette.
func NewColormap(p schema.Palette) (*Colormap, error) {
	hexes, ok := brewerStops[p]
	if !ok {
		return nil, fmt.Errorf("unknown palette '%s'", p)
	}

	// Reverse so the darkest shade comes first.
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		stops[len(hexes)-1-i] = mustHex(h)
	}

	colors := make([]color.Color, ColormapSize)
	for k := range ColormapSize {
		x := truncateHigh * float64(k) / float64(ColormapSize-1)
		colors[k] = interpolate(stops, x)
	}
	colors[0] = Background
	return &Colormap{colors: colors}, nil
}

// Colors implements palette.Palette.
func (c *Colormap) Colors() []color.Color {
	return c.colors
}

// ColorFor maps a cell onto the colormap using the shared [lo, hi] scale.
// Unobserved cells and values at or below zero use the background color.
func (c *Colormap) ColorFor(cell schema.Cell, lo, hi float64) color.Color {
	v, ok := cell.Value()
	if !ok || v <= 0 {
		return Background
	}
	return c.colors[c.Index(v, lo, hi)]
}

// Index returns the lookup table entry for v on the [lo, hi] scale.
func (c *Colormap) Index(v, lo, hi float64) int {
	t := 1.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	idx := int(t * float64(len(c.colors)))
	return max(0, min(idx, len(c.colors)-1))
}

// interpolate samples evenly spaced stops at x in [0, 1], blending in RGB.
func interpolate(stops []colorful.Color, x float64) colorful.Color {
	pos := x * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	return stops[i].BlendRgb(stops[i+1], pos-float64(i)).Clamped()
}

// ScaleRange returns the color scale shared by all grids: from min(0, lowest
// observed value) to the highest observed value. ok is false when no cell is observed.
func ScaleRange(grids []schema.YearGrid) (lo, hi float64, ok bool) {
	for i := range grids {
		glo, ghi, gok := grids[i].Range()
		if !gok {
			continue
		}
		if !ok {
			lo, hi, ok = glo, ghi, true
			continue
		}
		lo = min(lo, glo)
		hi = max(hi, ghi)
	}
	return min(lo, 0), hi, ok
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
