package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/huangsam/heatmap/schema"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGrids() []schema.YearGrid {
	g1 := schema.NewYearGrid(2023, schema.DefaultWeeks)
	g1.Cells[0][0] = schema.Cell{Points: 4, Observed: true}
	g1.Cells[6][51] = schema.Cell{Points: 0, Observed: true}
	g2 := schema.NewYearGrid(2024, schema.DefaultWeeks)
	g2.Cells[2][10] = schema.Cell{Points: 14, Observed: true}
	return []schema.YearGrid{g1, g2}
}

func TestNewColormap(t *testing.T) {
	for _, p := range schema.AllPalettes {
		t.Run(string(p), func(t *testing.T) {
			cmap, err := NewColormap(p)
			require.NoError(t, err)
			colors := cmap.Colors()
			require.Len(t, colors, ColormapSize)
			assert.Equal(t, Background, colors[0])

			// Entry 1 sits next to the darkest stop, the last entry is 70% towards the lightest.
			first, _ := colorful.MakeColor(colors[1])
			last, _ := colorful.MakeColor(colors[ColormapSize-1])
			_, _, lFirst := first.Hcl()
			_, _, lLast := last.Hcl()
			assert.Less(t, lFirst, lLast)
		})
	}

	_, err := NewColormap("viridis")
	assert.Error(t, err)
}

func TestColorFor(t *testing.T) {
	cmap, err := NewColormap(schema.GreensPalette)
	require.NoError(t, err)

	assert.Equal(t, Background, cmap.ColorFor(schema.Cell{}, 0, 10))
	assert.Equal(t, Background, cmap.ColorFor(schema.Cell{Points: 0, Observed: true}, 0, 10))
	assert.Equal(t, Background, cmap.ColorFor(schema.Cell{Points: -3, Observed: true}, -5, 10))
	assert.Equal(t, cmap.Colors()[ColormapSize-1], cmap.ColorFor(schema.Cell{Points: 10, Observed: true}, 0, 10))
	assert.Equal(t, cmap.Colors()[128], cmap.ColorFor(schema.Cell{Points: 5, Observed: true}, 0, 10))
}

func TestIndexDegenerateRange(t *testing.T) {
	cmap, err := NewColormap(schema.BluesPalette)
	require.NoError(t, err)
	assert.Equal(t, ColormapSize-1, cmap.Index(3, 3, 3))
	assert.Equal(t, 0, cmap.Index(-1, 0, 10))
	assert.Equal(t, ColormapSize-1, cmap.Index(20, 0, 10))
}

func TestScaleRange(t *testing.T) {
	lo, hi, ok := ScaleRange(sampleGrids())
	require.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 14.0, hi)

	neg := schema.NewYearGrid(2022, schema.DefaultWeeks)
	neg.Cells[1][1] = schema.Cell{Points: -2, Observed: true}
	lo, hi, ok = ScaleRange([]schema.YearGrid{neg})
	require.True(t, ok)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, -2.0, hi)

	_, _, ok = ScaleRange([]schema.YearGrid{schema.NewYearGrid(2020, schema.DefaultWeeks)})
	assert.False(t, ok)
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleGrids(), Options{Format: schema.PNGImage, Palette: schema.GreensPalette, DPI: 50})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 600, bounds.Dx())
	assert.Equal(t, 200, bounds.Dy())

	// The corner belongs to the figure background.
	r, g, b, _ := img.At(0, 0).RGBA()
	fr, fg, fb, _ := Figure.RGBA()
	assert.InDelta(t, fr>>8, r>>8, 1)
	assert.InDelta(t, fg>>8, g>>8, 1)
	assert.InDelta(t, fb>>8, b>>8, 1)
}

func TestRenderVectorFormats(t *testing.T) {
	tests := []struct {
		format schema.ImageFormat
		prefix string
	}{
		{schema.SVGImage, "<?xml"},
		{schema.PDFImage, "%PDF"},
		{schema.EPSImage, "%!PS"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, sampleGrids(), Options{Format: tt.format, Palette: schema.RedsPalette}))
			assert.True(t, strings.HasPrefix(buf.String(), tt.prefix))
		})
	}
}

func TestRenderEPSHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleGrids(), Options{Format: schema.EPSImage, Palette: schema.BluesPalette}))
	assert.True(t, strings.HasPrefix(buf.String(), epsMagic+"\n"), buf.String()[:min(buf.Len(), 40)])
}

func TestEPSHeaderWriter(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   string
	}{
		{name: "doubled percent", chunks: []string{"%%!PS-Adobe-3.0 EPSF-3.0\n", "%%EOF\n"}, want: "%!PS-Adobe-3.0 EPSF-3.0\n%%EOF\n"},
		{name: "already valid", chunks: []string{"%!PS-Adobe-3.0 EPSF-3.0\n"}, want: "%!PS-Adobe-3.0 EPSF-3.0\n"},
		{name: "later chunks untouched", chunks: []string{"x", "%%!PS-Adobe-3.0 EPSF-3.0"}, want: "x%%!PS-Adobe-3.0 EPSF-3.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ew := &epsHeaderWriter{w: &buf}
			for _, c := range tt.chunks {
				n, err := ew.Write([]byte(c))
				require.NoError(t, err)
				assert.Equal(t, len(c), n)
			}
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderSVGContainsTitles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleGrids(), Options{Format: schema.SVGImage, Palette: schema.GreensPalette}))
	assert.Contains(t, buf.String(), TitleFor(2023))
	assert.Contains(t, buf.String(), TitleFor(2024))
}

func TestRenderErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, nil, Options{Format: schema.PNGImage, Palette: schema.GreensPalette}), schema.ErrNoRecords)
	assert.Error(t, Render(&buf, sampleGrids(), Options{Format: "bmp", Palette: schema.GreensPalette}))
	assert.Error(t, Render(&buf, sampleGrids(), Options{Format: schema.PNGImage, Palette: "Magma"}))
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heatmap.png")
	require.NoError(t, RenderFile(path, sampleGrids(), Options{Format: schema.PNGImage, Palette: schema.OrangesPalette, DPI: 36}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRenderFileLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heatmap.png")
	require.Error(t, RenderFile(path, nil, Options{Format: schema.PNGImage, Palette: schema.GreensPalette}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
