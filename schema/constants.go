package schema

// Custom string types for type safety.
type (
	// MediaType represents a category of immersion activity.
	MediaType string

	// Palette represents the base color map used by the renderer.
	Palette string

	// OutputMode represents the format of textual and tabular output.
	OutputMode string

	// ImageFormat represents the encoding of the rendered heatmap.
	ImageFormat string

	// LabelFormat represents how media_type labels are normalized.
	LabelFormat string

	// YearMode represents how scored records are bucketed into years.
	YearMode string
)

// All media types that carry a weight.
const (
	ListeningMedia MediaType = "LISTENING"
	ReadingMedia   MediaType = "READING"
	AnimeMedia     MediaType = "ANIME"
	ReadtimeMedia  MediaType = "READTIME"
	VNMedia        MediaType = "VN"
	MangaMedia     MediaType = "MANGA"
	PageMedia      MediaType = "PAGE"

	// AllMedia disables media filtering.
	AllMedia MediaType = "ALL"
)

// All palettes supported.
const (
	GreensPalette  Palette = "Greens" // default
	BluesPalette   Palette = "Blues"
	RedsPalette    Palette = "Reds"
	PurplesPalette Palette = "Purples"
	OrangesPalette Palette = "Oranges"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	SQLiteOut  OutputMode = "sqlite"
)

// All image formats supported, keyed by file extension.
const (
	PNGImage  ImageFormat = "png"
	JPEGImage ImageFormat = "jpg"
	TIFFImage ImageFormat = "tiff"
	SVGImage  ImageFormat = "svg"
	PDFImage  ImageFormat = "pdf"
	EPSImage  ImageFormat = "eps"
)

// All label formats supported.
const (
	AutoLabels     LabelFormat = "auto" // default
	PrefixedLabels LabelFormat = "prefixed"
	PlainLabels    LabelFormat = "plain"
)

// All year modes supported.
const (
	CalendarYear YearMode = "calendar" // default
	ISOYear      YearMode = "iso"
)

// LabelSeparator splits a namespace prefix from a media label, e.g. "ENUM.READING".
const LabelSeparator = "."

// Grid dimensions.
const (
	DaysPerWeek     = 7
	DefaultWeeks    = 52
	ExtendedWeeks   = 53
	BackgroundColor = "#222222" // no data and zero
	FigureColor     = "#2c2c2d" // figure, gaps between cells
)

// AllMediaTypes lists weighted media types in display order.
var AllMediaTypes = []MediaType{
	ListeningMedia, ReadingMedia, AnimeMedia, ReadtimeMedia, VNMedia, MangaMedia, PageMedia,
}

// AllPalettes lists palettes in display order.
var AllPalettes = []Palette{GreensPalette, BluesPalette, RedsPalette, PurplesPalette, OrangesPalette}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
	SQLiteOut:  {},
}

// ImageExtensions maps lowercase file extensions to image formats.
var ImageExtensions = map[string]ImageFormat{
	".png":  PNGImage,
	".jpg":  JPEGImage,
	".jpeg": JPEGImage,
	".tif":  TIFFImage,
	".tiff": TIFFImage,
	".svg":  SVGImage,
	".pdf":  PDFImage,
	".eps":  EPSImage,
}

// ValidLabelFormats lists all valid label formats.
var ValidLabelFormats = map[LabelFormat]struct{}{
	AutoLabels:     {},
	PrefixedLabels: {},
	PlainLabels:    {},
}

// ValidYearModes lists all valid year modes.
var ValidYearModes = map[YearMode]struct{}{
	CalendarYear: {},
	ISOYear:      {},
}
