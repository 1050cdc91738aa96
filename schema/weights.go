package schema

// mediaWeights is the point value per unit of amount for each media type.
var mediaWeights = map[MediaType]float64{
	ListeningMedia: 0.67,
	ReadingMedia:   1.0 / 350,
	AnimeMedia:     13,
	ReadtimeMedia:  0.67,
	VNMedia:        1.0 / 350,
	MangaMedia:     0.25,
	PageMedia:      1,
}

// WeightFor returns the point weight for a media type and whether it is known.
func WeightFor(media MediaType) (float64, bool) {
	w, ok := mediaWeights[media]
	return w, ok
}

// IsWeighted reports whether a media type appears in the weight table.
func IsWeighted(media MediaType) bool {
	_, ok := mediaWeights[media]
	return ok
}

// WeightRows returns the weight table in display order.
func WeightRows() []WeightRow {
	rows := make([]WeightRow, 0, len(AllMediaTypes))
	for _, m := range AllMediaTypes {
		rows = append(rows, WeightRow{Media: m, Weight: mediaWeights[m]})
	}
	return rows
}
