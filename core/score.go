package core

import (
	"github.com/huangsam/heatmap/schema"
)

// ScoreRecords converts amounts into points and derives calendar coordinates.
// Media types missing from the weight table contribute zero points and are returned
// once each, in order of first appearance. With strict set, the first unknown media
// type aborts scoring with an UnknownCategoryError.
func ScoreRecords(records []schema.LogRecord, strict bool) ([]schema.ScoredRecord, []schema.MediaType, error) {
	scored := make([]schema.ScoredRecord, 0, len(records))
	var unknown []schema.MediaType
	seen := make(map[schema.MediaType]struct{})

	for _, r := range records {
		weight, known := schema.WeightFor(r.Media)
		if !known {
			if strict {
				return nil, nil, &schema.UnknownCategoryError{Line: r.Line, Media: r.Media}
			}
			if _, ok := seen[r.Media]; !ok {
				seen[r.Media] = struct{}{}
				unknown = append(unknown, r.Media)
			}
		}
		scored = append(scored, scoreRecord(r, weight, known))
	}
	return scored, unknown, nil
}

func scoreRecord(r schema.LogRecord, weight float64, known bool) schema.ScoredRecord {
	isoYear, isoWeek := r.CreatedAt.ISOWeek()
	points := 0.0
	if known {
		points = weight * r.Amount
	}
	return schema.ScoredRecord{
		LogRecord: r,
		Points:    points,
		Known:     known,
		Year:      r.CreatedAt.Year(),
		ISOYear:   isoYear,
		ISOWeek:   isoWeek,
		Weekday:   isoWeekday(r.CreatedAt.Weekday()),
	}
}
