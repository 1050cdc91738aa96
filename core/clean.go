package core

import (
	"strings"
	"time"

	"github.com/huangsam/heatmap/schema"
)

// timestampLayouts are tried in order. Fractional seconds are accepted by every
// layout that carries seconds, so they need no layouts of their own.
var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15Z07:00",
	"2006-01-02T15",
	"2006-01-02",

	// Basic format, without separators.
	"20060102T150405Z07:00",
	"20060102T150405Z0700",
	"20060102T150405",
	"20060102T1504",
	"20060102T15",
	"20060102",
}

// CleanOptions controls label normalization and media filtering.
type CleanOptions struct {
	LabelFormat schema.LabelFormat
	Media       []schema.MediaType // Empty or containing AllMedia disables filtering
}

// ParseTimestamp parses an ISO-8601 date or date-time.
// The wall clock of the input is kept; a time without offset is read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CleanRecords parses timestamps, normalizes media labels and applies the media filter.
// A malformed timestamp aborts the whole batch with a DataFormatError. A non-nil
// FormatDriftWarning means labels were kept as they appeared in the file.
func CleanRecords(raw []schema.RawRecord, opts CleanOptions) ([]schema.LogRecord, *schema.FormatDriftWarning, error) {
	records := make([]schema.LogRecord, 0, len(raw))
	for _, r := range raw {
		createdAt, ok := ParseTimestamp(r.CreatedAt)
		if !ok {
			return nil, nil, &schema.DataFormatError{Line: r.Line, Column: "created_at", Value: r.CreatedAt}
		}
		records = append(records, schema.LogRecord{
			Line:      r.Line,
			CreatedAt: createdAt,
			Media:     schema.MediaType(r.MediaType),
			Amount:    r.Amount,
		})
	}

	warning := normalizeLabels(records, opts.LabelFormat)
	return filterMedia(records, opts.Media), warning, nil
}

// normalizeLabels strips the namespace prefix from every label when the chosen
// strategy allows it, then upper-cases all labels in place.
func normalizeLabels(records []schema.LogRecord, format schema.LabelFormat) *schema.FormatDriftWarning {
	drift := &schema.FormatDriftWarning{}
	for _, r := range records {
		if strings.Contains(string(r.Media), schema.LabelSeparator) {
			drift.Prefixed++
		} else {
			drift.Unprefixed++
			if drift.Example == "" {
				drift.Example = string(r.Media)
			}
		}
	}

	strip := false
	var warning *schema.FormatDriftWarning
	switch format {
	case schema.PlainLabels:
	case schema.PrefixedLabels:
		if drift.Unprefixed > 0 {
			warning = drift
		} else {
			strip = true
		}
	default:
		switch {
		case drift.Prefixed > 0 && drift.Unprefixed > 0:
			warning = drift
		case drift.Prefixed > 0:
			strip = true
		}
	}

	for i := range records {
		label := string(records[i].Media)
		if strip {
			label = strings.Split(label, schema.LabelSeparator)[1]
		}
		records[i].Media = schema.MediaType(strings.ToUpper(strings.TrimSpace(label)))
	}
	return warning
}

// filterMedia keeps records whose label is selected. Unknown labels are not rejected here.
func filterMedia(records []schema.LogRecord, media []schema.MediaType) []schema.LogRecord {
	if len(media) == 0 {
		return records
	}
	selected := make(map[schema.MediaType]struct{}, len(media))
	for _, m := range media {
		m = schema.MediaType(strings.ToUpper(string(m)))
		if m == schema.AllMedia {
			return records
		}
		selected[m] = struct{}{}
	}

	kept := records[:0]
	for _, r := range records {
		if _, ok := selected[r.Media]; ok {
			kept = append(kept, r)
		}
	}
	return kept
}
