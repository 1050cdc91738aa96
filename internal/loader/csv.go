// Package loader reads immersion logs from delimited text files.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
)

// Required column names.
const (
	CreatedAtColumn = "created_at"
	MediaTypeColumn = "media_type"
	AmountColumn    = "amount"
)

const utf8BOM = "\ufeff"

// CSVSource reads an immersion log from a CSV file with a header row.
type CSVSource struct {
	Path string
}

var _ contract.RecordSource = &CSVSource{} // Compile-time check

// NewCSVSource returns a RecordSource for the given path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Name implements the RecordSource interface.
func (s *CSVSource) Name() string {
	return s.Path
}

// Load implements the RecordSource interface.
func (s *CSVSource) Load(ctx context.Context) ([]schema.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, &schema.InputError{Path: s.Path, Reason: "cannot open file", Err: err}
	}
	defer func() { _ = file.Close() }()

	records, err := ReadRecords(file)
	if err != nil {
		var inputErr *schema.InputError
		if errors.As(err, &inputErr) && inputErr.Path == "" {
			inputErr.Path = s.Path
		}
		return nil, err
	}
	return records, nil
}

// ReadRecords parses CSV rows into raw records, locating columns by header name.
func ReadRecords(r io.Reader) ([]schema.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &schema.InputError{Reason: "file is empty"}
	}
	if err != nil {
		return nil, &schema.InputError{Reason: "cannot parse header", Err: err}
	}

	columns, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var records []schema.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &schema.InputError{Reason: "cannot parse rows", Err: err}
		}
		if isBlankRow(row) {
			continue
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row, columns, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// columnIndex holds the position of each required column.
type columnIndex struct {
	createdAt int
	mediaType int
	amount    int
}

// locateColumns finds the required columns in a header row.
func locateColumns(header []string) (columnIndex, error) {
	idx := columnIndex{createdAt: -1, mediaType: -1, amount: -1}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
		switch name {
		case CreatedAtColumn:
			idx.createdAt = i
		case MediaTypeColumn:
			idx.mediaType = i
		case AmountColumn:
			idx.amount = i
		}
	}

	var missing []string
	if idx.createdAt < 0 {
		missing = append(missing, CreatedAtColumn)
	}
	if idx.mediaType < 0 {
		missing = append(missing, MediaTypeColumn)
	}
	if idx.amount < 0 {
		missing = append(missing, AmountColumn)
	}
	if len(missing) > 0 {
		return idx, &schema.InputError{Reason: "missing required columns: " + strings.Join(missing, ", ")}
	}
	return idx, nil
}

// parseRow extracts a raw record from one CSV row.
func parseRow(row []string, columns columnIndex, line int) (schema.RawRecord, error) {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	amountStr := field(columns.amount)
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return schema.RawRecord{}, &schema.DataFormatError{Line: line, Column: AmountColumn, Value: amountStr, Err: err}
	}

	return schema.RawRecord{
		Line:      line,
		CreatedAt: field(columns.createdAt),
		MediaType: field(columns.mediaType),
		Amount:    amount,
	}, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
