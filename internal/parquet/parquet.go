// Package parquet exports heatmap grids and scored records to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/heatmap/schema"
	"github.com/parquet-go/parquet-go"
)

// GridCell is one weekday x week slot of a year grid.
type GridCell struct {
	// RunID identifies the export the row belongs to
	RunID string `parquet:"run_id,snappy,dict"`

	Year    int32 `parquet:"year,snappy"`
	Week    int32 `parquet:"week,snappy"`
	Weekday int32 `parquet:"weekday,snappy"` // 0 = Monday

	// Points is null for slots without any record
	Points *float64 `parquet:"points,optional,snappy"`
}

// ScoredRow is a single cleaned and scored log entry.
type ScoredRow struct {
	RunID      string    `parquet:"run_id,snappy,dict"`
	SourceLine int32     `parquet:"source_line,snappy"`
	CreatedAt  time.Time `parquet:"created_at,snappy"`
	Media      string    `parquet:"media,snappy,dict"`
	Amount     float64   `parquet:"amount,snappy"`
	Points     float64   `parquet:"points,snappy"`
	Known      bool      `parquet:"known,snappy"`
	Year       int32     `parquet:"year,snappy"`
	ISOYear    int32     `parquet:"iso_year,snappy"`
	ISOWeek    int32     `parquet:"iso_week,snappy"`
	Weekday    int32     `parquet:"weekday,snappy"`
}

// CellsPath returns the grid cell file written for an export base path.
func CellsPath(base string) string { return base + ".cells.parquet" }

// RecordsPath returns the scored record file written for an export base path.
func RecordsPath(base string) string { return base + ".records.parquet" }

// WriteExport writes grid cells and scored records next to base and returns both paths.
func WriteExport(base string, runID string, grids []schema.YearGrid, records []schema.ScoredRecord) (cellsPath, recordsPath string, err error) {
	cellsPath, recordsPath = CellsPath(base), RecordsPath(base)
	if err := WriteGridCellsParquet(ConvertGridCells(runID, schema.GridCellRows(grids)), cellsPath); err != nil {
		return "", "", fmt.Errorf("failed to write grid cells: %w", err)
	}
	if err := WriteScoredRowsParquet(ConvertScoredRecords(runID, records), recordsPath); err != nil {
		return "", "", fmt.Errorf("failed to write scored records: %w", err)
	}
	return cellsPath, recordsPath, nil
}

// WriteGridCellsParquet writes a slice of GridCell structs to a Parquet file.
func WriteGridCellsParquet(data []GridCell, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteScoredRowsParquet writes a slice of ScoredRow structs to a Parquet file.
func WriteScoredRowsParquet(data []ScoredRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows using the schema inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ConvertGridCells converts flattened grid cells for Parquet export.
func ConvertGridCells(runID string, cells []schema.GridCellRow) []GridCell {
	result := make([]GridCell, len(cells))
	for i, c := range cells {
		result[i] = GridCell{RunID: runID, Year: int32(c.Year), Week: int32(c.Week), Weekday: int32(c.Weekday)}
		if c.Observed {
			points := c.Points
			result[i].Points = &points
		}
	}
	return result
}

// ConvertScoredRecords converts scored records for Parquet export.
func ConvertScoredRecords(runID string, records []schema.ScoredRecord) []ScoredRow {
	result := make([]ScoredRow, len(records))
	for i, r := range records {
		result[i] = ScoredRow{
			RunID:      runID,
			SourceLine: int32(r.Line),
			CreatedAt:  r.CreatedAt,
			Media:      string(r.Media),
			Amount:     r.Amount,
			Points:     r.Points,
			Known:      r.Known,
			Year:       int32(r.Year),
			ISOYear:    int32(r.ISOYear),
			ISOWeek:    int32(r.ISOWeek),
			Weekday:    int32(r.Weekday),
		}
	}
	return result
}
