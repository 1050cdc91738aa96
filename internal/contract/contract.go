// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/heatmap/schema"
)

// RecordSource yields the raw rows of an immersion log.
// This allows the pipeline to be tested without files on disk.
type RecordSource interface {
	// Load reads every row of the log. Implementations must release any
	// handle they open before returning.
	Load(ctx context.Context) ([]schema.RawRecord, error)

	// Name identifies the source in messages and export metadata.
	Name() string
}

// ExportStore defines the operations needed to persist one export run.
type ExportStore interface {
	// WriteExport stores the run metadata with its dense grid cells and scored
	// records. Either all of them are stored or none is.
	WriteExport(run schema.ExportRun, cells []schema.GridCellRow, records []schema.ScoredRecord) error

	// Close closes the underlying connection.
	Close() error
}
