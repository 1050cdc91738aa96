// Package dbexport writes heatmap exports into a single SQLite file.
package dbexport

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// Table names written by the export.
const (
	runsTable    = "heatmap_export_runs"
	cellsTable   = "heatmap_grid_cells"
	recordsTable = "heatmap_scored_records"
)

// Store implements contract.ExportStore on top of SQLite.
type Store struct {
	db *sql.DB
}

var _ contract.ExportStore = &Store{} // Compile-time check

// Open creates or opens the SQLite file at path and brings its schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w", path, err)
	}
	// A single connection avoids "database is locked" errors.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database at %q: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// WriteExport stores a run with its grid cells and scored records in one
// transaction. Nothing of the run is kept when any insert fails.
func (s *Store) WriteExport(run schema.ExportRun, cells []schema.GridCellRow, records []schema.ScoredRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeRun(tx, run); err != nil {
		return err
	}
	if err := writeGridCells(tx, run.RunID, cells); err != nil {
		return fmt.Errorf("failed to insert grid cells: %w", err)
	}
	if err := writeScoredRecords(tx, run.RunID, records); err != nil {
		return fmt.Errorf("failed to insert scored records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func writeRun(tx *sql.Tx, run schema.ExportRun) error {
	query := fmt.Sprintf(`INSERT INTO %s (run_id, created_at, input_path, media, year_mode, weeks, record_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, runsTable)
	_, err := tx.Exec(query,
		run.RunID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.InputPath,
		run.Media,
		string(run.YearMode),
		run.Weeks,
		run.RecordCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert export run: %w", err)
	}
	return nil
}

// writeGridCells stores every grid cell; unobserved cells get a NULL points value.
func writeGridCells(tx *sql.Tx, runID string, rows []schema.GridCellRow) error {
	query := fmt.Sprintf(`INSERT INTO %s (run_id, year, week, weekday, points) VALUES (?, ?, ?, ?, ?)`, cellsTable)
	return insertAll(tx, query, len(rows), func(stmt *sql.Stmt, i int) error {
		r := rows[i]
		var points sql.NullFloat64
		if r.Observed {
			points = sql.NullFloat64{Float64: r.Points, Valid: true}
		}
		_, err := stmt.Exec(runID, r.Year, r.Week, r.Weekday, points)
		return err
	})
}

func writeScoredRecords(tx *sql.Tx, runID string, records []schema.ScoredRecord) error {
	query := fmt.Sprintf(`INSERT INTO %s (run_id, source_line, created_at, media, amount, points, known, year, iso_year, iso_week, weekday)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, recordsTable)
	return insertAll(tx, query, len(records), func(stmt *sql.Stmt, i int) error {
		r := records[i]
		_, err := stmt.Exec(runID, r.Line, r.CreatedAt.Format(time.RFC3339Nano), string(r.Media),
			r.Amount, r.Points, r.Known, r.Year, r.ISOYear, r.ISOWeek, r.Weekday)
		return err
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// insertAll runs one prepared statement n times inside tx.
func insertAll(tx *sql.Tx, query string, n int, exec func(*sql.Stmt, int) error) error {
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range n {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	return nil
}
