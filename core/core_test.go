package core

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/heatmap/internal/contract"
	"github.com/huangsam/heatmap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func exampleRows() []schema.RawRecord {
	return []schema.RawRecord{
		raw(2, "2024-01-03T10:00:00", "ENUM.READING", 350),
		raw(3, "2024-01-03T11:00:00", "ENUM.ANIME", 1),
	}
}

func newSource(rows []schema.RawRecord, err error) *contract.MockRecordSource {
	source := &contract.MockRecordSource{}
	source.On("Load", mock.Anything).Return(rows, err)
	source.On("Name").Return("data/log.csv")
	return source
}

func testConfig(t *testing.T, input *contract.ConfigRawInput) *contract.Config {
	t.Helper()
	cfg := &contract.Config{}
	require.NoError(t, contract.ProcessAndValidate(cfg, input))
	return cfg
}

func TestBuildHeatmapExample(t *testing.T) {
	cfg := testConfig(t, &contract.ConfigRawInput{})
	source := newSource(exampleRows(), nil)

	output, err := BuildHeatmap(context.Background(), cfg, source)
	require.NoError(t, err)
	source.AssertExpectations(t)

	require.Len(t, output.Records, 2)
	assert.Equal(t, schema.ReadingMedia, output.Records[0].Media)
	assert.Equal(t, schema.AnimeMedia, output.Records[1].Media)

	require.Len(t, output.Grids, 1)
	g := output.Grids[0]
	assert.Equal(t, 2024, g.Year)
	assert.InDelta(t, 14.0, g.At(2, 1).Points, 1e-9)
	assert.Equal(t, 1, observedCells(g))
}

func TestBuildHeatmapFiltering(t *testing.T) {
	rows := append(exampleRows(), raw(4, "2024-01-03T12:00:00", "ENUM.READING", 700))

	reading, err := BuildHeatmap(context.Background(), testConfig(t, &contract.ConfigRawInput{Media: "READING"}), newSource(rows, nil))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, reading.Grids[0].At(2, 1).Points, 1e-9)

	all, err := BuildHeatmap(context.Background(), testConfig(t, &contract.ConfigRawInput{Media: "ALL"}), newSource(rows, nil))
	require.NoError(t, err)
	unfiltered, err := BuildHeatmap(context.Background(), testConfig(t, &contract.ConfigRawInput{}), newSource(rows, nil))
	require.NoError(t, err)
	assert.Equal(t, unfiltered.Grids, all.Grids)
	assert.InDelta(t, 16.0, all.Grids[0].At(2, 1).Points, 1e-9)
}

func TestBuildHeatmapMalformedTimestamp(t *testing.T) {
	rows := append(exampleRows(), raw(4, "2024/01/05 10:00", "ENUM.READING", 1))

	output, err := BuildHeatmap(context.Background(), testConfig(t, &contract.ConfigRawInput{}), newSource(rows, nil))
	assert.Nil(t, output)
	var formatErr *schema.DataFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 4, formatErr.Line)
}

func TestBuildHeatmapLoadError(t *testing.T) {
	loadErr := &schema.InputError{Path: "missing.csv", Reason: "cannot open file"}
	_, err := BuildHeatmap(context.Background(), testConfig(t, &contract.ConfigRawInput{}), newSource(nil, loadErr))
	assert.ErrorIs(t, err, loadErr)
}

func TestBuildHeatmapWarnings(t *testing.T) {
	var buf bytes.Buffer
	contract.SetLogOutput(&buf)
	t.Cleanup(func() { contract.SetLogOutput(os.Stderr) })

	rows := []schema.RawRecord{
		raw(2, "2020-12-31T10:00:00", "ENUM.READING", 350),
		raw(3, "2020-06-01T10:00:00", "PODCAST", 1),
	}
	output, err := BuildHeatmap(context.Background(), testConfig(t, &contract.ConfigRawInput{}), newSource(rows, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, output.Stats.DroppedWeek53)

	logs := buf.String()
	assert.Contains(t, logs, "logging format has changed")
	assert.Contains(t, logs, "ENUM.READING has no weight")
	assert.Contains(t, logs, "Dropped 1 record(s) in ISO week 53")
}

func TestBuildHeatmapLogsMediaFilter(t *testing.T) {
	var buf bytes.Buffer
	contract.SetLogOutput(&buf)
	contract.SetVerbose(true)
	t.Cleanup(func() {
		contract.SetVerbose(false)
		contract.SetLogOutput(os.Stderr)
	})

	_, err := BuildHeatmap(context.Background(), testConfig(t, &contract.ConfigRawInput{Media: "anime"}), newSource(exampleRows(), nil))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Cleaned records")
	assert.Contains(t, buf.String(), "ANIME")

	buf.Reset()
	_, err = BuildHeatmap(context.Background(), testConfig(t, &contract.ConfigRawInput{}), newSource(exampleRows(), nil))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Cleaned records")
	assert.NotContains(t, buf.String(), "media")
}

func TestBuildHeatmapStrictCategories(t *testing.T) {
	rows := []schema.RawRecord{raw(2, "2024-01-03", "ENUM.PODCAST", 1)}
	cfg := testConfig(t, &contract.ConfigRawInput{Strict: true})

	_, err := BuildHeatmap(context.Background(), cfg, newSource(rows, nil))
	var unknownErr *schema.UnknownCategoryError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, schema.MediaType("PODCAST"), unknownErr.Media)
}

func TestBuildHeatmapIdempotent(t *testing.T) {
	cfg := testConfig(t, &contract.ConfigRawInput{})
	first, err := BuildHeatmap(context.Background(), cfg, newSource(exampleRows(), nil))
	require.NoError(t, err)
	second, err := BuildHeatmap(context.Background(), cfg, newSource(exampleRows(), nil))
	require.NoError(t, err)
	assert.Equal(t, first.Grids, second.Grids)
}

func TestExecuteRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heatmap.svg")
	cfg := testConfig(t, &contract.ConfigRawInput{})
	require.NoError(t, contract.ValidateRenderTarget(cfg, &contract.ConfigRawInput{Output: path}))

	require.NoError(t, ExecuteRender(context.Background(), cfg, newSource(exampleRows(), nil)))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Immersion Heatmap - 2024")
}

func TestExecuteRenderNothingLeft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heatmap.png")
	cfg := testConfig(t, &contract.ConfigRawInput{Media: "MANGA"})
	require.NoError(t, contract.ValidateRenderTarget(cfg, &contract.ConfigRawInput{Output: path}))

	err := ExecuteRender(context.Background(), cfg, newSource(exampleRows(), nil))
	assert.ErrorIs(t, err, schema.ErrNoRecords)
	assert.NoFileExists(t, path)
}

func TestExecuteSummaryAndWeights(t *testing.T) {
	dir := t.TempDir()

	cfg := testConfig(t, &contract.ConfigRawInput{})
	require.NoError(t, contract.ValidateOutputFormat(cfg, &contract.ConfigRawInput{Format: "json", OutputFile: filepath.Join(dir, "summary.json")}, schema.TextOut, schema.CSVOut, schema.JSONOut))
	require.NoError(t, ExecuteSummary(context.Background(), cfg, newSource(exampleRows(), nil)))
	assert.FileExists(t, cfg.OutputFile)

	require.NoError(t, contract.ValidateOutputFormat(cfg, &contract.ConfigRawInput{Format: "csv", OutputFile: filepath.Join(dir, "weights.csv")}, schema.TextOut, schema.CSVOut, schema.JSONOut))
	require.NoError(t, ExecuteWeights(cfg))
	assert.FileExists(t, cfg.OutputFile)
}

func TestExecuteExportFormats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		format schema.OutputMode
		file   string
		expect []string
	}{
		{schema.CSVOut, "cells.csv", []string{"cells.csv"}},
		{schema.JSONOut, "export.json", []string{"export.json"}},
		{schema.ParquetOut, "export", []string{"export.cells.parquet", "export.records.parquet"}},
		{schema.SQLiteOut, "export.sqlite", []string{"export.sqlite"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			cfg := testConfig(t, &contract.ConfigRawInput{})
			input := &contract.ConfigRawInput{Format: string(tt.format), OutputFile: filepath.Join(dir, tt.file)}
			require.NoError(t, contract.ValidateOutputFormat(cfg, input, schema.CSVOut, schema.JSONOut, schema.ParquetOut, schema.SQLiteOut))

			require.NoError(t, ExecuteExport(context.Background(), cfg, newSource(exampleRows(), nil)))
			for _, f := range tt.expect {
				assert.FileExists(t, filepath.Join(dir, f))
			}
		})
	}
}

func TestExecuteExportSQLiteAppendsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.sqlite")
	cfg := testConfig(t, &contract.ConfigRawInput{})
	require.NoError(t, contract.ValidateOutputFormat(cfg, &contract.ConfigRawInput{Format: "sqlite", OutputFile: path}, schema.SQLiteOut))

	for range 2 {
		require.NoError(t, ExecuteExport(context.Background(), cfg, newSource(exampleRows(), nil)))
	}

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var runs, cells int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM heatmap_export_runs`).Scan(&runs))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM heatmap_grid_cells`).Scan(&cells))
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2*schema.DaysPerWeek*schema.DefaultWeeks, cells)
}

func TestExecuteExportRequiresOutputFile(t *testing.T) {
	for _, format := range []string{"parquet", "sqlite"} {
		cfg := testConfig(t, &contract.ConfigRawInput{})
		require.NoError(t, contract.ValidateOutputFormat(cfg, &contract.ConfigRawInput{Format: format}, schema.ParquetOut, schema.SQLiteOut))
		assert.Error(t, ExecuteExport(context.Background(), cfg, newSource(exampleRows(), nil)))
	}
}

func TestNewExportRun(t *testing.T) {
	cfg := testConfig(t, &contract.ConfigRawInput{Media: "reading,anime", Week53: true})
	output := &schema.HeatmapOutput{Records: make([]schema.ScoredRecord, 3)}

	run := NewExportRun(cfg, "data/log.csv", output)
	assert.Len(t, run.RunID, 36)
	assert.Equal(t, "data/log.csv", run.InputPath)
	assert.Equal(t, "READING,ANIME", run.Media)
	assert.Equal(t, schema.ExtendedWeeks, run.Weeks)
	assert.Equal(t, 3, run.RecordCount)
	assert.False(t, run.CreatedAt.IsZero())

	assert.NotEqual(t, run.RunID, NewExportRun(cfg, "data/log.csv", output).RunID)
}

func TestWriteExportStore(t *testing.T) {
	grid := schema.NewYearGrid(2024, schema.DefaultWeeks)
	output := &schema.HeatmapOutput{Grids: []schema.YearGrid{grid}, Records: []schema.ScoredRecord{{Points: 1}}}
	run := schema.ExportRun{RunID: "run-1"}

	store := &contract.MockExportStore{}
	store.On("WriteExport", run, mock.MatchedBy(func(cells []schema.GridCellRow) bool {
		return len(cells) == schema.DaysPerWeek*schema.DefaultWeeks
	}), output.Records).Return(nil).Once()

	require.NoError(t, WriteExportStore(store, run, output))
	store.AssertExpectations(t)
}

func TestWriteExportStoreReturnsError(t *testing.T) {
	run := schema.ExportRun{RunID: "run-1"}
	failure := errors.New("disk full")

	store := &contract.MockExportStore{}
	store.On("WriteExport", run, mock.Anything, mock.Anything).Return(failure).Once()

	err := WriteExportStore(store, run, &schema.HeatmapOutput{})
	assert.ErrorIs(t, err, failure)
	store.AssertExpectations(t)
}
