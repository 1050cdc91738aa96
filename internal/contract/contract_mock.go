package contract

import (
	"context"

	"github.com/huangsam/heatmap/schema"
	"github.com/stretchr/testify/mock"
)

// MockRecordSource is a mock implementation of RecordSource for testing.
type MockRecordSource struct {
	mock.Mock
}

var _ RecordSource = &MockRecordSource{} // Compile-time check

// Load implements the RecordSource interface.
func (m *MockRecordSource) Load(ctx context.Context) ([]schema.RawRecord, error) {
	ret := m.Called(ctx)
	records, _ := ret.Get(0).([]schema.RawRecord)
	return records, ret.Error(1)
}

// Name implements the RecordSource interface.
func (m *MockRecordSource) Name() string {
	ret := m.Called()
	return ret.String(0)
}

// MockExportStore is a mock implementation of ExportStore for testing.
type MockExportStore struct {
	mock.Mock
}

var _ ExportStore = &MockExportStore{} // Compile-time check

// WriteExport implements the ExportStore interface.
func (m *MockExportStore) WriteExport(run schema.ExportRun, cells []schema.GridCellRow, records []schema.ScoredRecord) error {
	return m.Called(run, cells, records).Error(0)
}

// Close implements the ExportStore interface.
func (m *MockExportStore) Close() error {
	return m.Called().Error(0)
}
