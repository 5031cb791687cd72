package report

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMetricRepository is a mock implementation of report.MetricRepository
type MockMetricRepository struct {
	mock.Mock
}

func (m *MockMetricRepository) CohortValues(ctx context.Context, metric string, excludeVenueID uuid.UUID) ([]float64, error) {
	args := m.Called(ctx, metric, excludeVenueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockMetricRepository) RecordValue(ctx context.Context, venueID uuid.UUID, metric string, value float64) error {
	args := m.Called(ctx, venueID, metric, value)
	return args.Error(0)
}

// memoryExportStore captures exported files for assertions
type memoryExportStore struct {
	files map[string][]byte
}

func (s *memoryExportStore) Put(_ context.Context, key, _ string, body []byte) (string, error) {
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[key] = body
	return "memory://" + key, nil
}

func TestReportService_Compare(t *testing.T) {
	venueID := uuid.New()

	t.Run("benchmarks against the cohort", func(t *testing.T) {
		repo := new(MockMetricRepository)
		service := NewReportService(repo)
		cohort := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
		repo.On("CohortValues", mock.Anything, "sales_per_seat", venueID).Return(cohort, nil)

		rep, err := service.Compare(context.Background(), venueID, "sales_per_seat", 55)

		require.NoError(t, err)
		assert.Equal(t, 50.0, rep.P50)
		assert.Equal(t, 5.0, rep.DeltaToMedian)
		assert.Equal(t, 50.0, rep.Standing)
	})

	t.Run("empty cohort yields a zero report", func(t *testing.T) {
		repo := new(MockMetricRepository)
		service := NewReportService(repo)
		repo.On("CohortValues", mock.Anything, "sales_per_seat", venueID).Return([]float64{}, nil)

		rep, err := service.Compare(context.Background(), venueID, "sales_per_seat", 55)

		require.NoError(t, err)
		assert.Zero(t, rep.CohortSize)
		assert.Zero(t, rep.P50)
	})

	t.Run("rejects a missing metric name", func(t *testing.T) {
		service := NewReportService(new(MockMetricRepository))

		_, err := service.Compare(context.Background(), venueID, "", 55)

		require.Error(t, err)
	})
}

func TestReportService_ExportComparison(t *testing.T) {
	venueID := uuid.New()

	t.Run("writes a CSV to the export store", func(t *testing.T) {
		repo := new(MockMetricRepository)
		service := NewReportService(repo)
		store := &memoryExportStore{}
		service.SetExportStore(store)
		repo.On("CohortValues", mock.Anything, "covers", venueID).Return([]float64{100, 200, 300}, nil)

		location, err := service.ExportComparison(context.Background(), venueID, "covers", 250)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(location, "memory://benchmarks/"))
		require.Len(t, store.files, 1)
		for _, body := range store.files {
			assert.Contains(t, string(body), "metric,cohort_size,venue_value")
			assert.Contains(t, string(body), "covers,3,250")
		}
	})

	t.Run("fails without an export store", func(t *testing.T) {
		service := NewReportService(new(MockMetricRepository))

		_, err := service.ExportComparison(context.Background(), venueID, "covers", 250)

		require.Error(t, err)
	})
}
