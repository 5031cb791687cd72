package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/report"
	"github.com/venuehq/backend/internal/domain/shared"
)

// ExportStore persists generated report files and returns their location
type ExportStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// ReportService serves venue-vs-cohort benchmark comparisons
type ReportService struct {
	metricRepo report.MetricRepository
	exports    ExportStore
}

// NewReportService creates a new ReportService
func NewReportService(metricRepo report.MetricRepository) *ReportService {
	return &ReportService{metricRepo: metricRepo}
}

// SetExportStore enables CSV exports
func (s *ReportService) SetExportStore(store ExportStore) {
	s.exports = store
}

// RecordMetric upserts a venue's latest value for a metric
func (s *ReportService) RecordMetric(ctx context.Context, venueID uuid.UUID, metric string, value float64) error {
	if metric == "" {
		return shared.NewDomainError("INVALID_METRIC", "Metric name is required")
	}
	return s.metricRepo.RecordValue(ctx, venueID, metric, value)
}

// Compare benchmarks a venue's value against the rest of the cohort
func (s *ReportService) Compare(ctx context.Context, venueID uuid.UUID, metric string, venueValue float64) (*report.BenchmarkReport, error) {
	if metric == "" {
		return nil, shared.NewDomainError("INVALID_METRIC", "Metric name is required")
	}

	cohort, err := s.metricRepo.CohortValues(ctx, metric, venueID)
	if err != nil {
		return nil, err
	}

	rep := report.CompareToCohort(metric, venueValue, cohort)
	return &rep, nil
}

// ExportComparison writes a benchmark comparison as CSV to the export store
// and returns its location
func (s *ReportService) ExportComparison(ctx context.Context, venueID uuid.UUID, metric string, venueValue float64) (string, error) {
	if s.exports == nil {
		return "", shared.NewDomainError("EXPORTS_DISABLED", "No export store is configured")
	}

	rep, err := s.Compare(ctx, venueID, metric, venueValue)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	records := [][]string{
		{"metric", "cohort_size", "venue_value", "p25", "p50", "p75", "p90", "standing", "delta_to_median"},
		{
			rep.Metric,
			strconv.Itoa(rep.CohortSize),
			formatFloat(rep.VenueValue),
			formatFloat(rep.P25),
			formatFloat(rep.P50),
			formatFloat(rep.P75),
			formatFloat(rep.P90),
			formatFloat(rep.Standing),
			formatFloat(rep.DeltaToMedian),
		},
	}
	if err := w.WriteAll(records); err != nil {
		return "", err
	}

	key := fmt.Sprintf("benchmarks/%s/%s-%s.csv", venueID, metric, time.Now().UTC().Format("20060102T150405"))
	return s.exports.Put(ctx, key, "text/csv", buf.Bytes())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
