package report

import (
	"context"

	"github.com/google/uuid"
)

// MetricRepository provides cohort metric series for benchmarking
type MetricRepository interface {
	// CohortValues returns every venue's latest value for the metric,
	// excluding the requesting venue
	CohortValues(ctx context.Context, metric string, excludeVenueID uuid.UUID) ([]float64, error)
	// RecordValue upserts a venue's latest value for the metric
	RecordValue(ctx context.Context, venueID uuid.UUID, metric string, value float64) error
}
