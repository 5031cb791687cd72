package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/venuehq/backend/internal/domain/report"
)

// VenueMetric is the persistence model for a venue's latest value of a
// benchmark metric. One row per venue per metric.
type VenueMetric struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	VenueID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_venue_metric,priority:1"`
	Metric     string    `gorm:"size:128;not null;uniqueIndex:idx_venue_metric,priority:2"`
	Value      float64   `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VenueMetric) TableName() string {
	return "venue_metrics"
}

// GormMetricRepository implements report.MetricRepository using GORM
type GormMetricRepository struct {
	db *gorm.DB
}

// NewGormMetricRepository creates a new GormMetricRepository
func NewGormMetricRepository(db *gorm.DB) *GormMetricRepository {
	return &GormMetricRepository{db: db}
}

// CohortValues returns every venue's latest value for the metric,
// excluding the requesting venue
func (r *GormMetricRepository) CohortValues(ctx context.Context, metric string, excludeVenueID uuid.UUID) ([]float64, error) {
	var values []float64
	if err := r.db.WithContext(ctx).
		Model(&VenueMetric{}).
		Where("metric = ? AND venue_id <> ?", metric, excludeVenueID).
		Pluck("value", &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// RecordValue upserts a venue's latest value for the metric
func (r *GormMetricRepository) RecordValue(ctx context.Context, venueID uuid.UUID, metric string, value float64) error {
	row := VenueMetric{
		ID:         uuid.New(),
		VenueID:    venueID,
		Metric:     metric,
		Value:      value,
		RecordedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "venue_id"}, {Name: "metric"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "recorded_at"}),
		}).
		Create(&row).Error
}

// Ensure GormMetricRepository implements report.MetricRepository
var _ report.MetricRepository = (*GormMetricRepository)(nil)
