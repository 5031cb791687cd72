package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// VenueMetrics tracks operational metrics across the venue domains:
// kitchen throughput, inventory waste, stored-value activity, and drawer
// close-out variance.
type VenueMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	ticketsRoutedTotal  *Counter
	coursesFiredTotal   *Counter
	wasteRecordedTotal  *Counter
	wasteValueTotal     *Counter
	cardRedemptionTotal *Counter
	drawerVariance      *Histogram

	belowParCount *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	stockProvider StockMetricsProvider
}

// StockMetricsProvider exposes inventory state for periodic gauge collection
// without a direct dependency on the inventory domain.
type StockMetricsProvider interface {
	// BelowParCount returns how many stock items sit below their par level
	// for the venue.
	BelowParCount(ctx context.Context, venueID uuid.UUID) (int64, error)
}

// VenueProvider supplies the venue IDs to collect gauges for
type VenueProvider interface {
	ActiveVenueIDs(ctx context.Context) ([]uuid.UUID, error)
}

// VenueMetricsConfig holds configuration for venue metrics
type VenueMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	StockProvider   StockMetricsProvider
}

// NewVenueMetrics creates a new VenueMetrics instance
func NewVenueMetrics(cfg VenueMetricsConfig) (*VenueMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	vm := &VenueMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		stockProvider: cfg.StockProvider,
	}

	var err error

	vm.ticketsRoutedTotal, err = NewCounter(
		cfg.Meter,
		"venue_kitchen_tickets_routed_total",
		"Total number of kitchen tickets routed to a station",
		"{tickets}",
	)
	if err != nil {
		return nil, err
	}

	vm.coursesFiredTotal, err = NewCounter(
		cfg.Meter,
		"venue_kitchen_courses_fired_total",
		"Total number of courses fired",
		"{courses}",
	)
	if err != nil {
		return nil, err
	}

	vm.wasteRecordedTotal, err = NewCounter(
		cfg.Meter,
		"venue_inventory_waste_total",
		"Total number of waste records",
		"{records}",
	)
	if err != nil {
		return nil, err
	}

	vm.wasteValueTotal, err = NewCounter(
		cfg.Meter,
		"venue_inventory_waste_value_total",
		"Total wasted stock value in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	vm.cardRedemptionTotal, err = NewCounter(
		cfg.Meter,
		"venue_gift_card_redemptions_total",
		"Total number of gift card redemptions",
		"{redemptions}",
	)
	if err != nil {
		return nil, err
	}

	vm.drawerVariance, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "venue_drawer_variance",
		Description: "Absolute cash drawer variance at close-out",
		Unit:        "{currency}",
		Boundaries:  []float64{1, 5, 10, 20, 50, 100},
	})
	if err != nil {
		return nil, err
	}

	vm.belowParCount, err = NewGauge(
		cfg.Meter,
		"venue_inventory_below_par_count",
		"Number of stock items below their par level",
		"{items}",
	)
	if err != nil {
		return nil, err
	}

	return vm, nil
}

// RecordTicketRouted records a ticket routed to a station
func (vm *VenueMetrics) RecordTicketRouted(ctx context.Context, venueID, stationID uuid.UUID) {
	vm.ticketsRoutedTotal.Inc(ctx,
		AttrVenueID.String(venueID.String()),
		AttrStationID.String(stationID.String()),
	)
}

// RecordCourseFired records a course firing
func (vm *VenueMetrics) RecordCourseFired(ctx context.Context, venueID uuid.UUID) {
	vm.coursesFiredTotal.Inc(ctx, AttrVenueID.String(venueID.String()))
}

// RecordWaste records a waste entry and its value.
// Value is converted to cents so the counter stays integral.
func (vm *VenueMetrics) RecordWaste(ctx context.Context, venueID uuid.UUID, value decimal.Decimal) {
	attrs := AttrVenueID.String(venueID.String())
	vm.wasteRecordedTotal.Inc(ctx, attrs)
	vm.wasteValueTotal.Add(ctx, value.Mul(decimal.NewFromInt(100)).IntPart(), attrs)
}

// RecordCardRedemption records a gift card redemption
func (vm *VenueMetrics) RecordCardRedemption(ctx context.Context, venueID uuid.UUID) {
	vm.cardRedemptionTotal.Inc(ctx, AttrVenueID.String(venueID.String()))
}

// RecordDrawerVariance records the absolute variance of a drawer close-out
func (vm *VenueMetrics) RecordDrawerVariance(ctx context.Context, venueID uuid.UUID, severity string, variance decimal.Decimal) {
	f, _ := variance.Abs().Float64()
	vm.drawerVariance.Record(ctx, f,
		AttrVenueID.String(venueID.String()),
		AttrSeverity.String(severity),
	)
}

// RecordBelowParCount records the below-par gauge for a venue
func (vm *VenueMetrics) RecordBelowParCount(ctx context.Context, venueID uuid.UUID, count int64) {
	vm.belowParCount.Record(ctx, count, AttrVenueID.String(venueID.String()))
}

// StartPeriodicCollection starts collecting the below-par gauge every interval.
// Non-blocking; use Stop() to stop collection.
func (vm *VenueMetrics) StartPeriodicCollection(ctx context.Context, venues VenueProvider, interval time.Duration) {
	vm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go vm.runPeriodicCollection(ctx, venues, interval)
	})
}

func (vm *VenueMetrics) runPeriodicCollection(ctx context.Context, venues VenueProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	vm.collectStockMetrics(ctx, venues)

	for {
		select {
		case <-vm.stopChan:
			vm.logger.Info("Stopping periodic venue metrics collection")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			vm.collectStockMetrics(ctx, venues)
		}
	}
}

func (vm *VenueMetrics) collectStockMetrics(ctx context.Context, venues VenueProvider) {
	if vm.stockProvider == nil || venues == nil {
		return
	}

	venueIDs, err := venues.ActiveVenueIDs(ctx)
	if err != nil {
		vm.logger.Error("Failed to get venue IDs for metrics collection", zap.Error(err))
		return
	}

	for _, venueID := range venueIDs {
		count, err := vm.stockProvider.BelowParCount(ctx, venueID)
		if err != nil {
			vm.logger.Warn("Failed to get below-par count for venue",
				zap.String("venue_id", venueID.String()),
				zap.Error(err),
			)
			continue
		}
		vm.RecordBelowParCount(ctx, venueID, count)
	}
}

// Stop stops the periodic collection
func (vm *VenueMetrics) Stop() {
	vm.stopOnce.Do(func() {
		close(vm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewVenueMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
