package telemetry_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/venuehq/backend/internal/infrastructure/telemetry"
)

func newTestMetrics(t *testing.T) *telemetry.VenueMetrics {
	t.Helper()
	vm, err := telemetry.NewVenueMetrics(telemetry.VenueMetricsConfig{
		Meter:  noop.NewMeterProvider().Meter("test"),
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	return vm
}

func TestNewVenueMetrics_NilMeter(t *testing.T) {
	vm, err := telemetry.NewVenueMetrics(telemetry.VenueMetricsConfig{
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, vm)
	assert.Equal(t, "NewVenueMetrics: meter cannot be nil", err.Error())
}

func TestVenueMetrics_Record(t *testing.T) {
	vm := newTestMetrics(t)
	ctx := context.Background()
	venueID := uuid.New()

	vm.RecordTicketRouted(ctx, venueID, uuid.New())
	vm.RecordCourseFired(ctx, venueID)
	vm.RecordWaste(ctx, venueID, decimal.NewFromFloat(12.50))
	vm.RecordCardRedemption(ctx, venueID)
	vm.RecordDrawerVariance(ctx, venueID, "severe", decimal.NewFromFloat(-25.00))
	vm.RecordBelowParCount(ctx, venueID, 3)
}

func TestVenueMetrics_StopIsIdempotent(t *testing.T) {
	vm := newTestMetrics(t)
	vm.Stop()
	vm.Stop()
}
