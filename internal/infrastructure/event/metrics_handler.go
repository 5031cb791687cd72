package event

import (
	"context"

	"github.com/venuehq/backend/internal/domain/finance"
	"github.com/venuehq/backend/internal/domain/giftcard"
	"github.com/venuehq/backend/internal/domain/inventory"
	"github.com/venuehq/backend/internal/domain/kitchen"
	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/infrastructure/telemetry"
)

// MetricsHandler bridges domain events into the venue metrics instruments
type MetricsHandler struct {
	metrics *telemetry.VenueMetrics
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(metrics *telemetry.VenueMetrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// EventTypes returns the event types this handler is interested in
func (h *MetricsHandler) EventTypes() []string {
	return []string{
		kitchen.EventTypeTicketRouted,
		kitchen.EventTypeCourseFired,
		inventory.EventTypeWasteRecorded,
		giftcard.EventTypeCardRedeemed,
		finance.EventTypeCashVariance,
	}
}

// Handle records the matching instrument for the event
func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *kitchen.TicketRoutedEvent:
		h.metrics.RecordTicketRouted(ctx, e.VenueID(), e.StationID)
	case *kitchen.CourseFiredEvent:
		h.metrics.RecordCourseFired(ctx, e.VenueID())
	case *inventory.WasteRecordedEvent:
		h.metrics.RecordWaste(ctx, e.VenueID(), e.Value)
	case *giftcard.CardRedeemedEvent:
		h.metrics.RecordCardRedemption(ctx, e.VenueID())
	case *finance.CashVarianceEvent:
		h.metrics.RecordDrawerVariance(ctx, e.VenueID(), string(e.Severity), e.Variance)
	}
	return nil
}

var _ shared.EventHandler = (*MetricsHandler)(nil)
