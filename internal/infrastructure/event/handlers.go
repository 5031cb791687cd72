package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/venuehq/backend/internal/domain/finance"
	"github.com/venuehq/backend/internal/domain/shared"
)

// AuditLogHandler writes every domain event to the log as an audit trail
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// EventTypes returns an empty slice so the handler receives all events
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

// Handle logs the event
func (h *AuditLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("venue_id", event.VenueID().String()),
	)
	return nil
}

// VarianceAlertHandler escalates severe cash drawer variances.
// Minor and moderate variances stay at info level.
type VarianceAlertHandler struct {
	logger *zap.Logger
}

// NewVarianceAlertHandler creates a new VarianceAlertHandler
func NewVarianceAlertHandler(logger *zap.Logger) *VarianceAlertHandler {
	return &VarianceAlertHandler{logger: logger.Named("variance-alert")}
}

// EventTypes returns the event types this handler is interested in
func (h *VarianceAlertHandler) EventTypes() []string {
	return []string{finance.EventTypeCashVariance}
}

// Handle logs the variance, warning on severe
func (h *VarianceAlertHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	variance, ok := event.(*finance.CashVarianceEvent)
	if !ok {
		return nil
	}

	fields := []zap.Field{
		zap.String("venue_id", variance.VenueID().String()),
		zap.String("drawer", variance.DrawerName),
		zap.String("expected", variance.Expected.StringFixed(2)),
		zap.String("counted", variance.Counted.StringFixed(2)),
		zap.String("variance", variance.Variance.StringFixed(2)),
		zap.String("severity", string(variance.Severity)),
	}

	if variance.Severity == finance.VarianceSevere {
		h.logger.Warn("severe cash variance on drawer close", fields...)
		return nil
	}
	h.logger.Info("cash variance on drawer close", fields...)
	return nil
}

var (
	_ shared.EventHandler = (*AuditLogHandler)(nil)
	_ shared.EventHandler = (*VarianceAlertHandler)(nil)
)
