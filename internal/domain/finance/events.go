package finance

import (
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
)

// Event types emitted by the finance domain
const (
	EventTypeCashVariance = "finance.cash_variance"
)

// CashVarianceEvent is emitted when a drawer closes off-balance
type CashVarianceEvent struct {
	shared.BaseDomainEvent
	DrawerName string           `json:"drawer_name"`
	Expected   decimal.Decimal  `json:"expected"`
	Counted    decimal.Decimal  `json:"counted"`
	Variance   decimal.Decimal  `json:"variance"`
	Severity   VarianceSeverity `json:"severity"`
}

// NewCashVarianceEvent creates a CashVarianceEvent
func NewCashVarianceEvent(session *CashSession) *CashVarianceEvent {
	return &CashVarianceEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCashVariance, "CashSession", session.ID, session.VenueID),
		DrawerName:      session.DrawerName,
		Expected:        session.ExpectedAmount(),
		Counted:         session.CountedAmount,
		Variance:        session.Variance,
		Severity:        session.Severity,
	}
}
