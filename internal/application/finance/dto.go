package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/finance"
)

// SessionResponse represents a cash drawer session in API responses
type SessionResponse struct {
	ID            uuid.UUID       `json:"id"`
	VenueID       uuid.UUID       `json:"venue_id"`
	DrawerName    string          `json:"drawer_name"`
	Status        string          `json:"status"`
	OpeningFloat  decimal.Decimal `json:"opening_float"`
	CashSales     decimal.Decimal `json:"cash_sales"`
	SafeDrops     decimal.Decimal `json:"safe_drops"`
	Expected      decimal.Decimal `json:"expected"`
	CountedAmount decimal.Decimal `json:"counted_amount"`
	Variance      decimal.Decimal `json:"variance"`
	Severity      string          `json:"severity,omitempty"`
	OpenedAt      time.Time       `json:"opened_at"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
}

// ToSessionResponse maps a cash session to its response DTO
func ToSessionResponse(session *finance.CashSession) SessionResponse {
	return SessionResponse{
		ID:            session.ID,
		VenueID:       session.VenueID,
		DrawerName:    session.DrawerName,
		Status:        string(session.Status),
		OpeningFloat:  session.OpeningFloat,
		CashSales:     session.CashSales,
		SafeDrops:     session.SafeDrops,
		Expected:      session.ExpectedAmount(),
		CountedAmount: session.CountedAmount,
		Variance:      session.Variance,
		Severity:      string(session.Severity),
		OpenedAt:      session.OpenedAt,
		ClosedAt:      session.ClosedAt,
	}
}

// OpenSessionRequest opens a drawer session
type OpenSessionRequest struct {
	DrawerName   string          `json:"drawer_name" binding:"required,min=1,max=128"`
	OpeningFloat decimal.Decimal `json:"opening_float" binding:"required"`
}

// RecordSaleRequest adds a cash sale to the drawer
type RecordSaleRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// RecordDropRequest moves cash from the drawer to the safe
type RecordDropRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CloseSessionRequest closes the drawer against a counted amount
type CloseSessionRequest struct {
	CountedAmount decimal.Decimal `json:"counted_amount" binding:"required"`
}
