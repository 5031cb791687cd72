package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// SessionStatus represents the state of a cash drawer session
type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// VarianceSeverity bands the close-out variance
type VarianceSeverity string

const (
	VarianceBalanced VarianceSeverity = "balanced"
	VarianceMinor    VarianceSeverity = "minor"
	VarianceModerate VarianceSeverity = "moderate"
	VarianceSevere   VarianceSeverity = "severe"
)

// VarianceBands holds the absolute-variance bounds separating severities
type VarianceBands struct {
	MinorBound  decimal.Decimal // |variance| below this is minor
	SevereBound decimal.Decimal // |variance| at or above this is severe
}

// DefaultVarianceBands returns the standard close-out bands
func DefaultVarianceBands() VarianceBands {
	return VarianceBands{
		MinorBound:  decimal.NewFromInt(5),
		SevereBound: decimal.NewFromInt(20),
	}
}

// Severity classifies a signed variance amount
func (b VarianceBands) Severity(variance decimal.Decimal) VarianceSeverity {
	abs := variance.Abs()
	switch {
	case abs.IsZero():
		return VarianceBalanced
	case abs.LessThan(b.MinorBound):
		return VarianceMinor
	case abs.LessThan(b.SevereBound):
		return VarianceModerate
	default:
		return VarianceSevere
	}
}

// CashSession is the aggregate root for one drawer shift. It opens with a
// float, accumulates cash sales and safe drops, and closes against a counted
// amount.
type CashSession struct {
	shared.VenueAggregateRoot
	DrawerName    string           `gorm:"size:128;not null"`
	Status        SessionStatus    `gorm:"size:16;not null;default:'open'"`
	OpeningFloat  decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	CashSales     decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	SafeDrops     decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	CountedAmount decimal.Decimal  `gorm:"type:decimal(18,2)"`
	Variance      decimal.Decimal  `gorm:"type:decimal(18,2)"`
	Severity      VarianceSeverity `gorm:"size:16"`
	OpenedAt      time.Time        `gorm:"not null"`
	ClosedAt      *time.Time
}

// TableName returns the table name for GORM
func (CashSession) TableName() string {
	return "cash_sessions"
}

// NewCashSession opens a drawer with a starting float
func NewCashSession(venueID uuid.UUID, drawerName string, openingFloat valueobject.Money) (*CashSession, error) {
	if drawerName == "" {
		return nil, shared.NewDomainError("INVALID_DRAWER", "Drawer name is required")
	}
	if openingFloat.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FLOAT", "Opening float cannot be negative")
	}
	return &CashSession{
		VenueAggregateRoot: shared.NewVenueAggregateRoot(venueID),
		DrawerName:         drawerName,
		Status:             SessionOpen,
		OpeningFloat:       openingFloat.Amount().Round(2),
		CashSales:          decimal.Zero,
		SafeDrops:          decimal.Zero,
		OpenedAt:           time.Now(),
	}, nil
}

// RecordSale adds a cash sale to the drawer
func (s *CashSession) RecordSale(amount valueobject.Money) error {
	if s.Status != SessionOpen {
		return shared.ErrInvalidState
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Sale amount must be positive")
	}
	s.CashSales = s.CashSales.Add(amount.Amount().Round(2))
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// RecordDrop moves cash from the drawer to the safe. The drop may not exceed
// the expected drawer contents.
func (s *CashSession) RecordDrop(amount valueobject.Money) error {
	if s.Status != SessionOpen {
		return shared.ErrInvalidState
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Drop amount must be positive")
	}
	if amount.Amount().Round(2).GreaterThan(s.ExpectedAmount()) {
		return shared.NewDomainError("DROP_EXCEEDS_DRAWER", "Drop exceeds expected drawer contents")
	}
	s.SafeDrops = s.SafeDrops.Add(amount.Amount().Round(2))
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// ExpectedAmount is what the drawer should hold right now
func (s *CashSession) ExpectedAmount() decimal.Decimal {
	return s.OpeningFloat.Add(s.CashSales).Sub(s.SafeDrops)
}

// Close counts the drawer and records the variance and its severity
func (s *CashSession) Close(counted valueobject.Money, bands VarianceBands) error {
	if s.Status != SessionOpen {
		return shared.ErrInvalidState
	}
	if counted.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Counted amount cannot be negative")
	}

	now := time.Now()
	s.CountedAmount = counted.Amount().Round(2)
	s.Variance = s.CountedAmount.Sub(s.ExpectedAmount())
	s.Severity = bands.Severity(s.Variance)
	s.Status = SessionClosed
	s.ClosedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	if s.Severity != VarianceBalanced {
		s.AddDomainEvent(NewCashVarianceEvent(s))
	}
	return nil
}
