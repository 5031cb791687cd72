package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// PlanStatus represents the lifecycle state of an installment plan
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusSettled   PlanStatus = "settled"
	PlanStatusCancelled PlanStatus = "cancelled"
)

// InstallmentStatus represents the state of a single installment
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
)

// InstallmentPlan is the aggregate root for buy-now-pay-later plans.
// The plan total is split into cent-safe installments: earlier installments
// absorb remainder cents so the parts always sum to the total.
type InstallmentPlan struct {
	shared.VenueAggregateRoot
	OrderRef    string          `gorm:"size:128;not null;index"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status      PlanStatus      `gorm:"size:16;not null;default:'active'"`
	IntervalDay int             `gorm:"not null;default:30"` // Days between due dates

	Installments []Installment `gorm:"foreignKey:PlanID;references:ID"`
}

// TableName returns the table name for GORM
func (InstallmentPlan) TableName() string {
	return "installment_plans"
}

// Installment is one scheduled payment within a plan
type Installment struct {
	shared.BaseEntity
	PlanID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Sequence int               `gorm:"not null"` // 1-based
	Amount   decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	DueAt    time.Time         `gorm:"not null"`
	Status   InstallmentStatus `gorm:"size:16;not null;default:'pending'"`
	PaidAt   *time.Time
}

// TableName returns the table name for GORM
func (Installment) TableName() string {
	return "installments"
}

// NewInstallmentPlan creates a plan splitting the total over count installments
func NewInstallmentPlan(venueID uuid.UUID, orderRef string, total valueobject.Money, count, intervalDays int) (*InstallmentPlan, error) {
	if orderRef == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_REF", "Order reference is required")
	}
	if !total.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Plan total must be positive")
	}
	if count < 2 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENTS", "A plan requires at least two installments")
	}
	if intervalDays <= 0 {
		intervalDays = 30
	}

	parts, err := total.Allocate(count)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INSTALLMENTS", err.Error())
	}

	plan := &InstallmentPlan{
		VenueAggregateRoot: shared.NewVenueAggregateRoot(venueID),
		OrderRef:           orderRef,
		Total:              total.Amount().Round(2),
		Status:             PlanStatusActive,
		IntervalDay:        intervalDays,
		Installments:       make([]Installment, 0, count),
	}

	now := time.Now()
	for i, part := range parts {
		plan.Installments = append(plan.Installments, Installment{
			BaseEntity: shared.NewBaseEntity(),
			PlanID:     plan.ID,
			Sequence:   i + 1,
			Amount:     part.Amount(),
			DueAt:      now.AddDate(0, 0, i*intervalDays),
			Status:     InstallmentPending,
		})
	}

	plan.AddDomainEvent(NewPlanCreatedEvent(plan))
	return plan, nil
}

// PayInstallment marks the installment with the given sequence as paid.
// Installments must be paid in order; paying the final one settles the plan.
func (p *InstallmentPlan) PayInstallment(sequence int) error {
	if p.Status != PlanStatusActive {
		return shared.ErrInvalidState
	}

	var target *Installment
	for i := range p.Installments {
		inst := &p.Installments[i]
		if inst.Sequence < sequence && inst.Status != InstallmentPaid {
			return shared.NewDomainError("OUT_OF_ORDER", "Earlier installments must be paid first")
		}
		if inst.Sequence == sequence {
			target = inst
		}
	}
	if target == nil {
		return shared.ErrNotFound
	}
	if target.Status == InstallmentPaid {
		return shared.NewDomainError("ALREADY_PAID", "Installment is already paid")
	}

	now := time.Now()
	target.Status = InstallmentPaid
	target.PaidAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	if p.outstanding().IsZero() {
		p.Status = PlanStatusSettled
		p.AddDomainEvent(NewPlanSettledEvent(p))
	}
	return nil
}

// Cancel voids an active plan with no paid installments
func (p *InstallmentPlan) Cancel() error {
	if p.Status != PlanStatusActive {
		return shared.ErrInvalidState
	}
	for i := range p.Installments {
		if p.Installments[i].Status == InstallmentPaid {
			return shared.NewDomainError("HAS_PAYMENTS", "Cannot cancel a plan with paid installments")
		}
	}
	p.Status = PlanStatusCancelled
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Outstanding returns the sum of unpaid installment amounts
func (p *InstallmentPlan) Outstanding() valueobject.Money {
	return valueobject.NewMoneyUSD(p.outstanding())
}

func (p *InstallmentPlan) outstanding() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Installments {
		if p.Installments[i].Status != InstallmentPaid {
			total = total.Add(p.Installments[i].Amount)
		}
	}
	return total
}
