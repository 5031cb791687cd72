package payment

import (
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
)

// Event types emitted by the payment domain
const (
	EventTypePlanCreated         = "payment.plan_created"
	EventTypePlanSettled         = "payment.plan_settled"
	EventTypeHouseAccountCharged = "payment.house_account_charged"
)

// PlanCreatedEvent is emitted when an installment plan is opened
type PlanCreatedEvent struct {
	shared.BaseDomainEvent
	OrderRef     string          `json:"order_ref"`
	Total        decimal.Decimal `json:"total"`
	Installments int             `json:"installments"`
}

// NewPlanCreatedEvent creates a PlanCreatedEvent
func NewPlanCreatedEvent(plan *InstallmentPlan) *PlanCreatedEvent {
	return &PlanCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanCreated, "InstallmentPlan", plan.ID, plan.VenueID),
		OrderRef:        plan.OrderRef,
		Total:           plan.Total,
		Installments:    len(plan.Installments),
	}
}

// PlanSettledEvent is emitted when the final installment is paid
type PlanSettledEvent struct {
	shared.BaseDomainEvent
	OrderRef string          `json:"order_ref"`
	Total    decimal.Decimal `json:"total"`
}

// NewPlanSettledEvent creates a PlanSettledEvent
func NewPlanSettledEvent(plan *InstallmentPlan) *PlanSettledEvent {
	return &PlanSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanSettled, "InstallmentPlan", plan.ID, plan.VenueID),
		OrderRef:        plan.OrderRef,
		Total:           plan.Total,
	}
}

// HouseAccountChargedEvent is emitted when a charge posts to a house account
type HouseAccountChargedEvent struct {
	shared.BaseDomainEvent
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	Reference   string          `json:"reference"`
}

// NewHouseAccountChargedEvent creates a HouseAccountChargedEvent
func NewHouseAccountChargedEvent(account *HouseAccount, amount decimal.Decimal, reference string) *HouseAccountChargedEvent {
	return &HouseAccountChargedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeHouseAccountCharged, "HouseAccount", account.ID, account.VenueID),
		AccountName:     account.AccountName,
		Amount:          amount,
		Balance:         account.Balance,
		Reference:       reference,
	}
}
