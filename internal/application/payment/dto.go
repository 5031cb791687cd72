package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/payment"
)

// PlanResponse represents an installment plan in API responses
type PlanResponse struct {
	ID           uuid.UUID             `json:"id"`
	VenueID      uuid.UUID             `json:"venue_id"`
	OrderRef     string                `json:"order_ref"`
	Total        decimal.Decimal       `json:"total"`
	Status       string                `json:"status"`
	Outstanding  decimal.Decimal       `json:"outstanding"`
	Installments []InstallmentResponse `json:"installments"`
	CreatedAt    time.Time             `json:"created_at"`
}

// InstallmentResponse represents one scheduled payment
type InstallmentResponse struct {
	Sequence int             `json:"sequence"`
	Amount   decimal.Decimal `json:"amount"`
	DueAt    time.Time       `json:"due_at"`
	Status   string          `json:"status"`
	PaidAt   *time.Time      `json:"paid_at,omitempty"`
}

// ToPlanResponse maps an installment plan to its response DTO
func ToPlanResponse(plan *payment.InstallmentPlan) PlanResponse {
	installments := make([]InstallmentResponse, 0, len(plan.Installments))
	for i := range plan.Installments {
		inst := &plan.Installments[i]
		installments = append(installments, InstallmentResponse{
			Sequence: inst.Sequence,
			Amount:   inst.Amount,
			DueAt:    inst.DueAt,
			Status:   string(inst.Status),
			PaidAt:   inst.PaidAt,
		})
	}
	return PlanResponse{
		ID:           plan.ID,
		VenueID:      plan.VenueID,
		OrderRef:     plan.OrderRef,
		Total:        plan.Total,
		Status:       string(plan.Status),
		Outstanding:  plan.Outstanding().Amount(),
		Installments: installments,
		CreatedAt:    plan.CreatedAt,
	}
}

// CreatePlanRequest opens an installment plan for an order
type CreatePlanRequest struct {
	OrderRef     string          `json:"order_ref" binding:"required,min=1,max=128"`
	Total        decimal.Decimal `json:"total" binding:"required"`
	Installments int             `json:"installments" binding:"required,min=2,max=24"`
	IntervalDays int             `json:"interval_days" binding:"omitempty,min=1,max=90"`
}

// HouseAccountResponse represents a house account in API responses
type HouseAccountResponse struct {
	ID              uuid.UUID       `json:"id"`
	VenueID         uuid.UUID       `json:"venue_id"`
	AccountName     string          `json:"account_name"`
	ContactName     string          `json:"contact_name,omitempty"`
	Status          string          `json:"status"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	Balance         decimal.Decimal `json:"balance"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToHouseAccountResponse maps a house account to its response DTO
func ToHouseAccountResponse(account *payment.HouseAccount) HouseAccountResponse {
	return HouseAccountResponse{
		ID:              account.ID,
		VenueID:         account.VenueID,
		AccountName:     account.AccountName,
		ContactName:     account.ContactName,
		Status:          string(account.Status),
		CreditLimit:     account.CreditLimit,
		Balance:         account.Balance,
		AvailableCredit: account.AvailableCredit().Amount(),
		CreatedAt:       account.CreatedAt,
	}
}

// OpenHouseAccountRequest opens a house account
type OpenHouseAccountRequest struct {
	AccountName string          `json:"account_name" binding:"required,min=1,max=255"`
	ContactName string          `json:"contact_name"`
	CreditLimit decimal.Decimal `json:"credit_limit" binding:"required"`
}

// ChargeRequest posts a charge to a house account
type ChargeRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
}

// PaymentRequest posts a payment to a house account
type PaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
}

// StatementRequest parameterizes a house account statement
type StatementRequest struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}
