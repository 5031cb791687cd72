package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/payment"
	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// PaymentService handles installment plans and house accounts
type PaymentService struct {
	planRepo       payment.PlanRepository
	accountRepo    payment.HouseAccountRepository
	eventPublisher shared.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(planRepo payment.PlanRepository, accountRepo payment.HouseAccountRepository) *PaymentService {
	return &PaymentService{
		planRepo:    planRepo,
		accountRepo: accountRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PaymentService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

// CreatePlan opens an installment plan for an order
func (s *PaymentService) CreatePlan(ctx context.Context, venueID uuid.UUID, req CreatePlanRequest) (*PlanResponse, error) {
	existing, err := s.planRepo.FindByOrderRef(ctx, venueID, req.OrderRef)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	plan, err := payment.NewInstallmentPlan(venueID, req.OrderRef, valueobject.NewMoneyUSD(req.Total), req.Installments, req.IntervalDays)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, plan.GetDomainEvents())
	plan.ClearDomainEvents()

	response := ToPlanResponse(plan)
	return &response, nil
}

// GetPlan retrieves an installment plan
func (s *PaymentService) GetPlan(ctx context.Context, venueID, planID uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByIDForVenue(ctx, venueID, planID)
	if err != nil {
		return nil, err
	}
	response := ToPlanResponse(plan)
	return &response, nil
}

// PayInstallment marks an installment paid; the final payment settles the plan
func (s *PaymentService) PayInstallment(ctx context.Context, venueID, planID uuid.UUID, sequence int) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByIDForVenue(ctx, venueID, planID)
	if err != nil {
		return nil, err
	}

	if err := plan.PayInstallment(sequence); err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, plan.GetDomainEvents())
	plan.ClearDomainEvents()

	response := ToPlanResponse(plan)
	return &response, nil
}

// CancelPlan voids an active plan with no paid installments
func (s *PaymentService) CancelPlan(ctx context.Context, venueID, planID uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByIDForVenue(ctx, venueID, planID)
	if err != nil {
		return nil, err
	}
	if err := plan.Cancel(); err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	response := ToPlanResponse(plan)
	return &response, nil
}

// OpenHouseAccount opens a house account with a credit limit
func (s *PaymentService) OpenHouseAccount(ctx context.Context, venueID uuid.UUID, req OpenHouseAccountRequest) (*HouseAccountResponse, error) {
	account, err := payment.NewHouseAccount(venueID, req.AccountName, req.ContactName, valueobject.NewMoneyUSD(req.CreditLimit))
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	response := ToHouseAccountResponse(account)
	return &response, nil
}

// GetHouseAccount retrieves a house account
func (s *PaymentService) GetHouseAccount(ctx context.Context, venueID, accountID uuid.UUID) (*HouseAccountResponse, error) {
	account, err := s.accountRepo.FindByIDForVenue(ctx, venueID, accountID)
	if err != nil {
		return nil, err
	}
	response := ToHouseAccountResponse(account)
	return &response, nil
}

// Charge posts a charge against the account's credit limit
func (s *PaymentService) Charge(ctx context.Context, venueID, accountID uuid.UUID, req ChargeRequest) (*HouseAccountResponse, error) {
	account, err := s.accountRepo.FindByIDForVenue(ctx, venueID, accountID)
	if err != nil {
		return nil, err
	}

	if err := account.Charge(valueobject.NewMoneyUSD(req.Amount), req.Reference); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, account.GetDomainEvents())
	account.ClearDomainEvents()

	response := ToHouseAccountResponse(account)
	return &response, nil
}

// RecordPayment posts a payment reducing the account balance
func (s *PaymentService) RecordPayment(ctx context.Context, venueID, accountID uuid.UUID, req PaymentRequest) (*HouseAccountResponse, error) {
	account, err := s.accountRepo.FindByIDForVenue(ctx, venueID, accountID)
	if err != nil {
		return nil, err
	}

	if err := account.RecordPayment(valueobject.NewMoneyUSD(req.Amount), req.Reference); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToHouseAccountResponse(account)
	return &response, nil
}

// Statement aggregates account activity inside [from, to)
func (s *PaymentService) Statement(ctx context.Context, venueID, accountID uuid.UUID, req StatementRequest) (*payment.Statement, error) {
	if !req.From.Before(req.To) {
		return nil, shared.NewDomainError("INVALID_WINDOW", "From must be before to")
	}

	account, err := s.accountRepo.FindByIDForVenue(ctx, venueID, accountID)
	if err != nil {
		return nil, err
	}

	statement := account.StatementFor(req.From, req.To)
	return &statement, nil
}
