package loyalty

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/loyalty"
	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// LoyaltyService handles loyalty enrollment, accrual and redemption
type LoyaltyService struct {
	accountRepo    loyalty.Repository
	thresholds     loyalty.TierThresholds
	eventPublisher shared.EventPublisher
}

// NewLoyaltyService creates a new LoyaltyService with the standard tier ladder
func NewLoyaltyService(accountRepo loyalty.Repository) *LoyaltyService {
	return &LoyaltyService{
		accountRepo: accountRepo,
		thresholds:  loyalty.DefaultTierThresholds(),
	}
}

// SetTierThresholds overrides the tier ladder
func (s *LoyaltyService) SetTierThresholds(thresholds loyalty.TierThresholds) {
	s.thresholds = thresholds
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LoyaltyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LoyaltyService) publishDomainEvents(ctx context.Context, account *loyalty.Account) {
	if s.eventPublisher == nil {
		return
	}
	events := account.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	account.ClearDomainEvents()
}

// Enroll creates a loyalty account for a guest
func (s *LoyaltyService) Enroll(ctx context.Context, venueID uuid.UUID, req EnrollRequest) (*AccountResponse, error) {
	existing, err := s.accountRepo.FindByEmail(ctx, venueID, req.GuestEmail)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	account, err := loyalty.NewAccount(venueID, req.GuestName, req.GuestEmail)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}

// Get retrieves a loyalty account by ID
func (s *LoyaltyService) Get(ctx context.Context, venueID, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForVenue(ctx, venueID, accountID)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// Earn accrues points from an order total and re-evaluates the tier
func (s *LoyaltyService) Earn(ctx context.Context, venueID, accountID uuid.UUID, req EarnRequest) (*EarnResponse, error) {
	account, err := s.accountRepo.FindByIDForVenue(ctx, venueID, accountID)
	if err != nil {
		return nil, err
	}

	earned, err := account.EarnFromSpend(valueobject.NewMoneyUSD(req.OrderTotal), s.thresholds)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, account)

	return &EarnResponse{
		PointsEarned: earned,
		Account:      ToAccountResponse(account),
	}, nil
}

// Redeem spends points from an account
func (s *LoyaltyService) Redeem(ctx context.Context, venueID, accountID uuid.UUID, req RedeemPointsRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForVenue(ctx, venueID, accountID)
	if err != nil {
		return nil, err
	}

	if err := account.Redeem(req.Points); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}

// List retrieves the venue's loyalty accounts with pagination
func (s *LoyaltyService) List(ctx context.Context, venueID uuid.UUID, filter shared.Filter) (*shared.Paginated[AccountResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	accounts, total, err := s.accountRepo.FindAllForVenue(ctx, venueID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, ToAccountResponse(&accounts[i]))
	}
	paginated := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &paginated, nil
}
