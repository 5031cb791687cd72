package giftcard

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/giftcard"
	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// GiftCardService handles gift card lifecycle and redemption
type GiftCardService struct {
	cardRepo       giftcard.Repository
	idempotency    shared.IdempotencyStore
	eventPublisher shared.EventPublisher
}

// NewGiftCardService creates a new GiftCardService
func NewGiftCardService(cardRepo giftcard.Repository, idempotency shared.IdempotencyStore) *GiftCardService {
	return &GiftCardService{
		cardRepo:    cardRepo,
		idempotency: idempotency,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *GiftCardService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *GiftCardService) publishDomainEvents(ctx context.Context, card *giftcard.GiftCard) {
	if s.eventPublisher == nil {
		return
	}
	events := card.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	card.ClearDomainEvents()
}

// Issue creates a new gift card with an opening balance
func (s *GiftCardService) Issue(ctx context.Context, venueID uuid.UUID, req IssueCardRequest) (*CardResponse, error) {
	existing, err := s.cardRepo.FindByNumber(ctx, venueID, req.CardNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	card, err := giftcard.NewGiftCard(venueID, req.CardNumber, valueobject.NewMoneyUSD(req.InitialBalance))
	if err != nil {
		return nil, err
	}
	card.ExpiresAt = req.ExpiresAt

	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, card)

	response := ToCardResponse(card)
	return &response, nil
}

// Activate marks an issued card as usable
func (s *GiftCardService) Activate(ctx context.Context, venueID uuid.UUID, cardNumber string) (*CardResponse, error) {
	card, err := s.cardRepo.FindByNumber(ctx, venueID, cardNumber)
	if err != nil {
		return nil, err
	}
	if err := card.Activate(); err != nil {
		return nil, err
	}
	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}
	response := ToCardResponse(card)
	return &response, nil
}

// Balance returns the card's current balance
func (s *GiftCardService) Balance(ctx context.Context, venueID uuid.UUID, cardNumber string) (*BalanceResponse, error) {
	card, err := s.cardRepo.FindByNumber(ctx, venueID, cardNumber)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{
		CardNumber: card.CardNumber,
		Status:     string(card.Status),
		Balance:    card.Balance,
	}, nil
}

// Redeem deducts value from a card. When the request carries an idempotency
// key, a replayed redemption returns the original transaction instead of
// deducting twice.
func (s *GiftCardService) Redeem(ctx context.Context, venueID uuid.UUID, cardNumber string, req RedeemRequest) (*TransactionResponse, error) {
	idemKey := ""
	if req.IdempotencyKey != "" && s.idempotency != nil {
		idemKey = "giftcard:redeem:" + venueID.String() + ":" + req.IdempotencyKey
		stored, seen, err := s.idempotency.Lookup(ctx, idemKey)
		if err != nil {
			return nil, err
		}
		if seen {
			var replay TransactionResponse
			if err := json.Unmarshal(stored, &replay); err != nil {
				return nil, err
			}
			return &replay, nil
		}
	}

	card, err := s.cardRepo.FindByNumber(ctx, venueID, cardNumber)
	if err != nil {
		return nil, err
	}

	tx, err := card.Redeem(valueobject.NewMoneyUSD(req.Amount), req.Reference)
	if err != nil {
		return nil, err
	}

	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, card)

	response := ToTransactionResponse(tx)
	if idemKey != "" {
		payload, err := json.Marshal(response)
		if err != nil {
			return nil, err
		}
		if err := s.idempotency.Store(ctx, idemKey, payload); err != nil {
			return nil, err
		}
	}
	return &response, nil
}

// Reload adds value to a card
func (s *GiftCardService) Reload(ctx context.Context, venueID uuid.UUID, cardNumber string, req ReloadRequest) (*TransactionResponse, error) {
	card, err := s.cardRepo.FindByNumber(ctx, venueID, cardNumber)
	if err != nil {
		return nil, err
	}

	tx, err := card.Reload(valueobject.NewMoneyUSD(req.Amount), req.Reference)
	if err != nil {
		return nil, err
	}

	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}

	response := ToTransactionResponse(tx)
	return &response, nil
}

// Disable blocks further use of a card
func (s *GiftCardService) Disable(ctx context.Context, venueID uuid.UUID, cardNumber string) (*CardResponse, error) {
	card, err := s.cardRepo.FindByNumber(ctx, venueID, cardNumber)
	if err != nil {
		return nil, err
	}
	card.Disable()
	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}
	response := ToCardResponse(card)
	return &response, nil
}

// List retrieves the venue's cards with pagination
func (s *GiftCardService) List(ctx context.Context, venueID uuid.UUID, filter shared.Filter) (*shared.Paginated[CardResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	cards, total, err := s.cardRepo.FindAllForVenue(ctx, venueID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CardResponse, 0, len(cards))
	for i := range cards {
		responses = append(responses, ToCardResponse(&cards[i]))
	}
	paginated := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &paginated, nil
}
