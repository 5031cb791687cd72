package giftcard

import (
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
)

// Event types emitted by the gift card domain
const (
	EventTypeCardIssued   = "giftcard.issued"
	EventTypeCardRedeemed = "giftcard.redeemed"
)

// CardIssuedEvent is emitted when a new card is issued
type CardIssuedEvent struct {
	shared.BaseDomainEvent
	CardNumber     string          `json:"card_number"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// NewCardIssuedEvent creates a CardIssuedEvent
func NewCardIssuedEvent(card *GiftCard) *CardIssuedEvent {
	return &CardIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCardIssued, "GiftCard", card.ID, card.VenueID),
		CardNumber:      card.CardNumber,
		InitialBalance:  card.InitialBalance,
	}
}

// CardRedeemedEvent is emitted when value is redeemed from a card
type CardRedeemedEvent struct {
	shared.BaseDomainEvent
	CardNumber string          `json:"card_number"`
	Amount     decimal.Decimal `json:"amount"`
	Balance    decimal.Decimal `json:"balance"`
}

// NewCardRedeemedEvent creates a CardRedeemedEvent
func NewCardRedeemedEvent(card *GiftCard, amount decimal.Decimal) *CardRedeemedEvent {
	return &CardRedeemedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCardRedeemed, "GiftCard", card.ID, card.VenueID),
		CardNumber:      card.CardNumber,
		Amount:          amount,
		Balance:         card.Balance,
	}
}
