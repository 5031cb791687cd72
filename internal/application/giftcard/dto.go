package giftcard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/giftcard"
)

// CardResponse represents a gift card in API responses
type CardResponse struct {
	ID             uuid.UUID       `json:"id"`
	VenueID        uuid.UUID       `json:"venue_id"`
	CardNumber     string          `json:"card_number"`
	Status         string          `json:"status"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToCardResponse maps a gift card aggregate to its response DTO
func ToCardResponse(card *giftcard.GiftCard) CardResponse {
	return CardResponse{
		ID:             card.ID,
		VenueID:        card.VenueID,
		CardNumber:     card.CardNumber,
		Status:         string(card.Status),
		Balance:        card.Balance,
		InitialBalance: card.InitialBalance,
		ExpiresAt:      card.ExpiresAt,
		CreatedAt:      card.CreatedAt,
		UpdatedAt:      card.UpdatedAt,
	}
}

// TransactionResponse represents a card ledger entry
type TransactionResponse struct {
	ID           uuid.UUID       `json:"id"`
	CardID       uuid.UUID       `json:"card_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Reference    string          `json:"reference,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToTransactionResponse maps a card transaction to its response DTO
func ToTransactionResponse(tx *giftcard.CardTransaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		CardID:       tx.CardID,
		Type:         string(tx.Type),
		Amount:       tx.Amount,
		BalanceAfter: tx.BalanceAfter,
		Reference:    tx.Reference,
		CreatedAt:    tx.CreatedAt,
	}
}

// IssueCardRequest issues a new gift card
type IssueCardRequest struct {
	CardNumber     string          `json:"card_number" binding:"required,min=4,max=64"`
	InitialBalance decimal.Decimal `json:"initial_balance" binding:"required"`
	ExpiresAt      *time.Time      `json:"expires_at"`
}

// RedeemRequest deducts value from a card. IdempotencyKey makes retried
// redemptions safe to replay.
type RedeemRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Reference      string          `json:"reference"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// ReloadRequest adds value to a card
type ReloadRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
}

// BalanceResponse is the card balance inquiry result
type BalanceResponse struct {
	CardNumber string          `json:"card_number"`
	Status     string          `json:"status"`
	Balance    decimal.Decimal `json:"balance"`
}
