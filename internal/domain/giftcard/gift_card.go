package giftcard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// CardStatus represents the lifecycle state of a gift card
type CardStatus string

const (
	CardStatusIssued   CardStatus = "issued"
	CardStatusActive   CardStatus = "active"
	CardStatusDisabled CardStatus = "disabled"
)

// TransactionType classifies a gift card ledger entry
type TransactionType string

const (
	TransactionIssue  TransactionType = "issue"
	TransactionRedeem TransactionType = "redeem"
	TransactionReload TransactionType = "reload"
)

// GiftCard is the aggregate root for stored-value cards.
// Card numbers are unique per venue; the balance is a running total over
// the card's transaction ledger.
type GiftCard struct {
	shared.VenueAggregateRoot
	CardNumber     string          `gorm:"size:64;not null;uniqueIndex:idx_gift_card_venue_number,priority:2"`
	Status         CardStatus      `gorm:"size:16;not null;default:'issued'"`
	Balance        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	InitialBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ExpiresAt      *time.Time

	Transactions []CardTransaction `gorm:"foreignKey:CardID;references:ID"`
}

// TableName returns the table name for GORM
func (GiftCard) TableName() string {
	return "gift_cards"
}

// CardTransaction is an append-only ledger entry for a gift card
type CardTransaction struct {
	shared.BaseEntity
	CardID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         TransactionType `gorm:"size:16;not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Reference    string          `gorm:"size:128"`
}

// TableName returns the table name for GORM
func (CardTransaction) TableName() string {
	return "gift_card_transactions"
}

// NewGiftCard issues a new card with the given opening balance
func NewGiftCard(venueID uuid.UUID, cardNumber string, initialBalance valueobject.Money) (*GiftCard, error) {
	if cardNumber == "" {
		return nil, shared.NewDomainError("INVALID_CARD_NUMBER", "Card number is required")
	}
	if initialBalance.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Initial balance cannot be negative")
	}

	card := &GiftCard{
		VenueAggregateRoot: shared.NewVenueAggregateRoot(venueID),
		CardNumber:         cardNumber,
		Status:             CardStatusIssued,
		Balance:            initialBalance.Amount().Round(2),
		InitialBalance:     initialBalance.Amount().Round(2),
	}
	card.appendTransaction(TransactionIssue, card.Balance, "")
	card.AddDomainEvent(NewCardIssuedEvent(card))
	return card, nil
}

// Activate marks an issued card as usable
func (c *GiftCard) Activate() error {
	if c.Status == CardStatusDisabled {
		return shared.ErrInvalidState
	}
	c.Status = CardStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Disable blocks further use of the card
func (c *GiftCard) Disable() {
	c.Status = CardStatusDisabled
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Redeem deducts the amount from the card balance.
// Redemption over the remaining balance fails with INSUFFICIENT_BALANCE.
func (c *GiftCard) Redeem(amount valueobject.Money, reference string) (*CardTransaction, error) {
	if c.Status == CardStatusDisabled {
		return nil, shared.NewDomainError("CARD_DISABLED", "Gift card is disabled")
	}
	if c.IsExpired() {
		return nil, shared.NewDomainError("CARD_EXPIRED", "Gift card has expired")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Redemption amount must be positive")
	}
	if c.Balance.LessThan(amount.Amount()) {
		return nil, shared.ErrInsufficientBalance
	}

	c.Balance = c.Balance.Sub(amount.Amount()).Round(2)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	tx := c.appendTransaction(TransactionRedeem, amount.Amount().Neg(), reference)
	c.AddDomainEvent(NewCardRedeemedEvent(c, amount.Amount()))
	return tx, nil
}

// Reload adds funds to the card
func (c *GiftCard) Reload(amount valueobject.Money, reference string) (*CardTransaction, error) {
	if c.Status == CardStatusDisabled {
		return nil, shared.NewDomainError("CARD_DISABLED", "Gift card is disabled")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Reload amount must be positive")
	}

	c.Balance = c.Balance.Add(amount.Amount()).Round(2)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return c.appendTransaction(TransactionReload, amount.Amount(), reference), nil
}

// IsExpired returns true when the card has an expiry in the past
func (c *GiftCard) IsExpired() bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(time.Now())
}

// BalanceMoney returns the card balance as Money
func (c *GiftCard) BalanceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.Balance)
}

func (c *GiftCard) appendTransaction(txType TransactionType, amount decimal.Decimal, reference string) *CardTransaction {
	tx := CardTransaction{
		BaseEntity:   shared.NewBaseEntity(),
		CardID:       c.ID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: c.Balance,
		Reference:    reference,
	}
	c.Transactions = append(c.Transactions, tx)
	return &c.Transactions[len(c.Transactions)-1]
}
