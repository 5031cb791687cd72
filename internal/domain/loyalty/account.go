package loyalty

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// Tier is a loyalty membership level
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// TierThresholds maps lifetime point totals to tiers, in ascending order
type TierThresholds struct {
	Silver   int64
	Gold     int64
	Platinum int64
}

// DefaultTierThresholds returns the standard tier ladder
func DefaultTierThresholds() TierThresholds {
	return TierThresholds{
		Silver:   500,
		Gold:     2000,
		Platinum: 5000,
	}
}

// TierFor returns the tier for a lifetime point total
func (t TierThresholds) TierFor(lifetimePoints int64) Tier {
	switch {
	case lifetimePoints >= t.Platinum:
		return TierPlatinum
	case lifetimePoints >= t.Gold:
		return TierGold
	case lifetimePoints >= t.Silver:
		return TierSilver
	default:
		return TierBronze
	}
}

// Account is the aggregate root for a guest's loyalty membership
type Account struct {
	shared.VenueAggregateRoot
	GuestName      string          `gorm:"size:255;not null"`
	GuestEmail     string          `gorm:"size:255;not null;index"`
	Points         int64           `gorm:"not null;default:0"` // Spendable balance
	LifetimePoints int64           `gorm:"not null;default:0"` // Never decreases; drives tier
	Tier           Tier            `gorm:"size:16;not null;default:'bronze'"`
	EarnRate       decimal.Decimal `gorm:"type:decimal(8,4);not null;default:1"` // Points per currency unit spent
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "loyalty_accounts"
}

// NewAccount enrolls a guest into the loyalty program
func NewAccount(venueID uuid.UUID, guestName, guestEmail string) (*Account, error) {
	if guestName == "" {
		return nil, shared.NewDomainError("INVALID_GUEST", "Guest name is required")
	}
	return &Account{
		VenueAggregateRoot: shared.NewVenueAggregateRoot(venueID),
		GuestName:          guestName,
		GuestEmail:         guestEmail,
		Tier:               TierBronze,
		EarnRate:           decimal.NewFromInt(1),
	}, nil
}

// EarnFromSpend accrues floor(orderTotal * earnRate) points and re-evaluates
// the tier against the lifetime total. Returns the points earned.
func (a *Account) EarnFromSpend(orderTotal valueobject.Money, thresholds TierThresholds) (int64, error) {
	if !orderTotal.IsPositive() {
		return 0, shared.NewDomainError("INVALID_AMOUNT", "Order total must be positive")
	}

	earned := orderTotal.Amount().Mul(a.EarnRate).Floor().IntPart()
	if earned <= 0 {
		return 0, nil
	}

	a.Points += earned
	a.LifetimePoints += earned
	a.evaluateTier(thresholds)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return earned, nil
}

// Redeem spends points from the balance. Lifetime points are unaffected.
func (a *Account) Redeem(points int64) error {
	if points <= 0 {
		return shared.NewDomainError("INVALID_POINTS", "Points to redeem must be positive")
	}
	if points > a.Points {
		return shared.ErrInsufficientPoints
	}

	a.Points -= points
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

func (a *Account) evaluateTier(thresholds TierThresholds) {
	newTier := thresholds.TierFor(a.LifetimePoints)
	if newTier != a.Tier {
		a.AddDomainEvent(NewTierChangedEvent(a, a.Tier, newTier))
		a.Tier = newTier
	}
}
