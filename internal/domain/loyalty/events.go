package loyalty

import (
	"github.com/venuehq/backend/internal/domain/shared"
)

// Event types emitted by the loyalty domain
const (
	EventTypeTierChanged = "loyalty.tier_changed"
)

// TierChangedEvent is emitted when an account crosses a tier threshold
type TierChangedEvent struct {
	shared.BaseDomainEvent
	GuestEmail string `json:"guest_email"`
	OldTier    Tier   `json:"old_tier"`
	NewTier    Tier   `json:"new_tier"`
}

// NewTierChangedEvent creates a TierChangedEvent
func NewTierChangedEvent(account *Account, oldTier, newTier Tier) *TierChangedEvent {
	return &TierChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTierChanged, "LoyaltyAccount", account.ID, account.VenueID),
		GuestEmail:      account.GuestEmail,
		OldTier:         oldTier,
		NewTier:         newTier,
	}
}
