package giftcard

import (
	"context"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/shared"
)

// Repository provides persistence for gift cards and their transactions
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GiftCard, error)
	FindByNumber(ctx context.Context, venueID uuid.UUID, cardNumber string) (*GiftCard, error)
	FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]GiftCard, int64, error)
	// Save persists the card and any newly appended transactions
	Save(ctx context.Context, card *GiftCard) error
}
