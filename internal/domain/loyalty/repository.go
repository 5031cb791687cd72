package loyalty

import (
	"context"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/shared"
)

// Repository provides persistence for loyalty accounts
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*Account, error)
	FindByEmail(ctx context.Context, venueID uuid.UUID, email string) (*Account, error)
	FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]Account, int64, error)
	Save(ctx context.Context, account *Account) error
}
