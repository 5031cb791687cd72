package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/shared"
)

// Repository provides persistence for cash sessions
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashSession, error)
	FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*CashSession, error)
	FindOpenByDrawer(ctx context.Context, venueID uuid.UUID, drawerName string) (*CashSession, error)
	FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]CashSession, int64, error)
	Save(ctx context.Context, session *CashSession) error
}
