package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/shared"
)

// StockItemRepository provides persistence for stock items
type StockItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*StockItem, error)
	FindByLocationAndProduct(ctx context.Context, venueID, locationID, productID uuid.UUID) (*StockItem, error)
	FindByLocation(ctx context.Context, venueID, locationID uuid.UUID, filter shared.Filter) ([]StockItem, int64, error)
	FindBelowPar(ctx context.Context, venueID, locationID uuid.UUID) ([]StockItem, error)
	Save(ctx context.Context, item *StockItem) error
	// SaveWithMovement persists the item and appends the movement in one transaction
	SaveWithMovement(ctx context.Context, item *StockItem, movement *StockMovement) error
}

// StockMovementRepository provides persistence for the movement ledger
type StockMovementRepository interface {
	Save(ctx context.Context, movement *StockMovement) error
	FindByLocation(ctx context.Context, venueID, locationID uuid.UUID, from, to time.Time) ([]StockMovement, error)
	FindByProduct(ctx context.Context, venueID, locationID, productID uuid.UUID, from, to time.Time) ([]StockMovement, error)
	// FindReceipts returns inbound receive/transfer_in movements inside the window,
	// the valuation cost layers
	FindReceipts(ctx context.Context, venueID, locationID uuid.UUID, from, to time.Time) ([]StockMovement, error)
}
