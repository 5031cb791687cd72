package kitchen

import (
	"context"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/shared"
)

// StationRepository provides persistence for prep stations
type StationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Station, error)
	FindActiveForVenue(ctx context.Context, venueID uuid.UUID) ([]*Station, error)
	Save(ctx context.Context, station *Station) error
}

// TicketRepository provides persistence for kitchen tickets
type TicketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*Ticket, error)
	FindOpenForStation(ctx context.Context, stationID uuid.UUID) ([]*Ticket, error)
	FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]Ticket, int64, error)
	Save(ctx context.Context, ticket *Ticket) error
}
