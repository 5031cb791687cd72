package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/backend/internal/domain/kitchen"
	"github.com/venuehq/backend/internal/domain/shared"
)

// GormTicketRepository implements kitchen.TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket by its ID, courses included
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Ticket, error) {
	var ticket kitchen.Ticket
	if err := r.db.WithContext(ctx).
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		First(&ticket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// FindByIDForVenue finds a ticket by ID within a venue
func (r *GormTicketRepository) FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*kitchen.Ticket, error) {
	var ticket kitchen.Ticket
	if err := r.db.WithContext(ctx).
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Where("venue_id = ? AND id = ?", venueID, id).
		First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// FindOpenForStation returns a station's open tickets, oldest first
func (r *GormTicketRepository) FindOpenForStation(ctx context.Context, stationID uuid.UUID) ([]*kitchen.Ticket, error) {
	var tickets []*kitchen.Ticket
	if err := r.db.WithContext(ctx).
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Where("station_id = ? AND status = ?", stationID, kitchen.TicketStatusOpen).
		Order("created_at ASC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// FindAllForVenue finds the venue's tickets with pagination
func (r *GormTicketRepository) FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]kitchen.Ticket, int64, error) {
	base := r.db.WithContext(ctx).Model(&kitchen.Ticket{}).Where("venue_id = ?", venueID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []kitchen.Ticket
	query := applyPagination(applySort(base, filter, TicketSortFields), filter).
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") })
	if err := query.Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// Save persists the ticket and its courses
func (r *GormTicketRepository) Save(ctx context.Context, ticket *kitchen.Ticket) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(ticket).Error
}

// Ensure GormTicketRepository implements kitchen.TicketRepository
var _ kitchen.TicketRepository = (*GormTicketRepository)(nil)
