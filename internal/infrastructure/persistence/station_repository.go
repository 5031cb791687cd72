package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/backend/internal/domain/kitchen"
	"github.com/venuehq/backend/internal/domain/shared"
)

// GormStationRepository implements kitchen.StationRepository using GORM
type GormStationRepository struct {
	db *gorm.DB
}

// NewGormStationRepository creates a new GormStationRepository
func NewGormStationRepository(db *gorm.DB) *GormStationRepository {
	return &GormStationRepository{db: db}
}

// FindByID finds a station by its ID
func (r *GormStationRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Station, error) {
	var station kitchen.Station
	if err := r.db.WithContext(ctx).First(&station, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &station, nil
}

// FindActiveForVenue returns the venue's active stations in registration order.
// Routing tie-breaks on this order, so it must be stable.
func (r *GormStationRepository) FindActiveForVenue(ctx context.Context, venueID uuid.UUID) ([]*kitchen.Station, error) {
	var stations []*kitchen.Station
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND active = ?", venueID, true).
		Order("created_at ASC").
		Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

// Save creates or updates a station
func (r *GormStationRepository) Save(ctx context.Context, station *kitchen.Station) error {
	return r.db.WithContext(ctx).Save(station).Error
}

// Ensure GormStationRepository implements kitchen.StationRepository
var _ kitchen.StationRepository = (*GormStationRepository)(nil)
