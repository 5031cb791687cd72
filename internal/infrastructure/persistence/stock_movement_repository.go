package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/backend/internal/domain/inventory"
)

// GormStockMovementRepository implements StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Save appends a movement to the ledger
func (r *GormStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByLocation returns movements at a location inside [from, to)
func (r *GormStockMovementRepository) FindByLocation(ctx context.Context, venueID, locationID uuid.UUID, from, to time.Time) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND location_id = ? AND occurred_at >= ? AND occurred_at < ?", venueID, locationID, from, to).
		Order("occurred_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByProduct returns one product's movements at a location inside [from, to)
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, venueID, locationID, productID uuid.UUID, from, to time.Time) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND location_id = ? AND product_id = ? AND occurred_at >= ? AND occurred_at < ?",
			venueID, locationID, productID, from, to).
		Order("occurred_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindReceipts returns inbound movements inside [from, to), oldest first.
// These are the cost layers valuation walks.
func (r *GormStockMovementRepository) FindReceipts(ctx context.Context, venueID, locationID uuid.UUID, from, to time.Time) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND location_id = ? AND type IN ? AND occurred_at >= ? AND occurred_at < ?",
			venueID, locationID, []inventory.MovementType{inventory.MovementReceive, inventory.MovementTransferIn}, from, to).
		Order("occurred_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
