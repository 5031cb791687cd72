package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/backend/internal/domain/inventory"
	"github.com/venuehq/backend/internal/domain/shared"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// FindByID finds a stock item by its ID
func (r *GormStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForVenue finds a stock item by ID within a venue
func (r *GormStockItemRepository) FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND id = ?", venueID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByLocationAndProduct finds the stock item for a location-product combination
func (r *GormStockItemRepository) FindByLocationAndProduct(ctx context.Context, venueID, locationID, productID uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND location_id = ? AND product_id = ?", venueID, locationID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByLocation finds all stock items at a location
func (r *GormStockItemRepository) FindByLocation(ctx context.Context, venueID, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockItem, int64, error) {
	base := r.db.WithContext(ctx).Model(&inventory.StockItem{}).
		Where("venue_id = ? AND location_id = ?", venueID, locationID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []inventory.StockItem
	query := applyPagination(applySort(base, filter, StockItemSortFields), filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindBelowPar finds items at or below their reorder point
func (r *GormStockItemRepository) FindBelowPar(ctx context.Context, venueID, locationID uuid.UUID) ([]inventory.StockItem, error) {
	var items []inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND location_id = ? AND reorder_point > 0 AND on_hand <= reorder_point", venueID, locationID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// BelowParCount counts items at or below their reorder point across the venue
func (r *GormStockItemRepository) BelowParCount(ctx context.Context, venueID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.StockItem{}).
		Where("venue_id = ? AND reorder_point > 0 AND on_hand <= reorder_point", venueID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ActiveVenueIDs returns the distinct venue IDs holding stock
func (r *GormStockItemRepository) ActiveVenueIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&inventory.StockItem{}).
		Distinct("venue_id").
		Pluck("venue_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Save creates or updates a stock item
func (r *GormStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithMovement persists the item and appends the movement in one transaction,
// so the ledger never disagrees with the on-hand balance
func (r *GormStockItemRepository) SaveWithMovement(ctx context.Context, item *inventory.StockItem, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return tx.Create(movement).Error
	})
}

// Ensure GormStockItemRepository implements StockItemRepository
var _ inventory.StockItemRepository = (*GormStockItemRepository)(nil)
