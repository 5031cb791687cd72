package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/backend/internal/domain/loyalty"
	"github.com/venuehq/backend/internal/domain/shared"
)

// GormLoyaltyRepository implements loyalty.Repository using GORM
type GormLoyaltyRepository struct {
	db *gorm.DB
}

// NewGormLoyaltyRepository creates a new GormLoyaltyRepository
func NewGormLoyaltyRepository(db *gorm.DB) *GormLoyaltyRepository {
	return &GormLoyaltyRepository{db: db}
}

// FindByID finds a loyalty account by its ID
func (r *GormLoyaltyRepository) FindByID(ctx context.Context, id uuid.UUID) (*loyalty.Account, error) {
	var account loyalty.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByIDForVenue finds a loyalty account by ID within a venue
func (r *GormLoyaltyRepository) FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*loyalty.Account, error) {
	var account loyalty.Account
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND id = ?", venueID, id).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByEmail finds a loyalty account by guest email within a venue
func (r *GormLoyaltyRepository) FindByEmail(ctx context.Context, venueID uuid.UUID, email string) (*loyalty.Account, error) {
	var account loyalty.Account
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND guest_email = ?", venueID, email).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAllForVenue finds the venue's loyalty accounts with pagination
func (r *GormLoyaltyRepository) FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]loyalty.Account, int64, error) {
	base := r.db.WithContext(ctx).Model(&loyalty.Account{}).Where("venue_id = ?", venueID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []loyalty.Account
	query := applyPagination(applySort(base, filter, LoyaltyAccountSortFields), filter)
	if err := query.Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// Save creates or updates a loyalty account
func (r *GormLoyaltyRepository) Save(ctx context.Context, account *loyalty.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Ensure GormLoyaltyRepository implements loyalty.Repository
var _ loyalty.Repository = (*GormLoyaltyRepository)(nil)
