package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/backend/internal/domain/payment"
	"github.com/venuehq/backend/internal/domain/shared"
)

// GormHouseAccountRepository implements payment.HouseAccountRepository using GORM
type GormHouseAccountRepository struct {
	db *gorm.DB
}

// NewGormHouseAccountRepository creates a new GormHouseAccountRepository
func NewGormHouseAccountRepository(db *gorm.DB) *GormHouseAccountRepository {
	return &GormHouseAccountRepository{db: db}
}

// FindByID finds a house account by its ID, ledger entries included
func (r *GormHouseAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.HouseAccount, error) {
	var account payment.HouseAccount
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("occurred_at ASC") }).
		First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByIDForVenue finds a house account by ID within a venue
func (r *GormHouseAccountRepository) FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*payment.HouseAccount, error) {
	var account payment.HouseAccount
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("occurred_at ASC") }).
		Where("venue_id = ? AND id = ?", venueID, id).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAllForVenue finds the venue's house accounts with pagination
func (r *GormHouseAccountRepository) FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]payment.HouseAccount, int64, error) {
	base := r.db.WithContext(ctx).Model(&payment.HouseAccount{}).Where("venue_id = ?", venueID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []payment.HouseAccount
	query := applyPagination(applySort(base, filter, HouseAccountSortFields), filter)
	if err := query.Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// Save persists the account and any newly appended ledger entries
func (r *GormHouseAccountRepository) Save(ctx context.Context, account *payment.HouseAccount) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(account).Error
}

// Ensure GormHouseAccountRepository implements payment.HouseAccountRepository
var _ payment.HouseAccountRepository = (*GormHouseAccountRepository)(nil)
