package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/backend/internal/domain/giftcard"
	"github.com/venuehq/backend/internal/domain/shared"
)

// GormGiftCardRepository implements giftcard.Repository using GORM
type GormGiftCardRepository struct {
	db *gorm.DB
}

// NewGormGiftCardRepository creates a new GormGiftCardRepository
func NewGormGiftCardRepository(db *gorm.DB) *GormGiftCardRepository {
	return &GormGiftCardRepository{db: db}
}

// FindByID finds a gift card by its ID, transactions included
func (r *GormGiftCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*giftcard.GiftCard, error) {
	var card giftcard.GiftCard
	if err := r.db.WithContext(ctx).
		Preload("Transactions").
		First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindByNumber finds a gift card by its card number within a venue
func (r *GormGiftCardRepository) FindByNumber(ctx context.Context, venueID uuid.UUID, cardNumber string) (*giftcard.GiftCard, error) {
	var card giftcard.GiftCard
	if err := r.db.WithContext(ctx).
		Preload("Transactions").
		Where("venue_id = ? AND card_number = ?", venueID, cardNumber).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindAllForVenue finds the venue's gift cards with pagination
func (r *GormGiftCardRepository) FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]giftcard.GiftCard, int64, error) {
	base := r.db.WithContext(ctx).Model(&giftcard.GiftCard{}).Where("venue_id = ?", venueID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cards []giftcard.GiftCard
	query := applyPagination(applySort(base, filter, GiftCardSortFields), filter)
	if err := query.Find(&cards).Error; err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// Save persists the card and any newly appended transactions
func (r *GormGiftCardRepository) Save(ctx context.Context, card *giftcard.GiftCard) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(card).Error
}

// Ensure GormGiftCardRepository implements giftcard.Repository
var _ giftcard.Repository = (*GormGiftCardRepository)(nil)
