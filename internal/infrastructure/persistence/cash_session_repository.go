package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/backend/internal/domain/finance"
	"github.com/venuehq/backend/internal/domain/shared"
)

// GormCashSessionRepository implements finance.Repository using GORM
type GormCashSessionRepository struct {
	db *gorm.DB
}

// NewGormCashSessionRepository creates a new GormCashSessionRepository
func NewGormCashSessionRepository(db *gorm.DB) *GormCashSessionRepository {
	return &GormCashSessionRepository{db: db}
}

// FindByID finds a cash session by its ID
func (r *GormCashSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashSession, error) {
	var session finance.CashSession
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindByIDForVenue finds a cash session by ID within a venue
func (r *GormCashSessionRepository) FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*finance.CashSession, error) {
	var session finance.CashSession
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND id = ?", venueID, id).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindOpenByDrawer returns the drawer's open session, if any
func (r *GormCashSessionRepository) FindOpenByDrawer(ctx context.Context, venueID uuid.UUID, drawerName string) (*finance.CashSession, error) {
	var session finance.CashSession
	if err := r.db.WithContext(ctx).
		Where("venue_id = ? AND drawer_name = ? AND status = ?", venueID, drawerName, finance.SessionOpen).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindAllForVenue finds the venue's sessions with pagination
func (r *GormCashSessionRepository) FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]finance.CashSession, int64, error) {
	base := r.db.WithContext(ctx).Model(&finance.CashSession{}).Where("venue_id = ?", venueID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []finance.CashSession
	query := applyPagination(applySort(base, filter, CashSessionSortFields), filter)
	if err := query.Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// Save creates or updates a cash session
func (r *GormCashSessionRepository) Save(ctx context.Context, session *finance.CashSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Ensure GormCashSessionRepository implements finance.Repository
var _ finance.Repository = (*GormCashSessionRepository)(nil)
