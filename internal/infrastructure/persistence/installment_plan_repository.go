package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/backend/internal/domain/payment"
	"github.com/venuehq/backend/internal/domain/shared"
)

// GormInstallmentPlanRepository implements payment.PlanRepository using GORM
type GormInstallmentPlanRepository struct {
	db *gorm.DB
}

// NewGormInstallmentPlanRepository creates a new GormInstallmentPlanRepository
func NewGormInstallmentPlanRepository(db *gorm.DB) *GormInstallmentPlanRepository {
	return &GormInstallmentPlanRepository{db: db}
}

// FindByID finds a plan by its ID, installments included
func (r *GormInstallmentPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.InstallmentPlan, error) {
	var plan payment.InstallmentPlan
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindByIDForVenue finds a plan by ID within a venue
func (r *GormInstallmentPlanRepository) FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*payment.InstallmentPlan, error) {
	var plan payment.InstallmentPlan
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Where("venue_id = ? AND id = ?", venueID, id).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindByOrderRef finds the plan attached to an order reference
func (r *GormInstallmentPlanRepository) FindByOrderRef(ctx context.Context, venueID uuid.UUID, orderRef string) (*payment.InstallmentPlan, error) {
	var plan payment.InstallmentPlan
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Where("venue_id = ? AND order_ref = ?", venueID, orderRef).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindAllForVenue finds the venue's plans with pagination
func (r *GormInstallmentPlanRepository) FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]payment.InstallmentPlan, int64, error) {
	base := r.db.WithContext(ctx).Model(&payment.InstallmentPlan{}).Where("venue_id = ?", venueID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plans []payment.InstallmentPlan
	query := applyPagination(applySort(base, filter, InstallmentPlanSortFields), filter).
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") })
	if err := query.Find(&plans).Error; err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

// Save persists the plan and its installments
func (r *GormInstallmentPlanRepository) Save(ctx context.Context, plan *payment.InstallmentPlan) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(plan).Error
}

// Ensure GormInstallmentPlanRepository implements payment.PlanRepository
var _ payment.PlanRepository = (*GormInstallmentPlanRepository)(nil)
