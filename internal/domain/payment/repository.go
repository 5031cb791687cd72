package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/shared"
)

// PlanRepository provides persistence for installment plans
type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InstallmentPlan, error)
	FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*InstallmentPlan, error)
	FindByOrderRef(ctx context.Context, venueID uuid.UUID, orderRef string) (*InstallmentPlan, error)
	FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]InstallmentPlan, int64, error)
	Save(ctx context.Context, plan *InstallmentPlan) error
}

// HouseAccountRepository provides persistence for house accounts
type HouseAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*HouseAccount, error)
	FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*HouseAccount, error)
	FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]HouseAccount, int64, error)
	Save(ctx context.Context, account *HouseAccount) error
}
