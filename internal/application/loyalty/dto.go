package loyalty

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/loyalty"
)

// AccountResponse represents a loyalty account in API responses
type AccountResponse struct {
	ID             uuid.UUID       `json:"id"`
	VenueID        uuid.UUID       `json:"venue_id"`
	GuestName      string          `json:"guest_name"`
	GuestEmail     string          `json:"guest_email"`
	Points         int64           `json:"points"`
	LifetimePoints int64           `json:"lifetime_points"`
	Tier           string          `json:"tier"`
	EarnRate       decimal.Decimal `json:"earn_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToAccountResponse maps a loyalty account to its response DTO
func ToAccountResponse(account *loyalty.Account) AccountResponse {
	return AccountResponse{
		ID:             account.ID,
		VenueID:        account.VenueID,
		GuestName:      account.GuestName,
		GuestEmail:     account.GuestEmail,
		Points:         account.Points,
		LifetimePoints: account.LifetimePoints,
		Tier:           string(account.Tier),
		EarnRate:       account.EarnRate,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}

// EnrollRequest enrolls a guest into the loyalty program
type EnrollRequest struct {
	GuestName  string `json:"guest_name" binding:"required,min=1,max=255"`
	GuestEmail string `json:"guest_email" binding:"required,email"`
}

// EarnRequest accrues points from an order total
type EarnRequest struct {
	OrderTotal decimal.Decimal `json:"order_total" binding:"required"`
	Reference  string          `json:"reference"`
}

// EarnResponse reports the accrual result
type EarnResponse struct {
	PointsEarned int64           `json:"points_earned"`
	Account      AccountResponse `json:"account"`
}

// RedeemPointsRequest spends points from an account
type RedeemPointsRequest struct {
	Points int64 `json:"points" binding:"required,min=1"`
}
