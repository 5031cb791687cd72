package loyalty

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venuehq/backend/internal/domain/loyalty"
	"github.com/venuehq/backend/internal/domain/shared"
)

// MockRepository is a mock implementation of loyalty.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*loyalty.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Account), args.Error(1)
}

func (m *MockRepository) FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*loyalty.Account, error) {
	args := m.Called(ctx, venueID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Account), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, venueID uuid.UUID, email string) (*loyalty.Account, error) {
	args := m.Called(ctx, venueID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Account), args.Error(1)
}

func (m *MockRepository) FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]loyalty.Account, int64, error) {
	args := m.Called(ctx, venueID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]loyalty.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Save(ctx context.Context, account *loyalty.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func enrolledAccount(t *testing.T, venueID uuid.UUID) *loyalty.Account {
	t.Helper()
	account, err := loyalty.NewAccount(venueID, "Grace Hopper", "grace@example.com")
	require.NoError(t, err)
	return account
}

func TestLoyaltyService_Earn(t *testing.T) {
	venueID := uuid.New()

	t.Run("accrues points and persists", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewLoyaltyService(repo)
		account := enrolledAccount(t, venueID)
		repo.On("FindByIDForVenue", mock.Anything, venueID, account.ID).Return(account, nil)
		repo.On("Save", mock.Anything, account).Return(nil)

		resp, err := service.Earn(context.Background(), venueID, account.ID, EarnRequest{
			OrderTotal: decimal.NewFromFloat(86.40),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(86), resp.PointsEarned)
		assert.Equal(t, int64(86), resp.Account.Points)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a non-positive total", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewLoyaltyService(repo)
		account := enrolledAccount(t, venueID)
		repo.On("FindByIDForVenue", mock.Anything, venueID, account.ID).Return(account, nil)

		_, err := service.Earn(context.Background(), venueID, account.ID, EarnRequest{
			OrderTotal: decimal.Zero,
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLoyaltyService_Redeem(t *testing.T) {
	venueID := uuid.New()

	t.Run("insufficient points are rejected", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewLoyaltyService(repo)
		account := enrolledAccount(t, venueID)
		repo.On("FindByIDForVenue", mock.Anything, venueID, account.ID).Return(account, nil)

		_, err := service.Redeem(context.Background(), venueID, account.ID, RedeemPointsRequest{Points: 100})

		require.ErrorIs(t, err, shared.ErrInsufficientPoints)
	})
}

func TestLoyaltyService_Enroll(t *testing.T) {
	venueID := uuid.New()

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewLoyaltyService(repo)
		existing := enrolledAccount(t, venueID)
		repo.On("FindByEmail", mock.Anything, venueID, "grace@example.com").Return(existing, nil)

		_, err := service.Enroll(context.Background(), venueID, EnrollRequest{
			GuestName:  "Grace Hopper",
			GuestEmail: "grace@example.com",
		})

		require.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}
