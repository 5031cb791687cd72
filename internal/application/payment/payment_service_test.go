package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venuehq/backend/internal/domain/payment"
	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// MockPlanRepository is a mock implementation of payment.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.InstallmentPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.InstallmentPlan), args.Error(1)
}

func (m *MockPlanRepository) FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*payment.InstallmentPlan, error) {
	args := m.Called(ctx, venueID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.InstallmentPlan), args.Error(1)
}

func (m *MockPlanRepository) FindByOrderRef(ctx context.Context, venueID uuid.UUID, orderRef string) (*payment.InstallmentPlan, error) {
	args := m.Called(ctx, venueID, orderRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.InstallmentPlan), args.Error(1)
}

func (m *MockPlanRepository) FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]payment.InstallmentPlan, int64, error) {
	args := m.Called(ctx, venueID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]payment.InstallmentPlan), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *payment.InstallmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// MockHouseAccountRepository is a mock implementation of payment.HouseAccountRepository
type MockHouseAccountRepository struct {
	mock.Mock
}

func (m *MockHouseAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.HouseAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.HouseAccount), args.Error(1)
}

func (m *MockHouseAccountRepository) FindByIDForVenue(ctx context.Context, venueID, id uuid.UUID) (*payment.HouseAccount, error) {
	args := m.Called(ctx, venueID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.HouseAccount), args.Error(1)
}

func (m *MockHouseAccountRepository) FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]payment.HouseAccount, int64, error) {
	args := m.Called(ctx, venueID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]payment.HouseAccount), args.Get(1).(int64), args.Error(2)
}

func (m *MockHouseAccountRepository) Save(ctx context.Context, account *payment.HouseAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func newServiceWithMocks() (*PaymentService, *MockPlanRepository, *MockHouseAccountRepository) {
	planRepo := new(MockPlanRepository)
	accountRepo := new(MockHouseAccountRepository)
	return NewPaymentService(planRepo, accountRepo), planRepo, accountRepo
}

func TestPaymentService_CreatePlan(t *testing.T) {
	venueID := uuid.New()

	t.Run("creates a rounding-safe plan", func(t *testing.T) {
		service, planRepo, _ := newServiceWithMocks()
		planRepo.On("FindByOrderRef", mock.Anything, venueID, "ORD-55").Return(nil, shared.ErrNotFound)
		planRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.CreatePlan(context.Background(), venueID, CreatePlanRequest{
			OrderRef:     "ORD-55",
			Total:        decimal.NewFromInt(100),
			Installments: 3,
		})

		require.NoError(t, err)
		require.Len(t, resp.Installments, 3)
		assert.Equal(t, "33.34", resp.Installments[0].Amount.StringFixed(2))
		assert.Equal(t, "33.33", resp.Installments[1].Amount.StringFixed(2))
		assert.Equal(t, "33.33", resp.Installments[2].Amount.StringFixed(2))
		assert.Equal(t, "100.00", resp.Outstanding.StringFixed(2))
	})

	t.Run("rejects a duplicate order reference", func(t *testing.T) {
		service, planRepo, _ := newServiceWithMocks()
		existing, err := payment.NewInstallmentPlan(venueID, "ORD-55", valueobject.NewMoneyUSDFromFloat(300), 3, 30)
		require.NoError(t, err)
		planRepo.On("FindByOrderRef", mock.Anything, venueID, "ORD-55").Return(existing, nil)

		_, err = service.CreatePlan(context.Background(), venueID, CreatePlanRequest{
			OrderRef:     "ORD-55",
			Total:        decimal.NewFromInt(300),
			Installments: 3,
		})

		require.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestPaymentService_PayInstallment(t *testing.T) {
	venueID := uuid.New()

	t.Run("final payment settles the plan", func(t *testing.T) {
		service, planRepo, _ := newServiceWithMocks()
		plan, err := payment.NewInstallmentPlan(venueID, "ORD-55", valueobject.NewMoneyUSDFromFloat(300), 3, 30)
		require.NoError(t, err)
		plan.ClearDomainEvents()
		planRepo.On("FindByIDForVenue", mock.Anything, venueID, plan.ID).Return(plan, nil)
		planRepo.On("Save", mock.Anything, plan).Return(nil)

		for seq := 1; seq <= 3; seq++ {
			resp, err := service.PayInstallment(context.Background(), venueID, plan.ID, seq)
			require.NoError(t, err)
			if seq == 3 {
				assert.Equal(t, "settled", resp.Status)
				assert.True(t, resp.Outstanding.IsZero())
			}
		}
	})
}

func TestPaymentService_Charge(t *testing.T) {
	venueID := uuid.New()

	t.Run("credit limit is enforced", func(t *testing.T) {
		service, _, accountRepo := newServiceWithMocks()
		account, err := payment.NewHouseAccount(venueID, "Riverside Events", "", valueobject.NewMoneyUSDFromFloat(100))
		require.NoError(t, err)
		accountRepo.On("FindByIDForVenue", mock.Anything, venueID, account.ID).Return(account, nil)

		_, err = service.Charge(context.Background(), venueID, account.ID, ChargeRequest{
			Amount: decimal.NewFromInt(150),
		})

		require.ErrorIs(t, err, shared.ErrCreditLimitExceeded)
		accountRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_Statement(t *testing.T) {
	venueID := uuid.New()

	t.Run("aggregates charges and payments in the window", func(t *testing.T) {
		service, _, accountRepo := newServiceWithMocks()
		account, err := payment.NewHouseAccount(venueID, "Riverside Events", "", valueobject.NewMoneyUSDFromFloat(1000))
		require.NoError(t, err)
		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(400), "INV-1"))
		require.NoError(t, account.RecordPayment(valueobject.NewMoneyUSDFromFloat(150), "CHK-1"))
		accountRepo.On("FindByIDForVenue", mock.Anything, venueID, account.ID).Return(account, nil)

		stmt, err := service.Statement(context.Background(), venueID, account.ID, StatementRequest{
			From: time.Now().Add(-time.Hour),
			To:   time.Now().Add(time.Hour),
		})

		require.NoError(t, err)
		assert.Equal(t, "400.00", stmt.TotalCharges.StringFixed(2))
		assert.Equal(t, "150.00", stmt.TotalPayments.StringFixed(2))
		assert.Equal(t, "250.00", stmt.ClosingBalance.StringFixed(2))
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		service, _, _ := newServiceWithMocks()
		now := time.Now()

		_, err := service.Statement(context.Background(), venueID, uuid.New(), StatementRequest{
			From: now,
			To:   now.Add(-time.Hour),
		})

		require.Error(t, err)
	})
}
