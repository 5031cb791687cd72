package giftcard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venuehq/backend/internal/domain/giftcard"
	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// MockRepository is a mock implementation of giftcard.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*giftcard.GiftCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*giftcard.GiftCard), args.Error(1)
}

func (m *MockRepository) FindByNumber(ctx context.Context, venueID uuid.UUID, cardNumber string) (*giftcard.GiftCard, error) {
	args := m.Called(ctx, venueID, cardNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*giftcard.GiftCard), args.Error(1)
}

func (m *MockRepository) FindAllForVenue(ctx context.Context, venueID uuid.UUID, filter shared.Filter) ([]giftcard.GiftCard, int64, error) {
	args := m.Called(ctx, venueID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]giftcard.GiftCard), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Save(ctx context.Context, card *giftcard.GiftCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

// memoryIdempotencyStore is a map-backed store for tests
type memoryIdempotencyStore struct {
	seen map[string][]byte
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{seen: make(map[string][]byte)}
}

func (s *memoryIdempotencyStore) Lookup(_ context.Context, key string) ([]byte, bool, error) {
	stored, ok := s.seen[key]
	return stored, ok, nil
}

func (s *memoryIdempotencyStore) Store(_ context.Context, key string, payload []byte) error {
	s.seen[key] = payload
	return nil
}

func activeCard(t *testing.T, venueID uuid.UUID, balance float64) *giftcard.GiftCard {
	t.Helper()
	card, err := giftcard.NewGiftCard(venueID, "GC-1234", valueobject.NewMoneyUSDFromFloat(balance))
	require.NoError(t, err)
	require.NoError(t, card.Activate())
	card.ClearDomainEvents()
	return card
}

func TestGiftCardService_Redeem(t *testing.T) {
	venueID := uuid.New()

	t.Run("deducts the balance and persists", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewGiftCardService(repo, newMemoryIdempotencyStore())
		card := activeCard(t, venueID, 50)
		repo.On("FindByNumber", mock.Anything, venueID, "GC-1234").Return(card, nil)
		repo.On("Save", mock.Anything, card).Return(nil)

		resp, err := service.Redeem(context.Background(), venueID, "GC-1234", RedeemRequest{
			Amount:    decimal.NewFromInt(20),
			Reference: "order-77",
		})

		require.NoError(t, err)
		assert.Equal(t, "30.00", resp.BalanceAfter.StringFixed(2))
		assert.Equal(t, "30.00", card.Balance.StringFixed(2))
		repo.AssertExpectations(t)
	})

	t.Run("over-redemption fails with insufficient balance", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewGiftCardService(repo, newMemoryIdempotencyStore())
		card := activeCard(t, venueID, 10)
		repo.On("FindByNumber", mock.Anything, venueID, "GC-1234").Return(card, nil)

		_, err := service.Redeem(context.Background(), venueID, "GC-1234", RedeemRequest{
			Amount: decimal.NewFromInt(25),
		})

		require.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assert.Equal(t, "Insufficient balance", err.Error())
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("replayed idempotency key returns the original transaction", func(t *testing.T) {
		repo := new(MockRepository)
		store := newMemoryIdempotencyStore()
		service := NewGiftCardService(repo, store)
		card := activeCard(t, venueID, 50)
		repo.On("FindByNumber", mock.Anything, venueID, "GC-1234").Return(card, nil)
		repo.On("Save", mock.Anything, card).Return(nil).Once()

		req := RedeemRequest{Amount: decimal.NewFromInt(20), IdempotencyKey: "retry-abc"}
		first, err := service.Redeem(context.Background(), venueID, "GC-1234", req)
		require.NoError(t, err)

		second, err := service.Redeem(context.Background(), venueID, "GC-1234", req)

		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "30.00", second.BalanceAfter.StringFixed(2))
		// The balance was deducted exactly once
		assert.Equal(t, "30.00", card.Balance.StringFixed(2))
		repo.AssertExpectations(t)
	})
}

func TestGiftCardService_Issue(t *testing.T) {
	venueID := uuid.New()

	t.Run("rejects a duplicate card number", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewGiftCardService(repo, nil)
		existing := activeCard(t, venueID, 50)
		repo.On("FindByNumber", mock.Anything, venueID, "GC-1234").Return(existing, nil)

		_, err := service.Issue(context.Background(), venueID, IssueCardRequest{
			CardNumber:     "GC-1234",
			InitialBalance: decimal.NewFromInt(25),
		})

		require.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("issues and persists a new card", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewGiftCardService(repo, nil)
		repo.On("FindByNumber", mock.Anything, venueID, "GC-9999").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Issue(context.Background(), venueID, IssueCardRequest{
			CardNumber:     "GC-9999",
			InitialBalance: decimal.NewFromInt(25),
		})

		require.NoError(t, err)
		assert.Equal(t, "25.00", resp.Balance.StringFixed(2))
		assert.Equal(t, "issued", resp.Status)
	})
}
