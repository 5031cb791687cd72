package giftcard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

func newTestCard(t *testing.T, balance float64) *GiftCard {
	t.Helper()
	card, err := NewGiftCard(uuid.New(), "GC-0001", valueobject.NewMoneyUSDFromFloat(balance))
	require.NoError(t, err)
	require.NoError(t, card.Activate())
	return card
}

func TestNewGiftCard(t *testing.T) {
	t.Run("issues card with opening balance and ledger entry", func(t *testing.T) {
		card, err := NewGiftCard(uuid.New(), "GC-1234", valueobject.NewMoneyUSDFromFloat(50))

		require.NoError(t, err)
		assert.Equal(t, CardStatusIssued, card.Status)
		assert.Equal(t, "50.00", card.Balance.StringFixed(2))
		require.Len(t, card.Transactions, 1)
		assert.Equal(t, TransactionIssue, card.Transactions[0].Type)

		events := card.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCardIssued, events[0].EventType())
	})

	t.Run("allows zero opening balance", func(t *testing.T) {
		card, err := NewGiftCard(uuid.New(), "GC-0000", valueobject.ZeroUSD())

		require.NoError(t, err)
		assert.True(t, card.Balance.IsZero())
	})

	t.Run("rejects empty card number", func(t *testing.T) {
		_, err := NewGiftCard(uuid.New(), "", valueobject.NewMoneyUSDFromFloat(50))

		require.Error(t, err)
	})

	t.Run("rejects negative opening balance", func(t *testing.T) {
		_, err := NewGiftCard(uuid.New(), "GC-1", valueobject.NewMoneyUSDFromFloat(-1))

		require.Error(t, err)
	})
}

func TestGiftCard_Redeem(t *testing.T) {
	t.Run("deducts amount and appends ledger entry", func(t *testing.T) {
		card := newTestCard(t, 50)

		tx, err := card.Redeem(valueobject.NewMoneyUSDFromFloat(20), "check-42")

		require.NoError(t, err)
		assert.Equal(t, "30.00", card.Balance.StringFixed(2))
		assert.Equal(t, TransactionRedeem, tx.Type)
		assert.Equal(t, "-20.00", tx.Amount.StringFixed(2))
		assert.Equal(t, "30.00", tx.BalanceAfter.StringFixed(2))
	})

	t.Run("fails with insufficient balance message", func(t *testing.T) {
		card := newTestCard(t, 10)

		_, err := card.Redeem(valueobject.NewMoneyUSDFromFloat(25), "")

		require.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assert.Equal(t, "Insufficient balance", err.Error())
		assert.Equal(t, "10.00", card.Balance.StringFixed(2))
	})

	t.Run("can redeem exact remaining balance", func(t *testing.T) {
		card := newTestCard(t, 10)

		_, err := card.Redeem(valueobject.NewMoneyUSDFromFloat(10), "")

		require.NoError(t, err)
		assert.True(t, card.Balance.IsZero())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		card := newTestCard(t, 10)

		_, err := card.Redeem(valueobject.ZeroUSD(), "")

		require.Error(t, err)
	})

	t.Run("rejects redemption on disabled card", func(t *testing.T) {
		card := newTestCard(t, 10)
		card.Disable()

		_, err := card.Redeem(valueobject.NewMoneyUSDFromFloat(5), "")

		require.Error(t, err)
	})

	t.Run("rejects redemption on expired card", func(t *testing.T) {
		card := newTestCard(t, 10)
		past := time.Now().Add(-time.Hour)
		card.ExpiresAt = &past

		_, err := card.Redeem(valueobject.NewMoneyUSDFromFloat(5), "")

		require.Error(t, err)
	})

	t.Run("emits CardRedeemed event", func(t *testing.T) {
		card := newTestCard(t, 50)
		card.ClearDomainEvents()

		_, err := card.Redeem(valueobject.NewMoneyUSDFromFloat(5), "")

		require.NoError(t, err)
		events := card.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCardRedeemed, events[0].EventType())
	})
}

func TestGiftCard_Reload(t *testing.T) {
	t.Run("adds funds and appends ledger entry", func(t *testing.T) {
		card := newTestCard(t, 5)

		tx, err := card.Reload(valueobject.NewMoneyUSDFromFloat(25), "")

		require.NoError(t, err)
		assert.Equal(t, "30.00", card.Balance.StringFixed(2))
		assert.Equal(t, TransactionReload, tx.Type)
	})

	t.Run("rejects reload on disabled card", func(t *testing.T) {
		card := newTestCard(t, 5)
		card.Disable()

		_, err := card.Reload(valueobject.NewMoneyUSDFromFloat(25), "")

		require.Error(t, err)
	})
}
