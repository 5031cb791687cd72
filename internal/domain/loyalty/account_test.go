package loyalty

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

func newTestAccount(t *testing.T) *Account {
	t.Helper()
	account, err := NewAccount(uuid.New(), "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	return account
}

func TestTierThresholds_TierFor(t *testing.T) {
	thresholds := DefaultTierThresholds()

	assert.Equal(t, TierBronze, thresholds.TierFor(0))
	assert.Equal(t, TierBronze, thresholds.TierFor(499))
	assert.Equal(t, TierSilver, thresholds.TierFor(500))
	assert.Equal(t, TierGold, thresholds.TierFor(2000))
	assert.Equal(t, TierPlatinum, thresholds.TierFor(5000))
	assert.Equal(t, TierPlatinum, thresholds.TierFor(99999))
}

func TestAccount_EarnFromSpend(t *testing.T) {
	t.Run("accrues floor of total times earn rate", func(t *testing.T) {
		account := newTestAccount(t)

		earned, err := account.EarnFromSpend(valueobject.NewMoneyUSDFromFloat(42.75), DefaultTierThresholds())

		require.NoError(t, err)
		assert.Equal(t, int64(42), earned)
		assert.Equal(t, int64(42), account.Points)
		assert.Equal(t, int64(42), account.LifetimePoints)
	})

	t.Run("honors a fractional earn rate", func(t *testing.T) {
		account := newTestAccount(t)
		account.EarnRate = decimal.NewFromFloat(0.5)

		earned, err := account.EarnFromSpend(valueobject.NewMoneyUSDFromFloat(25), DefaultTierThresholds())

		require.NoError(t, err)
		assert.Equal(t, int64(12), earned)
	})

	t.Run("promotes tier when lifetime points cross threshold", func(t *testing.T) {
		account := newTestAccount(t)

		_, err := account.EarnFromSpend(valueobject.NewMoneyUSDFromFloat(600), DefaultTierThresholds())

		require.NoError(t, err)
		assert.Equal(t, TierSilver, account.Tier)
		events := account.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeTierChanged, events[0].EventType())
	})

	t.Run("rejects non-positive order total", func(t *testing.T) {
		account := newTestAccount(t)

		_, err := account.EarnFromSpend(valueobject.ZeroUSD(), DefaultTierThresholds())

		require.Error(t, err)
	})
}

func TestAccount_Redeem(t *testing.T) {
	t.Run("spends points without touching lifetime total", func(t *testing.T) {
		account := newTestAccount(t)
		_, err := account.EarnFromSpend(valueobject.NewMoneyUSDFromFloat(100), DefaultTierThresholds())
		require.NoError(t, err)

		require.NoError(t, account.Redeem(40))

		assert.Equal(t, int64(60), account.Points)
		assert.Equal(t, int64(100), account.LifetimePoints)
	})

	t.Run("fails when points are insufficient", func(t *testing.T) {
		account := newTestAccount(t)

		err := account.Redeem(10)

		require.ErrorIs(t, err, shared.ErrInsufficientPoints)
	})

	t.Run("rejects non-positive points", func(t *testing.T) {
		account := newTestAccount(t)

		require.Error(t, account.Redeem(0))
	})
}

func TestNewAccount(t *testing.T) {
	t.Run("starts at bronze with zero points", func(t *testing.T) {
		account := newTestAccount(t)

		assert.Equal(t, TierBronze, account.Tier)
		assert.Zero(t, account.Points)
	})

	t.Run("requires guest name", func(t *testing.T) {
		_, err := NewAccount(uuid.New(), "", "x@example.com")

		require.Error(t, err)
	})
}
