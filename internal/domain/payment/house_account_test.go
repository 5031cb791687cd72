package payment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

func newTestHouseAccount(t *testing.T, creditLimit float64) *HouseAccount {
	t.Helper()
	account, err := NewHouseAccount(uuid.New(), "Riverside Events Co", "Sam Carter", valueobject.NewMoneyUSDFromFloat(creditLimit))
	require.NoError(t, err)
	return account
}

func TestHouseAccount_Charge(t *testing.T) {
	t.Run("accrues balance and ledger entry", func(t *testing.T) {
		account := newTestHouseAccount(t, 1000)

		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(250.50), "INV-001"))

		assert.Equal(t, "250.50", account.Balance.StringFixed(2))
		require.Len(t, account.Entries, 1)
		assert.Equal(t, EntryCharge, account.Entries[0].Type)
		assert.Equal(t, "250.50", account.Entries[0].BalanceAfter.StringFixed(2))
		assert.Equal(t, "749.50", account.AvailableCredit().Amount().StringFixed(2))
	})

	t.Run("fails when the credit limit would be exceeded", func(t *testing.T) {
		account := newTestHouseAccount(t, 500)
		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(400), "INV-001"))

		err := account.Charge(valueobject.NewMoneyUSDFromFloat(101), "INV-002")

		require.ErrorIs(t, err, shared.ErrCreditLimitExceeded)
		assert.Equal(t, "400.00", account.Balance.StringFixed(2))
		assert.Len(t, account.Entries, 1)
	})

	t.Run("allows a charge that lands exactly on the limit", func(t *testing.T) {
		account := newTestHouseAccount(t, 500)

		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(500), "INV-001"))

		assert.True(t, account.AvailableCredit().IsZero())
	})

	t.Run("rejects charges on a suspended account", func(t *testing.T) {
		account := newTestHouseAccount(t, 500)
		require.NoError(t, account.Suspend())

		require.ErrorIs(t, account.Charge(valueobject.NewMoneyUSDFromFloat(10), "INV-001"), shared.ErrInvalidState)
	})

	t.Run("emits a charged event", func(t *testing.T) {
		account := newTestHouseAccount(t, 500)

		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(50), "INV-001"))

		events := account.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeHouseAccountCharged, events[0].EventType())
	})
}

func TestHouseAccount_RecordPayment(t *testing.T) {
	t.Run("reduces the balance", func(t *testing.T) {
		account := newTestHouseAccount(t, 1000)
		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(300), "INV-001"))

		require.NoError(t, account.RecordPayment(valueobject.NewMoneyUSDFromFloat(120), "CHK-88"))

		assert.Equal(t, "180.00", account.Balance.StringFixed(2))
	})

	t.Run("rejects overpayment", func(t *testing.T) {
		account := newTestHouseAccount(t, 1000)
		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(100), "INV-001"))

		require.Error(t, account.RecordPayment(valueobject.NewMoneyUSDFromFloat(100.01), "CHK-88"))
	})

	t.Run("accepts payments while suspended", func(t *testing.T) {
		account := newTestHouseAccount(t, 1000)
		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(100), "INV-001"))
		require.NoError(t, account.Suspend())

		require.NoError(t, account.RecordPayment(valueobject.NewMoneyUSDFromFloat(100), "CHK-88"))

		assert.True(t, account.Balance.IsZero())
	})
}

func TestHouseAccount_Close(t *testing.T) {
	t.Run("requires a settled balance", func(t *testing.T) {
		account := newTestHouseAccount(t, 1000)
		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(10), "INV-001"))

		require.Error(t, account.Close())

		require.NoError(t, account.RecordPayment(valueobject.NewMoneyUSDFromFloat(10), "CHK-1"))
		require.NoError(t, account.Close())
		assert.Equal(t, HouseAccountClosed, account.Status)
	})
}

func TestHouseAccount_StatementFor(t *testing.T) {
	t.Run("aggregates activity within the period", func(t *testing.T) {
		account := newTestHouseAccount(t, 10000)
		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(500), "INV-001"))
		require.NoError(t, account.RecordPayment(valueobject.NewMoneyUSDFromFloat(200), "CHK-1"))
		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(150), "INV-002"))

		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(time.Hour)
		stmt := account.StatementFor(start, end)

		assert.True(t, stmt.OpeningBalance.IsZero())
		assert.Equal(t, "650.00", stmt.TotalCharges.StringFixed(2))
		assert.Equal(t, "200.00", stmt.TotalPayments.StringFixed(2))
		assert.Equal(t, "450.00", stmt.ClosingBalance.StringFixed(2))
		assert.Len(t, stmt.Entries, 3)
	})

	t.Run("rolls prior activity into the opening balance", func(t *testing.T) {
		account := newTestHouseAccount(t, 10000)
		require.NoError(t, account.Charge(valueobject.NewMoneyUSDFromFloat(500), "INV-001"))

		start := time.Now().Add(time.Minute)
		stmt := account.StatementFor(start, start.Add(time.Hour))

		assert.Equal(t, "500.00", stmt.OpeningBalance.StringFixed(2))
		assert.Empty(t, stmt.Entries)
		assert.Equal(t, "500.00", stmt.ClosingBalance.StringFixed(2))
	})
}
