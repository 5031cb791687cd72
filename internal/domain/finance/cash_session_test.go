package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

func newTestSession(t *testing.T, openingFloat float64) *CashSession {
	t.Helper()
	session, err := NewCashSession(uuid.New(), "front-bar", valueobject.NewMoneyUSDFromFloat(openingFloat))
	require.NoError(t, err)
	return session
}

func TestVarianceBands_Severity(t *testing.T) {
	bands := DefaultVarianceBands()

	tests := []struct {
		name     string
		variance float64
		want     VarianceSeverity
	}{
		{"exact zero is balanced", 0, VarianceBalanced},
		{"small shortage is minor", -3.50, VarianceMinor},
		{"just under the minor bound", 4.99, VarianceMinor},
		{"at the minor bound is moderate", 5, VarianceModerate},
		{"mid-band overage is moderate", 12.75, VarianceModerate},
		{"at the severe bound", 20, VarianceSevere},
		{"large shortage is severe", -150, VarianceSevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bands.Severity(decimal.NewFromFloat(tt.variance)))
		})
	}
}

func TestCashSession_ExpectedAmount(t *testing.T) {
	session := newTestSession(t, 200)
	require.NoError(t, session.RecordSale(valueobject.NewMoneyUSDFromFloat(150.25)))
	require.NoError(t, session.RecordSale(valueobject.NewMoneyUSDFromFloat(49.75)))
	require.NoError(t, session.RecordDrop(valueobject.NewMoneyUSDFromFloat(100)))

	assert.Equal(t, "300.00", session.ExpectedAmount().StringFixed(2))
}

func TestCashSession_RecordDrop(t *testing.T) {
	t.Run("rejects a drop exceeding drawer contents", func(t *testing.T) {
		session := newTestSession(t, 100)

		require.Error(t, session.RecordDrop(valueobject.NewMoneyUSDFromFloat(100.01)))
	})
}

func TestCashSession_Close(t *testing.T) {
	t.Run("records a balanced close", func(t *testing.T) {
		session := newTestSession(t, 200)
		require.NoError(t, session.RecordSale(valueobject.NewMoneyUSDFromFloat(100)))

		require.NoError(t, session.Close(valueobject.NewMoneyUSDFromFloat(300), DefaultVarianceBands()))

		assert.Equal(t, SessionClosed, session.Status)
		assert.True(t, session.Variance.IsZero())
		assert.Equal(t, VarianceBalanced, session.Severity)
		assert.Empty(t, session.GetDomainEvents())
	})

	t.Run("records a signed variance with severity", func(t *testing.T) {
		session := newTestSession(t, 200)
		require.NoError(t, session.RecordSale(valueobject.NewMoneyUSDFromFloat(100)))

		require.NoError(t, session.Close(valueobject.NewMoneyUSDFromFloat(287.50), DefaultVarianceBands()))

		assert.Equal(t, "-12.50", session.Variance.StringFixed(2))
		assert.Equal(t, VarianceModerate, session.Severity)
		events := session.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCashVariance, events[0].EventType())
	})

	t.Run("rejects operations after close", func(t *testing.T) {
		session := newTestSession(t, 200)
		require.NoError(t, session.Close(valueobject.NewMoneyUSDFromFloat(200), DefaultVarianceBands()))

		require.ErrorIs(t, session.RecordSale(valueobject.NewMoneyUSDFromFloat(10)), shared.ErrInvalidState)
		require.ErrorIs(t, session.Close(valueobject.NewMoneyUSDFromFloat(200), DefaultVarianceBands()), shared.ErrInvalidState)
	})
}
