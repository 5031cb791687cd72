package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(12.50), USD)

		require.NoError(t, err)
		assert.Equal(t, "12.50", m.StringFixed(2))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")

		require.Error(t, err)
	})

	t.Run("parses from string", func(t *testing.T) {
		m, err := NewMoneyFromString("99.99", EUR)

		require.NoError(t, err)
		assert.Equal(t, "99.99", m.Amount().String())
	})

	t.Run("rejects malformed string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", USD)

		require.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10.25)
		b := NewMoneyUSDFromFloat(4.75)

		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.Equal(t, "15.00", sum.StringFixed(2))
	})

	t.Run("rejects mixed currency addition", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10)
		b, _ := NewMoney(decimal.NewFromInt(10), EUR)

		_, err := a.Add(b)

		require.Error(t, err)
	})

	t.Run("subtracts and can go negative", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(5)
		b := NewMoneyUSDFromFloat(8)

		diff, err := a.Subtract(b)

		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
		assert.Equal(t, "-3.00", diff.StringFixed(2))
	})

	t.Run("multiplies by factor", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(2.50)

		result := m.Multiply(decimal.NewFromInt(4))

		assert.Equal(t, "10.00", result.StringFixed(2))
	})

	t.Run("compares same currency", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(3)
		b := NewMoneyUSDFromFloat(7)

		less, err := a.LessThan(b)

		require.NoError(t, err)
		assert.True(t, less)
	})
}

func TestMoney_Allocate(t *testing.T) {
	t.Run("splits evenly when divisible", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(300)

		parts, err := m.Allocate(3)

		require.NoError(t, err)
		require.Len(t, parts, 3)
		for _, p := range parts {
			assert.Equal(t, "100.00", p.StringFixed(2))
		}
	})

	t.Run("earlier parts absorb remainder cents", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(100)

		parts, err := m.Allocate(3)

		require.NoError(t, err)
		require.Len(t, parts, 3)
		assert.Equal(t, "33.34", parts[0].StringFixed(2))
		assert.Equal(t, "33.33", parts[1].StringFixed(2))
		assert.Equal(t, "33.33", parts[2].StringFixed(2))

		sum := ZeroUSD()
		for _, p := range parts {
			sum = sum.MustAdd(p)
		}
		assert.True(t, sum.Equals(m))
	})

	t.Run("single part returns original", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(42)

		parts, err := m.Allocate(1)

		require.NoError(t, err)
		require.Len(t, parts, 1)
		assert.True(t, parts[0].Equals(m))
	})

	t.Run("rejects non-positive parts", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(42)

		_, err := m.Allocate(0)

		require.Error(t, err)
	})
}

func TestMoney_JSON(t *testing.T) {
	t.Run("round trips through JSON", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(19.95)

		data, err := json.Marshal(m)
		require.NoError(t, err)

		var decoded Money
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, m.Equals(decoded))
	})

	t.Run("rejects invalid amount", func(t *testing.T) {
		var decoded Money
		err := json.Unmarshal([]byte(`{"amount":"abc","currency":"USD"}`), &decoded)

		require.Error(t, err)
	})
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string amount with default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("12.3400"))

		assert.Equal(t, "12.34", m.StringFixed(2))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("nil value scans to zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))

		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		require.Error(t, m.Scan(12.34))
	})
}
