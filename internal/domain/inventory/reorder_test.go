package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEconomicOrderQuantity(t *testing.T) {
	t.Run("computes Wilson formula", func(t *testing.T) {
		// sqrt(2 * 1000 * 50 / 5) = sqrt(20000) ~= 141.42
		eoq := EconomicOrderQuantity(
			decimal.NewFromInt(1000),
			decimal.NewFromInt(50),
			decimal.NewFromInt(5),
		)

		assert.Equal(t, "141.42", eoq.StringFixed(2))
	})

	t.Run("exact square yields integer result", func(t *testing.T) {
		// sqrt(2 * 800 * 4 / 2) = sqrt(3200)... use sqrt(2*100*1/2) = 10
		eoq := EconomicOrderQuantity(
			decimal.NewFromInt(100),
			decimal.NewFromInt(1),
			decimal.NewFromInt(2),
		)

		assert.Equal(t, "10", eoq.String())
	})

	t.Run("non-positive inputs yield zero", func(t *testing.T) {
		assert.True(t, EconomicOrderQuantity(decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(1)).IsZero())
		assert.True(t, EconomicOrderQuantity(decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1)).IsZero())
		assert.True(t, EconomicOrderQuantity(decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(-1)).IsZero())
	})
}

func TestSuggestReorder(t *testing.T) {
	t.Run("suggests EOQ when below reorder point", func(t *testing.T) {
		suggestion := SuggestReorder(EOQInput{
			ProductName:        "Flour",
			AnnualDemand:       decimal.NewFromInt(1000),
			OrderCost:          decimal.NewFromInt(50),
			HoldingCostPerUnit: decimal.NewFromInt(5),
			OnHand:             decimal.NewFromInt(3),
			ReorderPoint:       decimal.NewFromInt(10),
		})

		assert.Equal(t, "141.42", suggestion.SuggestedQty.StringFixed(2))
		assert.Equal(t, "7.07", suggestion.OrdersPerYear.StringFixed(2))
	})

	t.Run("no suggestion at or above reorder point", func(t *testing.T) {
		suggestion := SuggestReorder(EOQInput{
			AnnualDemand:       decimal.NewFromInt(1000),
			OrderCost:          decimal.NewFromInt(50),
			HoldingCostPerUnit: decimal.NewFromInt(5),
			OnHand:             decimal.NewFromInt(10),
			ReorderPoint:       decimal.NewFromInt(10),
		})

		assert.True(t, suggestion.SuggestedQty.IsZero())
	})

	t.Run("missing cost parameters yield zero suggestion", func(t *testing.T) {
		suggestion := SuggestReorder(EOQInput{
			OnHand:       decimal.NewFromInt(1),
			ReorderPoint: decimal.NewFromInt(5),
		})

		assert.True(t, suggestion.SuggestedQty.IsZero())
		assert.True(t, suggestion.OrdersPerYear.IsZero())
	})
}
