package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
}

func TestParseValuationMethod(t *testing.T) {
	t.Run("accepts known methods", func(t *testing.T) {
		for _, s := range []string{"fifo", "weighted_average", "last_cost"} {
			m, err := ParseValuationMethod(s)
			require.NoError(t, err)
			assert.Equal(t, ValuationMethod(s), m)
		}
	})

	t.Run("empty defaults to weighted average", func(t *testing.T) {
		m, err := ParseValuationMethod("")
		require.NoError(t, err)
		assert.Equal(t, ValuationWeightedAverage, m)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := ParseValuationMethod("lifo")
		require.Error(t, err)
	})
}

func TestItemValue(t *testing.T) {
	layers := []CostLayer{
		{Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(2), OccurredAt: day(1)},
		{Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(3), OccurredAt: day(2)},
		{Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(4), OccurredAt: day(3)},
	}

	t.Run("fifo values remaining stock from newest layers", func(t *testing.T) {
		// 15 on hand: 10 @ 4 (newest) + 5 @ 3 = 55
		value := ItemValue(ValuationFIFO, ItemValuationInput{
			OnHand: decimal.NewFromInt(15),
			Layers: layers,
		})

		assert.Equal(t, "55", value.String())
	})

	t.Run("fifo values excess beyond layers at oldest cost", func(t *testing.T) {
		// 35 on hand: layers cover 30 (10*4+10*3+10*2=90), excess 5 @ 2 = 10
		value := ItemValue(ValuationFIFO, ItemValuationInput{
			OnHand: decimal.NewFromInt(35),
			Layers: layers,
		})

		assert.Equal(t, "100", value.String())
	})

	t.Run("weighted average uses total cost over total quantity", func(t *testing.T) {
		// avg = (20+30+40)/30 = 3; 15 on hand -> 45
		value := ItemValue(ValuationWeightedAverage, ItemValuationInput{
			OnHand: decimal.NewFromInt(15),
			Layers: layers,
		})

		assert.Equal(t, "45", value.String())
	})

	t.Run("last cost uses most recent layer", func(t *testing.T) {
		value := ItemValue(ValuationLastCost, ItemValuationInput{
			OnHand: decimal.NewFromInt(15),
			Layers: layers,
		})

		assert.Equal(t, "60", value.String())
	})

	t.Run("no layers falls back to moving average cost", func(t *testing.T) {
		value := ItemValue(ValuationFIFO, ItemValuationInput{
			OnHand:       decimal.NewFromInt(4),
			FallbackCost: decimal.NewFromFloat(2.5),
		})

		assert.Equal(t, "10", value.String())
	})

	t.Run("zero on-hand values to zero", func(t *testing.T) {
		value := ItemValue(ValuationFIFO, ItemValuationInput{
			OnHand: decimal.Zero,
			Layers: layers,
		})

		assert.True(t, value.IsZero())
	})

	t.Run("unsorted layers are ordered by occurrence", func(t *testing.T) {
		shuffled := []CostLayer{layers[2], layers[0], layers[1]}

		value := ItemValue(ValuationLastCost, ItemValuationInput{
			OnHand: decimal.NewFromInt(1),
			Layers: shuffled,
		})

		assert.Equal(t, "4", value.String())
	})
}

func TestCostOfGoodsSold(t *testing.T) {
	item := createTestStockItem(t)
	mk := func(mt MovementType, qty, cost int64, at time.Time) StockMovement {
		m := NewStockMovement(item, mt, decimal.NewFromInt(qty), decimal.NewFromInt(cost), "")
		m.OccurredAt = at
		return *m
	}

	movements := []StockMovement{
		mk(MovementReceive, 100, 2, day(1)),
		mk(MovementSale, -10, 2, day(2)),
		mk(MovementWaste, -5, 2, day(3)),
		mk(MovementSale, -20, 2, day(10)), // outside window
		mk(MovementTransferOut, -30, 2, day(4)),
	}

	t.Run("sums sale and waste value inside window", func(t *testing.T) {
		total := CostOfGoodsSold(movements, day(1), day(5))

		// 10*2 + 5*2 = 30; transfer and receive excluded
		assert.Equal(t, "30", total.String())
	})

	t.Run("empty window yields zero", func(t *testing.T) {
		total := CostOfGoodsSold(movements, day(20), day(21))

		assert.True(t, total.IsZero())
	})
}

func TestCostLayerProductIdentity(t *testing.T) {
	// Valuation input carries the product identity through to output usage
	input := ItemValuationInput{
		ProductID:   uuid.New(),
		ProductName: "Basil",
		OnHand:      decimal.NewFromInt(2),
		Layers: []CostLayer{
			{Quantity: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(5), OccurredAt: day(1)},
		},
	}

	assert.Equal(t, "10", ItemValue(ValuationFIFO, input).String())
}
