package inventory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
)

// ValuationMethod selects how on-hand stock is valued
type ValuationMethod string

const (
	ValuationFIFO            ValuationMethod = "fifo"
	ValuationWeightedAverage ValuationMethod = "weighted_average"
	ValuationLastCost        ValuationMethod = "last_cost"
)

// ParseValuationMethod validates a method string, defaulting to weighted average
func ParseValuationMethod(s string) (ValuationMethod, error) {
	switch ValuationMethod(s) {
	case ValuationFIFO, ValuationWeightedAverage, ValuationLastCost:
		return ValuationMethod(s), nil
	case "":
		return ValuationWeightedAverage, nil
	default:
		return "", shared.NewDomainError("INVALID_METHOD", "Unknown valuation method: "+s)
	}
}

// CostLayer is a historical receipt used as valuation input
type CostLayer struct {
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	OccurredAt time.Time
}

// ItemValuationInput is one stock line to value
type ItemValuationInput struct {
	ProductID   uuid.UUID
	ProductName string
	OnHand      decimal.Decimal
	// Layers are receipt-side movements inside the lookback window.
	// When empty, FallbackCost (the item's moving average) values the line.
	Layers       []CostLayer
	FallbackCost decimal.Decimal
}

// ItemValue values on-hand quantity using the given method.
//
// FIFO assumes the oldest receipts were consumed first, so the remaining
// on-hand is drawn from the newest layers backwards. Weighted average uses
// total layer cost over total layer quantity. Last cost uses the most recent
// layer's unit cost for the whole on-hand quantity.
func ItemValue(method ValuationMethod, input ItemValuationInput) decimal.Decimal {
	if input.OnHand.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if len(input.Layers) == 0 {
		return input.OnHand.Mul(input.FallbackCost)
	}

	layers := make([]CostLayer, len(input.Layers))
	copy(layers, input.Layers)
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].OccurredAt.Before(layers[j].OccurredAt)
	})

	switch method {
	case ValuationFIFO:
		remaining := input.OnHand
		value := decimal.Zero
		for idx := len(layers) - 1; idx >= 0 && remaining.GreaterThan(decimal.Zero); idx-- {
			used := decimal.Min(remaining, layers[idx].Quantity)
			value = value.Add(used.Mul(layers[idx].UnitCost))
			remaining = remaining.Sub(used)
		}
		// On-hand exceeding all layers is valued at the oldest layer cost
		if remaining.GreaterThan(decimal.Zero) {
			value = value.Add(remaining.Mul(layers[0].UnitCost))
		}
		return value

	case ValuationLastCost:
		return input.OnHand.Mul(layers[len(layers)-1].UnitCost)

	default: // weighted average
		totalQty := decimal.Zero
		totalCost := decimal.Zero
		for _, l := range layers {
			totalQty = totalQty.Add(l.Quantity)
			totalCost = totalCost.Add(l.Quantity.Mul(l.UnitCost))
		}
		if totalQty.IsZero() {
			return input.OnHand.Mul(input.FallbackCost)
		}
		return input.OnHand.Mul(totalCost.Div(totalQty)).Round(4)
	}
}

// CostOfGoodsSold sums movement value for outbound sale and waste movements
// inside [from, to). Outbound quantities are stored negative, so the absolute
// value is used.
func CostOfGoodsSold(movements []StockMovement, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range movements {
		m := &movements[i]
		if m.Type != MovementSale && m.Type != MovementWaste {
			continue
		}
		if m.OccurredAt.Before(from) || !m.OccurredAt.Before(to) {
			continue
		}
		total = total.Add(m.Value())
	}
	return total
}
