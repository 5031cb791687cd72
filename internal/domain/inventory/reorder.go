package inventory

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EOQInput holds the Wilson formula parameters for one product
type EOQInput struct {
	ProductID          uuid.UUID
	ProductName        string
	AnnualDemand       decimal.Decimal // units per year
	OrderCost          decimal.Decimal // fixed cost per order
	HoldingCostPerUnit decimal.Decimal // annual carrying cost per unit
	OnHand             decimal.Decimal
	ReorderPoint       decimal.Decimal
}

// ReorderSuggestion is the EOQ output for one product
type ReorderSuggestion struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	OnHand        decimal.Decimal `json:"on_hand"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	SuggestedQty  decimal.Decimal `json:"suggested_qty"`
	OrdersPerYear decimal.Decimal `json:"orders_per_year"`
}

// EconomicOrderQuantity computes the Wilson formula
// sqrt(2 * annualDemand * orderCost / holdingCostPerUnit).
// Non-positive inputs yield zero rather than an error.
func EconomicOrderQuantity(annualDemand, orderCost, holdingCostPerUnit decimal.Decimal) decimal.Decimal {
	if annualDemand.LessThanOrEqual(decimal.Zero) ||
		orderCost.LessThanOrEqual(decimal.Zero) ||
		holdingCostPerUnit.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	d, _ := annualDemand.Float64()
	o, _ := orderCost.Float64()
	h, _ := holdingCostPerUnit.Float64()
	return decimal.NewFromFloat(math.Sqrt(2 * d * o / h)).Round(2)
}

// SuggestReorder computes the EOQ suggestion for a product. Items at or above
// their reorder point get a zero suggested quantity.
func SuggestReorder(input EOQInput) ReorderSuggestion {
	suggestion := ReorderSuggestion{
		ProductID:    input.ProductID,
		ProductName:  input.ProductName,
		OnHand:       input.OnHand,
		ReorderPoint: input.ReorderPoint,
		SuggestedQty: decimal.Zero,
	}

	if input.ReorderPoint.GreaterThan(decimal.Zero) && input.OnHand.GreaterThanOrEqual(input.ReorderPoint) {
		return suggestion
	}

	eoq := EconomicOrderQuantity(input.AnnualDemand, input.OrderCost, input.HoldingCostPerUnit)
	suggestion.SuggestedQty = eoq
	if eoq.GreaterThan(decimal.Zero) {
		suggestion.OrdersPerYear = input.AnnualDemand.Div(eoq).Round(2)
	}
	return suggestion
}
