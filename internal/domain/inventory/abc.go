package inventory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ABCCategory labels an item's Pareto bucket
type ABCCategory string

const (
	CategoryA ABCCategory = "A"
	CategoryB ABCCategory = "B"
	CategoryC ABCCategory = "C"
)

// ABCThresholds holds the cumulative value-share cut-offs (percent)
type ABCThresholds struct {
	A decimal.Decimal // items up to this cumulative share are A
	B decimal.Decimal // items up to this cumulative share are B; the rest are C
}

// DefaultABCThresholds returns the standard Pareto 80/95 split
func DefaultABCThresholds() ABCThresholds {
	return ABCThresholds{
		A: decimal.NewFromInt(80),
		B: decimal.NewFromInt(95),
	}
}

// ABCInput is one valued stock line to classify
type ABCInput struct {
	ProductID   uuid.UUID
	ProductName string
	TotalValue  decimal.Decimal
}

// ABCLine is the classification result for one item
type ABCLine struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalValue    decimal.Decimal `json:"total_value"`
	ValueShare    decimal.Decimal `json:"value_share"`    // percent of grand total
	CumulativePct decimal.Decimal `json:"cumulative_pct"` // running share after this item
	Category      ABCCategory     `json:"category"`
}

// ClassifyABC sorts items by descending total value and assigns A/B/C
// categories by cumulative value share.
//
// Ties keep insertion order (stable sort). A zero grand total substitutes 1
// as the divisor, so every line gets a zero share and lands in category A.
func ClassifyABC(items []ABCInput, thresholds ABCThresholds) []ABCLine {
	sorted := make([]ABCInput, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalValue.GreaterThan(sorted[j].TotalValue)
	})

	grandTotal := decimal.Zero
	for _, it := range sorted {
		grandTotal = grandTotal.Add(it.TotalValue)
	}
	divisor := grandTotal
	if divisor.IsZero() {
		divisor = decimal.NewFromInt(1)
	}

	hundred := decimal.NewFromInt(100)
	lines := make([]ABCLine, 0, len(sorted))
	cumulative := decimal.Zero
	for _, it := range sorted {
		share := it.TotalValue.Mul(hundred).Div(divisor).Round(4)
		cumulative = cumulative.Add(share)

		category := CategoryC
		switch {
		case cumulative.LessThanOrEqual(thresholds.A):
			category = CategoryA
		case cumulative.LessThanOrEqual(thresholds.B):
			category = CategoryB
		}

		lines = append(lines, ABCLine{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			TotalValue:    it.TotalValue,
			ValueShare:    share,
			CumulativePct: cumulative,
			Category:      category,
		})
	}
	return lines
}
