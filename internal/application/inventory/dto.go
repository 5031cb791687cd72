package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/inventory"
)

// StockItemResponse represents a stock item in API responses
type StockItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	VenueID      uuid.UUID       `json:"venue_id"`
	LocationID   uuid.UUID       `json:"location_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	OnHand       decimal.Decimal `json:"on_hand"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
	ParLevel     decimal.Decimal `json:"par_level"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	IsBelowPar   bool            `json:"is_below_par"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToStockItemResponse maps a stock item aggregate to its response DTO
func ToStockItemResponse(item *inventory.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:           item.ID,
		VenueID:      item.VenueID,
		LocationID:   item.LocationID,
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		OnHand:       item.OnHand,
		UnitCost:     item.UnitCost,
		TotalValue:   item.TotalValue().Amount(),
		ParLevel:     item.ParLevel,
		ReorderPoint: item.ReorderPoint,
		IsBelowPar:   item.IsBelowPar(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
		Version:      item.Version,
	}
}

// MovementResponse represents a ledger entry in API responses
type MovementResponse struct {
	ID         uuid.UUID       `json:"id"`
	LocationID uuid.UUID       `json:"location_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Type       string          `json:"type"`
	Reason     string          `json:"reason"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Value      decimal.Decimal `json:"value"`
	Reference  string          `json:"reference,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ToMovementResponse maps a stock movement to its response DTO
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		LocationID: m.LocationID,
		ProductID:  m.ProductID,
		Type:       string(m.Type),
		Reason:     m.Reason,
		Quantity:   m.Quantity,
		UnitCost:   m.UnitCost,
		Value:      m.Value(),
		Reference:  m.Reference,
		OccurredAt: m.OccurredAt,
	}
}

// CreateItemRequest registers a product at a location
type CreateItemRequest struct {
	LocationID  uuid.UUID `json:"location_id" binding:"required"`
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	ProductName string    `json:"product_name" binding:"required,min=1,max=255"`
}

// ReceiveStockRequest records an inbound receipt
type ReceiveStockRequest struct {
	LocationID uuid.UUID       `json:"location_id" binding:"required"`
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost   decimal.Decimal `json:"unit_cost" binding:"required"`
	Reference  string          `json:"reference"`
}

// RecordSaleRequest deducts sold stock
type RecordSaleRequest struct {
	LocationID uuid.UUID       `json:"location_id" binding:"required"`
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Reference  string          `json:"reference"`
}

// RecordWasteRequest deducts wasted stock
type RecordWasteRequest struct {
	LocationID uuid.UUID       `json:"location_id" binding:"required"`
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Reference  string          `json:"reference"`
}

// TransferStockRequest moves stock between two locations
type TransferStockRequest struct {
	FromLocationID uuid.UUID       `json:"from_location_id" binding:"required"`
	ToLocationID   uuid.UUID       `json:"to_location_id" binding:"required"`
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	Reference      string          `json:"reference"`
}

// AdjustStockRequest sets on-hand to a counted quantity
type AdjustStockRequest struct {
	LocationID      uuid.UUID       `json:"location_id" binding:"required"`
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	CountedQuantity decimal.Decimal `json:"counted_quantity" binding:"required"`
	Reason          string          `json:"reason" binding:"required,min=1,max=255"`
}

// SetLevelsRequest updates par level and reorder point
type SetLevelsRequest struct {
	LocationID   uuid.UUID        `json:"location_id" binding:"required"`
	ProductID    uuid.UUID        `json:"product_id" binding:"required"`
	ParLevel     *decimal.Decimal `json:"par_level"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
}

// ValuationRequest parameterizes a location valuation report
type ValuationRequest struct {
	LocationID   uuid.UUID `form:"location_id" binding:"required"`
	Method       string    `form:"method" binding:"omitempty,oneof=fifo weighted_average last_cost"`
	LookbackDays int       `form:"lookback_days" binding:"omitempty,min=1,max=365"`
}

// ValuationLine is one valued product in a valuation report
type ValuationLine struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	OnHand      decimal.Decimal `json:"on_hand"`
	Value       decimal.Decimal `json:"value"`
}

// ValuationResponse is the location valuation report
type ValuationResponse struct {
	LocationID uuid.UUID       `json:"location_id"`
	Method     string          `json:"method"`
	AsOf       time.Time       `json:"as_of"`
	Lines      []ValuationLine `json:"lines"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ABCRequest parameterizes an ABC classification report
type ABCRequest struct {
	LocationID uuid.UUID `form:"location_id" binding:"required"`
	ThresholdA *float64  `form:"threshold_a" binding:"omitempty,gt=0,lt=100"`
	ThresholdB *float64  `form:"threshold_b" binding:"omitempty,gt=0,lte=100"`
}

// ABCResponse is the ABC classification report
type ABCResponse struct {
	LocationID uuid.UUID          `json:"location_id"`
	Lines      []inventory.ABCLine `json:"lines"`
}

// COGSRequest parameterizes a cost-of-goods-sold report
type COGSRequest struct {
	LocationID uuid.UUID `form:"location_id" binding:"required"`
	From       time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To         time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// COGSResponse is the cost-of-goods-sold report
type COGSResponse struct {
	LocationID uuid.UUID       `json:"location_id"`
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	Total      decimal.Decimal `json:"total"`
}

// ReorderRequest parameterizes EOQ reorder suggestions
type ReorderRequest struct {
	LocationID         uuid.UUID       `json:"location_id" binding:"required"`
	OrderCost          decimal.Decimal `json:"order_cost" binding:"required"`
	HoldingCostPerUnit decimal.Decimal `json:"holding_cost_per_unit" binding:"required"`
	LookbackDays       int             `json:"lookback_days" binding:"omitempty,min=1,max=365"`
}

// ReorderResponse lists EOQ suggestions for items below their reorder point
type ReorderResponse struct {
	LocationID  uuid.UUID                     `json:"location_id"`
	Suggestions []inventory.ReorderSuggestion `json:"suggestions"`
}
