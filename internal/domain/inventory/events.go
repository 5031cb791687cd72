package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
)

// Event types emitted by the inventory domain
const (
	EventTypeStockReceived = "inventory.stock_received"
	EventTypeWasteRecorded = "inventory.waste_recorded"
	EventTypeStockBelowPar = "inventory.stock_below_par"
)

// StockReceivedEvent is emitted when stock is received into a location
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	LocationID string          `json:"location_id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// NewStockReceivedEvent creates a StockReceivedEvent
func NewStockReceivedEvent(item *StockItem, quantity, unitCost decimal.Decimal) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, "StockItem", item.ID, item.VenueID),
		LocationID:      item.LocationID.String(),
		ProductID:       item.ProductID.String(),
		Quantity:        quantity,
		UnitCost:        unitCost,
	}
}

// WasteRecordedEvent is emitted when waste is recorded against a stock item
type WasteRecordedEvent struct {
	shared.BaseDomainEvent
	LocationID string          `json:"location_id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Value      decimal.Decimal `json:"value"`
}

// NewWasteRecordedEvent creates a WasteRecordedEvent
func NewWasteRecordedEvent(item *StockItem, quantity, value decimal.Decimal) *WasteRecordedEvent {
	return &WasteRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWasteRecorded, "StockItem", item.ID, item.VenueID),
		LocationID:      item.LocationID.String(),
		ProductID:       item.ProductID.String(),
		Quantity:        quantity,
		Value:           value,
	}
}

// StockBelowParEvent is emitted when on-hand falls below the par level
type StockBelowParEvent struct {
	shared.BaseDomainEvent
	LocationID string          `json:"location_id"`
	ProductID  string          `json:"product_id"`
	OnHand     decimal.Decimal `json:"on_hand"`
	ParLevel   decimal.Decimal `json:"par_level"`
}

// NewStockBelowParEvent creates a StockBelowParEvent
func NewStockBelowParEvent(item *StockItem) *StockBelowParEvent {
	return &StockBelowParEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowPar, "StockItem", item.ID, item.VenueID),
		LocationID:      item.LocationID.String(),
		ProductID:       item.ProductID.String(),
		OnHand:          item.OnHand,
		ParLevel:        item.ParLevel,
	}
}
