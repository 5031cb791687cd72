package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// StockItem represents stock-on-hand for a specific product at a specific
// location. It is the aggregate root for stock operations.
// The composite identifier is LocationID + ProductID.
type StockItem struct {
	shared.VenueAggregateRoot
	LocationID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_item_location_product,priority:2"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_item_location_product,priority:3"`
	ProductName  string          `gorm:"size:255;not null"`
	OnHand       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Moving weighted average cost
	ParLevel     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Minimum desired on-hand
	ReorderPoint decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a new stock item for a location-product combination
func NewStockItem(venueID, locationID, productID uuid.UUID, productName string) (*StockItem, error) {
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name is required")
	}

	return &StockItem{
		VenueAggregateRoot: shared.NewVenueAggregateRoot(venueID),
		LocationID:         locationID,
		ProductID:          productID,
		ProductName:        productName,
		OnHand:             decimal.Zero,
		UnitCost:           decimal.Zero,
		ParLevel:           decimal.Zero,
		ReorderPoint:       decimal.Zero,
	}, nil
}

// Receive increases on-hand and recalculates unit cost using the moving
// weighted average: (oldQty*oldCost + qty*cost) / (oldQty+qty), rounded to 4dp.
func (i *StockItem) Receive(quantity decimal.Decimal, unitCost valueobject.Money) (*StockMovement, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	oldQty := i.OnHand
	if oldQty.IsZero() {
		i.UnitCost = unitCost.Amount()
	} else {
		totalValue := oldQty.Mul(i.UnitCost).Add(quantity.Mul(unitCost.Amount()))
		i.UnitCost = totalValue.Div(oldQty.Add(quantity)).Round(4)
	}

	i.OnHand = i.OnHand.Add(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	movement := NewStockMovement(i, MovementReceive, quantity, unitCost.Amount(), "")
	i.AddDomainEvent(NewStockReceivedEvent(i, quantity, unitCost.Amount()))

	return movement, nil
}

// RecordSale deducts sold quantity from on-hand at the current unit cost
func (i *StockItem) RecordSale(quantity decimal.Decimal, reference string) (*StockMovement, error) {
	return i.deduct(MovementSale, quantity, reference)
}

// RecordWaste deducts wasted quantity and records a movement with reason
// "waste". Waste beyond the current on-hand is rejected.
func (i *StockItem) RecordWaste(quantity decimal.Decimal, reference string) (*StockMovement, error) {
	movement, err := i.deduct(MovementWaste, quantity, reference)
	if err != nil {
		return nil, err
	}
	i.AddDomainEvent(NewWasteRecordedEvent(i, quantity, quantity.Mul(i.UnitCost)))
	return movement, nil
}

// TransferOut deducts quantity moved to another location
func (i *StockItem) TransferOut(quantity decimal.Decimal, reference string) (*StockMovement, error) {
	return i.deduct(MovementTransferOut, quantity, reference)
}

// TransferIn receives quantity moved from another location at the sender's cost
func (i *StockItem) TransferIn(quantity decimal.Decimal, unitCost valueobject.Money, reference string) (*StockMovement, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	oldQty := i.OnHand
	if oldQty.IsZero() {
		i.UnitCost = unitCost.Amount()
	} else {
		totalValue := oldQty.Mul(i.UnitCost).Add(quantity.Mul(unitCost.Amount()))
		i.UnitCost = totalValue.Div(oldQty.Add(quantity)).Round(4)
	}

	i.OnHand = i.OnHand.Add(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return NewStockMovement(i, MovementTransferIn, quantity, unitCost.Amount(), reference), nil
}

// Adjust sets on-hand to the counted quantity (stock taking); the signed
// difference is recorded as an adjustment movement.
func (i *StockItem) Adjust(countedQuantity decimal.Decimal, reason string) (*StockMovement, error) {
	if countedQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}

	difference := countedQuantity.Sub(i.OnHand)
	i.OnHand = countedQuantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	movement := NewStockMovement(i, MovementAdjustment, difference, i.UnitCost, reason)
	i.checkParLevel()
	return movement, nil
}

func (i *StockItem) deduct(movementType MovementType, quantity decimal.Decimal, reference string) (*StockMovement, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if i.OnHand.LessThan(quantity) {
		return nil, shared.ErrInsufficientStock
	}

	i.OnHand = i.OnHand.Sub(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	movement := NewStockMovement(i, movementType, quantity.Neg(), i.UnitCost, reference)
	i.checkParLevel()
	return movement, nil
}

func (i *StockItem) checkParLevel() {
	if i.ParLevel.GreaterThan(decimal.Zero) && i.OnHand.LessThan(i.ParLevel) {
		i.AddDomainEvent(NewStockBelowParEvent(i))
	}
}

// SetParLevel sets the minimum desired on-hand quantity
func (i *StockItem) SetParLevel(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Par level cannot be negative")
	}
	i.ParLevel = quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// SetReorderPoint sets the on-hand quantity that triggers reorder suggestions
func (i *StockItem) SetReorderPoint(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Reorder point cannot be negative")
	}
	i.ReorderPoint = quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsBelowPar returns true if on-hand is below the par level
func (i *StockItem) IsBelowPar() bool {
	return i.ParLevel.GreaterThan(decimal.Zero) && i.OnHand.LessThan(i.ParLevel)
}

// TotalValue returns on-hand valued at the moving average cost
func (i *StockItem) TotalValue() valueobject.Money {
	return valueobject.NewMoneyUSD(i.OnHand.Mul(i.UnitCost))
}
