package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/shared"
)

// MovementType classifies a stock movement ledger entry
type MovementType string

const (
	MovementReceive     MovementType = "receive"
	MovementSale        MovementType = "sale"
	MovementWaste       MovementType = "waste"
	MovementTransferIn  MovementType = "transfer_in"
	MovementTransferOut MovementType = "transfer_out"
	MovementAdjustment  MovementType = "adjustment"
)

// IsOutbound returns true for movement types that consume stock
func (t MovementType) IsOutbound() bool {
	return t == MovementSale || t == MovementWaste || t == MovementTransferOut
}

// StockMovement is an append-only ledger entry for a stock item.
// Quantity is signed: positive for inbound, negative for outbound.
type StockMovement struct {
	shared.BaseEntity
	VenueID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_location_time,priority:1"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type       MovementType    `gorm:"size:32;not null;index"`
	Reason     string          `gorm:"size:64;not null;index"` // Matches Type for waste/adjustment, free-form reference otherwise
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reference  string          `gorm:"size:128"`
	OccurredAt time.Time       `gorm:"not null;index:idx_stock_movement_location_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a ledger entry for the given item.
// The movement reason defaults to the movement type so waste rows are
// queryable as reason="waste".
func NewStockMovement(item *StockItem, movementType MovementType, quantity, unitCost decimal.Decimal, reference string) *StockMovement {
	reason := string(movementType)
	return &StockMovement{
		BaseEntity: shared.NewBaseEntity(),
		VenueID:    item.VenueID,
		LocationID: item.LocationID,
		ProductID:  item.ProductID,
		ItemID:     item.ID,
		Type:       movementType,
		Reason:     reason,
		Quantity:   quantity,
		UnitCost:   unitCost,
		Reference:  reference,
		OccurredAt: time.Now(),
	}
}

// Value returns the absolute monetary value of the movement
func (m *StockMovement) Value() decimal.Decimal {
	return m.Quantity.Abs().Mul(m.UnitCost)
}
