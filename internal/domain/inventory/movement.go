package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockcast/backend/internal/domain/shared"
)

// MovementType identifies the direction of an inventory movement
type MovementType string

const (
	// MovementInbound records stock entering the warehouse (purchases, returns)
	MovementInbound MovementType = "inbound"
	// MovementOutbound records stock leaving the warehouse (consumption, waste)
	MovementOutbound MovementType = "outbound"
)

// IsValid returns true for a recognized movement type
func (t MovementType) IsValid() bool {
	return t == MovementInbound || t == MovementOutbound
}

// InventoryMovement is an append-only record of stock entering or leaving a
// raw material's aggregate quantity.
type InventoryMovement struct {
	shared.BaseEntity
	RawMaterialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          MovementType    `gorm:"type:varchar(16);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Date          time.Time       `gorm:"not null;index"`
	Active        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (InventoryMovement) TableName() string {
	return "inventory_movements"
}

// NewInventoryMovement creates a new movement record
func NewInventoryMovement(rawMaterialID uuid.UUID, movementType MovementType, quantity decimal.Decimal, date time.Time) (*InventoryMovement, error) {
	if rawMaterialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Raw material ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type must be inbound or outbound")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}

	return &InventoryMovement{
		BaseEntity:    shared.NewBaseEntity(),
		RawMaterialID: rawMaterialID,
		Type:          movementType,
		Quantity:      quantity,
		Date:          date,
		Active:        true,
	}, nil
}

// IsOutbound returns true for consumption/withdrawal movements
func (m *InventoryMovement) IsOutbound() bool {
	return m.Type == MovementOutbound
}
