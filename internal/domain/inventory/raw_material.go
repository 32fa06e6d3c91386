package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockcast/backend/internal/domain/shared"
)

// RawMaterial represents a stocked ingredient or supply item tracked by
// aggregate quantity. It is the aggregate root for stock operations.
type RawMaterial struct {
	shared.BaseEntity
	Name             string          `gorm:"type:varchar(255);not null"`
	CurrentStock     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Reorder floor
	UnitName         string          `gorm:"type:varchar(64);not null"`
	UnitAbbreviation string          `gorm:"type:varchar(16);not null"`
	Active           bool            `gorm:"not null;default:true"`

	// Associations - loaded lazily
	Lots []Lot `gorm:"foreignKey:RawMaterialID;references:ID"`
}

// TableName returns the table name for GORM
func (RawMaterial) TableName() string {
	return "raw_materials"
}

// NewRawMaterial creates a new raw material
func NewRawMaterial(name, unitName, unitAbbreviation string, minStock decimal.Decimal) (*RawMaterial, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if unitName == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit of measure is required")
	}
	if minStock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Minimum stock cannot be negative")
	}

	return &RawMaterial{
		BaseEntity:       shared.NewBaseEntity(),
		Name:             name,
		CurrentStock:     decimal.Zero,
		MinStock:         minStock,
		UnitName:         unitName,
		UnitAbbreviation: unitAbbreviation,
		Active:           true,
		Lots:             make([]Lot, 0),
	}, nil
}

// ReceiveStock increases current stock for an inbound movement
func (m *RawMaterial) ReceiveStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	m.CurrentStock = m.CurrentStock.Add(quantity)
	m.UpdatedAt = time.Now()
	return nil
}

// ConsumeStock decreases current stock for an outbound movement
func (m *RawMaterial) ConsumeStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if m.CurrentStock.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}
	m.CurrentStock = m.CurrentStock.Sub(quantity)
	m.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails changes the material's descriptive fields
func (m *RawMaterial) UpdateDetails(name, unitName, unitAbbreviation string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if unitName == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit of measure is required")
	}
	m.Name = name
	m.UnitName = unitName
	m.UnitAbbreviation = unitAbbreviation
	m.UpdatedAt = time.Now()
	return nil
}

// SetMinStock sets the reorder floor
func (m *RawMaterial) SetMinStock(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum stock cannot be negative")
	}
	m.MinStock = quantity
	m.UpdatedAt = time.Now()
	return nil
}

// Deactivate removes the material from active views without deleting history
func (m *RawMaterial) Deactivate() {
	m.Active = false
	m.UpdatedAt = time.Now()
}

// IsBelowMinimum returns true if current stock is below the reorder floor
func (m *RawMaterial) IsBelowMinimum() bool {
	return m.CurrentStock.LessThan(m.MinStock)
}
