package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockcast/backend/internal/domain/shared"
)

// Lot represents a specific batch of a raw material with its own expiration
// date and remaining quantity. Materials without expiry have lots with a nil
// ExpirationDate; such lots never participate in expiry-based views.
type Lot struct {
	shared.BaseEntity
	RawMaterialID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code            string          `gorm:"type:varchar(64);not null"`
	ExpirationDate  *time.Time      // Optional
	CurrentQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active          bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Lot) TableName() string {
	return "lots"
}

// NewLot creates a new lot for a raw material
func NewLot(rawMaterialID uuid.UUID, code string, expirationDate *time.Time, quantity decimal.Decimal) (*Lot, error) {
	if rawMaterialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Raw material ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Lot code is required")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Lot quantity must be positive")
	}

	return &Lot{
		BaseEntity:      shared.NewBaseEntity(),
		RawMaterialID:   rawMaterialID,
		Code:            code,
		ExpirationDate:  expirationDate,
		CurrentQuantity: quantity,
		Active:          true,
	}, nil
}

// HasExpiration returns true if the lot carries an expiration date
func (l *Lot) HasExpiration() bool {
	return l.ExpirationDate != nil
}

// IsExpired returns true if the lot's expiration date is before the reference time
func (l *Lot) IsExpired(reference time.Time) bool {
	if l.ExpirationDate == nil {
		return false
	}
	return l.ExpirationDate.Before(reference)
}

// Consume reduces the lot quantity. Returns the actual quantity deducted,
// which may be less than requested when the lot holds less.
func (l *Lot) Consume(quantity decimal.Decimal) decimal.Decimal {
	if quantity.GreaterThan(l.CurrentQuantity) {
		deducted := l.CurrentQuantity
		l.CurrentQuantity = decimal.Zero
		l.UpdatedAt = time.Now()
		return deducted
	}
	l.CurrentQuantity = l.CurrentQuantity.Sub(quantity)
	l.UpdatedAt = time.Now()
	return quantity
}

// Discard deactivates the lot and zeroes its remaining quantity
func (l *Lot) Discard() {
	l.CurrentQuantity = decimal.Zero
	l.Active = false
	l.UpdatedAt = time.Now()
}

// HasStock returns true if the lot still holds quantity and is active
func (l *Lot) HasStock() bool {
	return l.Active && l.CurrentQuantity.GreaterThan(decimal.Zero)
}
