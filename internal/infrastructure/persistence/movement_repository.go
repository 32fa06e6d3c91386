package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockcast/backend/internal/domain/inventory"
)

// GormMovementRepository implements MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Save creates or updates an inventory movement
func (r *GormMovementRepository) Save(ctx context.Context, movement *inventory.InventoryMovement) error {
	return r.db.WithContext(ctx).Save(movement).Error
}

// FindByMaterial returns a material's most recent movements, newest first
func (r *GormMovementRepository) FindByMaterial(ctx context.Context, rawMaterialID uuid.UUID, limit int) ([]inventory.InventoryMovement, error) {
	var movements []inventory.InventoryMovement
	if err := r.db.WithContext(ctx).
		Where("raw_material_id = ? AND active = ?", rawMaterialID, true).
		Order("date DESC").
		Limit(limit).
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindOutboundSince returns a material's outbound movements dated on or after
// the given instant, oldest first.
func (r *GormMovementRepository) FindOutboundSince(ctx context.Context, rawMaterialID uuid.UUID, since time.Time) ([]inventory.InventoryMovement, error) {
	var movements []inventory.InventoryMovement
	if err := r.db.WithContext(ctx).
		Where("raw_material_id = ? AND type = ? AND active = ? AND date >= ?",
			rawMaterialID, inventory.MovementOutbound, true, since).
		Order("date ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
