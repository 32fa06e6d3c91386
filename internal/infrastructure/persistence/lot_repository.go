package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockcast/backend/internal/domain/inventory"
	"github.com/stockcast/backend/internal/domain/shared"
)

// GormLotRepository implements LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// Save creates or updates a lot
func (r *GormLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

// FindByID finds a lot by its ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Lot, error) {
	var lot inventory.Lot
	if err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindActiveByMaterial finds a material's active lots ordered soonest-expiring
// first, lots without an expiration date last (FEFO order).
func (r *GormLotRepository) FindActiveByMaterial(ctx context.Context, rawMaterialID uuid.UUID) ([]inventory.Lot, error) {
	var lots []inventory.Lot
	if err := r.db.WithContext(ctx).
		Where("raw_material_id = ? AND active = ?", rawMaterialID, true).
		Order("COALESCE(expiration_date, '9999-12-31') ASC, created_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindActiveWithExpiration finds every active lot that carries an expiration
// date, across all materials.
func (r *GormLotRepository) FindActiveWithExpiration(ctx context.Context) ([]inventory.Lot, error) {
	var lots []inventory.Lot
	if err := r.db.WithContext(ctx).
		Where("active = ? AND expiration_date IS NOT NULL", true).
		Order("expiration_date ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}
