package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RawMaterialRepository defines persistence operations for raw materials
type RawMaterialRepository interface {
	Save(ctx context.Context, material *RawMaterial) error
	FindByID(ctx context.Context, id uuid.UUID) (*RawMaterial, error)
	FindAllActive(ctx context.Context) ([]RawMaterial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LotRepository defines persistence operations for lots
type LotRepository interface {
	Save(ctx context.Context, lot *Lot) error
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)
	// FindActiveByMaterial returns the active, positive-quantity lots of one
	// material, ordered ascending by expiration date (nulls last).
	FindActiveByMaterial(ctx context.Context, rawMaterialID uuid.UUID) ([]Lot, error)
	// FindActiveWithExpiration returns every active, positive-quantity lot
	// that carries an expiration date, across all materials.
	FindActiveWithExpiration(ctx context.Context) ([]Lot, error)
}

// MovementRepository defines persistence operations for inventory movements.
// Movements are append-only from the engine's point of view.
type MovementRepository interface {
	Save(ctx context.Context, movement *InventoryMovement) error
	FindByMaterial(ctx context.Context, rawMaterialID uuid.UUID, limit int) ([]InventoryMovement, error)
	// FindOutboundSince returns active outbound movements for a material whose
	// date is on or after the given instant.
	FindOutboundSince(ctx context.Context, rawMaterialID uuid.UUID, since time.Time) ([]InventoryMovement, error)
}
