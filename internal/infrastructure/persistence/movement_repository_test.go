package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockcast/backend/internal/domain/inventory"
)

func TestGormMovementRepository_FindOutboundSince(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("filters by type and window", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormMovementRepository(db)
		material := seedMaterial(t, db, "Flour")

		seedMovement(t, db, material.ID, inventory.MovementOutbound, 5, now.AddDate(0, 0, -2))
		seedMovement(t, db, material.ID, inventory.MovementOutbound, 3, now.AddDate(0, 0, -40))
		seedMovement(t, db, material.ID, inventory.MovementInbound, 8, now.AddDate(0, 0, -2))

		movements, err := repo.FindOutboundSince(ctx, material.ID, now.AddDate(0, 0, -30))

		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, inventory.MovementOutbound, movements[0].Type)
	})

	t.Run("includes movement on the window boundary", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormMovementRepository(db)
		material := seedMaterial(t, db, "Flour")

		since := now.AddDate(0, 0, -30)
		seedMovement(t, db, material.ID, inventory.MovementOutbound, 5, since)

		movements, err := repo.FindOutboundSince(ctx, material.ID, since)

		require.NoError(t, err)
		assert.Len(t, movements, 1)
	})
}

func TestGormMovementRepository_FindByMaterial(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("returns newest first and honors the limit", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormMovementRepository(db)
		material := seedMaterial(t, db, "Flour")

		seedMovement(t, db, material.ID, inventory.MovementOutbound, 1, now.AddDate(0, 0, -3))
		seedMovement(t, db, material.ID, inventory.MovementOutbound, 2, now.AddDate(0, 0, -1))
		seedMovement(t, db, material.ID, inventory.MovementInbound, 3, now.AddDate(0, 0, -2))

		movements, err := repo.FindByMaterial(ctx, material.ID, 2)

		require.NoError(t, err)
		require.Len(t, movements, 2)
		assert.True(t, movements[0].Date.After(movements[1].Date))
	})
}
