package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockcast/backend/internal/domain/shared"
)

func TestGormRawMaterialRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("finds existing material", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormRawMaterialRepository(db)
		material := seedMaterial(t, db, "Flour")

		found, err := repo.FindByID(ctx, material.ID)

		require.NoError(t, err)
		assert.Equal(t, material.ID, found.ID)
		assert.Equal(t, "Flour", found.Name)
		assert.True(t, found.MinStock.Equal(decimal.NewFromInt(10)))
	})

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormRawMaterialRepository(db)

		found, err := repo.FindByID(ctx, uuid.New())

		assert.Nil(t, found)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormRawMaterialRepository_FindAllActive(t *testing.T) {
	ctx := context.Background()

	t.Run("returns active materials ordered by name", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormRawMaterialRepository(db)
		seedMaterial(t, db, "Sugar")
		seedMaterial(t, db, "Butter")
		inactive := seedMaterial(t, db, "Almonds")
		inactive.Deactivate()
		require.NoError(t, repo.Save(ctx, inactive))

		materials, err := repo.FindAllActive(ctx)

		require.NoError(t, err)
		require.Len(t, materials, 2)
		assert.Equal(t, "Butter", materials[0].Name)
		assert.Equal(t, "Sugar", materials[1].Name)
	})
}

func TestGormRawMaterialRepository_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("persists stock updates", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormRawMaterialRepository(db)
		material := seedMaterial(t, db, "Flour")

		require.NoError(t, material.ReceiveStock(decimal.NewFromInt(25)))
		require.NoError(t, repo.Save(ctx, material))

		found, err := repo.FindByID(ctx, material.ID)
		require.NoError(t, err)
		assert.True(t, found.CurrentStock.Equal(decimal.NewFromInt(25)))
	})
}

func TestGormRawMaterialRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing material", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormRawMaterialRepository(db)
		material := seedMaterial(t, db, "Flour")

		require.NoError(t, repo.Delete(ctx, material.ID))

		_, err := repo.FindByID(ctx, material.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormRawMaterialRepository(db)

		err := repo.Delete(ctx, uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
	})
}
