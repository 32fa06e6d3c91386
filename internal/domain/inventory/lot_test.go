package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLot(t *testing.T) {
	materialID := uuid.New()

	t.Run("creates lot with expiration", func(t *testing.T) {
		expiry := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		lot, err := NewLot(materialID, "L-001", &expiry, decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.True(t, lot.HasExpiration())
		assert.True(t, lot.HasStock())
	})

	t.Run("creates lot without expiration", func(t *testing.T) {
		lot, err := NewLot(materialID, "L-002", nil, decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.False(t, lot.HasExpiration())
		assert.False(t, lot.IsExpired(time.Now()))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewLot(materialID, "L-003", nil, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects nil material", func(t *testing.T) {
		_, err := NewLot(uuid.Nil, "L-004", nil, decimal.NewFromInt(1))
		require.Error(t, err)
	})
}

func TestLot_Consume(t *testing.T) {
	materialID := uuid.New()

	t.Run("partial consumption", func(t *testing.T) {
		lot, err := NewLot(materialID, "L-001", nil, decimal.NewFromInt(10))
		require.NoError(t, err)

		deducted := lot.Consume(decimal.NewFromInt(4))

		assert.True(t, decimal.NewFromInt(4).Equal(deducted))
		assert.True(t, decimal.NewFromInt(6).Equal(lot.CurrentQuantity))
	})

	t.Run("over-consumption deducts only what remains", func(t *testing.T) {
		lot, err := NewLot(materialID, "L-002", nil, decimal.NewFromInt(3))
		require.NoError(t, err)

		deducted := lot.Consume(decimal.NewFromInt(10))

		assert.True(t, decimal.NewFromInt(3).Equal(deducted))
		assert.True(t, lot.CurrentQuantity.IsZero())
		assert.False(t, lot.HasStock())
	})
}

func TestLot_IsExpired(t *testing.T) {
	materialID := uuid.New()
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	expired, err := NewLot(materialID, "OLD", &past, decimal.NewFromInt(1))
	require.NoError(t, err)
	fresh, err := NewLot(materialID, "NEW", &future, decimal.NewFromInt(1))
	require.NoError(t, err)

	assert.True(t, expired.IsExpired(now))
	assert.False(t, fresh.IsExpired(now))
}

func TestLot_Discard(t *testing.T) {
	lot, err := NewLot(uuid.New(), "L-001", nil, decimal.NewFromInt(5))
	require.NoError(t, err)

	lot.Discard()

	assert.False(t, lot.Active)
	assert.True(t, lot.CurrentQuantity.IsZero())
	assert.False(t, lot.HasStock())
}
