package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRawMaterial(t *testing.T) {
	t.Run("creates material with zero stock", func(t *testing.T) {
		material, err := NewRawMaterial("Flour", "kilogram", "kg", decimal.NewFromInt(20))

		require.NoError(t, err)
		assert.Equal(t, "Flour", material.Name)
		assert.True(t, material.CurrentStock.IsZero())
		assert.True(t, decimal.NewFromInt(20).Equal(material.MinStock))
		assert.True(t, material.Active)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewRawMaterial("", "kilogram", "kg", decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects negative minimum stock", func(t *testing.T) {
		_, err := NewRawMaterial("Flour", "kilogram", "kg", decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestRawMaterial_UpdateDetails(t *testing.T) {
	material, err := NewRawMaterial("Flour", "kilogram", "kg", decimal.NewFromInt(20))
	require.NoError(t, err)

	require.NoError(t, material.UpdateDetails("Bread Flour", "gram", "g"))
	assert.Equal(t, "Bread Flour", material.Name)
	assert.Equal(t, "gram", material.UnitName)
	assert.Equal(t, "g", material.UnitAbbreviation)

	t.Run("rejects empty name", func(t *testing.T) {
		require.Error(t, material.UpdateDetails("", "gram", "g"))
	})

	t.Run("rejects empty unit", func(t *testing.T) {
		require.Error(t, material.UpdateDetails("Bread Flour", "", "g"))
	})
}

func TestRawMaterial_Stock(t *testing.T) {
	material, err := NewRawMaterial("Sugar", "kilogram", "kg", decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, material.ReceiveStock(decimal.NewFromInt(50)))
	assert.True(t, decimal.NewFromInt(50).Equal(material.CurrentStock))

	require.NoError(t, material.ConsumeStock(decimal.NewFromInt(45)))
	assert.True(t, decimal.NewFromInt(5).Equal(material.CurrentStock))
	assert.True(t, material.IsBelowMinimum())

	t.Run("rejects consuming more than available", func(t *testing.T) {
		err := material.ConsumeStock(decimal.NewFromInt(100))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient")
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		require.Error(t, material.ReceiveStock(decimal.Zero))
		require.Error(t, material.ConsumeStock(decimal.NewFromInt(-5)))
	})
}
