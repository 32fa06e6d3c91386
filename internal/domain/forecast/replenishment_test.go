package forecast

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockcast/backend/internal/domain/inventory"
)

func makeMaterial(t *testing.T, name string, currentStock, minStock float64) inventory.RawMaterial {
	t.Helper()
	material, err := inventory.NewRawMaterial(name, "kilogram", "kg", decimal.NewFromFloat(minStock))
	require.NoError(t, err)
	material.CurrentStock = decimal.NewFromFloat(currentStock)
	return *material
}

func fixedConsumption(rates map[uuid.UUID]decimal.Decimal) ConsumptionFunc {
	return func(materialID uuid.UUID) decimal.Decimal {
		return rates[materialID]
	}
}

func TestBuildReplenishmentReport(t *testing.T) {
	t.Run("orders by urgency with tier assignment", func(t *testing.T) {
		// A: (10-20)/5 = -2, B: (45-20)/5 = 5, C: (30-20)/5 = 2
		a := makeMaterial(t, "Flour", 10, 20)
		b := makeMaterial(t, "Sugar", 45, 20)
		c := makeMaterial(t, "Butter", 30, 20)
		five := decimal.NewFromInt(5)
		rates := map[uuid.UUID]decimal.Decimal{a.ID: five, b.ID: five, c.ID: five}

		needs := BuildReplenishmentReport([]inventory.RawMaterial{a, b, c}, fixedConsumption(rates), 30, 7)

		require.Len(t, needs, 3)
		assert.Equal(t, "Flour", needs[0].MaterialName)
		assert.Equal(t, "Butter", needs[1].MaterialName)
		assert.Equal(t, "Sugar", needs[2].MaterialName)
		assert.Equal(t, PriorityHigh, needs[0].Priority)
		assert.Equal(t, PriorityMedium, needs[1].Priority)
		assert.Equal(t, PriorityMedium, needs[2].Priority)
		assert.Equal(t, -2, needs[0].DaysRemaining)
		assert.Equal(t, 2, needs[1].DaysRemaining)
		assert.Equal(t, 5, needs[2].DaysRemaining)
	})

	t.Run("never includes materials without recent usage", func(t *testing.T) {
		// Far below minimum but no outbound movement: excluded by policy
		starved := makeMaterial(t, "Yeast", 1, 50)

		needs := BuildReplenishmentReport([]inventory.RawMaterial{starved}, fixedConsumption(nil), 30, 7)

		assert.Empty(t, needs)
	})

	t.Run("excludes materials beyond the warning threshold", func(t *testing.T) {
		comfortable := makeMaterial(t, "Salt", 500, 20)
		rates := map[uuid.UUID]decimal.Decimal{comfortable.ID: decimal.NewFromInt(5)}

		needs := BuildReplenishmentReport([]inventory.RawMaterial{comfortable}, fixedConsumption(rates), 30, 7)

		assert.Empty(t, needs)
	})

	t.Run("threshold boundary is inclusive", func(t *testing.T) {
		// (55-20)/5 = 7 days, exactly at the threshold
		boundary := makeMaterial(t, "Milk", 55, 20)
		rates := map[uuid.UUID]decimal.Decimal{boundary.ID: decimal.NewFromInt(5)}

		needs := BuildReplenishmentReport([]inventory.RawMaterial{boundary}, fixedConsumption(rates), 30, 7)

		require.Len(t, needs, 1)
		assert.Equal(t, PriorityLow, needs[0].Priority)
	})

	t.Run("suggested quantity covers the projection window", func(t *testing.T) {
		low := makeMaterial(t, "Eggs", 10, 20)
		rates := map[uuid.UUID]decimal.Decimal{low.ID: decimal.NewFromInt(4)}

		needs := BuildReplenishmentReport([]inventory.RawMaterial{low}, fixedConsumption(rates), 30, 7)

		require.Len(t, needs, 1)
		assert.True(t, decimal.NewFromInt(120).Equal(needs[0].SuggestedQuantity))
	})

	t.Run("skips inactive materials", func(t *testing.T) {
		retired := makeMaterial(t, "Lard", 1, 50)
		retired.Deactivate()
		rates := map[uuid.UUID]decimal.Decimal{retired.ID: decimal.NewFromInt(5)}

		needs := BuildReplenishmentReport([]inventory.RawMaterial{retired}, fixedConsumption(rates), 30, 7)

		assert.Empty(t, needs)
	})
}
