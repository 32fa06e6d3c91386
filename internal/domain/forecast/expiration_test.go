package forecast

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockcast/backend/internal/domain/inventory"
)

func TestBuildExpirationAlerts(t *testing.T) {
	reference := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	materialID := uuid.New()
	materials := map[uuid.UUID]MaterialInfo{
		materialID: {Name: "Cream", Unit: "L"},
	}

	expiringIn := func(days int) *time.Time {
		d := reference.AddDate(0, 0, days)
		return &d
	}

	t.Run("sorts lots ascending by days remaining within a group", func(t *testing.T) {
		lots := []inventory.Lot{
			makeLot(t, materialID, "L-LATE", expiringIn(20), 5),
			makeLot(t, materialID, "L-SOON", expiringIn(2), 5),
			makeLot(t, materialID, "L-MID", expiringIn(10), 5),
		}

		groups := BuildExpirationAlerts(lots, materials, 30, reference)

		require.Len(t, groups, 1)
		require.Len(t, groups[0].Lots, 3)
		assert.Equal(t, "L-SOON", groups[0].Lots[0].Code)
		assert.Equal(t, "L-MID", groups[0].Lots[1].Code)
		assert.Equal(t, "L-LATE", groups[0].Lots[2].Code)
		assert.Equal(t, "Cream", groups[0].MaterialName)
	})

	t.Run("seven days is Alta, eight is Media", func(t *testing.T) {
		lots := []inventory.Lot{
			makeLot(t, materialID, "L-7", expiringIn(7), 5),
			makeLot(t, materialID, "L-8", expiringIn(8), 5),
		}

		groups := BuildExpirationAlerts(lots, materials, 30, reference)

		require.Len(t, groups, 1)
		assert.Equal(t, PriorityHigh, groups[0].Lots[0].Priority)
		assert.Equal(t, PriorityMedium, groups[0].Lots[1].Priority)
	})

	t.Run("already-expired lots are included as maximally urgent", func(t *testing.T) {
		lots := []inventory.Lot{
			makeLot(t, materialID, "L-PAST", expiringIn(-4), 5),
			makeLot(t, materialID, "L-OK", expiringIn(5), 5),
		}

		groups := BuildExpirationAlerts(lots, materials, 30, reference)

		require.Len(t, groups, 1)
		assert.Equal(t, "L-PAST", groups[0].Lots[0].Code)
		assert.Equal(t, -4, groups[0].Lots[0].DaysRemaining)
		assert.Equal(t, PriorityHigh, groups[0].Lots[0].Priority)
	})

	t.Run("excludes lots beyond the alert window", func(t *testing.T) {
		lots := []inventory.Lot{
			makeLot(t, materialID, "L-FAR", expiringIn(31), 5),
		}

		groups := BuildExpirationAlerts(lots, materials, 30, reference)

		assert.Empty(t, groups)
	})

	t.Run("excludes lots without expiration or stock", func(t *testing.T) {
		drained := makeLot(t, materialID, "L-EMPTY", expiringIn(2), 1)
		drained.CurrentQuantity = decimal.Zero

		groups := BuildExpirationAlerts([]inventory.Lot{
			makeLot(t, materialID, "L-NOEXP", nil, 5),
			drained,
		}, materials, 30, reference)

		assert.Empty(t, groups)
	})

	t.Run("skips lots of materials outside the catalog", func(t *testing.T) {
		deactivatedID := uuid.New()
		lots := []inventory.Lot{
			makeLot(t, materialID, "L-ACTIVE", expiringIn(2), 5),
			makeLot(t, deactivatedID, "L-ORPHAN", expiringIn(1), 5),
		}

		groups := BuildExpirationAlerts(lots, materials, 30, reference)

		require.Len(t, groups, 1)
		assert.Equal(t, materialID, groups[0].MaterialID)
		assert.Equal(t, "Cream", groups[0].MaterialName)
	})

	t.Run("groups by material, most urgent group first", func(t *testing.T) {
		otherID := uuid.New()
		all := map[uuid.UUID]MaterialInfo{
			materialID: {Name: "Cream", Unit: "L"},
			otherID:    {Name: "Berries", Unit: "kg"},
		}
		lots := []inventory.Lot{
			makeLot(t, materialID, "C-1", expiringIn(12), 5),
			makeLot(t, otherID, "B-1", expiringIn(3), 5),
			makeLot(t, materialID, "C-2", expiringIn(15), 5),
		}

		groups := BuildExpirationAlerts(lots, all, 30, reference)

		require.Len(t, groups, 2)
		assert.Equal(t, "Berries", groups[0].MaterialName)
		assert.Equal(t, "Cream", groups[1].MaterialName)
		assert.Len(t, groups[1].Lots, 2)
	})
}
