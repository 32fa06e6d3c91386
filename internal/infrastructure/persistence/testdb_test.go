package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stockcast/backend/internal/domain/inventory"
)

// newTestDB opens a throwaway SQLite database with the inventory schema. A
// file per test keeps connections in the pool looking at the same data, which
// ":memory:" does not guarantee.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "stockcast_test.db")), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&inventory.RawMaterial{},
		&inventory.Lot{},
		&inventory.InventoryMovement{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func seedMaterial(t *testing.T, db *gorm.DB, name string) *inventory.RawMaterial {
	t.Helper()
	material, err := inventory.NewRawMaterial(name, "kilogram", "kg", decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, db.Create(material).Error)
	return material
}

func seedLot(t *testing.T, db *gorm.DB, materialID uuid.UUID, code string, expiry *time.Time, qty int64) *inventory.Lot {
	t.Helper()
	lot, err := inventory.NewLot(materialID, code, expiry, decimal.NewFromInt(qty))
	require.NoError(t, err)
	require.NoError(t, db.Create(lot).Error)
	return lot
}

func seedMovement(t *testing.T, db *gorm.DB, materialID uuid.UUID, movementType inventory.MovementType, qty int64, date time.Time) *inventory.InventoryMovement {
	t.Helper()
	movement, err := inventory.NewInventoryMovement(materialID, movementType, decimal.NewFromInt(qty), date)
	require.NoError(t, err)
	require.NoError(t, db.Create(movement).Error)
	return movement
}
