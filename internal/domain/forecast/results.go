package forecast

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectionResult is the per-material output of a fleet-wide projection.
// It is computed on demand and never persisted.
type ProjectionResult struct {
	MaterialID           uuid.UUID
	MaterialName         string
	Unit                 string
	CurrentStock         decimal.Decimal
	MinStock             decimal.Decimal
	DailyConsumption     decimal.Decimal
	ProjectedStock       decimal.Decimal // Stock at horizon end
	HorizonDays          int
	BelowMinimum         bool
	DaysUntilCritical    *int // nil means never critical under current usage
	ExpiringLots         []ExpiringLot
	TotalExpiringInRange decimal.Decimal
}

// ExpiringLot describes one lot expiring within a projection horizon
type ExpiringLot struct {
	LotID          uuid.UUID
	Code           string
	ExpirationDate time.Time
	Quantity       decimal.Decimal
	DaysUntil      int
}

// DailyProjectionPoint is one day of a day-by-day stock simulation
type DailyProjectionPoint struct {
	Date           time.Time
	ProjectedStock decimal.Decimal // Remaining after the day's consumption and expiry
	Consumption    decimal.Decimal
	ExpiredToday   decimal.Decimal
	Alert          bool // Remaining fell below the material's minimum
}

// ReplenishmentNeed is one row of a replenishment report
type ReplenishmentNeed struct {
	MaterialID        uuid.UUID
	MaterialName      string
	Unit              string
	CurrentStock      decimal.Decimal
	MinStock          decimal.Decimal
	DailyConsumption  decimal.Decimal
	DaysRemaining     int // May be negative: stock already below minimum
	SuggestedQuantity decimal.Decimal
	Priority          Priority
}

// ExpirationAlertGroup groups a material's expiring lots, most urgent first
type ExpirationAlertGroup struct {
	MaterialID   uuid.UUID
	MaterialName string
	Unit         string
	Lots         []LotAlert
}

// LotAlert is one expiring lot inside an alert group
type LotAlert struct {
	LotID          uuid.UUID
	Code           string
	ExpirationDate time.Time
	Quantity       decimal.Decimal
	DaysRemaining  int // Negative when already expired
	Priority       Priority
}
