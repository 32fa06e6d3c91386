package forecast

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockcast/backend/internal/domain/inventory"
)

// EstimateDailyConsumption computes a material's average daily outbound
// consumption over the trailing lookback window ending at now.
//
// Only active outbound movements whose date falls within
// [now - lookbackDays, now] are counted (inclusive lower bound). The total is
// divided by lookbackDays, not by the number of days with activity: a
// material consumed on a single day of the window still yields
// total/lookbackDays, deliberately smoothing sparse usage. Returns zero when
// no movements match.
func EstimateDailyConsumption(movements []inventory.InventoryMovement, materialID uuid.UUID, lookbackDays int, now time.Time) decimal.Decimal {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	windowStart := now.AddDate(0, 0, -lookbackDays)
	total := decimal.Zero
	for _, mv := range movements {
		if mv.RawMaterialID != materialID || !mv.Active || !mv.IsOutbound() {
			continue
		}
		if mv.Date.Before(windowStart) || mv.Date.After(now) {
			continue
		}
		total = total.Add(mv.Quantity)
	}

	if total.IsZero() {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(lookbackDays)))
}
