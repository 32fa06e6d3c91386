package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectEndpoint projects the stock level at the end of a horizon:
// max(0, currentStock - dailyConsumption*horizonDays). Never negative.
func ProjectEndpoint(currentStock, dailyConsumption decimal.Decimal, horizonDays int) decimal.Decimal {
	projected := currentStock.Sub(dailyConsumption.Mul(decimal.NewFromInt(int64(horizonDays))))
	if projected.IsNegative() {
		return decimal.Zero
	}
	return projected
}

// ProjectDaily simulates the stock trajectory day by day over numDays starting
// at startDate. Remaining stock threads across iterations: each day the
// planned consumption is deducted and clamped at zero, then the day's expired
// lot quantity is deducted and clamped at zero, in that order. Expired
// material is treated as if it could still have offset the day's consumption
// up to that point; the two-step clamp ordering is a behavioral contract and
// must not be reordered.
func ProjectDaily(currentStock, minStock, dailyConsumption decimal.Decimal, tracker *LotTracker, startDate time.Time, numDays int) []DailyProjectionPoint {
	points := make([]DailyProjectionPoint, 0, max(numDays, 0))
	remaining := currentStock

	for i := 0; i < numDays; i++ {
		date := startDate.AddDate(0, 0, i)
		expiredToday := TotalQuantity(tracker.ExpiringOn(date))

		remaining = remaining.Sub(dailyConsumption)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		remaining = remaining.Sub(expiredToday)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		points = append(points, DailyProjectionPoint{
			Date:           date,
			ProjectedStock: remaining,
			Consumption:    dailyConsumption,
			ExpiredToday:   expiredToday,
			Alert:          remaining.LessThan(minStock),
		})
	}

	return points
}

// DaysUntilCritical estimates the whole days until stock reaches the minimum
// threshold: floor((currentStock - minStock) / dailyConsumption). Returns
// false when dailyConsumption is zero or negative ("never critical under
// current usage" is the absence of a value, not a sentinel). The result may
// be negative when stock is already below minimum; callers must surface that
// as "already critical" rather than discard it.
func DaysUntilCritical(currentStock, minStock, dailyConsumption decimal.Decimal) (int, bool) {
	if dailyConsumption.LessThanOrEqual(decimal.Zero) {
		return 0, false
	}
	days := currentStock.Sub(minStock).Div(dailyConsumption).Floor()
	return int(days.IntPart()), true
}

// HorizonDays computes the horizon length between two instants as whole
// calendar days, rounding a fractional trailing day up.
func HorizonDays(start, end time.Time) int {
	hours := end.Sub(start).Hours()
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	return days
}
