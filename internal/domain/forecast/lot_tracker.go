package forecast

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockcast/backend/internal/domain/inventory"
)

// LotTracker orders and filters one material's lots by expiration date.
// The canonical ordering for all depletion and alert logic is ascending
// expiration date; lots without an expiration date are excluded from every
// expiry-based view (never treated as soonest or latest).
type LotTracker struct {
	lots []inventory.Lot // active, positive-quantity, with expiration, sorted ascending
}

// NewLotTracker builds a tracker over the given lots. Inactive,
// zero-quantity and expiration-less lots are dropped up front.
func NewLotTracker(lots []inventory.Lot) *LotTracker {
	tracked := make([]inventory.Lot, 0, len(lots))
	for _, lot := range lots {
		if lot.HasStock() && lot.HasExpiration() {
			tracked = append(tracked, lot)
		}
	}
	sort.SliceStable(tracked, func(i, j int) bool {
		return tracked[i].ExpirationDate.Before(*tracked[j].ExpirationDate)
	})
	return &LotTracker{lots: tracked}
}

// Lots returns the tracked lots in ascending expiration order
func (t *LotTracker) Lots() []inventory.Lot {
	return t.lots
}

// ExpiringBy returns lots whose expiration date is on or before endDate
func (t *LotTracker) ExpiringBy(endDate time.Time) []inventory.Lot {
	result := make([]inventory.Lot, 0)
	for _, lot := range t.lots {
		if !lot.ExpirationDate.After(endDate) {
			result = append(result, lot)
		}
	}
	return result
}

// ExpiringOn returns lots whose expiration date falls on the same calendar
// day as date. The comparison uses year, month and day components only, so a
// lot stored with a different time-of-day still matches. This is intentionally
// coarser than ExpiringBy.
func (t *LotTracker) ExpiringOn(date time.Time) []inventory.Lot {
	result := make([]inventory.Lot, 0)
	for _, lot := range t.lots {
		if sameCalendarDay(*lot.ExpirationDate, date) {
			result = append(result, lot)
		}
	}
	return result
}

// TotalQuantity sums the remaining quantity over a lot list
func TotalQuantity(lots []inventory.Lot) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range lots {
		total = total.Add(lot.CurrentQuantity)
	}
	return total
}

// DaysUntilExpiry returns the whole calendar days between referenceDate and
// the lot's expiration date. Negative for already-expired lots. Used for
// display and priority only, never for stock arithmetic. Returns 0, false for
// lots without an expiration date.
func DaysUntilExpiry(lot inventory.Lot, referenceDate time.Time) (int, bool) {
	if lot.ExpirationDate == nil {
		return 0, false
	}
	return daysBetween(referenceDate, *lot.ExpirationDate), true
}

// daysBetween computes calendar-day distance by truncating both instants to
// midnight in their own location before subtracting.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(t.Sub(f).Hours() / 24)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
