package forecast

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/stockcast/backend/internal/domain/inventory"
)

// MaterialInfo carries the display identity of a material for alert grouping
type MaterialInfo struct {
	Name string
	Unit string
}

// BuildExpirationAlerts scans lots expiring within alertWindowDays of
// referenceDate, groups them by owning material and sorts each group by
// urgency. Already-expired lots are not filtered out: they are treated as
// maximally urgent, with negative days remaining. Lots whose material is
// absent from the materials map belong to deactivated materials and are
// skipped; alert groups cover the active catalog only.
//
// Expiration alerts use two priority tiers only: Alta for lots expiring
// within a week (or already expired), Media otherwise.
func BuildExpirationAlerts(lots []inventory.Lot, materials map[uuid.UUID]MaterialInfo, alertWindowDays int, referenceDate time.Time) []ExpirationAlertGroup {
	if alertWindowDays <= 0 {
		alertWindowDays = DefaultAlertWindowDays
	}

	grouped := make(map[uuid.UUID][]LotAlert)
	for _, lot := range lots {
		if _, ok := materials[lot.RawMaterialID]; !ok {
			continue
		}
		if !lot.HasStock() {
			continue
		}
		days, ok := DaysUntilExpiry(lot, referenceDate)
		if !ok || days > alertWindowDays {
			continue
		}
		grouped[lot.RawMaterialID] = append(grouped[lot.RawMaterialID], LotAlert{
			LotID:          lot.ID,
			Code:           lot.Code,
			ExpirationDate: *lot.ExpirationDate,
			Quantity:       lot.CurrentQuantity,
			DaysRemaining:  days,
			Priority:       expirationPriority(days),
		})
	}

	groups := make([]ExpirationAlertGroup, 0, len(grouped))
	for materialID, alerts := range grouped {
		sort.SliceStable(alerts, func(i, j int) bool {
			return alerts[i].DaysRemaining < alerts[j].DaysRemaining
		})
		info := materials[materialID]
		groups = append(groups, ExpirationAlertGroup{
			MaterialID:   materialID,
			MaterialName: info.Name,
			Unit:         info.Unit,
			Lots:         alerts,
		})
	}

	// Most urgent group first; material name untangles equal urgency
	sort.SliceStable(groups, func(i, j int) bool {
		di, dj := groups[i].Lots[0].DaysRemaining, groups[j].Lots[0].DaysRemaining
		if di != dj {
			return di < dj
		}
		return groups[i].MaterialName < groups[j].MaterialName
	})

	return groups
}

func expirationPriority(daysRemaining int) Priority {
	if daysRemaining <= 7 {
		return PriorityHigh
	}
	return PriorityMedium
}
