package forecast

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockcast/backend/internal/domain/inventory"
)

// ConsumptionFunc supplies the estimated daily consumption for a material.
// Callers that read movements from a store substitute zero on read failure so
// a single material's failure never aborts a fleet-wide report.
type ConsumptionFunc func(materialID uuid.UUID) decimal.Decimal

// BuildReplenishmentReport scans the given materials and returns those
// projected to breach their minimum stock within warningThresholdDays,
// ordered most urgent first.
//
// A material whose estimated daily consumption is zero never appears in the
// report, regardless of stock level: the report answers "what will I run out
// of, given current usage", not "what is below minimum". The suggested
// quantity covers the next full projection window independent of how close
// daysRemaining actually is.
func BuildReplenishmentReport(materials []inventory.RawMaterial, consumptionOf ConsumptionFunc, projectionDays, warningThresholdDays int) []ReplenishmentNeed {
	if projectionDays <= 0 {
		projectionDays = DefaultProjectionDays
	}
	if warningThresholdDays <= 0 {
		warningThresholdDays = DefaultWarningThresholdDays
	}

	needs := make([]ReplenishmentNeed, 0)
	for _, material := range materials {
		if !material.Active {
			continue
		}

		daily := consumptionOf(material.ID)
		daysRemaining, ok := DaysUntilCritical(material.CurrentStock, material.MinStock, daily)
		if !ok {
			// No recent outbound usage: excluded by policy
			continue
		}
		if daysRemaining > warningThresholdDays {
			continue
		}

		needs = append(needs, ReplenishmentNeed{
			MaterialID:        material.ID,
			MaterialName:      material.Name,
			Unit:              material.UnitAbbreviation,
			CurrentStock:      material.CurrentStock,
			MinStock:          material.MinStock,
			DailyConsumption:  daily,
			DaysRemaining:     daysRemaining,
			SuggestedQuantity: daily.Mul(decimal.NewFromInt(int64(projectionDays))),
			Priority:          replenishmentPriority(daysRemaining),
		})
	}

	// Most urgent first; ties keep input order
	sort.SliceStable(needs, func(i, j int) bool {
		return needs[i].DaysRemaining < needs[j].DaysRemaining
	})

	return needs
}

func replenishmentPriority(daysRemaining int) Priority {
	switch {
	case daysRemaining <= 0:
		return PriorityHigh
	case daysRemaining <= 3:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
