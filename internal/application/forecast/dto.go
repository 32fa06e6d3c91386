package forecast

import (
	"time"

	"github.com/stockcast/backend/internal/domain/forecast"
)

const dateLayout = "2006-01-02"

// ProjectionResponse is the per-material fleet projection payload
type ProjectionResponse struct {
	MaterialID        string                `json:"material_id"`
	MaterialName      string                `json:"material_name"`
	Unit              string                `json:"unit"`
	CurrentStock      float64               `json:"current_stock"`
	MinStock          float64               `json:"min_stock"`
	DailyConsumption  float64               `json:"daily_consumption"`
	ProjectedStock    float64               `json:"projected_stock"`
	HorizonDays       int                   `json:"horizon_days"`
	BelowMinimum      bool                  `json:"below_minimum"`
	DaysUntilCritical *int                  `json:"days_until_critical"` // null: never critical under current usage
	ExpiringLots      []ExpiringLotResponse `json:"expiring_lots"`
	TotalExpiring     float64               `json:"total_expiring"`
}

// ExpiringLotResponse describes one lot expiring within the horizon
type ExpiringLotResponse struct {
	LotID          string  `json:"lot_id"`
	Code           string  `json:"code"`
	ExpirationDate string  `json:"expiration_date"`
	Quantity       float64 `json:"quantity"`
	DaysUntil      int     `json:"days_until"`
}

// DailyPointResponse is one day of a day-by-day projection
type DailyPointResponse struct {
	Date           string  `json:"date"`
	ProjectedStock float64 `json:"projected_stock"`
	Consumption    float64 `json:"consumption"`
	ExpiredToday   float64 `json:"expired_today"`
	Alert          bool    `json:"alert"`
}

// DailyProjectionResponse wraps a single-material daily projection
type DailyProjectionResponse struct {
	MaterialID       string               `json:"material_id"`
	MaterialName     string               `json:"material_name"`
	Unit             string               `json:"unit"`
	CurrentStock     float64              `json:"current_stock"`
	MinStock         float64              `json:"min_stock"`
	DailyConsumption float64              `json:"daily_consumption"`
	StartDate        string               `json:"start_date"`
	EndDate          string               `json:"end_date"`
	HorizonDays      int                  `json:"horizon_days"`
	Points           []DailyPointResponse `json:"points"`
}

// ReplenishmentNeedResponse is one row of a replenishment report
type ReplenishmentNeedResponse struct {
	MaterialID        string  `json:"material_id"`
	MaterialName      string  `json:"material_name"`
	Unit              string  `json:"unit"`
	CurrentStock      float64 `json:"current_stock"`
	MinStock          float64 `json:"min_stock"`
	DailyConsumption  float64 `json:"daily_consumption"`
	DaysRemaining     int     `json:"days_remaining"` // Negative: already critical
	SuggestedQuantity float64 `json:"suggested_quantity"`
	Priority          string  `json:"priority"`
}

// ExpirationGroupResponse groups a material's expiring lots
type ExpirationGroupResponse struct {
	MaterialID   string             `json:"material_id"`
	MaterialName string             `json:"material_name"`
	Unit         string             `json:"unit"`
	Lots         []LotAlertResponse `json:"lots"`
}

// LotAlertResponse is one expiring lot inside an alert group
type LotAlertResponse struct {
	LotID          string  `json:"lot_id"`
	Code           string  `json:"code"`
	ExpirationDate string  `json:"expiration_date"`
	Quantity       float64 `json:"quantity"`
	DaysRemaining  int     `json:"days_remaining"`
	Priority       string  `json:"priority"`
}

// ToProjectionResponse converts an engine projection result
func ToProjectionResponse(r forecast.ProjectionResult) ProjectionResponse {
	lots := make([]ExpiringLotResponse, 0, len(r.ExpiringLots))
	for _, lot := range r.ExpiringLots {
		lots = append(lots, ExpiringLotResponse{
			LotID:          lot.LotID.String(),
			Code:           lot.Code,
			ExpirationDate: lot.ExpirationDate.Format(dateLayout),
			Quantity:       lot.Quantity.InexactFloat64(),
			DaysUntil:      lot.DaysUntil,
		})
	}
	return ProjectionResponse{
		MaterialID:        r.MaterialID.String(),
		MaterialName:      r.MaterialName,
		Unit:              r.Unit,
		CurrentStock:      r.CurrentStock.InexactFloat64(),
		MinStock:          r.MinStock.InexactFloat64(),
		DailyConsumption:  r.DailyConsumption.InexactFloat64(),
		ProjectedStock:    r.ProjectedStock.InexactFloat64(),
		HorizonDays:       r.HorizonDays,
		BelowMinimum:      r.BelowMinimum,
		DaysUntilCritical: r.DaysUntilCritical,
		ExpiringLots:      lots,
		TotalExpiring:     r.TotalExpiringInRange.InexactFloat64(),
	}
}

// ToDailyPointResponses converts a projected trajectory
func ToDailyPointResponses(points []forecast.DailyProjectionPoint) []DailyPointResponse {
	out := make([]DailyPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, DailyPointResponse{
			Date:           p.Date.Format(dateLayout),
			ProjectedStock: p.ProjectedStock.InexactFloat64(),
			Consumption:    p.Consumption.InexactFloat64(),
			ExpiredToday:   p.ExpiredToday.InexactFloat64(),
			Alert:          p.Alert,
		})
	}
	return out
}

// ToReplenishmentResponses converts a replenishment report
func ToReplenishmentResponses(needs []forecast.ReplenishmentNeed) []ReplenishmentNeedResponse {
	out := make([]ReplenishmentNeedResponse, 0, len(needs))
	for _, n := range needs {
		out = append(out, ReplenishmentNeedResponse{
			MaterialID:        n.MaterialID.String(),
			MaterialName:      n.MaterialName,
			Unit:              n.Unit,
			CurrentStock:      n.CurrentStock.InexactFloat64(),
			MinStock:          n.MinStock.InexactFloat64(),
			DailyConsumption:  n.DailyConsumption.InexactFloat64(),
			DaysRemaining:     n.DaysRemaining,
			SuggestedQuantity: n.SuggestedQuantity.InexactFloat64(),
			Priority:          string(n.Priority),
		})
	}
	return out
}

// ToExpirationResponses converts an expiration alert report
func ToExpirationResponses(groups []forecast.ExpirationAlertGroup) []ExpirationGroupResponse {
	out := make([]ExpirationGroupResponse, 0, len(groups))
	for _, g := range groups {
		lots := make([]LotAlertResponse, 0, len(g.Lots))
		for _, lot := range g.Lots {
			lots = append(lots, LotAlertResponse{
				LotID:          lot.LotID.String(),
				Code:           lot.Code,
				ExpirationDate: lot.ExpirationDate.Format(dateLayout),
				Quantity:       lot.Quantity.InexactFloat64(),
				DaysRemaining:  lot.DaysRemaining,
				Priority:       string(lot.Priority),
			})
		}
		out = append(out, ExpirationGroupResponse{
			MaterialID:   g.MaterialID.String(),
			MaterialName: g.MaterialName,
			Unit:         g.Unit,
			Lots:         lots,
		})
	}
	return out
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
