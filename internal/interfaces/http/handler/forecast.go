package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	forecastapp "github.com/stockcast/backend/internal/application/forecast"
	"github.com/stockcast/backend/internal/infrastructure/config"
)

// ForecastHandler handles forecasting and alerting API endpoints
type ForecastHandler struct {
	BaseHandler
	forecastService *forecastapp.Service
	defaults        config.ForecastConfig
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastService *forecastapp.Service, defaults config.ForecastConfig) *ForecastHandler {
	return &ForecastHandler{
		forecastService: forecastService,
		defaults:        defaults,
	}
}

// Projection godoc
// @Summary      Fleet stock projection
// @Description  Project stock levels for every active material over the horizon
// @Tags         forecast
// @Produce      json
// @Param        days query int false "Projection horizon in days" default(30)
// @Success      200 {object} dto.Response
// @Router       /forecast/projection [get]
func (h *ForecastHandler) Projection(c *gin.Context) {
	days := h.intQuery(c, "days", h.defaults.ProjectionDays)

	results, err := h.forecastService.FleetProjection(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// MaterialDaily godoc
// @Summary      Day-by-day projection for one material
// @Description  Simulate a material's stock trajectory between two dates
// @Tags         forecast
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Param        start_date query string true "Start date (YYYY-MM-DD)"
// @Param        end_date query string true "End date (YYYY-MM-DD), must be after start_date"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /forecast/materials/{id}/daily [get]
func (h *ForecastHandler) MaterialDaily(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	startDate, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		h.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		h.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	projection, err := h.forecastService.MaterialDailyProjection(c.Request.Context(), id, startDate, endDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, projection)
}

// Replenishment godoc
// @Summary      Replenishment report
// @Description  Prioritized list of materials that need reordering soon
// @Tags         forecast
// @Produce      json
// @Param        projection_days query int false "Days of coverage a suggested order should provide" default(30)
// @Param        warning_threshold_days query int false "Include materials reaching their minimum within this many days" default(7)
// @Success      200 {object} dto.Response
// @Router       /forecast/replenishment [get]
func (h *ForecastHandler) Replenishment(c *gin.Context) {
	projectionDays := h.intQuery(c, "projection_days", h.defaults.ProjectionDays)
	warningThresholdDays := h.intQuery(c, "warning_threshold_days", h.defaults.WarningThresholdDays)

	needs, err := h.forecastService.ReplenishmentReport(c.Request.Context(), projectionDays, warningThresholdDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, needs)
}

// Expirations godoc
// @Summary      Expiration alerts
// @Description  Lots expiring within the alert window, grouped by material
// @Tags         forecast
// @Produce      json
// @Param        window_days query int false "Alert window in days" default(30)
// @Success      200 {object} dto.Response
// @Router       /forecast/expirations [get]
func (h *ForecastHandler) Expirations(c *gin.Context) {
	windowDays := h.intQuery(c, "window_days", h.defaults.AlertWindowDays)

	groups, err := h.forecastService.ExpirationReport(c.Request.Context(), windowDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}

// intQuery parses a positive integer query parameter, falling back to the
// configured default for missing or malformed values.
func (h *ForecastHandler) intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
