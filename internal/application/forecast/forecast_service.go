package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockcast/backend/internal/domain/forecast"
	"github.com/stockcast/backend/internal/domain/inventory"
	"github.com/stockcast/backend/internal/domain/shared"
)

// ReportCache caches serialized report payloads. Implementations must be safe
// for concurrent use; a nil cache disables caching entirely.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// DefaultReportTTL bounds how stale a cached report may be
const DefaultReportTTL = 5 * time.Minute

// Service orchestrates the four top-level forecasting operations. It loads
// point-in-time record snapshots through the repositories and hands them to
// the pure engine in domain/forecast. A movement-read failure for one
// material degrades that material to zero consumption instead of aborting
// the whole report.
type Service struct {
	materialRepo inventory.RawMaterialRepository
	lotRepo      inventory.LotRepository
	movementRepo inventory.MovementRepository
	cache        ReportCache
	logger       *zap.Logger
	now          func() time.Time
	lookbackDays int
	reportTTL    time.Duration
}

// NewService creates a new forecasting service
func NewService(
	materialRepo inventory.RawMaterialRepository,
	lotRepo inventory.LotRepository,
	movementRepo inventory.MovementRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		materialRepo: materialRepo,
		lotRepo:      lotRepo,
		movementRepo: movementRepo,
		logger:       logger,
		now:          time.Now,
		lookbackDays: forecast.DefaultLookbackDays,
		reportTTL:    DefaultReportTTL,
	}
}

// SetCache enables report caching
func (s *Service) SetCache(cache ReportCache) {
	s.cache = cache
}

// SetLookbackDays overrides the consumption lookback window
func (s *Service) SetLookbackDays(days int) {
	if days > 0 {
		s.lookbackDays = days
	}
}

// SetReportTTL overrides how long cached reports stay fresh
func (s *Service) SetReportTTL(ttl time.Duration) {
	if ttl > 0 {
		s.reportTTL = ttl
	}
}

// FleetProjection projects stock levels for every active material over the
// given horizon (defaulting to 30 days).
func (s *Service) FleetProjection(ctx context.Context, projectionDays int) ([]ProjectionResponse, error) {
	if projectionDays <= 0 {
		projectionDays = forecast.DefaultProjectionDays
	}

	materials, err := s.materialRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	horizonEnd := now.AddDate(0, 0, projectionDays)

	results := make([]ProjectionResponse, 0, len(materials))
	for _, material := range materials {
		daily := s.dailyConsumption(ctx, material.ID, s.lookbackDays, now)
		tracker := s.lotTracker(ctx, material.ID)

		projected := forecast.ProjectEndpoint(material.CurrentStock, daily, projectionDays)

		result := forecast.ProjectionResult{
			MaterialID:       material.ID,
			MaterialName:     material.Name,
			Unit:             material.UnitAbbreviation,
			CurrentStock:     material.CurrentStock,
			MinStock:         material.MinStock,
			DailyConsumption: daily,
			ProjectedStock:   projected,
			HorizonDays:      projectionDays,
			BelowMinimum:     projected.LessThan(material.MinStock),
		}
		if days, ok := forecast.DaysUntilCritical(material.CurrentStock, material.MinStock, daily); ok {
			result.DaysUntilCritical = &days
		}

		expiring := tracker.ExpiringBy(horizonEnd)
		result.TotalExpiringInRange = forecast.TotalQuantity(expiring)
		result.ExpiringLots = make([]forecast.ExpiringLot, 0, len(expiring))
		for _, lot := range expiring {
			days, _ := forecast.DaysUntilExpiry(lot, now)
			result.ExpiringLots = append(result.ExpiringLots, forecast.ExpiringLot{
				LotID:          lot.ID,
				Code:           lot.Code,
				ExpirationDate: *lot.ExpirationDate,
				Quantity:       lot.CurrentQuantity,
				DaysUntil:      days,
			})
		}

		results = append(results, ToProjectionResponse(result))
	}

	return results, nil
}

// MaterialDailyProjection simulates one material's stock day by day between
// startDate and endDate. The range is validated, never clamped: an end date
// on or before the start date is rejected.
func (s *Service) MaterialDailyProjection(ctx context.Context, materialID uuid.UUID, startDate, endDate time.Time) (*DailyProjectionResponse, error) {
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "End date must be after start date")
	}
	horizonDays := forecast.HorizonDays(startDate, endDate)

	material, err := s.materialRepo.FindByID(ctx, materialID)
	if err != nil {
		return nil, err
	}

	daily := s.dailyConsumption(ctx, material.ID, s.lookbackDays, s.now())
	tracker := s.lotTracker(ctx, material.ID)

	points := forecast.ProjectDaily(material.CurrentStock, material.MinStock, daily, tracker, startDate, horizonDays)

	return &DailyProjectionResponse{
		MaterialID:       material.ID.String(),
		MaterialName:     material.Name,
		Unit:             material.UnitAbbreviation,
		CurrentStock:     material.CurrentStock.InexactFloat64(),
		MinStock:         material.MinStock.InexactFloat64(),
		DailyConsumption: daily.InexactFloat64(),
		StartDate:        formatDate(startDate),
		EndDate:          formatDate(endDate),
		HorizonDays:      horizonDays,
		Points:           ToDailyPointResponses(points),
	}, nil
}

// ReplenishmentReport builds the prioritized reorder list
func (s *Service) ReplenishmentReport(ctx context.Context, projectionDays, warningThresholdDays int) ([]ReplenishmentNeedResponse, error) {
	if projectionDays <= 0 {
		projectionDays = forecast.DefaultProjectionDays
	}
	if warningThresholdDays <= 0 {
		warningThresholdDays = forecast.DefaultWarningThresholdDays
	}

	cacheKey := fmt.Sprintf("forecast:replenishment:%d:%d", projectionDays, warningThresholdDays)
	var cached []ReplenishmentNeedResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	materials, err := s.materialRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	needs := forecast.BuildReplenishmentReport(materials, func(materialID uuid.UUID) decimal.Decimal {
		return s.dailyConsumption(ctx, materialID, s.lookbackDays, now)
	}, projectionDays, warningThresholdDays)

	response := ToReplenishmentResponses(needs)
	s.cacheSet(ctx, cacheKey, response)
	return response, nil
}

// ExpirationReport builds the grouped, prioritized expiration alert list
func (s *Service) ExpirationReport(ctx context.Context, alertWindowDays int) ([]ExpirationGroupResponse, error) {
	if alertWindowDays <= 0 {
		alertWindowDays = forecast.DefaultAlertWindowDays
	}

	cacheKey := fmt.Sprintf("forecast:expirations:%d", alertWindowDays)
	var cached []ExpirationGroupResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	lots, err := s.lotRepo.FindActiveWithExpiration(ctx)
	if err != nil {
		return nil, err
	}
	materials, err := s.materialRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	info := make(map[uuid.UUID]forecast.MaterialInfo, len(materials))
	for _, material := range materials {
		info[material.ID] = forecast.MaterialInfo{
			Name: material.Name,
			Unit: material.UnitAbbreviation,
		}
	}

	groups := forecast.BuildExpirationAlerts(lots, info, alertWindowDays, s.now())

	response := ToExpirationResponses(groups)
	s.cacheSet(ctx, cacheKey, response)
	return response, nil
}

// dailyConsumption estimates a material's velocity, degrading to zero when
// the movement history cannot be read. A single material's failure must not
// abort a fleet-wide scan; the degradation is logged here and nowhere else.
func (s *Service) dailyConsumption(ctx context.Context, materialID uuid.UUID, lookbackDays int, now time.Time) decimal.Decimal {
	since := now.AddDate(0, 0, -lookbackDays)
	movements, err := s.movementRepo.FindOutboundSince(ctx, materialID, since)
	if err != nil {
		s.logger.Warn("movement history unavailable, treating consumption as zero",
			zap.String("material_id", materialID.String()),
			zap.Error(err))
		return decimal.Zero
	}
	return forecast.EstimateDailyConsumption(movements, materialID, lookbackDays, now)
}

// lotTracker loads a material's active lots, degrading to an empty tracker
// when the lot collection cannot be read.
func (s *Service) lotTracker(ctx context.Context, materialID uuid.UUID) *forecast.LotTracker {
	lots, err := s.lotRepo.FindActiveByMaterial(ctx, materialID)
	if err != nil {
		s.logger.Warn("lot collection unavailable, projecting without expirations",
			zap.String("material_id", materialID.String()),
			zap.Error(err))
		return forecast.NewLotTracker(nil)
	}
	return forecast.NewLotTracker(lots)
}

func (s *Service) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("discarding malformed cached report", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("skipping cache write for unserializable report", zap.String("key", key), zap.Error(err))
		return
	}
	s.cache.Set(ctx, key, raw, s.reportTTL)
}
