package forecast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockcast/backend/internal/domain/inventory"
)

// MockRawMaterialRepository is a mock implementation of RawMaterialRepository
type MockRawMaterialRepository struct {
	mock.Mock
}

func (m *MockRawMaterialRepository) Save(ctx context.Context, material *inventory.RawMaterial) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockRawMaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.RawMaterial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.RawMaterial), args.Error(1)
}

func (m *MockRawMaterialRepository) FindAllActive(ctx context.Context) ([]inventory.RawMaterial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.RawMaterial), args.Error(1)
}

func (m *MockRawMaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLotRepository is a mock implementation of LotRepository
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Lot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) FindActiveByMaterial(ctx context.Context, rawMaterialID uuid.UUID) ([]inventory.Lot, error) {
	args := m.Called(ctx, rawMaterialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) FindActiveWithExpiration(ctx context.Context) ([]inventory.Lot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Lot), args.Error(1)
}

// MockMovementRepository is a mock implementation of MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Save(ctx context.Context, movement *inventory.InventoryMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) FindByMaterial(ctx context.Context, rawMaterialID uuid.UUID, limit int) ([]inventory.InventoryMovement, error) {
	args := m.Called(ctx, rawMaterialID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryMovement), args.Error(1)
}

func (m *MockMovementRepository) FindOutboundSince(ctx context.Context, rawMaterialID uuid.UUID, since time.Time) ([]inventory.InventoryMovement, error) {
	args := m.Called(ctx, rawMaterialID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryMovement), args.Error(1)
}

// memoryCache is an in-process ReportCache for tests
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	return raw, ok
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func newTestService(materialRepo *MockRawMaterialRepository, lotRepo *MockLotRepository, movementRepo *MockMovementRepository, now time.Time) *Service {
	svc := NewService(materialRepo, lotRepo, movementRepo, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func newTestMaterial(t *testing.T, name string, currentStock, minStock int64) *inventory.RawMaterial {
	t.Helper()
	material, err := inventory.NewRawMaterial(name, "kilogram", "kg", decimal.NewFromInt(minStock))
	require.NoError(t, err)
	material.CurrentStock = decimal.NewFromInt(currentStock)
	return material
}

func outboundMovement(t *testing.T, materialID uuid.UUID, qty int64, date time.Time) inventory.InventoryMovement {
	t.Helper()
	mv, err := inventory.NewInventoryMovement(materialID, inventory.MovementOutbound, decimal.NewFromInt(qty), date)
	require.NoError(t, err)
	return *mv
}

func TestService_FleetProjection(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("projects each active material", func(t *testing.T) {
		materialRepo := new(MockRawMaterialRepository)
		lotRepo := new(MockLotRepository)
		movementRepo := new(MockMovementRepository)
		material := newTestMaterial(t, "Flour", 100, 20)

		materialRepo.On("FindAllActive", ctx).Return([]inventory.RawMaterial{*material}, nil)
		movementRepo.On("FindOutboundSince", ctx, material.ID, mock.AnythingOfType("time.Time")).
			Return([]inventory.InventoryMovement{
				outboundMovement(t, material.ID, 60, now.AddDate(0, 0, -5)),
			}, nil)
		expiry := now.AddDate(0, 0, 10)
		lot, err := inventory.NewLot(material.ID, "L-1", &expiry, decimal.NewFromInt(15))
		require.NoError(t, err)
		lotRepo.On("FindActiveByMaterial", ctx, material.ID).Return([]inventory.Lot{*lot}, nil)

		svc := newTestService(materialRepo, lotRepo, movementRepo, now)
		results, err := svc.FleetProjection(ctx, 30)

		require.NoError(t, err)
		require.Len(t, results, 1)
		r := results[0]
		assert.Equal(t, "Flour", r.MaterialName)
		assert.InDelta(t, 2.0, r.DailyConsumption, 1e-9) // 60/30
		assert.InDelta(t, 40.0, r.ProjectedStock, 1e-9)  // 100 - 2*30
		assert.Equal(t, 30, r.HorizonDays)
		assert.False(t, r.BelowMinimum)
		require.NotNil(t, r.DaysUntilCritical)
		assert.Equal(t, 40, *r.DaysUntilCritical) // (100-20)/2
		require.Len(t, r.ExpiringLots, 1)
		assert.Equal(t, 10, r.ExpiringLots[0].DaysUntil)
		assert.InDelta(t, 15.0, r.TotalExpiring, 1e-9)
	})

	t.Run("movement read failure degrades to zero consumption", func(t *testing.T) {
		materialRepo := new(MockRawMaterialRepository)
		lotRepo := new(MockLotRepository)
		movementRepo := new(MockMovementRepository)
		material := newTestMaterial(t, "Sugar", 100, 20)

		materialRepo.On("FindAllActive", ctx).Return([]inventory.RawMaterial{*material}, nil)
		movementRepo.On("FindOutboundSince", ctx, material.ID, mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("connection reset"))
		lotRepo.On("FindActiveByMaterial", ctx, material.ID).Return([]inventory.Lot{}, nil)

		svc := newTestService(materialRepo, lotRepo, movementRepo, now)
		results, err := svc.FleetProjection(ctx, 30)

		require.NoError(t, err, "one material's read failure must not abort the report")
		require.Len(t, results, 1)
		assert.Zero(t, results[0].DailyConsumption)
		assert.InDelta(t, 100.0, results[0].ProjectedStock, 1e-9)
		assert.Nil(t, results[0].DaysUntilCritical)
	})
}

func TestService_MaterialDailyProjection(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("rejects end date before start date", func(t *testing.T) {
		svc := newTestService(new(MockRawMaterialRepository), new(MockLotRepository), new(MockMovementRepository), now)

		_, err := svc.MaterialDailyProjection(ctx, uuid.New(), now, now.AddDate(0, 0, -1))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "End date")
	})

	t.Run("rejects zero-length range", func(t *testing.T) {
		svc := newTestService(new(MockRawMaterialRepository), new(MockLotRepository), new(MockMovementRepository), now)

		_, err := svc.MaterialDailyProjection(ctx, uuid.New(), now, now)

		require.Error(t, err)
	})

	t.Run("simulates the trajectory day by day", func(t *testing.T) {
		materialRepo := new(MockRawMaterialRepository)
		lotRepo := new(MockLotRepository)
		movementRepo := new(MockMovementRepository)
		material := newTestMaterial(t, "Flour", 10, 0)

		materialRepo.On("FindByID", ctx, material.ID).Return(material, nil)
		movementRepo.On("FindOutboundSince", ctx, material.ID, mock.AnythingOfType("time.Time")).
			Return([]inventory.InventoryMovement{
				outboundMovement(t, material.ID, 90, now.AddDate(0, 0, -3)),
			}, nil)
		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		expiry := start
		lot, err := inventory.NewLot(material.ID, "L-1", &expiry, decimal.NewFromInt(4))
		require.NoError(t, err)
		lotRepo.On("FindActiveByMaterial", ctx, material.ID).Return([]inventory.Lot{*lot}, nil)

		svc := newTestService(materialRepo, lotRepo, movementRepo, now)
		resp, err := svc.MaterialDailyProjection(ctx, material.ID, start, start.AddDate(0, 0, 1))

		require.NoError(t, err)
		assert.Equal(t, 1, resp.HorizonDays)
		require.Len(t, resp.Points, 1)
		// daily = 90/30 = 3; max(0,10-3)=7 then max(0,7-4)=3
		assert.InDelta(t, 3.0, resp.Points[0].ProjectedStock, 1e-9)
		assert.InDelta(t, 4.0, resp.Points[0].ExpiredToday, 1e-9)
	})
}

func TestService_ReplenishmentReport(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("includes only materials nearing their minimum", func(t *testing.T) {
		materialRepo := new(MockRawMaterialRepository)
		lotRepo := new(MockLotRepository)
		movementRepo := new(MockMovementRepository)
		urgent := newTestMaterial(t, "Flour", 25, 20) // (25-20)/3 = 1 day
		idle := newTestMaterial(t, "Salt", 5, 50)     // below minimum but unused

		materialRepo.On("FindAllActive", ctx).Return([]inventory.RawMaterial{*urgent, *idle}, nil)
		movementRepo.On("FindOutboundSince", ctx, urgent.ID, mock.AnythingOfType("time.Time")).
			Return([]inventory.InventoryMovement{
				outboundMovement(t, urgent.ID, 90, now.AddDate(0, 0, -2)),
			}, nil)
		movementRepo.On("FindOutboundSince", ctx, idle.ID, mock.AnythingOfType("time.Time")).
			Return([]inventory.InventoryMovement{}, nil)

		svc := newTestService(materialRepo, lotRepo, movementRepo, now)
		needs, err := svc.ReplenishmentReport(ctx, 30, 7)

		require.NoError(t, err)
		require.Len(t, needs, 1)
		assert.Equal(t, "Flour", needs[0].MaterialName)
		assert.Equal(t, 1, needs[0].DaysRemaining)
		assert.Equal(t, "Media", needs[0].Priority)
		assert.InDelta(t, 90.0, needs[0].SuggestedQuantity, 1e-9) // 3 * 30
	})

	t.Run("serves repeat requests from cache", func(t *testing.T) {
		materialRepo := new(MockRawMaterialRepository)
		lotRepo := new(MockLotRepository)
		movementRepo := new(MockMovementRepository)

		materialRepo.On("FindAllActive", ctx).Return([]inventory.RawMaterial{}, nil).Once()

		svc := newTestService(materialRepo, lotRepo, movementRepo, now)
		svc.SetCache(newMemoryCache())

		_, err := svc.ReplenishmentReport(ctx, 30, 7)
		require.NoError(t, err)
		_, err = svc.ReplenishmentReport(ctx, 30, 7)
		require.NoError(t, err)

		materialRepo.AssertNumberOfCalls(t, "FindAllActive", 1)
	})
}

func TestService_ExpirationReport(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("groups lots by material with display identity", func(t *testing.T) {
		materialRepo := new(MockRawMaterialRepository)
		lotRepo := new(MockLotRepository)
		movementRepo := new(MockMovementRepository)
		material := newTestMaterial(t, "Cream", 40, 10)

		soon := now.AddDate(0, 0, 3)
		later := now.AddDate(0, 0, 12)
		lot1, err := inventory.NewLot(material.ID, "C-1", &soon, decimal.NewFromInt(5))
		require.NoError(t, err)
		lot2, err := inventory.NewLot(material.ID, "C-2", &later, decimal.NewFromInt(8))
		require.NoError(t, err)

		lotRepo.On("FindActiveWithExpiration", ctx).Return([]inventory.Lot{*lot2, *lot1}, nil)
		materialRepo.On("FindAllActive", ctx).Return([]inventory.RawMaterial{*material}, nil)

		svc := newTestService(materialRepo, lotRepo, movementRepo, now)
		groups, err := svc.ExpirationReport(ctx, 30)

		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "Cream", groups[0].MaterialName)
		require.Len(t, groups[0].Lots, 2)
		assert.Equal(t, "C-1", groups[0].Lots[0].Code)
		assert.Equal(t, "Alta", groups[0].Lots[0].Priority)
		assert.Equal(t, "C-2", groups[0].Lots[1].Code)
		assert.Equal(t, "Media", groups[0].Lots[1].Priority)
	})

	t.Run("omits lots of deactivated materials", func(t *testing.T) {
		materialRepo := new(MockRawMaterialRepository)
		lotRepo := new(MockLotRepository)
		movementRepo := new(MockMovementRepository)
		material := newTestMaterial(t, "Cream", 40, 10)
		retiredID := uuid.New()

		soon := now.AddDate(0, 0, 3)
		activeLot, err := inventory.NewLot(material.ID, "C-1", &soon, decimal.NewFromInt(5))
		require.NoError(t, err)
		orphanLot, err := inventory.NewLot(retiredID, "R-1", &soon, decimal.NewFromInt(9))
		require.NoError(t, err)

		lotRepo.On("FindActiveWithExpiration", ctx).Return([]inventory.Lot{*activeLot, *orphanLot}, nil)
		materialRepo.On("FindAllActive", ctx).Return([]inventory.RawMaterial{*material}, nil)

		svc := newTestService(materialRepo, lotRepo, movementRepo, now)
		groups, err := svc.ExpirationReport(ctx, 30)

		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, material.ID.String(), groups[0].MaterialID)
		assert.Equal(t, "Cream", groups[0].MaterialName)
		require.Len(t, groups[0].Lots, 1)
		assert.Equal(t, "C-1", groups[0].Lots[0].Code)
	})
}
