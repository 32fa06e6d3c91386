package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockcast/backend/internal/domain/inventory"
)

// Service handles raw material, lot and movement operations. The forecasting
// engine only reads the records this service maintains.
type Service struct {
	materialRepo inventory.RawMaterialRepository
	lotRepo      inventory.LotRepository
	movementRepo inventory.MovementRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewService creates a new inventory service. Multi-write operations run in a
// NoOpTransactionScope until SetTransactionScope installs a real one.
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
		txScope:      NewNoOpTransactionScope(materialRepo, lotRepo, movementRepo),
		logger:       logger,
	}
}

// SetTransactionScope installs the scope used to run multi-write operations
// atomically
func (s *Service) SetTransactionScope(scope TransactionScope) {
	if scope != nil {
		s.txScope = scope
	}
}

// CreateMaterial registers a new raw material
func (s *Service) CreateMaterial(ctx context.Context, name, unitName, unitAbbreviation string, minStock decimal.Decimal) (*MaterialResponse, error) {
	material, err := inventory.NewRawMaterial(name, unitName, unitAbbreviation, minStock)
	if err != nil {
		return nil, err
	}
	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, err
	}

	s.logger.Info("raw material created",
		zap.String("material_id", material.ID.String()),
		zap.String("name", material.Name))

	response := ToMaterialResponse(material)
	return &response, nil
}

// GetMaterial retrieves a raw material by ID
func (s *Service) GetMaterial(ctx context.Context, id uuid.UUID) (*MaterialResponse, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMaterialResponse(material)
	return &response, nil
}

// ListMaterials returns all active raw materials
func (s *Service) ListMaterials(ctx context.Context) ([]MaterialResponse, error) {
	materials, err := s.materialRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]MaterialResponse, 0, len(materials))
	for i := range materials {
		responses = append(responses, ToMaterialResponse(&materials[i]))
	}
	return responses, nil
}

// UpdateMaterial changes a material's name and unit of measure
func (s *Service) UpdateMaterial(ctx context.Context, id uuid.UUID, name, unitName, unitAbbreviation string) (*MaterialResponse, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := material.UpdateDetails(name, unitName, unitAbbreviation); err != nil {
		return nil, err
	}
	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, err
	}
	response := ToMaterialResponse(material)
	return &response, nil
}

// SetMinStock updates a material's reorder floor
func (s *Service) SetMinStock(ctx context.Context, id uuid.UUID, minStock decimal.Decimal) (*MaterialResponse, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := material.SetMinStock(minStock); err != nil {
		return nil, err
	}
	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, err
	}
	response := ToMaterialResponse(material)
	return &response, nil
}

// DeactivateMaterial removes a material from active views
func (s *Service) DeactivateMaterial(ctx context.Context, id uuid.UUID) error {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	material.Deactivate()
	return s.materialRepo.Save(ctx, material)
}

// RegisterLot receives a new lot into stock: the lot is created, the
// material's aggregate quantity grows, and an inbound movement is recorded.
// The three writes commit or roll back as one transaction.
func (s *Service) RegisterLot(ctx context.Context, materialID uuid.UUID, code string, expirationDate *time.Time, quantity decimal.Decimal) (*LotResponse, error) {
	lot, err := inventory.NewLot(materialID, code, expirationDate, quantity)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		material, err := repos.MaterialRepo().FindByID(ctx, materialID)
		if err != nil {
			return err
		}
		if err := material.ReceiveStock(quantity); err != nil {
			return err
		}

		movement, err := inventory.NewInventoryMovement(materialID, inventory.MovementInbound, quantity, time.Now())
		if err != nil {
			return err
		}

		if err := repos.LotRepo().Save(ctx, lot); err != nil {
			return err
		}
		if err := repos.MaterialRepo().Save(ctx, material); err != nil {
			return err
		}
		return repos.MovementRepo().Save(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lot registered",
		zap.String("material_id", materialID.String()),
		zap.String("lot_code", code))

	response := ToLotResponse(lot)
	return &response, nil
}

// ListLots returns the active lots of a material ordered by expiration
func (s *Service) ListLots(ctx context.Context, materialID uuid.UUID) ([]LotResponse, error) {
	lots, err := s.lotRepo.FindActiveByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	responses := make([]LotResponse, 0, len(lots))
	for i := range lots {
		responses = append(responses, ToLotResponse(&lots[i]))
	}
	return responses, nil
}

// ConsumeMaterial records an outbound movement and depletes lots in
// first-expiring-first-out order. Lot depletion, the aggregate update and the
// movement record commit or roll back as one transaction.
func (s *Service) ConsumeMaterial(ctx context.Context, materialID uuid.UUID, quantity decimal.Decimal, date time.Time) (*MovementResponse, error) {
	movement, err := inventory.NewInventoryMovement(materialID, inventory.MovementOutbound, quantity, date)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		material, err := repos.MaterialRepo().FindByID(ctx, materialID)
		if err != nil {
			return err
		}
		if err := material.ConsumeStock(quantity); err != nil {
			return err
		}

		// FEFO depletion across lots; lots arrive sorted ascending by expiration
		lots, err := repos.LotRepo().FindActiveByMaterial(ctx, materialID)
		if err != nil {
			return err
		}
		remaining := quantity
		for i := range lots {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			deducted := lots[i].Consume(remaining)
			remaining = remaining.Sub(deducted)
			if err := repos.LotRepo().Save(ctx, &lots[i]); err != nil {
				return err
			}
		}

		if err := repos.MaterialRepo().Save(ctx, material); err != nil {
			return err
		}
		return repos.MovementRepo().Save(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	response := ToMovementResponse(movement)
	return &response, nil
}

// DiscardLot deactivates a lot and writes off its remaining quantity as an
// outbound movement. The write-off and the lot deactivation commit or roll
// back as one transaction.
func (s *Service) DiscardLot(ctx context.Context, lotID uuid.UUID) error {
	var materialID uuid.UUID
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		lot, err := repos.LotRepo().FindByID(ctx, lotID)
		if err != nil {
			return err
		}
		materialID = lot.RawMaterialID
		material, err := repos.MaterialRepo().FindByID(ctx, lot.RawMaterialID)
		if err != nil {
			return err
		}

		writeOff := lot.CurrentQuantity
		lot.Discard()

		if writeOff.GreaterThan(decimal.Zero) {
			if err := material.ConsumeStock(writeOff); err != nil {
				return err
			}
			movement, err := inventory.NewInventoryMovement(lot.RawMaterialID, inventory.MovementOutbound, writeOff, time.Now())
			if err != nil {
				return err
			}
			if err := repos.MovementRepo().Save(ctx, movement); err != nil {
				return err
			}
			if err := repos.MaterialRepo().Save(ctx, material); err != nil {
				return err
			}
		}

		return repos.LotRepo().Save(ctx, lot)
	})
	if err != nil {
		return err
	}

	s.logger.Info("lot discarded",
		zap.String("lot_id", lotID.String()),
		zap.String("material_id", materialID.String()))
	return nil
}

// ListMovements returns a material's most recent movements
func (s *Service) ListMovements(ctx context.Context, materialID uuid.UUID, limit int) ([]MovementResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	movements, err := s.movementRepo.FindByMaterial(ctx, materialID, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, ToMovementResponse(&movements[i]))
	}
	return responses, nil
}
