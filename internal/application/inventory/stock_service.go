package inventory

import (
	"context"

	"github.com/google/uuid"
	auditapp "github.com/smeops/backend/internal/application/audit"
	"github.com/smeops/backend/internal/domain/inventory"
	"github.com/smeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockService handles the manual stock endpoints. The order workflow
// records its own movements; this service covers deliveries, manual
// issues and count corrections.
type StockService struct {
	scope        TransactionScope
	movementRepo inventory.StockMovementRepository
	recorder     *auditapp.Recorder
	logger       *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(scope TransactionScope, movementRepo inventory.StockMovementRepository, recorder *auditapp.Recorder, logger *zap.Logger) *StockService {
	return &StockService{
		scope:        scope,
		movementRepo: movementRepo,
		recorder:     recorder,
		logger:       logger,
	}
}

// StockIn receives stock. With a supplier and a unit cost the delivery
// value is added to the supplier's payable balance in the same
// transaction.
func (s *StockService) StockIn(ctx context.Context, actorID uuid.UUID, req StockInRequest) (*MovementResponse, error) {
	if req.SupplierID != nil && req.UnitCost == nil {
		return nil, shared.NewValidationError("Unit cost is required when booking a supplier delivery")
	}

	var movement *inventory.StockMovement

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}

		refs := inventory.Refs{SupplierID: req.SupplierID}
		recorded, err := inventory.Record(product, inventory.MovementTypeIn, req.Quantity, req.Reason, refs, actorID)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Create(ctx, recorded); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}

		if req.SupplierID != nil {
			supplier, err := repos.SupplierRepo().FindByIDForUpdate(ctx, *req.SupplierID)
			if err != nil {
				return err
			}
			if err := supplier.AddPayable(*req.UnitCost * int64(req.Quantity)); err != nil {
				return err
			}
			if err := repos.SupplierRepo().Save(ctx, supplier); err != nil {
				return err
			}
		}

		movement = recorded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "stock_movement", movement.ID, "stock_in", nil, ToMovementResponse(movement))
	resp := ToMovementResponse(movement)
	return &resp, nil
}

// StockOut issues stock manually
func (s *StockService) StockOut(ctx context.Context, actorID uuid.UUID, req StockOutRequest) (*MovementResponse, error) {
	var movement *inventory.StockMovement

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if !product.CanFulfill(req.Quantity) {
			return shared.NewInsufficientStockError(product.SKU, req.Quantity, product.CurrentStock)
		}

		recorded, err := inventory.Record(product, inventory.MovementTypeOut, req.Quantity, req.Reason, inventory.Refs{}, actorID)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Create(ctx, recorded); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		movement = recorded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "stock_movement", movement.ID, "stock_out", nil, ToMovementResponse(movement))
	resp := ToMovementResponse(movement)
	return &resp, nil
}

// Adjust corrects stock to match a physical count
func (s *StockService) Adjust(ctx context.Context, actorID uuid.UUID, req AdjustRequest) (*MovementResponse, error) {
	var movement *inventory.StockMovement

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}

		recorded, err := inventory.Record(product, inventory.MovementTypeAdjust, req.Quantity, req.Reason, inventory.Refs{}, actorID)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Create(ctx, recorded); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		movement = recorded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "stock_movement", movement.ID, "stock_adjust", nil, ToMovementResponse(movement))
	resp := ToMovementResponse(movement)
	return &resp, nil
}

// ListMovements returns ledger entries matching the filter
func (s *StockService) ListMovements(ctx context.Context, filter shared.Filter) ([]MovementResponse, int64, error) {
	filter.Normalize()
	movements, total, err := s.movementRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]MovementResponse, 0, len(movements))
	for idx := range movements {
		responses = append(responses, ToMovementResponse(&movements[idx]))
	}
	return responses, total, nil
}

// ListByProduct returns one product's ledger entries
func (s *StockService) ListByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]MovementResponse, int64, error) {
	filter.Normalize()
	movements, total, err := s.movementRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]MovementResponse, 0, len(movements))
	for idx := range movements {
		responses = append(responses, ToMovementResponse(&movements[idx]))
	}
	return responses, total, nil
}
