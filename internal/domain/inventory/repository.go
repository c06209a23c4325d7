package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/shared"
)

// StockMovementRepository defines persistence for the movement ledger.
// The ledger is append-only: there is no update or delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *StockMovement) error
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, int64, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockMovement, int64, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]StockMovement, error)
}
