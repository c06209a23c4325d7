package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/shared"
)

// SalesOrderRepository defines persistence operations for sales orders
type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	// FindByIDForUpdate loads the order and its items under a row lock so
	// concurrent transitions on the same order are serialized.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, int64, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SalesOrder, int64, error)
	Save(ctx context.Context, order *SalesOrder) error
	// SaveWithLock persists the order only if its version column still
	// matches, returning ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, order *SalesOrder) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)
}
