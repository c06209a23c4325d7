package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/shared"
)

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByPaymentNumber(ctx context.Context, paymentNumber string) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, int64, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
