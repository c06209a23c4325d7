package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/smeops/backend/internal/application/audit"
	"github.com/smeops/backend/internal/domain/finance"
	"github.com/smeops/backend/internal/domain/partner"
	"github.com/smeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PaymentService records and reverses payments. Every balance effect of
// a payment is captured on the payment row itself so deleting it can
// apply the exact inverse.
type PaymentService struct {
	scope        TransactionScope
	paymentRepo  finance.PaymentRepository
	customerRepo partner.CustomerRepository
	supplierRepo partner.SupplierRepository
	recorder     *auditapp.Recorder
	logger       *zap.Logger
	now          func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	scope TransactionScope,
	paymentRepo finance.PaymentRepository,
	customerRepo partner.CustomerRepository,
	supplierRepo partner.SupplierRepository,
	recorder *auditapp.Recorder,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		scope:        scope,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		recorder:     recorder,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *PaymentService) generatePaymentNumber() string {
	return "PAY-" + s.now().Format("20060102150405")
}

// Create records a payment and applies its balance effects. Incoming
// payments settle customer debt and, when tied to an order, raise that
// order's paid amount; outgoing payments settle supplier payables.
func (s *PaymentService) Create(ctx context.Context, actorID uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error) {
	payment, err := finance.NewPayment(s.generatePaymentNumber(), finance.PaymentType(req.Type), finance.PaymentMethod(req.Method), req.Amount, actorID)
	if err != nil {
		return nil, err
	}
	payment.Notes = req.Notes

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		switch payment.Type {
		case finance.PaymentTypeIncoming:
			return s.applyIncoming(ctx, repos, payment, req)
		case finance.PaymentTypeOutgoing:
			return s.applyOutgoing(ctx, repos, payment, req)
		}
		return shared.NewValidationError("Unknown payment type")
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "payment", payment.ID, "create", nil, ToPaymentResponse(payment))
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

func (s *PaymentService) applyIncoming(ctx context.Context, repos TransactionalRepositories, payment *finance.Payment, req CreatePaymentRequest) error {
	if req.CustomerID == nil {
		return shared.NewValidationError("Incoming payment requires a customer")
	}
	if req.SupplierID != nil {
		return shared.NewValidationError("Incoming payment cannot reference a supplier")
	}

	customer, err := repos.CustomerRepo().FindByIDForUpdate(ctx, *req.CustomerID)
	if err != nil {
		return err
	}

	if req.OrderID != nil {
		order, err := repos.OrderRepo().FindByIDForUpdate(ctx, *req.OrderID)
		if err != nil {
			return err
		}
		if order.CustomerID != customer.ID {
			return shared.NewValidationError("Order does not belong to this customer")
		}
		if err := order.ApplyPayment(payment.Amount); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}
	}

	if err := payment.AttachCustomer(customer.ID, req.OrderID); err != nil {
		return err
	}
	if err := payment.Validate(); err != nil {
		return err
	}
	if err := customer.SettleDebt(payment.Amount); err != nil {
		return err
	}
	if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
		return err
	}
	return repos.PaymentRepo().Create(ctx, payment)
}

func (s *PaymentService) applyOutgoing(ctx context.Context, repos TransactionalRepositories, payment *finance.Payment, req CreatePaymentRequest) error {
	if req.SupplierID == nil {
		return shared.NewValidationError("Outgoing payment requires a supplier")
	}
	if req.CustomerID != nil || req.OrderID != nil {
		return shared.NewValidationError("Outgoing payment cannot reference a customer or order")
	}

	supplier, err := repos.SupplierRepo().FindByIDForUpdate(ctx, *req.SupplierID)
	if err != nil {
		return err
	}
	if err := payment.AttachSupplier(supplier.ID); err != nil {
		return err
	}
	if err := payment.Validate(); err != nil {
		return err
	}
	if err := supplier.SettlePayable(payment.Amount); err != nil {
		return err
	}
	if err := repos.SupplierRepo().Save(ctx, supplier); err != nil {
		return err
	}
	return repos.PaymentRepo().Create(ctx, payment)
}

// Delete removes a payment and reverses its balance effects using the
// amounts stored on the row.
func (s *PaymentService) Delete(ctx context.Context, actorID, paymentID uuid.UUID) error {
	var deleted *finance.Payment

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.PaymentRepo().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		switch payment.Type {
		case finance.PaymentTypeIncoming:
			customer, err := repos.CustomerRepo().FindByIDForUpdate(ctx, *payment.CustomerID)
			if err != nil {
				return err
			}
			if err := customer.IncurDebt(payment.Amount); err != nil {
				return err
			}
			if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
				return err
			}
			if payment.OrderID != nil {
				order, err := repos.OrderRepo().FindByIDForUpdate(ctx, *payment.OrderID)
				if err != nil {
					return err
				}
				if err := order.RevertPayment(payment.Amount); err != nil {
					return err
				}
				if err := repos.OrderRepo().SaveWithLock(ctx, order); err != nil {
					return err
				}
			}
		case finance.PaymentTypeOutgoing:
			supplier, err := repos.SupplierRepo().FindByIDForUpdate(ctx, *payment.SupplierID)
			if err != nil {
				return err
			}
			if err := supplier.AddPayable(payment.Amount); err != nil {
				return err
			}
			if err := repos.SupplierRepo().Save(ctx, supplier); err != nil {
				return err
			}
		}

		deleted = payment
		return repos.PaymentRepo().Delete(ctx, paymentID)
	})
	if err != nil {
		return err
	}

	s.recorder.Record(ctx, actorID, "payment", paymentID, "delete", ToPaymentResponse(deleted), nil)
	return nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// GetByNumber retrieves a payment by its human-facing number
func (s *PaymentService) GetByNumber(ctx context.Context, paymentNumber string) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByPaymentNumber(ctx, paymentNumber)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// List returns payments matching the filter
func (s *PaymentService) List(ctx context.Context, filter shared.Filter) ([]PaymentResponse, int64, error) {
	filter.Normalize()
	payments, total, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PaymentResponse, 0, len(payments))
	for idx := range payments {
		responses = append(responses, ToPaymentResponse(&payments[idx]))
	}
	return responses, total, nil
}

// ListByOrder returns the payments applied to one order
func (s *PaymentService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, 0, len(payments))
	for idx := range payments {
		responses = append(responses, ToPaymentResponse(&payments[idx]))
	}
	return responses, nil
}

// Summary returns the open receivable and payable totals
func (s *PaymentService) Summary(ctx context.Context) (*ARAPSummary, error) {
	receivable, receivableCount, err := s.customerRepo.ReceivableSummary(ctx)
	if err != nil {
		return nil, err
	}
	payable, payableCount, err := s.supplierRepo.PayableSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &ARAPSummary{
		TotalReceivable: receivable,
		ReceivableCount: receivableCount,
		TotalPayable:    payable,
		PayableCount:    payableCount,
	}, nil
}
