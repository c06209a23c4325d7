package partner

import (
	"context"

	"github.com/google/uuid"
	auditapp "github.com/smeops/backend/internal/application/audit"
	"github.com/smeops/backend/internal/domain/partner"
	"github.com/smeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService handles customer master data. Balances are never set
// here; only the order and payment workflows move them.
type CustomerService struct {
	repo     partner.CustomerRepository
	recorder *auditapp.Recorder
	logger   *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo partner.CustomerRepository, recorder *auditapp.Recorder, logger *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, recorder: recorder, logger: logger}
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, actorID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.repo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithDetail("code", req.Code)
	}

	customer, err := partner.NewCustomer(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	customer.Notes = req.Notes

	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "customer", customer.ID, "create", nil, ToCustomerResponse(customer))
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List returns customers matching the filter
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) ([]CustomerResponse, int64, error) {
	filter.Normalize()
	customers, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]CustomerResponse, 0, len(customers))
	for idx := range customers {
		responses = append(responses, ToCustomerResponse(&customers[idx]))
	}
	return responses, total, nil
}

// Update changes customer contact details
func (s *CustomerService) Update(ctx context.Context, actorID, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := ToCustomerResponse(customer)

	if err := customer.UpdateContact(req.Name, req.Phone, req.Email, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "customer", customer.ID, "update", before, ToCustomerResponse(customer))
	resp := ToCustomerResponse(customer)
	return &resp, nil
}
