package partner

import (
	"context"

	"github.com/google/uuid"
	auditapp "github.com/smeops/backend/internal/application/audit"
	"github.com/smeops/backend/internal/domain/partner"
	"github.com/smeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SupplierService handles supplier master data
type SupplierService struct {
	repo     partner.SupplierRepository
	recorder *auditapp.Recorder
	logger   *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(repo partner.SupplierRepository, recorder *auditapp.Recorder, logger *zap.Logger) *SupplierService {
	return &SupplierService{repo: repo, recorder: recorder, logger: logger}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, actorID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.repo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithDetail("code", req.Code)
	}

	supplier, err := partner.NewSupplier(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.Notes = req.Notes

	if err := s.repo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "supplier", supplier.ID, "create", nil, ToSupplierResponse(supplier))
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List returns suppliers matching the filter
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) ([]SupplierResponse, int64, error) {
	filter.Normalize()
	suppliers, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SupplierResponse, 0, len(suppliers))
	for idx := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[idx]))
	}
	return responses, total, nil
}

// Update changes supplier contact details
func (s *SupplierService) Update(ctx context.Context, actorID, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := ToSupplierResponse(supplier)

	if err := supplier.UpdateContact(req.Name, req.Phone, req.Email, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "supplier", supplier.ID, "update", before, ToSupplierResponse(supplier))
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}
