package catalog

import (
	"context"

	"github.com/google/uuid"
	auditapp "github.com/smeops/backend/internal/application/audit"
	"github.com/smeops/backend/internal/domain/catalog"
	"github.com/smeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product catalog operations. Products are
// deactivated rather than deleted so movement and order references stay
// valid.
type ProductService struct {
	repo     catalog.ProductRepository
	recorder *auditapp.Recorder
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(repo catalog.ProductRepository, recorder *auditapp.Recorder, logger *zap.Logger) *ProductService {
	return &ProductService{repo: repo, recorder: recorder, logger: logger}
}

// Create registers a new product
func (s *ProductService) Create(ctx context.Context, actorID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.repo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithDetail("sku", req.SKU)
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Category, req.Unit, req.CostPrice, req.SellPrice)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	if req.MinStock > 0 {
		if err := product.SetMinStock(req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "product", product.ID, "create", nil, ToProductResponse(product))
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	filter.Normalize()
	products, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses, total, nil
}

// ListLowStock returns active products at or below their threshold
func (s *ProductService) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.repo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses, nil
}

// Update changes product details, prices and threshold
func (s *ProductService) Update(ctx context.Context, actorID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := ToProductResponse(product)

	if req.Name != nil {
		if err := product.UpdateDetails(*req.Name, valueOr(req.Category, product.Category), valueOr(req.Description, product.Description), valueOr(req.Unit, product.Unit)); err != nil {
			return nil, err
		}
	} else if req.Category != nil || req.Description != nil || req.Unit != nil {
		if err := product.UpdateDetails(product.Name, valueOr(req.Category, product.Category), valueOr(req.Description, product.Description), valueOr(req.Unit, product.Unit)); err != nil {
			return nil, err
		}
	}
	if req.CostPrice != nil || req.SellPrice != nil {
		cost := product.CostPrice
		sell := product.SellPrice
		if req.CostPrice != nil {
			cost = *req.CostPrice
		}
		if req.SellPrice != nil {
			sell = *req.SellPrice
		}
		if err := product.UpdatePrices(cost, sell); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "product", product.ID, "update", before, ToProductResponse(product))
	resp := ToProductResponse(product)
	return &resp, nil
}

// Deactivate takes a product off sale
func (s *ProductService) Deactivate(ctx context.Context, actorID, id uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	if err := s.repo.Save(ctx, product); err != nil {
		return err
	}
	s.recorder.Record(ctx, actorID, "product", product.ID, "deactivate", nil, nil)
	return nil
}

// Reactivate puts a product back on sale
func (s *ProductService) Reactivate(ctx context.Context, actorID, id uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Reactivate()
	if err := s.repo.Save(ctx, product); err != nil {
		return err
	}
	s.recorder.Record(ctx, actorID, "product", product.ID, "reactivate", nil, nil)
	return nil
}

func valueOr(ptr *string, fallback string) string {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
