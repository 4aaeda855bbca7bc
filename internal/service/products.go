package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/infra/storage"
)

// ProductsService manages the product registry and its stock levels.
type ProductsService struct {
	store   *storage.Store
	caches  interface{ Flush() }
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewProductsService creates a ProductsService. caches is flushed on
// registry writes. Stock adjustments happen inside document posting,
// which flushes on its own.
func NewProductsService(store *storage.Store, caches interface{ Flush() }, metrics *observability.Metrics, logger *zap.Logger) *ProductsService {
	return &ProductsService{store: store, caches: caches, metrics: metrics, logger: logger}
}

// List returns products, optionally filtered by substring over name,
// code and category.
func (s *ProductsService) List(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return products, nil
	}

	query = strings.ToLower(query)
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Code), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Get returns one product by id.
func (s *ProductsService) Get(ctx context.Context, id string) (*domain.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "product", ID: id}
}

// Create validates and appends a new product. Stock is seeded from the
// opening quantity.
func (s *ProductsService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "product name is required"}
	}
	if err := validateUnits(p); err != nil {
		return nil, err
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	p.ID = uuid.New().String()
	p.Quantity = p.OpeningQuantity
	if p.IsService {
		p.Quantity = domain.AmountFromInt(0)
		p.OpeningQuantity = domain.AmountFromInt(0)
	}

	products = append(products, p)
	if err := s.store.SaveProducts(ctx, products); err != nil {
		return nil, err
	}
	s.caches.Flush()

	s.logger.Info("product created",
		zap.String("product_id", p.ID),
		zap.Bool("is_service", p.IsService),
	)
	return &p, nil
}

// Update replaces an existing product's editable fields. Stock carries
// over from the stored record.
func (s *ProductsService) Update(ctx context.Context, id string, p domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "product name is required"}
	}
	if err := validateUnits(p); err != nil {
		return nil, err
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID != id {
			continue
		}
		p.ID = id
		p.Quantity = products[i].Quantity
		products[i] = p
		if err := s.store.SaveProducts(ctx, products); err != nil {
			return nil, err
		}
		s.caches.Flush()
		return &p, nil
	}
	return nil, &domain.ErrNotFound{Resource: "product", ID: id}
}

// Delete removes a product.
func (s *ProductsService) Delete(ctx context.Context, id string) error {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)
			if err := s.store.SaveProducts(ctx, products); err != nil {
				return err
			}
			s.caches.Flush()
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "product", ID: id}
}

// AdjustStock applies a delta (in base units) to a product's stock.
// Services and unknown products are skipped: document posting must not
// fail over stock bookkeeping.
func (s *ProductsService) AdjustStock(ctx context.Context, id string, deltaBase decimal.Decimal) error {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID != id {
			continue
		}
		if products[i].IsService {
			return nil
		}
		products[i].Quantity = domain.NewAmount(products[i].Quantity.Add(deltaBase))
		return s.store.SaveProducts(ctx, products)
	}
	return nil
}

// validateUnits enforces the unit table rules: when units are defined,
// exactly one must be the base unit and every factor must be positive.
func validateUnits(p domain.Product) error {
	if len(p.Units) == 0 {
		return nil
	}
	baseCount := 0
	for _, u := range p.Units {
		if strings.TrimSpace(u.Name) == "" {
			return &domain.ErrValidation{Field: "units", Message: "unit name is required"}
		}
		if u.IsBase {
			baseCount++
		}
		if u.Factor.Sign() <= 0 {
			return &domain.ErrValidation{Field: "units", Message: "unit factor must be positive"}
		}
	}
	if baseCount != 1 {
		return &domain.ErrValidation{Field: "units", Message: "exactly one base unit is required"}
	}
	return nil
}
