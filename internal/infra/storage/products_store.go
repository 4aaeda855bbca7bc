package storage

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
)

// ListProducts loads the product registry.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListProducts")
	defer span.End()

	products, err := loadCollection[domain.Product](ctx, s, domain.KeyProducts)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("products.count", len(products)))
	return products, nil
}

// SaveProducts replaces the product registry.
func (s *Store) SaveProducts(ctx context.Context, products []domain.Product) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveProducts")
	defer span.End()

	return saveCollection(ctx, s, domain.KeyProducts, products)
}
