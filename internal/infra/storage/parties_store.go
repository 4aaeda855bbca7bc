package storage

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
)

// ListCustomers loads the customer registry.
func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListCustomers")
	defer span.End()

	customers, err := loadCollection[domain.Customer](ctx, s, domain.KeyCustomers)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("customers.count", len(customers)))
	return customers, nil
}

// SaveCustomers replaces the customer registry.
func (s *Store) SaveCustomers(ctx context.Context, customers []domain.Customer) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveCustomers")
	defer span.End()

	return saveCollection(ctx, s, domain.KeyCustomers, customers)
}

// ListVendors loads the vendor registry.
func (s *Store) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListVendors")
	defer span.End()

	vendors, err := loadCollection[domain.Vendor](ctx, s, domain.KeyVendors)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("vendors.count", len(vendors)))
	return vendors, nil
}

// SaveVendors replaces the vendor registry.
func (s *Store) SaveVendors(ctx context.Context, vendors []domain.Vendor) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveVendors")
	defer span.End()

	return saveCollection(ctx, s, domain.KeyVendors, vendors)
}
