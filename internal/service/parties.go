package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/infra/storage"
)

// PartiesService manages the customer and vendor registries.
type PartiesService struct {
	store   *storage.Store
	caches  interface{ Flush() }
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewPartiesService creates a PartiesService. caches is flushed on
// every write since party opening balances feed the cached ledgers.
func NewPartiesService(store *storage.Store, caches interface{ Flush() }, metrics *observability.Metrics, logger *zap.Logger) *PartiesService {
	return &PartiesService{store: store, caches: caches, metrics: metrics, logger: logger}
}

// --- Customers ---

// ListCustomers returns customers, optionally filtered by substring
// over name and number.
func (s *PartiesService) ListCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return customers, nil
	}

	query = strings.ToLower(query)
	filtered := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.CustomerNumber), query) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// GetCustomer returns one customer by id.
func (s *PartiesService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "customer", ID: id}
}

// CreateCustomer validates and appends a new customer.
func (s *PartiesService) CreateCustomer(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "customer name is required"}
	}

	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	c.ID = uuid.New().String()
	if c.OpeningBalanceDate.IsZero() {
		c.OpeningBalanceDate = domain.NewDate(time.Now().Year(), time.January, 1)
	}

	customers = append(customers, c)
	if err := s.store.SaveCustomers(ctx, customers); err != nil {
		return nil, err
	}
	s.caches.Flush()

	s.logger.Info("customer created", zap.String("customer_id", c.ID))
	return &c, nil
}

// UpdateCustomer replaces an existing customer.
func (s *PartiesService) UpdateCustomer(ctx context.Context, id string, c domain.Customer) (*domain.Customer, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "customer name is required"}
	}

	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID != id {
			continue
		}
		c.ID = id
		customers[i] = c
		if err := s.store.SaveCustomers(ctx, customers); err != nil {
			return nil, err
		}
		s.caches.Flush()
		return &c, nil
	}
	return nil, &domain.ErrNotFound{Resource: "customer", ID: id}
}

// DeleteCustomer removes a customer unless documents still reference it.
func (s *PartiesService) DeleteCustomer(ctx context.Context, id string) error {
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range customers {
		if customers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.ErrNotFound{Resource: "customer", ID: id}
	}

	referenced, err := s.customerReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return &domain.ErrReferenced{Resource: "customer", ID: id}
	}

	customers = append(customers[:idx], customers[idx+1:]...)
	if err := s.store.SaveCustomers(ctx, customers); err != nil {
		return err
	}
	s.caches.Flush()
	return nil
}

func (s *PartiesService) customerReferenced(ctx context.Context, id string) (bool, error) {
	invoices, err := s.store.ListSalesInvoices(ctx)
	if err != nil {
		return false, err
	}
	for _, inv := range invoices {
		if inv.CustomerID == id {
			return true, nil
		}
	}

	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range receipts {
		if r.ReceivedFrom == id {
			return true, nil
		}
	}

	returns, err := s.store.ListSalesReturns(ctx)
	if err != nil {
		return false, err
	}
	for _, ret := range returns {
		if ret.CustomerID == id {
			return true, nil
		}
	}

	notes, err := s.store.ListCreditNotes(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range notes {
		if n.DebitAccount == id {
			return true, nil
		}
	}

	return false, nil
}

// --- Vendors ---

// ListVendors returns vendors, optionally filtered by substring over
// name and number.
func (s *PartiesService) ListVendors(ctx context.Context, query string) ([]domain.Vendor, error) {
	vendors, err := s.store.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return vendors, nil
	}

	query = strings.ToLower(query)
	filtered := make([]domain.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if strings.Contains(strings.ToLower(v.Name), query) ||
			strings.Contains(strings.ToLower(v.VendorNumber), query) {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

// GetVendor returns one vendor by id.
func (s *PartiesService) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	vendors, err := s.store.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range vendors {
		if vendors[i].ID == id {
			return &vendors[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "vendor", ID: id}
}

// CreateVendor validates and appends a new vendor.
func (s *PartiesService) CreateVendor(ctx context.Context, v domain.Vendor) (*domain.Vendor, error) {
	if strings.TrimSpace(v.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "vendor name is required"}
	}

	vendors, err := s.store.ListVendors(ctx)
	if err != nil {
		return nil, err
	}

	v.ID = uuid.New().String()
	if v.OpeningBalanceDate.IsZero() {
		v.OpeningBalanceDate = domain.NewDate(time.Now().Year(), time.January, 1)
	}

	vendors = append(vendors, v)
	if err := s.store.SaveVendors(ctx, vendors); err != nil {
		return nil, err
	}
	s.caches.Flush()

	s.logger.Info("vendor created", zap.String("vendor_id", v.ID))
	return &v, nil
}

// UpdateVendor replaces an existing vendor.
func (s *PartiesService) UpdateVendor(ctx context.Context, id string, v domain.Vendor) (*domain.Vendor, error) {
	if strings.TrimSpace(v.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "vendor name is required"}
	}

	vendors, err := s.store.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range vendors {
		if vendors[i].ID != id {
			continue
		}
		v.ID = id
		vendors[i] = v
		if err := s.store.SaveVendors(ctx, vendors); err != nil {
			return nil, err
		}
		s.caches.Flush()
		return &v, nil
	}
	return nil, &domain.ErrNotFound{Resource: "vendor", ID: id}
}

// DeleteVendor removes a vendor unless documents still reference it.
func (s *PartiesService) DeleteVendor(ctx context.Context, id string) error {
	vendors, err := s.store.ListVendors(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range vendors {
		if vendors[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.ErrNotFound{Resource: "vendor", ID: id}
	}

	referenced, err := s.vendorReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return &domain.ErrReferenced{Resource: "vendor", ID: id}
	}

	vendors = append(vendors[:idx], vendors[idx+1:]...)
	if err := s.store.SaveVendors(ctx, vendors); err != nil {
		return err
	}
	s.caches.Flush()
	return nil
}

func (s *PartiesService) vendorReferenced(ctx context.Context, id string) (bool, error) {
	bills, err := s.store.ListPurchaseBills(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range bills {
		if b.VendorID == id {
			return true, nil
		}
	}

	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range payments {
		if p.PaymentTo == id {
			return true, nil
		}
	}

	returns, err := s.store.ListPurchaseReturns(ctx)
	if err != nil {
		return false, err
	}
	for _, ret := range returns {
		if ret.VendorID == id {
			return true, nil
		}
	}

	notes, err := s.store.ListDebitNotes(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range notes {
		if n.CreditAccount == id {
			return true, nil
		}
	}

	return false, nil
}
