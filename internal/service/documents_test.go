package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/infra/cache"
	"github.com/easycloudbook/cloudbook-api/internal/infra/events"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/infra/storage"
	"github.com/easycloudbook/cloudbook-api/internal/ledger"
	"github.com/easycloudbook/cloudbook-api/internal/service"
)

type testEnv struct {
	store     *storage.Store
	metrics   *observability.Metrics
	accounts  *service.AccountsService
	parties   *service.PartiesService
	products  *service.ProductsService
	documents *service.DocumentsService
	reports   *service.ReportsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := storage.NewStore(storage.NewMemory(), "memory", metrics, logger)
	reportCache := cache.New[[]ledger.Entry](time.Minute)
	products := service.NewProductsService(store, reportCache, metrics, logger)
	return &testEnv{
		store:     store,
		metrics:   metrics,
		accounts:  service.NewAccountsService(store, reportCache, metrics, logger),
		parties:   service.NewPartiesService(store, reportCache, metrics, logger),
		products:  products,
		documents: service.NewDocumentsService(store, products, events.NoopPublisher{}, reportCache, metrics, logger),
		reports:   service.NewReportsService(store, reportCache, metrics, logger),
	}
}

func (env *testEnv) customer(t *testing.T, name string) *domain.Customer {
	t.Helper()
	c, err := env.parties.CreateCustomer(context.Background(), domain.Customer{Name: name})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func (env *testEnv) vendor(t *testing.T, name string) *domain.Vendor {
	t.Helper()
	v, err := env.parties.CreateVendor(context.Background(), domain.Vendor{Name: name})
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	return v
}

func (env *testEnv) account(t *testing.T, name string, class domain.Classification) *domain.Account {
	t.Helper()
	a, err := env.accounts.Create(context.Background(), domain.Account{Name: name, Classification: class})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return a
}

func TestCreateSalesInvoice_ComputesTotals(t *testing.T) {
	env := newTestEnv(t)
	cust := env.customer(t, "Acme Traders")

	inv, err := env.documents.CreateSalesInvoice(context.Background(), domain.SalesInvoice{
		CustomerID: cust.ID,
		Date:       domain.NewDate(2026, time.March, 5),
		Items: []domain.LineItem{
			{Description: "Widget", Quantity: domain.AmountFromInt(2), Rate: domain.AmountFromInt(100), DiscountPercent: domain.AmountFromInt(10)},
			{Description: "Gadget", Quantity: domain.AmountFromInt(1), Rate: domain.AmountFromInt(50)},
		},
		TaxAmount: domain.AmountFromInt(5),
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	if inv.Number != "INV-0001" {
		t.Errorf("number = %q, want INV-0001", inv.Number)
	}
	if !inv.Subtotal.Equal(decimal.NewFromInt(250)) {
		t.Errorf("subtotal = %s, want 250", inv.Subtotal)
	}
	if !inv.TotalDiscount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("total discount = %s, want 20", inv.TotalDiscount)
	}
	// 250 - 20 + 5
	if !inv.GrandTotal.Equal(decimal.NewFromInt(235)) {
		t.Errorf("grand total = %s, want 235", inv.GrandTotal)
	}
	if !inv.Items[0].Total.Equal(decimal.NewFromInt(180)) {
		t.Errorf("item total = %s, want 180", inv.Items[0].Total)
	}
}

func TestCreateSalesInvoice_UnknownCustomer(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.documents.CreateSalesInvoice(context.Background(), domain.SalesInvoice{
		CustomerID: "nope",
		Items:      []domain.LineItem{{Quantity: domain.AmountFromInt(1), Rate: domain.AmountFromInt(10)}},
	})
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateSalesInvoice_RequiresItems(t *testing.T) {
	env := newTestEnv(t)
	cust := env.customer(t, "Acme Traders")

	_, err := env.documents.CreateSalesInvoice(context.Background(), domain.SalesInvoice{CustomerID: cust.ID})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestInvoiceAndBill_MoveStock(t *testing.T) {
	env := newTestEnv(t)
	cust := env.customer(t, "Acme Traders")
	vend := env.vendor(t, "Supply Co")

	p, err := env.products.Create(context.Background(), domain.Product{
		Name:            "Widget",
		OpeningQuantity: domain.AmountFromInt(10),
		Units: []domain.Unit{
			{Name: "pcs", Factor: domain.AmountFromInt(1), IsBase: true},
			{Name: "box", Factor: domain.AmountFromInt(12)},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	_, err = env.documents.CreateSalesInvoice(context.Background(), domain.SalesInvoice{
		CustomerID: cust.ID,
		Items:      []domain.LineItem{{ProductID: p.ID, Quantity: domain.AmountFromInt(2), Unit: "pcs", Rate: domain.AmountFromInt(100)}},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	got, _ := env.products.Get(context.Background(), p.ID)
	if !got.Quantity.Equal(decimal.NewFromInt(8)) {
		t.Errorf("stock after sale = %s, want 8", got.Quantity)
	}

	// A purchase of one box brings in 12 base units.
	_, err = env.documents.CreatePurchaseBill(context.Background(), domain.PurchaseBill{
		VendorID: vend.ID,
		Items:    []domain.LineItem{{ProductID: p.ID, Quantity: domain.AmountFromInt(1), Unit: "box", Rate: domain.AmountFromInt(900)}},
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}

	got, _ = env.products.Get(context.Background(), p.ID)
	if !got.Quantity.Equal(decimal.NewFromInt(20)) {
		t.Errorf("stock after purchase = %s, want 20", got.Quantity)
	}
}

func TestCreateReceipt_Validates(t *testing.T) {
	env := newTestEnv(t)
	cust := env.customer(t, "Acme Traders")

	_, err := env.documents.CreateReceipt(context.Background(), domain.Receipt{
		ReceivedFrom: cust.ID,
		Amount:       domain.AmountFromInt(0),
	})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("zero amount: err = %v, want ErrValidation", err)
	}

	rcpt, err := env.documents.CreateReceipt(context.Background(), domain.Receipt{
		ReceivedFrom: cust.ID,
		Amount:       domain.AmountFromInt(500),
	})
	if err != nil {
		t.Fatalf("create receipt: %v", err)
	}
	if rcpt.Number != "RCPT-0001" {
		t.Errorf("number = %q, want RCPT-0001", rcpt.Number)
	}
	if rcpt.Date.IsZero() {
		t.Error("date was not defaulted")
	}
}

func TestCreateContraEntry_RejectsSameAccount(t *testing.T) {
	env := newTestEnv(t)
	bank := env.account(t, "Bank", domain.ClassAsset)

	_, err := env.documents.CreateContraEntry(context.Background(), domain.ContraEntry{
		FromAccount: bank.ID,
		ToAccount:   bank.ID,
		Amount:      domain.AmountFromInt(100),
	})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateManualJournal_RejectsUnbalanced(t *testing.T) {
	env := newTestEnv(t)
	bank := env.account(t, "Bank", domain.ClassAsset)
	sales := env.account(t, "Sales", domain.ClassRevenue)

	_, err := env.documents.CreateManualJournal(context.Background(), domain.ManualJournal{
		Lines: []domain.JournalLine{
			{AccountID: bank.ID, Debit: domain.AmountFromInt(100)},
			{AccountID: sales.ID, Credit: domain.AmountFromInt(90)},
		},
	})
	var unbalanced *domain.ErrUnbalanced
	if !errors.As(err, &unbalanced) {
		t.Fatalf("err = %v, want ErrUnbalanced", err)
	}
}

func TestCreateManualJournal_LineNeedsDebitXorCredit(t *testing.T) {
	env := newTestEnv(t)
	bank := env.account(t, "Bank", domain.ClassAsset)
	sales := env.account(t, "Sales", domain.ClassRevenue)

	_, err := env.documents.CreateManualJournal(context.Background(), domain.ManualJournal{
		Lines: []domain.JournalLine{
			{AccountID: bank.ID, Debit: domain.AmountFromInt(100), Credit: domain.AmountFromInt(100)},
			{AccountID: sales.ID, Credit: domain.AmountFromInt(100)},
		},
	})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateManualJournal_Balanced(t *testing.T) {
	env := newTestEnv(t)
	bank := env.account(t, "Bank", domain.ClassAsset)
	sales := env.account(t, "Sales", domain.ClassRevenue)

	journal, err := env.documents.CreateManualJournal(context.Background(), domain.ManualJournal{
		Date: domain.NewDate(2026, time.March, 1),
		Lines: []domain.JournalLine{
			{AccountID: bank.ID, Debit: domain.AmountFromInt(250)},
			{AccountID: sales.ID, Credit: domain.AmountFromInt(250)},
		},
	})
	if err != nil {
		t.Fatalf("create journal: %v", err)
	}
	if journal.Number != "MJ-0001" {
		t.Errorf("number = %q, want MJ-0001", journal.Number)
	}
}

func TestDocumentNumbers_AreSequential(t *testing.T) {
	env := newTestEnv(t)
	cust := env.customer(t, "Acme Traders")

	for i, want := range []string{"RCPT-0001", "RCPT-0002", "RCPT-0003"} {
		rcpt, err := env.documents.CreateReceipt(context.Background(), domain.Receipt{
			ReceivedFrom: cust.ID,
			Amount:       domain.AmountFromInt(int64(i + 1)),
		})
		if err != nil {
			t.Fatalf("create receipt %d: %v", i, err)
		}
		if rcpt.Number != want {
			t.Errorf("receipt %d number = %q, want %q", i, rcpt.Number, want)
		}
	}
}

func TestPosting_RecordsOperationDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cust := env.customer(t, "Acme Traders")

	if _, err := env.documents.CreateReceipt(ctx, domain.Receipt{
		ReceivedFrom: cust.ID,
		Amount:       domain.AmountFromInt(100),
	}); err != nil {
		t.Fatalf("create receipt: %v", err)
	}

	families, err := env.metrics.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	samples := uint64(0)
	for _, family := range families {
		if family.GetName() != "cloudbook_request_duration_seconds" {
			continue
		}
		for _, metric := range family.GetMetric() {
			samples += metric.GetHistogram().GetSampleCount()
		}
	}
	if samples == 0 {
		t.Error("posting recorded no duration samples")
	}
}
