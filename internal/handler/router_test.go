package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/handler"
	"github.com/easycloudbook/cloudbook-api/internal/infra/cache"
	"github.com/easycloudbook/cloudbook-api/internal/infra/events"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/infra/storage"
	"github.com/easycloudbook/cloudbook-api/internal/ledger"
	"github.com/easycloudbook/cloudbook-api/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := storage.NewStore(storage.NewMemory(), "memory", metrics, logger)
	reportCache := cache.New[[]ledger.Entry](time.Minute)

	accountsSvc := service.NewAccountsService(store, reportCache, metrics, logger)
	partiesSvc := service.NewPartiesService(store, reportCache, metrics, logger)
	productsSvc := service.NewProductsService(store, reportCache, metrics, logger)
	documentsSvc := service.NewDocumentsService(store, productsSvc, events.NoopPublisher{}, reportCache, metrics, logger)
	reportsSvc := service.NewReportsService(store, reportCache, metrics, logger)

	return handler.NewRouter(accountsSvc, partiesSvc, productsSvc, documentsSvc, reportsSvc, store, metrics, logger)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAccountsCRUD(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/accounts", domain.Account{
		Name:           "Bank",
		Number:         "1001",
		Classification: domain.ClassAsset,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created account has no id")
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/accounts/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/accounts?q=bank", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("list: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/v1/accounts/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/accounts/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestCreateAccount_InvalidClassification(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/accounts", domain.Account{
		Name:           "Weird",
		Classification: "Imaginary",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateInvoice_UnknownCustomerIs404(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/invoices", domain.SalesInvoice{
		CustomerID: "missing",
		Items:      []domain.LineItem{{Quantity: domain.AmountFromInt(1), Rate: domain.AmountFromInt(10)}},
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateJournal_UnbalancedIs422(t *testing.T) {
	router := newTestRouter(t)

	var bank, sales domain.Account
	for name, target := range map[string]*domain.Account{"Bank": &bank, "Sales": &sales} {
		class := domain.ClassAsset
		if name == "Sales" {
			class = domain.ClassRevenue
		}
		rec := doJSON(t, router, http.MethodPost, "/v1/accounts", domain.Account{Name: name, Classification: class})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: %d", name, rec.Code)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
	}

	rec := doJSON(t, router, http.MethodPost, "/v1/journals", domain.ManualJournal{
		Lines: []domain.JournalLine{
			{AccountID: bank.ID, Debit: domain.AmountFromInt(100)},
			{AccountID: sales.ID, Credit: domain.AmountFromInt(50)},
		},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCustomerLedgerEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/customers", domain.Customer{Name: "Acme Traders"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create customer: %d", rec.Code)
	}
	var cust domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &cust); err != nil {
		t.Fatalf("decode customer: %v", err)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/invoices", domain.SalesInvoice{
		CustomerID: cust.ID,
		Date:       domain.NewDate(2026, time.March, 3),
		Items:      []domain.LineItem{{Quantity: domain.AmountFromInt(1), Rate: domain.AmountFromInt(1200)}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/v1/receipts", domain.Receipt{
		ReceivedFrom: cust.ID,
		Date:         domain.NewDate(2026, time.March, 10),
		Amount:       domain.AmountFromInt(500),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create receipt: %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/v1/reports/ledger/customers/%s", cust.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ledger: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report domain.LedgerReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(report.Rows))
	}
	if report.ClosingBalance.String() != "700" {
		t.Errorf("closing = %s, want 700", report.ClosingBalance)
	}
}

func TestTrialBalanceEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/reports/trial-balance", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var tb domain.TrialBalance
	if err := json.Unmarshal(rec.Body.Bytes(), &tb); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tb.Rows) != 0 {
		t.Errorf("rows = %d, want 0 for empty books", len(tb.Rows))
	}
}

func TestOpsMetricsSummary(t *testing.T) {
	router := newTestRouter(t)

	// Prior traffic so the request counters carry real values.
	if rec := doJSON(t, router, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/v1/accounts/nope", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing account: %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/v1/metrics/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snap struct {
		TotalRequests int64   `json:"total_requests"`
		ErrorRate     float64 `json:"error_rate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if snap.TotalRequests < 2 {
		t.Errorf("total_requests = %d, want at least 2", snap.TotalRequests)
	}
	if snap.ErrorRate <= 0 {
		t.Errorf("error_rate = %v, want > 0 after a 404", snap.ErrorRate)
	}
}
