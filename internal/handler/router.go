package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/infra/storage"
	"github.com/easycloudbook/cloudbook-api/internal/service"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(
	accountsSvc *service.AccountsService,
	partiesSvc *service.PartiesService,
	productsSvc *service.ProductsService,
	documentsSvc *service.DocumentsService,
	reportsSvc *service.ReportsService,
	store *storage.Store,
	metrics *observability.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger, metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(store, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Chart of accounts
		r.Get("/accounts", listAccountsHandler(accountsSvc, logger))
		r.Post("/accounts", createAccountHandler(accountsSvc, logger))
		r.Get("/accounts/{accountId}", getAccountHandler(accountsSvc, logger))
		r.Put("/accounts/{accountId}", updateAccountHandler(accountsSvc, logger))
		r.Delete("/accounts/{accountId}", deleteAccountHandler(accountsSvc, logger))

		// Customers
		r.Get("/customers", listCustomersHandler(partiesSvc, logger))
		r.Post("/customers", createCustomerHandler(partiesSvc, logger))
		r.Get("/customers/{customerId}", getCustomerHandler(partiesSvc, logger))
		r.Put("/customers/{customerId}", updateCustomerHandler(partiesSvc, logger))
		r.Delete("/customers/{customerId}", deleteCustomerHandler(partiesSvc, logger))

		// Vendors
		r.Get("/vendors", listVendorsHandler(partiesSvc, logger))
		r.Post("/vendors", createVendorHandler(partiesSvc, logger))
		r.Get("/vendors/{vendorId}", getVendorHandler(partiesSvc, logger))
		r.Put("/vendors/{vendorId}", updateVendorHandler(partiesSvc, logger))
		r.Delete("/vendors/{vendorId}", deleteVendorHandler(partiesSvc, logger))

		// Products & services
		r.Get("/products", listProductsHandler(productsSvc, logger))
		r.Post("/products", createProductHandler(productsSvc, logger))
		r.Get("/products/{productId}", getProductHandler(productsSvc, logger))
		r.Put("/products/{productId}", updateProductHandler(productsSvc, logger))
		r.Delete("/products/{productId}", deleteProductHandler(productsSvc, logger))

		// Documents
		r.Get("/invoices", listSalesInvoicesHandler(documentsSvc, logger))
		r.Post("/invoices", createSalesInvoiceHandler(documentsSvc, logger))
		r.Get("/invoices/{documentId}", getSalesInvoiceHandler(documentsSvc, logger))
		r.Get("/sales-orders", listSalesOrdersHandler(documentsSvc, logger))
		r.Post("/sales-orders", createSalesOrderHandler(documentsSvc, logger))
		r.Get("/sales-orders/{documentId}", getSalesOrderHandler(documentsSvc, logger))
		r.Get("/sales-returns", listSalesReturnsHandler(documentsSvc, logger))
		r.Post("/sales-returns", createSalesReturnHandler(documentsSvc, logger))
		r.Get("/sales-returns/{documentId}", getSalesReturnHandler(documentsSvc, logger))
		r.Get("/bills", listPurchaseBillsHandler(documentsSvc, logger))
		r.Post("/bills", createPurchaseBillHandler(documentsSvc, logger))
		r.Get("/bills/{documentId}", getPurchaseBillHandler(documentsSvc, logger))
		r.Get("/purchase-returns", listPurchaseReturnsHandler(documentsSvc, logger))
		r.Post("/purchase-returns", createPurchaseReturnHandler(documentsSvc, logger))
		r.Get("/purchase-returns/{documentId}", getPurchaseReturnHandler(documentsSvc, logger))
		r.Get("/receipts", listReceiptsHandler(documentsSvc, logger))
		r.Post("/receipts", createReceiptHandler(documentsSvc, logger))
		r.Get("/receipts/{documentId}", getReceiptHandler(documentsSvc, logger))
		r.Get("/payments", listPaymentsHandler(documentsSvc, logger))
		r.Post("/payments", createPaymentHandler(documentsSvc, logger))
		r.Get("/payments/{documentId}", getPaymentHandler(documentsSvc, logger))
		r.Get("/credit-notes", listCreditNotesHandler(documentsSvc, logger))
		r.Post("/credit-notes", createCreditNoteHandler(documentsSvc, logger))
		r.Get("/credit-notes/{documentId}", getCreditNoteHandler(documentsSvc, logger))
		r.Get("/debit-notes", listDebitNotesHandler(documentsSvc, logger))
		r.Post("/debit-notes", createDebitNoteHandler(documentsSvc, logger))
		r.Get("/debit-notes/{documentId}", getDebitNoteHandler(documentsSvc, logger))
		r.Get("/contra", listContraEntriesHandler(documentsSvc, logger))
		r.Post("/contra", createContraEntryHandler(documentsSvc, logger))
		r.Get("/contra/{documentId}", getContraEntryHandler(documentsSvc, logger))
		r.Get("/journals", listManualJournalsHandler(documentsSvc, logger))
		r.Post("/journals", createManualJournalHandler(documentsSvc, logger))
		r.Get("/journals/{documentId}", getManualJournalHandler(documentsSvc, logger))

		// Reports
		r.Get("/reports/ledger/accounts/{accountId}", accountLedgerHandler(reportsSvc, logger))
		r.Get("/reports/ledger/customers/{customerId}", customerLedgerHandler(reportsSvc, logger))
		r.Get("/reports/ledger/vendors/{vendorId}", vendorLedgerHandler(reportsSvc, logger))
		r.Get("/reports/trial-balance", trialBalanceHandler(reportsSvc, logger))

		// Ops
		r.Get("/metrics/summary", opsMetricsHandler(metrics, logger))
	})

	return r
}

// ============================================================
// Health & ops
// ============================================================

func healthzHandler(store *storage.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "cloudbook-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		start := time.Now()
		err := store.Ping(ctx)
		latency := time.Since(start).Milliseconds()
		status := "healthy"
		if err != nil {
			status = "degraded"
			logger.Warn("store ping failed", zap.Error(err))
		}
		services = append(services, domain.ServiceHealth{
			Name: "store", Status: status, LatencyMs: latency, LastChecked: now,
		})

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func opsMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := metrics.GetOpsSnapshot()
		writeJSON(w, http.StatusOK, snapshot)
	}
}
