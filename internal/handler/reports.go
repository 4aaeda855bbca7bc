package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/service"
)

// ============================================================
// Ledger reports
// ============================================================

func accountLedgerHandler(svc *service.ReportsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/reports/ledger/accounts/{accountId}")
		defer span.End()

		accountID := chi.URLParam(r, "accountId")
		span.SetAttributes(attribute.String("account.id", accountID))

		from, to := parseDateRange(r)
		report, err := svc.AccountLedger(ctx, accountID, from, to, r.URL.Query().Get("q"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func customerLedgerHandler(svc *service.ReportsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/reports/ledger/customers/{customerId}")
		defer span.End()

		customerID := chi.URLParam(r, "customerId")
		span.SetAttributes(attribute.String("customer.id", customerID))

		from, to := parseDateRange(r)
		report, err := svc.CustomerLedger(ctx, customerID, from, to, r.URL.Query().Get("q"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func vendorLedgerHandler(svc *service.ReportsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/reports/ledger/vendors/{vendorId}")
		defer span.End()

		vendorID := chi.URLParam(r, "vendorId")
		span.SetAttributes(attribute.String("vendor.id", vendorID))

		from, to := parseDateRange(r)
		report, err := svc.VendorLedger(ctx, vendorID, from, to, r.URL.Query().Get("q"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func trialBalanceHandler(svc *service.ReportsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/reports/trial-balance")
		defer span.End()

		var asOf time.Time
		if v := r.URL.Query().Get("as_of"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				asOf = t
			}
		}

		tb, err := svc.TrialBalance(ctx, asOf)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tb)
	}
}
