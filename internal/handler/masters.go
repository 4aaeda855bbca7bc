package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/service"
)

// ============================================================
// Chart of accounts
// ============================================================

func listAccountsHandler(svc *service.AccountsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts")
		defer span.End()

		accounts, err := svc.List(ctx, r.URL.Query().Get("q"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
	}
}

func getAccountHandler(svc *service.AccountsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/{accountId}")
		defer span.End()

		accountID := chi.URLParam(r, "accountId")
		span.SetAttributes(attribute.String("account.id", accountID))

		account, err := svc.Get(ctx, accountID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}

func createAccountHandler(svc *service.AccountsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/accounts")
		defer span.End()

		var req domain.Account
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		account, err := svc.Create(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, account)
	}
}

func updateAccountHandler(svc *service.AccountsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/accounts/{accountId}")
		defer span.End()

		var req domain.Account
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		account, err := svc.Update(ctx, chi.URLParam(r, "accountId"), req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}

func deleteAccountHandler(svc *service.AccountsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/accounts/{accountId}")
		defer span.End()

		if err := svc.Delete(ctx, chi.URLParam(r, "accountId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Customers
// ============================================================

func listCustomersHandler(svc *service.PartiesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/customers")
		defer span.End()

		customers, err := svc.ListCustomers(ctx, r.URL.Query().Get("q"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
	}
}

func getCustomerHandler(svc *service.PartiesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/customers/{customerId}")
		defer span.End()

		customer, err := svc.GetCustomer(ctx, chi.URLParam(r, "customerId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, customer)
	}
}

func createCustomerHandler(svc *service.PartiesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/customers")
		defer span.End()

		var req domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		customer, err := svc.CreateCustomer(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, customer)
	}
}

func updateCustomerHandler(svc *service.PartiesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/customers/{customerId}")
		defer span.End()

		var req domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		customer, err := svc.UpdateCustomer(ctx, chi.URLParam(r, "customerId"), req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, customer)
	}
}

func deleteCustomerHandler(svc *service.PartiesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/customers/{customerId}")
		defer span.End()

		if err := svc.DeleteCustomer(ctx, chi.URLParam(r, "customerId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Vendors
// ============================================================

func listVendorsHandler(svc *service.PartiesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/vendors")
		defer span.End()

		vendors, err := svc.ListVendors(ctx, r.URL.Query().Get("q"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"vendors": vendors})
	}
}

func getVendorHandler(svc *service.PartiesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/vendors/{vendorId}")
		defer span.End()

		vendor, err := svc.GetVendor(ctx, chi.URLParam(r, "vendorId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vendor)
	}
}

func createVendorHandler(svc *service.PartiesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/vendors")
		defer span.End()

		var req domain.Vendor
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		vendor, err := svc.CreateVendor(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, vendor)
	}
}

func updateVendorHandler(svc *service.PartiesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/vendors/{vendorId}")
		defer span.End()

		var req domain.Vendor
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		vendor, err := svc.UpdateVendor(ctx, chi.URLParam(r, "vendorId"), req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vendor)
	}
}

func deleteVendorHandler(svc *service.PartiesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/vendors/{vendorId}")
		defer span.End()

		if err := svc.DeleteVendor(ctx, chi.URLParam(r, "vendorId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Products & services
// ============================================================

func listProductsHandler(svc *service.ProductsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/products")
		defer span.End()

		products, err := svc.List(ctx, r.URL.Query().Get("q"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": products})
	}
}

func getProductHandler(svc *service.ProductsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/products/{productId}")
		defer span.End()

		product, err := svc.Get(ctx, chi.URLParam(r, "productId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

func createProductHandler(svc *service.ProductsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/products")
		defer span.End()

		var req domain.Product
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		product, err := svc.Create(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, product)
	}
}

func updateProductHandler(svc *service.ProductsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/products/{productId}")
		defer span.End()

		var req domain.Product
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		product, err := svc.Update(ctx, chi.URLParam(r, "productId"), req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

func deleteProductHandler(svc *service.ProductsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/products/{productId}")
		defer span.End()

		if err := svc.Delete(ctx, chi.URLParam(r, "productId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
