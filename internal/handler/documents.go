package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/service"
)

// ============================================================
// Sales invoices
// ============================================================

func listSalesInvoicesHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/invoices")
		defer span.End()

		invoices, err := svc.ListSalesInvoices(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"invoices": invoices})
	}
}

func getSalesInvoiceHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/invoices/{documentId}")
		defer span.End()

		invoice, err := svc.GetSalesInvoice(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, invoice)
	}
}

func createSalesInvoiceHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/invoices")
		defer span.End()

		var req domain.SalesInvoice
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		invoice, err := svc.CreateSalesInvoice(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, invoice)
	}
}

// ============================================================
// Sales orders
// ============================================================

func listSalesOrdersHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/sales-orders")
		defer span.End()

		orders, err := svc.ListSalesOrders(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"salesOrders": orders})
	}
}

func getSalesOrderHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/sales-orders/{documentId}")
		defer span.End()

		order, err := svc.GetSalesOrder(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

func createSalesOrderHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/sales-orders")
		defer span.End()

		var req domain.SalesOrder
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		order, err := svc.CreateSalesOrder(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, order)
	}
}

// ============================================================
// Sales returns
// ============================================================

func listSalesReturnsHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/sales-returns")
		defer span.End()

		returns, err := svc.ListSalesReturns(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"salesReturns": returns})
	}
}

func getSalesReturnHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/sales-returns/{documentId}")
		defer span.End()

		ret, err := svc.GetSalesReturn(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, ret)
	}
}

func createSalesReturnHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/sales-returns")
		defer span.End()

		var req domain.SalesReturn
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ret, err := svc.CreateSalesReturn(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, ret)
	}
}

// ============================================================
// Purchase bills
// ============================================================

func listPurchaseBillsHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/bills")
		defer span.End()

		bills, err := svc.ListPurchaseBills(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"bills": bills})
	}
}

func getPurchaseBillHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/bills/{documentId}")
		defer span.End()

		bill, err := svc.GetPurchaseBill(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, bill)
	}
}

func createPurchaseBillHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/bills")
		defer span.End()

		var req domain.PurchaseBill
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		bill, err := svc.CreatePurchaseBill(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, bill)
	}
}

// ============================================================
// Purchase returns
// ============================================================

func listPurchaseReturnsHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/purchase-returns")
		defer span.End()

		returns, err := svc.ListPurchaseReturns(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"purchaseReturns": returns})
	}
}

func getPurchaseReturnHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/purchase-returns/{documentId}")
		defer span.End()

		ret, err := svc.GetPurchaseReturn(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, ret)
	}
}

func createPurchaseReturnHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/purchase-returns")
		defer span.End()

		var req domain.PurchaseReturn
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ret, err := svc.CreatePurchaseReturn(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, ret)
	}
}

// ============================================================
// Receipts
// ============================================================

func listReceiptsHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/receipts")
		defer span.End()

		receipts, err := svc.ListReceipts(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"receipts": receipts})
	}
}

func getReceiptHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/receipts/{documentId}")
		defer span.End()

		receipt, err := svc.GetReceipt(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, receipt)
	}
}

func createReceiptHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/receipts")
		defer span.End()

		var req domain.Receipt
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		receipt, err := svc.CreateReceipt(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, receipt)
	}
}

// ============================================================
// Payments
// ============================================================

func listPaymentsHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/payments")
		defer span.End()

		payments, err := svc.ListPayments(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"payments": payments})
	}
}

func getPaymentHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/payments/{documentId}")
		defer span.End()

		payment, err := svc.GetPayment(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, payment)
	}
}

func createPaymentHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/payments")
		defer span.End()

		var req domain.Payment
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		payment, err := svc.CreatePayment(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, payment)
	}
}

// ============================================================
// Credit notes
// ============================================================

func listCreditNotesHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/credit-notes")
		defer span.End()

		notes, err := svc.ListCreditNotes(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"creditNotes": notes})
	}
}

func getCreditNoteHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/credit-notes/{documentId}")
		defer span.End()

		note, err := svc.GetCreditNote(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, note)
	}
}

func createCreditNoteHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/credit-notes")
		defer span.End()

		var req domain.CreditNote
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		note, err := svc.CreateCreditNote(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, note)
	}
}

// ============================================================
// Debit notes
// ============================================================

func listDebitNotesHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/debit-notes")
		defer span.End()

		notes, err := svc.ListDebitNotes(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"debitNotes": notes})
	}
}

func getDebitNoteHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/debit-notes/{documentId}")
		defer span.End()

		note, err := svc.GetDebitNote(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, note)
	}
}

func createDebitNoteHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/debit-notes")
		defer span.End()

		var req domain.DebitNote
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		note, err := svc.CreateDebitNote(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, note)
	}
}

// ============================================================
// Contra entries
// ============================================================

func listContraEntriesHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/contra")
		defer span.End()

		contras, err := svc.ListContraEntries(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"contraEntries": contras})
	}
}

func getContraEntryHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/contra/{documentId}")
		defer span.End()

		contra, err := svc.GetContraEntry(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, contra)
	}
}

func createContraEntryHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/contra")
		defer span.End()

		var req domain.ContraEntry
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		contra, err := svc.CreateContraEntry(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, contra)
	}
}

// ============================================================
// Manual journals
// ============================================================

func listManualJournalsHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/journals")
		defer span.End()

		journals, err := svc.ListManualJournals(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"journals": journals})
	}
}

func getManualJournalHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/journals/{documentId}")
		defer span.End()

		journal, err := svc.GetManualJournal(ctx, chi.URLParam(r, "documentId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, journal)
	}
}

func createManualJournalHandler(svc *service.DocumentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/journals")
		defer span.End()

		var req domain.ManualJournal
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		journal, err := svc.CreateManualJournal(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, journal)
	}
}
