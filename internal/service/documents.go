package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/infra/storage"
	"github.com/easycloudbook/cloudbook-api/internal/port"
)

// DocumentsService validates, numbers and persists the eleven source
// document types, then runs post-side effects: stock movements, event
// publication and report-cache invalidation.
type DocumentsService struct {
	store     *storage.Store
	products  *ProductsService
	publisher port.EventPublisher
	caches    interface{ Flush() }
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewDocumentsService creates a DocumentsService. caches is flushed
// whenever a document posts, since any cached ledger may now be stale.
func NewDocumentsService(
	store *storage.Store,
	products *ProductsService,
	publisher port.EventPublisher,
	caches interface{ Flush() },
	metrics *observability.Metrics,
	logger *zap.Logger,
) *DocumentsService {
	return &DocumentsService{
		store:     store,
		products:  products,
		publisher: publisher,
		caches:    caches,
		metrics:   metrics,
		logger:    logger,
	}
}

// docNumber formats the next sequential reference for a collection.
func docNumber(prefix string, existing int) string {
	return fmt.Sprintf("%s-%04d", prefix, existing+1)
}

// posted runs the shared post-commit side effects. Event delivery is
// best effort: the document is already persisted, so a broker outage
// only costs the notification.
func (s *DocumentsService) posted(ctx context.Context, docType domain.DocType, id, number string, date domain.Date, amount domain.Amount) {
	s.metrics.IncrDocumentPosted(string(docType))
	s.caches.Flush()

	event := domain.DocumentPostedEvent{
		DocumentType: docType,
		DocumentID:   id,
		Reference:    number,
		Date:         date,
		Amount:       amount,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("document event publish failed",
			zap.String("document_id", id),
			zap.String("type", string(docType)),
			zap.Error(err),
		)
	}

	s.logger.Info("document posted",
		zap.String("type", string(docType)),
		zap.String("reference", number),
		zap.String("amount", amount.String()),
	)
}

// normalizeItems validates line items and recomputes their totals from
// quantity, rate and discount. Returns the normalized items plus the
// document subtotal and total discount.
func normalizeItems(items []domain.LineItem) ([]domain.LineItem, decimal.Decimal, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, decimal.Zero,
			&domain.ErrValidation{Field: "items", Message: "at least one line item is required"}
	}

	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	out := make([]domain.LineItem, len(items))
	for i, item := range items {
		if item.Quantity.Sign() <= 0 {
			return nil, decimal.Zero, decimal.Zero,
				&domain.ErrValidation{Field: "items", Message: fmt.Sprintf("item %d: quantity must be positive", i+1)}
		}
		if item.Rate.Sign() < 0 {
			return nil, decimal.Zero, decimal.Zero,
				&domain.ErrValidation{Field: "items", Message: fmt.Sprintf("item %d: rate must not be negative", i+1)}
		}
		if item.DiscountPercent.Sign() != 0 && item.DiscountAmount.Sign() != 0 {
			return nil, decimal.Zero, decimal.Zero,
				&domain.ErrValidation{Field: "items", Message: fmt.Sprintf("item %d: discount is either a percentage or an amount, not both", i+1)}
		}

		raw := item.Quantity.Mul(item.Rate.Decimal)
		disc := item.DiscountAmount.Decimal
		if item.DiscountPercent.Sign() != 0 {
			disc = raw.Mul(item.DiscountPercent.Decimal).Div(decimal.NewFromInt(100))
		}

		item.Total = domain.NewAmount(raw.Sub(disc))
		out[i] = item
		subtotal = subtotal.Add(raw)
		totalDiscount = totalDiscount.Add(disc)
	}
	return out, subtotal, totalDiscount, nil
}

// adjustStock moves stock for every stocked product on the items, in
// base units. direction is +1 for goods coming in, -1 for going out.
// Missing products and services are skipped: posting never fails over
// stock bookkeeping.
func (s *DocumentsService) adjustStock(ctx context.Context, items []domain.LineItem, direction int64) {
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		product, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			continue
		}
		if product.IsService {
			continue
		}
		delta := item.Quantity.Mul(product.UnitFactor(item.Unit).Decimal)
		if direction < 0 {
			delta = delta.Neg()
		}
		if err := s.products.AdjustStock(ctx, item.ProductID, delta); err != nil {
			s.logger.Warn("stock adjustment failed",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}

func (s *DocumentsService) customerExists(ctx context.Context, id string) error {
	if id == "" {
		return &domain.ErrValidation{Field: "customerId", Message: "customer is required"}
	}
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return err
	}
	for _, c := range customers {
		if c.ID == id {
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "customer", ID: id}
}

func (s *DocumentsService) vendorExists(ctx context.Context, id string) error {
	if id == "" {
		return &domain.ErrValidation{Field: "vendorId", Message: "vendor is required"}
	}
	vendors, err := s.store.ListVendors(ctx)
	if err != nil {
		return err
	}
	for _, v := range vendors {
		if v.ID == id {
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "vendor", ID: id}
}

func (s *DocumentsService) accountExists(ctx context.Context, field, id string) error {
	if id == "" {
		return &domain.ErrValidation{Field: field, Message: "account is required"}
	}
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.ID == id {
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "account", ID: id}
}

// defaultDate fills an absent document date with today.
func defaultDate(d domain.Date) domain.Date {
	if !d.IsZero() {
		return d
	}
	now := time.Now().UTC()
	return domain.NewDate(now.Year(), now.Month(), now.Day())
}

// --- Sales invoices ---

func (s *DocumentsService) ListSalesInvoices(ctx context.Context) ([]domain.SalesInvoice, error) {
	return s.store.ListSalesInvoices(ctx)
}

func (s *DocumentsService) GetSalesInvoice(ctx context.Context, id string) (*domain.SalesInvoice, error) {
	invoices, err := s.store.ListSalesInvoices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "sales invoice", ID: id}
}

// CreateSalesInvoice posts a credit sale: the invoice debits the
// customer's receivable and moves sold stock out.
func (s *DocumentsService) CreateSalesInvoice(ctx context.Context, inv domain.SalesInvoice) (*domain.SalesInvoice, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_invoice", time.Since(start)) }()

	if err := s.customerExists(ctx, inv.CustomerID); err != nil {
		return nil, err
	}
	items, subtotal, totalDiscount, err := normalizeItems(inv.Items)
	if err != nil {
		return nil, err
	}

	invoices, err := s.store.ListSalesInvoices(ctx)
	if err != nil {
		return nil, err
	}

	inv.ID = uuid.New().String()
	inv.Number = docNumber("INV", len(invoices))
	inv.Date = defaultDate(inv.Date)
	inv.Items = items
	inv.Subtotal = domain.NewAmount(subtotal)
	inv.TotalDiscount = domain.NewAmount(totalDiscount)
	inv.GrandTotal = domain.NewAmount(subtotal.Sub(totalDiscount).Add(inv.TaxAmount.Decimal))

	invoices = append(invoices, inv)
	if err := s.store.SaveSalesInvoices(ctx, invoices); err != nil {
		return nil, err
	}

	s.adjustStock(ctx, inv.Items, -1)
	s.posted(ctx, domain.DocSalesInvoice, inv.ID, inv.Number, inv.Date, inv.GrandTotal)
	return &inv, nil
}

// --- Sales orders ---

func (s *DocumentsService) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	return s.store.ListSalesOrders(ctx)
}

func (s *DocumentsService) GetSalesOrder(ctx context.Context, id string) (*domain.SalesOrder, error) {
	orders, err := s.store.ListSalesOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "sales order", ID: id}
}

// CreateSalesOrder records a confirmed order. Orders touch neither
// stock nor any ledger.
func (s *DocumentsService) CreateSalesOrder(ctx context.Context, order domain.SalesOrder) (*domain.SalesOrder, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_sales_order", time.Since(start)) }()

	if err := s.customerExists(ctx, order.CustomerID); err != nil {
		return nil, err
	}
	items, subtotal, totalDiscount, err := normalizeItems(order.Items)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.ListSalesOrders(ctx)
	if err != nil {
		return nil, err
	}

	order.ID = uuid.New().String()
	order.Number = docNumber("SO", len(orders))
	order.Date = defaultDate(order.Date)
	order.Items = items
	order.Subtotal = domain.NewAmount(subtotal)
	order.TotalDiscount = domain.NewAmount(totalDiscount)
	order.GrandTotal = domain.NewAmount(subtotal.Sub(totalDiscount).Add(order.TaxAmount.Decimal))

	orders = append(orders, order)
	if err := s.store.SaveSalesOrders(ctx, orders); err != nil {
		return nil, err
	}

	s.posted(ctx, domain.DocSalesOrder, order.ID, order.Number, order.Date, order.GrandTotal)
	return &order, nil
}

// --- Sales returns ---

func (s *DocumentsService) ListSalesReturns(ctx context.Context) ([]domain.SalesReturn, error) {
	return s.store.ListSalesReturns(ctx)
}

func (s *DocumentsService) GetSalesReturn(ctx context.Context, id string) (*domain.SalesReturn, error) {
	returns, err := s.store.ListSalesReturns(ctx)
	if err != nil {
		return nil, err
	}
	for i := range returns {
		if returns[i].ID == id {
			return &returns[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "sales return", ID: id}
}

// CreateSalesReturn posts returned goods: credits the customer's
// receivable and moves stock back in.
func (s *DocumentsService) CreateSalesReturn(ctx context.Context, ret domain.SalesReturn) (*domain.SalesReturn, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_sales_return", time.Since(start)) }()

	if err := s.customerExists(ctx, ret.CustomerID); err != nil {
		return nil, err
	}
	items, subtotal, totalDiscount, err := normalizeItems(ret.Items)
	if err != nil {
		return nil, err
	}

	returns, err := s.store.ListSalesReturns(ctx)
	if err != nil {
		return nil, err
	}

	ret.ID = uuid.New().String()
	ret.Number = docNumber("SRN", len(returns))
	ret.Date = defaultDate(ret.Date)
	ret.Items = items
	ret.Subtotal = domain.NewAmount(subtotal)
	ret.TotalDiscount = domain.NewAmount(totalDiscount)
	ret.GrandTotal = domain.NewAmount(subtotal.Sub(totalDiscount).Add(ret.TaxAmount.Decimal))

	returns = append(returns, ret)
	if err := s.store.SaveSalesReturns(ctx, returns); err != nil {
		return nil, err
	}

	s.adjustStock(ctx, ret.Items, 1)
	s.posted(ctx, domain.DocSalesReturn, ret.ID, ret.Number, ret.Date, ret.GrandTotal)
	return &ret, nil
}

// --- Purchase bills ---

func (s *DocumentsService) ListPurchaseBills(ctx context.Context) ([]domain.PurchaseBill, error) {
	return s.store.ListPurchaseBills(ctx)
}

func (s *DocumentsService) GetPurchaseBill(ctx context.Context, id string) (*domain.PurchaseBill, error) {
	bills, err := s.store.ListPurchaseBills(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		if bills[i].ID == id {
			return &bills[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "purchase bill", ID: id}
}

// CreatePurchaseBill posts a credit purchase: credits the vendor's
// payable and moves purchased stock in.
func (s *DocumentsService) CreatePurchaseBill(ctx context.Context, bill domain.PurchaseBill) (*domain.PurchaseBill, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_bill", time.Since(start)) }()

	if err := s.vendorExists(ctx, bill.VendorID); err != nil {
		return nil, err
	}
	items, subtotal, totalDiscount, err := normalizeItems(bill.Items)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListPurchaseBills(ctx)
	if err != nil {
		return nil, err
	}

	bill.ID = uuid.New().String()
	bill.Number = docNumber("BILL", len(bills))
	bill.Date = defaultDate(bill.Date)
	bill.Items = items
	bill.Subtotal = domain.NewAmount(subtotal)
	bill.TotalDiscount = domain.NewAmount(totalDiscount)
	bill.GrandTotal = domain.NewAmount(subtotal.Sub(totalDiscount).Add(bill.TaxAmount.Decimal))

	bills = append(bills, bill)
	if err := s.store.SavePurchaseBills(ctx, bills); err != nil {
		return nil, err
	}

	s.adjustStock(ctx, bill.Items, 1)
	s.posted(ctx, domain.DocPurchaseBill, bill.ID, bill.Number, bill.Date, bill.GrandTotal)
	return &bill, nil
}

// --- Purchase returns ---

func (s *DocumentsService) ListPurchaseReturns(ctx context.Context) ([]domain.PurchaseReturn, error) {
	return s.store.ListPurchaseReturns(ctx)
}

func (s *DocumentsService) GetPurchaseReturn(ctx context.Context, id string) (*domain.PurchaseReturn, error) {
	returns, err := s.store.ListPurchaseReturns(ctx)
	if err != nil {
		return nil, err
	}
	for i := range returns {
		if returns[i].ID == id {
			return &returns[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "purchase return", ID: id}
}

// CreatePurchaseReturn posts goods sent back to a vendor: debits the
// payable and moves stock out.
func (s *DocumentsService) CreatePurchaseReturn(ctx context.Context, ret domain.PurchaseReturn) (*domain.PurchaseReturn, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_purchase_return", time.Since(start)) }()

	if err := s.vendorExists(ctx, ret.VendorID); err != nil {
		return nil, err
	}
	items, subtotal, totalDiscount, err := normalizeItems(ret.Items)
	if err != nil {
		return nil, err
	}

	returns, err := s.store.ListPurchaseReturns(ctx)
	if err != nil {
		return nil, err
	}

	ret.ID = uuid.New().String()
	ret.Number = docNumber("PRN", len(returns))
	ret.Date = defaultDate(ret.Date)
	ret.Items = items
	ret.Subtotal = domain.NewAmount(subtotal)
	ret.TotalDiscount = domain.NewAmount(totalDiscount)
	ret.GrandTotal = domain.NewAmount(subtotal.Sub(totalDiscount).Add(ret.TaxAmount.Decimal))

	returns = append(returns, ret)
	if err := s.store.SavePurchaseReturns(ctx, returns); err != nil {
		return nil, err
	}

	s.adjustStock(ctx, ret.Items, -1)
	s.posted(ctx, domain.DocPurchaseReturn, ret.ID, ret.Number, ret.Date, ret.GrandTotal)
	return &ret, nil
}

// --- Receipts ---

func (s *DocumentsService) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	return s.store.ListReceipts(ctx)
}

func (s *DocumentsService) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		if receipts[i].ID == id {
			return &receipts[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "receipt", ID: id}
}

// CreateReceipt posts money received from a customer.
func (s *DocumentsService) CreateReceipt(ctx context.Context, rcpt domain.Receipt) (*domain.Receipt, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_receipt", time.Since(start)) }()

	if rcpt.ReceivedFrom == "" {
		return nil, &domain.ErrValidation{Field: "receivedFrom", Message: "customer is required"}
	}
	if err := s.customerExists(ctx, rcpt.ReceivedFrom); err != nil {
		return nil, err
	}
	if rcpt.Amount.Sign() <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}
	if rcpt.DepositTo != "" {
		if err := s.accountExists(ctx, "depositTo", rcpt.DepositTo); err != nil {
			return nil, err
		}
	}

	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return nil, err
	}

	rcpt.ID = uuid.New().String()
	rcpt.Number = docNumber("RCPT", len(receipts))
	rcpt.Date = defaultDate(rcpt.Date)

	receipts = append(receipts, rcpt)
	if err := s.store.SaveReceipts(ctx, receipts); err != nil {
		return nil, err
	}

	s.posted(ctx, domain.DocReceipt, rcpt.ID, rcpt.Number, rcpt.Date, rcpt.Amount)
	return &rcpt, nil
}

// --- Payments ---

func (s *DocumentsService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.store.ListPayments(ctx)
}

func (s *DocumentsService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		if payments[i].ID == id {
			return &payments[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "payment", ID: id}
}

// CreatePayment posts money paid to a vendor.
func (s *DocumentsService) CreatePayment(ctx context.Context, pmt domain.Payment) (*domain.Payment, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_payment", time.Since(start)) }()

	if pmt.PaymentTo == "" {
		return nil, &domain.ErrValidation{Field: "paymentTo", Message: "vendor is required"}
	}
	if err := s.vendorExists(ctx, pmt.PaymentTo); err != nil {
		return nil, err
	}
	if pmt.Amount.Sign() <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}
	if pmt.PaidFrom != "" {
		if err := s.accountExists(ctx, "paidFrom", pmt.PaidFrom); err != nil {
			return nil, err
		}
	}

	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, err
	}

	pmt.ID = uuid.New().String()
	pmt.Number = docNumber("PMT", len(payments))
	pmt.Date = defaultDate(pmt.Date)

	payments = append(payments, pmt)
	if err := s.store.SavePayments(ctx, payments); err != nil {
		return nil, err
	}

	s.posted(ctx, domain.DocPayment, pmt.ID, pmt.Number, pmt.Date, pmt.Amount)
	return &pmt, nil
}

// --- Credit notes ---

func (s *DocumentsService) ListCreditNotes(ctx context.Context) ([]domain.CreditNote, error) {
	return s.store.ListCreditNotes(ctx)
}

func (s *DocumentsService) GetCreditNote(ctx context.Context, id string) (*domain.CreditNote, error) {
	notes, err := s.store.ListCreditNotes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].ID == id {
			return &notes[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "credit note", ID: id}
}

// CreateCreditNote posts a credit against a customer's ledger.
func (s *DocumentsService) CreateCreditNote(ctx context.Context, note domain.CreditNote) (*domain.CreditNote, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_credit_note", time.Since(start)) }()

	if note.DebitAccount == "" {
		return nil, &domain.ErrValidation{Field: "debitAccount", Message: "customer is required"}
	}
	if err := s.customerExists(ctx, note.DebitAccount); err != nil {
		return nil, err
	}
	if note.Amount.Sign() <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}

	notes, err := s.store.ListCreditNotes(ctx)
	if err != nil {
		return nil, err
	}

	note.ID = uuid.New().String()
	note.Number = docNumber("CN", len(notes))
	note.Date = defaultDate(note.Date)

	notes = append(notes, note)
	if err := s.store.SaveCreditNotes(ctx, notes); err != nil {
		return nil, err
	}

	s.posted(ctx, domain.DocCreditNote, note.ID, note.Number, note.Date, note.Amount)
	return &note, nil
}

// --- Debit notes ---

func (s *DocumentsService) ListDebitNotes(ctx context.Context) ([]domain.DebitNote, error) {
	return s.store.ListDebitNotes(ctx)
}

func (s *DocumentsService) GetDebitNote(ctx context.Context, id string) (*domain.DebitNote, error) {
	notes, err := s.store.ListDebitNotes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].ID == id {
			return &notes[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "debit note", ID: id}
}

// CreateDebitNote posts a debit against a vendor's ledger.
func (s *DocumentsService) CreateDebitNote(ctx context.Context, note domain.DebitNote) (*domain.DebitNote, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_debit_note", time.Since(start)) }()

	if note.CreditAccount == "" {
		return nil, &domain.ErrValidation{Field: "creditAccount", Message: "vendor is required"}
	}
	if err := s.vendorExists(ctx, note.CreditAccount); err != nil {
		return nil, err
	}
	if note.Amount.Sign() <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}

	notes, err := s.store.ListDebitNotes(ctx)
	if err != nil {
		return nil, err
	}

	note.ID = uuid.New().String()
	note.Number = docNumber("DN", len(notes))
	note.Date = defaultDate(note.Date)

	notes = append(notes, note)
	if err := s.store.SaveDebitNotes(ctx, notes); err != nil {
		return nil, err
	}

	s.posted(ctx, domain.DocDebitNote, note.ID, note.Number, note.Date, note.Amount)
	return &note, nil
}

// --- Contra entries ---

func (s *DocumentsService) ListContraEntries(ctx context.Context) ([]domain.ContraEntry, error) {
	return s.store.ListContraEntries(ctx)
}

func (s *DocumentsService) GetContraEntry(ctx context.Context, id string) (*domain.ContraEntry, error) {
	contras, err := s.store.ListContraEntries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range contras {
		if contras[i].ID == id {
			return &contras[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "contra entry", ID: id}
}

// CreateContraEntry posts a movement between two own accounts.
func (s *DocumentsService) CreateContraEntry(ctx context.Context, contra domain.ContraEntry) (*domain.ContraEntry, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_contra", time.Since(start)) }()

	if err := s.accountExists(ctx, "fromAccount", contra.FromAccount); err != nil {
		return nil, err
	}
	if err := s.accountExists(ctx, "toAccount", contra.ToAccount); err != nil {
		return nil, err
	}
	if contra.FromAccount == contra.ToAccount {
		return nil, &domain.ErrValidation{Field: "toAccount", Message: "from and to accounts must differ"}
	}
	if contra.Amount.Sign() <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}

	contras, err := s.store.ListContraEntries(ctx)
	if err != nil {
		return nil, err
	}

	contra.ID = uuid.New().String()
	contra.Number = docNumber("CONT", len(contras))
	contra.Date = defaultDate(contra.Date)

	contras = append(contras, contra)
	if err := s.store.SaveContraEntries(ctx, contras); err != nil {
		return nil, err
	}

	s.posted(ctx, domain.DocContraEntry, contra.ID, contra.Number, contra.Date, contra.Amount)
	return &contra, nil
}

// --- Manual journals ---

func (s *DocumentsService) ListManualJournals(ctx context.Context) ([]domain.ManualJournal, error) {
	return s.store.ListManualJournals(ctx)
}

func (s *DocumentsService) GetManualJournal(ctx context.Context, id string) (*domain.ManualJournal, error) {
	journals, err := s.store.ListManualJournals(ctx)
	if err != nil {
		return nil, err
	}
	for i := range journals {
		if journals[i].ID == id {
			return &journals[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "manual journal", ID: id}
}

// CreateManualJournal posts a free-form journal. At least two lines,
// each carrying a debit or a credit but not both, and the totals must
// balance.
func (s *DocumentsService) CreateManualJournal(ctx context.Context, journal domain.ManualJournal) (*domain.ManualJournal, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("post_journal", time.Since(start)) }()

	if len(journal.Lines) < 2 {
		return nil, &domain.ErrValidation{Field: "lines", Message: "a journal needs at least two lines"}
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range journal.Lines {
		if err := s.accountExists(ctx, "lines", line.AccountID); err != nil {
			return nil, err
		}
		if line.Debit.Sign() < 0 || line.Credit.Sign() < 0 {
			return nil, &domain.ErrValidation{Field: "lines", Message: fmt.Sprintf("line %d: amounts must not be negative", i+1)}
		}
		hasDebit := line.Debit.Sign() > 0
		hasCredit := line.Credit.Sign() > 0
		if hasDebit == hasCredit {
			return nil, &domain.ErrValidation{Field: "lines", Message: fmt.Sprintf("line %d: exactly one of debit and credit must be set", i+1)}
		}
		totalDebit = totalDebit.Add(line.Debit.Decimal)
		totalCredit = totalCredit.Add(line.Credit.Decimal)
	}
	if !totalDebit.Equal(totalCredit) {
		return nil, &domain.ErrUnbalanced{TotalDebit: totalDebit.String(), TotalCredit: totalCredit.String()}
	}

	journals, err := s.store.ListManualJournals(ctx)
	if err != nil {
		return nil, err
	}

	journal.ID = uuid.New().String()
	journal.Number = docNumber("MJ", len(journals))
	journal.Date = defaultDate(journal.Date)

	journals = append(journals, journal)
	if err := s.store.SaveManualJournals(ctx, journals); err != nil {
		return nil, err
	}

	s.posted(ctx, domain.DocManualJournal, journal.ID, journal.Number, journal.Date, domain.NewAmount(totalDebit))
	return &journal, nil
}
