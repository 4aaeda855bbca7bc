package storage

import (
	"context"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
)

// Each document type lives in its own append-oriented collection.

func (s *Store) ListSalesInvoices(ctx context.Context) ([]domain.SalesInvoice, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListSalesInvoices")
	defer span.End()
	return loadCollection[domain.SalesInvoice](ctx, s, domain.KeySalesInvoices)
}

func (s *Store) SaveSalesInvoices(ctx context.Context, items []domain.SalesInvoice) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveSalesInvoices")
	defer span.End()
	return saveCollection(ctx, s, domain.KeySalesInvoices, items)
}

func (s *Store) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListSalesOrders")
	defer span.End()
	return loadCollection[domain.SalesOrder](ctx, s, domain.KeySalesOrders)
}

func (s *Store) SaveSalesOrders(ctx context.Context, items []domain.SalesOrder) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveSalesOrders")
	defer span.End()
	return saveCollection(ctx, s, domain.KeySalesOrders, items)
}

func (s *Store) ListSalesReturns(ctx context.Context) ([]domain.SalesReturn, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListSalesReturns")
	defer span.End()
	return loadCollection[domain.SalesReturn](ctx, s, domain.KeySalesReturns)
}

func (s *Store) SaveSalesReturns(ctx context.Context, items []domain.SalesReturn) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveSalesReturns")
	defer span.End()
	return saveCollection(ctx, s, domain.KeySalesReturns, items)
}

func (s *Store) ListPurchaseBills(ctx context.Context) ([]domain.PurchaseBill, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListPurchaseBills")
	defer span.End()
	return loadCollection[domain.PurchaseBill](ctx, s, domain.KeyPurchaseBills)
}

func (s *Store) SavePurchaseBills(ctx context.Context, items []domain.PurchaseBill) error {
	ctx, span := tracer.Start(ctx, "Storage.SavePurchaseBills")
	defer span.End()
	return saveCollection(ctx, s, domain.KeyPurchaseBills, items)
}

func (s *Store) ListPurchaseReturns(ctx context.Context) ([]domain.PurchaseReturn, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListPurchaseReturns")
	defer span.End()
	return loadCollection[domain.PurchaseReturn](ctx, s, domain.KeyPurchaseReturns)
}

func (s *Store) SavePurchaseReturns(ctx context.Context, items []domain.PurchaseReturn) error {
	ctx, span := tracer.Start(ctx, "Storage.SavePurchaseReturns")
	defer span.End()
	return saveCollection(ctx, s, domain.KeyPurchaseReturns, items)
}

func (s *Store) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListReceipts")
	defer span.End()
	return loadCollection[domain.Receipt](ctx, s, domain.KeyReceipts)
}

func (s *Store) SaveReceipts(ctx context.Context, items []domain.Receipt) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveReceipts")
	defer span.End()
	return saveCollection(ctx, s, domain.KeyReceipts, items)
}

func (s *Store) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListPayments")
	defer span.End()
	return loadCollection[domain.Payment](ctx, s, domain.KeyPayments)
}

func (s *Store) SavePayments(ctx context.Context, items []domain.Payment) error {
	ctx, span := tracer.Start(ctx, "Storage.SavePayments")
	defer span.End()
	return saveCollection(ctx, s, domain.KeyPayments, items)
}

func (s *Store) ListCreditNotes(ctx context.Context) ([]domain.CreditNote, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListCreditNotes")
	defer span.End()
	return loadCollection[domain.CreditNote](ctx, s, domain.KeyCreditNotes)
}

func (s *Store) SaveCreditNotes(ctx context.Context, items []domain.CreditNote) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveCreditNotes")
	defer span.End()
	return saveCollection(ctx, s, domain.KeyCreditNotes, items)
}

func (s *Store) ListDebitNotes(ctx context.Context) ([]domain.DebitNote, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListDebitNotes")
	defer span.End()
	return loadCollection[domain.DebitNote](ctx, s, domain.KeyDebitNotes)
}

func (s *Store) SaveDebitNotes(ctx context.Context, items []domain.DebitNote) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveDebitNotes")
	defer span.End()
	return saveCollection(ctx, s, domain.KeyDebitNotes, items)
}

func (s *Store) ListContraEntries(ctx context.Context) ([]domain.ContraEntry, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListContraEntries")
	defer span.End()
	return loadCollection[domain.ContraEntry](ctx, s, domain.KeyContraEntries)
}

func (s *Store) SaveContraEntries(ctx context.Context, items []domain.ContraEntry) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveContraEntries")
	defer span.End()
	return saveCollection(ctx, s, domain.KeyContraEntries, items)
}

func (s *Store) ListManualJournals(ctx context.Context) ([]domain.ManualJournal, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListManualJournals")
	defer span.End()
	return loadCollection[domain.ManualJournal](ctx, s, domain.KeyManualJournals)
}

func (s *Store) SaveManualJournals(ctx context.Context, items []domain.ManualJournal) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveManualJournals")
	defer span.End()
	return saveCollection(ctx, s, domain.KeyManualJournals, items)
}
