package ledger_test

import (
	"testing"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/ledger"
)

func d(day int) domain.Date {
	return domain.NewDate(2026, 3, day)
}

func amt(v int64) domain.Amount {
	return domain.AmountFromInt(v)
}

func TestCustomerTransactions_MapsAllDocumentTypes(t *testing.T) {
	invoices := []domain.SalesInvoice{
		{ID: "i1", Number: "INV-0001", CustomerID: "cust-1", Date: d(2), GrandTotal: amt(1200),
			Items: []domain.LineItem{{ProductID: "p1"}, {ProductID: "p2"}}},
		{ID: "i2", Number: "INV-0002", CustomerID: "cust-other", Date: d(2), GrandTotal: amt(999)},
	}
	receipts := []domain.Receipt{
		{ID: "r1", Number: "RCPT-0001", ReceivedFrom: "cust-1", Date: d(3), Amount: amt(500)},
	}
	returns := []domain.SalesReturn{
		{ID: "sr1", Number: "SRN-0001", CustomerID: "cust-1", Date: d(4), GrandTotal: amt(100),
			Items: []domain.LineItem{{ProductID: "p1"}}},
	}
	notes := []domain.CreditNote{
		{ID: "cn1", Number: "CN-0001", DebitAccount: "cust-1", Date: d(5), Amount: amt(25)},
	}

	txs := ledger.CustomerTransactions("cust-1", invoices, receipts, returns, notes)

	if len(txs) != 4 {
		t.Fatalf("expected 4 transactions, got %d", len(txs))
	}

	inv := txs[0]
	if !inv.Debit.Equal(amt(1200).Decimal) || inv.Narration != "Invoice for 2 items" {
		t.Errorf("invoice mapping wrong: debit=%s narration=%q", inv.Debit, inv.Narration)
	}
	rcpt := txs[1]
	if !rcpt.Credit.Equal(amt(500).Decimal) || rcpt.Narration != "Payment received" {
		t.Errorf("receipt mapping wrong: credit=%s narration=%q", rcpt.Credit, rcpt.Narration)
	}
	ret := txs[2]
	if !ret.Credit.Equal(amt(100).Decimal) || ret.Narration != "Return of 1 items" {
		t.Errorf("sales return mapping wrong: credit=%s narration=%q", ret.Credit, ret.Narration)
	}
	note := txs[3]
	if !note.Credit.Equal(amt(25).Decimal) || note.Narration != "Credit issued" {
		t.Errorf("credit note mapping wrong: credit=%s narration=%q", note.Credit, note.Narration)
	}
}

func TestCustomerTransactions_KeepsExplicitNarration(t *testing.T) {
	receipts := []domain.Receipt{
		{ID: "r1", Number: "RCPT-0001", ReceivedFrom: "cust-1", Date: d(3), Amount: amt(500),
			Narration: "Partial settlement"},
	}

	txs := ledger.CustomerTransactions("cust-1", nil, receipts, nil, nil)

	if len(txs) != 1 || txs[0].Narration != "Partial settlement" {
		t.Fatalf("expected explicit narration to survive, got %+v", txs)
	}
}

func TestVendorTransactions_MapsAllDocumentTypes(t *testing.T) {
	bills := []domain.PurchaseBill{
		{ID: "b1", Number: "BILL-0001", VendorID: "vend-1", Date: d(2), GrandTotal: amt(800),
			Items: []domain.LineItem{{ProductID: "p1"}}},
	}
	payments := []domain.Payment{
		{ID: "pm1", Number: "PMT-0001", PaymentTo: "vend-1", Date: d(3), Amount: amt(500)},
		{ID: "pm2", Number: "PMT-0002", PaymentTo: "vend-other", Date: d(3), Amount: amt(1)},
	}
	returns := []domain.PurchaseReturn{
		{ID: "pr1", Number: "PRN-0001", VendorID: "vend-1", Date: d(4), GrandTotal: amt(60),
			Items: []domain.LineItem{{ProductID: "p1"}}},
	}
	notes := []domain.DebitNote{
		{ID: "dn1", Number: "DN-0001", CreditAccount: "vend-1", Date: d(5), Amount: amt(15)},
	}

	txs := ledger.VendorTransactions("vend-1", bills, payments, returns, notes)

	if len(txs) != 4 {
		t.Fatalf("expected 4 transactions, got %d", len(txs))
	}
	if !txs[0].Credit.Equal(amt(800).Decimal) {
		t.Errorf("bill should credit the payable, got credit=%s debit=%s", txs[0].Credit, txs[0].Debit)
	}
	if !txs[1].Debit.Equal(amt(500).Decimal) || txs[1].Narration != "Payment made" {
		t.Errorf("payment mapping wrong: debit=%s narration=%q", txs[1].Debit, txs[1].Narration)
	}
	if !txs[2].Debit.Equal(amt(60).Decimal) {
		t.Errorf("purchase return should debit the payable, got %s", txs[2].Debit)
	}
	if !txs[3].Debit.Equal(amt(15).Decimal) || txs[3].Narration != "Debit note issued" {
		t.Errorf("debit note mapping wrong: debit=%s narration=%q", txs[3].Debit, txs[3].Narration)
	}
}

func TestAccountTransactions_JournalLinesAndContra(t *testing.T) {
	journals := []domain.ManualJournal{
		{ID: "j1", Number: "MJ-0001", Date: d(2), Narration: "Depreciation",
			Lines: []domain.JournalLine{
				{AccountID: "acc-1", Debit: amt(40)},
				{AccountID: "acc-2", Credit: amt(40)},
			}},
	}
	contras := []domain.ContraEntry{
		{ID: "c1", Number: "CONT-0001", FromAccount: "acc-1", ToAccount: "acc-3", Date: d(3), Amount: amt(70)},
	}

	txs := ledger.AccountTransactions("acc-1", journals, contras, nil, nil)

	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if !txs[0].Debit.Equal(amt(40).Decimal) || txs[0].Narration != "Depreciation" {
		t.Errorf("journal line mapping wrong: %+v", txs[0])
	}
	// acc-1 is the source of the contra, so it is credited.
	if !txs[1].Credit.Equal(amt(70).Decimal) || txs[1].Party != "acc-3" {
		t.Errorf("contra mapping wrong: %+v", txs[1])
	}
}

func TestAccountTransactions_CashMovements(t *testing.T) {
	receipts := []domain.Receipt{
		{ID: "r1", Number: "RCPT-0001", ReceivedFrom: "cust-1", DepositTo: "acc-cash", Date: d(2), Amount: amt(500)},
	}
	payments := []domain.Payment{
		{ID: "pm1", Number: "PMT-0001", PaymentTo: "vend-1", PaidFrom: "acc-cash", Date: d(3), Amount: amt(200)},
	}

	txs := ledger.AccountTransactions("acc-cash", nil, nil, receipts, payments)

	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if !txs[0].Debit.Equal(amt(500).Decimal) {
		t.Errorf("deposit should debit the cash account, got %+v", txs[0])
	}
	if !txs[1].Credit.Equal(amt(200).Decimal) {
		t.Errorf("payment should credit the cash account, got %+v", txs[1])
	}
}
