package ledger

import (
	"fmt"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
)

// Normalization maps each heterogeneous document type onto the uniform
// Transaction shape the calculator folds over. Every document type
// names its party field differently (customerId, receivedFrom,
// paymentTo, debitAccount, ...), so the mapping is kept as one
// explicit, exhaustive function per subject kind rather than ad hoc
// field lookups.

// CustomerTransactions collects every posting against one customer:
// invoices debit the receivable, receipts / sales returns / credit
// notes credit it.
func CustomerTransactions(
	customerID string,
	invoices []domain.SalesInvoice,
	receipts []domain.Receipt,
	returns []domain.SalesReturn,
	notes []domain.CreditNote,
) []Transaction {
	var txs []Transaction

	for _, inv := range invoices {
		if inv.CustomerID != customerID {
			continue
		}
		txs = append(txs, Transaction{
			Date:      inv.Date.Time,
			Type:      string(domain.DocSalesInvoice),
			Reference: inv.Number,
			Narration: fmt.Sprintf("Invoice for %d items", len(inv.Items)),
			Party:     customerID,
			Debit:     inv.GrandTotal.Decimal,
		})
	}

	for _, rcpt := range receipts {
		if rcpt.ReceivedFrom != customerID {
			continue
		}
		narration := rcpt.Narration
		if narration == "" {
			narration = "Payment received"
		}
		txs = append(txs, Transaction{
			Date:      rcpt.Date.Time,
			Type:      string(domain.DocReceipt),
			Reference: rcpt.Number,
			Narration: narration,
			Party:     customerID,
			Credit:    rcpt.Amount.Decimal,
		})
	}

	for _, ret := range returns {
		if ret.CustomerID != customerID {
			continue
		}
		txs = append(txs, Transaction{
			Date:      ret.Date.Time,
			Type:      string(domain.DocSalesReturn),
			Reference: ret.Number,
			Narration: fmt.Sprintf("Return of %d items", len(ret.Items)),
			Party:     customerID,
			Credit:    ret.GrandTotal.Decimal,
		})
	}

	for _, note := range notes {
		if note.DebitAccount != customerID {
			continue
		}
		narration := note.Narration
		if narration == "" {
			narration = "Credit issued"
		}
		txs = append(txs, Transaction{
			Date:      note.Date.Time,
			Type:      string(domain.DocCreditNote),
			Reference: note.Number,
			Narration: narration,
			Party:     customerID,
			Credit:    note.Amount.Decimal,
		})
	}

	return txs
}

// VendorTransactions collects every posting against one vendor: bills
// credit the payable, payments / purchase returns / debit notes debit
// it.
func VendorTransactions(
	vendorID string,
	bills []domain.PurchaseBill,
	payments []domain.Payment,
	returns []domain.PurchaseReturn,
	notes []domain.DebitNote,
) []Transaction {
	var txs []Transaction

	for _, bill := range bills {
		if bill.VendorID != vendorID {
			continue
		}
		txs = append(txs, Transaction{
			Date:      bill.Date.Time,
			Type:      string(domain.DocPurchaseBill),
			Reference: bill.Number,
			Narration: fmt.Sprintf("Bill for %d items", len(bill.Items)),
			Party:     vendorID,
			Credit:    bill.GrandTotal.Decimal,
		})
	}

	for _, pmt := range payments {
		if pmt.PaymentTo != vendorID {
			continue
		}
		narration := pmt.Narration
		if narration == "" {
			narration = "Payment made"
		}
		txs = append(txs, Transaction{
			Date:      pmt.Date.Time,
			Type:      string(domain.DocPayment),
			Reference: pmt.Number,
			Narration: narration,
			Party:     vendorID,
			Debit:     pmt.Amount.Decimal,
		})
	}

	for _, ret := range returns {
		if ret.VendorID != vendorID {
			continue
		}
		txs = append(txs, Transaction{
			Date:      ret.Date.Time,
			Type:      string(domain.DocPurchaseReturn),
			Reference: ret.Number,
			Narration: fmt.Sprintf("Return of %d items", len(ret.Items)),
			Party:     vendorID,
			Debit:     ret.GrandTotal.Decimal,
		})
	}

	for _, note := range notes {
		if note.CreditAccount != vendorID {
			continue
		}
		narration := note.Narration
		if narration == "" {
			narration = "Debit note issued"
		}
		txs = append(txs, Transaction{
			Date:      note.Date.Time,
			Type:      string(domain.DocDebitNote),
			Reference: note.Number,
			Narration: narration,
			Party:     vendorID,
			Debit:     note.Amount.Decimal,
		})
	}

	return txs
}

// AccountTransactions collects every posting against one chart-of-
// accounts account: matching manual journal lines, contra entries
// (FromAccount is credited, ToAccount debited), receipts deposited to
// it and payments drawn from it.
func AccountTransactions(
	accountID string,
	journals []domain.ManualJournal,
	contras []domain.ContraEntry,
	receipts []domain.Receipt,
	payments []domain.Payment,
) []Transaction {
	var txs []Transaction

	for _, journal := range journals {
		for _, line := range journal.Lines {
			if line.AccountID != accountID {
				continue
			}
			narration := line.Description
			if narration == "" {
				narration = journal.Narration
			}
			txs = append(txs, Transaction{
				Date:      journal.Date.Time,
				Type:      string(domain.DocManualJournal),
				Reference: journal.Number,
				Narration: narration,
				Debit:     line.Debit.Decimal,
				Credit:    line.Credit.Decimal,
			})
		}
	}

	for _, contra := range contras {
		switch accountID {
		case contra.ToAccount:
			txs = append(txs, Transaction{
				Date:      contra.Date.Time,
				Type:      string(domain.DocContraEntry),
				Reference: contra.Number,
				Narration: contra.Narration,
				Party:     contra.FromAccount,
				Debit:     contra.Amount.Decimal,
			})
		case contra.FromAccount:
			txs = append(txs, Transaction{
				Date:      contra.Date.Time,
				Type:      string(domain.DocContraEntry),
				Reference: contra.Number,
				Narration: contra.Narration,
				Party:     contra.ToAccount,
				Credit:    contra.Amount.Decimal,
			})
		}
	}

	for _, rcpt := range receipts {
		if rcpt.DepositTo != accountID {
			continue
		}
		narration := rcpt.Narration
		if narration == "" {
			narration = "Payment received"
		}
		txs = append(txs, Transaction{
			Date:      rcpt.Date.Time,
			Type:      string(domain.DocReceipt),
			Reference: rcpt.Number,
			Narration: narration,
			Party:     rcpt.ReceivedFrom,
			Debit:     rcpt.Amount.Decimal,
		})
	}

	for _, pmt := range payments {
		if pmt.PaidFrom != accountID {
			continue
		}
		narration := pmt.Narration
		if narration == "" {
			narration = "Payment made"
		}
		txs = append(txs, Transaction{
			Date:      pmt.Date.Time,
			Type:      string(domain.DocPayment),
			Reference: pmt.Number,
			Narration: narration,
			Party:     pmt.PaymentTo,
			Credit:    pmt.Amount.Decimal,
		})
	}

	return txs
}
