// Package ledger computes running-balance ledgers. The calculator is a
// pure projection: it owns no state, performs no I/O and never fails —
// malformed amounts arrive already coerced to zero by the domain types.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
)

// SubjectKind selects the sign policy for a ledger subject. Accounts
// follow their declared classification; customers are always
// debit-normal (positive = receivable) and vendors always
// credit-normal (positive = payable).
type SubjectKind string

const (
	KindAccount  SubjectKind = "account"
	KindCustomer SubjectKind = "customer"
	KindVendor   SubjectKind = "vendor"
)

// Subject is the account, customer or vendor a ledger is computed for.
type Subject struct {
	ID             string
	Kind           SubjectKind
	Classification domain.Classification
	OpeningBalance decimal.Decimal
	OpeningDate    time.Time
}

// Transaction is one normalized document posting against a subject.
// Exactly one of Debit and Credit is materially nonzero.
type Transaction struct {
	Date      time.Time
	Type      string
	Reference string
	Narration string
	Party     string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// Entry is one computed ledger row: a transaction (or the opening
// seed) with the running balance after applying it.
type Entry struct {
	Date      time.Time
	Type      string
	Reference string
	Narration string
	Party     string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Balance   decimal.Decimal
}

// debitNormal reports whether debits increase this subject's balance.
func (s Subject) debitNormal() bool {
	switch s.Kind {
	case KindCustomer:
		return true
	case KindVendor:
		return false
	}
	return s.Classification.DebitNormal()
}

// openingDate returns the subject's opening date, defaulting to the
// first day of the current year when none was recorded.
func (s Subject) openingDate() time.Time {
	if !s.OpeningDate.IsZero() {
		return s.OpeningDate
	}
	return time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Compute produces the chronological running-balance ledger for one
// subject. The result has exactly 1+len(txs) entries: the synthesized
// opening entry first (it seeds the fold regardless of its date),
// then every transaction sorted ascending by date with a stable sort,
// each carrying the accumulated balance after it.
func Compute(subject Subject, txs []Transaction) []Entry {
	entries := make([]Entry, 0, len(txs)+1)
	entries = append(entries, openingEntry(subject))

	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	debitNormal := subject.debitNormal()
	balance := subject.OpeningBalance
	for _, tx := range sorted {
		delta := tx.Debit.Sub(tx.Credit)
		if !debitNormal {
			delta = tx.Credit.Sub(tx.Debit)
		}
		balance = balance.Add(delta)
		entries = append(entries, Entry{
			Date:      tx.Date,
			Type:      tx.Type,
			Reference: tx.Reference,
			Narration: tx.Narration,
			Party:     tx.Party,
			Debit:     tx.Debit,
			Credit:    tx.Credit,
			Balance:   balance,
		})
	}
	return entries
}

// openingEntry synthesizes the seed row. Its debit/credit split is
// display only, derived from the sign of the opening balance on the
// subject's normal side; the fold seeds from the raw opening balance
// either way.
func openingEntry(subject Subject) Entry {
	e := Entry{
		Date:      subject.openingDate(),
		Type:      "Opening Balance",
		Narration: "Opening balance",
		Balance:   subject.OpeningBalance,
	}
	ob := subject.OpeningBalance
	if subject.debitNormal() {
		if ob.Sign() >= 0 {
			e.Debit = ob
		} else {
			e.Credit = ob.Neg()
		}
	} else {
		if ob.Sign() >= 0 {
			e.Credit = ob
		} else {
			e.Debit = ob.Neg()
		}
	}
	return e
}

// Closing returns the running balance of the last entry, or zero for
// an empty sequence.
func Closing(entries []Entry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}
	return entries[len(entries)-1].Balance
}
