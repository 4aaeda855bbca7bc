package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/infra/storage"
	"github.com/easycloudbook/cloudbook-api/internal/ledger"
	"github.com/easycloudbook/cloudbook-api/internal/port"
)

const reportCacheName = "reports"

// ReportsService computes ledgers and the trial balance. Computed
// entry sequences are cached per subject; date and text filters are
// applied per request on top of the cached fold, so a filtered view
// never re-folds balances.
type ReportsService struct {
	store   *storage.Store
	cache   port.Cache[[]ledger.Entry]
	metrics *observability.Metrics
	logger  *zap.Logger
}

func NewReportsService(store *storage.Store, c port.Cache[[]ledger.Entry], metrics *observability.Metrics, logger *zap.Logger) *ReportsService {
	return &ReportsService{store: store, cache: c, metrics: metrics, logger: logger}
}

// toRows converts computed entries into API rows.
func toRows(entries []ledger.Entry) []domain.LedgerRow {
	rows := make([]domain.LedgerRow, len(entries))
	for i, e := range entries {
		rows[i] = domain.LedgerRow{
			Date:      domain.Date{Time: e.Date},
			Type:      e.Type,
			Reference: e.Reference,
			Narration: e.Narration,
			Party:     e.Party,
			Debit:     domain.NewAmount(e.Debit),
			Credit:    domain.NewAmount(e.Credit),
			Balance:   domain.NewAmount(e.Balance),
		}
	}
	return rows
}

// AccountLedger returns the running-balance ledger of one
// chart-of-accounts account, optionally bounded by date and filtered
// by a text query.
func (s *ReportsService) AccountLedger(ctx context.Context, id string, from, to time.Time, query string) (*domain.LedgerReport, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("account_ledger", time.Since(start)) }()

	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	var account *domain.Account
	for i := range accounts {
		if accounts[i].ID == id {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return nil, &domain.ErrNotFound{Resource: "account", ID: id}
	}

	entries, ok := s.cache.Get("account:" + id)
	if ok {
		s.metrics.IncrCacheHit(reportCacheName)
	} else {
		s.metrics.IncrCacheMiss(reportCacheName)

		var (
			journals []domain.ManualJournal
			contras  []domain.ContraEntry
			receipts []domain.Receipt
			payments []domain.Payment
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			journals, err = s.store.ListManualJournals(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			contras, err = s.store.ListContraEntries(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			receipts, err = s.store.ListReceipts(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			payments, err = s.store.ListPayments(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		subject := ledger.Subject{
			ID:             account.ID,
			Kind:           ledger.KindAccount,
			Classification: account.Classification,
			OpeningBalance: account.OpeningBalance.Decimal,
			OpeningDate:    account.OpeningBalanceDate.Time,
		}
		entries = ledger.Compute(subject, ledger.AccountTransactions(id, journals, contras, receipts, payments))
		s.cache.Set("account:"+id, entries)
		s.metrics.IncrLedgerComputed(string(ledger.KindAccount))
	}

	filtered := ledger.Filter(entries, from, to, query)
	return &domain.LedgerReport{
		SubjectID:      account.ID,
		SubjectName:    account.Name,
		SubjectKind:    string(ledger.KindAccount),
		Classification: account.Classification,
		Rows:           toRows(filtered),
		ClosingBalance: domain.NewAmount(ledger.Closing(filtered)),
	}, nil
}

// CustomerLedger returns the receivable ledger of one customer.
func (s *ReportsService) CustomerLedger(ctx context.Context, id string, from, to time.Time, query string) (*domain.LedgerReport, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("customer_ledger", time.Since(start)) }()

	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	var customer *domain.Customer
	for i := range customers {
		if customers[i].ID == id {
			customer = &customers[i]
			break
		}
	}
	if customer == nil {
		return nil, &domain.ErrNotFound{Resource: "customer", ID: id}
	}

	entries, ok := s.cache.Get("customer:" + id)
	if ok {
		s.metrics.IncrCacheHit(reportCacheName)
	} else {
		s.metrics.IncrCacheMiss(reportCacheName)

		var (
			invoices []domain.SalesInvoice
			receipts []domain.Receipt
			returns  []domain.SalesReturn
			notes    []domain.CreditNote
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			invoices, err = s.store.ListSalesInvoices(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			receipts, err = s.store.ListReceipts(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			returns, err = s.store.ListSalesReturns(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			notes, err = s.store.ListCreditNotes(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		subject := ledger.Subject{
			ID:             customer.ID,
			Kind:           ledger.KindCustomer,
			OpeningBalance: customer.OpeningBalance.Decimal,
			OpeningDate:    customer.OpeningBalanceDate.Time,
		}
		entries = ledger.Compute(subject, ledger.CustomerTransactions(id, invoices, receipts, returns, notes))
		s.cache.Set("customer:"+id, entries)
		s.metrics.IncrLedgerComputed(string(ledger.KindCustomer))
	}

	filtered := ledger.Filter(entries, from, to, query)
	return &domain.LedgerReport{
		SubjectID:      customer.ID,
		SubjectName:    customer.Name,
		SubjectKind:    string(ledger.KindCustomer),
		Rows:           toRows(filtered),
		ClosingBalance: domain.NewAmount(ledger.Closing(filtered)),
	}, nil
}

// VendorLedger returns the payable ledger of one vendor.
func (s *ReportsService) VendorLedger(ctx context.Context, id string, from, to time.Time, query string) (*domain.LedgerReport, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("vendor_ledger", time.Since(start)) }()

	vendors, err := s.store.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	var vendor *domain.Vendor
	for i := range vendors {
		if vendors[i].ID == id {
			vendor = &vendors[i]
			break
		}
	}
	if vendor == nil {
		return nil, &domain.ErrNotFound{Resource: "vendor", ID: id}
	}

	entries, ok := s.cache.Get("vendor:" + id)
	if ok {
		s.metrics.IncrCacheHit(reportCacheName)
	} else {
		s.metrics.IncrCacheMiss(reportCacheName)

		var (
			bills    []domain.PurchaseBill
			payments []domain.Payment
			returns  []domain.PurchaseReturn
			notes    []domain.DebitNote
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			bills, err = s.store.ListPurchaseBills(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			payments, err = s.store.ListPayments(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			returns, err = s.store.ListPurchaseReturns(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			notes, err = s.store.ListDebitNotes(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		subject := ledger.Subject{
			ID:             vendor.ID,
			Kind:           ledger.KindVendor,
			OpeningBalance: vendor.OpeningBalance.Decimal,
			OpeningDate:    vendor.OpeningBalanceDate.Time,
		}
		entries = ledger.Compute(subject, ledger.VendorTransactions(id, bills, payments, returns, notes))
		s.cache.Set("vendor:"+id, entries)
		s.metrics.IncrLedgerComputed(string(ledger.KindVendor))
	}

	filtered := ledger.Filter(entries, from, to, query)
	return &domain.LedgerReport{
		SubjectID:      vendor.ID,
		SubjectName:    vendor.Name,
		SubjectKind:    string(ledger.KindVendor),
		Rows:           toRows(filtered),
		ClosingBalance: domain.NewAmount(ledger.Closing(filtered)),
	}, nil
}

// TrialBalance computes every account's closing balance as of a date
// and lays each out on its normal side. A positive closing lands in
// the account's normal column; a negative one flips to the opposite
// column as an absolute value.
func (s *ReportsService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("trial_balance", time.Since(start)) }()

	var (
		accounts []domain.Account
		journals []domain.ManualJournal
		contras  []domain.ContraEntry
		receipts []domain.Receipt
		payments []domain.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.store.ListAccounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		journals, err = s.store.ListManualJournals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		contras, err = s.store.ListContraEntries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		receipts, err = s.store.ListReceipts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.store.ListPayments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{
		AsOf: domain.Date{Time: asOf},
		Rows: make([]domain.TrialBalanceRow, 0, len(accounts)),
	}
	totalDebit := domain.NewAmount(decimal.Zero)
	totalCredit := domain.NewAmount(decimal.Zero)

	for _, acc := range accounts {
		subject := ledger.Subject{
			ID:             acc.ID,
			Kind:           ledger.KindAccount,
			Classification: acc.Classification,
			OpeningBalance: acc.OpeningBalance.Decimal,
			OpeningDate:    acc.OpeningBalanceDate.Time,
		}
		entries := ledger.Compute(subject, ledger.AccountTransactions(acc.ID, journals, contras, receipts, payments))
		closing := ledger.Closing(ledger.Filter(entries, time.Time{}, asOf, ""))

		row := domain.TrialBalanceRow{
			AccountID:      acc.ID,
			Number:         acc.Number,
			Name:           acc.Name,
			Classification: acc.Classification,
		}
		onNormalSide := closing.Sign() >= 0
		debitSide := acc.Classification.DebitNormal() == onNormalSide
		if debitSide {
			row.Debit = domain.NewAmount(closing.Abs())
		} else {
			row.Credit = domain.NewAmount(closing.Abs())
		}
		totalDebit = domain.NewAmount(totalDebit.Add(row.Debit.Decimal))
		totalCredit = domain.NewAmount(totalCredit.Add(row.Credit.Decimal))
		tb.Rows = append(tb.Rows, row)
	}

	sort.Slice(tb.Rows, func(i, j int) bool {
		if tb.Rows[i].Number != tb.Rows[j].Number {
			return tb.Rows[i].Number < tb.Rows[j].Number
		}
		return tb.Rows[i].Name < tb.Rows[j].Name
	})

	tb.TotalDebit = totalDebit
	tb.TotalCredit = totalCredit
	s.metrics.IncrLedgerComputed(string(ledger.KindAccount))
	return tb, nil
}
