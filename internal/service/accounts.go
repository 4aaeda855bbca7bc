// Package service implements the bookkeeping use cases on top of the
// collection store: registries, document posting and ledger reports.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/infra/storage"
)

// AccountsService manages the chart of accounts.
type AccountsService struct {
	store   *storage.Store
	caches  interface{ Flush() }
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAccountsService creates an AccountsService. caches is flushed on
// every write so cached ledgers never outlive an opening-balance or
// classification change.
func NewAccountsService(store *storage.Store, caches interface{ Flush() }, metrics *observability.Metrics, logger *zap.Logger) *AccountsService {
	return &AccountsService{store: store, caches: caches, metrics: metrics, logger: logger}
}

// List returns the chart of accounts, optionally filtered by a
// case-insensitive substring over name and number.
func (s *AccountsService) List(ctx context.Context, query string) ([]domain.Account, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return accounts, nil
	}

	query = strings.ToLower(query)
	filtered := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if strings.Contains(strings.ToLower(a.Name), query) ||
			strings.Contains(strings.ToLower(a.Number), query) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Get returns one account by id.
func (s *AccountsService) Get(ctx context.Context, id string) (*domain.Account, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "account", ID: id}
}

// Create validates and appends a new account.
func (s *AccountsService) Create(ctx context.Context, acc domain.Account) (*domain.Account, error) {
	if strings.TrimSpace(acc.Name) == "" {
		return nil, &domain.ErrValidation{Field: "accName", Message: "account name is required"}
	}
	if !acc.Classification.Valid() {
		return nil, &domain.ErrValidation{Field: "accType", Message: fmt.Sprintf("unknown classification %q", acc.Classification)}
	}

	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	if acc.Number != "" {
		for _, existing := range accounts {
			if existing.Number == acc.Number {
				return nil, &domain.ErrConflict{Message: fmt.Sprintf("account number %s already exists", acc.Number)}
			}
		}
	}
	if err := validateParent(accounts, acc, ""); err != nil {
		return nil, err
	}

	acc.ID = uuid.New().String()
	acc.Serial = nextSerial(accounts)
	if acc.OpeningBalanceDate.IsZero() {
		acc.OpeningBalanceDate = domain.NewDate(time.Now().Year(), time.January, 1)
	}

	accounts = append(accounts, acc)
	if err := s.store.SaveAccounts(ctx, accounts); err != nil {
		return nil, err
	}
	s.caches.Flush()

	s.logger.Info("account created",
		zap.String("account_id", acc.ID),
		zap.String("classification", string(acc.Classification)),
	)
	return &acc, nil
}

// Update replaces an existing account's editable fields.
func (s *AccountsService) Update(ctx context.Context, id string, acc domain.Account) (*domain.Account, error) {
	if strings.TrimSpace(acc.Name) == "" {
		return nil, &domain.ErrValidation{Field: "accName", Message: "account name is required"}
	}
	if !acc.Classification.Valid() {
		return nil, &domain.ErrValidation{Field: "accType", Message: fmt.Sprintf("unknown classification %q", acc.Classification)}
	}

	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}
		if err := validateParent(accounts, acc, id); err != nil {
			return nil, err
		}
		acc.ID = id
		acc.Serial = accounts[i].Serial
		accounts[i] = acc
		if err := s.store.SaveAccounts(ctx, accounts); err != nil {
			return nil, err
		}
		s.caches.Flush()
		return &acc, nil
	}
	return nil, &domain.ErrNotFound{Resource: "account", ID: id}
}

// Delete removes an account unless documents still post to it.
func (s *AccountsService) Delete(ctx context.Context, id string) error {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range accounts {
		if accounts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.ErrNotFound{Resource: "account", ID: id}
	}

	if accounts[idx].Number != "" {
		for i := range accounts {
			if i != idx && accounts[i].SubAccountOf == accounts[idx].Number {
				return &domain.ErrReferenced{Resource: "account", ID: id}
			}
		}
	}

	referenced, err := s.accountReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return &domain.ErrReferenced{Resource: "account", ID: id}
	}

	accounts = append(accounts[:idx], accounts[idx+1:]...)
	if err := s.store.SaveAccounts(ctx, accounts); err != nil {
		return err
	}
	s.caches.Flush()
	return nil
}

// validateParent checks that a subAccountOf value names an existing
// account number other than the account's own. selfID is empty on
// create.
func validateParent(accounts []domain.Account, acc domain.Account, selfID string) error {
	if acc.SubAccountOf == "" {
		return nil
	}
	for _, existing := range accounts {
		if existing.Number == acc.SubAccountOf {
			if existing.ID == selfID {
				return &domain.ErrValidation{Field: "subAccountOf", Message: "account cannot be a sub-account of itself"}
			}
			return nil
		}
	}
	return &domain.ErrValidation{Field: "subAccountOf", Message: fmt.Sprintf("no account with number %s", acc.SubAccountOf)}
}

// accountReferenced reports whether any journal line, contra entry or
// cash movement still points at the account.
func (s *AccountsService) accountReferenced(ctx context.Context, id string) (bool, error) {
	journals, err := s.store.ListManualJournals(ctx)
	if err != nil {
		return false, err
	}
	for _, j := range journals {
		for _, line := range j.Lines {
			if line.AccountID == id {
				return true, nil
			}
		}
	}

	contras, err := s.store.ListContraEntries(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range contras {
		if c.FromAccount == id || c.ToAccount == id {
			return true, nil
		}
	}

	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range receipts {
		if r.DepositTo == id {
			return true, nil
		}
	}

	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range payments {
		if p.PaidFrom == id {
			return true, nil
		}
	}

	return false, nil
}

func nextSerial(accounts []domain.Account) int {
	max := 0
	for _, a := range accounts {
		if a.Serial > max {
			max = a.Serial
		}
	}
	return max + 1
}
