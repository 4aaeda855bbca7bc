package storage

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
)

// ListAccounts loads the chart of accounts.
func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Storage.ListAccounts")
	defer span.End()

	accounts, err := loadCollection[domain.Account](ctx, s, domain.KeyChartOfAccounts)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("accounts.count", len(accounts)))
	return accounts, nil
}

// SaveAccounts replaces the chart of accounts.
func (s *Store) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	ctx, span := tracer.Start(ctx, "Storage.SaveAccounts")
	defer span.End()

	return saveCollection(ctx, s, domain.KeyChartOfAccounts, accounts)
}
