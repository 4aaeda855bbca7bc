package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
)

func TestCreateAccount_SubAccountParentMustExist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accounts.Create(ctx, domain.Account{
		Name:           "Petty Cash",
		Classification: domain.ClassAsset,
		SubAccountOf:   "9999",
	})
	var vErr *domain.ErrValidation
	if !errors.As(err, &vErr) {
		t.Fatalf("dangling parent: err = %v, want validation error", err)
	}

	if _, err := env.accounts.Create(ctx, domain.Account{
		Name:           "Cash",
		Number:         "1000",
		Classification: domain.ClassAsset,
	}); err != nil {
		t.Fatalf("create parent: %v", err)
	}
	if _, err := env.accounts.Create(ctx, domain.Account{
		Name:           "Petty Cash",
		Number:         "1010",
		Classification: domain.ClassAsset,
		SubAccountOf:   "1000",
	}); err != nil {
		t.Errorf("create sub-account under existing parent: %v", err)
	}
}

func TestUpdateAccount_RejectsDanglingParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	acc, err := env.accounts.Create(ctx, domain.Account{
		Name:           "Cash",
		Number:         "1000",
		Classification: domain.ClassAsset,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	acc.SubAccountOf = "9999"
	_, err = env.accounts.Update(ctx, acc.ID, *acc)
	var vErr *domain.ErrValidation
	if !errors.As(err, &vErr) {
		t.Fatalf("dangling parent: err = %v, want validation error", err)
	}

	acc.SubAccountOf = "1000"
	_, err = env.accounts.Update(ctx, acc.ID, *acc)
	if !errors.As(err, &vErr) {
		t.Errorf("self parent: err = %v, want validation error", err)
	}
}

func TestDeleteAccount_BlockedWhileSubAccountsExist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent, err := env.accounts.Create(ctx, domain.Account{
		Name:           "Cash",
		Number:         "1000",
		Classification: domain.ClassAsset,
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := env.accounts.Create(ctx, domain.Account{
		Name:           "Petty Cash",
		Number:         "1010",
		Classification: domain.ClassAsset,
		SubAccountOf:   "1000",
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	err = env.accounts.Delete(ctx, parent.ID)
	var refErr *domain.ErrReferenced
	if !errors.As(err, &refErr) {
		t.Fatalf("delete parent with children: err = %v, want referenced error", err)
	}

	if err := env.accounts.Delete(ctx, child.ID); err != nil {
		t.Fatalf("delete child: %v", err)
	}
	if err := env.accounts.Delete(ctx, parent.ID); err != nil {
		t.Errorf("delete parent after child removed: %v", err)
	}
}
