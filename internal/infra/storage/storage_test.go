package storage_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/infra/storage"
)

func TestMemory_RoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()

	got, err := kv.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != nil {
		t.Errorf("missing key = %q, want nil", got)
	}

	if err := kv.Put(ctx, "k", []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err = kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[1,2,3]` {
		t.Errorf("get = %q", got)
	}

	// Mutating the returned slice must not corrupt the stored copy.
	got[0] = 'X'
	again, _ := kv.Get(ctx, "k")
	if string(again) != `[1,2,3]` {
		t.Errorf("stored value mutated: %q", again)
	}

	if err := kv.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestFile_RoundTrip(t *testing.T) {
	kv, err := storage.NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	got, err := kv.Get(ctx, "chartOfAccounts")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != nil {
		t.Errorf("missing key = %q, want nil", got)
	}

	if err := kv.Put(ctx, "chartOfAccounts", []byte(`[{"id":"a1"}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err = kv.Get(ctx, "chartOfAccounts")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"a1"}]` {
		t.Errorf("get = %q", got)
	}

	// Overwrite replaces the whole collection.
	if err := kv.Put(ctx, "chartOfAccounts", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = kv.Get(ctx, "chartOfAccounts")
	if string(got) != `[]` {
		t.Errorf("after overwrite = %q", got)
	}

	if err := kv.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestStore_CollectionRoundTrip(t *testing.T) {
	store := storage.NewStore(storage.NewMemory(), "memory", observability.NewMetrics(), zap.NewNop())
	ctx := context.Background()

	accounts, err := store.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("empty store returned %d accounts", len(accounts))
	}

	want := []domain.Account{
		{ID: "a1", Name: "Bank", Classification: domain.ClassAsset},
		{ID: "a2", Name: "Sales", Classification: domain.ClassRevenue},
	}
	if err := store.SaveAccounts(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	accounts, err = store.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}
	if accounts[0].Name != "Bank" || accounts[1].Classification != domain.ClassRevenue {
		t.Errorf("round trip mismatch: %+v", accounts)
	}
}

func TestStore_CorruptCollectionDegradesToEmpty(t *testing.T) {
	kv := storage.NewMemory()
	store := storage.NewStore(kv, "memory", observability.NewMetrics(), zap.NewNop())
	ctx := context.Background()

	if err := kv.Put(ctx, domain.KeyCustomers, []byte(`{not json`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	customers, err := store.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("corrupt collection should not error: %v", err)
	}
	if len(customers) != 0 {
		t.Errorf("got %d customers from corrupt payload, want 0", len(customers))
	}
}

func TestStore_TolerantAmountDecoding(t *testing.T) {
	kv := storage.NewMemory()
	store := storage.NewStore(kv, "memory", observability.NewMetrics(), zap.NewNop())
	ctx := context.Background()

	// Hand-written exports carry amounts as strings, numbers or junk.
	raw := []byte(`[
		{"id":"a1","accName":"Bank","accType":"Asset","openingBalance":"1500.50"},
		{"id":"a2","accName":"Cash","accType":"Asset","openingBalance":250},
		{"id":"a3","accName":"Petty","accType":"Asset","openingBalance":"oops"}
	]`)
	if err := kv.Put(ctx, domain.KeyChartOfAccounts, raw); err != nil {
		t.Fatalf("put: %v", err)
	}

	accounts, err := store.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("got %d accounts, want 3", len(accounts))
	}
	if accounts[0].OpeningBalance.String() != "1500.5" {
		t.Errorf("string amount = %s, want 1500.5", accounts[0].OpeningBalance)
	}
	if accounts[1].OpeningBalance.String() != "250" {
		t.Errorf("numeric amount = %s, want 250", accounts[1].OpeningBalance)
	}
	if accounts[2].OpeningBalance.Sign() != 0 {
		t.Errorf("garbage amount = %s, want 0", accounts[2].OpeningBalance)
	}
}

type failingKV struct{ err error }

func (f failingKV) Get(ctx context.Context, key string) ([]byte, error) { return nil, f.err }

func (f failingKV) Put(ctx context.Context, key string, data []byte) error { return f.err }

func (f failingKV) Ping(ctx context.Context) error { return f.err }

func TestStore_CountsBackendErrors(t *testing.T) {
	metrics := observability.NewMetrics()
	store := storage.NewStore(failingKV{err: errors.New("backend down")}, "remote", metrics, zap.NewNop())
	ctx := context.Background()

	_, err := store.ListAccounts(ctx)
	var storeErr *domain.ErrStore
	if !errors.As(err, &storeErr) {
		t.Fatalf("list over failing backend: err = %v, want store error", err)
	}
	if err := store.SaveAccounts(ctx, nil); !errors.As(err, &storeErr) {
		t.Fatalf("save over failing backend: err = %v, want store error", err)
	}

	if got := counterTotal(t, metrics, "cloudbook_store_errors_total"); got != 2 {
		t.Errorf("store errors = %v, want 2", got)
	}
}

func counterTotal(t *testing.T, m *observability.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	total := float64(0)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}
