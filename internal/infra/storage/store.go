// Package storage persists bookkeeping collections through a
// pluggable whole-collection key-value backend.
package storage

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/port"
)

var tracer = otel.Tracer("storage")

// Store reads and writes typed collections over a KV backend.
type Store struct {
	kv      port.KV
	backend string
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewStore creates a Store. backend names the KV implementation for
// error reporting, metrics and logs.
func NewStore(kv port.KV, backend string, metrics *observability.Metrics, logger *zap.Logger) *Store {
	return &Store{kv: kv, backend: backend, metrics: metrics, logger: logger}
}

// Ping verifies the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// loadCollection fetches and decodes one collection. A missing key
// yields an empty collection; a corrupt payload degrades to empty with
// a warning rather than failing every report that touches it.
func loadCollection[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		s.metrics.IncrStoreError(s.backend)
		return nil, &domain.ErrStore{Backend: s.backend, Err: err}
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("storage: malformed collection, treating as empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return []T{}, nil
	}
	return items, nil
}

// saveCollection encodes and writes one collection, replacing whatever
// was there.
func saveCollection[T any](ctx context.Context, s *Store, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		s.metrics.IncrStoreError(s.backend)
		return &domain.ErrStore{Backend: s.backend, Err: err}
	}
	if err := s.kv.Put(ctx, key, data); err != nil {
		s.metrics.IncrStoreError(s.backend)
		return &domain.ErrStore{Backend: s.backend, Err: err}
	}
	return nil
}
