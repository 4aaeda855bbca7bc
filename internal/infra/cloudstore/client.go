// Package cloudstore is a KV backend over a hosted collection-storage
// REST API, for deployments that sync books to a shared remote store.
package cloudstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/domain"
	"github.com/easycloudbook/cloudbook-api/internal/infra/resilience"
)

var tracer = otel.Tracer("cloudstore")

// Client talks to the remote collection store. All calls go through
// the shared circuit breaker, retry with backoff, and a bulkhead
// capping concurrent requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a cloudstore client.
func NewClient(httpClient *http.Client, baseURL, apiKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
		logger:     logger,
	}
}

// doRequest executes one authenticated call against the store API.
func (c *Client) doRequest(ctx context.Context, method, key string, payload []byte) ([]byte, error) {
	url := fmt.Sprintf("%s/v1/collections/%s", c.baseURL, key)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("cloudstore: request failed",
			zap.String("method", method),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("cloudstore: non-2xx response",
			zap.String("method", method),
			zap.String("key", key),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("cloudstore returned status %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}

// execute wraps a call with bulkhead, circuit breaker and retry.
func (c *Client) execute(ctx context.Context, fn func() error) error {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return err
	}
	defer c.bulkhead.Release()

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, fn)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return &domain.ErrCircuitOpen{Service: "cloudstore"}
	}
	return err
}

// Get fetches the raw payload of one collection.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "CloudStore.Get")
	defer span.End()
	span.SetAttributes(attribute.String("collection.key", key))

	var data []byte
	err := c.execute(ctx, func() error {
		body, err := c.doRequest(ctx, http.MethodGet, key, nil)
		if err != nil {
			return err
		}
		data = body
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "cloudstore", Err: err}
	}
	return data, nil
}

// Put replaces one collection.
func (c *Client) Put(ctx context.Context, key string, data []byte) error {
	ctx, span := tracer.Start(ctx, "CloudStore.Put")
	defer span.End()
	span.SetAttributes(attribute.String("collection.key", key))

	err := c.execute(ctx, func() error {
		_, err := c.doRequest(ctx, http.MethodPut, key, data)
		return err
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "cloudstore", Err: err}
	}
	return nil
}

// Ping checks the store's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cloudstore health returned status %d", resp.StatusCode)
	}
	return nil
}
