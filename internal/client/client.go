// Package client is the HTTP client the scheduled jobs use to reach the CRM
// API. Transport-level failures are retried a bounded number of times;
// domain errors returned by the API are surfaced immediately.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"crm-service/internal/domain/order"
	"crm-service/internal/domain/product"

	"go.uber.org/zap"
)

// ErrTransport marks failures of the transport itself (network errors and
// 5xx responses) as opposed to errors the API returned deliberately.
var ErrTransport = errors.New("transport error")

const retryBackoff = 500 * time.Millisecond

type Client struct {
	baseURL string
	httpc   *http.Client
	retries int
	logger  *zap.Logger
}

// New builds a client for the API at baseURL that attempts each call up to
// retries times.
func New(baseURL string, retries int, logger *zap.Logger) *Client {
	if retries < 1 {
		retries = 1
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		retries: retries,
		logger:  logger,
	}
}

// Health probes the liveness endpoint once per attempt.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/v1/health", nil, nil)
}

// RestockLowInventory triggers the restock mutation and returns its result.
func (c *Client) RestockLowInventory(ctx context.Context) (*product.RestockResult, error) {
	var result product.RestockResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/products/restock", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PendingOrdersSince lists PENDING orders with an order date at or after
// since.
func (c *Client) PendingOrdersSince(ctx context.Context, since time.Time) ([]order.OrderInfo, error) {
	query := url.Values{}
	query.Set("status", string(order.StatusPending))
	query.Set("since", since.Format("2006-01-02"))

	var orders []order.OrderInfo
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// envelope mirrors the API's standard response format.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
			case <-time.After(retryBackoff * time.Duration(attempt-1)):
			}
		}

		err := c.once(ctx, method, path, query, out)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrTransport) {
			return err
		}

		lastErr = err
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return fmt.Errorf("after %d attempts: %w", c.retries, lastErr)
}

func (c *Client) once(ctx context.Context, method, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: server returned %d", ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	// The health endpoint answers a bare status object; anything else uses
	// the standard envelope.
	if out == nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("%s: %s", env.Message, env.Error)
		}
		return errors.New(env.Message)
	}

	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode payload: %w", err)
		}
	}
	return nil
}
