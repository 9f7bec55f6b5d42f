// Package api implements the gateway to the remote store API: two JSON
// operations (GET and POST) against a configured base origin, with
// non-success responses normalized into the storefront's request-error
// representation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/BlurryShady/gear-store-frontend/internal/errors"
)

// maxErrorBody bounds how much of an error response body is read when
// looking for a detail message.
const maxErrorBody = 1 << 20

var apiRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_api_requests_total",
		Help: "Total number of requests to the remote store API",
	},
	[]string{"method", "status"},
)

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreaker satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client is the storefront's client for the remote store API. It does not
// retry, cache, or apply its own deadlines; those concerns belong to the
// caller and the transport.
type Client struct {
	baseURL string
	doer    HTTPDoer
	logger  *slog.Logger
}

// NewClient creates a client for the API at the given base origin. A
// trailing slash on the base origin is dropped.
func NewClient(baseURL string, doer HTTPDoer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		logger:  logger,
	}
}

// BaseURL returns the resolved base origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET for the given path and returns the raw JSON body. A
// non-success status yields a request error naming the path and status.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create GET %s request: %w", path, err)
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		apiRequestsTotal.WithLabelValues(http.MethodGet, "error").Inc()
		return nil, apperrors.Unreachable(http.MethodGet, path, err)
	}
	defer resp.Body.Close()
	apiRequestsTotal.WithLabelValues(http.MethodGet, strconv.Itoa(resp.StatusCode)).Inc()

	if !isSuccess(resp.StatusCode) {
		c.logger.WarnContext(ctx, "store API request failed",
			slog.String("method", http.MethodGet),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperrors.Request(http.MethodGet, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read GET %s response: %w", path, err)
	}
	return json.RawMessage(body), nil
}

// Post issues a POST with a JSON-encoded body and returns the raw JSON
// response body. On a non-success status the response body is inspected
// for a "detail" field; when present its text becomes the error message,
// otherwise the generic path+status message is used. A body that is not
// JSON at all is treated as "no detail available", never as a secondary
// error.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode POST %s body: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create POST %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		apiRequestsTotal.WithLabelValues(http.MethodPost, "error").Inc()
		return nil, apperrors.Unreachable(http.MethodPost, path, err)
	}
	defer resp.Body.Close()
	apiRequestsTotal.WithLabelValues(http.MethodPost, strconv.Itoa(resp.StatusCode)).Inc()

	if !isSuccess(resp.StatusCode) {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.WarnContext(ctx, "store API request failed",
			slog.String("method", http.MethodPost),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		if detail, ok := tryParseDetail(data); ok {
			return nil, apperrors.RequestDetail(detail, resp.StatusCode)
		}
		return nil, apperrors.Request(http.MethodPost, path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read POST %s response: %w", path, err)
	}
	return json.RawMessage(data), nil
}

// tryParseDetail extracts the optional human-readable "detail" field from
// an error response body. Absence of a detail is the normal path, not an
// exceptional one.
func tryParseDetail(body []byte) (string, bool) {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	if payload.Detail == "" {
		return "", false
	}
	return payload.Detail, true
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
