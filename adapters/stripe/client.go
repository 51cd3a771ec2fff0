package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultMaxRetries   = 3
	defaultRetryBackoff = 250 * time.Millisecond
)

// RequestError reports a non-success HTTP status from the upstream API
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s %s: status %d", e.Method, e.URL, e.StatusCode)
}

// Client is a bearer-authenticated HTTP client for the upstream API. It owns
// the transport-level retry policy: transient failures (connection errors,
// 429 and 5xx statuses) are retried with bounded exponential backoff before
// the final outcome is surfaced. Safe for reuse across sequential calls.
type Client struct {
	httpClient *http.Client
	apiKey     string
	logger     *RequestLogger
	maxRetries int
	backoff    time.Duration
}

// NewClient creates a new API client with the given bearer credential
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		logger:     NewRequestLogger(false), // Default to disabled
		maxRetries: defaultMaxRetries,
		backoff:    defaultRetryBackoff,
	}
}

// NewClientWithDebug creates a new API client with debug logging enabled
func NewClientWithDebug(apiKey string, debugEnabled bool) *Client {
	c := NewClient(apiKey)
	c.logger.SetEnabled(debugEnabled)
	return c
}

// SetDebugEnabled enables or disables request debug logging
func (c *Client) SetDebugEnabled(enabled bool) {
	c.logger.SetEnabled(enabled)
}

// Get issues a GET request and returns the response body
func (c *Client) Get(ctx context.Context, u *url.URL) ([]byte, error) {
	return c.do(ctx, http.MethodGet, u, nil, "")
}

// PostForm issues a POST request with a form-encoded body. A non-empty
// idempotencyKey is forwarded in the Idempotency-Key header so the upstream
// API can deduplicate a retried create.
func (c *Client) PostForm(ctx context.Context, u *url.URL, body map[string]any, idempotencyKey string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, u, formEncode(body), idempotencyKey)
}

// Delete issues a DELETE request and returns the response body
func (c *Client) Delete(ctx context.Context, u *url.URL) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, u, nil, "")
}

// do runs one logical request through the retry loop
func (c *Client) do(ctx context.Context, method string, u *url.URL, form url.Values, idempotencyKey string) ([]byte, error) {
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, c.backoff<<(attempt-1)); err != nil {
				break
			}
		}

		body, status, err := c.doOnce(ctx, method, u, form, idempotencyKey)
		if err != nil {
			lastErr = err
			continue // connection-level failure, retry
		}

		if status >= 200 && status < 300 {
			c.logger.LogRequest(method, u.String(), time.Since(start), status, attempt+1)
			return body, nil
		}

		lastErr = &RequestError{Method: method, URL: u.String(), StatusCode: status}
		if !retryableStatus(status) {
			break
		}
	}

	c.logger.LogError(method, u.String(), time.Since(start), lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, method string, u *url.URL, form url.Values, idempotencyKey string) ([]byte, int, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}

// retryableStatus reports whether a status code signals a transient failure
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// formEncode flattens a JSON-shaped body into form values. Scalars render
// directly; anything nested renders as its compact JSON text.
func formEncode(body map[string]any) url.Values {
	form := make(url.Values, len(body))
	for k, v := range body {
		form.Set(k, formValue(v))
	}
	return form
}

func formValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		// JSON numbers decode as float64; keep integral values clean
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		if raw, err := json.Marshal(val); err == nil {
			return string(raw)
		}
		return fmt.Sprintf("%v", val)
	}
}

// sleepContext waits for the backoff duration or the context, whichever
// ends first
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
