package esprinet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/shared"
)

// maxResponseSize caps how much of an API response body gets read
const maxResponseSize = 10 << 20

// Success is returned for responses that carry no body (HTTP 204).
// Callers that only care about success can ignore the payload entirely.
var Success = json.RawMessage(`{"success":true}`)

// Client is the HTTP gateway to the distributor B2B API. Every request
// goes out with a bearer token from the token store; the token is
// invalidated when the API answers 401 so the next request logs in again.
type Client struct {
	baseURL    string
	tokens     *TokenStore
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an API gateway on top of the given token store
func NewClient(baseURL string, tokens *TokenStore, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("esprinet.client"),
	}
}

// Request performs one API call and returns the raw response payload.
// path is relative to the configured base URL, params become the query
// string, and a non-nil body is JSON-encoded. Errors are logged here and
// returned to the caller; there is no retry.
func (c *Client) Request(ctx context.Context, method, path string, params url.Values, body any) (json.RawMessage, error) {
	token, err := c.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("esprinet: failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("esprinet: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("esprinet: request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("esprinet: failed to read response for %s %s: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return Success, nil
	case resp.StatusCode == http.StatusUnauthorized:
		c.tokens.Invalidate()
		c.logger.Warn("API token rejected",
			zap.String("method", method),
			zap.String("path", path),
		)
		return nil, fmt.Errorf("%w: HTTP 401 on %s %s", shared.ErrAuthentication, method, path)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s %s", shared.ErrNotFound, method, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Error("API request returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return nil, fmt.Errorf("esprinet: %s %s returned HTTP %d", method, path, resp.StatusCode)
	}

	if len(respBody) == 0 {
		return Success, nil
	}

	return json.RawMessage(respBody), nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, path, params, nil)
}

// Post performs a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, path, nil, body)
}

// Put performs a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, path, nil, body)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}
