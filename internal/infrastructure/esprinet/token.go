package esprinet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/erp/connector/internal/domain/shared"
)

// loginRequest is the body of POST /login
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the body returned by POST /login
type loginResponse struct {
	AuthenticationToken string `json:"authenticationToken"`
	TokenExpiry         string `json:"tokenExpiry"`
	ResultDetails       *struct {
		ResultCode    string `json:"resultCode"`
		ResultMessage string `json:"resultMessage"`
	} `json:"resultDetails"`
}

// defaultTokenLifetime is assumed when the login response omits the
// expiry field entirely. An expiry that is present but unparseable
// leaves the token uncached instead.
const defaultTokenLifetime = time.Hour

// TokenStore resolves the configured API credentials and caches the
// bearer token until its expiry. It is an explicit object injected into
// the gateway; there is no process-wide token state.
type TokenStore struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *zap.Logger

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewTokenStore creates a token store for the given endpoint and credentials
func NewTokenStore(baseURL, username, password string, timeout time.Duration, logger *zap.Logger) *TokenStore {
	return &TokenStore{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("esprinet.token"),
	}
}

// Get returns a non-expired bearer token, transparently refreshing when
// absent or expired.
func (s *TokenStore) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.token != "" && time.Now().Before(s.expiry) {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	s.mu.Unlock()

	return s.refresh(ctx)
}

// Invalidate clears the cached token. Called after an authorization
// failure so the next use re-acquires a token.
func (s *TokenStore) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.expiry = time.Time{}
	s.mu.Unlock()
}

// refresh performs the login call and caches the returned token
func (s *TokenStore) refresh(ctx context.Context) (string, error) {
	if s.username == "" || s.password == "" {
		return "", fmt.Errorf("%w: api username and password are not configured", shared.ErrConfiguration)
	}

	body, err := json.Marshal(loginRequest{Username: s.username, Password: s.password})
	if err != nil {
		return "", fmt.Errorf("esprinet: failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("esprinet: failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: login connection error: %v", shared.ErrAuthentication, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("esprinet: failed to read login response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error("Login failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return "", fmt.Errorf("%w: login returned HTTP %d", shared.ErrAuthentication, resp.StatusCode)
	}

	var login loginResponse
	if err := json.Unmarshal(respBody, &login); err != nil {
		return "", fmt.Errorf("%w: undecodable login response: %v", shared.ErrAuthentication, err)
	}

	if login.AuthenticationToken == "" {
		if login.ResultDetails != nil {
			s.logger.Error("Login rejected",
				zap.String("result_code", login.ResultDetails.ResultCode),
				zap.String("result_message", login.ResultDetails.ResultMessage),
			)
			return "", fmt.Errorf("%w: %s - %s", shared.ErrAuthentication,
				login.ResultDetails.ResultCode, login.ResultDetails.ResultMessage)
		}
		return "", fmt.Errorf("%w: no authentication token received", shared.ErrAuthentication)
	}

	expiry := s.parseExpiry(login.TokenExpiry)

	s.mu.Lock()
	s.token = login.AuthenticationToken
	s.expiry = expiry
	s.mu.Unlock()

	s.logger.Info("Logged in to distributor API", zap.Time("token_expiry", expiry))

	return login.AuthenticationToken, nil
}

// parseExpiry parses the expiry timestamp from the login response. An
// unparseable value yields the zero time, which leaves the token
// effectively uncached and forces a re-login on the next check.
func (s *TokenStore) parseExpiry(raw string) time.Time {
	if raw == "" {
		return time.Now().Add(defaultTokenLifetime)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		s.logger.Warn("Could not parse token expiry, token will not be cached", zap.String("token_expiry", raw))
		return time.Time{}
	}
	return t
}
