// Package openfin is a typed client for the Lunebank open finance
// aggregation API: connectors, items, accounts, transactions, investments,
// categories and webhooks.
package openfin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.lunebank.com"

	// DefaultPollInterval is the delay between item status polls.
	DefaultPollInterval = 3 * time.Second
)

// Client talks to the aggregation API. It holds no state across calls other
// than the cached access token, so a single Client is safe for concurrent use.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	pollInterval time.Duration
	httpClient   *http.Client

	tokenMu sync.Mutex
	token   string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a non-production API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPollInterval overrides the delay between item status polls.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

func New(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		pollInterval: DefaultPollInterval,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type authRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type authResponse struct {
	AccessToken string `json:"accessToken"`
}

// accessToken returns the cached token, exchanging credentials on first use.
// The mutex keeps concurrent callers from racing on the exchange so the token
// is refreshed at most once per cycle.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	data, err := json.Marshal(authRequest{ClientID: c.clientID, ClientSecret: c.clientSecret})
	if err != nil {
		return "", fmt.Errorf("failed to marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute auth request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithField("status", resp.StatusCode).Debug(string(body))
		return "", fmt.Errorf("failed to authenticate: %w", parseAPIError(resp.StatusCode, body))
	}

	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return "", fmt.Errorf("failed to unmarshal auth response: %w", err)
	}
	if auth.AccessToken == "" {
		return "", fmt.Errorf("auth response contained no access token")
	}

	c.token = auth.AccessToken
	return c.token, nil
}

// invalidateToken drops the cached token if it still matches the one a
// request failed with. A token refreshed by another goroutine stays put.
func (c *Client) invalidateToken(old string) {
	c.tokenMu.Lock()
	if c.token == old {
		c.token = ""
	}
	c.tokenMu.Unlock()
}

// do performs one authenticated round-trip and decodes the response into out.
// A nil out discards the body (DELETE). When the server rejects the token,
// the client re-authenticates once and retries.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	err = c.send(ctx, method, path, query, body, out, token)

	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
		c.invalidateToken(token)
		token, err = c.accessToken(ctx)
		if err != nil {
			return err
		}
		return c.send(ctx, method, path, query, body, out, token)
	}

	return err
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out interface{}, token string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"method": method,
			"path":   path,
		}).Debug(string(data))
		return parseAPIError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// buildPath substitutes id into the single {id} placeholder of the template.
func buildPath(template, id string) string {
	return strings.Replace(template, "{id}", url.PathEscape(id), 1)
}

// setParam adds a query parameter, skipping empty values so an absent filter
// never serializes as "key=" or a literal "null".
func setParam(v url.Values, key, value string) {
	if value == "" {
		return
	}
	v.Set(key, value)
}
