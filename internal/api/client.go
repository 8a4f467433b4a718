// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/toeirei/panaderia/internal/config"
	"github.com/toeirei/panaderia/internal/logging"
)

const (
	headerRequestID = "X-Request-ID"
	defaultTimeout  = 15 * time.Second
	maxErrorBody    = 64 << 10
)

// TokenSource returns the current bearer token, or "" when logged out.
type TokenSource func() string

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler sets the hook fired after any 401.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// Client talks to the bakery backend. It is safe for concurrent use.
type Client struct {
	cfg            config.API
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
	backend        []*url.URL

	Customers *CustomerAPI
	Employees *EmployeeAPI
	Products  *ProductAPI
	Orders    *OrderAPI
	Addresses *AddressAPI
	Auth      *AuthAPI
}

// New builds a client from the api section of the configuration.
func New(cfg config.API, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("api base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL: %w", err)
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = base.String() + "/auth"
	}
	auth, err := url.Parse(strings.TrimRight(cfg.AuthURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid auth URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = base.String()
	cfg.AuthURL = auth.String()

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		backend: []*url.URL{base, auth},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Customers = &CustomerAPI{c: c, path: c.endpoint(cfg.Endpoints.Customer, "/v1/api/customer")}
	c.Employees = &EmployeeAPI{
		c:     c,
		path:  c.endpoint(cfg.Endpoints.Employee, "/v1/api/employee"),
		roles: c.endpoint(cfg.Endpoints.Roles, "/v1/api/roles"),
	}
	c.Products = &ProductAPI{c: c, path: c.endpoint(cfg.Endpoints.Product, "/v1/api/product")}
	c.Orders = &OrderAPI{c: c, path: c.endpoint(cfg.Endpoints.Order, "/v1/api/order")}
	c.Addresses = &AddressAPI{c: c, path: c.endpoint(cfg.Endpoints.Address, "/v1/api/address")}
	c.Auth = &AuthAPI{c: c, path: cfg.AuthURL}
	return c, nil
}

// Retries is the configured retry count for the customer list load.
func (c *Client) Retries() int { return c.cfg.Retries }

// SetTokenSource replaces the token source after construction.
func (c *Client) SetTokenSource(ts TokenSource) { c.tokens = ts }

// SetUnauthorizedHandler replaces the 401 hook after construction.
func (c *Client) SetUnauthorizedHandler(fn func()) { c.onUnauthorized = fn }

func (c *Client) endpoint(p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return strings.TrimRight(p, "/")
	}
	return c.cfg.BaseURL + "/" + strings.Trim(p, "/")
}

// isBackend reports whether u points at the configured backend host.
func (c *Client) isBackend(u *url.URL) bool {
	for _, b := range c.backend {
		if strings.EqualFold(u.Scheme, b.Scheme) && strings.EqualFold(u.Host, b.Host) {
			return true
		}
	}
	return false
}

func (c *Client) isLogin(u *url.URL) bool {
	return strings.HasSuffix(strings.TrimRight(u.Path, "/"), "/login") &&
		strings.HasPrefix(u.String(), c.cfg.AuthURL)
}

// request describes one call.
type request struct {
	method   string
	url      string
	query    url.Values
	body     any
	resource string
	accept   string
}

// do executes r and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	data, err := c.raw(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if s, ok := out.(*string); ok && !json.Valid(data) {
		*s = string(data)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.resource, err)
	}
	return nil
}

// raw executes r and returns the response body.
func (c *Client) raw(ctx context.Context, r request) ([]byte, error) {
	u, err := url.Parse(r.url)
	if err != nil {
		return nil, fmt.Errorf("build URL: %w", err)
	}
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.intercept(req)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	accept := r.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)

	logging.Debugf("api: %s %s (%s)", req.Method, u.Path, req.Header.Get(headerRequestID))

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Warnf("api: %s %s unreachable: %v", req.Method, u.Path, err)
		return nil, wrapTransport(r.resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := newError(resp.StatusCode, http.StatusText(resp.StatusCode), r.resource, errBody, nil)
		c.handleFailure(req, apiErr)
		return nil, apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapTransport(r.resource, err)
	}
	return data, nil
}

// intercept decorates outgoing requests. The login call is sent untouched
// apart from its request id.
func (c *Client) intercept(req *http.Request) {
	req.Header.Set(headerRequestID, uuid.NewString())
	if c.isLogin(req.URL) || !c.isBackend(req.URL) || c.tokens == nil {
		return
	}
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) handleFailure(req *http.Request, apiErr *Error) {
	if apiErr.Status == http.StatusUnauthorized {
		if c.isLogin(req.URL) {
			return
		}
		logging.Infof("api: %s %s returned 401, ending session", req.Method, req.URL.Path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return
	}
	logging.Warnf("api: %s %s failed with %d: %s", req.Method, req.URL.Path, apiErr.Status, apiErr.Message)
}

func (c *Client) get(ctx context.Context, resource, u string, out any) error {
	return c.do(ctx, request{method: http.MethodGet, url: u, resource: resource}, out)
}

func (c *Client) send(ctx context.Context, method, resource, u string, body, out any) error {
	return c.do(ctx, request{method: method, url: u, body: body, resource: resource}, out)
}
