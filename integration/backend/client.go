package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glowmart/storefront/core/address"
	"github.com/glowmart/storefront/core/cart"
	"github.com/glowmart/storefront/core/checkout"
	"github.com/glowmart/storefront/core/order"
	"github.com/glowmart/storefront/core/session"
	"github.com/glowmart/storefront/pkg/logger"
)

var (
	_ session.AuthAPI   = (*AuthService)(nil)
	_ cart.API          = (*CartService)(nil)
	_ address.API       = (*AddressService)(nil)
	_ order.API         = (*OrderService)(nil)
	_ checkout.OrderAPI = (*OrderService)(nil)
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// Config holds the storefront API settings.
type Config struct {
	BaseURL string        `env:"STOREFRONT_API_URL,required"`
	Timeout time.Duration `env:"STOREFRONT_API_TIMEOUT" envDefault:"15s"`
}

// TokenSource supplies the bearer token for each request. It is consulted
// on every call, never cached, so a logout takes effect immediately for all
// wrappers. An empty token means anonymous.
type TokenSource interface {
	Token() string
}

// anonymous is the default token source for unauthenticated clients.
type anonymous struct{}

func (anonymous) Token() string { return "" }

// Client is the typed facade over the storefront REST API. It carries no
// business logic; it shapes requests, classifies failures, and decodes
// responses.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
	log            *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Primarily for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource attaches the session's token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHook registers a callback invoked on every 401 response,
// regardless of which endpoint produced it. The session store registers
// its Invalidate here.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a storefront API client.
func New(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  anonymous{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("backend"))
	return c, nil
}

// do executes one JSON round-trip. A non-nil out receives the decoded
// response body. Failures are classified per the remote taxonomy; they are
// never swallowed here.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request for %s: %w", path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, method, path, out)
}

// send finishes a prepared request: auth header, execution, classification,
// decoding. Shared by do and the multipart upload path.
func (c *Client) send(req *http.Request, method, path string, out any) error {
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// Timeouts and connection failures are the same to the caller:
		// no response, retry is manual.
		c.log.WarnContext(req.Context(), "request failed",
			logger.Endpoint(method, path), logger.Error(err))
		return networkError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return networkError(err)
	}

	c.log.DebugContext(req.Context(), "request completed",
		logger.Endpoint(method, path),
		slog.Int("status", resp.StatusCode),
		logger.Duration(time.Since(start)))

	if resp.StatusCode >= http.StatusBadRequest {
		err := classifyStatus(resp.StatusCode, data)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return err
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response from %s: %w", path, err)
		}
	}
	return nil
}
