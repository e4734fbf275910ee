package ghn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/glowmart/storefront/core/remote"
	"github.com/glowmart/storefront/core/shipping"
	"github.com/glowmart/storefront/pkg/logger"
)

// DefaultBaseURL is the public GHN gateway.
const DefaultBaseURL = "https://online-gateway.ghn.vn/shiip/public-api"

// ErrMissingCredentials is returned by New when the token or shop ID is
// absent.
var ErrMissingCredentials = errors.New("ghn token and shop id are required")

// Config holds the GHN provider settings. Parcel defaults match the shop's
// standard packaging; per-line weights are not tracked.
type Config struct {
	BaseURL       string        `env:"GHN_API_URL" envDefault:"https://online-gateway.ghn.vn/shiip/public-api"`
	Token         string        `env:"GHN_TOKEN,required"`
	ShopID        int           `env:"GHN_SHOP_ID,required"`
	ServiceID     int           `env:"GHN_SERVICE_ID"`
	ServiceTypeID int           `env:"GHN_SERVICE_TYPE_ID" envDefault:"2"`
	WeightGrams   int           `env:"GHN_WEIGHT_GRAMS" envDefault:"1500"`
	Timeout       time.Duration `env:"GHN_TIMEOUT" envDefault:"15s"`
}

// Client talks to the GHN shipping gateway. It implements the rate surface
// the shipping estimator depends on, plus the master-data lookups the
// address form needs.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

var _ shipping.RateAPI = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Primarily for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a GHN client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Token == "" || cfg.ShopID == 0 {
		return nil, ErrMissingCredentials
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ServiceTypeID == 0 {
		cfg.ServiceTypeID = 2
	}
	if cfg.WeightGrams == 0 {
		cfg.WeightGrams = 1500
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("ghn"))
	return c, nil
}

// envelope is GHN's uniform response wrapper. A transport-level 200 can
// still carry a non-200 envelope code; only the envelope decides success.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// post runs one gateway call and returns the envelope's data payload.
// withShop attaches the ShopId header required by the rate endpoints.
func (c *Client) post(ctx context.Context, path string, body any, withShop bool, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request for %s: %w", path, err)
		}
		payload = bytes.NewReader(data)
	}

	method := http.MethodPost
	if body == nil {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, payload)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", c.cfg.Token)
	if withShop {
		req.Header.Set("ShopId", strconv.Itoa(c.cfg.ShopID))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "gateway call failed",
			logger.Endpoint(method, path), logger.Error(err))
		return remote.New(remote.KindNetwork, 0, "", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return remote.New(remote.KindNetwork, 0, "", err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return remote.New(remote.KindServer, resp.StatusCode, "", nil)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	if env.Code != http.StatusOK {
		return remote.New(remote.KindBusiness, resp.StatusCode, env.Message, nil)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response from %s: %w", path, err)
		}
	}
	return nil
}
