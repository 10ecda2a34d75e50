// Package paradex is the upstream client adapter: one fetch method per
// exchange capability, returning the raw response body in whatever shape the
// exchange produced it. Shape normalization is explicitly not this package's
// job.
package paradex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/sv/mcp-paradex-go/pkg/models"
)

// Environment selects the exchange network.
type Environment string

const (
	EnvTestnet Environment = "testnet"
	EnvProd    Environment = "prod"
)

// BaseURL returns the REST endpoint of the environment.
func (e Environment) BaseURL() string {
	if e == EnvTestnet {
		return "https://api.testnet.paradex.trade/v1"
	}
	return "https://api.prod.paradex.trade/v1"
}

// Options configures a Client. PrivateKey empty means public-only mode.
type Options struct {
	Environment    Environment
	AccountAddress string
	PrivateKey     string // EC private key in PEM format

	// BaseURL overrides the environment endpoint; used by tests.
	BaseURL    string
	HTTPClient *http.Client
	Logger     *logrus.Logger

	// RequestsPerSecond bounds the upstream request rate. Zero applies the
	// default of 8 req/s with a burst of 16.
	RequestsPerSecond float64
}

// Client performs raw HTTP calls against the exchange. All methods are safe
// for concurrent use; the only shared state is the rate limiter and the
// immutable signer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	signer     *signer
	log        *logrus.Entry
}

// NewClient builds a public-mode client. No network traffic happens here;
// Authenticate upgrades the client to authenticated mode.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = opts.Environment.BaseURL()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 8
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), max(1, int(rps)*2)),
		log:        logger.WithField("component", "paradex"),
	}
}

// Authenticated reports whether a signing identity is bound to the client.
func (c *Client) Authenticated() bool {
	return c.signer != nil
}

// Authenticate resolves the exchange-wide configuration needed to derive the
// signing context and binds the signing identity. Any failure is an
// AuthenticationError; the client stays in public mode.
func (c *Client) Authenticate(ctx context.Context, account, privateKeyPEM string) error {
	raw, err := c.SystemConfig(ctx)
	if err != nil {
		return &AuthenticationError{Reason: "resolving system config", Err: err}
	}
	var cfg models.SystemConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return &AuthenticationError{Reason: "decoding system config", Err: err}
	}
	if cfg.StarknetChainID == "" {
		return &AuthenticationError{Reason: "system config missing chain ID"}
	}
	s, err := newSigner(account, cfg.StarknetChainID, privateKeyPEM)
	if err != nil {
		return &AuthenticationError{Reason: "invalid credential", Err: err}
	}
	c.signer = s
	c.log.WithField("account", account).Info("authenticated paradex client")
	return nil
}

// System

func (c *Client) SystemConfig(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/system/config", nil, false)
}

func (c *Client) SystemState(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/system/state", nil, false)
}

func (c *Client) SystemTime(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/system/time", nil, false)
}

// Market data

func (c *Client) Markets(ctx context.Context, market string) (json.RawMessage, error) {
	return c.get(ctx, "/markets", optional("market", market), false)
}

func (c *Client) MarketsSummary(ctx context.Context, market string) (json.RawMessage, error) {
	params := optional("market", market)
	if params == nil {
		params = url.Values{"market": {"ALL"}}
	}
	return c.get(ctx, "/markets/summary", params, false)
}

func (c *Client) Orderbook(ctx context.Context, market string, depth int) (json.RawMessage, error) {
	params := url.Values{"depth": {strconv.Itoa(depth)}}
	return c.get(ctx, "/orderbook/"+market, params, false)
}

func (c *Client) Klines(ctx context.Context, market, resolution string, startMs, endMs int64) (json.RawMessage, error) {
	params := url.Values{"symbol": {market}, "resolution": {resolution}}
	addRange(params, startMs, endMs)
	return c.get(ctx, "/markets/klines", params, false)
}

func (c *Client) Trades(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error) {
	params := url.Values{"market": {market}}
	addRange(params, startMs, endMs)
	return c.get(ctx, "/trades", params, false)
}

func (c *Client) BBO(ctx context.Context, market string) (json.RawMessage, error) {
	return c.get(ctx, "/bbo/"+market, nil, false)
}

func (c *Client) FundingData(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error) {
	params := url.Values{"market": {market}}
	addRange(params, startMs, endMs)
	return c.get(ctx, "/funding/data", params, false)
}

// Account

func (c *Client) AccountSummary(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/account", nil, true)
}

func (c *Client) Positions(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/positions", nil, true)
}

func (c *Client) Fills(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error) {
	params := optional("market", market)
	if params == nil {
		params = url.Values{}
	}
	addRange(params, startMs, endMs)
	return c.get(ctx, "/fills", params, true)
}

func (c *Client) FundingPayments(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error) {
	params := optional("market", market)
	if params == nil {
		params = url.Values{}
	}
	addRange(params, startMs, endMs)
	return c.get(ctx, "/funding/payments", params, true)
}

func (c *Client) Transactions(ctx context.Context, txType string, startMs, endMs int64) (json.RawMessage, error) {
	params := optional("type", txType)
	if params == nil {
		params = url.Values{}
	}
	addRange(params, startMs, endMs)
	return c.get(ctx, "/transactions", params, true)
}

// Orders

func (c *Client) OpenOrders(ctx context.Context, market string) (json.RawMessage, error) {
	return c.get(ctx, "/orders", optional("market", market), true)
}

func (c *Client) OrdersHistory(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error) {
	params := optional("market", market)
	if params == nil {
		params = url.Values{}
	}
	addRange(params, startMs, endMs)
	return c.get(ctx, "/orders-history", params, true)
}

func (c *Client) Order(ctx context.Context, orderID string) (json.RawMessage, error) {
	return c.get(ctx, "/orders/"+orderID, nil, true)
}

func (c *Client) OrderByClientID(ctx context.Context, clientID string) (json.RawMessage, error) {
	return c.get(ctx, "/orders/by_client_id/"+clientID, nil, true)
}

func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/orders", nil, req, true)
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, "/orders/"+orderID, nil, nil, true)
}

func (c *Client) CancelOrderByClientID(ctx context.Context, clientID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, "/orders/by_client_id/"+clientID, nil, nil, true)
}

func (c *Client) CancelAllOrders(ctx context.Context, market string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, "/orders", optional("market", market), nil, true)
}

// Vaults

func (c *Client) Vaults(ctx context.Context, address string) (json.RawMessage, error) {
	return c.get(ctx, "/vaults", optional("address", address), false)
}

func (c *Client) VaultsConfig(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/vaults/config", nil, false)
}

func (c *Client) VaultBalance(ctx context.Context, address string) (json.RawMessage, error) {
	return c.get(ctx, "/vaults/balance", url.Values{"address": {address}}, false)
}

func (c *Client) VaultSummary(ctx context.Context, address string) (json.RawMessage, error) {
	return c.get(ctx, "/vaults/summary", url.Values{"address": {address}}, false)
}

func (c *Client) VaultTransfers(ctx context.Context, address string) (json.RawMessage, error) {
	return c.get(ctx, "/vaults/transfers", url.Values{"address": {address}}, false)
}

func (c *Client) VaultPositions(ctx context.Context, address string) (json.RawMessage, error) {
	return c.get(ctx, "/vaults/positions", url.Values{"address": {address}}, false)
}

func (c *Client) VaultAccountSummary(ctx context.Context, address string) (json.RawMessage, error) {
	return c.get(ctx, "/vaults/account-summary", url.Values{"address": {address}}, false)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, private bool) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, params, nil, private)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, private bool) (json.RawMessage, error) {
	if private && c.signer == nil {
		return nil, &AuthenticationError{Reason: "no signing identity bound to the client"}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if private {
		if err := c.signer.addAuthHeader(req); err != nil {
			return nil, &AuthenticationError{Reason: "signing request", Err: err}
		}
	}

	c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("calling upstream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A caller-imposed cancellation propagates as the context error,
		// never as partial data.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &UpstreamError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Path: path, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &AuthenticationError{
			Reason: fmt.Sprintf("upstream rejected credential with status %d", resp.StatusCode),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Path: path, Status: resp.StatusCode}
	}
	return payload, nil
}

func optional(key, value string) url.Values {
	if value == "" || value == "ALL" {
		return nil
	}
	return url.Values{key: {value}}
}

func addRange(params url.Values, startMs, endMs int64) {
	if startMs > 0 {
		params.Set("start_at", strconv.FormatInt(startMs, 10))
	}
	if endMs > 0 {
		params.Set("end_at", strconv.FormatInt(endMs, 10))
	}
}
