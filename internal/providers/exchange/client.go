// Package exchange implements the trade gateway: market lookup and market
// sell orders against a Binance-compatible spot REST API.
package exchange

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/blockpulse/whale-sentry/internal/adapter"
	"github.com/blockpulse/whale-sentry/internal/domain"
)

const defaultTimeout = 30 * time.Second

// OrderResult describes an executed sell order
type OrderResult struct {
	OrderID          int64           `json:"orderId"`
	Symbol           string          `json:"symbol"`
	Status           string          `json:"status"`
	ExecutedQuoteQty decimal.Decimal `json:"cummulativeQuoteQty"`
}

// Exchange defines the trade gateway interface
//
//go:generate mockgen -source=client.go -destination=../../mocks/exchange.go -package=mocks -mock_names=Exchange=MockExchange
type Exchange interface {
	// FindMarket resolves a tradable market for a token symbol; returns
	// domain.ErrMarketNotFound when no market exists
	FindMarket(ctx context.Context, tokenSymbol string) (string, error)

	// Sell executes a market sell on the given market for the given USD
	// notional amount
	Sell(ctx context.Context, market string, usdAmount decimal.Decimal) (*OrderResult, error)
}

// Config holds exchange API configuration
type Config struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	QuoteAsset string
	Timeout    time.Duration
}

// Client is a Binance-compatible spot REST client
type Client struct {
	config         Config
	clock          adapter.Clock
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker
}

// NewClient creates a new exchange client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.QuoteAsset == "" {
		cfg.QuoteAsset = "USDT"
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ExchangeAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		config:         cfg,
		clock:          adapter.NewClock(),
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		circuitBreaker: breaker,
	}
}

// exchangeInfoResponse is the market metadata response
type exchangeInfoResponse struct {
	Symbols []struct {
		Symbol string `json:"symbol"`
		Status string `json:"status"`
	} `json:"symbols"`
}

// FindMarket resolves a tradable market for a token symbol
func (c *Client) FindMarket(ctx context.Context, tokenSymbol string) (string, error) {
	tokenSymbol = strings.ToUpper(strings.TrimSpace(tokenSymbol))
	if tokenSymbol == "" {
		return "", domain.ErrMarketNotFound
	}
	market := tokenSymbol + c.config.QuoteAsset

	query := url.Values{}
	query.Set("symbol", market)

	body, status, err := c.doRequest(ctx, http.MethodGet, "/api/v3/exchangeInfo", query, false)
	if err != nil {
		return "", fmt.Errorf("failed to query exchange info: %w", err)
	}
	// The exchange answers 400 for symbols it does not list
	if status == http.StatusBadRequest {
		return "", domain.ErrMarketNotFound
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("exchange info returned status %d: %s", status, string(body))
	}

	var info exchangeInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("failed to decode exchange info: %w", err)
	}

	for _, s := range info.Symbols {
		if s.Symbol == market && s.Status == "TRADING" {
			return s.Symbol, nil
		}
	}

	return "", domain.ErrMarketNotFound
}

// Sell executes a market sell on the given market for the given USD notional amount
func (c *Client) Sell(ctx context.Context, market string, usdAmount decimal.Decimal) (*OrderResult, error) {
	if c.config.APIKey == "" || c.config.APISecret == "" {
		return nil, errors.New("exchange credentials are not configured")
	}
	if usdAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("sell amount must be positive, got %s", usdAmount)
	}

	query := url.Values{}
	query.Set("symbol", market)
	query.Set("side", "SELL")
	query.Set("type", "MARKET")
	query.Set("quoteOrderQty", usdAmount.StringFixed(2))
	query.Set("timestamp", strconv.FormatInt(c.clock.Now().UnixMilli(), 10))

	body, status, err := c.doRequest(ctx, http.MethodPost, "/api/v3/order", query, true)
	if err != nil {
		return nil, fmt.Errorf("failed to place sell order: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("sell order returned status %d: %s", status, string(body))
	}

	var result OrderResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	return &result, nil
}

// doRequest performs a request through the circuit breaker, optionally
// signing the query string with the API secret
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, signed bool) ([]byte, int, error) {
	encoded := query.Encode()
	if signed {
		encoded = encoded + "&signature=" + c.sign(encoded)
	}

	reqURL := c.config.BaseURL + path
	if encoded != "" {
		reqURL = reqURL + "?" + encoded
	}

	type response struct {
		body   []byte
		status int
	}

	resp, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if c.config.APIKey != "" {
			req.Header.Set("X-MBX-APIKEY", c.config.APIKey)
		}

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() { _ = httpResp.Body.Close() }()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		// 5xx trips the breaker; client errors are the caller's to interpret
		if httpResp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("exchange returned status %d: %s", httpResp.StatusCode, string(body))
		}

		return response{body: body, status: httpResp.StatusCode}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	r := resp.(response)
	return r.body, r.status, nil
}

// sign computes the HMAC-SHA256 signature of the query string
func (c *Client) sign(queryString string) string {
	mac := hmac.New(sha256.New, []byte(c.config.APISecret))
	mac.Write([]byte(queryString))
	return hex.EncodeToString(mac.Sum(nil))
}
