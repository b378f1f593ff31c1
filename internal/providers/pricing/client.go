// Package pricing implements the valuation gateway: token contract address
// to unit USD price. Lookup failures value to zero and never propagate.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/blockpulse/whale-sentry/internal/adapter"
	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/logger"
)

// PriceSource defines the valuation gateway interface
//
//go:generate mockgen -source=client.go -destination=../../mocks/pricing.go -package=mocks -mock_names=PriceSource=MockPriceSource
type PriceSource interface {
	// PriceUSD returns the unit USD price for a token contract address.
	// Returns zero on any lookup failure; never returns an error.
	PriceUSD(ctx context.Context, tokenAddress string) decimal.Decimal
}

// Config holds price API configuration
type Config struct {
	APIURL string
	APIKey string
}

type client struct {
	config Config
	http   adapter.HTTPClient
}

// NewClient creates a new price lookup client
func NewClient(cfg Config, httpClient adapter.HTTPClient) PriceSource {
	return &client{config: cfg, http: httpClient}
}

// priceResponse is the token price lookup response
type priceResponse struct {
	UsdPrice float64 `json:"usdPrice"`
}

// PriceUSD returns the unit USD price for a token contract address
func (c *client) PriceUSD(ctx context.Context, tokenAddress string) decimal.Decimal {
	tokenAddress = domain.NormalizeAddress(tokenAddress)
	if tokenAddress == "" {
		return decimal.Zero
	}

	url := fmt.Sprintf("%s/erc20/%s/price", c.config.APIURL, tokenAddress)
	headers := map[string]string{"X-API-Key": c.config.APIKey}

	var resp priceResponse
	if err := c.http.Get(ctx, url, headers, &resp); err != nil {
		logger.Warn("price lookup failed, valuing at zero",
			zap.String("token", tokenAddress), zap.Error(err))
		return decimal.Zero
	}

	if resp.UsdPrice < 0 {
		logger.Warn("price lookup returned negative price, valuing at zero",
			zap.String("token", tokenAddress), zap.Float64("price", resp.UsdPrice))
		return decimal.Zero
	}

	return decimal.NewFromFloat(resp.UsdPrice)
}
