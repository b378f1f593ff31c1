package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockpulse/whale-sentry/internal/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WHALE_SENTRY_TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("WHALE_SENTRY_MORALIS_API_KEY", "test-key")
	t.Setenv("WHALE_SENTRY_DATABASE_HOST", "localhost")
	t.Setenv("WHALE_SENTRY_DATABASE_USER", "sentry")
	t.Setenv("WHALE_SENTRY_DATABASE_PASSWORD", "secret")
	t.Setenv("WHALE_SENTRY_DATABASE_DBNAME", "sentry")

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Telegram.BotToken)
	assert.Equal(t, "test-key", cfg.Moralis.APIKey)

	// defaults
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://api.moralis-streams.com", cfg.Moralis.StreamsURL)
	assert.Equal(t, "https://deep-index.moralis.io/api/v2.2", cfg.Moralis.APIURL)
	assert.Equal(t, "0x1", cfg.Moralis.ChainID)
	assert.Equal(t, "https://api.binance.com", cfg.Exchange.BaseURL)
	assert.Equal(t, "USDT", cfg.Exchange.QuoteAsset)
	assert.InDelta(t, 0.01, cfg.Exchange.TradeFraction, 1e-9)
	assert.InDelta(t, 1000, cfg.Watch.DefaultThresholdUSD, 1e-9)
}

func TestLoadRequiresBotToken(t *testing.T) {
	t.Setenv("WHALE_SENTRY_TELEGRAM_BOT_TOKEN", "")
	t.Setenv("WHALE_SENTRY_MORALIS_API_KEY", "test-key")

	_, err := config.Load("", t.TempDir())
	assert.ErrorContains(t, err, "telegram.bot_token")
}

func TestLoadRequiresMoralisKey(t *testing.T) {
	t.Setenv("WHALE_SENTRY_TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("WHALE_SENTRY_MORALIS_API_KEY", "")

	_, err := config.Load("", t.TempDir())
	assert.ErrorContains(t, err, "moralis.api_key")
}

func TestLoadRejectsBadTradeFraction(t *testing.T) {
	t.Setenv("WHALE_SENTRY_TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("WHALE_SENTRY_MORALIS_API_KEY", "test-key")
	t.Setenv("WHALE_SENTRY_EXCHANGE_TRADE_FRACTION", "1.5")

	_, err := config.Load("", t.TempDir())
	assert.ErrorContains(t, err, "trade_fraction")
}

func TestDSN(t *testing.T) {
	db := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "sentry",
		Password: "secret",
		DBName:   "whale_sentry",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=sentry password=secret dbname=whale_sentry sslmode=disable",
		db.DSN())
}
