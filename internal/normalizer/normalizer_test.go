package normalizer_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/normalizer"
)

const transferTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

func TestTransferTopic(t *testing.T) {
	assert.Equal(t, transferTopic, normalizer.TransferTopic())
}

func TestFromStructured(t *testing.T) {
	entry := domain.StructuredTransfer{
		"transactionHash": "0xABCDEF",
		"to":              "0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B",
		"contract":        "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		"tokenSymbol":     "USDC",
		"tokenDecimals":   "6",
		"value":           "2500000000",
	}

	event, err := normalizer.FromStructured(entry, 19000000)
	require.NoError(t, err)

	assert.Equal(t, "0xabcdef", event.TxHash)
	assert.Equal(t, "0xab5801a7d398351b8be11c439e05c5b3259aec9b", event.ToAddress)
	assert.Equal(t, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", event.TokenAddress)
	assert.Equal(t, "USDC", event.TokenSymbol)
	assert.Equal(t, int32(6), event.Decimals)
	assert.Equal(t, uint64(19000000), event.BlockNumber)
	assert.Equal(t, domain.ShapeStructured, event.Shape)
	assert.True(t, event.Quantity().Equal(decimal.RequireFromString("2500")))
}

func TestFromStructuredAliases(t *testing.T) {
	// alternate key spellings carry the same meaning
	entry := domain.StructuredTransfer{
		"hash":         "0xfeed",
		"toAddress":    "0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B",
		"tokenAddress": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		"symbol":       "USDC",
		"decimals":     float64(6),
		"amount":       "1000000",
	}

	event, err := normalizer.FromStructured(entry, 1)
	require.NoError(t, err)

	assert.Equal(t, "0xfeed", event.TxHash)
	assert.Equal(t, "USDC", event.TokenSymbol)
	assert.Equal(t, int32(6), event.Decimals)
	assert.True(t, event.Quantity().Equal(decimal.NewFromInt(1)))
}

func TestFromStructuredMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.StructuredTransfer
	}{
		{
			name:  "missing hash",
			entry: domain.StructuredTransfer{"to": "0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B"},
		},
		{
			name:  "missing destination",
			entry: domain.StructuredTransfer{"transactionHash": "0xabc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizer.FromStructured(tt.entry, 1)
			assert.True(t, errors.Is(err, domain.ErrNotNormalizable))
		})
	}
}

func TestFromStructuredDefaultsDecimals(t *testing.T) {
	entry := domain.StructuredTransfer{
		"transactionHash": "0xabc",
		"to":              "0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B",
		"value":           "5000000000000000000",
	}

	event, err := normalizer.FromStructured(entry, 1)
	require.NoError(t, err)

	assert.Equal(t, int32(domain.DefaultTokenDecimals), event.Decimals)
	assert.True(t, event.Quantity().Equal(decimal.NewFromInt(5)))
}

func TestFromLog(t *testing.T) {
	// 5 * 10^18 in the low-order 32 bytes of data
	log := domain.LogEntry{
		TransactionHash: "0xDEADBEEF",
		Address:         "0x6B175474E89094C44Da98b954EedeAC495271d0F",
		Data:            "0x0000000000000000000000000000000000000000000000004563918244f40000",
		Topic0:          transferTopic,
		Topic1:          "0x000000000000000000000000f977814e90da44bfa03b6295a0616a897441acec",
		Topic2:          "0x000000000000000000000000ab5801a7d398351b8be11c439e05c5b3259aec9b",
	}

	event, err := normalizer.FromLog(log, 19000001)
	require.NoError(t, err)

	assert.Equal(t, "0xdeadbeef", event.TxHash)
	assert.Equal(t, "0xab5801a7d398351b8be11c439e05c5b3259aec9b", event.ToAddress)
	assert.Equal(t, "0x6b175474e89094c44da98b954eedeac495271d0f", event.TokenAddress)
	assert.Empty(t, event.TokenSymbol)
	assert.Equal(t, int32(domain.DefaultTokenDecimals), event.Decimals)
	assert.Equal(t, domain.ShapeLog, event.Shape)

	expected, _ := new(big.Int).SetString("5000000000000000000", 10)
	assert.Equal(t, 0, event.RawValue.Cmp(expected))
	assert.True(t, event.Quantity().Equal(decimal.NewFromInt(5)))

	// valued at $2/token the transfer is worth $10
	assert.True(t, event.AmountUSD(decimal.NewFromInt(2)).Equal(decimal.NewFromInt(10)))
}

func TestFromLogRejectsOtherEvents(t *testing.T) {
	log := domain.LogEntry{
		TransactionHash: "0xabc",
		// Approval(address,address,uint256)
		Topic0: "0x8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925",
		Topic2: "0x000000000000000000000000ab5801a7d398351b8be11c439e05c5b3259aec9b",
	}

	_, err := normalizer.FromLog(log, 1)
	assert.True(t, errors.Is(err, domain.ErrNotNormalizable))
}

func TestFromLogMissingDestination(t *testing.T) {
	log := domain.LogEntry{
		TransactionHash: "0xabc",
		Topic0:          transferTopic,
	}

	_, err := normalizer.FromLog(log, 1)
	assert.True(t, errors.Is(err, domain.ErrNotNormalizable))
}

func TestParseBlockNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected uint64
	}{
		{"19000000", 19000000},
		{"0x121eac0", 19000000},
		{"", 0},
		{"not-a-number", 0},
		{"0xzz", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizer.ParseBlockNumber(tt.input), "input %q", tt.input)
	}
}
