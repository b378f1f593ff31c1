package domain_test

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/blockpulse/whale-sentry/internal/domain"
)

func TestTransferEventQuantity(t *testing.T) {
	raw, _ := new(big.Int).SetString("5000000000000000000", 10)
	event := &domain.TransferEvent{RawValue: raw, Decimals: 18}

	assert.True(t, event.Quantity().Equal(decimal.NewFromInt(5)))
	assert.True(t, event.AmountUSD(decimal.NewFromInt(2)).Equal(decimal.NewFromInt(10)))
}

func TestTransferEventQuantityRoundTrip(t *testing.T) {
	// a quantity that does not divide evenly survives format-and-reparse
	raw, _ := new(big.Int).SetString("5000000000000000001", 10)
	event := &domain.TransferEvent{RawValue: raw, Decimals: 18}

	formatted := event.Quantity().String()
	assert.Equal(t, "5.000000000000000001", formatted)

	reparsed, err := decimal.NewFromString(formatted)
	assert.NoError(t, err)
	assert.Equal(t, raw.String(), reparsed.Shift(18).BigInt().String())
}

func TestTransferEventQuantityNilValue(t *testing.T) {
	event := &domain.TransferEvent{Decimals: 18}

	assert.True(t, event.Quantity().IsZero())
	assert.True(t, event.AmountUSD(decimal.NewFromInt(2)).IsZero())
}

func TestTransferEventQuantitySixDecimals(t *testing.T) {
	event := &domain.TransferEvent{RawValue: big.NewInt(2500000000), Decimals: 6}

	assert.True(t, event.Quantity().Equal(decimal.NewFromInt(2500)))
}

func TestIsVerificationPing(t *testing.T) {
	tests := []struct {
		name     string
		delivery domain.Delivery
		expected bool
	}{
		{
			name:     "tag only",
			delivery: domain.Delivery{Tag: "t-1"},
			expected: true,
		},
		{
			name:     "stream id only",
			delivery: domain.Delivery{StreamID: "s-1"},
			expected: true,
		},
		{
			name:     "completely empty",
			delivery: domain.Delivery{},
			expected: false,
		},
		{
			name: "carries logs",
			delivery: domain.Delivery{
				Tag:  "t-1",
				Logs: []domain.LogEntry{{TransactionHash: "0xabc"}},
			},
			expected: false,
		},
		{
			name: "carries structured transfers",
			delivery: domain.Delivery{
				StreamID:       "s-1",
				ERC20Transfers: []domain.StructuredTransfer{{"hash": "0xabc"}},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.delivery.IsVerificationPing())
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t,
		"0xab5801a7d398351b8be11c439e05c5b3259aec9b",
		domain.NormalizeAddress("  0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B "))
	assert.Equal(t, "", domain.NormalizeAddress("   "))
}
