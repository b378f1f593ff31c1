// Package normalizer converts the two raw webhook payload shapes into the
// canonical TransferEvent. Unknown or malformed entries normalize to an
// error that callers treat as a discard, never as a failure.
package normalizer

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/blockpulse/whale-sentry/internal/domain"
)

// transferEventSignature is the canonical ERC20 Transfer event topic0:
// Transfer(address indexed from, address indexed to, uint256 value)
var transferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// TransferTopic returns the canonical Transfer event signature hash as a hex string
func TransferTopic() string {
	return transferEventSignature.Hex()
}

// Field aliases tolerated on structured transfer entries. Providers have
// shipped both spellings at different API versions.
var (
	hashKeys     = []string{"transactionHash", "hash"}
	toKeys       = []string{"to", "toAddress"}
	contractKeys = []string{"address", "contract", "tokenAddress"}
	symbolKeys   = []string{"tokenSymbol", "symbol"}
	decimalsKeys = []string{"tokenDecimals", "decimals"}
	valueKeys    = []string{"value", "amount"}
)

// FromStructured normalizes a structured transfer entry
func FromStructured(t domain.StructuredTransfer, blockNumber uint64) (*domain.TransferEvent, error) {
	txHash := firstString(t, hashKeys)
	if txHash == "" {
		return nil, fmt.Errorf("%w: missing transaction hash", domain.ErrNotNormalizable)
	}

	to := firstString(t, toKeys)
	if to == "" {
		return nil, fmt.Errorf("%w: missing destination address", domain.ErrNotNormalizable)
	}

	rawValue := parseBigInt(firstString(t, valueKeys))

	return &domain.TransferEvent{
		TxHash:       strings.ToLower(txHash),
		ToAddress:    domain.NormalizeAddress(to),
		TokenAddress: domain.NormalizeAddress(firstString(t, contractKeys)),
		TokenSymbol:  firstString(t, symbolKeys),
		RawValue:     rawValue,
		Decimals:     firstDecimals(t, decimalsKeys),
		BlockNumber:  blockNumber,
		Shape:        domain.ShapeStructured,
	}, nil
}

// FromLog normalizes a raw indexed log entry. Only logs whose first topic
// is the canonical Transfer signature are eligible; anything else is
// reported as not normalizable.
func FromLog(l domain.LogEntry, blockNumber uint64) (*domain.TransferEvent, error) {
	if !strings.EqualFold(l.Topic0, transferEventSignature.Hex()) {
		return nil, fmt.Errorf("%w: topic0 %q is not a Transfer event", domain.ErrNotNormalizable, l.Topic0)
	}

	if l.TransactionHash == "" {
		return nil, fmt.Errorf("%w: missing transaction hash", domain.ErrNotNormalizable)
	}

	to := addressFromTopic(l.Topic2)
	if to == "" {
		return nil, fmt.Errorf("%w: missing destination address", domain.ErrNotNormalizable)
	}

	return &domain.TransferEvent{
		TxHash:       strings.ToLower(l.TransactionHash),
		ToAddress:    to,
		TokenAddress: domain.NormalizeAddress(l.Address),
		RawValue:     quantityFromData(l.Data),
		Decimals:     domain.DefaultTokenDecimals,
		BlockNumber:  blockNumber,
		Shape:        domain.ShapeLog,
	}, nil
}

// ParseBlockNumber parses a batch-level block number, tolerating decimal
// and 0x-prefixed hex encodings. Malformed input parses to 0.
func ParseBlockNumber(s string) uint64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0
		}
		return n
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// addressFromTopic extracts an address from a 32-byte indexed topic by
// taking its low-order 20 bytes and re-prefixing with 0x.
func addressFromTopic(topic string) string {
	hex := strings.TrimPrefix(strings.TrimPrefix(topic, "0x"), "0X")
	if len(hex) < 40 {
		return ""
	}
	return domain.NormalizeAddress("0x" + hex[len(hex)-40:])
}

// quantityFromData extracts the transfer quantity from the log's data
// field by taking its low-order 32 bytes.
func quantityFromData(data string) *big.Int {
	hex := strings.TrimPrefix(strings.TrimPrefix(data, "0x"), "0X")
	if len(hex) > 64 {
		hex = hex[len(hex)-64:]
	}
	if hex == "" {
		return big.NewInt(0)
	}

	n, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return big.NewInt(0)
	}
	return n
}

// firstString returns the first non-empty string value among the aliased keys
func firstString(m map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			switch s := v.(type) {
			case string:
				if s != "" {
					return s
				}
			case float64:
				return strconv.FormatFloat(s, 'f', -1, 64)
			}
		}
	}
	return ""
}

// firstDecimals returns the decimal exponent from the aliased keys,
// defaulting when absent or malformed
func firstDecimals(m map[string]interface{}, keys []string) int32 {
	for _, key := range keys {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch d := v.(type) {
		case float64:
			return int32(d)
		case string:
			if n, err := strconv.ParseInt(d, 10, 32); err == nil {
				return int32(n)
			}
		}
	}
	return domain.DefaultTokenDecimals
}

// parseBigInt parses a decimal or 0x-prefixed hex quantity string as an
// arbitrary-precision integer. Malformed input parses to zero.
func parseBigInt(s string) *big.Int {
	s = strings.TrimSpace(s)
	if s == "" {
		return big.NewInt(0)
	}

	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}

	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return big.NewInt(0)
	}
	return n
}
