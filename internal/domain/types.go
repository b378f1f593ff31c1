package domain

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTokenDecimals is assumed when a payload carries no decimals field
const DefaultTokenDecimals = 18

// SourceShape tags which raw payload variant a transfer was normalized from
type SourceShape string

const (
	// ShapeStructured marks events normalized from structured erc20Transfers entries
	ShapeStructured SourceShape = "structured"
	// ShapeLog marks events normalized from raw indexed log entries
	ShapeLog SourceShape = "log"
)

// TransferEvent is the canonical internal representation of an incoming
// token transfer, regardless of which raw payload shape it arrived in.
type TransferEvent struct {
	// TxHash is the transaction hash, the sole deduplication key
	TxHash string
	// ToAddress is the lower-cased destination address
	ToAddress string
	// TokenAddress is the lower-cased token contract address
	TokenAddress string
	// TokenSymbol is the token ticker symbol, may be empty for log-derived events
	TokenSymbol string
	// RawValue is the unscaled integer transfer quantity
	RawValue *big.Int
	// Decimals is the token's decimal exponent
	Decimals int32
	// BlockNumber is the block the transfer was included in
	BlockNumber uint64
	// Shape records which raw variant this event was normalized from
	Shape SourceShape
}

// Quantity returns the transfer amount scaled by the token's decimals.
// The raw value is kept as an arbitrary-precision integer until this point.
func (e *TransferEvent) Quantity() decimal.Decimal {
	if e.RawValue == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(e.RawValue, -e.Decimals)
}

// AmountUSD values the transfer at the given unit price
func (e *TransferEvent) AmountUSD(unitPrice decimal.Decimal) decimal.Decimal {
	return e.Quantity().Mul(unitPrice)
}

// Delivery is one webhook push from the streams provider. All fields are
// optional on the wire; verification pings carry only tag and stream id.
type Delivery struct {
	Confirmed      bool                 `json:"confirmed"`
	ChainID        string               `json:"chainId"`
	Tag            string               `json:"tag"`
	StreamID       string               `json:"streamId"`
	Block          BlockInfo            `json:"block"`
	ERC20Transfers []StructuredTransfer `json:"erc20Transfers"`
	Logs           []LogEntry           `json:"logs"`
}

// IsVerificationPing reports whether this delivery is the provider's
// callback-reachability check: subscription identifiers but no event data.
func (d *Delivery) IsVerificationPing() bool {
	return len(d.ERC20Transfers) == 0 && len(d.Logs) == 0 &&
		(d.Tag != "" || d.StreamID != "")
}

// BlockInfo carries batch-level block metadata
type BlockInfo struct {
	Number    string `json:"number"`
	Hash      string `json:"hash"`
	Timestamp string `json:"timestamp"`
}

// StructuredTransfer is a structured transfer object from the provider.
// Providers are not consistent about key names, so it is kept as a loose
// map and read through alias-tolerant accessors in the normalizer.
type StructuredTransfer map[string]interface{}

// LogEntry is a raw indexed log entry from the provider
type LogEntry struct {
	LogIndex        string `json:"logIndex"`
	TransactionHash string `json:"transactionHash"`
	Address         string `json:"address"`
	Data            string `json:"data"`
	Topic0          string `json:"topic0"`
	Topic1          string `json:"topic1"`
	Topic2          string `json:"topic2"`
	Topic3          string `json:"topic3"`
}

// NormalizeAddress lower-cases a chain address. Monitored addresses are
// stored and compared lower-cased only.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
