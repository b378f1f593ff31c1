package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/blockpulse/whale-sentry/internal/store/schema"
)

// WalletResponse represents a monitored address
type WalletResponse struct {
	Address      string          `json:"address"`
	ChatID       int64           `json:"chat_id"`
	ThresholdUSD decimal.Decimal `json:"threshold_usd"`
	StreamID     *string         `json:"stream_id,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// WalletsFromSchema maps store records to API responses
func WalletsFromSchema(records []schema.MonitoredAddress) []WalletResponse {
	out := make([]WalletResponse, 0, len(records))
	for _, r := range records {
		out = append(out, WalletResponse{
			Address:      r.Address,
			ChatID:       r.ChatID,
			ThresholdUSD: r.ThresholdUSD,
			StreamID:     r.StreamID,
			Active:       r.Active,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}

// TransactionResponse represents a recorded transfer
type TransactionResponse struct {
	TxHash         string          `json:"tx_hash"`
	TokenAddress   string          `json:"token_address"`
	TokenSymbol    string          `json:"token_symbol,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	AmountUSD      decimal.Decimal `json:"amount_usd"`
	BlockNumber    uint64          `json:"block_number"`
	TradeTriggered bool            `json:"trade_triggered"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TransactionsFromSchema maps store records to API responses
func TransactionsFromSchema(records []schema.TransactionRecord) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(records))
	for _, r := range records {
		out = append(out, TransactionResponse{
			TxHash:         r.TxHash,
			TokenAddress:   r.TokenAddress,
			TokenSymbol:    r.TokenSymbol,
			Amount:         r.Amount,
			AmountUSD:      r.AmountUSD,
			BlockNumber:    r.BlockNumber,
			TradeTriggered: r.TradeTriggered,
			CreatedAt:      r.CreatedAt,
		})
	}
	return out
}
