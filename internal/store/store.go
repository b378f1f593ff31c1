package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/blockpulse/whale-sentry/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetMonitoredAddress retrieves a monitored address by its lower-cased address
	GetMonitoredAddress(ctx context.Context, address string) (*schema.MonitoredAddress, error)
	// ListMonitoredAddresses retrieves all monitored addresses owned by a chat
	ListMonitoredAddresses(ctx context.Context, chatID int64) ([]schema.MonitoredAddress, error)
	// CreateMonitoredAddress inserts a new monitored address; returns
	// domain.ErrAddressExists if the address is already registered
	CreateMonitoredAddress(ctx context.Context, record *schema.MonitoredAddress) error
	// DeleteMonitoredAddress removes a monitored address owned by a chat;
	// returns domain.ErrAddressNotFound if no such registration exists
	DeleteMonitoredAddress(ctx context.Context, address string, chatID int64) error
	// UpdateThreshold sets the alert threshold for a monitored address owned by a chat
	UpdateThreshold(ctx context.Context, address string, chatID int64, threshold decimal.Decimal) error
	// SetStreamID stores or clears the push-source subscription handle for an address
	SetStreamID(ctx context.Context, address string, streamID *string) error

	// GetTransactionByHash retrieves a transaction record by its hash;
	// returns (nil, nil) when no record exists
	GetTransactionByHash(ctx context.Context, txHash string) (*schema.TransactionRecord, error)
	// CreateTransaction inserts a new transaction record; returns
	// domain.ErrDuplicateTransaction if the hash is already recorded
	CreateTransaction(ctx context.Context, record *schema.TransactionRecord) error
	// MarkTradeTriggered flips the trade-triggered flag to true; never back
	MarkTradeTriggered(ctx context.Context, id int64) error
	// ListTransactions retrieves the most recent transaction records for a monitored address
	ListTransactions(ctx context.Context, monitoredAddressID int64, limit int) ([]schema.TransactionRecord, error)

	// GetBlockCursor retrieves the last processed block number for a chain
	GetBlockCursor(ctx context.Context, chain string) (uint64, error)
	// SetBlockCursor stores the last processed block number for a chain
	SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error
}
