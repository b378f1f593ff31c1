package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance. The gorm connection
// must be opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the schema for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.MonitoredAddress{},
		&schema.TransactionRecord{},
		&schema.KeyValueStore{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults: 20 open, 5 idle,
// 5m lifetime, 10m idle time.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetMonitoredAddress retrieves a monitored address by its lower-cased address
func (s *pgStore) GetMonitoredAddress(ctx context.Context, address string) (*schema.MonitoredAddress, error) {
	var record schema.MonitoredAddress
	err := s.db.WithContext(ctx).Where("address = ?", domain.NormalizeAddress(address)).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to get monitored address: %w", err)
	}
	return &record, nil
}

// ListMonitoredAddresses retrieves all monitored addresses owned by a chat
func (s *pgStore) ListMonitoredAddresses(ctx context.Context, chatID int64) ([]schema.MonitoredAddress, error) {
	var records []schema.MonitoredAddress
	err := s.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list monitored addresses: %w", err)
	}
	return records, nil
}

// CreateMonitoredAddress inserts a new monitored address
func (s *pgStore) CreateMonitoredAddress(ctx context.Context, record *schema.MonitoredAddress) error {
	record.Address = domain.NormalizeAddress(record.Address)
	err := s.db.WithContext(ctx).Create(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAddressExists
		}
		return fmt.Errorf("failed to create monitored address: %w", err)
	}
	return nil
}

// DeleteMonitoredAddress removes a monitored address owned by a chat
func (s *pgStore) DeleteMonitoredAddress(ctx context.Context, address string, chatID int64) error {
	result := s.db.WithContext(ctx).
		Where("address = ? AND chat_id = ?", domain.NormalizeAddress(address), chatID).
		Delete(&schema.MonitoredAddress{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete monitored address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

// UpdateThreshold sets the alert threshold for a monitored address owned by a chat
func (s *pgStore) UpdateThreshold(ctx context.Context, address string, chatID int64, threshold decimal.Decimal) error {
	result := s.db.WithContext(ctx).
		Model(&schema.MonitoredAddress{}).
		Where("address = ? AND chat_id = ?", domain.NormalizeAddress(address), chatID).
		Update("threshold_usd", threshold)
	if result.Error != nil {
		return fmt.Errorf("failed to update threshold: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

// SetStreamID stores or clears the push-source subscription handle for an address
func (s *pgStore) SetStreamID(ctx context.Context, address string, streamID *string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.MonitoredAddress{}).
		Where("address = ?", domain.NormalizeAddress(address)).
		Update("stream_id", streamID)
	if result.Error != nil {
		return fmt.Errorf("failed to set stream id: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

// GetTransactionByHash retrieves a transaction record by its hash.
// Returns (nil, nil) when no record exists.
func (s *pgStore) GetTransactionByHash(ctx context.Context, txHash string) (*schema.TransactionRecord, error) {
	var record schema.TransactionRecord
	err := s.db.WithContext(ctx).Where("tx_hash = ?", txHash).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &record, nil
}

// CreateTransaction inserts a new transaction record. The unique tx_hash
// constraint makes concurrent duplicate inserts lose cleanly.
func (s *pgStore) CreateTransaction(ctx context.Context, record *schema.TransactionRecord) error {
	err := s.db.WithContext(ctx).Create(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// MarkTradeTriggered flips the trade-triggered flag to true
func (s *pgStore) MarkTradeTriggered(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.TransactionRecord{}).
		Where("id = ?", id).
		Update("trade_triggered", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark trade triggered: %w", err)
	}
	return nil
}

// ListTransactions retrieves the most recent transaction records for a monitored address
func (s *pgStore) ListTransactions(ctx context.Context, monitoredAddressID int64, limit int) ([]schema.TransactionRecord, error) {
	var records []schema.TransactionRecord
	err := s.db.WithContext(ctx).
		Where("monitored_address_id = ?", monitoredAddressID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return records, nil
}

// GetBlockCursor retrieves the last processed block number for a chain
func (s *pgStore) GetBlockCursor(ctx context.Context, chain string) (uint64, error) {
	key := fmt.Sprintf("block_cursor:%s", chain)

	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}

	blockNumber, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse block cursor: %w", err)
	}

	return blockNumber, nil
}

// SetBlockCursor stores the last processed block number for a chain
func (s *pgStore) SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error {
	kv := schema.KeyValueStore{
		Key:   fmt.Sprintf("block_cursor:%s", chain),
		Value: strconv.FormatUint(blockNumber, 10),
	}

	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set block cursor: %w", err)
	}

	return nil
}
