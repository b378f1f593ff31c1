package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord represents the transaction_records table - one row per
// detected transfer. The unique tx_hash constraint is the durable
// deduplication guarantee behind the pipeline's advisory check.
type TransactionRecord struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TxHash is the transaction hash; globally unique across all records
	TxHash string `gorm:"column:tx_hash;not null;unique;type:text"`
	// MonitoredAddressID references the owning monitored address
	MonitoredAddressID int64 `gorm:"column:monitored_address_id;not null;index"`
	// TokenAddress is the lower-cased token contract address
	TokenAddress string `gorm:"column:token_address;not null;type:text"`
	// TokenSymbol is the token ticker symbol, may be empty for log-derived transfers
	TokenSymbol string `gorm:"column:token_symbol;not null;default:'';type:text"`
	// Amount is the decimal-formatted transfer quantity
	Amount decimal.Decimal `gorm:"column:amount;not null;type:numeric(78,18)"`
	// AmountUSD is the USD valuation at detection time, never recomputed
	AmountUSD decimal.Decimal `gorm:"column:amount_usd;not null;type:numeric(18,2)"`
	// BlockNumber is the block the transfer was included in
	BlockNumber uint64 `gorm:"column:block_number;not null"`
	// TradeTriggered flips false to true when a hedging trade executes; never back
	TradeTriggered bool `gorm:"column:trade_triggered;not null;default:false"`
	// CreatedAt is when this transfer was detected
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	MonitoredAddress MonitoredAddress `gorm:"foreignKey:MonitoredAddressID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the TransactionRecord model
func (TransactionRecord) TableName() string {
	return "transaction_records"
}
