package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonitoredAddress represents the monitored_addresses table - one row per
// chain address registered for transfer alerting.
type MonitoredAddress struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Address is the lower-cased chain address; at most one row per address
	Address string `gorm:"column:address;not null;unique;type:text"`
	// ChatID is the chat destination that owns this registration and receives alerts
	ChatID int64 `gorm:"column:chat_id;not null;index"`
	// ThresholdUSD is the USD valuation at or above which the trade trigger fires
	ThresholdUSD decimal.Decimal `gorm:"column:threshold_usd;not null;type:numeric(18,2)"`
	// StreamID is the push-source subscription handle, nil until a subscription exists
	StreamID *string `gorm:"column:stream_id;type:text"`
	// Active indicates whether transfers to this address are processed
	Active bool `gorm:"column:active;not null;default:true"`
	// CreatedAt is when this registration was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when this registration was last modified
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MonitoredAddress model
func (MonitoredAddress) TableName() string {
	return "monitored_addresses"
}
