package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

/*
 * 'LedgerEntry' records one stake adjustment. The unique index on
 * OperationID is what makes AdjustStake idempotent: a retried charge finds
 * the existing row and returns its recorded outcome instead of moving
 * money twice.
 */
type LedgerEntry struct {
	ID           uint            `gorm:"primaryKey"`
	OperationID  string          `gorm:"size:100;not null;uniqueIndex"`
	Operation    string          `gorm:"size:20;not null"`
	Username     string          `gorm:"size:50;not null;index"`
	Asset        string          `gorm:"size:20;not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(30,8);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(30,8);not null"`
	Description  string          `gorm:"size:255"`
	Metadata     datatypes.JSON  `gorm:"type:jsonb;default:'{}'"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP"`

	GameProfile GameProfile `gorm:"foreignKey:Username"`
}
