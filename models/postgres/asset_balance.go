package postgres

import (
	"github.com/shopspring/decimal"
)

/*
 * 'AssetBalance' is one user's balance in one asset. Amounts carry 8
 * fractional digits; every mutation goes through a LedgerEntry inside the
 * same transaction, with the balance row locked FOR UPDATE.
 */
type AssetBalance struct {
	// NOTE: composite primary key definition
	Username string          `gorm:"primaryKey;size:50;not null"`
	Asset    string          `gorm:"primaryKey;size:20;not null"`
	Amount   decimal.Decimal `gorm:"type:numeric(30,8);not null;default:0"`

	GameProfile GameProfile `gorm:"foreignKey:Username;constraint:OnDelete:CASCADE"`
}
