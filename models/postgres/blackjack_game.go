package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

/*
 * 'BlackjackGame' is the persisted form of one blackjack round. The full
 * engine state (hands, flags, side bets) lives in the State jsonb column;
 * the indexed columns exist for queries and the fairness disclosure. The
 * server seed is only ever exposed through the disclosure endpoint once
 * the round is completed and the seed pair rotated.
 */
type BlackjackGame struct {
	ID             string          `gorm:"primaryKey;size:50;not null"`
	Username       string          `gorm:"size:50;not null;index"`
	Asset          string          `gorm:"size:20;not null"`
	Status         string          `gorm:"size:20;not null;index"`
	BetAmount      decimal.Decimal `gorm:"type:numeric(30,8);not null;default:0"`
	TotalBetAmount decimal.Decimal `gorm:"type:numeric(30,8);not null;default:0"`
	TotalWinAmount decimal.Decimal `gorm:"type:numeric(30,8);not null;default:0"`
	Multiplier     decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	ServerSeed     string          `gorm:"size:100;not null"`
	ServerSeedHash string          `gorm:"size:100;not null"`
	ClientSeed     string          `gorm:"size:100;not null"`
	Nonce          uint64          `gorm:"not null"`
	Cursor         int             `gorm:"not null"`
	State          datatypes.JSON  `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP"`

	GameProfile GameProfile `gorm:"foreignKey:Username"`
}
