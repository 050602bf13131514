package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'GameProfile' defines the structure for a user's game profile. It is
 * referenced in User, AssetBalance, LedgerEntry and BlackjackGame
 */
type GameProfile struct {
	Username  string         `gorm:"primaryKey;size:50;not null"`
	UserStats datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	UserIcon  int            `gorm:"default:0"`
	IsInAGame bool           `gorm:"default:false"`

	Balances       []AssetBalance  `gorm:"foreignKey:Username"`
	BlackjackGames []BlackjackGame `gorm:"foreignKey:Username"`
}
