package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	models "github.com/lazymak3r/zetik-backend-sub007/models/postgres"
	"github.com/lazymak3r/zetik-backend-sub007/services/blackjack"
	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

// ErrGameNotFound is returned when a round id does not exist.
var ErrGameNotFound = errors.New("game not found")

/*
 * 'GameStore' persists blackjack rounds. LoadForUpdate takes the row lock
 * the engine's concurrency model relies on: exactly one writer advances a
 * round's cursor, so both calls must happen inside one transaction.
 */
type GameStore struct {
	db *gorm.DB
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db}
}

// Transaction runs fn inside one database transaction; every
// LoadForUpdate/Save pair around an engine action belongs in one.
func (s *GameStore) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// LoadForUpdate loads a round by id holding an exclusive row lock until
// the surrounding transaction ends.
func (s *GameStore) LoadForUpdate(tx *gorm.DB, gameID string) (*blackjack.Game, error) {
	var record models.BlackjackGame
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", gameID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRecord(&record)
}

// Load reads a round without locking, for read-only surfaces like the
// fairness disclosure.
func (s *GameStore) Load(ctx context.Context, gameID string) (*blackjack.Game, error) {
	var record models.BlackjackGame
	err := s.db.WithContext(ctx).Where("id = ?", gameID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRecord(&record)
}

// Save upserts the round.
func (s *GameStore) Save(tx *gorm.DB, game *blackjack.Game) error {
	record, err := toRecord(game)
	if err != nil {
		return err
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(record).Error
}

// ActiveGame returns the user's unfinished round, if any.
func (s *GameStore) ActiveGame(ctx context.Context, username string) (*blackjack.Game, error) {
	var record models.BlackjackGame
	err := s.db.WithContext(ctx).
		Where("username = ? AND status <> ?", username, string(blackjack.GameCompleted)).
		Order("created_at DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRecord(&record)
}

func toRecord(game *blackjack.Game) (*models.BlackjackGame, error) {
	state, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("encoding game state: %w", err)
	}
	return &models.BlackjackGame{
		ID:             game.ID,
		Username:       game.UserID,
		Asset:          game.Asset,
		Status:         string(game.Status),
		BetAmount:      game.BetAmount,
		TotalBetAmount: game.TotalBetAmount,
		TotalWinAmount: game.TotalWinAmount,
		Multiplier:     game.Multiplier,
		ServerSeed:     game.ServerSeed,
		ServerSeedHash: fair.HashCommitment(game.ServerSeed),
		ClientSeed:     game.ClientSeed,
		Nonce:          game.Nonce,
		Cursor:         game.Cursor,
		State:          state,
	}, nil
}

func fromRecord(record *models.BlackjackGame) (*blackjack.Game, error) {
	var game blackjack.Game
	if err := json.Unmarshal(record.State, &game); err != nil {
		return nil, fmt.Errorf("decoding game state for %s: %w", record.ID, err)
	}
	return &game, nil
}
