package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazymak3r/zetik-backend-sub007/services/blackjack"
	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

func TestGameRecordRoundtrip(t *testing.T) {
	game := &blackjack.Game{
		ID:         "round-7",
		UserID:     "alice",
		Asset:      "USD",
		ServerSeed: "server",
		ClientSeed: "client",
		Nonce:      12,
		Cursor:     6,
		Status:     blackjack.GameActive,
		ActiveHand: blackjack.SplitSeat,
		BetAmount:  decimal.RequireFromString("100"),
		PlayerHand: blackjack.Hand{
			Cards: []fair.Card{
				{Suit: fair.Hearts, Rank: fair.Eight, Value: 8},
				{Suit: fair.Clubs, Rank: fair.Ten, Value: 10},
			},
			Hard: 18, Soft: 18,
			Status: blackjack.HandStand,
		},
		DealerHand: blackjack.Hand{
			Cards: []fair.Card{
				{Suit: fair.Diamonds, Rank: fair.Ten, Value: 10},
				{Suit: fair.Spades, Rank: fair.Seven, Value: 7},
			},
			Hard: 17, Soft: 17,
			Status: blackjack.HandActive,
		},
		Split: &blackjack.SplitRound{
			Hand: blackjack.Hand{
				Cards: []fair.Card{
					{Suit: fair.Spades, Rank: fair.Eight, Value: 8},
					{Suit: fair.Hearts, Rank: fair.Four, Value: 4},
				},
				Hard: 12, Soft: 12,
				Status: blackjack.HandActive,
			},
			DoubleDown: true,
		},
		Insurance: &blackjack.InsuranceBet{
			BetAmount: decimal.RequireFromString("50"),
		},
		PerfectPair: &blackjack.SideBet{
			BetAmount: decimal.RequireFromString("10"),
			WinAmount: decimal.RequireFromString("130"),
			Result:    string(blackjack.ColoredPair),
		},
		TotalBetAmount: decimal.RequireFromString("360"),
	}

	record, err := toRecord(game)
	require.NoError(t, err)

	// Indexed columns mirror the state blob.
	assert.Equal(t, "round-7", record.ID)
	assert.Equal(t, "alice", record.Username)
	assert.Equal(t, string(blackjack.GameActive), record.Status)
	assert.Equal(t, fair.HashCommitment("server"), record.ServerSeedHash)
	assert.EqualValues(t, 12, record.Nonce)
	assert.Equal(t, 6, record.Cursor)

	restored, err := fromRecord(record)
	require.NoError(t, err)

	assert.Equal(t, game.ID, restored.ID)
	assert.Equal(t, game.UserID, restored.UserID)
	assert.Equal(t, game.Status, restored.Status)
	assert.Equal(t, game.ActiveHand, restored.ActiveHand)
	assert.Equal(t, game.Nonce, restored.Nonce)
	assert.Equal(t, game.Cursor, restored.Cursor)
	assert.Equal(t, game.PlayerHand, restored.PlayerHand)
	assert.Equal(t, game.DealerHand, restored.DealerHand)

	require.NotNil(t, restored.Split)
	assert.Equal(t, game.Split.Hand, restored.Split.Hand)
	assert.True(t, restored.Split.DoubleDown)

	require.NotNil(t, restored.Insurance)
	assert.True(t, restored.Insurance.BetAmount.Equal(game.Insurance.BetAmount))

	require.NotNil(t, restored.PerfectPair)
	assert.Equal(t, string(blackjack.ColoredPair), restored.PerfectPair.Result)
	assert.True(t, restored.PerfectPair.WinAmount.Equal(game.PerfectPair.WinAmount))
	assert.Nil(t, restored.TwentyOnePlusThree)

	assert.True(t, restored.BetAmount.Equal(game.BetAmount))
	assert.True(t, restored.TotalBetAmount.Equal(game.TotalBetAmount))
	assert.True(t, restored.TotalWinAmount.IsZero())
}

func TestFromRecordRejectsCorruptState(t *testing.T) {
	game := &blackjack.Game{ID: "round-8", Status: blackjack.GameCompleted}
	record, err := toRecord(game)
	require.NoError(t, err)

	record.State = []byte("{not json")
	_, err = fromRecord(record)
	assert.Error(t, err)
}
