package blackjack

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

func TestEvaluatePerfectPairs(t *testing.T) {
	tests := []struct {
		name   string
		first  fair.Card
		second fair.Card
		want   PerfectPairResult
	}{
		{"same rank and suit", card(fair.Eight, fair.Hearts), card(fair.Eight, fair.Hearts), PerfectPair},
		{"same rank same color", card(fair.Eight, fair.Hearts), card(fair.Eight, fair.Diamonds), ColoredPair},
		{"same rank black", card(fair.King, fair.Clubs), card(fair.King, fair.Spades), ColoredPair},
		{"same rank opposite color", card(fair.Eight, fair.Hearts), card(fair.Eight, fair.Spades), MixedPair},
		{"different ranks", card(fair.Eight, fair.Hearts), card(fair.Nine, fair.Hearts), PerfectPairNone},
		{"same value not same rank", card(fair.Ten, fair.Hearts), card(fair.Jack, fair.Hearts), PerfectPairNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluatePerfectPairs(tt.first, tt.second))
		})
	}
}

func TestPerfectPairMultipliers(t *testing.T) {
	assert.EqualValues(t, 25, PerfectPair.Multiplier())
	assert.EqualValues(t, 12, ColoredPair.Multiplier())
	assert.EqualValues(t, 6, MixedPair.Multiplier())
	assert.EqualValues(t, 0, PerfectPairNone.Multiplier())
}

func TestEvaluateTwentyOnePlusThree(t *testing.T) {
	tests := []struct {
		name   string
		first  fair.Card
		second fair.Card
		upCard fair.Card
		want   TwentyOnePlusThreeResult
	}{
		{"suited trips", card(fair.Seven, fair.Hearts), card(fair.Seven, fair.Hearts), card(fair.Seven, fair.Hearts), SuitedTrips},
		{"straight flush", card(fair.Five, fair.Clubs), card(fair.Six, fair.Clubs), card(fair.Seven, fair.Clubs), StraightFlush},
		{"three of a kind", card(fair.Seven, fair.Hearts), card(fair.Seven, fair.Clubs), card(fair.Seven, fair.Spades), ThreeOfAKind},
		{"straight", card(fair.Five, fair.Clubs), card(fair.Six, fair.Hearts), card(fair.Seven, fair.Clubs), Straight},
		{"straight out of order", card(fair.Seven, fair.Clubs), card(fair.Five, fair.Hearts), card(fair.Six, fair.Spades), Straight},
		{"ace low straight", card(fair.Ace, fair.Clubs), card(fair.Two, fair.Hearts), card(fair.Three, fair.Clubs), Straight},
		{"ace high straight", card(fair.Queen, fair.Clubs), card(fair.King, fair.Hearts), card(fair.Ace, fair.Clubs), Straight},
		{"no wraparound", card(fair.King, fair.Clubs), card(fair.Ace, fair.Hearts), card(fair.Two, fair.Clubs), TwentyOnePlusThreeNone},
		{"flush", card(fair.Two, fair.Clubs), card(fair.Nine, fair.Clubs), card(fair.King, fair.Clubs), Flush},
		{"nothing", card(fair.Two, fair.Clubs), card(fair.Nine, fair.Hearts), card(fair.King, fair.Spades), TwentyOnePlusThreeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateTwentyOnePlusThree(tt.first, tt.second, tt.upCard))
		})
	}
}

func TestTwentyOnePlusThreeMultipliers(t *testing.T) {
	assert.EqualValues(t, 100, SuitedTrips.Multiplier())
	assert.EqualValues(t, 40, StraightFlush.Multiplier())
	assert.EqualValues(t, 30, ThreeOfAKind.Multiplier())
	assert.EqualValues(t, 10, Straight.Multiplier())
	assert.EqualValues(t, 5, Flush.Multiplier())
	assert.EqualValues(t, 0, TwentyOnePlusThreeNone.Multiplier())
}

func TestSideBetWinAmount(t *testing.T) {
	stake := decimal.RequireFromString("100")

	// Winning tiers return stake * (multiplier + 1).
	assert.Equal(t, "2600.00000000", SideBetWinAmount(stake, 25).StringFixed(8))
	assert.Equal(t, "1300.00000000", SideBetWinAmount(stake, 12).StringFixed(8))
	assert.Equal(t, "700.00000000", SideBetWinAmount(stake, 6).StringFixed(8))

	// A losing bet returns nothing, the stake is gone.
	assert.True(t, SideBetWinAmount(stake, 0).IsZero())

	fractional := decimal.RequireFromString("0.123456789")
	assert.Equal(t, "1.35802468", SideBetWinAmount(fractional, 10).StringFixed(8))
}

func TestValidateSideBet(t *testing.T) {
	mainBet := decimal.RequireFromString("50")

	assert.NoError(t, ValidateSideBet(decimal.RequireFromString("50"), mainBet))
	assert.NoError(t, ValidateSideBet(decimal.RequireFromString("0.00000001"), mainBet))
	assert.Error(t, ValidateSideBet(decimal.Zero, mainBet))
	assert.Error(t, ValidateSideBet(decimal.RequireFromString("-1"), mainBet))
	assert.Error(t, ValidateSideBet(decimal.RequireFromString("50.00000001"), mainBet))
}
