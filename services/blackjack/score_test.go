package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

func card(rank fair.Rank, suit fair.Suit) fair.Card {
	value := 0
	switch rank {
	case fair.Ace:
		value = 11
	case fair.Ten, fair.Jack, fair.Queen, fair.King:
		value = 10
	case fair.Two:
		value = 2
	case fair.Three:
		value = 3
	case fair.Four:
		value = 4
	case fair.Five:
		value = 5
	case fair.Six:
		value = 6
	case fair.Seven:
		value = 7
	case fair.Eight:
		value = 8
	case fair.Nine:
		value = 9
	}
	return fair.Card{Suit: suit, Rank: rank, Value: value}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		cards []fair.Card
		hard  int
		soft  int
	}{
		{"empty hand", nil, 0, 0},
		{"pair of tens", []fair.Card{card(fair.Ten, fair.Hearts), card(fair.Ten, fair.Spades)}, 20, 20},
		{"soft seventeen", []fair.Card{card(fair.Ace, fair.Hearts), card(fair.Six, fair.Clubs)}, 7, 17},
		{"double ace", []fair.Card{card(fair.Ace, fair.Hearts), card(fair.Ace, fair.Spades)}, 2, 12},
		{"bust rescue", []fair.Card{card(fair.Ace, fair.Hearts), card(fair.Five, fair.Clubs), card(fair.Eight, fair.Spades)}, 14, 14},
		{"hard bust", []fair.Card{card(fair.Ten, fair.Hearts), card(fair.Five, fair.Clubs), card(fair.Eight, fair.Spades)}, 23, 23},
		{"natural", []fair.Card{card(fair.Ace, fair.Hearts), card(fair.King, fair.Clubs)}, 11, 21},
		{"three aces", []fair.Card{card(fair.Ace, fair.Hearts), card(fair.Ace, fair.Spades), card(fair.Ace, fair.Clubs)}, 3, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hard, soft, err := Score(tt.cards)
			require.NoError(t, err)
			assert.Equal(t, tt.hard, hard, "hard total")
			assert.Equal(t, tt.soft, soft, "soft total")
		})
	}
}

func TestScoreOrderInvariant(t *testing.T) {
	cards := []fair.Card{
		card(fair.Ace, fair.Hearts),
		card(fair.Five, fair.Clubs),
		card(fair.Eight, fair.Spades),
		card(fair.Ace, fair.Diamonds),
	}
	hard, soft, err := Score(cards)
	require.NoError(t, err)

	// Every rotation scores the same.
	for i := 1; i < len(cards); i++ {
		rotated := append(append([]fair.Card{}, cards[i:]...), cards[:i]...)
		h, s, err := Score(rotated)
		require.NoError(t, err)
		assert.Equal(t, hard, h)
		assert.Equal(t, soft, s)
	}
}

func TestScoreRejectsMalformedCard(t *testing.T) {
	_, _, err := Score([]fair.Card{{Suit: fair.Hearts, Rank: fair.Ace, Value: 1}})
	assert.Error(t, err)

	_, _, err = Score([]fair.Card{{Suit: "stars", Rank: fair.Ace, Value: 11}})
	assert.Error(t, err)
}

func TestBestScore(t *testing.T) {
	assert.Equal(t, 17, BestScore(7, 17))
	assert.Equal(t, 14, BestScore(14, 14))
	assert.Equal(t, 12, BestScore(12, 22))
	assert.Equal(t, 21, BestScore(11, 21))
}

func TestIsBlackjack(t *testing.T) {
	assert.True(t, IsBlackjack([]fair.Card{card(fair.Ace, fair.Hearts), card(fair.King, fair.Clubs)}))
	assert.True(t, IsBlackjack([]fair.Card{card(fair.Ten, fair.Hearts), card(fair.Ace, fair.Clubs)}))

	// A three-card 21 is never a natural.
	assert.False(t, IsBlackjack([]fair.Card{
		card(fair.Seven, fair.Hearts), card(fair.Seven, fair.Clubs), card(fair.Seven, fair.Spades),
	}))
	assert.False(t, IsBlackjack([]fair.Card{card(fair.Ten, fair.Hearts), card(fair.Nine, fair.Clubs)}))
	assert.False(t, IsBlackjack([]fair.Card{card(fair.Ace, fair.Hearts)}))
}

func TestIsBust(t *testing.T) {
	assert.True(t, IsBust([]fair.Card{
		card(fair.Ten, fair.Hearts), card(fair.Five, fair.Clubs), card(fair.Eight, fair.Spades),
	}))
	assert.False(t, IsBust([]fair.Card{
		card(fair.Ace, fair.Hearts), card(fair.Five, fair.Clubs), card(fair.Eight, fair.Spades),
	}))
}

func TestDealerShouldHit(t *testing.T) {
	// Hits everything under 17.
	assert.True(t, DealerShouldHit([]fair.Card{card(fair.Ten, fair.Hearts), card(fair.Six, fair.Clubs)}))
	assert.True(t, DealerShouldHit([]fair.Card{card(fair.Two, fair.Hearts), card(fair.Three, fair.Clubs)}))

	// Stands on hard 17, soft 17 and above.
	assert.False(t, DealerShouldHit([]fair.Card{card(fair.Ten, fair.Hearts), card(fair.Seven, fair.Clubs)}))
	assert.False(t, DealerShouldHit([]fair.Card{card(fair.Ace, fair.Hearts), card(fair.Six, fair.Clubs)}))
	assert.False(t, DealerShouldHit([]fair.Card{card(fair.Ten, fair.Hearts), card(fair.King, fair.Clubs)}))
}
