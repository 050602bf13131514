package blackjack

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

func handOf(status HandStatus, cards ...fair.Card) Hand {
	h := Hand{Cards: cards, Status: status}
	if err := h.Rescore(); err != nil {
		panic(err)
	}
	return h
}

func TestEffectiveStake(t *testing.T) {
	bet := money("100")
	assert.True(t, effectiveStake(bet, false).Equal(money("100")))
	assert.True(t, effectiveStake(bet, true).Equal(money("200")))
}

func TestSettleHand(t *testing.T) {
	dealer18 := handOf(HandStand, card(fair.Ten, fair.Diamonds), card(fair.Eight, fair.Spades))
	dealerBust := handOf(HandBust, card(fair.Ten, fair.Diamonds), card(fair.Six, fair.Spades), card(fair.King, fair.Hearts))
	dealerNatural := handOf(HandBlackjack, card(fair.Ace, fair.Diamonds), card(fair.King, fair.Spades))

	tests := []struct {
		name      string
		hand      Hand
		dealer    Hand
		postSplit bool
		want      string
	}{
		{
			"bust loses regardless of dealer",
			handOf(HandBust, card(fair.Ten, fair.Hearts), card(fair.Six, fair.Clubs), card(fair.King, fair.Clubs)),
			dealerBust, false, "0",
		},
		{
			"natural pays three to two",
			handOf(HandBlackjack, card(fair.Ace, fair.Hearts), card(fair.King, fair.Clubs)),
			dealer18, false, "250",
		},
		{
			"natural pushes a dealer natural",
			handOf(HandBlackjack, card(fair.Ace, fair.Hearts), card(fair.King, fair.Clubs)),
			dealerNatural, false, "100",
		},
		{
			"post-split twenty-one pays even money",
			handOf(HandBlackjack, card(fair.Ace, fair.Hearts), card(fair.King, fair.Clubs)),
			dealer18, true, "200",
		},
		{
			"higher score wins even money",
			handOf(HandStand, card(fair.Ten, fair.Hearts), card(fair.Nine, fair.Clubs)),
			dealer18, false, "200",
		},
		{
			"dealer bust wins even money",
			handOf(HandStand, card(fair.Ten, fair.Hearts), card(fair.Two, fair.Clubs)),
			dealerBust, false, "200",
		},
		{
			"equal scores push",
			handOf(HandStand, card(fair.Ten, fair.Hearts), card(fair.Eight, fair.Clubs)),
			dealer18, false, "100",
		},
		{
			"lower score loses",
			handOf(HandStand, card(fair.Ten, fair.Hearts), card(fair.Seven, fair.Clubs)),
			dealer18, false, "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := settleHand(&tt.hand, &tt.dealer, money("100"), tt.postSplit)
			assert.True(t, got.Equal(money(tt.want)), "want %s, got %s", tt.want, got)
		})
	}
}

func TestTheoreticalMultiplier(t *testing.T) {
	dealer18 := handOf(HandStand, card(fair.Ten, fair.Diamonds), card(fair.Eight, fair.Spades))

	// Demo round, doubled winning hand: 2 units staked, 4 returned.
	doubled := &Game{
		PlayerHand: handOf(HandStand, card(fair.Ten, fair.Hearts), card(fair.Nine, fair.Clubs)),
		DealerHand: dealer18,
		DoubleDown: true,
	}
	assert.True(t, doubled.theoreticalMultiplier().Equal(money("2")))

	// Split round, one winning and one losing hand: 2 units staked, 2
	// returned.
	split := &Game{
		PlayerHand: handOf(HandStand, card(fair.Ten, fair.Hearts), card(fair.Nine, fair.Clubs)),
		DealerHand: dealer18,
		Split: &SplitRound{
			Hand: handOf(HandStand, card(fair.Ten, fair.Spades), card(fair.Seven, fair.Clubs)),
		},
	}
	assert.True(t, split.theoreticalMultiplier().Equal(money("1")))
}

func TestDeclaredMultiplierRounding(t *testing.T) {
	g := &Game{
		TotalBetAmount: money("150"),
		TotalWinAmount: money("200"),
	}
	assert.Equal(t, "1.3333", g.declaredMultiplier().StringFixed(4))

	push := &Game{
		TotalBetAmount: decimal.RequireFromString("100"),
		TotalWinAmount: decimal.RequireFromString("100"),
	}
	assert.True(t, push.declaredMultiplier().Equal(money("1")))
}
