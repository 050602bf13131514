package blackjack

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

func TestAvailableActionsInsuranceDecisionFirst(t *testing.T) {
	e := NewEngine(newFakeLedger("1000"))
	g := testGame("100",
		[]fair.Card{card(fair.Ten, fair.Diamonds), card(fair.Nine, fair.Clubs)},
		[]fair.Card{card(fair.Ace, fair.Hearts), card(fair.King, fair.Clubs)},
	)

	actions := e.AvailableActions(context.Background(), g)
	assert.Equal(t, []Action{ActionInsurance, ActionNoInsurance}, actions)
}

func TestAvailableActionsAfterInsuranceDeclined(t *testing.T) {
	e := NewEngine(newFakeLedger("1000"))
	g := testGame("100",
		[]fair.Card{card(fair.Ten, fair.Diamonds), card(fair.Nine, fair.Clubs)},
		[]fair.Card{card(fair.Ace, fair.Hearts), card(fair.Six, fair.Clubs)},
	)
	g.InsuranceDeclined = true

	actions := e.AvailableActions(context.Background(), g)
	assert.Equal(t, []Action{ActionHit, ActionStand, ActionDouble}, actions)
}

func TestAvailableActionsOffersSplitOnEqualValues(t *testing.T) {
	e := NewEngine(newFakeLedger("1000"))

	pair := testGame("100",
		[]fair.Card{card(fair.Eight, fair.Hearts), card(fair.Eight, fair.Spades)},
		[]fair.Card{card(fair.Ten, fair.Diamonds), card(fair.Seven, fair.Clubs)},
	)
	assert.Equal(t,
		[]Action{ActionHit, ActionStand, ActionDouble, ActionSplit},
		e.AvailableActions(context.Background(), pair))

	// Equal value, not equal rank, still splits.
	tenKing := testGame("100",
		[]fair.Card{card(fair.Ten, fair.Hearts), card(fair.King, fair.Spades)},
		[]fair.Card{card(fair.Nine, fair.Diamonds), card(fair.Seven, fair.Clubs)},
	)
	assert.Contains(t, e.AvailableActions(context.Background(), tenKing), ActionSplit)
}

func TestAvailableActionsBalanceGatesDoubleAndSplit(t *testing.T) {
	// 50 on balance cannot cover another 100 stake.
	e := NewEngine(newFakeLedger("50"))
	g := testGame("100",
		[]fair.Card{card(fair.Eight, fair.Hearts), card(fair.Eight, fair.Spades)},
		[]fair.Card{card(fair.Ten, fair.Diamonds), card(fair.Seven, fair.Clubs)},
	)

	actions := e.AvailableActions(context.Background(), g)
	assert.Equal(t, []Action{ActionHit, ActionStand}, actions)
}

func TestAvailableActionsOptimisticOnBalanceFailure(t *testing.T) {
	lgr := newFakeLedger("0")
	lgr.balanceErr = errors.New("connection refused")
	e := NewEngine(lgr)
	g := testGame("100",
		[]fair.Card{card(fair.Five, fair.Hearts), card(fair.Six, fair.Spades)},
		[]fair.Card{card(fair.Ten, fair.Diamonds), card(fair.Seven, fair.Clubs)},
	)

	// An unreachable balance service never blocks play; the charge itself
	// is the gate.
	actions := e.AvailableActions(context.Background(), g)
	assert.Equal(t, []Action{ActionHit, ActionStand, ActionDouble}, actions)
}

func TestAvailableActionsAutoStandsTwentyOne(t *testing.T) {
	e := NewEngine(newFakeLedger("1000"))
	g := testGame("100",
		[]fair.Card{card(fair.Seven, fair.Hearts), card(fair.Seven, fair.Clubs), card(fair.Seven, fair.Spades)},
		[]fair.Card{card(fair.Ten, fair.Diamonds), card(fair.Eight, fair.Spades)},
	)

	actions := e.AvailableActions(context.Background(), g)
	assert.Nil(t, actions)
	assert.Equal(t, HandStand, g.PlayerHand.Status)
}

func TestAvailableActionsSplitSeat(t *testing.T) {
	e := NewEngine(newFakeLedger("1000"))
	g := testGame("100",
		[]fair.Card{card(fair.Eight, fair.Hearts), card(fair.Five, fair.Clubs)},
		[]fair.Card{card(fair.Ten, fair.Diamonds), card(fair.Seven, fair.Clubs)},
	)
	g.PlayerHand.Status = HandStand
	g.Split = &SplitRound{
		Hand: handOf(HandActive, card(fair.Eight, fair.Spades), card(fair.Four, fair.Clubs)),
	}
	g.ActiveHand = SplitSeat

	actions := e.AvailableActions(context.Background(), g)
	assert.Equal(t, []Action{ActionHitSplit, ActionStandSplit, ActionDoubleSplit}, actions)
}

func TestAvailableActionsInactiveGame(t *testing.T) {
	e := NewEngine(newFakeLedger("1000"))
	g := testGame("100",
		[]fair.Card{card(fair.Ten, fair.Hearts), card(fair.Nine, fair.Clubs)},
		[]fair.Card{card(fair.Ten, fair.Diamonds), card(fair.Eight, fair.Spades)},
	)
	g.Status = GameCompleted

	assert.Nil(t, e.AvailableActions(context.Background(), g))
}
