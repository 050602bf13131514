package blackjack

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

// AvailableActions re-derives the action set from the game state. It is
// computed fresh before every action and must never be cached: the balance
// check below is part of the computation and balances move between calls.
//
// A hand sitting on exactly 21 is auto-transitioned to STAND here; no
// manual action is ever offered for it. That covers both a natural soft-21
// accumulation and hitting into 21.
func (e *Engine) AvailableActions(ctx context.Context, g *Game) []Action {
	if g.Status != GameActive {
		return nil
	}

	// The insurance decision comes first: dealer shows an ace, the player
	// hand is still its original two cards and insurance is undecided.
	// This is offered even on a player 21, since INSURANCE/NO_INSURANCE is
	// what resolves a natural against a possible dealer natural.
	if !g.IsSplit() && len(g.PlayerHand.Cards) == 2 &&
		g.UpCard().Rank == fair.Ace &&
		g.Insurance == nil && !g.InsuranceDeclined {
		half := roundMoney(g.BetAmount.Div(two))
		if e.balanceCovers(ctx, g, half) {
			return []Action{ActionInsurance, ActionNoInsurance}
		}
	}

	seat := g.ActiveHand
	hand := g.hand(seat)
	if hand.Status != HandActive {
		return nil
	}
	if hand.Best() == 21 {
		hand.Status = HandStand
		return nil
	}

	var actions []Action
	if seat == SplitSeat {
		actions = append(actions, ActionHitSplit, ActionStandSplit)
	} else {
		actions = append(actions, ActionHit, ActionStand)
	}

	canAfford := e.balanceCovers(ctx, g, g.BetAmount)

	// Doubling needs the original two cards, an un-doubled hand and a
	// balance that covers the doubling stake.
	if len(hand.Cards) == 2 && !g.doubled(seat) && canAfford {
		if seat == SplitSeat {
			actions = append(actions, ActionDoubleSplit)
		} else {
			actions = append(actions, ActionDouble)
		}
	}

	if !g.IsSplit() && len(g.PlayerHand.Cards) == 2 &&
		g.PlayerHand.Cards[0].Value == g.PlayerHand.Cards[1].Value && canAfford {
		actions = append(actions, ActionSplit)
	}

	return actions
}

// balanceCovers checks the user's balance against a stake. An unknown
// balance or a balance-service failure is treated optimistically: play is
// never blocked on an infra fault, the ledger charge is the real gate.
func (e *Engine) balanceCovers(ctx context.Context, g *Game, stake decimal.Decimal) bool {
	if g.Demo() || stake.IsZero() {
		return true
	}
	balance, err := e.ledger.Balance(ctx, g.UserID, g.Asset)
	if err != nil {
		log.Printf("[BLACKJACK-WARN] balance check failed for user %s: %v", g.UserID, err)
		return true
	}
	return balance.GreaterThanOrEqual(stake)
}
