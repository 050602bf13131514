package blackjack

import "github.com/shopspring/decimal"

// Canonical payout rates for a settled hand:
//
//	loss                         0
//	push                         stake (returned, not won)
//	even-money win               stake * 2
//	natural blackjack            stake * 2.5 (only possible pre-split)
//
// The stake here is always the hand's own effective stake: the original
// bet, doubled when the hand was doubled down. Side-bet and insurance
// amounts are never part of it; they are summed separately into the
// game's total win amount. That separation is deliberate and tested: a
// doubled main-hand settlement must not absorb side-bet stakes.

// effectiveStake is the bet the hand is settled against.
func effectiveStake(bet decimal.Decimal, doubled bool) decimal.Decimal {
	if doubled {
		return roundMoney(bet.Mul(two))
	}
	return bet
}

// settleHand returns the win amount of one terminal player hand against
// the dealer's final cards. postSplit caps a BLACKJACK-status hand at
// even money: hands derived from a split never earn the 3:2 natural rate.
func settleHand(hand *Hand, dealer *Hand, stake decimal.Decimal, postSplit bool) decimal.Decimal {
	switch hand.Status {
	case HandBust:
		return decimal.Zero
	case HandBlackjack:
		if IsBlackjack(dealer.Cards) {
			return stake // push
		}
		if postSplit {
			return roundMoney(stake.Mul(two))
		}
		return roundMoney(stake.Mul(blackjackPayoutRate))
	}

	playerBest := hand.Best()
	dealerBest := dealer.Best()
	switch {
	case dealerBest > 21 || playerBest > dealerBest:
		return roundMoney(stake.Mul(two))
	case playerBest == dealerBest:
		return stake // push
	default:
		return decimal.Zero
	}
}

// settlementRate is settleHand expressed as a multiple of the unit stake.
// Demo rounds have no money on the table, but the declared multiplier is
// still computed from these rates so the round stays auditable.
func settlementRate(hand *Hand, dealer *Hand, postSplit bool) decimal.Decimal {
	unit := decimal.NewFromInt(1)
	return settleHand(hand, dealer, unit, postSplit)
}

// declaredMultiplier is total payout over total staked, reported at 4
// decimal places. For zero-stake rounds it falls back to the theoretical
// multiplier over the wagers that would have been placed.
func (g *Game) declaredMultiplier() decimal.Decimal {
	if !g.TotalBetAmount.IsZero() {
		return roundMultiplier(g.TotalWinAmount.Div(g.TotalBetAmount))
	}
	return g.theoreticalMultiplier()
}

// theoreticalMultiplier replays the settlement with unit stakes: each
// hand contributes its rate weighted by its staked units (2 when
// doubled), divided by the total units wagered.
func (g *Game) theoreticalMultiplier() decimal.Decimal {
	units := decimal.NewFromInt(1)
	payout := settlementRate(&g.PlayerHand, &g.DealerHand, g.IsSplit())
	if g.DoubleDown {
		units = units.Add(decimal.NewFromInt(1))
		payout = payout.Mul(two)
	}
	if g.Split != nil {
		splitUnits := decimal.NewFromInt(1)
		splitPayout := settlementRate(&g.Split.Hand, &g.DealerHand, true)
		if g.Split.DoubleDown {
			splitUnits = splitUnits.Add(decimal.NewFromInt(1))
			splitPayout = splitPayout.Mul(two)
		}
		units = units.Add(splitUnits)
		payout = payout.Add(splitPayout)
	}
	if units.IsZero() {
		return decimal.Zero
	}
	return roundMultiplier(payout.Div(units))
}
