package blackjack

import (
	"fmt"

	"github.com/shopspring/decimal"

	blackjack_constants "github.com/lazymak3r/zetik-backend-sub007/constants/blackjack"
	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

// Perfect Pairs tiers, evaluated on the player's first two cards only.
type PerfectPairResult string

const (
	PerfectPairNone PerfectPairResult = "NONE"
	MixedPair       PerfectPairResult = "MIXED_PAIR"
	ColoredPair     PerfectPairResult = "COLORED_PAIR"
	PerfectPair     PerfectPairResult = "PERFECT_PAIR"
)

// Multiplier is the to-one profit multiplier of the tier; the total return
// on a win is stake * (multiplier + 1).
func (r PerfectPairResult) Multiplier() int64 {
	switch r {
	case PerfectPair:
		return blackjack_constants.PERFECT_PAIR_MULTIPLIER
	case ColoredPair:
		return blackjack_constants.COLORED_PAIR_MULTIPLIER
	case MixedPair:
		return blackjack_constants.MIXED_PAIR_MULTIPLIER
	default:
		return 0
	}
}

// 21+3 tiers, evaluated on the player's first two cards plus the dealer's
// up-card. Exactly one tier applies; higher payouts win ties.
type TwentyOnePlusThreeResult string

const (
	TwentyOnePlusThreeNone TwentyOnePlusThreeResult = "NONE"
	Flush                  TwentyOnePlusThreeResult = "FLUSH"
	Straight               TwentyOnePlusThreeResult = "STRAIGHT"
	ThreeOfAKind           TwentyOnePlusThreeResult = "THREE_OF_A_KIND"
	StraightFlush          TwentyOnePlusThreeResult = "STRAIGHT_FLUSH"
	SuitedTrips            TwentyOnePlusThreeResult = "SUITED_TRIPS"
)

func (r TwentyOnePlusThreeResult) Multiplier() int64 {
	switch r {
	case SuitedTrips:
		return blackjack_constants.SUITED_TRIPS_MULTIPLIER
	case StraightFlush:
		return blackjack_constants.STRAIGHT_FLUSH_MULTIPLIER
	case ThreeOfAKind:
		return blackjack_constants.THREE_OF_A_KIND_MULTIPLIER
	case Straight:
		return blackjack_constants.STRAIGHT_MULTIPLIER
	case Flush:
		return blackjack_constants.FLUSH_MULTIPLIER
	default:
		return 0
	}
}

// EvaluatePerfectPairs classifies the first two player cards.
func EvaluatePerfectPairs(first, second fair.Card) PerfectPairResult {
	if first.Rank != second.Rank {
		return PerfectPairNone
	}
	if first.Suit == second.Suit {
		return PerfectPair
	}
	if first.IsRed() == second.IsRed() {
		return ColoredPair
	}
	return MixedPair
}

// EvaluateTwentyOnePlusThree classifies the player's first two cards plus
// the dealer's up-card, highest payout first.
func EvaluateTwentyOnePlusThree(first, second, upCard fair.Card) TwentyOnePlusThreeResult {
	cards := [3]fair.Card{first, second, upCard}

	sameSuit := cards[0].Suit == cards[1].Suit && cards[1].Suit == cards[2].Suit
	sameRank := cards[0].Rank == cards[1].Rank && cards[1].Rank == cards[2].Rank
	straight := isThreeCardStraight(cards)

	switch {
	case sameRank && sameSuit:
		return SuitedTrips
	case straight && sameSuit:
		return StraightFlush
	case sameRank:
		return ThreeOfAKind
	case straight:
		return Straight
	case sameSuit:
		return Flush
	default:
		return TwentyOnePlusThreeNone
	}
}

// isThreeCardStraight checks for three sequential ranks. The ace counts
// both low (A-2-3) and high (Q-K-A); there is no wraparound, so K-A-2 is
// not a straight.
func isThreeCardStraight(cards [3]fair.Card) bool {
	var orders [3]int
	hasAce := false
	for i, c := range cards {
		orders[i] = fair.RankOrder(c.Rank)
		if c.Rank == fair.Ace {
			hasAce = true
		}
	}
	if consecutive(orders) {
		return true
	}
	if !hasAce {
		return false
	}
	// Retry with the ace high (A=14 instead of 1).
	for i := range orders {
		if orders[i] == 1 {
			orders[i] = 14
		}
	}
	return consecutive(orders)
}

func consecutive(orders [3]int) bool {
	sortThree(&orders)
	return orders[1] == orders[0]+1 && orders[2] == orders[1]+1
}

func sortThree(v *[3]int) {
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1] > v[2] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
}

// SideBetWinAmount is the total return of a winning side bet:
// round_half_up(stake * (multiplier + 1), 8). A zero multiplier returns
// zero, the stake is simply lost.
func SideBetWinAmount(stake decimal.Decimal, multiplier int64) decimal.Decimal {
	if multiplier == 0 {
		return decimal.Zero
	}
	return roundMoney(stake.Mul(decimal.NewFromInt(multiplier + 1)))
}

// ValidateSideBet checks a side-bet stake against the hand's primary
// stake: it must be positive and must not exceed the main bet.
func ValidateSideBet(stake, mainBet decimal.Decimal) error {
	if !stake.IsPositive() {
		return fmt.Errorf("side bet must be positive, got %s", stake)
	}
	if stake.GreaterThan(mainBet) {
		return fmt.Errorf("side bet %s exceeds main bet %s", stake, mainBet)
	}
	return nil
}
