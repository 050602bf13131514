package blackjack

import (
	"fmt"

	blackjack_constants "github.com/lazymak3r/zetik-backend-sub007/constants/blackjack"
	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

// Score computes the hard and soft totals of a card sequence. Non-ace
// cards add their value to both totals; each ace adds 1 to the hard total
// and 11 to the soft total, then aces are reduced from 11 to 1 one at a
// time while the soft total is over 21.
//
// An empty sequence scores (0, 0): "no cards yet" is not an error. A
// malformed card is.
func Score(cards []fair.Card) (hard, soft int, err error) {
	aces := 0
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			return 0, 0, fmt.Errorf("card %d: %w", i, err)
		}
		if c.Rank == fair.Ace {
			hard++
			soft += 11
			aces++
			continue
		}
		hard += c.Value
		soft += c.Value
	}
	for soft > 21 && aces > 0 {
		soft -= 10
		aces--
	}
	return hard, soft, nil
}

// BestScore is the soft total when it fits under 21, otherwise the hard
// total.
func BestScore(hard, soft int) int {
	if soft <= 21 {
		return soft
	}
	return hard
}

// IsBlackjack reports a natural: exactly two cards totaling 21.
func IsBlackjack(cards []fair.Card) bool {
	if len(cards) != 2 {
		return false
	}
	hard, soft, err := Score(cards)
	if err != nil {
		return false
	}
	return BestScore(hard, soft) == 21
}

// IsBust reports whether the best score exceeds 21.
func IsBust(cards []fair.Card) bool {
	hard, soft, err := Score(cards)
	if err != nil {
		return false
	}
	return BestScore(hard, soft) > 21
}

// DealerShouldHit reports whether the dealer draws another card. The
// dealer stands on 17 and above, soft 17 included.
func DealerShouldHit(cards []fair.Card) bool {
	hard, soft, err := Score(cards)
	if err != nil {
		return false
	}
	return BestScore(hard, soft) < blackjack_constants.DealerStandScore
}
