package blackjack_constants

// Table limits, enforced at the API edge before the engine ever sees the
// wager. Amounts are decimal strings in the table asset.
const MaxBetAmount = "10000"

const DefaultAsset = "USD"

// Dealer stands on every total of 17 and above, soft 17 included.
const DealerStandScore = 17

// Side-bet payout rates ("to-one" profit multipliers)
const (
	PERFECT_PAIR_MULTIPLIER = 25
	COLORED_PAIR_MULTIPLIER = 12
	MIXED_PAIR_MULTIPLIER   = 6

	SUITED_TRIPS_MULTIPLIER    = 100
	STRAIGHT_FLUSH_MULTIPLIER  = 40
	THREE_OF_A_KIND_MULTIPLIER = 30
	STRAIGHT_MULTIPLIER        = 10
	FLUSH_MULTIPLIER           = 5
)
