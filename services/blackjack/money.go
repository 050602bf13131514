package blackjack

import "github.com/shopspring/decimal"

// Money fields are carried at a fixed 8 fractional digits with one
// rounding mode, round half up, applied at every monetary boundary.
// Declared multipliers use 4 digits.
const (
	moneyPlaces      = 8
	multiplierPlaces = 4
)

var (
	two                 = decimal.NewFromInt(2)
	blackjackPayoutRate = decimal.RequireFromString("2.5")
)

// roundMoney applies the single global rounding rule to a monetary amount.
// decimal's Round is half away from zero, which is half up for the
// non-negative amounts the engine deals in.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

func roundMultiplier(d decimal.Decimal) decimal.Decimal {
	return d.Round(multiplierPlaces)
}
