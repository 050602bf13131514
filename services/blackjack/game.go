package blackjack

import (
	"github.com/shopspring/decimal"

	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

// HandStatus is the lifecycle state of one player hand.
type HandStatus string

const (
	HandActive    HandStatus = "ACTIVE"
	HandStand     HandStatus = "STAND"
	HandBust      HandStatus = "BUST"
	HandBlackjack HandStatus = "BLACKJACK"
	HandCompleted HandStatus = "COMPLETED"
)

// Terminal reports whether no further player action is possible on a hand
// in this status.
func (s HandStatus) Terminal() bool {
	return s == HandStand || s == HandBust || s == HandBlackjack || s == HandCompleted
}

// GameStatus is the lifecycle state of the whole round. DealerTurn is
// transient: it is entered and exited inside one stand/double resolution.
type GameStatus string

const (
	GameActive     GameStatus = "ACTIVE"
	GameDealerTurn GameStatus = "DEALER_TURN"
	GameCompleted  GameStatus = "COMPLETED"
)

// ActiveHand selects which hand the next action applies to.
type ActiveHand string

const (
	MainHand  ActiveHand = "main"
	SplitSeat ActiveHand = "split"
)

// Action is one player move.
type Action string

const (
	ActionHit         Action = "HIT"
	ActionStand       Action = "STAND"
	ActionDouble      Action = "DOUBLE"
	ActionInsurance   Action = "INSURANCE"
	ActionNoInsurance Action = "NO_INSURANCE"
	ActionSplit       Action = "SPLIT"
	ActionHitSplit    Action = "HIT_SPLIT"
	ActionStandSplit  Action = "STAND_SPLIT"
	ActionDoubleSplit Action = "DOUBLE_SPLIT"
)

/*
 * 'Hand' is an ordered sequence of cards belonging to one position (player
 * main, player split or dealer) together with its running totals.
 */
type Hand struct {
	Cards  []fair.Card `json:"cards"`
	Hard   int         `json:"hard"`
	Soft   int         `json:"soft"`
	Status HandStatus  `json:"status"`
}

// Rescore recomputes the hard and soft totals from the cards.
func (h *Hand) Rescore() error {
	hard, soft, err := Score(h.Cards)
	if err != nil {
		return err
	}
	h.Hard, h.Soft = hard, soft
	return nil
}

// Best returns the hand's best score.
func (h *Hand) Best() int {
	return BestScore(h.Hard, h.Soft)
}

/*
 * 'SplitRound' holds everything that only exists after a SPLIT. A nil
 * SplitRound on the Game means a single-hand round, which keeps the
 * split-only flags impossible to set without an actual split.
 */
type SplitRound struct {
	Hand       Hand            `json:"hand"`
	DoubleDown bool            `json:"double_down"`
	Aces       bool            `json:"aces"`
	WinAmount  decimal.Decimal `json:"win_amount"`
}

// InsuranceBet records a taken insurance wager. A nil pointer with
// InsuranceDeclined unset means the player has not decided yet.
type InsuranceBet struct {
	BetAmount decimal.Decimal `json:"bet_amount"`
	WinAmount decimal.Decimal `json:"win_amount"`
}

// SideBet records one side wager and its resolved tier.
type SideBet struct {
	BetAmount decimal.Decimal `json:"bet_amount"`
	WinAmount decimal.Decimal `json:"win_amount"`
	Result    string          `json:"result"`
}

/*
 * 'Game' is one blackjack round. It is exclusively owned by that round:
 * the cursor increases by exactly one per dealt card and is never reused,
 * all money fields carry 8 fractional digits, and the struct is only ever
 * mutated by the engine in response to one validated action at a time.
 * Once Status is COMPLETED the game is immutable.
 */
type Game struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Asset  string `json:"asset"`

	ServerSeed string `json:"server_seed"`
	ClientSeed string `json:"client_seed"`
	Nonce      uint64 `json:"nonce"`
	Cursor     int    `json:"cursor"`

	BetAmount      decimal.Decimal `json:"bet_amount"`
	TotalBetAmount decimal.Decimal `json:"total_bet_amount"`

	PlayerHand Hand `json:"player_hand"`
	DealerHand Hand `json:"dealer_hand"`

	Split      *SplitRound `json:"split,omitempty"`
	ActiveHand ActiveHand  `json:"active_hand"`
	Status     GameStatus  `json:"status"`

	DoubleDown        bool          `json:"double_down"`
	Insurance         *InsuranceBet `json:"insurance,omitempty"`
	InsuranceDeclined bool          `json:"insurance_declined"`

	PerfectPair        *SideBet `json:"perfect_pair,omitempty"`
	TwentyOnePlusThree *SideBet `json:"twenty_one_plus_three,omitempty"`

	WinAmount      decimal.Decimal `json:"win_amount"`
	TotalWinAmount decimal.Decimal `json:"total_win_amount"`
	Multiplier     decimal.Decimal `json:"multiplier"`
}

// IsSplit reports whether the round has been split.
func (g *Game) IsSplit() bool {
	return g.Split != nil
}

// Demo reports whether the round was started without a stake. Demo rounds
// never touch the ledger but still settle so they remain auditable.
func (g *Game) Demo() bool {
	return g.TotalBetAmount.IsZero()
}

// hand returns the player hand for the given seat.
func (g *Game) hand(seat ActiveHand) *Hand {
	if seat == SplitSeat && g.Split != nil {
		return &g.Split.Hand
	}
	return &g.PlayerHand
}

// doubled reports whether the given seat's hand was doubled down.
func (g *Game) doubled(seat ActiveHand) bool {
	if seat == SplitSeat {
		return g.Split != nil && g.Split.DoubleDown
	}
	return g.DoubleDown
}

// UpCard is the dealer's face-up card. The second dealer card stays hidden
// until the round resolves.
func (g *Game) UpCard() fair.Card {
	return g.DealerHand.Cards[0]
}

// dealNext derives the next card for this round and advances the cursor.
func (g *Game) dealNext() fair.Card {
	card := fair.DeriveCard(g.ServerSeed, g.ClientSeed, g.Nonce, g.Cursor)
	g.Cursor++
	return card
}

// ActionRequest is the engine input: one action, plus the optional
// insurance stake for INSURANCE.
type ActionRequest struct {
	Action       Action          `json:"action"`
	InsuranceBet decimal.Decimal `json:"insurance_bet,omitempty"`
}

// ActionResult is the engine output. Expected rule violations come back as
// Success=false with an ErrorKind; they are never returned as Go errors.
type ActionResult struct {
	Success       bool      `json:"success"`
	GameCompleted bool      `json:"game_completed"`
	SwitchedHand  bool      `json:"switched_hand,omitempty"`
	Error         string    `json:"error,omitempty"`
	ErrorKind     ErrorKind `json:"error_kind,omitempty"`
}
