package blackjack

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
	"github.com/lazymak3r/zetik-backend-sub007/services/ledger"
)

/*
 * 'Engine' is the blackjack action state machine. It owns every mutation
 * of a Game: it validates one action at a time, deals cards through the
 * derivation engine, charges wagers through the Ledger collaborator and
 * settles terminal hands through the payout rules.
 *
 * The engine is single-threaded per round; the caller serializes actions
 * against one Game (the game store holds a row lock for the duration of a
 * call). The only yield point is the Ledger call.
 */
type Engine struct {
	ledger ledger.Ledger
}

// NewEngine creates an engine charging wagers against the given ledger.
func NewEngine(l ledger.Ledger) *Engine {
	return &Engine{ledger: l}
}

// EngineError is a typed failure from round creation.
type EngineError struct {
	Kind ErrorKind
	Msg  string
}

func (e *EngineError) Error() string {
	return e.Msg
}

func engineErr(kind ErrorKind, format string, args ...any) *EngineError {
	return &EngineError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NewGameParams starts one round. A zero BetAmount is a demo round: it
// plays and settles identically but never touches the ledger.
type NewGameParams struct {
	GameID     string
	UserID     string
	Asset      string
	ServerSeed string
	ClientSeed string
	Nonce      uint64

	BetAmount             decimal.Decimal
	PerfectPairBet        decimal.Decimal
	TwentyOnePlusThreeBet decimal.Decimal
}

// NewGame charges the initial wagers, deals two cards to the player and
// two to the dealer (one face-down) and evaluates the side bets. The
// cursor is 4 after the deal. A player natural against a non-ace up-card
// resolves immediately; against an ace the insurance decision is pending.
func (e *Engine) NewGame(ctx context.Context, p NewGameParams) (*Game, error) {
	if p.BetAmount.IsNegative() {
		return nil, engineErr(ErrValidation, "bet amount cannot be negative")
	}
	if p.ServerSeed == "" || p.ClientSeed == "" {
		return nil, engineErr(ErrValidation, "missing fairness seeds")
	}
	if !p.PerfectPairBet.IsZero() {
		if err := ValidateSideBet(p.PerfectPairBet, p.BetAmount); err != nil {
			return nil, engineErr(ErrValidation, "perfect pairs: %v", err)
		}
	}
	if !p.TwentyOnePlusThreeBet.IsZero() {
		if err := ValidateSideBet(p.TwentyOnePlusThreeBet, p.BetAmount); err != nil {
			return nil, engineErr(ErrValidation, "21+3: %v", err)
		}
	}

	gameID := p.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}

	g := &Game{
		ID:         gameID,
		UserID:     p.UserID,
		Asset:      p.Asset,
		ServerSeed: p.ServerSeed,
		ClientSeed: p.ClientSeed,
		Nonce:      p.Nonce,
		Status:     GameActive,
		ActiveHand: MainHand,
		BetAmount:  roundMoney(p.BetAmount),
	}
	g.TotalBetAmount = g.BetAmount.
		Add(roundMoney(p.PerfectPairBet)).
		Add(roundMoney(p.TwentyOnePlusThreeBet))

	if !g.Demo() {
		res := e.charge(ctx, g, "bet:"+g.ID, g.TotalBetAmount, "Blackjack bet")
		if res != nil {
			return nil, engineErr(res.ErrorKind, "%s", res.Error)
		}
	}

	// Deal order: player, dealer, player, dealer; the second dealer card
	// is the hole card.
	g.PlayerHand.Cards = []fair.Card{g.dealNext()}
	g.DealerHand.Cards = []fair.Card{g.dealNext()}
	g.PlayerHand.Cards = append(g.PlayerHand.Cards, g.dealNext())
	g.DealerHand.Cards = append(g.DealerHand.Cards, g.dealNext())
	g.PlayerHand.Status = HandActive
	g.DealerHand.Status = HandActive
	if err := g.PlayerHand.Rescore(); err != nil {
		return nil, engineErr(ErrIntegrity, "scoring dealt hand: %v", err)
	}
	if err := g.DealerHand.Rescore(); err != nil {
		return nil, engineErr(ErrIntegrity, "scoring dealer hand: %v", err)
	}

	if !p.PerfectPairBet.IsZero() {
		result := EvaluatePerfectPairs(g.PlayerHand.Cards[0], g.PlayerHand.Cards[1])
		g.PerfectPair = &SideBet{
			BetAmount: roundMoney(p.PerfectPairBet),
			WinAmount: SideBetWinAmount(roundMoney(p.PerfectPairBet), result.Multiplier()),
			Result:    string(result),
		}
	}
	if !p.TwentyOnePlusThreeBet.IsZero() {
		result := EvaluateTwentyOnePlusThree(g.PlayerHand.Cards[0], g.PlayerHand.Cards[1], g.UpCard())
		g.TwentyOnePlusThree = &SideBet{
			BetAmount: roundMoney(p.TwentyOnePlusThreeBet),
			WinAmount: SideBetWinAmount(roundMoney(p.TwentyOnePlusThreeBet), result.Multiplier()),
			Result:    string(result),
		}
	}

	if IsBlackjack(g.PlayerHand.Cards) {
		g.PlayerHand.Status = HandBlackjack
		// With an ace up the insurance decision resolves the natural; any
		// other up-card resolves the round right here (a ten-value up-card
		// may still hide a dealer natural, which pushes).
		if g.UpCard().Rank != fair.Ace {
			if IsBlackjack(g.DealerHand.Cards) {
				e.resolveAgainstDealerHole(g)
			} else {
				g.WinAmount = settleHand(&g.PlayerHand, &g.DealerHand, g.BetAmount, false)
				e.finalize(g)
			}
		}
	}

	return g, nil
}

// Apply validates and applies one player action. Expected rule violations
// come back as a structured failure; an unexpected internal fault is
// recovered here and converted into the same shape, so a caller never
// sees a panic from the engine.
func (e *Engine) Apply(ctx context.Context, g *Game, req ActionRequest) (res ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[BLACKJACK-ERROR] recovered fault applying %s to game %s: %v", req.Action, g.ID, r)
			res = failure(ErrIntegrity, "internal engine error")
		}
	}()

	if g.Status != GameActive {
		return failure(ErrState, "game is not active")
	}

	switch req.Action {
	case ActionHit:
		return e.hit(ctx, g, MainHand)
	case ActionStand:
		return e.stand(ctx, g, MainHand)
	case ActionDouble:
		return e.double(ctx, g, MainHand)
	case ActionInsurance:
		return e.insurance(ctx, g, req.InsuranceBet)
	case ActionNoInsurance:
		return e.noInsurance(g)
	case ActionSplit:
		return e.split(ctx, g)
	case ActionHitSplit:
		return e.hit(ctx, g, SplitSeat)
	case ActionStandSplit:
		return e.stand(ctx, g, SplitSeat)
	case ActionDoubleSplit:
		return e.double(ctx, g, SplitSeat)
	default:
		return failure(ErrValidation, fmt.Sprintf("unknown action %q", req.Action))
	}
}

// checkSeat validates that the requested seat exists, is the active one
// and still accepts actions.
func (g *Game) checkSeat(seat ActiveHand) *ActionResult {
	if seat == SplitSeat && !g.IsSplit() {
		r := failure(ErrState, "game has not been split")
		return &r
	}
	if g.ActiveHand != seat {
		r := failure(ErrState, fmt.Sprintf("the %s hand is not active", seat))
		return &r
	}
	if g.hand(seat).Status != HandActive {
		r := failure(ErrState, fmt.Sprintf("the %s hand no longer accepts actions", seat))
		return &r
	}
	return nil
}

func (e *Engine) hit(ctx context.Context, g *Game, seat ActiveHand) ActionResult {
	if res := g.checkSeat(seat); res != nil {
		return *res
	}
	// Covers the round where insurance was declined but the hole card
	// completes a dealer natural: resolve without dealing.
	if IsBlackjack(g.DealerHand.Cards) {
		e.resolveAgainstDealerHole(g)
		return ActionResult{Success: true, GameCompleted: true}
	}

	hand := g.hand(seat)
	hand.Cards = append(hand.Cards, g.dealNext())
	if err := hand.Rescore(); err != nil {
		return failure(ErrIntegrity, err.Error())
	}

	if hand.Best() > 21 {
		hand.Status = HandBust
		return e.afterHandDone(g, seat)
	}
	if hand.Best() == 21 {
		// Hitting into 21 is never a natural; stand the hand for the
		// player and move the round along.
		hand.Status = HandStand
		return e.afterHandDone(g, seat)
	}
	return ActionResult{Success: true}
}

func (e *Engine) stand(ctx context.Context, g *Game, seat ActiveHand) ActionResult {
	if res := g.checkSeat(seat); res != nil {
		return *res
	}
	if IsBlackjack(g.DealerHand.Cards) {
		e.resolveAgainstDealerHole(g)
		return ActionResult{Success: true, GameCompleted: true}
	}
	g.hand(seat).Status = HandStand
	return e.afterHandDone(g, seat)
}

func (e *Engine) double(ctx context.Context, g *Game, seat ActiveHand) ActionResult {
	if res := g.checkSeat(seat); res != nil {
		return *res
	}
	// Dealer natural ends the round before the doubling stake is charged.
	if IsBlackjack(g.DealerHand.Cards) {
		e.resolveAgainstDealerHole(g)
		return ActionResult{Success: true, GameCompleted: true}
	}

	hand := g.hand(seat)
	if len(hand.Cards) != 2 {
		return failure(ErrState, "double is only allowed on the original two cards")
	}
	if g.doubled(seat) {
		return failure(ErrState, "hand has already been doubled")
	}

	// One idempotent charge per round+hand; the split hand doubles for the
	// same original per-hand stake.
	opID := "double:" + g.ID + ":" + string(seat)
	if res := e.charge(ctx, g, opID, g.BetAmount, "Blackjack double down"); res != nil {
		return *res
	}
	if seat == SplitSeat {
		g.Split.DoubleDown = true
	} else {
		g.DoubleDown = true
	}
	g.TotalBetAmount = roundMoney(g.TotalBetAmount.Add(g.BetAmount))

	hand.Cards = append(hand.Cards, g.dealNext())
	if err := hand.Rescore(); err != nil {
		return failure(ErrIntegrity, err.Error())
	}
	if hand.Best() > 21 {
		hand.Status = HandBust
	} else {
		hand.Status = HandStand
	}
	return e.afterHandDone(g, seat)
}

func (e *Engine) insurance(ctx context.Context, g *Game, requested decimal.Decimal) ActionResult {
	if res := g.insuranceAllowed(); res != nil {
		return *res
	}

	half := roundMoney(g.BetAmount.Div(two))
	amount := roundMoney(requested)
	if amount.LessThanOrEqual(decimal.Zero) {
		amount = half
	}
	if amount.GreaterThan(half) {
		return failure(ErrValidation, fmt.Sprintf("insurance bet %s exceeds the cap of %s", amount, half))
	}

	if res := e.charge(ctx, g, "insurance:"+g.ID, amount, "Blackjack insurance"); res != nil {
		return *res
	}
	g.Insurance = &InsuranceBet{BetAmount: amount}
	g.TotalBetAmount = roundMoney(g.TotalBetAmount.Add(amount))

	if IsBlackjack(g.DealerHand.Cards) {
		// Insurance pays 3x its own stake: the stake back plus 2x profit.
		g.Insurance.WinAmount = roundMoney(amount.Mul(decimal.NewFromInt(3)))
		e.resolveAgainstDealerHole(g)
		return ActionResult{Success: true, GameCompleted: true}
	}

	// No dealer natural: the insurance stake is forfeited.
	return e.afterInsuranceDecision(g)
}

func (e *Engine) noInsurance(g *Game) ActionResult {
	if res := g.insuranceAllowed(); res != nil {
		return *res
	}
	g.InsuranceDeclined = true

	if IsBlackjack(g.DealerHand.Cards) {
		e.resolveAgainstDealerHole(g)
		return ActionResult{Success: true, GameCompleted: true}
	}
	return e.afterInsuranceDecision(g)
}

func (g *Game) insuranceAllowed() *ActionResult {
	var r ActionResult
	switch {
	case g.IsSplit():
		r = failure(ErrState, "insurance is not available after a split")
	case len(g.PlayerHand.Cards) != 2:
		r = failure(ErrState, "insurance is only available on the original two cards")
	case g.UpCard().Rank != fair.Ace:
		r = failure(ErrState, "insurance requires the dealer to show an ace")
	case g.Insurance != nil:
		r = failure(ErrState, "insurance has already been taken")
	case g.InsuranceDeclined:
		r = failure(ErrState, "insurance has already been declined")
	default:
		return nil
	}
	return &r
}

// afterInsuranceDecision continues the round once insurance is settled
// and the dealer holds no natural. A player natural resolves right away
// at the 3:2 rate; anything else keeps playing.
func (e *Engine) afterInsuranceDecision(g *Game) ActionResult {
	if g.PlayerHand.Status == HandBlackjack {
		stake := effectiveStake(g.BetAmount, g.DoubleDown)
		g.WinAmount = settleHand(&g.PlayerHand, &g.DealerHand, stake, false)
		e.finalize(g)
		return ActionResult{Success: true, GameCompleted: true}
	}
	return ActionResult{Success: true}
}

func (e *Engine) split(ctx context.Context, g *Game) ActionResult {
	if g.IsSplit() {
		return failure(ErrState, "game has already been split")
	}
	if res := g.checkSeat(MainHand); res != nil {
		return *res
	}
	cards := g.PlayerHand.Cards
	if len(cards) != 2 {
		return failure(ErrState, "split requires exactly two cards")
	}
	if cards[0].Value != cards[1].Value {
		return failure(ErrState, "split requires two cards of equal value")
	}

	if res := e.charge(ctx, g, "split:"+g.ID, g.BetAmount, "Blackjack split"); res != nil {
		return *res
	}
	g.TotalBetAmount = roundMoney(g.TotalBetAmount.Add(g.BetAmount))

	aces := cards[0].Rank == fair.Ace
	g.PlayerHand.Cards = []fair.Card{cards[0], g.dealNext()}
	g.Split = &SplitRound{
		Hand: Hand{Cards: []fair.Card{cards[1], g.dealNext()}},
		Aces: aces,
	}
	if err := g.PlayerHand.Rescore(); err != nil {
		return failure(ErrIntegrity, err.Error())
	}
	if err := g.Split.Hand.Rescore(); err != nil {
		return failure(ErrIntegrity, err.Error())
	}

	if aces {
		// Split aces receive exactly one card each and are done. An
		// ace+ten hand is marked BLACKJACK for scoring but settles at
		// even money like every post-split hand.
		finishSplitAcesHand(&g.PlayerHand)
		finishSplitAcesHand(&g.Split.Hand)
		e.completeRound(g)
		return ActionResult{Success: true, GameCompleted: true}
	}

	markSplitNatural(&g.PlayerHand)
	markSplitNatural(&g.Split.Hand)

	switch {
	case g.PlayerHand.Status == HandActive:
		g.ActiveHand = MainHand
	case g.Split.Hand.Status == HandActive:
		g.ActiveHand = SplitSeat
		return ActionResult{Success: true, SwitchedHand: true}
	default:
		// Both hands dealt into naturals: nothing left to play.
		e.completeRound(g)
		return ActionResult{Success: true, GameCompleted: true}
	}
	return ActionResult{Success: true}
}

func finishSplitAcesHand(h *Hand) {
	if h.Best() == 21 {
		h.Status = HandBlackjack
		return
	}
	h.Status = HandCompleted
}

func markSplitNatural(h *Hand) {
	if IsBlackjack(h.Cards) {
		h.Status = HandBlackjack
		return
	}
	h.Status = HandActive
}

// afterHandDone routes the round once the given seat's hand reached a
// terminal status. In a split game the main hand always passes play to
// the split seat, even when the split hand is already resolved, so the
// outcome can be surfaced; the game completes only when both hands are
// terminal. A single busted hand loses immediately without dealer play.
func (e *Engine) afterHandDone(g *Game, seat ActiveHand) ActionResult {
	if g.IsSplit() {
		switched := false
		if seat == MainHand {
			g.ActiveHand = SplitSeat
			switched = true
		}
		if g.PlayerHand.Status.Terminal() && g.Split.Hand.Status.Terminal() {
			e.completeRound(g)
			return ActionResult{Success: true, GameCompleted: true, SwitchedHand: switched}
		}
		return ActionResult{Success: true, SwitchedHand: switched}
	}

	if g.PlayerHand.Status == HandBust {
		g.WinAmount = decimal.Zero
		e.finalize(g)
		return ActionResult{Success: true, GameCompleted: true}
	}
	e.completeRound(g)
	return ActionResult{Success: true, GameCompleted: true}
}

// playDealer runs the dealer out: reveal the hole card and draw while the
// best score is under 17 (stand on every 17, soft included).
func (g *Game) playDealer() {
	g.Status = GameDealerTurn
	for DealerShouldHit(g.DealerHand.Cards) {
		g.DealerHand.Cards = append(g.DealerHand.Cards, g.dealNext())
	}
	// Derived cards always rescore cleanly.
	_ = g.DealerHand.Rescore()
	if IsBlackjack(g.DealerHand.Cards) {
		g.DealerHand.Status = HandBlackjack
	} else if g.DealerHand.Best() > 21 {
		g.DealerHand.Status = HandBust
	} else {
		g.DealerHand.Status = HandStand
	}
}

// completeRound plays the dealer once (shared between both hands of a
// split) and settles every hand independently against that same dealer
// outcome with its own effective stake.
func (e *Engine) completeRound(g *Game) {
	needDealer := g.PlayerHand.Status != HandBust ||
		(g.IsSplit() && g.Split.Hand.Status != HandBust)
	if needDealer {
		g.playDealer()
	}

	stake := effectiveStake(g.BetAmount, g.DoubleDown)
	g.WinAmount = settleHand(&g.PlayerHand, &g.DealerHand, stake, g.IsSplit())
	if g.IsSplit() {
		splitStake := effectiveStake(g.BetAmount, g.Split.DoubleDown)
		g.Split.WinAmount = settleHand(&g.Split.Hand, &g.DealerHand, splitStake, true)
	}
	e.finalize(g)
}

// resolveAgainstDealerHole ends the round on a dealer natural: push when
// the player also holds a natural, otherwise the main stake is lost. No
// further cards are dealt to the player.
func (e *Engine) resolveAgainstDealerHole(g *Game) {
	g.DealerHand.Status = HandBlackjack
	_ = g.DealerHand.Rescore()
	stake := effectiveStake(g.BetAmount, g.DoubleDown)
	if g.PlayerHand.Status == HandActive {
		g.PlayerHand.Status = HandStand
	}
	g.WinAmount = settleHand(&g.PlayerHand, &g.DealerHand, stake, g.IsSplit())
	if g.IsSplit() {
		splitStake := effectiveStake(g.BetAmount, g.Split.DoubleDown)
		if g.Split.Hand.Status == HandActive {
			g.Split.Hand.Status = HandStand
		}
		g.Split.WinAmount = settleHand(&g.Split.Hand, &g.DealerHand, splitStake, true)
	}
	e.finalize(g)
}

// finalize merges the per-hand, side-bet and insurance amounts into the
// round totals, computes the declared multiplier and freezes the game.
func (e *Engine) finalize(g *Game) {
	total := g.WinAmount
	if g.IsSplit() {
		total = total.Add(g.Split.WinAmount)
	}
	if g.Insurance != nil {
		total = total.Add(g.Insurance.WinAmount)
	}
	if g.PerfectPair != nil {
		total = total.Add(g.PerfectPair.WinAmount)
	}
	if g.TwentyOnePlusThree != nil {
		total = total.Add(g.TwentyOnePlusThree.WinAmount)
	}
	g.TotalWinAmount = roundMoney(total)
	g.Status = GameCompleted
	g.Multiplier = g.declaredMultiplier()
}

// charge debits one wager through the ledger. Demo rounds skip the call.
// On failure the game's cursor, cards and status are untouched and a
// funds failure is returned; idempotency on the operation id makes a
// caller-level retry safe.
func (e *Engine) charge(ctx context.Context, g *Game, opID string, amount decimal.Decimal, desc string) *ActionResult {
	if g.Demo() || amount.IsZero() {
		return nil
	}
	res, err := e.ledger.AdjustStake(ctx, ledger.AdjustRequest{
		Operation:   ledger.OpBet,
		OperationID: opID,
		UserID:      g.UserID,
		Amount:      amount,
		Asset:       g.Asset,
		Description: desc,
		Metadata:    map[string]any{"game": "blackjack", "game_id": g.ID},
	})
	if err != nil {
		log.Printf("[LEDGER-ERROR] %s failed for game %s: %v", opID, g.ID, err)
		r := failure(ErrFunds, "balance service unavailable")
		return &r
	}
	if !res.Success {
		msg := res.Err
		if msg == "" {
			msg = "insufficient balance"
		}
		r := failure(ErrFunds, msg)
		return &r
	}
	return nil
}
