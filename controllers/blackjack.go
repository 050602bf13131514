package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	blackjack_constants "github.com/lazymak3r/zetik-backend-sub007/constants/blackjack"
	"github.com/lazymak3r/zetik-backend-sub007/services/blackjack"
	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
	"github.com/lazymak3r/zetik-backend-sub007/services/ledger"
	"github.com/lazymak3r/zetik-backend-sub007/services/redis"
	"github.com/lazymak3r/zetik-backend-sub007/services/store"
)

type BlackjackController struct {
	DB          *gorm.DB
	RedisClient *redis.RedisClient
	Store       *store.GameStore
	Engine      *blackjack.Engine
	Ledger      ledger.Ledger
}

type placeBetRequest struct {
	Amount                string `json:"amount" binding:"required"`
	Asset                 string `json:"asset"`
	ClientSeed            string `json:"client_seed"`
	PerfectPairBet        string `json:"perfect_pair_bet"`
	TwentyOnePlusThreeBet string `json:"twenty_one_plus_three_bet"`
}

type actionRequest struct {
	Action       string `json:"action" binding:"required"`
	InsuranceBet string `json:"insurance_bet"`
}

// PlaceBet starts a blackjack round for the authenticated user
// @Summary Start a blackjack round
// @Tags blackjack
// @Param request body placeBetRequest true "bet"
// @Success 201 {object} map[string]interface{}
// @Router /auth/blackjack/bet [post]
func (bc *BlackjackController) PlaceBet(c *gin.Context) {
	username := sessions.Default(c).Get(SessionUserKey).(string)

	var req placeBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bet amount"})
		return
	}
	if amount.GreaterThan(decimal.RequireFromString(blackjack_constants.MaxBetAmount)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bet exceeds the table maximum of " + blackjack_constants.MaxBetAmount})
		return
	}
	perfectPair, err := optionalAmount(req.PerfectPairBet)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid perfect pairs bet"})
		return
	}
	twentyOnePlusThree, err := optionalAmount(req.TwentyOnePlusThreeBet)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 21+3 bet"})
		return
	}
	asset := req.Asset
	if asset == "" {
		asset = blackjack_constants.DefaultAsset
	}

	// One unfinished round per user at a time.
	if _, err := bc.RedisClient.GetActiveGameID(username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an active blackjack game"})
		return
	}

	pair, err := bc.seedPair(username, req.ClientSeed)
	if err != nil {
		log.Printf("[BLACKJACK-ERROR] seed pair for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error preparing fairness seeds"})
		return
	}

	game, err := bc.Engine.NewGame(c.Request.Context(), blackjack.NewGameParams{
		UserID:                username,
		Asset:                 asset,
		ServerSeed:            pair.ServerSeed,
		ClientSeed:            pair.ClientSeed,
		Nonce:                 pair.Nonce,
		BetAmount:             amount,
		PerfectPairBet:        perfectPair,
		TwentyOnePlusThreeBet: twentyOnePlusThree,
	})
	if err != nil {
		var engineErr *blackjack.EngineError
		if errors.As(err, &engineErr) {
			c.JSON(statusForKind(engineErr.Kind), gin.H{"error": engineErr.Msg})
			return
		}
		log.Printf("[BLACKJACK-ERROR] creating game for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating game"})
		return
	}

	// The nonce is spent whether or not the round resolved instantly.
	pair.Nonce++
	if err := bc.RedisClient.SaveSeedPair(username, pair); err != nil {
		log.Printf("[BLACKJACK-ERROR] saving seed pair for %s: %v", username, err)
	}

	err = bc.Store.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		return bc.Store.Save(tx, game)
	})
	if err != nil {
		log.Printf("[BLACKJACK-ERROR] persisting game %s: %v", game.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error persisting game"})
		return
	}

	if game.Status == blackjack.GameCompleted {
		bc.creditWin(c.Request.Context(), game)
	} else if err := bc.RedisClient.SetActiveGameID(username, game.ID); err != nil {
		log.Printf("[BLACKJACK-ERROR] tracking active game %s: %v", game.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"game":              bc.gameView(game),
		"available_actions": bc.Engine.AvailableActions(c.Request.Context(), game),
	})
}

// PlayAction applies one action to the user's active round
// @Summary Play one blackjack action
// @Tags blackjack
// @Param request body actionRequest true "action"
// @Success 200 {object} map[string]interface{}
// @Router /auth/blackjack/action [post]
func (bc *BlackjackController) PlayAction(c *gin.Context) {
	username := sessions.Default(c).Get(SessionUserKey).(string)

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	insuranceBet, err := optionalAmount(req.InsuranceBet)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid insurance bet"})
		return
	}

	gameID, err := bc.RedisClient.GetActiveGameID(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active blackjack game"})
		return
	}

	var game *blackjack.Game
	var result blackjack.ActionResult
	err = bc.Store.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		game, err = bc.Store.LoadForUpdate(tx, gameID)
		if err != nil {
			return err
		}
		if game.UserID != username {
			return store.ErrGameNotFound
		}
		result = bc.Engine.Apply(c.Request.Context(), game, blackjack.ActionRequest{
			Action:       blackjack.Action(req.Action),
			InsuranceBet: insuranceBet,
		})
		return bc.Store.Save(tx, game)
	})
	if err != nil {
		if errors.Is(err, store.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active blackjack game"})
			return
		}
		log.Printf("[BLACKJACK-ERROR] applying %s to game %s: %v", req.Action, gameID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error applying action"})
		return
	}

	if !result.Success {
		c.JSON(statusForKind(result.ErrorKind), gin.H{
			"success": false,
			"error":   result.Error,
		})
		return
	}

	if result.GameCompleted {
		bc.creditWin(c.Request.Context(), game)
		if err := bc.RedisClient.ClearActiveGameID(username); err != nil {
			log.Printf("[BLACKJACK-ERROR] clearing active game for %s: %v", username, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"game_completed":    result.GameCompleted,
		"switched_hand":     result.SwitchedHand,
		"game":              bc.gameView(game),
		"available_actions": bc.Engine.AvailableActions(c.Request.Context(), game),
	})
}

// ActiveGame returns the user's unfinished round
// @Summary Get the active blackjack round
// @Tags blackjack
// @Success 200 {object} map[string]interface{}
// @Router /auth/blackjack/active [get]
func (bc *BlackjackController) ActiveGame(c *gin.Context) {
	username := sessions.Default(c).Get(SessionUserKey).(string)

	gameID, err := bc.RedisClient.GetActiveGameID(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active blackjack game"})
		return
	}
	game, err := bc.Store.Load(c.Request.Context(), gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active blackjack game"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"game":              bc.gameView(game),
		"available_actions": bc.Engine.AvailableActions(c.Request.Context(), game),
	})
}

// Fairness publishes the provably-fair disclosure for a completed round.
// The server seed only appears once the seed pair it belongs to has been
// rotated; until then the commitment hash stands in for it.
// @Summary Fairness disclosure for a round
// @Tags blackjack
// @Param id path string true "game id"
// @Success 200 {object} map[string]interface{}
// @Router /blackjack/{id}/fairness [get]
func (bc *BlackjackController) Fairness(c *gin.Context) {
	game, err := bc.Store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if game.Status != blackjack.GameCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "Game is not completed yet"})
		return
	}

	disclosure := gin.H{
		"game_id":          game.ID,
		"server_seed_hash": fair.HashCommitment(game.ServerSeed),
		"client_seed":      game.ClientSeed,
		"nonce":            game.Nonce,
		"cards_dealt":      game.Cursor,
	}

	if bc.seedRetired(game) {
		cards := make([]fair.Card, game.Cursor)
		for cursor := 0; cursor < game.Cursor; cursor++ {
			cards[cursor] = fair.DeriveCard(game.ServerSeed, game.ClientSeed, game.Nonce, cursor)
		}
		disclosure["server_seed"] = game.ServerSeed
		disclosure["cards"] = cards
	}

	c.JSON(http.StatusOK, disclosure)
}

// GetSeeds returns the user's current fairness commitment
// @Summary Current fairness seeds
// @Tags fairness
// @Success 200 {object} map[string]interface{}
// @Router /auth/fairness/seeds [get]
func (bc *BlackjackController) GetSeeds(c *gin.Context) {
	username := sessions.Default(c).Get(SessionUserKey).(string)
	pair, err := bc.seedPair(username, "")
	if err != nil {
		log.Printf("[BLACKJACK-ERROR] seed pair for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error preparing fairness seeds"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"server_seed_hash": pair.ServerSeedHash,
		"client_seed":      pair.ClientSeed,
		"nonce":            pair.Nonce,
	})
}

type rotateSeedsRequest struct {
	ClientSeed string `json:"client_seed"`
}

// RotateSeeds retires the current seed pair, revealing its server seed,
// and activates a fresh pair
// @Summary Rotate fairness seeds
// @Tags fairness
// @Param request body rotateSeedsRequest false "new client seed"
// @Success 200 {object} map[string]interface{}
// @Router /auth/fairness/rotate [post]
func (bc *BlackjackController) RotateSeeds(c *gin.Context) {
	username := sessions.Default(c).Get(SessionUserKey).(string)

	// Rotating mid-round would disclose the cards still on the table.
	if _, err := bc.RedisClient.GetActiveGameID(username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Finish the active game before rotating seeds"})
		return
	}

	var req rotateSeedsRequest
	_ = c.ShouldBindJSON(&req)

	retired, err := bc.RedisClient.GetSeedPair(username)
	if err != nil && !errors.Is(err, redis.ErrNotFound) {
		log.Printf("[BLACKJACK-ERROR] reading seed pair for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error rotating seeds"})
		return
	}

	fresh, err := fair.NewSeedPair(req.ClientSeed)
	if err != nil {
		log.Printf("[BLACKJACK-ERROR] generating seed pair for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error rotating seeds"})
		return
	}
	if err := bc.RedisClient.SaveSeedPair(username, fresh); err != nil {
		log.Printf("[BLACKJACK-ERROR] saving seed pair for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error rotating seeds"})
		return
	}

	response := gin.H{
		"server_seed_hash": fresh.ServerSeedHash,
		"client_seed":      fresh.ClientSeed,
	}
	if retired != nil {
		response["revealed_server_seed"] = retired.ServerSeed
		response["revealed_nonce"] = retired.Nonce
	}
	c.JSON(http.StatusOK, response)
}

// seedPair loads the user's current pair, creating one on first use.
func (bc *BlackjackController) seedPair(username, clientSeed string) (*fair.SeedPair, error) {
	pair, err := bc.RedisClient.GetSeedPair(username)
	if err == nil {
		if clientSeed != "" && clientSeed != pair.ClientSeed {
			pair.ClientSeed = clientSeed
			if err := bc.RedisClient.SaveSeedPair(username, pair); err != nil {
				return nil, err
			}
		}
		return pair, nil
	}
	if !errors.Is(err, redis.ErrNotFound) {
		return nil, err
	}
	pair, err = fair.NewSeedPair(clientSeed)
	if err != nil {
		return nil, err
	}
	if err := bc.RedisClient.SaveSeedPair(username, pair); err != nil {
		return nil, err
	}
	return pair, nil
}

// seedRetired reports whether the round's server seed is no longer the
// user's active one, which is what makes it safe to reveal.
func (bc *BlackjackController) seedRetired(game *blackjack.Game) bool {
	pair, err := bc.RedisClient.GetSeedPair(game.UserID)
	if err != nil {
		// No active pair left; the seed cannot produce future rounds.
		return true
	}
	return pair.ServerSeed != game.ServerSeed
}

// creditWin pays a completed round's total through the ledger, idempotent
// on the round id so a repeated completion path cannot double-credit.
func (bc *BlackjackController) creditWin(ctx context.Context, game *blackjack.Game) {
	if game.Demo() || !game.TotalWinAmount.IsPositive() {
		return
	}
	_, err := bc.Ledger.AdjustStake(ctx, ledger.AdjustRequest{
		Operation:   ledger.OpWin,
		OperationID: "win:" + game.ID,
		UserID:      game.UserID,
		Amount:      game.TotalWinAmount,
		Asset:       game.Asset,
		Description: "Blackjack win",
		Metadata:    map[string]any{"game": "blackjack", "game_id": game.ID},
	})
	if err != nil {
		log.Printf("[LEDGER-ERROR] crediting win for game %s: %v", game.ID, err)
	}
}

// gameView is the public shape of a round: the dealer's hole card and the
// server seed stay hidden while the round is running.
func (bc *BlackjackController) gameView(game *blackjack.Game) gin.H {
	view := gin.H{
		"id":               game.ID,
		"status":           game.Status,
		"active_hand":      game.ActiveHand,
		"bet_amount":       game.BetAmount.StringFixed(8),
		"total_bet_amount": game.TotalBetAmount.StringFixed(8),
		"player_hand":      game.PlayerHand,
		"server_seed_hash": fair.HashCommitment(game.ServerSeed),
		"client_seed":      game.ClientSeed,
		"nonce":            game.Nonce,
	}

	if game.Status == blackjack.GameCompleted {
		view["dealer_hand"] = game.DealerHand
		view["win_amount"] = game.WinAmount.StringFixed(8)
		view["total_win_amount"] = game.TotalWinAmount.StringFixed(8)
		view["multiplier"] = game.Multiplier.String()
	} else {
		view["dealer_up_card"] = game.UpCard()
	}

	if game.IsSplit() {
		view["split_hand"] = game.Split.Hand
		view["split_double_down"] = game.Split.DoubleDown
		if game.Status == blackjack.GameCompleted {
			view["split_win_amount"] = game.Split.WinAmount.StringFixed(8)
		}
	}
	view["double_down"] = game.DoubleDown
	if game.Insurance != nil {
		view["insurance"] = gin.H{
			"bet_amount": game.Insurance.BetAmount.StringFixed(8),
			"win_amount": game.Insurance.WinAmount.StringFixed(8),
		}
	}
	view["insurance_declined"] = game.InsuranceDeclined
	if game.PerfectPair != nil {
		view["perfect_pair"] = game.PerfectPair
	}
	if game.TwentyOnePlusThree != nil {
		view["twenty_one_plus_three"] = game.TwentyOnePlusThree
	}
	return view
}

func optionalAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, errors.New("amount cannot be negative")
	}
	return amount, nil
}

func statusForKind(kind blackjack.ErrorKind) int {
	switch kind {
	case blackjack.ErrValidation:
		return http.StatusBadRequest
	case blackjack.ErrState:
		return http.StatusConflict
	case blackjack.ErrFunds:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
