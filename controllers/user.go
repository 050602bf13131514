package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	blackjack_constants "github.com/lazymak3r/zetik-backend-sub007/constants/blackjack"
	models "github.com/lazymak3r/zetik-backend-sub007/models/postgres"
	"github.com/lazymak3r/zetik-backend-sub007/services/ledger"
)

// SessionUserKey is the session key holding the authenticated username.
const SessionUserKey = "Username"

// Login authenticates a user and stores the username in the session
// @Summary Log in
// @Tags user
// @Param email formData string true "email"
// @Param password formData string true "password"
// @Success 200 {object} map[string]string
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email := c.PostForm("email")
		password := c.PostForm("password")

		// Minimum input sanitizing
		if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		session.Set(SessionUserKey, user.ProfileUsername)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No session!"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": user.ProfileUsername})
	}
}

// Logout deletes the session associated with the username key
// @Summary Log out
// @Tags user
// @Success 200 {object} map[string]string
// @Router /auth/logout [delete]
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get(SessionUserKey)
	// There is no session for the user, won't delete nothing
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete(SessionUserKey)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

// SignUp registers a user, creates the game profile and credits the
// starting balance through the ledger so even the signup bonus leaves an
// auditable entry.
// @Summary Sign up
// @Tags user
// @Param request body signUpRequest true "registration data"
// @Success 201 {object} map[string]string
// @Router /signup [post]
func SignUp(db *gorm.DB, lgr ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
			return
		}

		profile := models.GameProfile{Username: req.Username}
		user := models.User{
			Email:           req.Email,
			ProfileUsername: req.Username,
			PasswordHash:    string(hash),
			FullName:        req.FullName,
			MemberSince:     time.Now(),
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			return tx.Create(&user).Error
		})
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email or username already in use"})
			return
		}

		grantStartingBalance(c.Request.Context(), lgr, req.Username)

		c.JSON(http.StatusCreated, gin.H{"username": req.Username})
	}
}

// grantStartingBalance credits the configured signup bonus. The operation
// id is derived from the username, so a retried signup cannot credit the
// bonus twice.
func grantStartingBalance(ctx context.Context, lgr ledger.Ledger, username string) {
	amount := os.Getenv("STARTING_BALANCE")
	if amount == "" {
		return
	}
	bonus, err := decimal.NewFromString(amount)
	if err != nil || !bonus.IsPositive() {
		log.Printf("[USER-ERROR] invalid STARTING_BALANCE %q: %v", amount, err)
		return
	}
	asset := os.Getenv("DEFAULT_ASSET")
	if asset == "" {
		asset = blackjack_constants.DefaultAsset
	}
	_, err = lgr.AdjustStake(ctx, ledger.AdjustRequest{
		Operation:   ledger.OpWin,
		OperationID: "signup-bonus:" + username,
		UserID:      username,
		Amount:      bonus,
		Asset:       asset,
		Description: "Signup bonus",
	})
	if err != nil {
		log.Printf("[USER-ERROR] crediting signup bonus for %s: %v", username, err)
	}
}

// GetBalance returns the authenticated user's balance in one asset
// @Summary Get balance
// @Tags user
// @Param asset query string false "asset code, default USD"
// @Success 200 {object} map[string]string
// @Router /auth/balance [get]
func GetBalance(lgr ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := sessions.Default(c).Get(SessionUserKey).(string)
		asset := c.DefaultQuery("asset", blackjack_constants.DefaultAsset)
		balance, err := lgr.Balance(c.Request.Context(), username, asset)
		if err != nil {
			log.Printf("[USER-ERROR] reading balance for %s: %v", username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading balance"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"asset": asset, "balance": balance.StringFixed(8)})
	}
}

// Ping responds to a health check
// @Summary Ping the server
// @Success 200 {object} map[string]string
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
