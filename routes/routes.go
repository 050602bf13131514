package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/lazymak3r/zetik-backend-sub007/controllers"
	"github.com/lazymak3r/zetik-backend-sub007/middleware"
	"github.com/lazymak3r/zetik-backend-sub007/services/blackjack"
	"github.com/lazymak3r/zetik-backend-sub007/services/ledger"
	"github.com/lazymak3r/zetik-backend-sub007/services/redis"
	"github.com/lazymak3r/zetik-backend-sub007/services/store"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	gormLedger := ledger.NewGormLedger(db)
	blackjackController := &controllers.BlackjackController{
		DB:          db,
		RedisClient: redisClient,
		Store:       store.NewGameStore(db),
		Engine:      blackjack.NewEngine(gormLedger),
		Ledger:      gormLedger,
	}

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/login", controllers.Login(db))

	api.POST("/signup", controllers.SignUp(db, gormLedger))

	// Public fairness disclosure: anyone can audit a completed round.
	api.GET("/blackjack/:id/fairness", blackjackController.Fairness)

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/balance", controllers.GetBalance(gormLedger))

		authentication.POST("/blackjack/bet", blackjackController.PlaceBet)
		authentication.POST("/blackjack/action", blackjackController.PlayAction)
		authentication.GET("/blackjack/active", blackjackController.ActiveGame)

		authentication.GET("/fairness/seeds", blackjackController.GetSeeds)
		authentication.POST("/fairness/rotate", blackjackController.RotateSeeds)
	}
}
