package routes

import (
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/config"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registra todas las rutas de la API
func RegisterRoutes(router *gin.Engine, h *middleware.Handlers, cfg config.Config) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.POST("/webhooks/clerk", h.ClerkWebhookHandler(cfg.ClerkWebhookSecret))

	// Datos de mercado públicos
	market := router.Group("/market")
	{
		market.GET("/quote/:ticker", h.GetQuote)
		market.GET("/history/:ticker", h.GetHistory)
		market.GET("/search", h.SearchTickers)
		market.POST("/compare", h.CompareStocks)
		market.GET("/compare/:a/:b", h.QuickCompare)
	}

	protected := router.Group("/")
	if cfg.ClerkEnabled() {
		protected.Use(middleware.ClerkAuthMiddleware())
	} else {
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	}
	{
		protected.GET("/me", h.Me)
		protected.POST("/settings/change-password", h.ChangePassword)
		protected.DELETE("/settings/account", h.DeleteAccount)

		protected.GET("/holdings", h.GetHoldings)
		protected.POST("/holdings", h.CreateHolding)
		protected.GET("/holdings/:id", h.GetHolding)
		protected.PUT("/holdings/:id", h.UpdateHolding)
		protected.DELETE("/holdings/:id", h.DeleteHolding)

		protected.GET("/portfolio/summary", h.GetPortfolioSummary)
		protected.GET("/portfolio/allocation", h.GetPortfolioAllocation)
		protected.GET("/portfolio/performance", h.GetPortfolioPerformance)

		protected.POST("/alerts", h.CreateAlert)
		protected.GET("/alerts", h.GetAlerts)
		protected.GET("/alerts/check", h.CheckAlerts)
		protected.PUT("/alerts/:id", h.UpdateAlert)
		protected.POST("/alerts/:id/reset", h.ResetAlert)
		protected.DELETE("/alerts/:id", h.DeleteAlert)

		protected.POST("/goals", h.CreateGoal)
		protected.GET("/goals", h.GetGoals)
		protected.GET("/goals/:id", h.GetGoal)
		protected.PUT("/goals/:id", h.UpdateGoal)
		protected.DELETE("/goals/:id", h.DeleteGoal)

		protected.POST("/dividends", h.CreateDividend)
		protected.GET("/dividends", h.GetDividends)
		protected.GET("/dividends/summary", h.GetDividendSummary)
		protected.DELETE("/dividends/:id", h.DeleteDividend)

		protected.POST("/watchlist", h.AddToWatchlist)
		protected.GET("/watchlist", h.GetWatchlist)
		protected.DELETE("/watchlist/:ticker", h.RemoveFromWatchlist)
	}

	// Rutas de admin
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.AdminSecretKey))
	{
		admin.GET("/users", h.GetUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.DELETE("/users/:id", h.DeleteUserByAdmin)
	}
}
