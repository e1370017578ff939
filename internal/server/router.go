package server

import (
	"context"
	"net/http"
	"time"

	"auction-site/services/bidding/handler"
	"auction-site/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HealthCheck is one dependency probed by /health
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// RouterConfig carries everything the HTTP layer depends on
type RouterConfig struct {
	Bidding   handler.BiddingServiceInterface
	Listings  handler.ListingServiceInterface
	Watchlist handler.WatchlistServiceInterface
	Accounts  handler.AccountServiceInterface
	Tokens    TokenValidator
	Cookie    handler.CookieConfig

	AllowedOrigins []string
	HealthChecks   []HealthCheck
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	router.Use(AuthMiddleware(cfg.Tokens))

	biddingHandler := handler.NewBiddingHandler(cfg.Bidding)
	listingHandler := handler.NewListingHandler(cfg.Listings)
	watchlistHandler := handler.NewWatchlistHandler(cfg.Watchlist)
	accountHandler := handler.NewAccountHandler(cfg.Accounts, cfg.Cookie)

	router.GET("/health", healthHandler(cfg.HealthChecks))

	// public, user-aware when logged in
	router.GET("/", listingHandler.ActiveListingsHandler)
	router.GET("/closed_listings", listingHandler.ClosedListingsHandler)
	router.GET("/categories", listingHandler.CategoriesHandler)
	router.GET("/categories/:category_id", listingHandler.CategoryListingsHandler)

	accounts := router.Group("")
	{
		accounts.POST("/register", accountHandler.RegisterHandler)
		accounts.POST("/login", accountHandler.LoginHandler)
		accounts.POST("/logout", accountHandler.LogoutHandler)
	}

	listings := router.Group("/listings")
	{
		listings.GET("/:listing_id", listingHandler.ListingPageHandler)
		listings.GET("/:listing_id/bids", biddingHandler.GetBidsByListingHandler)

		authed := listings.Group("", RequireAuth())
		authed.POST("", listingHandler.CreateListingHandler)
		authed.POST("/:listing_id/bids", biddingHandler.PlaceBidHandler)
		authed.POST("/:listing_id/comments", listingHandler.AddCommentHandler)
		authed.POST("/:listing_id/watchlist", watchlistHandler.AddHandler)
		authed.DELETE("/:listing_id/watchlist", watchlistHandler.RemoveHandler)
		authed.POST("/:listing_id/close", biddingHandler.CloseAuctionHandler)
	}

	router.GET("/watchlist", RequireAuth(), watchlistHandler.WatchlistPageHandler)

	return router
}

// corsConfig allows every origin when none are configured
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
		return c
	}
	c.AllowOrigins = origins
	return c
}

func healthHandler(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[hc.Name] = err.Error()
				utils.Warn("health check failed", map[string]any{"check": hc.Name, "error": err.Error()})
				continue
			}
			results[hc.Name] = "ok"
		}

		message := "healthy"
		if status != http.StatusOK {
			message = "unhealthy"
		}
		utils.JSONResponse(c, status, results, message)
	}
}
