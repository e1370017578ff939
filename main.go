package main

import (
	"context"
	"time"

	account "auction-site/internal/accountService"
	"auction-site/internal/auth"
	bidding "auction-site/internal/biddingService"
	"auction-site/internal/cache"
	"auction-site/internal/config"
	"auction-site/internal/database"
	listing "auction-site/internal/listingService"
	"auction-site/internal/repository"
	"auction-site/internal/server"
	watchlist "auction-site/internal/watchlistService"
	"auction-site/services/bidding/handler"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	db, err := database.Open(cfg)
	if err != nil {
		utils.Fatal("failed to open database", map[string]any{"driver": cfg.DBDriver, "error": err.Error()})
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		utils.Fatal("failed to migrate database", map[string]any{"error": err.Error()})
	}
	if err := database.SeedCategories(context.Background(), db, cfg.SeedCategories); err != nil {
		utils.Fatal("failed to seed categories", map[string]any{"error": err.Error()})
	}

	repo := repository.NewGormRepo(db)
	checks := []server.HealthCheck{{Name: "database", Check: func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}}}

	biddingOpts := []bidding.Option{bidding.WithCloseOwnerOnly(cfg.CloseOwnerOnly)}
	if cfg.CacheEnabled() {
		if bidCache, check := connectCache(cfg); bidCache != nil {
			biddingOpts = append(biddingOpts, bidding.WithCache(bidCache))
			checks = append(checks, check)
		}
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer)
	biddingSvc := bidding.NewBiddingService(repo, biddingOpts...)
	watchlistSvc := watchlist.NewWatchlistService(repo, biddingSvc)
	listingSvc := listing.NewListingService(repo, biddingSvc, watchlistSvc)
	accountSvc := account.NewAccountService(repo, tokens)

	router := server.SetupRouter(server.RouterConfig{
		Bidding:        biddingSvc,
		Listings:       listingSvc,
		Watchlist:      watchlistSvc,
		Accounts:       accountSvc,
		Tokens:         tokens,
		Cookie:         handler.CookieConfig{TTL: tokens.TTL(), Secure: cfg.CookieSecure},
		AllowedOrigins: cfg.CORSAllowedOrigins,
		HealthChecks:   checks,
	})

	utils.Info("starting auction server", map[string]any{
		"addr":      cfg.Addr(),
		"db_driver": cfg.DBDriver,
		"cache":     cfg.CacheEnabled(),
	})
	if err := router.Run(cfg.Addr()); err != nil {
		utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
	}
}

// connectCache dials Redis; the server keeps running uncached if it is unreachable
func connectCache(cfg config.Config) (*cache.BidCache, server.HealthCheck) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		utils.Warn("redis unavailable, bid cache disabled", map[string]any{"addr": cfg.RedisAddr, "error": err.Error()})
		return nil, server.HealthCheck{}
	}
	return cache.NewBidCache(client, cfg.BidCacheTTL), server.HealthCheck{
		Name:  "redis",
		Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}
}
