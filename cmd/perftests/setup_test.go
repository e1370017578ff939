package perftests

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	bidding "auction-site/internal/biddingService"
	"auction-site/internal/config"
	"auction-site/internal/database"
	"auction-site/internal/models"
	"auction-site/internal/repository"

	"github.com/shopspring/decimal"
)

// setupRepo creates a SQLite-backed bidding service with numListings listings,
// each carrying its seed bid, plus numUsers bidders.
func setupRepo(tb testing.TB, numListings, numUsers int) (*repository.GormRepo, *bidding.BiddingService, []models.Listing, []models.User) {
	tb.Helper()
	ctx := context.Background()

	db, err := database.Open(config.Config{
		DBDriver: config.DriverSQLite,
		DBDSN:    filepath.Join(tb.TempDir(), "perf.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
	})
	if err != nil {
		tb.Fatalf("open database: %v", err)
	}
	tb.Cleanup(func() { _ = database.Close(db) })
	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}

	repo := repository.NewGormRepo(db)
	svc := bidding.NewBiddingService(repo)

	users := make([]models.User, numUsers+1)
	for i := range users {
		users[i] = models.User{Username: fmt.Sprintf("user_%d", i), Password: "x"}
		if err := repo.CreateUser(ctx, &users[i]); err != nil {
			tb.Fatalf("create user: %v", err)
		}
	}
	lister := users[0]

	category := models.Category{Name: "Load test"}
	if err := repo.CreateCategory(ctx, &category); err != nil {
		tb.Fatalf("create category: %v", err)
	}

	price := decimal.NewFromInt(100)
	listings := make([]models.Listing, numListings)
	for i := range listings {
		listings[i] = models.Listing{
			Title:         fmt.Sprintf("title_%d", i),
			Detail:        "Load test listing",
			StartingPrice: price,
			CategoryID:    category.ID,
			ListerID:      lister.ID,
			Active:        true,
		}
		err := repo.Transaction(ctx, func(tx repository.AuctionDB) error {
			if err := tx.CreateListing(ctx, &listings[i]); err != nil {
				return err
			}
			return tx.RecordBid(ctx, &models.Bid{ListingID: listings[i].ID, BidderID: lister.ID, Amount: price, IsSeed: true})
		})
		if err != nil {
			tb.Fatalf("create listing: %v", err)
		}
	}
	return repo, svc, listings, users[1:]
}
