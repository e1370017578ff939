package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	account "auction-site/internal/accountService"
	"auction-site/internal/auth"
	bidding "auction-site/internal/biddingService"
	"auction-site/internal/config"
	"auction-site/internal/database"
	listing "auction-site/internal/listingService"
	"auction-site/internal/repository"
	"auction-site/internal/server"
	watchlist "auction-site/internal/watchlistService"
	"auction-site/services/bidding/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// testApp is the full HTTP stack on a throwaway SQLite database
type testApp struct {
	router *gin.Engine
	db     *gorm.DB
}

// SetupTestApp wires every service the way main does, with the given categories seeded
func SetupTestApp(t *testing.T, categories ...string) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		DBDriver: config.DriverSQLite,
		DBDSN:    filepath.Join(t.TempDir(), "integration.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedCategories(context.Background(), db, categories))

	repo := repository.NewGormRepo(db)
	tokens := auth.NewTokenService("integration-secret", time.Hour, "auction-site")
	biddingSvc := bidding.NewBiddingService(repo, bidding.WithCloseOwnerOnly(true))
	watchlistSvc := watchlist.NewWatchlistService(repo, biddingSvc)
	listingSvc := listing.NewListingService(repo, biddingSvc, watchlistSvc)
	accountSvc := account.NewAccountService(repo, tokens, account.WithBcryptCost(bcrypt.MinCost))

	router := server.SetupRouter(server.RouterConfig{
		Bidding:   biddingSvc,
		Listings:  listingSvc,
		Watchlist: watchlistSvc,
		Accounts:  accountSvc,
		Tokens:    tokens,
		Cookie:    handler.CookieConfig{TTL: time.Hour},
		HealthChecks: []server.HealthCheck{{Name: "database", Check: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}}},
	})
	return &testApp{router: router, db: db}
}

// ExecuteRequestAndParse executes an HTTP request as the holder of token ("" for anonymous)
// and returns the decoded envelope.
func (a *testApp) ExecuteRequestAndParse(t *testing.T, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	a.router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// Register creates a user over HTTP and returns its session token
func (a *testApp) Register(t *testing.T, username string) string {
	t.Helper()
	resp, w := a.ExecuteRequestAndParse(t, "POST", "/register", "", map[string]string{
		"username":     username,
		"email":        username + "@example.com",
		"password":     "pw-" + username,
		"confirmation": "pw-" + username,
	})
	require.Equal(t, 201, w.Code, "register %s: %v", username, resp)
	return resp["data"].(map[string]any)["token"].(string)
}

// CreateListing posts a listing and returns its id
func (a *testApp) CreateListing(t *testing.T, token string, body map[string]string) uint {
	t.Helper()
	resp, w := a.ExecuteRequestAndParse(t, "POST", "/listings", token, body)
	require.Equal(t, 201, w.Code, "create listing: %v", resp)
	return uint(resp["data"].(map[string]any)["id"].(float64))
}

func data(resp map[string]any) map[string]any {
	return resp["data"].(map[string]any)
}
