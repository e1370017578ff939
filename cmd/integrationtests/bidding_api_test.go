package integrationtests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"auction-site/internal/models"
	"auction-site/services/bidding/handler"
	"auction-site/services/bidding/helpers"

	"github.com/stretchr/testify/require"
)

// Full auction: create, outbid, rejected low bid, close, winner
func TestAuctionLifecycle(t *testing.T) {
	app := SetupTestApp(t, "Home")
	alice := app.Register(t, "alice")
	bob := app.Register(t, "bob")
	carol := app.Register(t, "carol")

	listingID := app.CreateListing(t, alice, map[string]string{
		"title":          "Vase",
		"category":       "Home",
		"detail":         "blue porcelain",
		"starting_price": "10.00",
	})
	listingURL := fmt.Sprintf("/listings/%d", listingID)

	// seed bid: current bid equals starting price, bidder is the creator
	resp, w := app.ExecuteRequestAndParse(t, http.MethodGet, listingURL, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := data(resp)
	require.Equal(t, "10.00", page["listing"].(map[string]any)["current_bid"])
	require.Equal(t, "alice", page["listing"].(map[string]any)["current_bidder"].(map[string]any)["username"])
	require.Equal(t, float64(1), page["bid_count"])

	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/bids", bob, helpers.PlaceBidRequest{Amount: "15.00"})
	require.Equal(t, http.StatusCreated, w.Code, "%v", resp)
	require.Equal(t, "15.00", data(resp)["amount"])
	_, err := time.Parse(time.RFC3339, data(resp)["created_at"].(string))
	require.NoError(t, err)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/bids", carol, helpers.PlaceBidRequest{Amount: "12.00"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "15.00", data(resp)["current_bid"])

	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/bids", carol, helpers.PlaceBidRequest{Amount: "15"})
	require.Equal(t, http.StatusConflict, w.Code)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/bids", carol, helpers.PlaceBidRequest{Amount: "twelve"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "please enter a valid amount", resp["message"])

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, listingURL+"/bids", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 2)

	// only the lister may close
	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/close", carol, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/watchlist", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/watchlist", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/close", alice, nil)
	require.Equal(t, http.StatusOK, w.Code, "%v", resp)
	closed := data(resp)
	require.Equal(t, "This Auction is Closed!!!", closed["outcome"])
	require.Equal(t, false, closed["listing"].(map[string]any)["active"])
	require.Equal(t, "bob", closed["listing"].(map[string]any)["winner"].(map[string]any)["username"])

	// closing removed the listing from the closer's watchlist only
	resp, _ = app.ExecuteRequestAndParse(t, http.MethodGet, "/watchlist", alice, nil)
	require.Len(t, resp["data"].([]any), 0)
	resp, _ = app.ExecuteRequestAndParse(t, http.MethodGet, "/watchlist", bob, nil)
	require.Len(t, resp["data"].([]any), 1)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, listingURL, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Congratulations bob, you won this auction!!", data(resp)["outcome"])

	// terminal state
	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/bids", carol, helpers.PlaceBidRequest{Amount: "100"})
	require.Equal(t, http.StatusConflict, w.Code)
	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/close", alice, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, listingURL+"/comments", carol, helpers.CommentRequest{Comment: "late"})
	require.Equal(t, http.StatusConflict, w.Code)

	resp, _ = app.ExecuteRequestAndParse(t, http.MethodGet, "/", "", nil)
	require.Len(t, resp["data"].([]any), 0)

	resp, _ = app.ExecuteRequestAndParse(t, http.MethodGet, "/closed_listings", bob, nil)
	require.Len(t, data(resp)["listings"].([]any), 1)
	require.Len(t, data(resp)["won_listings"].([]any), 1)

	resp, _ = app.ExecuteRequestAndParse(t, http.MethodGet, "/closed_listings", carol, nil)
	require.Len(t, data(resp)["won_listings"].([]any), 0)
}

func TestDuplicateRegistration(t *testing.T) {
	app := SetupTestApp(t)
	app.Register(t, "alice")

	resp, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/register", "", helpers.RegisterRequest{
		Username: "alice", Password: "other", Confirmation: "other",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "username already taken", resp["message"])

	var count int64
	require.NoError(t, app.db.Model(&models.User{}).Where("username = ?", "alice").Count(&count).Error)
	require.Equal(t, int64(1), count)

	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/register", "", helpers.RegisterRequest{
		Username: "bob", Password: "a", Confirmation: "b",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndCookieSession(t *testing.T) {
	app := SetupTestApp(t, "Home")
	app.Register(t, "alice")

	_, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/login", "", helpers.LoginRequest{Username: "alice", Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	resp, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/login", "", helpers.LoginRequest{Username: "alice", Password: "pw-alice"})
	require.Equal(t, http.StatusOK, w.Code)
	token := data(resp)["token"].(string)

	listingID := app.CreateListing(t, token, map[string]string{
		"title": "Lamp", "category": "Home", "starting_price": "5",
	})
	require.NotZero(t, listingID)

	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/listings", "", map[string]string{
		"title": "Lamp", "category": "Home", "starting_price": "5",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == handler.SessionCookie {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)

	// sessions are stateless, so the token itself outlives logout
	_, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/watchlist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCategoriesAndOther(t *testing.T) {
	app := SetupTestApp(t, "Home", "Books")
	alice := app.Register(t, "alice")

	resp, w := app.ExecuteRequestAndParse(t, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 2)

	app.CreateListing(t, alice, map[string]string{
		"title": "Telescope", "category": "Other", "other_category": "Optics", "starting_price": "120.50",
	})

	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/listings", alice, map[string]string{
		"title": "Ghost", "category": "Nope", "starting_price": "1",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	resp, _ = app.ExecuteRequestAndParse(t, http.MethodGet, "/categories", "", nil)
	categories := resp["data"].([]any)
	require.Len(t, categories, 3)

	var opticsID float64
	for _, c := range categories {
		if c.(map[string]any)["name"] == "Optics" {
			opticsID = c.(map[string]any)["id"].(float64)
		}
	}
	require.NotZero(t, opticsID)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, fmt.Sprintf("/categories/%d", int(opticsID)), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listings := data(resp)["listings"].([]any)
	require.Len(t, listings, 1)
	require.Equal(t, "120.50", listings[0].(map[string]any)["current_bid"])

	_, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/categories/999", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestWatchlistAndComments(t *testing.T) {
	app := SetupTestApp(t, "Home")
	alice := app.Register(t, "alice")
	bob := app.Register(t, "bob")

	zebra := app.CreateListing(t, alice, map[string]string{"title": "Zebra print", "category": "Home", "starting_price": "3"})
	amber := app.CreateListing(t, alice, map[string]string{"title": "Amber lamp", "category": "Home", "starting_price": "4"})

	for _, id := range []uint{zebra, amber, zebra} {
		_, w := app.ExecuteRequestAndParse(t, http.MethodPost, fmt.Sprintf("/listings/%d/watchlist", id), bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	resp, _ := app.ExecuteRequestAndParse(t, http.MethodGet, "/watchlist", bob, nil)
	watched := resp["data"].([]any)
	require.Len(t, watched, 2)
	require.Equal(t, "Amber lamp", watched[0].(map[string]any)["title"])

	resp, _ = app.ExecuteRequestAndParse(t, http.MethodGet, fmt.Sprintf("/listings/%d", zebra), bob, nil)
	require.Equal(t, true, data(resp)["watchlist_status"])
	require.Equal(t, float64(2), data(resp)["watchlist_item_count"])

	for i := 0; i < 2; i++ {
		_, w := app.ExecuteRequestAndParse(t, http.MethodDelete, fmt.Sprintf("/listings/%d/watchlist", zebra), bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	resp, _ = app.ExecuteRequestAndParse(t, http.MethodGet, fmt.Sprintf("/listings/%d", zebra), bob, nil)
	require.Equal(t, false, data(resp)["watchlist_status"])
	require.Equal(t, float64(1), data(resp)["watchlist_item_count"])

	_, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/listings/999/watchlist", bob, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, fmt.Sprintf("/listings/%d/comments", amber), bob, helpers.CommentRequest{Comment: "lovely"})
	require.Equal(t, http.StatusCreated, w.Code, "%v", resp)
	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, fmt.Sprintf("/listings/%d/comments", amber), alice, helpers.CommentRequest{Comment: "thanks"})
	require.Equal(t, http.StatusCreated, w.Code)

	resp, _ = app.ExecuteRequestAndParse(t, http.MethodGet, fmt.Sprintf("/listings/%d", amber), "", nil)
	comments := data(resp)["comments"].([]any)
	require.Len(t, comments, 2)
	require.Equal(t, "lovely", comments[0].(map[string]any)["text"])
	require.Equal(t, "bob", comments[0].(map[string]any)["author"].(map[string]any)["username"])
}

func TestHealthEndpoint(t *testing.T) {
	app := SetupTestApp(t)
	resp, w := app.ExecuteRequestAndParse(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", data(resp)["database"])
}
