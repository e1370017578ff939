package handler

import (
	"errors"
	"net/http"
	"testing"

	"auction-site/internal/biddingerrors"
	listing "auction-site/internal/listingService"
	"auction-site/internal/models"
	"auction-site/services/bidding/helpers"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func summary(id uint, title, amount string) models.ListingSummary {
	return models.ListingSummary{
		Listing:  models.Listing{ID: id, Title: title, Active: true, StartingPrice: dec(amount)},
		Standing: models.Standing{ListingID: id, Amount: dec(amount)},
	}
}

// Test CreateListingHandler
func TestCreateListingHandler(t *testing.T) {
	tests := []struct {
		name           string
		user           string
		requestBody    any
		mockSetup      func(m *MockListingServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "success",
			user: "1:alice",
			requestBody: helpers.CreateListingRequest{
				Title: "Vase", Category: "Home", StartingPrice: "10.00", Detail: "blue",
			},
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().CreateListing(gomock.Any(), listing.NewListing{
					Title: "Vase", Category: "Home", StartingPrice: "10.00", Detail: "blue", ListerID: 1,
				}).Return(models.Listing{ID: 3, Title: "Vase", Active: true, StartingPrice: dec("10"), ListerID: 1}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "listing created successfully",
		},
		{
			name:           "missing_title",
			user:           "1:alice",
			requestBody:    helpers.CreateListingRequest{Category: "Home", StartingPrice: "10"},
			mockSetup:      func(m *MockListingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "anonymous_user",
			requestBody:    helpers.CreateListingRequest{Title: "Vase", Category: "Home", StartingPrice: "10"},
			mockSetup:      func(m *MockListingServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "login required",
		},
		{
			name:        "unknown_category",
			user:        "1:alice",
			requestBody: helpers.CreateListingRequest{Title: "Vase", Category: "Nope", StartingPrice: "10"},
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().CreateListing(gomock.Any(), gomock.Any()).Return(models.Listing{}, biddingerrors.ErrCategoryNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "category not found",
		},
		{
			name:        "bad_starting_price",
			user:        "1:alice",
			requestBody: helpers.CreateListingRequest{Title: "Vase", Category: "Home", StartingPrice: "1.234"},
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().CreateListing(gomock.Any(), gomock.Any()).Return(models.Listing{}, biddingerrors.ErrInvalidAmount)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "please enter a valid amount",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockListingServiceInterface(ctrl)
			tc.mockSetup(mockService)

			router := testRouter()
			router.POST("/listings", NewListingHandler(mockService).CreateListingHandler)

			w, resp := doJSON(t, router, http.MethodPost, "/listings", tc.requestBody, tc.user)

			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if w.Code == http.StatusCreated {
				data := resp["data"].(map[string]any)
				require.Equal(t, "10.00", data["current_bid"])
				require.Equal(t, "alice", data["current_bidder"].(map[string]any)["username"])
			}
		})
	}
}

// Test ListingPageHandler
func TestListingPageHandler(t *testing.T) {
	view := models.ListingView{
		Listing: models.Listing{
			ID: 1, Title: "Vase", Active: true, ListerID: 1, StartingPrice: dec("10"),
			Category: models.Category{ID: 2, Name: "Home"}, Lister: models.User{ID: 1, Username: "alice"},
		},
		Standing:           models.Standing{ListingID: 1, Amount: dec("15"), BidderID: uintPtr(2), BidderName: "bob"},
		BidCount:           2,
		Comments:           []models.Comment{{ID: 1, Text: "nice", Author: models.User{ID: 3, Username: "carol"}}},
		Watching:           true,
		WatchlistItemCount: 4,
	}

	tests := []struct {
		name           string
		user           string
		mockSetup      func(m *MockListingServiceInterface)
		expectedStatus int
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name: "logged_in_viewer",
			user: "1:alice",
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().ListingView(gomock.Any(), uint(1), uint(1)).Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, true, data["is_owner"])
				require.Equal(t, true, data["watchlist_status"])
				require.Equal(t, float64(4), data["watchlist_item_count"])
				require.Equal(t, float64(2), data["bid_count"])
				listing := data["listing"].(map[string]any)
				require.Equal(t, "15.00", listing["current_bid"])
				require.Equal(t, "bob", listing["current_bidder"].(map[string]any)["username"])
				require.Equal(t, "Home", listing["category"].(map[string]any)["name"])
				require.Len(t, data["comments"].([]any), 1)
			},
		},
		{
			name: "anonymous_viewer",
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().ListingView(gomock.Any(), uint(1), uint(0)).Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, false, data["is_owner"])
				require.NotContains(t, data, "watchlist_status")
				require.NotContains(t, data, "watchlist_item_count")
			},
		},
		{
			name: "not_found",
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().ListingView(gomock.Any(), uint(1), uint(0)).Return(models.ListingView{}, biddingerrors.ErrListingNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockListingServiceInterface(ctrl)
			tc.mockSetup(mockService)

			router := testRouter()
			router.GET("/listings/:listing_id", NewListingHandler(mockService).ListingPageHandler)

			w, resp := doJSON(t, router, http.MethodGet, "/listings/1", nil, tc.user)

			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

func TestBrowseHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockListingServiceInterface(ctrl)
	h := NewListingHandler(mockService)

	router := testRouter()
	router.GET("/", h.ActiveListingsHandler)
	router.GET("/closed_listings", h.ClosedListingsHandler)
	router.GET("/categories", h.CategoriesHandler)
	router.GET("/categories/:category_id", h.CategoryListingsHandler)

	mockService.EXPECT().ActiveListings(gomock.Any()).
		Return([]models.ListingSummary{summary(1, "Vase", "10"), summary(2, "Lamp", "5")}, nil)
	w, resp := doJSON(t, router, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 2)

	won := summary(3, "Clock", "30")
	won.Listing.Active = false
	won.Listing.WinnerID = uintPtr(7)
	mockService.EXPECT().ClosedListings(gomock.Any(), uint(7)).
		Return([]models.ListingSummary{won}, []models.ListingSummary{won}, nil)
	w, resp = doJSON(t, router, http.MethodGet, "/closed_listings", nil, "7:dave")
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	require.Len(t, data["listings"].([]any), 1)
	require.Len(t, data["won_listings"].([]any), 1)

	mockService.EXPECT().Categories(gomock.Any()).Return([]models.Category{{ID: 1, Name: "Home"}}, nil)
	w, resp = doJSON(t, router, http.MethodGet, "/categories", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Home", resp["data"].([]any)[0].(map[string]any)["name"])

	mockService.EXPECT().ListingsByCategory(gomock.Any(), uint(1)).
		Return(models.Category{ID: 1, Name: "Home"}, []models.ListingSummary{summary(1, "Vase", "10")}, nil)
	w, resp = doJSON(t, router, http.MethodGet, "/categories/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].(map[string]any)["listings"].([]any), 1)

	mockService.EXPECT().ListingsByCategory(gomock.Any(), uint(9)).
		Return(models.Category{}, nil, biddingerrors.ErrCategoryNotFound)
	w, _ = doJSON(t, router, http.MethodGet, "/categories/9", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	mockService.EXPECT().ActiveListings(gomock.Any()).Return(nil, errors.New("database failure"))
	w, _ = doJSON(t, router, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

// Test AddCommentHandler
func TestAddCommentHandler(t *testing.T) {
	tests := []struct {
		name           string
		user           string
		requestBody    any
		mockSetup      func(m *MockListingServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success",
			user:        "3:carol",
			requestBody: helpers.CommentRequest{Comment: "nice vase"},
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().AddComment(gomock.Any(), uint(1), uint(3), "nice vase").
					Return(models.Comment{ID: 4, ListingID: 1, AuthorID: 3, Text: "nice vase"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "comment added successfully",
		},
		{
			name:           "empty_comment",
			user:           "3:carol",
			requestBody:    helpers.CommentRequest{},
			mockSetup:      func(m *MockListingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "closed_listing",
			user:        "3:carol",
			requestBody: helpers.CommentRequest{Comment: "late"},
			mockSetup: func(m *MockListingServiceInterface) {
				m.EXPECT().AddComment(gomock.Any(), uint(1), uint(3), "late").
					Return(models.Comment{}, biddingerrors.ErrListingClosed)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "this auction is closed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockListingServiceInterface(ctrl)
			tc.mockSetup(mockService)

			router := testRouter()
			router.POST("/listings/:listing_id/comments", NewListingHandler(mockService).AddCommentHandler)

			w, resp := doJSON(t, router, http.MethodPost, "/listings/1/comments", tc.requestBody, tc.user)

			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if w.Code == http.StatusCreated {
				data := resp["data"].(map[string]any)
				require.Equal(t, "carol", data["author"].(map[string]any)["username"])
			}
		})
	}
}
