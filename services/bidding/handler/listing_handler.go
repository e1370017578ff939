package handler

import (
	"context"
	"net/http"

	listing "auction-site/internal/listingService"
	"auction-site/internal/models"
	"auction-site/services/bidding/helpers"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=listing_handler.go -destination=mock_listing_service.go -package=handler

type ListingServiceInterface interface {
	CreateListing(ctx context.Context, in listing.NewListing) (models.Listing, error)
	AddComment(ctx context.Context, listingID, userID uint, text string) (models.Comment, error)
	ActiveListings(ctx context.Context) ([]models.ListingSummary, error)
	ClosedListings(ctx context.Context, viewerID uint) ([]models.ListingSummary, []models.ListingSummary, error)
	Categories(ctx context.Context) ([]models.Category, error)
	ListingsByCategory(ctx context.Context, categoryID uint) (models.Category, []models.ListingSummary, error)
	ListingView(ctx context.Context, listingID, viewerID uint) (models.ListingView, error)
}

type ListingHandler struct {
	service ListingServiceInterface
}

func NewListingHandler(service ListingServiceInterface) *ListingHandler {
	return &ListingHandler{service: service}
}

// ActiveListingsHandler handles GET /
func (h *ListingHandler) ActiveListingsHandler(c *gin.Context) {
	summaries, err := h.service.ActiveListings(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ActiveListingsHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponses(summaries), "active listings retrieved successfully")
	helpers.LogSuccess("ActiveListingsHandler", "active listings retrieved successfully", map[string]any{"count": len(summaries)})
}

// ClosedListingsHandler handles GET /closed_listings
func (h *ListingHandler) ClosedListingsHandler(c *gin.Context) {
	viewerID := helpers.CurrentUserID(c)
	closed, won, err := h.service.ClosedListings(c.Request.Context(), viewerID)
	if err != nil {
		helpers.RespondError(c, "ClosedListingsHandler", err, map[string]any{"viewer_id": viewerID})
		return
	}

	resp := helpers.ClosedListingsResponse{
		Listings:    helpers.NewListingResponses(closed),
		WonListings: helpers.NewListingResponses(won),
	}
	utils.JSONResponse(c, http.StatusOK, resp, "closed listings retrieved successfully")
	helpers.LogSuccess("ClosedListingsHandler", "closed listings retrieved successfully", map[string]any{
		"count": len(closed),
		"won":   len(won),
	})
}

// CategoriesHandler handles GET /categories
func (h *ListingHandler) CategoriesHandler(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "CategoriesHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewCategoryResponses(categories), "categories retrieved successfully")
}

// CategoryListingsHandler handles GET /categories/:category_id
func (h *ListingHandler) CategoryListingsHandler(c *gin.Context) {
	categoryID, err := helpers.ParseIDParam(c, "category_id")
	if err != nil {
		helpers.RespondError(c, "CategoryListingsHandler", err, nil)
		return
	}

	category, summaries, err := h.service.ListingsByCategory(c.Request.Context(), categoryID)
	if err != nil {
		helpers.RespondError(c, "CategoryListingsHandler", err, map[string]any{"category_id": categoryID})
		return
	}

	resp := helpers.CategoryListingsResponse{
		Category: helpers.CategoryResponse{ID: category.ID, Name: category.Name},
		Listings: helpers.NewListingResponses(summaries),
	}
	utils.JSONResponse(c, http.StatusOK, resp, "category listings retrieved successfully")
}

// ListingPageHandler handles GET /listings/:listing_id
func (h *ListingHandler) ListingPageHandler(c *gin.Context) {
	listingID, err := helpers.ParseIDParam(c, "listing_id")
	if err != nil {
		helpers.RespondError(c, "ListingPageHandler", err, nil)
		return
	}

	viewerID := helpers.CurrentUserID(c)
	view, err := h.service.ListingView(c.Request.Context(), listingID, viewerID)
	if err != nil {
		helpers.RespondError(c, "ListingPageHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	resp := helpers.ListingPageResponse{
		Listing:  helpers.NewListingResponse(view.Listing, view.Standing),
		BidCount: view.BidCount,
		Comments: helpers.NewCommentResponses(view.Comments),
		IsOwner:  viewerID != 0 && view.Listing.ListerID == viewerID,
		Outcome:  helpers.Outcome(view.Listing, viewerID, helpers.CurrentUsername(c)),
	}
	if viewerID != 0 {
		resp.WatchlistStatus = &view.Watching
		resp.WatchlistItemCount = &view.WatchlistItemCount
	}

	utils.JSONResponse(c, http.StatusOK, resp, "listing retrieved successfully")
}

// CreateListingHandler handles POST /listings
func (h *ListingHandler) CreateListingHandler(c *gin.Context) {
	userID, ok := helpers.RequireUser(c, "CreateListingHandler")
	if !ok {
		return
	}

	var req helpers.CreateListingRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	created, err := h.service.CreateListing(c.Request.Context(), listing.NewListing{
		Title:         req.Title,
		Category:      req.Category,
		OtherCategory: req.OtherCategory,
		Detail:        req.Detail,
		StartingPrice: req.StartingPrice,
		ImageURL:      req.ImageURL,
		ListerID:      userID,
	})
	if err != nil {
		helpers.RespondError(c, "CreateListingHandler", err, map[string]any{"user_id": userID, "title": req.Title})
		return
	}

	bidderID := userID
	standing := models.Standing{
		ListingID:  created.ID,
		Amount:     created.StartingPrice,
		BidderID:   &bidderID,
		BidderName: helpers.CurrentUsername(c),
		IsSeed:     true,
	}
	if created.Lister.ID == 0 {
		created.Lister = models.User{ID: userID, Username: helpers.CurrentUsername(c)}
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewListingResponse(created, standing), "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": created.ID,
		"user_id":    userID,
	})
}

// AddCommentHandler handles POST /listings/:listing_id/comments
func (h *ListingHandler) AddCommentHandler(c *gin.Context) {
	userID, ok := helpers.RequireUser(c, "AddCommentHandler")
	if !ok {
		return
	}
	listingID, err := helpers.ParseIDParam(c, "listing_id")
	if err != nil {
		helpers.RespondError(c, "AddCommentHandler", err, nil)
		return
	}

	var req helpers.CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.HandleBindError(c, "AddCommentHandler", err)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), listingID, userID, req.Comment)
	if err != nil {
		helpers.RespondError(c, "AddCommentHandler", err, map[string]any{"listing_id": listingID, "user_id": userID})
		return
	}

	comment.Author = models.User{ID: userID, Username: helpers.CurrentUsername(c)}
	utils.JSONResponse(c, http.StatusCreated, helpers.NewCommentResponses([]models.Comment{comment})[0], "comment added successfully")
	helpers.LogSuccess("AddCommentHandler", "comment added successfully", map[string]any{
		"comment_id": comment.ID,
		"listing_id": listingID,
	})
}
