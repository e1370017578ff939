package handler

import (
	"context"
	"net/http"

	"auction-site/internal/models"
	"auction-site/services/bidding/helpers"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=watchlist_handler.go -destination=mock_watchlist_service.go -package=handler

type WatchlistServiceInterface interface {
	Add(ctx context.Context, userID, listingID uint) error
	Remove(ctx context.Context, userID, listingID uint) error
	List(ctx context.Context, userID uint) ([]models.ListingSummary, error)
}

type WatchlistHandler struct {
	service WatchlistServiceInterface
}

func NewWatchlistHandler(service WatchlistServiceInterface) *WatchlistHandler {
	return &WatchlistHandler{service: service}
}

// WatchlistPageHandler handles GET /watchlist
func (h *WatchlistHandler) WatchlistPageHandler(c *gin.Context) {
	userID, ok := helpers.RequireUser(c, "WatchlistPageHandler")
	if !ok {
		return
	}

	summaries, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		helpers.RespondError(c, "WatchlistPageHandler", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponses(summaries), "watchlist retrieved successfully")
}

// AddHandler handles POST /listings/:listing_id/watchlist
func (h *WatchlistHandler) AddHandler(c *gin.Context) {
	h.update(c, "AddWatchlistHandler", true)
}

// RemoveHandler handles DELETE /listings/:listing_id/watchlist
func (h *WatchlistHandler) RemoveHandler(c *gin.Context) {
	h.update(c, "RemoveWatchlistHandler", false)
}

func (h *WatchlistHandler) update(c *gin.Context, handlerName string, watch bool) {
	userID, ok := helpers.RequireUser(c, handlerName)
	if !ok {
		return
	}
	listingID, err := helpers.ParseIDParam(c, "listing_id")
	if err != nil {
		helpers.RespondError(c, handlerName, err, nil)
		return
	}

	if watch {
		err = h.service.Add(c.Request.Context(), userID, listingID)
	} else {
		err = h.service.Remove(c.Request.Context(), userID, listingID)
	}
	if err != nil {
		helpers.RespondError(c, handlerName, err, map[string]any{"listing_id": listingID, "user_id": userID})
		return
	}

	message := "removed from watchlist"
	if watch {
		message = "added to watchlist"
	}
	utils.JSONResponse(c, http.StatusOK, helpers.WatchlistResponse{ListingID: listingID, Watching: watch}, message)
	helpers.LogSuccess(handlerName, message, map[string]any{"listing_id": listingID, "user_id": userID})
}
