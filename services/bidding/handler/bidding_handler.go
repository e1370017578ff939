package handler

import (
	"context"
	"net/http"

	"auction-site/internal/models"
	"auction-site/services/bidding/helpers"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_service.go -package=handler

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, listingID, userID uint, amount string) (models.Bid, error)
	CloseAuction(ctx context.Context, listingID, userID uint) (models.CloseResult, error)
	GetBidsForListing(ctx context.Context, listingID uint) ([]models.Bid, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// PlaceBidHandler handles POST /listings/:listing_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	userID, ok := helpers.RequireUser(c, "PlaceBidHandler")
	if !ok {
		return
	}
	listingID, err := helpers.ParseIDParam(c, "listing_id")
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, nil)
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), listingID, userID, req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    userID,
			"amount":     req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.ID,
		"listing_id": listingID,
		"user_id":    userID,
		"amount":     bid.Amount.StringFixed(2),
	})
}

// GetBidsByListingHandler handles GET /listings/:listing_id/bids
func (h *BiddingHandler) GetBidsByListingHandler(c *gin.Context) {
	listingID, err := helpers.ParseIDParam(c, "listing_id")
	if err != nil {
		helpers.RespondError(c, "GetBidsByListingHandler", err, nil)
		return
	}

	bids, err := h.service.GetBidsForListing(c.Request.Context(), listingID)
	if err != nil {
		helpers.RespondError(c, "GetBidsByListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.NewBidResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByListingHandler", "bids retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(resp),
	})
}

// CloseAuctionHandler handles POST /listings/:listing_id/close
func (h *BiddingHandler) CloseAuctionHandler(c *gin.Context) {
	userID, ok := helpers.RequireUser(c, "CloseAuctionHandler")
	if !ok {
		return
	}
	listingID, err := helpers.ParseIDParam(c, "listing_id")
	if err != nil {
		helpers.RespondError(c, "CloseAuctionHandler", err, nil)
		return
	}

	result, err := h.service.CloseAuction(c.Request.Context(), listingID, userID)
	if err != nil {
		helpers.RespondError(c, "CloseAuctionHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    userID,
		})
		return
	}

	resp := helpers.CloseResponse{
		Listing: helpers.NewListingResponse(result.Listing, result.Standing),
		Outcome: helpers.Outcome(result.Listing, userID, helpers.CurrentUsername(c)),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "auction closed")
	helpers.LogSuccess("CloseAuctionHandler", "auction closed", map[string]any{
		"listing_id": listingID,
		"user_id":    userID,
		"winner_id":  result.Listing.WinnerID,
	})
}
