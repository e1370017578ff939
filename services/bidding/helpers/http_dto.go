package helpers

import (
	"fmt"
	"time"

	"auction-site/internal/models"
)

// Request DTOs. Amounts are strings so malformed input reaches amount parsing.
type PlaceBidRequest struct {
	Amount string `json:"amount" form:"amount" binding:"required"`
}

type CreateListingRequest struct {
	Title         string `json:"title" form:"title" binding:"required,max=128"`
	Category      string `json:"category" form:"category" binding:"required"`
	OtherCategory string `json:"other_category" form:"other_category"`
	Detail        string `json:"detail" form:"detail" binding:"max=512"`
	StartingPrice string `json:"starting_price" form:"starting_price" binding:"required"`
	ImageURL      string `json:"image_url" form:"image_url"`
}

type CommentRequest struct {
	Comment string `json:"comment" form:"comment" binding:"required"`
}

type RegisterRequest struct {
	Username     string `json:"username" form:"username" binding:"required,max=150"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password" binding:"required"`
	Confirmation string `json:"confirmation" form:"confirmation"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Response DTOs
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type BidResponse struct {
	BidID     uint   `json:"bid_id"`
	ListingID uint   `json:"listing_id"`
	BidderID  uint   `json:"bidder_id"`
	Amount    string `json:"amount"`
	IsSeed    bool   `json:"is_seed"`
	CreatedAt string `json:"created_at"`
}

type BidTooLowResponse struct {
	CurrentBid string `json:"current_bid"`
}

type ListingResponse struct {
	ID            uint             `json:"id"`
	Title         string           `json:"title"`
	Detail        string           `json:"detail"`
	ImageURL      string           `json:"image_url"`
	Category      CategoryResponse `json:"category"`
	Lister        UserResponse     `json:"lister"`
	StartingPrice string           `json:"starting_price"`
	CurrentBid    string           `json:"current_bid"`
	CurrentBidder *UserResponse    `json:"current_bidder"`
	Active        bool             `json:"active"`
	Winner        *UserResponse    `json:"winner"`
	CreatedAt     string           `json:"created_at"`
}

type CommentResponse struct {
	ID        uint         `json:"id"`
	Author    UserResponse `json:"author"`
	Text      string       `json:"text"`
	CreatedAt string       `json:"created_at"`
}

type ListingPageResponse struct {
	Listing            ListingResponse   `json:"listing"`
	BidCount           int64             `json:"bid_count"`
	Comments           []CommentResponse `json:"comments"`
	IsOwner            bool              `json:"is_owner"`
	WatchlistStatus    *bool             `json:"watchlist_status,omitempty"`
	WatchlistItemCount *int64            `json:"watchlist_item_count,omitempty"`
	Outcome            string            `json:"outcome,omitempty"`
}

type ClosedListingsResponse struct {
	Listings    []ListingResponse `json:"listings"`
	WonListings []ListingResponse `json:"won_listings"`
}

type CategoryListingsResponse struct {
	Category CategoryResponse  `json:"category"`
	Listings []ListingResponse `json:"listings"`
}

type CloseResponse struct {
	Listing ListingResponse `json:"listing"`
	Outcome string          `json:"outcome"`
}

type WatchlistResponse struct {
	ListingID uint `json:"listing_id"`
	Watching  bool `json:"watching"`
}

type SessionResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

func NewBidResponse(b models.Bid) BidResponse {
	return BidResponse{
		BidID:     b.ID,
		ListingID: b.ListingID,
		BidderID:  b.BidderID,
		Amount:    b.Amount.StringFixed(2),
		IsSeed:    b.IsSeed,
		CreatedAt: formatTime(b.CreatedAt),
	}
}

func NewCategoryResponses(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}

// NewListingResponse flattens a listing and its standing
func NewListingResponse(l models.Listing, s models.Standing) ListingResponse {
	resp := ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Detail:        l.Detail,
		ImageURL:      l.ImageURL,
		Category:      CategoryResponse{ID: l.Category.ID, Name: l.Category.Name},
		Lister:        NewUserResponse(l.Lister),
		StartingPrice: l.StartingPrice.StringFixed(2),
		CurrentBid:    s.Amount.StringFixed(2),
		Active:        l.Active,
		CreatedAt:     formatTime(l.CreatedAt),
	}
	if s.BidderID != nil {
		resp.CurrentBidder = &UserResponse{ID: *s.BidderID, Username: s.BidderName}
	}
	if l.Winner != nil {
		winner := NewUserResponse(*l.Winner)
		resp.Winner = &winner
	} else if l.WinnerID != nil {
		resp.Winner = &UserResponse{ID: *l.WinnerID}
	}
	return resp
}

func NewListingResponses(summaries []models.ListingSummary) []ListingResponse {
	out := make([]ListingResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, NewListingResponse(s.Listing, s.Standing))
	}
	return out
}

func NewCommentResponses(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentResponse{
			ID:        c.ID,
			Author:    NewUserResponse(c.Author),
			Text:      c.Text,
			CreatedAt: formatTime(c.CreatedAt),
		})
	}
	return out
}

// Outcome is the message shown on a closed listing: a congratulation for the
// winner, a plain notice for everyone else. Active listings have none.
func Outcome(l models.Listing, viewerID uint, viewerName string) string {
	if l.Active {
		return ""
	}
	if l.WinnerID != nil && viewerID != 0 && *l.WinnerID == viewerID {
		return fmt.Sprintf("Congratulations %s, you won this auction!!", viewerName)
	}
	return "This Auction is Closed!!!"
}
