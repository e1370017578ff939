package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// User is a registered participant of the auction site
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(254)" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// WatchlistCounter reports how many listings a user watches
type WatchlistCounter interface {
	Count(ctx context.Context, userID uint) (int64, error)
}

// WatchlistItemCount asks the watchlist manager for the user's membership size
func (u User) WatchlistItemCount(ctx context.Context, counter WatchlistCounter) (int64, error) {
	return counter.Count(ctx, u.ID)
}

// Category groups listings; looked up by exact name
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(128);index;not null" json:"name"`
}

// Listing represents an item up for auction
type Listing struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"type:varchar(128);not null" json:"title"`
	Detail        string          `gorm:"type:varchar(512)" json:"detail"`
	StartingPrice decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"starting_price"`
	ImageURL      string          `gorm:"type:varchar(200)" json:"image_url"`
	CategoryID    uint            `gorm:"index;not null" json:"category_id"`
	Category      Category        `gorm:"foreignKey:CategoryID" json:"category"`
	ListerID      uint            `gorm:"index;not null" json:"lister_id"`
	Lister        User            `gorm:"foreignKey:ListerID" json:"lister"`
	Active        bool            `gorm:"not null;default:true;index" json:"active"`
	WinnerID      *uint           `json:"winner_id,omitempty"`
	Winner        *User           `gorm:"foreignKey:WinnerID" json:"winner,omitempty"`
	CreatedAt     time.Time       `gorm:"<-:create" json:"created_at"`

	Bids     []Bid     `gorm:"foreignKey:ListingID" json:"-"`
	Comments []Comment `gorm:"foreignKey:ListingID" json:"-"`
}

// Bid is an append-only offer on a listing
type Bid struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ListingID uint            `gorm:"not null;index:idx_bids_listing_created,priority:1" json:"listing_id"`
	BidderID  uint            `gorm:"index;not null" json:"bidder_id"`
	Bidder    User            `gorm:"foreignKey:BidderID" json:"bidder"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	IsSeed    bool            `gorm:"not null;default:false" json:"is_seed"`
	CreatedAt time.Time       `gorm:"<-:create;index:idx_bids_listing_created,priority:2" json:"created_at"`
}

// Comment is free text left on a listing
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListingID uint      `gorm:"index;not null" json:"listing_id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
}

// WatchlistEntry is one (user, listing) membership row
type WatchlistEntry struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ListingID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"listing_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Listing   Listing   `gorm:"foreignKey:ListingID" json:"listing"`
	CreatedAt time.Time `json:"created_at"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist"
}

// Standing is the current bid of a listing together with who placed it.
// BidderID is nil only when the listing has no bid rows at all.
type Standing struct {
	ListingID  uint            `json:"listing_id"`
	Amount     decimal.Decimal `json:"amount"`
	BidderID   *uint           `json:"bidder_id,omitempty"`
	BidderName string          `json:"bidder_name,omitempty"`
	IsSeed     bool            `json:"is_seed"`
	PlacedAt   time.Time       `json:"placed_at,omitempty"`
}

// ListingSummary pairs a listing with its current standing
type ListingSummary struct {
	Listing  Listing
	Standing Standing
}

// ListingView is everything the listing page needs
type ListingView struct {
	Listing            Listing
	Standing           Standing
	BidCount           int64
	Comments           []Comment
	Watching           bool
	WatchlistItemCount int64
}

// CloseResult describes a listing right after its auction closed
type CloseResult struct {
	Listing  Listing
	Standing Standing
}
