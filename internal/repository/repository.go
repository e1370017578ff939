package repository

import (
	"context"
	"errors"
	"fmt"

	"auction-site/internal/biddingerrors"
	"auction-site/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// ListingFilter narrows ListListings; zero values mean "any"
type ListingFilter struct {
	Active     *bool
	CategoryID uint
	WinnerID   uint
}

// AuctionDB defines the storage interface for the auction site
type AuctionDB interface {
	// Transaction runs fn against a repository bound to a single transaction.
	// Returning an error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(repo AuctionDB) error) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id uint) (models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateListing(ctx context.Context, listing *models.Listing) error
	GetListing(ctx context.Context, id uint) (models.Listing, error)
	LockListing(ctx context.Context, id uint) (models.Listing, error)
	ListListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
	CloseListing(ctx context.Context, id uint, winnerID *uint) error

	RecordBid(ctx context.Context, bid *models.Bid) error
	GetCurrentBid(ctx context.Context, listingID uint) (models.Bid, error)
	GetBidsByListing(ctx context.Context, listingID uint) ([]models.Bid, error)
	CountBids(ctx context.Context, listingID uint) (int64, error)

	AddComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, listingID uint) ([]models.Comment, error)

	AddWatchlistEntry(ctx context.Context, userID, listingID uint) error
	RemoveWatchlistEntry(ctx context.Context, userID, listingID uint) error
	HasWatchlistEntry(ctx context.Context, userID, listingID uint) (bool, error)
	CountWatchlistEntries(ctx context.Context, userID uint) (int64, error)
	ListWatchedListings(ctx context.Context, userID uint) ([]models.Listing, error)
}

// GormRepo is the relational implementation of AuctionDB
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo creates a repository on top of an open gorm connection
func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

// Transaction runs fn inside one database transaction
func (r *GormRepo) Transaction(ctx context.Context, fn func(repo AuctionDB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{db: tx})
	})
}

// CreateUser inserts a user; a taken username yields ErrDuplicateUsername
func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create user %s: %w", user.Username, biddingerrors.ErrDuplicateUsername)
		}
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return nil
}

// GetUserByID returns a user by primary key
func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, notFound(err, biddingerrors.ErrUserNotFound, "get user %d", id)
	}
	return user, nil
}

// GetUserByUsername returns a user by exact username
func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, notFound(err, biddingerrors.ErrUserNotFound, "get user %q", username)
	}
	return user, nil
}

// CreateCategory inserts a category row; names are not deduplicated
func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category %q: %w", category.Name, err)
	}
	return nil
}

// GetCategoryByID returns a category by primary key
func (r *GormRepo) GetCategoryByID(ctx context.Context, id uint) (models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return models.Category{}, notFound(err, biddingerrors.ErrCategoryNotFound, "get category %d", id)
	}
	return category, nil
}

// GetCategoryByName returns the oldest category with exactly this name
func (r *GormRepo) GetCategoryByName(ctx context.Context, name string) (models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&category).Error
	if err != nil {
		return models.Category{}, notFound(err, biddingerrors.ErrCategoryNotFound, "get category %q", name)
	}
	return category, nil
}

// ListCategories returns all categories ordered by name
func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name, id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateListing inserts a listing; callers pair it with the seed bid
func (r *GormRepo) CreateListing(ctx context.Context, listing *models.Listing) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(listing).Error; err != nil {
		return fmt.Errorf("create listing %q: %w", listing.Title, err)
	}
	return nil
}

// GetListing returns a listing with category, lister and winner loaded
func (r *GormRepo) GetListing(ctx context.Context, id uint) (models.Listing, error) {
	var listing models.Listing
	err := r.withListingRelations(r.db.WithContext(ctx)).First(&listing, id).Error
	if err != nil {
		return models.Listing{}, notFound(err, biddingerrors.ErrListingNotFound, "get listing %d", id)
	}
	return listing, nil
}

// LockListing reads a listing row with FOR UPDATE so that concurrent
// bid and close transactions on the same listing serialize.
func (r *GormRepo) LockListing(ctx context.Context, id uint) (models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&listing, id).Error
	if err != nil {
		return models.Listing{}, notFound(err, biddingerrors.ErrListingNotFound, "lock listing %d", id)
	}
	return listing, nil
}

// ListListings returns listings matching filter, newest first
func (r *GormRepo) ListListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	q := r.withListingRelations(r.db.WithContext(ctx))
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.WinnerID != 0 {
		q = q.Where("winner_id = ?", filter.WinnerID)
	}

	var listings []models.Listing
	if err := q.Order("created_at DESC, id DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// CloseListing flips a listing to closed and records its winner
func (r *GormRepo) CloseListing(ctx context.Context, id uint, winnerID *uint) error {
	res := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": false, "winner_id": winnerID})
	if res.Error != nil {
		return fmt.Errorf("close listing %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("close listing %d: %w", id, biddingerrors.ErrListingNotFound)
	}
	return nil
}

// RecordBid appends a bid; bids are never updated afterwards
func (r *GormRepo) RecordBid(ctx context.Context, bid *models.Bid) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(bid).Error; err != nil {
		return fmt.Errorf("record bid for listing %d: %w", bid.ListingID, r.insertError(ctx, err, bid.BidderID))
	}
	return nil
}

// GetCurrentBid returns the most recent bid of a listing together with its bidder
func (r *GormRepo) GetCurrentBid(ctx context.Context, listingID uint) (models.Bid, error) {
	var bid models.Bid
	err := r.db.WithContext(ctx).
		Preload("Bidder").
		Where("listing_id = ?", listingID).
		Order("created_at DESC, id DESC").
		First(&bid).Error
	if err != nil {
		return models.Bid{}, notFound(err, biddingerrors.ErrNoBids, "get current bid for listing %d", listingID)
	}
	return bid, nil
}

// GetBidsByListing returns all bids of a listing, oldest first
func (r *GormRepo) GetBidsByListing(ctx context.Context, listingID uint) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Preload("Bidder").
		Where("listing_id = ?", listingID).
		Order("created_at, id").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("get bids for listing %d: %w", listingID, err)
	}
	return bids, nil
}

// CountBids returns the number of bids on a listing, seed bid included
func (r *GormRepo) CountBids(ctx context.Context, listingID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Bid{}).Where("listing_id = ?", listingID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count bids for listing %d: %w", listingID, err)
	}
	return count, nil
}

// AddComment appends a comment to a listing
func (r *GormRepo) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("add comment to listing %d: %w", comment.ListingID, r.insertError(ctx, err, comment.AuthorID))
	}
	return nil
}

// ListComments returns the comments of a listing, oldest first
func (r *GormRepo) ListComments(ctx context.Context, listingID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("listing_id = ?", listingID).
		Order("created_at, id").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments for listing %d: %w", listingID, err)
	}
	return comments, nil
}

// AddWatchlistEntry inserts the membership row unless it already exists
func (r *GormRepo) AddWatchlistEntry(ctx context.Context, userID, listingID uint) error {
	entry := models.WatchlistEntry{UserID: userID, ListingID: listingID}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("add listing %d to watchlist of user %d: %w", listingID, userID, err)
	}
	return nil
}

// RemoveWatchlistEntry deletes the membership row if present
func (r *GormRepo) RemoveWatchlistEntry(ctx context.Context, userID, listingID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.WatchlistEntry{}).Error
	if err != nil {
		return fmt.Errorf("remove listing %d from watchlist of user %d: %w", listingID, userID, err)
	}
	return nil
}

// HasWatchlistEntry reports membership of a listing in a user's watchlist
func (r *GormRepo) HasWatchlistEntry(ctx context.Context, userID, listingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WatchlistEntry{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check watchlist of user %d: %w", userID, err)
	}
	return count > 0, nil
}

// CountWatchlistEntries returns the size of a user's watchlist
func (r *GormRepo) CountWatchlistEntries(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WatchlistEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count watchlist of user %d: %w", userID, err)
	}
	return count, nil
}

// ListWatchedListings returns the listings on a user's watchlist
func (r *GormRepo) ListWatchedListings(ctx context.Context, userID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.withListingRelations(r.db.WithContext(ctx)).
		Joins("JOIN watchlist ON watchlist.listing_id = listings.id").
		Where("watchlist.user_id = ?", userID).
		Order("listings.title, listings.id").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("list watchlist of user %d: %w", userID, err)
	}
	return listings, nil
}

func (r *GormRepo) withListingRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Category").Preload("Lister").Preload("Winner")
}

// notFound maps gorm.ErrRecordNotFound to the given domain sentinel
// insertError explains a failed bid or comment insert. An unknown user wins
// over an unknown listing; other failures pass through.
func (r *GormRepo) insertError(ctx context.Context, err error, userID uint) error {
	var n int64
	if countErr := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; countErr == nil && n == 0 {
		return biddingerrors.ErrUserNotFound
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return biddingerrors.ErrListingNotFound
	}
	return err
}

func notFound(err, sentinel error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", msg, sentinel)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
