package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"auction-site/internal/biddingerrors"
	"auction-site/internal/models"
	"auction-site/internal/repository"
	"auction-site/utils"

	"github.com/go-playground/validator/v10"
)

// OtherCategory is the category choice that asks for a new category name
const OtherCategory = "Other"

// Evaluator reports the current standing of listings
type Evaluator interface {
	StandingOf(ctx context.Context, listing models.Listing) (models.Standing, error)
}

// WatchlistReader answers watchlist questions for the listing page
type WatchlistReader interface {
	Contains(ctx context.Context, userID, listingID uint) (bool, error)
	Count(ctx context.Context, userID uint) (int64, error)
}

// NewListing is the input for CreateListing
type NewListing struct {
	Title         string `validate:"required,max=128"`
	Category      string `validate:"required,max=128"`
	OtherCategory string `validate:"required_if=Category Other,max=128"`
	Detail        string `validate:"max=512"`
	StartingPrice string
	ImageURL      string `validate:"omitempty,url,max=200"`
	ListerID      uint   `validate:"required"`
}

// ListingService covers listing creation, comments and the browse views
type ListingService struct {
	repo      repository.AuctionDB
	evaluator Evaluator
	watchlist WatchlistReader
	validate  *validator.Validate
}

// NewListingService creates a new ListingService instance
func NewListingService(repo repository.AuctionDB, evaluator Evaluator, watchlist WatchlistReader) *ListingService {
	return &ListingService{
		repo:      repo,
		evaluator: evaluator,
		watchlist: watchlist,
		validate:  validator.New(),
	}
}

// CreateListing stores a listing, resolving or creating its category, and
// seeds it with a bid for the starting price in the same transaction.
func (s *ListingService) CreateListing(ctx context.Context, in NewListing) (models.Listing, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.OtherCategory = strings.TrimSpace(in.OtherCategory)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := s.validate.Struct(in); err != nil {
		return models.Listing{}, fmt.Errorf("service: %w - %s", biddingerrors.ErrInvalidInput, describe(err))
	}

	price, err := utils.ParseAmount(in.StartingPrice)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: starting price: %w", err)
	}

	listing := models.Listing{
		Title:         in.Title,
		Detail:        in.Detail,
		StartingPrice: price,
		ImageURL:      in.ImageURL,
		ListerID:      in.ListerID,
		Active:        true,
	}

	err = s.repo.Transaction(ctx, func(tx repository.AuctionDB) error {
		category, err := resolveCategory(ctx, tx, in)
		if err != nil {
			return err
		}
		listing.CategoryID = category.ID
		listing.Category = category

		if err := tx.CreateListing(ctx, &listing); err != nil {
			return err
		}

		seed := models.Bid{
			ListingID: listing.ID,
			BidderID:  in.ListerID,
			Amount:    price,
			IsSeed:    true,
		}
		return tx.RecordBid(ctx, &seed)
	})
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to create listing %q: %w", in.Title, err)
	}

	utils.Info("listing created", map[string]any{
		"listing_id": listing.ID,
		"lister_id":  in.ListerID,
		"category":   listing.Category.Name,
		"price":      price.StringFixed(2),
	})
	return listing, nil
}

func resolveCategory(ctx context.Context, tx repository.AuctionDB, in NewListing) (models.Category, error) {
	if in.Category == OtherCategory {
		category := models.Category{Name: in.OtherCategory}
		if err := tx.CreateCategory(ctx, &category); err != nil {
			return models.Category{}, err
		}
		return category, nil
	}
	return tx.GetCategoryByName(ctx, in.Category)
}

// AddComment appends a comment to an active listing
func (s *ListingService) AddComment(ctx context.Context, listingID, userID uint, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if listingID == 0 || userID == 0 || text == "" {
		return models.Comment{}, fmt.Errorf("service: %w - comment text is required", biddingerrors.ErrInvalidInput)
	}

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to get listing %d: %w", listingID, err)
	}
	if !listing.Active {
		return models.Comment{}, fmt.Errorf("service: comment on listing %d: %w", listingID, biddingerrors.ErrListingClosed)
	}

	comment := models.Comment{ListingID: listingID, AuthorID: userID, Text: text}
	if err := s.repo.AddComment(ctx, &comment); err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to add comment: %w", err)
	}
	return comment, nil
}

// ActiveListings returns open listings with their current bids
func (s *ListingService) ActiveListings(ctx context.Context) ([]models.ListingSummary, error) {
	active := true
	listings, err := s.repo.ListListings(ctx, repository.ListingFilter{Active: &active})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list active listings: %w", err)
	}
	return s.summarize(ctx, listings)
}

// ClosedListings returns closed listings plus the ones the viewer won.
// A zero viewerID means an anonymous viewer with no won listings.
func (s *ListingService) ClosedListings(ctx context.Context, viewerID uint) (closed, won []models.ListingSummary, err error) {
	inactive := false
	listings, err := s.repo.ListListings(ctx, repository.ListingFilter{Active: &inactive})
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to list closed listings: %w", err)
	}
	closed, err = s.summarize(ctx, listings)
	if err != nil {
		return nil, nil, err
	}

	won = []models.ListingSummary{}
	if viewerID != 0 {
		for _, summary := range closed {
			if summary.Listing.WinnerID != nil && *summary.Listing.WinnerID == viewerID {
				won = append(won, summary)
			}
		}
	}
	return closed, won, nil
}

// Categories lists every category
func (s *ListingService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

// ListingsByCategory returns a category and all its listings
func (s *ListingService) ListingsByCategory(ctx context.Context, categoryID uint) (models.Category, []models.ListingSummary, error) {
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return models.Category{}, nil, fmt.Errorf("service: failed to get category %d: %w", categoryID, err)
	}

	listings, err := s.repo.ListListings(ctx, repository.ListingFilter{CategoryID: categoryID})
	if err != nil {
		return models.Category{}, nil, fmt.Errorf("service: failed to list category %d: %w", categoryID, err)
	}

	summaries, err := s.summarize(ctx, listings)
	if err != nil {
		return models.Category{}, nil, err
	}
	return category, summaries, nil
}

// ListingView gathers the listing page context. Watchlist fields are only
// filled for a logged-in viewer (viewerID != 0).
func (s *ListingService) ListingView(ctx context.Context, listingID, viewerID uint) (models.ListingView, error) {
	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return models.ListingView{}, fmt.Errorf("service: failed to get listing %d: %w", listingID, err)
	}

	standing, err := s.evaluator.StandingOf(ctx, listing)
	if err != nil {
		return models.ListingView{}, err
	}

	bidCount, err := s.repo.CountBids(ctx, listingID)
	if err != nil {
		return models.ListingView{}, fmt.Errorf("service: failed to count bids: %w", err)
	}

	comments, err := s.repo.ListComments(ctx, listingID)
	if err != nil {
		return models.ListingView{}, fmt.Errorf("service: failed to list comments: %w", err)
	}

	view := models.ListingView{
		Listing:  listing,
		Standing: standing,
		BidCount: bidCount,
		Comments: comments,
	}

	if viewerID != 0 {
		view.Watching, err = s.watchlist.Contains(ctx, viewerID, listingID)
		if err != nil {
			return models.ListingView{}, err
		}
		viewer := models.User{ID: viewerID}
		view.WatchlistItemCount, err = viewer.WatchlistItemCount(ctx, s.watchlist)
		if err != nil {
			return models.ListingView{}, err
		}
	}
	return view, nil
}

func (s *ListingService) summarize(ctx context.Context, listings []models.Listing) ([]models.ListingSummary, error) {
	summaries := make([]models.ListingSummary, 0, len(listings))
	for _, l := range listings {
		standing, err := s.evaluator.StandingOf(ctx, l)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ListingSummary{Listing: l, Standing: standing})
	}
	return summaries, nil
}

// describe turns validator errors into a short "field: rule" list
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
