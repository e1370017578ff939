package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-site/internal/biddingerrors"
	"auction-site/internal/models"
	"auction-site/internal/repository"
	watchlist "auction-site/internal/watchlistService"
	"auction-site/utils"
)

// StandingCache is an optional read-through cache for listing standings.
// Fill must refuse to store when the listing was invalidated after version was read.
type StandingCache interface {
	Get(ctx context.Context, listingID uint) (models.Standing, bool, error)
	Version(ctx context.Context, listingID uint) (int64, error)
	Fill(ctx context.Context, standing models.Standing, version int64) (bool, error)
	Invalidate(ctx context.Context, listingID uint) error
}

// Option configures a BiddingService
type Option func(*BiddingService)

// WithCache enables the standing cache on read paths
func WithCache(cache StandingCache) Option {
	return func(s *BiddingService) {
		s.cache = cache
	}
}

// WithCloseOwnerOnly restricts closing an auction to the user who listed it
func WithCloseOwnerOnly(ownerOnly bool) Option {
	return func(s *BiddingService) {
		s.closeOwnerOnly = ownerOnly
	}
}

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo           repository.AuctionDB
	cache          StandingCache
	closeOwnerOnly bool
	now            func() time.Time
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, opts ...Option) *BiddingService {
	s := &BiddingService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentStanding returns the current bid of a listing and who placed it
func (s *BiddingService) CurrentStanding(ctx context.Context, listingID uint) (models.Standing, error) {
	return s.cached(ctx, listingID, func() (models.Standing, error) {
		listing, err := s.repo.GetListing(ctx, listingID)
		if err != nil {
			return models.Standing{}, fmt.Errorf("service: failed to get listing %d: %w", listingID, err)
		}
		return evaluate(ctx, s.repo, listing)
	})
}

// StandingOf evaluates an already loaded listing
func (s *BiddingService) StandingOf(ctx context.Context, listing models.Listing) (models.Standing, error) {
	return s.cached(ctx, listing.ID, func() (models.Standing, error) {
		return evaluate(ctx, s.repo, listing)
	})
}

// cached serves a standing from the cache, loading and filling it on a miss.
// The version is read before loading so a bid committed meanwhile wins.
func (s *BiddingService) cached(ctx context.Context, listingID uint, load func() (models.Standing, error)) (models.Standing, error) {
	if s.cache == nil {
		return load()
	}

	standing, found, err := s.cache.Get(ctx, listingID)
	if err != nil {
		utils.Warn("standing cache read failed", map[string]any{"listing_id": listingID, "error": err.Error()})
	} else if found {
		return standing, nil
	}

	version, versionErr := s.cache.Version(ctx, listingID)
	standing, err = load()
	if err != nil {
		return models.Standing{}, err
	}
	if versionErr != nil {
		utils.Warn("standing cache version read failed", map[string]any{"listing_id": listingID, "error": versionErr.Error()})
		return standing, nil
	}

	stored, err := s.cache.Fill(ctx, standing, version)
	if err != nil {
		utils.Warn("standing cache write failed", map[string]any{"listing_id": listingID, "error": err.Error()})
	} else if !stored {
		utils.Debug("standing changed while loading, cache not filled", map[string]any{"listing_id": listingID})
	}
	return standing, nil
}

// evaluate reads the most recent bid of a listing. A listing without any bid
// row falls back to its starting price with no bidder.
func evaluate(ctx context.Context, repo repository.AuctionDB, listing models.Listing) (models.Standing, error) {
	bid, err := repo.GetCurrentBid(ctx, listing.ID)
	if errors.Is(err, biddingerrors.ErrNoBids) {
		utils.Warn("listing has no bids, falling back to starting price", map[string]any{"listing_id": listing.ID})
		return models.Standing{ListingID: listing.ID, Amount: listing.StartingPrice}, nil
	}
	if err != nil {
		return models.Standing{}, fmt.Errorf("service: failed to get current bid for listing %d: %w", listing.ID, err)
	}

	bidderID := bid.BidderID
	return models.Standing{
		ListingID:  listing.ID,
		Amount:     bid.Amount,
		BidderID:   &bidderID,
		BidderName: bid.Bidder.Username,
		IsSeed:     bid.IsSeed,
		PlacedAt:   bid.CreatedAt,
	}, nil
}

// PlaceBid validates and records a user's bid for a listing.
// The current bid is re-read under a row lock right before the insert, and the
// new bid is timestamped there too so the newest row is always the highest.
func (s *BiddingService) PlaceBid(ctx context.Context, listingID, userID uint, rawAmount string) (models.Bid, error) {
	if listingID == 0 || userID == 0 {
		return models.Bid{}, fmt.Errorf("service: %w - missing listingID or userID", biddingerrors.ErrInvalidInput)
	}

	amount, err := utils.ParseAmount(rawAmount)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}

	bid := models.Bid{
		ListingID: listingID,
		BidderID:  userID,
		Amount:    amount,
	}

	err = s.repo.Transaction(ctx, func(tx repository.AuctionDB) error {
		listing, err := tx.LockListing(ctx, listingID)
		if err != nil {
			return err
		}
		if !listing.Active {
			return fmt.Errorf("bid on listing %d: %w", listingID, biddingerrors.ErrListingClosed)
		}

		standing, err := evaluate(ctx, tx, listing)
		if err != nil {
			return err
		}
		if amount.LessThanOrEqual(standing.Amount) {
			return &biddingerrors.BidTooLowError{Current: standing.Amount}
		}

		bid.CreatedAt = s.now()
		if bid.CreatedAt.Before(standing.PlacedAt) {
			bid.CreatedAt = standing.PlacedAt
		}
		return tx.RecordBid(ctx, &bid)
	})
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to place bid on listing %d by user %d: %w", listingID, userID, err)
	}

	s.invalidate(ctx, listingID)
	return bid, nil
}

// CloseAuction ends an auction. The winner is the current bidder unless the
// current bid is still the seed bid, in which case nobody wins.
func (s *BiddingService) CloseAuction(ctx context.Context, listingID, userID uint) (models.CloseResult, error) {
	if listingID == 0 || userID == 0 {
		return models.CloseResult{}, fmt.Errorf("service: %w - missing listingID or userID", biddingerrors.ErrInvalidInput)
	}

	var standing models.Standing
	err := s.repo.Transaction(ctx, func(tx repository.AuctionDB) error {
		listing, err := tx.LockListing(ctx, listingID)
		if err != nil {
			return err
		}
		if !listing.Active {
			return fmt.Errorf("close listing %d: %w", listingID, biddingerrors.ErrListingClosed)
		}
		if s.closeOwnerOnly && listing.ListerID != userID {
			return fmt.Errorf("close listing %d: %w", listingID, biddingerrors.ErrNotListingOwner)
		}

		standing, err = evaluate(ctx, tx, listing)
		if err != nil {
			return err
		}

		var winnerID *uint
		if standing.BidderID != nil && !standing.IsSeed {
			winnerID = standing.BidderID
		}
		if err := tx.CloseListing(ctx, listingID, winnerID); err != nil {
			return err
		}
		return watchlist.Unwatch(ctx, tx, userID, listingID)
	})
	if err != nil {
		return models.CloseResult{}, fmt.Errorf("service: failed to close listing %d: %w", listingID, err)
	}

	s.invalidate(ctx, listingID)

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return models.CloseResult{}, fmt.Errorf("service: failed to reload listing %d: %w", listingID, err)
	}

	utils.Info("auction closed", map[string]any{
		"listing_id": listingID,
		"closed_by":  userID,
		"winner_id":  listing.WinnerID,
		"amount":     standing.Amount.StringFixed(2),
	})
	return models.CloseResult{Listing: listing, Standing: standing}, nil
}

// GetBidsForListing returns the bid history of a listing, oldest first
func (s *BiddingService) GetBidsForListing(ctx context.Context, listingID uint) ([]models.Bid, error) {
	if listingID == 0 {
		return nil, fmt.Errorf("service: %w - empty listing ID", biddingerrors.ErrInvalidInput)
	}

	if _, err := s.repo.GetListing(ctx, listingID); err != nil {
		return nil, fmt.Errorf("service: failed to get listing %d: %w", listingID, err)
	}

	bids, err := s.repo.GetBidsByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %d: %w", listingID, err)
	}
	return bids, nil
}

func (s *BiddingService) invalidate(ctx context.Context, listingID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, listingID); err != nil {
		utils.Warn("standing cache invalidation failed", map[string]any{"listing_id": listingID, "error": err.Error()})
	}
}
