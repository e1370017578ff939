package watchlist

import (
	"context"
	"fmt"

	"auction-site/internal/biddingerrors"
	"auction-site/internal/models"
	"auction-site/internal/repository"
)

// StandingReader computes the current standing for a loaded listing
type StandingReader interface {
	StandingOf(ctx context.Context, listing models.Listing) (models.Standing, error)
}

// WatchlistService manages per-user watchlist membership
type WatchlistService struct {
	repo      repository.AuctionDB
	standings StandingReader
}

// NewWatchlistService creates a new WatchlistService instance
func NewWatchlistService(repo repository.AuctionDB, standings StandingReader) *WatchlistService {
	return &WatchlistService{repo: repo, standings: standings}
}

// Add puts a listing on the user's watchlist. Adding twice is a no-op.
func (s *WatchlistService) Add(ctx context.Context, userID, listingID uint) error {
	if userID == 0 || listingID == 0 {
		return fmt.Errorf("service: %w - user and listing are required", biddingerrors.ErrInvalidInput)
	}
	if _, err := s.repo.GetListing(ctx, listingID); err != nil {
		return fmt.Errorf("service: failed to get listing %d: %w", listingID, err)
	}
	if err := s.repo.AddWatchlistEntry(ctx, userID, listingID); err != nil {
		return fmt.Errorf("service: failed to watch listing %d: %w", listingID, err)
	}
	return nil
}

// Remove takes a listing off the user's watchlist. Removing a missing entry is a no-op.
func (s *WatchlistService) Remove(ctx context.Context, userID, listingID uint) error {
	return Unwatch(ctx, s.repo, userID, listingID)
}

// Unwatch removes a watchlist entry through db, which may be bound to a
// caller's transaction. All watchlist removals go through here.
func Unwatch(ctx context.Context, db repository.AuctionDB, userID, listingID uint) error {
	if userID == 0 || listingID == 0 {
		return fmt.Errorf("service: %w - user and listing are required", biddingerrors.ErrInvalidInput)
	}
	if err := db.RemoveWatchlistEntry(ctx, userID, listingID); err != nil {
		return fmt.Errorf("service: failed to unwatch listing %d: %w", listingID, err)
	}
	return nil
}

func (s *WatchlistService) Contains(ctx context.Context, userID, listingID uint) (bool, error) {
	ok, err := s.repo.HasWatchlistEntry(ctx, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("service: failed to check watchlist: %w", err)
	}
	return ok, nil
}

// Count includes closed listings that are still on the watchlist
func (s *WatchlistService) Count(ctx context.Context, userID uint) (int64, error) {
	n, err := s.repo.CountWatchlistEntries(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("service: failed to count watchlist: %w", err)
	}
	return n, nil
}

// List returns the watched listings sorted by title
func (s *WatchlistService) List(ctx context.Context, userID uint) ([]models.ListingSummary, error) {
	listings, err := s.repo.ListWatchedListings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list watchlist: %w", err)
	}

	summaries := make([]models.ListingSummary, 0, len(listings))
	for _, l := range listings {
		standing, err := s.standings.StandingOf(ctx, l)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ListingSummary{Listing: l, Standing: standing})
	}
	return summaries, nil
}
