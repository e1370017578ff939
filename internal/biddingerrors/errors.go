package biddingerrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Repository-level errors
var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNoBids           = errors.New("no bids found for listing")
)

// business logic errors
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrListingClosed      = errors.New("listing is closed")
	ErrNotListingOwner    = errors.New("only the lister can close this auction")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrPasswordMismatch   = errors.New("passwords must match")
	ErrInvalidCredentials = errors.New("invalid username and/or password")
	ErrUnauthenticated    = errors.New("authentication required")
)

// BidTooLowError reports the bid a rejected amount failed to beat
type BidTooLowError struct {
	Current decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("%s: current bid is %s", ErrBidTooLow, e.Current.StringFixed(2))
}

func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}
