package utils

import (
	"fmt"
	"strings"

	"auction-site/internal/biddingerrors"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount stored exactly by every supported driver.
// SQLite keeps decimal columns as REAL, which holds 15 significant digits.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

// ParseAmount parses a money amount with at most two decimal places.
// Negative, oversized and malformed input fails with ErrInvalidAmount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", biddingerrors.ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", biddingerrors.ErrInvalidAmount, raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative", biddingerrors.ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, fmt.Errorf("%w: at most two decimal places allowed", biddingerrors.ErrInvalidAmount)
	}
	if amount.GreaterThan(MaxAmount) {
		return decimal.Zero, fmt.Errorf("%w: amount must not exceed %s", biddingerrors.ErrInvalidAmount, MaxAmount.StringFixed(2))
	}
	return amount, nil
}
