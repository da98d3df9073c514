package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
)

// ErrInvalidAmount is returned for custom amounts that are empty,
// non-numeric or outside 1..constants.MaxDrinkML.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a free-form milliliter amount typed by the user.
func ParseAmount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidAmount, raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d must be positive", ErrInvalidAmount, n)
	}
	if n > constants.MaxDrinkML {
		return 0, fmt.Errorf("%w: %d is more than %d ml", ErrInvalidAmount, n, constants.MaxDrinkML)
	}
	return n, nil
}
