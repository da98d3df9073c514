package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
)

// DateKey returns the archive key (YYYY-MM-DD) for t in its own location.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// TimeOfDay returns the HH:MM stamp recorded on a drink taken at t.
func TimeOfDay(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// ParseDate validates a YYYY-MM-DD date. "today" resolves against now.
func ParseDate(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		return DateKey(now), nil
	}
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD or 'today')", s)
	}
	return s, nil
}

// ValidateTimeFormat checks if the string matches the HH:MM format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}
