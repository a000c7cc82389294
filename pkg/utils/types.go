package utils

import (
	"fmt"
	"time"

	"flightsnap-service/internal/domain/entity"
)

// Constants
const (
	// API_TIME_LAYOUT is the fixed timestamp format of the search API
	API_TIME_LAYOUT = "2006-01-02T15:04:05.000Z"
	DATE_LAYOUT     = "2006-01-02"

	AIRLINE_SEPARATOR = ","
)

// ParseAPITime parses a search API timestamp; the result is in UTC
func ParseAPITime(value string) (time.Time, error) {
	t, err := time.Parse(API_TIME_LAYOUT, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", entity.ErrInvalidTimestamp, value)
	}
	return t, nil
}

// ParseDate parses a YYYY-MM-DD date; empty input yields the zero time
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(DATE_LAYOUT, value)
}

// Midnight truncates t to the start of its day in t's location
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
