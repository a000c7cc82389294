package entity

import "errors"

var (
	// ErrNotFound is returned by repositories when a lookup matches no row
	ErrNotFound = errors.New("record not found")

	// ErrMissingField marks a search result payload without a required key
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidTimestamp marks a payload timestamp not in API_TIME_LAYOUT
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
