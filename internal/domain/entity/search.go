// internal/domain/entity/search.go
package entity

import (
	"time"
)

// Search is one captured query result set
type Search struct {
	SearchID   string
	URL        string
	CapturedAt time.Time
	RangeStart time.Time
	RangeEnd   time.Time
	Results    int
	Current    bool
}

// SearchMeta carries the capture context the API payload does not contain
type SearchMeta struct {
	URL        string
	CapturedAt time.Time // zero means now
	RangeStart time.Time
	RangeEnd   time.Time
	Current    bool
}
