package entity

import "time"

// RouteChange is one field difference seen when a stored route is ingested again
type RouteChange struct {
	ID        uint
	RouteID   string
	SearchID  string
	Field     string
	OldValue  string
	NewValue  string
	Applied   bool
	ChangedAt time.Time
}
