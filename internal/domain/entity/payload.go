// internal/domain/entity/payload.go
package entity

import (
	"time"
)

// Payload Process Status
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusSkipped   = "SKIPPED"
	StatusFailed    = "FAILED"
)

// RawPayload is an archived search API response body, kept verbatim
// including the booking tokens the relational store drops
type RawPayload struct {
	SearchID      string    `bson:"searchId"`
	URL           string    `bson:"url"`
	FetchedAt     time.Time `bson:"fetchedAt"`
	RangeStart    time.Time `bson:"rangeStart"`
	RangeEnd      time.Time `bson:"rangeEnd"`
	Body          string    `bson:"body"`
	ProcessStatus string    `bson:"processStatus"`
	ProcessedAt   time.Time `bson:"processedAt,omitempty"`
	ErrorDetail   string    `bson:"errorDetail,omitempty"`
}
