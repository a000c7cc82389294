package repository

import (
	"context"

	"flightsnap-service/internal/domain/entity"
)

// ItineraryRepository defines the interface for itinerary and itinerary2route operations
type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *entity.Itinerary) error
	FindBySearchID(ctx context.Context, searchID string) ([]*entity.Itinerary, error)
	DeleteBySearchID(ctx context.Context, searchID string) error

	LinkRoute(ctx context.Context, searchID, itineraryID, routeID string) error
	RouteIDs(ctx context.Context, searchID, itineraryID string) ([]string, error)
	// ExclusiveRouteIDs returns the routes linked from searchID that no other search links
	ExclusiveRouteIDs(ctx context.Context, searchID string) ([]string, error)
	UnlinkSearch(ctx context.Context, searchID string) error
}
