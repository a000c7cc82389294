package repository

import (
	"context"

	"flightsnap-service/internal/domain/entity"
)

// RouteRepository defines the interface for route operations
type RouteRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Route, error)
	Create(ctx context.Context, route *entity.Route) error
	Update(ctx context.Context, id string, changes []entity.FieldChange) error
	DeleteByIDs(ctx context.Context, ids []string) error
	Count(ctx context.Context) (int64, error)
}

// RouteChangeRepository defines the interface for route change history
type RouteChangeRepository interface {
	Record(ctx context.Context, changes []*entity.RouteChange) error
	FindByRouteID(ctx context.Context, routeID string) ([]*entity.RouteChange, error)
	DeleteByRouteIDs(ctx context.Context, routeIDs []string) error
}

// Transactor runs fn in a single store transaction. Repositories called with
// the ctx handed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
