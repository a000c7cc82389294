package repository

import (
	"context"
	"time"

	"flightsnap-service/internal/domain/entity"
)

// SearchRepository defines the interface for search operations
type SearchRepository interface {
	Exists(ctx context.Context, searchID string) (bool, error)
	Create(ctx context.Context, search *entity.Search) error
	FindByID(ctx context.Context, searchID string) (*entity.Search, error)
	FindAll(ctx context.Context) ([]*entity.Search, error)
	FindStale(ctx context.Context, capturedBefore time.Time) ([]*entity.Search, error)
	ClearCurrentFlags(ctx context.Context) (int64, error)
	Delete(ctx context.Context, searchID string) error
}
