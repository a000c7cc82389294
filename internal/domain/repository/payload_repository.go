package repository

import (
	"context"

	"flightsnap-service/internal/domain/entity"
)

// PayloadRepository defines the interface for raw payload archive operations
type PayloadRepository interface {
	Save(ctx context.Context, payload *entity.RawPayload) error
	FindBySearchID(ctx context.Context, searchID string) (*entity.RawPayload, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.RawPayload, error)
	MarkAsProcessed(ctx context.Context, searchID, status, errorDetail string) error
}
