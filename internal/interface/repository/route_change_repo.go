package repository

import (
	"context"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormRouteChangeRepository implements the RouteChangeRepository interface
type GormRouteChangeRepository struct {
	db *gorm.DB
}

// NewGormRouteChangeRepository creates a new GORM route change repository
func NewGormRouteChangeRepository(db *gorm.DB) repository.RouteChangeRepository {
	return &GormRouteChangeRepository{
		db: db,
	}
}

// Record appends changes to the history
func (r *GormRouteChangeRepository) Record(ctx context.Context, changes []*entity.RouteChange) error {
	if len(changes) == 0 {
		return nil
	}

	models := make([]RouteChangeRecord, 0, len(changes))
	for _, c := range changes {
		models = append(models, RouteChangeRecord{
			RouteID:   c.RouteID,
			SearchID:  c.SearchID,
			Field:     c.Field,
			OldValue:  c.OldValue,
			NewValue:  c.NewValue,
			Applied:   c.Applied,
			ChangedAt: c.ChangedAt,
		})
	}

	if err := conn(ctx, r.db).Create(&models).Error; err != nil {
		return err
	}

	for i := range models {
		changes[i].ID = models[i].ID
	}
	return nil
}

// FindByRouteID returns the history of a route in recording order
func (r *GormRouteChangeRepository) FindByRouteID(ctx context.Context, routeID string) ([]*entity.RouteChange, error) {
	var models []RouteChangeRecord
	result := conn(ctx, r.db).Where("route_id = ?", routeID).Order("id").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	changes := make([]*entity.RouteChange, 0, len(models))
	for _, m := range models {
		changes = append(changes, &entity.RouteChange{
			ID:        m.ID,
			RouteID:   m.RouteID,
			SearchID:  m.SearchID,
			Field:     m.Field,
			OldValue:  m.OldValue,
			NewValue:  m.NewValue,
			Applied:   m.Applied,
			ChangedAt: m.ChangedAt,
		})
	}
	return changes, nil
}

// DeleteByRouteIDs removes the history of the given routes
func (r *GormRouteChangeRepository) DeleteByRouteIDs(ctx context.Context, routeIDs []string) error {
	if len(routeIDs) == 0 {
		return nil
	}
	return conn(ctx, r.db).Where("route_id IN ?", routeIDs).Delete(&RouteChangeRecord{}).Error
}
