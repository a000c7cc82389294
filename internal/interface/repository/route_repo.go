package repository

import (
	"context"
	"errors"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormRouteRepository implements the RouteRepository interface
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GORM route repository
func NewGormRouteRepository(db *gorm.DB) repository.RouteRepository {
	return &GormRouteRepository{
		db: db,
	}
}

// FindByID finds a route by its external id
func (r *GormRouteRepository) FindByID(ctx context.Context, id string) (*entity.Route, error) {
	var model RouteRecord
	result := conn(ctx, r.db).Where("id = ?", id).First(&model)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return toRouteEntity(&model), nil
}

// Create inserts a new route
func (r *GormRouteRepository) Create(ctx context.Context, route *entity.Route) error {
	model := RouteRecord{
		ID:                  route.ID,
		CombinationID:       route.CombinationID,
		FlyFrom:             route.FlyFrom,
		FlyTo:               route.FlyTo,
		CityFrom:            route.CityFrom,
		CityCodeFrom:        route.CityCodeFrom,
		CityTo:              route.CityTo,
		CityCodeTo:          route.CityCodeTo,
		LocalDeparture:      route.LocalDeparture,
		LocalArrival:        route.LocalArrival,
		Airline:             route.Airline,
		FlightNo:            route.FlightNo,
		OperatingCarrier:    route.OperatingCarrier,
		OperatingFlightNo:   route.OperatingFlightNo,
		FareBasis:           route.FareBasis,
		FareCategory:        route.FareCategory,
		FareClasses:         route.FareClasses,
		ReturnFlag:          route.Return,
		BagsRecheckRequired: route.BagsRecheckRequired,
		VIConnection:        route.VIConnection,
		Guarantee:           route.Guarantee,
		Equipment:           route.Equipment,
		VehicleType:         route.VehicleType,
	}
	return conn(ctx, r.db).Create(&model).Error
}

// Update writes the new value of every given change to the stored route
func (r *GormRouteRepository) Update(ctx context.Context, id string, changes []entity.FieldChange) error {
	if len(changes) == 0 {
		return nil
	}

	values := make(map[string]interface{}, len(changes))
	for _, c := range changes {
		values[c.Field] = c.New
	}

	result := conn(ctx, r.db).Model(&RouteRecord{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// DeleteByIDs removes the given routes
func (r *GormRouteRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return conn(ctx, r.db).Where("id IN ?", ids).Delete(&RouteRecord{}).Error
}

// Count returns the number of stored routes
func (r *GormRouteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := conn(ctx, r.db).Model(&RouteRecord{}).Count(&count)
	return count, result.Error
}
