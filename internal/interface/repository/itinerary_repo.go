package repository

import (
	"context"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItineraryRepository implements the ItineraryRepository interface
type GormItineraryRepository struct {
	db *gorm.DB
}

// NewGormItineraryRepository creates a new GORM itinerary repository
func NewGormItineraryRepository(db *gorm.DB) repository.ItineraryRepository {
	return &GormItineraryRepository{
		db: db,
	}
}

// Create inserts the itinerary row. Its routes are linked separately.
func (r *GormItineraryRepository) Create(ctx context.Context, itinerary *entity.Itinerary) error {
	model := ItineraryRecord{
		SearchID:                    itinerary.SearchID,
		ID:                          itinerary.ID,
		FlyFrom:                     itinerary.FlyFrom,
		FlyTo:                       itinerary.FlyTo,
		CityFrom:                    itinerary.CityFrom,
		CityCodeFrom:                itinerary.CityCodeFrom,
		CityTo:                      itinerary.CityTo,
		CityCodeTo:                  itinerary.CityCodeTo,
		CountryFromCode:             itinerary.CountryFromCode,
		CountryFromName:             itinerary.CountryFromName,
		CountryToCode:               itinerary.CountryToCode,
		CountryToName:               itinerary.CountryToName,
		LocalDeparture:              itinerary.LocalDeparture,
		LocalArrival:                itinerary.LocalArrival,
		NightsInDest:                itinerary.NightsInDest,
		Quality:                     itinerary.Quality,
		Distance:                    itinerary.Distance,
		DurationDeparture:           itinerary.DurationDeparture,
		DurationReturn:              itinerary.DurationReturn,
		Price:                       itinerary.Price,
		ConversionEUR:               itinerary.ConversionEUR,
		AvailabilitySeats:           itinerary.AvailabilitySeats,
		Airlines:                    itinerary.Airlines,
		BookingToken:                itinerary.BookingToken,
		DeepLink:                    itinerary.DeepLink,
		FacilitatedBookingAvailable: itinerary.FacilitatedBookingAvailable,
		PnrCount:                    itinerary.PnrCount,
		HasAirportChange:            itinerary.HasAirportChange,
		TechnicalStops:              itinerary.TechnicalStops,
		ThrowAwayTicketing:          itinerary.ThrowAwayTicketing,
		HiddenCityTicketing:         itinerary.HiddenCityTicketing,
		VirtualInterlining:          itinerary.VirtualInterlining,
	}
	return conn(ctx, r.db).Create(&model).Error
}

// FindBySearchID returns the itineraries of a search without their routes
func (r *GormItineraryRepository) FindBySearchID(ctx context.Context, searchID string) ([]*entity.Itinerary, error) {
	var models []ItineraryRecord
	result := conn(ctx, r.db).Where("search_id = ?", searchID).Order("id").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	itineraries := make([]*entity.Itinerary, 0, len(models))
	for i := range models {
		itineraries = append(itineraries, toItineraryEntity(&models[i]))
	}
	return itineraries, nil
}

// DeleteBySearchID removes every itinerary of a search
func (r *GormItineraryRepository) DeleteBySearchID(ctx context.Context, searchID string) error {
	return conn(ctx, r.db).Where("search_id = ?", searchID).Delete(&ItineraryRecord{}).Error
}

// LinkRoute adds an itinerary2route row. Linking the same leg twice is a no-op.
func (r *GormItineraryRepository) LinkRoute(ctx context.Context, searchID, itineraryID, routeID string) error {
	link := ItineraryRouteRecord{
		SearchID:    searchID,
		ItineraryID: itineraryID,
		RouteID:     routeID,
	}
	return conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

// RouteIDs returns the route ids linked to one itinerary
func (r *GormItineraryRepository) RouteIDs(ctx context.Context, searchID, itineraryID string) ([]string, error) {
	var ids []string
	result := conn(ctx, r.db).Model(&ItineraryRouteRecord{}).
		Where("search_id = ? AND itinerary_id = ?", searchID, itineraryID).
		Order("route_id").
		Pluck("route_id", &ids)
	return ids, result.Error
}

// ExclusiveRouteIDs runs the anti-join against the whole join table: a route
// linked by any itinerary of another search is never returned.
func (r *GormItineraryRepository) ExclusiveRouteIDs(ctx context.Context, searchID string) ([]string, error) {
	db := conn(ctx, r.db)

	others := db.Table("itinerary2route AS theirs").
		Select("1").
		Where("theirs.route_id = mine.route_id AND theirs.search_id <> ?", searchID)

	var ids []string
	result := db.Table("itinerary2route AS mine").
		Where("mine.search_id = ?", searchID).
		Where("NOT EXISTS (?)", others).
		Distinct().
		Order("mine.route_id").
		Pluck("mine.route_id", &ids)
	return ids, result.Error
}

// UnlinkSearch removes every itinerary2route row of a search
func (r *GormItineraryRepository) UnlinkSearch(ctx context.Context, searchID string) error {
	return conn(ctx, r.db).Where("search_id = ?", searchID).Delete(&ItineraryRouteRecord{}).Error
}
