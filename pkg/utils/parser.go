package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// SearchResultParser decodes search API responses into domain entities
type SearchResultParser struct {
	validate *validator.Validate
	logger   logger.Logger
}

// NewSearchResultParser creates a new parser
func NewSearchResultParser(logger logger.Logger) *SearchResultParser {
	validate := validator.New()
	// Report json key paths rather than Go field names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &SearchResultParser{
		validate: validate,
		logger:   logger,
	}
}

// Parse decodes body and checks every required key is present
func (p *SearchResultParser) Parse(body []byte) (*entity.SearchResult, error) {
	var result entity.SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search result: %w", err)
	}

	if err := p.validate.Struct(&result); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, fe.Namespace())
			}
			return nil, fmt.Errorf("%w: %s", entity.ErrMissingField, strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("failed to validate search result: %w", err)
	}

	p.logger.Debug("Parsed search result", "searchID", *result.SearchID, "itineraries", len(result.Data))
	return &result, nil
}

// BuildItineraries converts every entry of a parsed result, legs included.
// Booking token and deep link are not kept.
func (p *SearchResultParser) BuildItineraries(result *entity.SearchResult) ([]*entity.Itinerary, error) {
	itineraries := make([]*entity.Itinerary, 0, len(result.Data))
	for i, data := range result.Data {
		itinerary, err := p.BuildItinerary(*result.SearchID, data)
		if err != nil {
			return nil, fmt.Errorf("itinerary %d (%s): %w", i, *data.ID, err)
		}
		itineraries = append(itineraries, itinerary)
	}
	return itineraries, nil
}

// BuildItinerary converts one validated itinerary entry
func (p *SearchResultParser) BuildItinerary(searchID string, data *entity.ItineraryData) (*entity.Itinerary, error) {
	departure, err := ParseAPITime(*data.LocalDeparture)
	if err != nil {
		return nil, fmt.Errorf("local_departure: %w", err)
	}
	arrival, err := ParseAPITime(*data.LocalArrival)
	if err != nil {
		return nil, fmt.Errorf("local_arrival: %w", err)
	}

	itinerary := &entity.Itinerary{
		SearchID:                    searchID,
		ID:                          *data.ID,
		FlyFrom:                     *data.FlyFrom,
		FlyTo:                       *data.FlyTo,
		CityFrom:                    *data.CityFrom,
		CityCodeFrom:                *data.CityCodeFrom,
		CityTo:                      *data.CityTo,
		CityCodeTo:                  *data.CityCodeTo,
		CountryFromCode:             *data.CountryFrom.Code,
		CountryFromName:             *data.CountryFrom.Name,
		CountryToCode:               *data.CountryTo.Code,
		CountryToName:               *data.CountryTo.Name,
		LocalDeparture:              departure,
		LocalArrival:                arrival,
		NightsInDest:                data.NightsInDest,
		Quality:                     *data.Quality,
		Distance:                    *data.Distance,
		DurationDeparture:           *data.Duration.Departure,
		DurationReturn:              *data.Duration.Return,
		Price:                       *data.Price,
		ConversionEUR:               *data.Conversion.EUR,
		AvailabilitySeats:           data.Availability.Seats,
		Airlines:                    strings.Join(data.Airlines, AIRLINE_SEPARATOR),
		BookingToken:                "",
		DeepLink:                    "",
		FacilitatedBookingAvailable: *data.FacilitatedBookingAvailable,
		PnrCount:                    *data.PnrCount,
		HasAirportChange:            *data.HasAirportChange,
		TechnicalStops:              *data.TechnicalStops,
		ThrowAwayTicketing:          *data.ThrowAwayTicketing,
		HiddenCityTicketing:         *data.HiddenCityTicketing,
		VirtualInterlining:          *data.VirtualInterlining,
	}

	for j, leg := range data.Route {
		route, err := p.BuildRoute(leg)
		if err != nil {
			return nil, fmt.Errorf("route %d (%s): %w", j, *leg.ID, err)
		}
		itinerary.Routes = append(itinerary.Routes, route)
	}

	return itinerary, nil
}

// BuildRoute converts one validated leg
func (p *SearchResultParser) BuildRoute(data *entity.RouteData) (*entity.Route, error) {
	departure, err := ParseAPITime(*data.LocalDeparture)
	if err != nil {
		return nil, fmt.Errorf("local_departure: %w", err)
	}
	arrival, err := ParseAPITime(*data.LocalArrival)
	if err != nil {
		return nil, fmt.Errorf("local_arrival: %w", err)
	}

	return &entity.Route{
		ID:                  *data.ID,
		CombinationID:       *data.CombinationID,
		FlyFrom:             *data.FlyFrom,
		FlyTo:               *data.FlyTo,
		CityFrom:            *data.CityFrom,
		CityCodeFrom:        *data.CityCodeFrom,
		CityTo:              *data.CityTo,
		CityCodeTo:          *data.CityCodeTo,
		LocalDeparture:      departure,
		LocalArrival:        arrival,
		Airline:             *data.Airline,
		FlightNo:            *data.FlightNo,
		OperatingCarrier:    *data.OperatingCarrier,
		OperatingFlightNo:   *data.OperatingFlightNo,
		FareBasis:           *data.FareBasis,
		FareCategory:        *data.FareCategory,
		FareClasses:         *data.FareClasses,
		Return:              *data.Return,
		BagsRecheckRequired: *data.BagsRecheckRequired,
		VIConnection:        *data.VIConnection,
		Guarantee:           *data.Guarantee,
		Equipment:           data.Equipment,
		VehicleType:         *data.VehicleType,
	}, nil
}
