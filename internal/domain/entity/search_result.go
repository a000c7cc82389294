// internal/domain/entity/search_result.go
package entity

// SearchResult is the flight search API response body.
// Pointer fields are required keys; validation rejects nil.
type SearchResult struct {
	SearchID *string          `json:"search_id" validate:"required"`
	Results  *int             `json:"_results" validate:"required"`
	Data     []*ItineraryData `json:"data" validate:"required,dive,required"`
}

type CountryData struct {
	Code *string `json:"code" validate:"required"`
	Name *string `json:"name" validate:"required"`
}

type DurationData struct {
	Departure *int `json:"departure" validate:"required"`
	Return    *int `json:"return" validate:"required"`
}

type ConversionData struct {
	EUR *float64 `json:"EUR" validate:"required"`
}

type AvailabilityData struct {
	Seats *int `json:"seats"`
}

// ItineraryData is one entry of SearchResult.Data
type ItineraryData struct {
	ID                          *string           `json:"id" validate:"required"`
	FlyFrom                     *string           `json:"flyFrom" validate:"required"`
	FlyTo                       *string           `json:"flyTo" validate:"required"`
	CityFrom                    *string           `json:"cityFrom" validate:"required"`
	CityCodeFrom                *string           `json:"cityCodeFrom" validate:"required"`
	CityTo                      *string           `json:"cityTo" validate:"required"`
	CityCodeTo                  *string           `json:"cityCodeTo" validate:"required"`
	CountryFrom                 *CountryData      `json:"countryFrom" validate:"required"`
	CountryTo                   *CountryData      `json:"countryTo" validate:"required"`
	LocalDeparture              *string           `json:"local_departure" validate:"required"`
	LocalArrival                *string           `json:"local_arrival" validate:"required"`
	NightsInDest                *int              `json:"nightsInDest"`
	Quality                     *float64          `json:"quality" validate:"required"`
	Distance                    *float64          `json:"distance" validate:"required"`
	Duration                    *DurationData     `json:"duration" validate:"required"`
	Price                       *float64          `json:"price" validate:"required"`
	Conversion                  *ConversionData   `json:"conversion" validate:"required"`
	Availability                *AvailabilityData `json:"availability" validate:"required"`
	Airlines                    []string          `json:"airlines" validate:"required"`
	Route                       []*RouteData      `json:"route" validate:"required,dive,required"`
	BookingToken                string            `json:"booking_token"`
	DeepLink                    string            `json:"deep_link"`
	FacilitatedBookingAvailable *bool             `json:"facilitated_booking_available" validate:"required"`
	PnrCount                    *int              `json:"pnr_count" validate:"required"`
	HasAirportChange            *bool             `json:"has_airport_change" validate:"required"`
	TechnicalStops              *int              `json:"technical_stops" validate:"required"`
	ThrowAwayTicketing          *bool             `json:"throw_away_ticketing" validate:"required"`
	HiddenCityTicketing         *bool             `json:"hidden_city_ticketing" validate:"required"`
	VirtualInterlining          *bool             `json:"virtual_interlining" validate:"required"`
}

// RouteData is one leg of ItineraryData.Route
type RouteData struct {
	ID                  *string `json:"id" validate:"required"`
	CombinationID       *string `json:"combination_id" validate:"required"`
	FlyFrom             *string `json:"flyFrom" validate:"required"`
	FlyTo               *string `json:"flyTo" validate:"required"`
	CityFrom            *string `json:"cityFrom" validate:"required"`
	CityCodeFrom        *string `json:"cityCodeFrom" validate:"required"`
	CityTo              *string `json:"cityTo" validate:"required"`
	CityCodeTo          *string `json:"cityCodeTo" validate:"required"`
	LocalDeparture      *string `json:"local_departure" validate:"required"`
	LocalArrival        *string `json:"local_arrival" validate:"required"`
	Airline             *string `json:"airline" validate:"required"`
	FlightNo            *int    `json:"flight_no" validate:"required"`
	OperatingCarrier    *string `json:"operating_carrier" validate:"required"`
	OperatingFlightNo   *string `json:"operating_flight_no" validate:"required"`
	FareBasis           *string `json:"fare_basis" validate:"required"`
	FareCategory        *string `json:"fare_category" validate:"required"`
	FareClasses         *string `json:"fare_classes" validate:"required"`
	Return              *int    `json:"return" validate:"required"`
	BagsRecheckRequired *bool   `json:"bags_recheck_required" validate:"required"`
	VIConnection        *bool   `json:"vi_connection" validate:"required"`
	Guarantee           *bool   `json:"guarantee" validate:"required"`
	Equipment           *string `json:"equipment"`
	VehicleType         *string `json:"vehicle_type" validate:"required"`
}
