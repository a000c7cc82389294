// internal/domain/entity/itinerary.go
package entity

import (
	"time"
)

// Itinerary is one trip option of a search. ID is only unique within SearchID.
type Itinerary struct {
	SearchID                    string
	ID                          string
	FlyFrom                     string
	FlyTo                       string
	CityFrom                    string
	CityCodeFrom                string
	CityTo                      string
	CityCodeTo                  string
	CountryFromCode             string
	CountryFromName             string
	CountryToCode               string
	CountryToName               string
	LocalDeparture              time.Time
	LocalArrival                time.Time
	NightsInDest                *int
	Quality                     float64
	Distance                    float64
	DurationDeparture           int
	DurationReturn              int
	Price                       float64
	ConversionEUR               float64
	AvailabilitySeats           *int
	Airlines                    string
	BookingToken                string
	DeepLink                    string
	FacilitatedBookingAvailable bool
	PnrCount                    int
	HasAirportChange            bool
	TechnicalStops              int
	ThrowAwayTicketing          bool
	HiddenCityTicketing         bool
	VirtualInterlining          bool

	// Routes are the legs in payload order
	Routes []*Route
}
