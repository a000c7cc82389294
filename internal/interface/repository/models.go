package repository

import (
	"time"

	"flightsnap-service/internal/domain/entity"

	"gorm.io/gorm"
)

// SearchRecord GORM model for the search table
type SearchRecord struct {
	SearchID   string     `gorm:"column:search_id;primaryKey;size:36"`
	URL        string     `gorm:"column:url;size:2048"`
	CapturedAt time.Time  `gorm:"column:captured_at;not null"`
	RangeStart *time.Time `gorm:"column:range_start;type:date"`
	RangeEnd   *time.Time `gorm:"column:range_end;type:date"`
	Results    int        `gorm:"column:results"`
	IsCurrent  bool       `gorm:"column:is_current;not null;index"`

	Itineraries []ItineraryRecord `gorm:"foreignKey:SearchID;references:SearchID"`
}

// TableName overrides the default table name
func (SearchRecord) TableName() string {
	return "search"
}

// ItineraryRecord GORM model for the itinerary table
type ItineraryRecord struct {
	SearchID                    string    `gorm:"column:search_id;primaryKey;size:36"`
	ID                          string    `gorm:"column:id;primaryKey;size:255"`
	FlyFrom                     string    `gorm:"column:fly_from;size:3"`
	FlyTo                       string    `gorm:"column:fly_to;size:3"`
	CityFrom                    string    `gorm:"column:city_from;size:50"`
	CityCodeFrom                string    `gorm:"column:city_code_from;size:3"`
	CityTo                      string    `gorm:"column:city_to;size:50"`
	CityCodeTo                  string    `gorm:"column:city_code_to;size:3"`
	CountryFromCode             string    `gorm:"column:country_from_code;size:2"`
	CountryFromName             string    `gorm:"column:country_from_name;size:50"`
	CountryToCode               string    `gorm:"column:country_to_code;size:2"`
	CountryToName               string    `gorm:"column:country_to_name;size:50"`
	LocalDeparture              time.Time `gorm:"column:local_departure"`
	LocalArrival                time.Time `gorm:"column:local_arrival"`
	NightsInDest                *int      `gorm:"column:nights_in_dest"`
	Quality                     float64   `gorm:"column:quality"`
	Distance                    float64   `gorm:"column:distance"`
	DurationDeparture           int       `gorm:"column:duration_departure"`
	DurationReturn              int       `gorm:"column:duration_return"`
	Price                       float64   `gorm:"column:price;index"`
	ConversionEUR               float64   `gorm:"column:conversion_eur"`
	AvailabilitySeats           *int      `gorm:"column:availability_seats"`
	Airlines                    string    `gorm:"column:airlines;size:30"`
	BookingToken                string    `gorm:"column:booking_token;size:2048"`
	DeepLink                    string    `gorm:"column:deep_link;size:2048"`
	FacilitatedBookingAvailable bool      `gorm:"column:facilitated_booking_available"`
	PnrCount                    int       `gorm:"column:pnr_count"`
	HasAirportChange            bool      `gorm:"column:has_airport_change"`
	TechnicalStops              int       `gorm:"column:technical_stops"`
	ThrowAwayTicketing          bool      `gorm:"column:throw_away_ticketing"`
	HiddenCityTicketing         bool      `gorm:"column:hidden_city_ticketing"`
	VirtualInterlining          bool      `gorm:"column:virtual_interlining"`

	Links []ItineraryRouteRecord `gorm:"foreignKey:SearchID,ItineraryID;references:SearchID,ID"`
}

// TableName overrides the default table name
func (ItineraryRecord) TableName() string {
	return "itinerary"
}

// RouteRecord GORM model for the route table
type RouteRecord struct {
	ID                  string    `gorm:"column:id;primaryKey;size:26"`
	CombinationID       string    `gorm:"column:combination_id;size:24"`
	FlyFrom             string    `gorm:"column:fly_from;size:3"`
	FlyTo               string    `gorm:"column:fly_to;size:3"`
	CityFrom            string    `gorm:"column:city_from;size:50"`
	CityCodeFrom        string    `gorm:"column:city_code_from;size:3"`
	CityTo              string    `gorm:"column:city_to;size:50"`
	CityCodeTo          string    `gorm:"column:city_code_to;size:3"`
	LocalDeparture      time.Time `gorm:"column:local_departure"`
	LocalArrival        time.Time `gorm:"column:local_arrival"`
	Airline             string    `gorm:"column:airline;size:2"`
	FlightNo            int       `gorm:"column:flight_no"`
	OperatingCarrier    string    `gorm:"column:operating_carrier;size:2"`
	OperatingFlightNo   string    `gorm:"column:operating_flight_no;size:4"`
	FareBasis           string    `gorm:"column:fare_basis;size:10"`
	FareCategory        string    `gorm:"column:fare_category;size:1"`
	FareClasses         string    `gorm:"column:fare_classes;size:1"`
	ReturnFlag          int       `gorm:"column:return_flag"`
	BagsRecheckRequired bool      `gorm:"column:bags_recheck_required"`
	VIConnection        bool      `gorm:"column:vi_connection"`
	Guarantee           bool      `gorm:"column:guarantee"`
	Equipment           *string   `gorm:"column:equipment;size:4"`
	VehicleType         string    `gorm:"column:vehicle_type;size:8"`

	Links   []ItineraryRouteRecord `gorm:"foreignKey:RouteID;references:ID"`
	Changes []RouteChangeRecord    `gorm:"foreignKey:RouteID;references:ID"`
}

// TableName overrides the default table name
func (RouteRecord) TableName() string {
	return "route"
}

// ItineraryRouteRecord GORM model for the itinerary2route join table
type ItineraryRouteRecord struct {
	SearchID    string `gorm:"column:search_id;primaryKey;size:36"`
	ItineraryID string `gorm:"column:itinerary_id;primaryKey;size:255"`
	RouteID     string `gorm:"column:route_id;primaryKey;size:26;index:route_idx"`
}

// TableName overrides the default table name
func (ItineraryRouteRecord) TableName() string {
	return "itinerary2route"
}

// RouteChangeRecord GORM model for the route_change history table
type RouteChangeRecord struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	RouteID   string    `gorm:"column:route_id;size:26;not null;index"`
	SearchID  string    `gorm:"column:search_id;size:36"`
	Field     string    `gorm:"column:field;size:32"`
	OldValue  string    `gorm:"column:old_value;size:64"`
	NewValue  string    `gorm:"column:new_value;size:64"`
	Applied   bool      `gorm:"column:applied"`
	ChangedAt time.Time `gorm:"column:changed_at"`
}

// TableName overrides the default table name
func (RouteChangeRecord) TableName() string {
	return "route_change"
}

// AutoMigrate creates or updates the schema. Parents come before the tables referencing them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SearchRecord{},
		&ItineraryRecord{},
		&RouteRecord{},
		&ItineraryRouteRecord{},
		&RouteChangeRecord{},
	)
}

func optionalDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func toSearchEntity(r *SearchRecord) *entity.Search {
	search := &entity.Search{
		SearchID:   r.SearchID,
		URL:        r.URL,
		CapturedAt: r.CapturedAt,
		Results:    r.Results,
		Current:    r.IsCurrent,
	}
	if r.RangeStart != nil {
		search.RangeStart = *r.RangeStart
	}
	if r.RangeEnd != nil {
		search.RangeEnd = *r.RangeEnd
	}
	return search
}

func toItineraryEntity(r *ItineraryRecord) *entity.Itinerary {
	return &entity.Itinerary{
		SearchID:                    r.SearchID,
		ID:                          r.ID,
		FlyFrom:                     r.FlyFrom,
		FlyTo:                       r.FlyTo,
		CityFrom:                    r.CityFrom,
		CityCodeFrom:                r.CityCodeFrom,
		CityTo:                      r.CityTo,
		CityCodeTo:                  r.CityCodeTo,
		CountryFromCode:             r.CountryFromCode,
		CountryFromName:             r.CountryFromName,
		CountryToCode:               r.CountryToCode,
		CountryToName:               r.CountryToName,
		LocalDeparture:              r.LocalDeparture,
		LocalArrival:                r.LocalArrival,
		NightsInDest:                r.NightsInDest,
		Quality:                     r.Quality,
		Distance:                    r.Distance,
		DurationDeparture:           r.DurationDeparture,
		DurationReturn:              r.DurationReturn,
		Price:                       r.Price,
		ConversionEUR:               r.ConversionEUR,
		AvailabilitySeats:           r.AvailabilitySeats,
		Airlines:                    r.Airlines,
		BookingToken:                r.BookingToken,
		DeepLink:                    r.DeepLink,
		FacilitatedBookingAvailable: r.FacilitatedBookingAvailable,
		PnrCount:                    r.PnrCount,
		HasAirportChange:            r.HasAirportChange,
		TechnicalStops:              r.TechnicalStops,
		ThrowAwayTicketing:          r.ThrowAwayTicketing,
		HiddenCityTicketing:         r.HiddenCityTicketing,
		VirtualInterlining:          r.VirtualInterlining,
	}
}

func toRouteEntity(r *RouteRecord) *entity.Route {
	return &entity.Route{
		ID:                  r.ID,
		CombinationID:       r.CombinationID,
		FlyFrom:             r.FlyFrom,
		FlyTo:               r.FlyTo,
		CityFrom:            r.CityFrom,
		CityCodeFrom:        r.CityCodeFrom,
		CityTo:              r.CityTo,
		CityCodeTo:          r.CityCodeTo,
		LocalDeparture:      r.LocalDeparture,
		LocalArrival:        r.LocalArrival,
		Airline:             r.Airline,
		FlightNo:            r.FlightNo,
		OperatingCarrier:    r.OperatingCarrier,
		OperatingFlightNo:   r.OperatingFlightNo,
		FareBasis:           r.FareBasis,
		FareCategory:        r.FareCategory,
		FareClasses:         r.FareClasses,
		Return:              r.ReturnFlag,
		BagsRecheckRequired: r.BagsRecheckRequired,
		VIConnection:        r.VIConnection,
		Guarantee:           r.Guarantee,
		Equipment:           r.Equipment,
		VehicleType:         r.VehicleType,
	}
}
