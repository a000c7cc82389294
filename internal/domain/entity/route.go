// internal/domain/entity/route.go
package entity

import (
	"fmt"
	"strconv"
	"time"
)

// Route is one flight leg, shared by every itinerary that flies it
type Route struct {
	ID                  string
	CombinationID       string
	FlyFrom             string
	FlyTo               string
	CityFrom            string
	CityCodeFrom        string
	CityTo              string
	CityCodeTo          string
	LocalDeparture      time.Time
	LocalArrival        time.Time
	Airline             string
	FlightNo            int
	OperatingCarrier    string
	OperatingFlightNo   string
	FareBasis           string
	FareCategory        string
	FareClasses         string
	Return              int
	BagsRecheckRequired bool
	VIConnection        bool
	Guarantee           bool
	Equipment           *string
	VehicleType         string
}

// FieldChange is a single differing column between a stored and an incoming route.
// Old and New hold the typed values; Field is the column name.
type FieldChange struct {
	Field string
	Old   interface{}
	New   interface{}
}

// Immutable reports whether the column keeps its first stored value
func (c FieldChange) Immutable() bool {
	return c.Field == "local_departure" || c.Field == "local_arrival"
}

// routeField binds a column name to its accessor
type routeField struct {
	column string
	get    func(r *Route) interface{}
}

// routeFields lists every comparable column. The id is the identity and is not compared.
var routeFields = []routeField{
	{"combination_id", func(r *Route) interface{} { return r.CombinationID }},
	{"fly_from", func(r *Route) interface{} { return r.FlyFrom }},
	{"fly_to", func(r *Route) interface{} { return r.FlyTo }},
	{"city_from", func(r *Route) interface{} { return r.CityFrom }},
	{"city_code_from", func(r *Route) interface{} { return r.CityCodeFrom }},
	{"city_to", func(r *Route) interface{} { return r.CityTo }},
	{"city_code_to", func(r *Route) interface{} { return r.CityCodeTo }},
	{"local_departure", func(r *Route) interface{} { return r.LocalDeparture }},
	{"local_arrival", func(r *Route) interface{} { return r.LocalArrival }},
	{"airline", func(r *Route) interface{} { return r.Airline }},
	{"flight_no", func(r *Route) interface{} { return r.FlightNo }},
	{"operating_carrier", func(r *Route) interface{} { return r.OperatingCarrier }},
	{"operating_flight_no", func(r *Route) interface{} { return r.OperatingFlightNo }},
	{"fare_basis", func(r *Route) interface{} { return r.FareBasis }},
	{"fare_category", func(r *Route) interface{} { return r.FareCategory }},
	{"fare_classes", func(r *Route) interface{} { return r.FareClasses }},
	{"return_flag", func(r *Route) interface{} { return r.Return }},
	{"bags_recheck_required", func(r *Route) interface{} { return r.BagsRecheckRequired }},
	{"vi_connection", func(r *Route) interface{} { return r.VIConnection }},
	{"guarantee", func(r *Route) interface{} { return r.Guarantee }},
	{"equipment", func(r *Route) interface{} { return r.Equipment }},
	{"vehicle_type", func(r *Route) interface{} { return r.VehicleType }},
}

// RouteColumns returns the comparable column names in declaration order
func RouteColumns() []string {
	columns := make([]string, len(routeFields))
	for i, f := range routeFields {
		columns[i] = f.column
	}
	return columns
}

// Diff compares the stored route r against an incoming candidate
func (r *Route) Diff(candidate *Route) []FieldChange {
	var changes []FieldChange
	for _, f := range routeFields {
		oldValue, newValue := f.get(r), f.get(candidate)
		if sameValue(oldValue, newValue) {
			continue
		}
		changes = append(changes, FieldChange{
			Field: f.column,
			Old:   oldValue,
			New:   newValue,
		})
	}
	return changes
}

// Mutable filters out changes to immutable columns
func Mutable(changes []FieldChange) []FieldChange {
	var mutable []FieldChange
	for _, c := range changes {
		if !c.Immutable() {
			mutable = append(mutable, c)
		}
	}
	return mutable
}

func sameValue(a, b interface{}) bool {
	switch av := a.(type) {
	case time.Time:
		return av.Equal(b.(time.Time))
	case *string:
		bv := b.(*string)
		if av == nil || bv == nil {
			return av == nil && bv == nil
		}
		return *av == *bv
	default:
		return a == b
	}
}

// FormatValue renders a field value for the change history
func FormatValue(v interface{}) string {
	switch tv := v.(type) {
	case time.Time:
		return tv.UTC().Format(time.RFC3339)
	case *string:
		if tv == nil {
			return ""
		}
		return *tv
	case string:
		return tv
	case int:
		return strconv.Itoa(tv)
	case bool:
		return strconv.FormatBool(tv)
	default:
		return fmt.Sprint(v)
	}
}
