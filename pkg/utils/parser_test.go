package utils

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/pkg/logger"
)

func loadSample(t *testing.T) []byte {
	t.Helper()
	body, err := os.ReadFile("testdata/search_result.json")
	if err != nil {
		t.Fatalf("failed to read sample: %v", err)
	}
	return body
}

// mutateSample decodes the sample, applies fn and re-encodes it
func mutateSample(t *testing.T, fn func(doc map[string]interface{})) []byte {
	t.Helper()
	var doc map[string]interface{}
	if err := json.Unmarshal(loadSample(t), &doc); err != nil {
		t.Fatalf("failed to decode sample: %v", err)
	}
	fn(doc)
	body, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to encode sample: %v", err)
	}
	return body
}

func itineraryAt(doc map[string]interface{}, i int) map[string]interface{} {
	return doc["data"].([]interface{})[i].(map[string]interface{})
}

func routeAt(doc map[string]interface{}, i, j int) map[string]interface{} {
	return itineraryAt(doc, i)["route"].([]interface{})[j].(map[string]interface{})
}

func TestSearchResultParser_Parse(t *testing.T) {
	parser := NewSearchResultParser(logger.NewNopLogger())

	result, err := parser.Parse(loadSample(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if *result.SearchID != "5e1b3a2c-8f0d-4c1e-9a57-3f1d2b6c7e90" {
		t.Errorf("SearchID = %q", *result.SearchID)
	}
	if *result.Results != 2 {
		t.Errorf("Results = %d, want 2", *result.Results)
	}
	if len(result.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(result.Data))
	}
	if len(result.Data[0].Route) != 2 {
		t.Errorf("len(Data[0].Route) = %d, want 2", len(result.Data[0].Route))
	}
}

func TestSearchResultParser_ParseMissingKeys(t *testing.T) {
	parser := NewSearchResultParser(logger.NewNopLogger())

	tests := []struct {
		name    string
		mutate  func(doc map[string]interface{})
		wantKey string
	}{
		{
			name:    "search id",
			mutate:  func(doc map[string]interface{}) { delete(doc, "search_id") },
			wantKey: "search_id",
		},
		{
			name:    "results",
			mutate:  func(doc map[string]interface{}) { delete(doc, "_results") },
			wantKey: "_results",
		},
		{
			name:    "data",
			mutate:  func(doc map[string]interface{}) { delete(doc, "data") },
			wantKey: "data",
		},
		{
			name:    "itinerary price",
			mutate:  func(doc map[string]interface{}) { delete(itineraryAt(doc, 1), "price") },
			wantKey: "data[1].price",
		},
		{
			name: "nested country code",
			mutate: func(doc map[string]interface{}) {
				delete(itineraryAt(doc, 0)["countryTo"].(map[string]interface{}), "code")
			},
			wantKey: "data[0].countryTo.code",
		},
		{
			name:    "route fare classes",
			mutate:  func(doc map[string]interface{}) { delete(routeAt(doc, 0, 1), "fare_classes") },
			wantKey: "data[0].route[1].fare_classes",
		},
		{
			name:    "explicit null counts as missing",
			mutate:  func(doc map[string]interface{}) { routeAt(doc, 1, 0)["airline"] = nil },
			wantKey: "data[1].route[0].airline",
		},
		{
			name:    "pnr count",
			mutate:  func(doc map[string]interface{}) { delete(itineraryAt(doc, 0), "pnr_count") },
			wantKey: "data[0].pnr_count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(mutateSample(t, tt.mutate))
			if !errors.Is(err, entity.ErrMissingField) {
				t.Fatalf("Parse() error = %v, want ErrMissingField", err)
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q does not name %q", err, tt.wantKey)
			}
		})
	}
}

func TestSearchResultParser_ParseOptionalKeys(t *testing.T) {
	parser := NewSearchResultParser(logger.NewNopLogger())

	body := mutateSample(t, func(doc map[string]interface{}) {
		first := itineraryAt(doc, 0)
		delete(first, "booking_token")
		delete(first, "deep_link")
		delete(first, "nightsInDest")
		delete(routeAt(doc, 0, 0), "equipment")
	})

	if _, err := parser.Parse(body); err != nil {
		t.Errorf("Parse() error = %v, want nil", err)
	}
}

func TestSearchResultParser_ParseInvalidJSON(t *testing.T) {
	parser := NewSearchResultParser(logger.NewNopLogger())

	_, err := parser.Parse([]byte(`{"search_id": `))
	if err == nil {
		t.Fatal("expected error for truncated body")
	}
	if errors.Is(err, entity.ErrMissingField) {
		t.Errorf("decode failure reported as missing field: %v", err)
	}
}

func TestSearchResultParser_BuildItineraries(t *testing.T) {
	parser := NewSearchResultParser(logger.NewNopLogger())

	result, err := parser.Parse(loadSample(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	itineraries, err := parser.BuildItineraries(result)
	if err != nil {
		t.Fatalf("BuildItineraries() error = %v", err)
	}
	if len(itineraries) != 2 {
		t.Fatalf("len(itineraries) = %d, want 2", len(itineraries))
	}

	first := itineraries[0]
	if first.SearchID != *result.SearchID {
		t.Errorf("SearchID = %q, want %q", first.SearchID, *result.SearchID)
	}
	if first.Airlines != "FR,VY" {
		t.Errorf("Airlines = %q, want %q", first.Airlines, "FR,VY")
	}
	if first.BookingToken != "" || first.DeepLink != "" {
		t.Errorf("booking token and deep link must be blank, got %q / %q", first.BookingToken, first.DeepLink)
	}
	if first.CountryFromCode != "CZ" || first.CountryToName != "Spain" {
		t.Errorf("country = %s/%s", first.CountryFromCode, first.CountryToName)
	}
	if first.DurationDeparture != 9000 || first.DurationReturn != 9300 {
		t.Errorf("duration = %d/%d", first.DurationDeparture, first.DurationReturn)
	}
	if first.ConversionEUR != 86 {
		t.Errorf("ConversionEUR = %v, want 86", first.ConversionEUR)
	}
	if first.NightsInDest == nil || *first.NightsInDest != 4 {
		t.Errorf("NightsInDest = %v, want 4", first.NightsInDest)
	}
	if first.AvailabilitySeats == nil || *first.AvailabilitySeats != 3 {
		t.Errorf("AvailabilitySeats = %v, want 3", first.AvailabilitySeats)
	}
	wantDeparture := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	if !first.LocalDeparture.Equal(wantDeparture) {
		t.Errorf("LocalDeparture = %v, want %v", first.LocalDeparture, wantDeparture)
	}

	second := itineraries[1]
	if second.NightsInDest != nil {
		t.Errorf("one-way NightsInDest = %v, want nil", *second.NightsInDest)
	}
	if second.AvailabilitySeats != nil {
		t.Errorf("AvailabilitySeats = %v, want nil", *second.AvailabilitySeats)
	}

	if len(first.Routes) != 2 {
		t.Fatalf("len(Routes) = %d, want 2", len(first.Routes))
	}
	back := first.Routes[1]
	if back.Return != 1 || !back.VIConnection || !back.Guarantee {
		t.Errorf("return leg flags = %d/%t/%t", back.Return, back.VIConnection, back.Guarantee)
	}
	if back.Equipment != nil {
		t.Errorf("Equipment = %q, want nil", *back.Equipment)
	}
	if out := first.Routes[0]; out.Equipment == nil || *out.Equipment != "73H" {
		t.Errorf("Equipment = %v, want 73H", out.Equipment)
	}
	if second.Routes[0].ID != first.Routes[0].ID {
		t.Errorf("shared leg ids differ: %q vs %q", second.Routes[0].ID, first.Routes[0].ID)
	}
}

func TestSearchResultParser_BuildItinerariesInvalidTimestamp(t *testing.T) {
	parser := NewSearchResultParser(logger.NewNopLogger())

	tests := []struct {
		name   string
		mutate func(doc map[string]interface{})
	}{
		{
			name:   "itinerary departure without millis",
			mutate: func(doc map[string]interface{}) { itineraryAt(doc, 0)["local_departure"] = "2024-05-01T06:00:00Z" },
		},
		{
			name:   "route arrival as date",
			mutate: func(doc map[string]interface{}) { routeAt(doc, 1, 0)["local_arrival"] = "2024-05-01" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.Parse(mutateSample(t, tt.mutate))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if _, err := parser.BuildItineraries(result); !errors.Is(err, entity.ErrInvalidTimestamp) {
				t.Errorf("BuildItineraries() error = %v, want ErrInvalidTimestamp", err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-05-01")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if !got.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate() = %v", got)
	}

	if got, err := ParseDate(""); err != nil || !got.IsZero() {
		t.Errorf("ParseDate(\"\") = %v, %v; want zero time", got, err)
	}
	if _, err := ParseDate("01/05/2024"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 5, 1, 17, 42, 11, 5, time.UTC)
	if got := Midnight(in); !got.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Midnight() = %v", got)
	}
}
