package usecase

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/internal/domain/repository"
	"flightsnap-service/internal/infrastructure/config"
	"flightsnap-service/internal/infrastructure/persistence"
	gormRepo "flightsnap-service/internal/interface/repository"
	"flightsnap-service/pkg/logger"
	"flightsnap-service/pkg/metrics"
	"flightsnap-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// newTestStore opens a fresh SQLite store in a temp dir
func newTestStore(t *testing.T) (*SearchStore, *gorm.DB, *metrics.Metrics) {
	t.Helper()

	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "flightsnap.db"),
	}
	db, err := persistence.NewGormDB(cfg)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { persistence.Close(db) })

	if err := gormRepo.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	log := logger.NewNopLogger()
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	store := NewSearchStore(
		gormRepo.NewGormTransactor(db),
		gormRepo.NewGormSearchRepository(db),
		gormRepo.NewGormItineraryRepository(db),
		gormRepo.NewGormRouteRepository(db),
		gormRepo.NewGormRouteChangeRepository(db),
		utils.NewSearchResultParser(log),
		m,
		log,
	)
	return store, db, m
}

// failingSearchRepo returns the configured errors from Create and Delete
type failingSearchRepo struct {
	repository.SearchRepository
	createErr error
	deleteErr error
}

func (r *failingSearchRepo) Create(ctx context.Context, search *entity.Search) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.SearchRepository.Create(ctx, search)
}

func (r *failingSearchRepo) Delete(ctx context.Context, searchID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.SearchRepository.Delete(ctx, searchID)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

type fixture map[string]interface{}

// leg builds a route entry; departure hours are offsets on 2024-05-01
func leg(id, from, to string, mods ...func(fixture)) fixture {
	r := fixture{
		"id":                    id,
		"combination_id":        id[:len(id)-2],
		"flyFrom":               from,
		"flyTo":                 to,
		"cityFrom":              from + " City",
		"cityCodeFrom":          from,
		"cityTo":                to + " City",
		"cityCodeTo":            to,
		"local_departure":       "2024-05-01T06:00:00.000Z",
		"local_arrival":         "2024-05-01T08:30:00.000Z",
		"airline":               "FR",
		"flight_no":             1234,
		"operating_carrier":     "FR",
		"operating_flight_no":   "1234",
		"fare_basis":            "PROMO",
		"fare_category":         "M",
		"fare_classes":          "Y",
		"return":                0,
		"bags_recheck_required": false,
		"vi_connection":         false,
		"guarantee":             false,
		"equipment":             nil,
		"vehicle_type":          "aircraft",
	}
	for _, mod := range mods {
		mod(r)
	}
	return r
}

func with(key string, value interface{}) func(fixture) {
	return func(f fixture) { f[key] = value }
}

func itinerary(id string, legs ...fixture) fixture {
	first, last := legs[0], legs[len(legs)-1]
	return fixture{
		"id":                            id,
		"flyFrom":                       first["flyFrom"],
		"flyTo":                         last["flyTo"],
		"cityFrom":                      first["cityFrom"],
		"cityCodeFrom":                  first["cityCodeFrom"],
		"cityTo":                        last["cityTo"],
		"cityCodeTo":                    last["cityCodeTo"],
		"countryFrom":                   fixture{"code": "CZ", "name": "Czechia"},
		"countryTo":                     fixture{"code": "ES", "name": "Spain"},
		"local_departure":               first["local_departure"],
		"local_arrival":                 last["local_arrival"],
		"quality":                       80.5,
		"distance":                      1352.6,
		"duration":                      fixture{"departure": 9000, "return": 0},
		"price":                         41,
		"conversion":                    fixture{"EUR": 41},
		"availability":                  fixture{"seats": 4},
		"airlines":                      []string{"FR"},
		"route":                         legs,
		"booking_token":                 "secret-token",
		"deep_link":                     "https://example.com/book",
		"facilitated_booking_available": true,
		"pnr_count":                     1,
		"has_airport_change":            false,
		"technical_stops":               0,
		"throw_away_ticketing":          false,
		"hidden_city_ticketing":         false,
		"virtual_interlining":           false,
	}
}

func searchBody(t *testing.T, searchID string, itineraries ...fixture) []byte {
	t.Helper()
	if itineraries == nil {
		itineraries = []fixture{}
	}
	body, err := json.Marshal(fixture{
		"search_id": searchID,
		"_results":  len(itineraries),
		"data":      itineraries,
	})
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return body
}
