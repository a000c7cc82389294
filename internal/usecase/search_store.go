package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/internal/domain/repository"
	"flightsnap-service/pkg/logger"
	"flightsnap-service/pkg/metrics"
	"flightsnap-service/pkg/utils"
)

// SearchStore persists search snapshots and keeps the shared route table consistent
type SearchStore struct {
	tx              repository.Transactor
	searchRepo      repository.SearchRepository
	itineraryRepo   repository.ItineraryRepository
	routeRepo       repository.RouteRepository
	routeChangeRepo repository.RouteChangeRepository
	parser          *utils.SearchResultParser
	metrics         *metrics.Metrics
	logger          logger.Logger
	now             func() time.Time
}

// NewSearchStore creates a new search store
func NewSearchStore(
	tx repository.Transactor,
	searchRepo repository.SearchRepository,
	itineraryRepo repository.ItineraryRepository,
	routeRepo repository.RouteRepository,
	routeChangeRepo repository.RouteChangeRepository,
	parser *utils.SearchResultParser,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *SearchStore {
	return &SearchStore{
		tx:              tx,
		searchRepo:      searchRepo,
		itineraryRepo:   itineraryRepo,
		routeRepo:       routeRepo,
		routeChangeRepo: routeChangeRepo,
		parser:          parser,
		metrics:         metrics,
		logger:          logger,
		now:             time.Now,
	}
}

// ParsePayload decodes and validates a raw API response
func (s *SearchStore) ParsePayload(body []byte) (*entity.SearchResult, error) {
	result, err := s.parser.Parse(body)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("parse").Inc()
		return nil, err
	}
	return result, nil
}

// InsertJSON parses a raw API response and stores it with Insert
func (s *SearchStore) InsertJSON(ctx context.Context, body []byte, meta entity.SearchMeta) (bool, error) {
	result, err := s.ParsePayload(body)
	if err != nil {
		return false, err
	}
	return s.Insert(ctx, result, meta)
}

// Insert stores a search with its itineraries and routes. It returns false,
// without touching the store, when the search id is already present.
//
// Each itinerary is committed on its own; the search row goes in with the
// first one. A failure leaves the earlier itineraries stored.
func (s *SearchStore) Insert(ctx context.Context, result *entity.SearchResult, meta entity.SearchMeta) (bool, error) {
	start := time.Now()
	searchID := *result.SearchID
	log := s.logger.With("searchID", searchID)

	exists, err := s.searchRepo.Exists(ctx, searchID)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("insert").Inc()
		return false, fmt.Errorf("failed to look up search %s: %w", searchID, err)
	}
	if exists {
		log.Info("Search already stored, skipping")
		s.metrics.SearchesSkipped.Inc()
		return false, nil
	}

	itineraries, err := s.parser.BuildItineraries(result)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("parse").Inc()
		return false, err
	}

	capturedAt := meta.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = s.now()
	}
	pending := &entity.Search{
		SearchID:   searchID,
		URL:        meta.URL,
		CapturedAt: capturedAt,
		RangeStart: meta.RangeStart,
		RangeEnd:   meta.RangeEnd,
		Results:    *result.Results,
		Current:    meta.Current,
	}

	if len(itineraries) == 0 {
		if err := s.searchRepo.Create(ctx, pending); err != nil {
			s.metrics.ErrorsCount.WithLabelValues("insert").Inc()
			return false, fmt.Errorf("failed to store search %s: %w", searchID, err)
		}
	}

	var stats ingestStats
	for _, itinerary := range itineraries {
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if pending != nil {
				if err := s.searchRepo.Create(ctx, pending); err != nil {
					return fmt.Errorf("failed to store search: %w", err)
				}
			}
			return s.storeItinerary(ctx, itinerary, &stats)
		})
		if err != nil {
			s.metrics.ErrorsCount.WithLabelValues("insert").Inc()
			log.Error("Failed to store itinerary", "itineraryID", itinerary.ID, "error", err)
			return false, fmt.Errorf("search %s itinerary %s: %w", searchID, itinerary.ID, err)
		}
		pending = nil
		s.metrics.ItinerariesStored.Inc()
	}

	s.metrics.SearchesInserted.Inc()
	s.metrics.IngestTime.Observe(time.Since(start).Seconds())
	log.Info("Search stored",
		"itineraries", len(itineraries),
		"routesCreated", stats.created,
		"routesUpdated", stats.updated,
		"current", meta.Current)
	return true, nil
}

type ingestStats struct {
	created int
	updated int
}

func (s *SearchStore) storeItinerary(ctx context.Context, itinerary *entity.Itinerary, stats *ingestStats) error {
	if err := s.itineraryRepo.Create(ctx, itinerary); err != nil {
		return fmt.Errorf("failed to store itinerary: %w", err)
	}

	for _, candidate := range itinerary.Routes {
		routeID, err := s.mergeRoute(ctx, itinerary.SearchID, candidate, stats)
		if err != nil {
			return fmt.Errorf("route %s: %w", candidate.ID, err)
		}
		if err := s.itineraryRepo.LinkRoute(ctx, itinerary.SearchID, itinerary.ID, routeID); err != nil {
			return fmt.Errorf("failed to link route %s: %w", routeID, err)
		}
	}
	return nil
}

// mergeRoute inserts candidate, or folds it into the stored route with the
// same id. Departure and arrival times of a stored route never change; their
// differences are only recorded in the history.
func (s *SearchStore) mergeRoute(ctx context.Context, searchID string, candidate *entity.Route, stats *ingestStats) (string, error) {
	stored, err := s.routeRepo.FindByID(ctx, candidate.ID)
	if errors.Is(err, entity.ErrNotFound) {
		if err := s.routeRepo.Create(ctx, candidate); err != nil {
			return "", fmt.Errorf("failed to store route: %w", err)
		}
		stats.created++
		s.metrics.RoutesCreated.Inc()
		return candidate.ID, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up route: %w", err)
	}

	changes := stored.Diff(candidate)
	if len(changes) == 0 {
		return stored.ID, nil
	}

	applicable := entity.Mutable(changes)
	if err := s.routeRepo.Update(ctx, stored.ID, applicable); err != nil {
		return "", fmt.Errorf("failed to update route: %w", err)
	}

	changedAt := s.now()
	history := make([]*entity.RouteChange, 0, len(changes))
	for _, c := range changes {
		applied := !c.Immutable()
		history = append(history, &entity.RouteChange{
			RouteID:   stored.ID,
			SearchID:  searchID,
			Field:     c.Field,
			OldValue:  entity.FormatValue(c.Old),
			NewValue:  entity.FormatValue(c.New),
			Applied:   applied,
			ChangedAt: changedAt,
		})
		s.metrics.RouteFieldChanges.WithLabelValues(c.Field, strconv.FormatBool(applied)).Inc()
	}
	if err := s.routeChangeRepo.Record(ctx, history); err != nil {
		return "", fmt.Errorf("failed to record route changes: %w", err)
	}

	if len(applicable) > 0 {
		stats.updated++
		s.metrics.RoutesUpdated.Inc()
	}
	s.logger.Debug("Route changed on re-ingestion",
		"routeID", stored.ID,
		"changes", len(changes),
		"applied", len(applicable))
	return stored.ID, nil
}

// Delete removes a search, its itineraries and join rows, and every route no
// other search still links. All of it happens in one transaction.
func (s *SearchStore) Delete(ctx context.Context, search *entity.Search) error {
	searchID := search.SearchID
	var pruned []string

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Must run before this search's join rows are gone
		exclusive, err := s.itineraryRepo.ExclusiveRouteIDs(ctx, searchID)
		if err != nil {
			return fmt.Errorf("failed to find exclusive routes: %w", err)
		}
		if err := s.itineraryRepo.UnlinkSearch(ctx, searchID); err != nil {
			return fmt.Errorf("failed to delete route links: %w", err)
		}
		if err := s.routeChangeRepo.DeleteByRouteIDs(ctx, exclusive); err != nil {
			return fmt.Errorf("failed to delete route history: %w", err)
		}
		if err := s.routeRepo.DeleteByIDs(ctx, exclusive); err != nil {
			return fmt.Errorf("failed to delete routes: %w", err)
		}
		if err := s.itineraryRepo.DeleteBySearchID(ctx, searchID); err != nil {
			return fmt.Errorf("failed to delete itineraries: %w", err)
		}
		if err := s.searchRepo.Delete(ctx, searchID); err != nil {
			return fmt.Errorf("failed to delete search: %w", err)
		}
		pruned = exclusive
		return nil
	})
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("delete").Inc()
		return fmt.Errorf("delete search %s: %w", searchID, err)
	}

	s.metrics.SearchesDeleted.Inc()
	s.metrics.RoutesPruned.Add(float64(len(pruned)))
	s.logger.Info("Search deleted", "searchID", searchID, "routesPruned", len(pruned))
	return nil
}

// ClearCurrentFlags marks every current search as stale and returns how many were flagged
func (s *SearchStore) ClearCurrentFlags(ctx context.Context) (int64, error) {
	cleared, err := s.searchRepo.ClearCurrentFlags(ctx)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("clear_current").Inc()
		return 0, fmt.Errorf("failed to clear current flags: %w", err)
	}

	s.metrics.CurrentFlagsClears.Add(float64(cleared))
	s.logger.Info("Current flags cleared", "count", cleared)
	return cleared, nil
}

// ListSearches returns every stored search, oldest capture first
func (s *SearchStore) ListSearches(ctx context.Context) ([]*entity.Search, error) {
	return s.searchRepo.FindAll(ctx)
}

// FindSearch returns one stored search
func (s *SearchStore) FindSearch(ctx context.Context, searchID string) (*entity.Search, error) {
	return s.searchRepo.FindByID(ctx, searchID)
}

// FindStale returns the non-current searches captured before the cutoff
func (s *SearchStore) FindStale(ctx context.Context, capturedBefore time.Time) ([]*entity.Search, error) {
	return s.searchRepo.FindStale(ctx, capturedBefore)
}

// SearchExists reports whether a search id is already stored
func (s *SearchStore) SearchExists(ctx context.Context, searchID string) (bool, error) {
	return s.searchRepo.Exists(ctx, searchID)
}

// ListRouteChanges returns the recorded field changes of a route
func (s *SearchStore) ListRouteChanges(ctx context.Context, routeID string) ([]*entity.RouteChange, error) {
	return s.routeChangeRepo.FindByRouteID(ctx, routeID)
}
