package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/internal/domain/repository"
	"flightsnap-service/pkg/logger"
	"flightsnap-service/pkg/metrics"
)

// SearchFetcher runs one search against the upstream API
type SearchFetcher interface {
	Fetch(ctx context.Context) (*entity.RawPayload, error)
}

// SnapshotCollector periodically fetches a search snapshot and stores it as the current one
type SnapshotCollector struct {
	fetcher      SearchFetcher
	store        *SearchStore
	payloadRepo  repository.PayloadRepository // nil disables the raw archive
	metrics      *metrics.Metrics
	logger       logger.Logger
	pollInterval time.Duration
	retention    time.Duration
	now          func() time.Time
}

// NewSnapshotCollector creates a new collector. payloadRepo may be nil;
// a zero retention keeps every search.
func NewSnapshotCollector(
	fetcher SearchFetcher,
	store *SearchStore,
	payloadRepo repository.PayloadRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	pollInterval time.Duration,
	retention time.Duration,
) *SnapshotCollector {
	return &SnapshotCollector{
		fetcher:      fetcher,
		store:        store,
		payloadRepo:  payloadRepo,
		metrics:      metrics,
		logger:       logger,
		pollInterval: pollInterval,
		retention:    retention,
		now:          time.Now,
	}
}

// StartPolling collects once right away, then on every tick until ctx is done
func (c *SnapshotCollector) StartPolling(ctx context.Context) {
	// Replay anything archived but never stored
	if err := c.ProcessPendingPayloads(ctx); err != nil {
		c.logger.Error("Failed to process pending payloads on startup", "error", err)
	}

	if err := c.CollectOnce(ctx); err != nil {
		c.logger.Error("Error collecting search snapshot", "error", err)
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Snapshot polling stopped")
			return
		case <-ticker.C:
			c.logger.Info("Polling search API for a new snapshot")
			if err := c.CollectOnce(ctx); err != nil {
				c.logger.Error("Error collecting search snapshot", "error", err)
			}
		}
	}
}

// CollectOnce fetches one snapshot, stores it and runs the retention sweep
func (c *SnapshotCollector) CollectOnce(ctx context.Context) error {
	payload, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.metrics.ErrorsCount.WithLabelValues("fetch").Inc()
		return fmt.Errorf("failed to fetch search: %w", err)
	}

	searchID, err := peekSearchID([]byte(payload.Body))
	if err != nil {
		c.metrics.ErrorsCount.WithLabelValues("parse").Inc()
		return err
	}
	payload.SearchID = searchID
	payload.ProcessStatus = entity.StatusPending

	if c.payloadRepo != nil {
		if err := c.payloadRepo.Save(ctx, payload); err != nil {
			// The relational store is the source of truth; carry on without the archive copy
			c.logger.Error("Failed to archive payload", "searchID", searchID, "error", err)
		}
	}

	processErr := c.ProcessPayload(ctx, payload)

	if _, err := c.SweepExpired(ctx); err != nil {
		c.logger.Error("Retention sweep failed", "error", err)
	}
	return processErr
}

// ProcessPayload stores an archived or freshly fetched payload as the current
// snapshot and records the outcome in the archive
func (c *SnapshotCollector) ProcessPayload(ctx context.Context, payload *entity.RawPayload) error {
	log := c.logger.With("searchID", payload.SearchID)

	result, err := c.store.ParsePayload([]byte(payload.Body))
	if err != nil {
		c.markProcessed(ctx, payload.SearchID, entity.StatusFailed, err.Error())
		return fmt.Errorf("payload %s: %w", payload.SearchID, err)
	}

	exists, err := c.store.SearchExists(ctx, payload.SearchID)
	if err != nil {
		return fmt.Errorf("failed to check search %s: %w", payload.SearchID, err)
	}
	if exists {
		log.Info("Snapshot already stored")
		c.markProcessed(ctx, payload.SearchID, entity.StatusSkipped, "search already stored")
		return nil
	}

	cleared, err := c.store.ClearCurrentFlags(ctx)
	if err != nil {
		return err
	}

	meta := entity.SearchMeta{
		URL:        payload.URL,
		CapturedAt: payload.FetchedAt,
		RangeStart: payload.RangeStart,
		RangeEnd:   payload.RangeEnd,
		Current:    true,
	}
	stored, err := c.store.Insert(ctx, result, meta)
	if err != nil {
		if cleared > 0 {
			log.Error("Snapshot not stored after clearing current flags, no search is current", "error", err)
		}
		c.markProcessed(ctx, payload.SearchID, entity.StatusFailed, err.Error())
		return err
	}
	if !stored {
		c.markProcessed(ctx, payload.SearchID, entity.StatusSkipped, "search already stored")
		return nil
	}

	c.markProcessed(ctx, payload.SearchID, entity.StatusCompleted, "")
	log.Info("Snapshot stored as current", "itineraries", len(result.Data))
	return nil
}

// ProcessPendingPayloads replays archived payloads that were never stored
func (c *SnapshotCollector) ProcessPendingPayloads(ctx context.Context) error {
	if c.payloadRepo == nil {
		return nil
	}

	payloads, err := c.payloadRepo.FindUnprocessed(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to find unprocessed payloads: %w", err)
	}

	if len(payloads) == 0 {
		return nil
	}

	c.logger.Info("Processing pending payloads", "count", len(payloads))

	for _, payload := range payloads {
		if err := c.ProcessPayload(ctx, payload); err != nil {
			c.logger.Error("Failed to process pending payload",
				"searchID", payload.SearchID,
				"error", err)
		}
	}

	return nil
}

// SweepExpired deletes non-current searches captured before the retention
// cutoff and returns how many were removed
func (c *SnapshotCollector) SweepExpired(ctx context.Context) (int, error) {
	if c.retention <= 0 {
		return 0, nil
	}

	cutoff := c.now().Add(-c.retention)
	stale, err := c.store.FindStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired searches: %w", err)
	}

	deleted := 0
	for _, search := range stale {
		if err := c.store.Delete(ctx, search); err != nil {
			c.logger.Error("Failed to delete expired search", "searchID", search.SearchID, "error", err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		c.logger.Info("Expired searches deleted", "count", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

func (c *SnapshotCollector) markProcessed(ctx context.Context, searchID, status, detail string) {
	if c.payloadRepo == nil {
		return
	}
	if err := c.payloadRepo.MarkAsProcessed(ctx, searchID, status, detail); err != nil {
		c.logger.Error("Failed to update payload status", "searchID", searchID, "status", status, "error", err)
	}
}

// peekSearchID reads only the search id so a payload can be archived before full validation
func peekSearchID(body []byte) (string, error) {
	var head struct {
		SearchID string `json:"search_id"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return "", fmt.Errorf("failed to decode search result: %w", err)
	}
	if head.SearchID == "" {
		return "", fmt.Errorf("%w: search_id", entity.ErrMissingField)
	}
	return head.SearchID, nil
}
