package searchapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/pkg/logger"
	"flightsnap-service/pkg/utils"
)

// QUERY_DATE_LAYOUT is the date format of the date_from/date_to parameters
const QUERY_DATE_LAYOUT = "02/01/2006"

// Client fetches flight search results from the search API
type Client struct {
	baseURL    string
	apiKey     string
	rangeDays  int
	httpClient *http.Client
	logger     logger.Logger
	now        func() time.Time
}

// NewClient creates a new search API client. baseURL carries the fixed query
// (origin, destination, passengers); the date window is added per request.
func NewClient(baseURL, apiKey string, rangeDays int, logger logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		rangeDays:  rangeDays,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
		now:        time.Now,
	}
}

// Fetch runs one search over [today, today+rangeDays] and returns the raw response
func (c *Client) Fetch(ctx context.Context) (*entity.RawPayload, error) {
	fetchedAt := c.now()
	rangeStart := utils.Midnight(fetchedAt)
	rangeEnd := rangeStart.AddDate(0, 0, c.rangeDays)

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid search API url: %w", err)
	}
	q := u.Query()
	q.Set("date_from", rangeStart.Format(QUERY_DATE_LAYOUT))
	q.Set("date_to", rangeEnd.Format(QUERY_DATE_LAYOUT))
	u.RawQuery = q.Encode()
	requestURL := u.String()

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call search API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, snippet)
	}

	c.logger.Debug("Search API response received",
		"url", requestURL,
		"bytes", len(body))

	return &entity.RawPayload{
		URL:        requestURL,
		FetchedAt:  fetchedAt,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Body:       string(body),
	}, nil
}
