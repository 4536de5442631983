package kds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"staffplan/internal/metrics"
	"staffplan/internal/workforce"

	"github.com/rs/zerolog/log"
)

type httpClient struct {
	cfg        Config
	httpClient *http.Client

	throttleMu  sync.Mutex
	lastRequest time.Time

	// Session Cache
	cache      map[string]*cacheEntry
	cacheMutex sync.Mutex
}

type cacheEntry struct {
	Body       []byte
	Expiration time.Time
}

// NewHTTPClient creates a client for the upstream dashboard API.
func NewHTTPClient(cfg Config) Client {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &httpClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: make(map[string]*cacheEntry),
	}
}

func (c *httpClient) getFromCache(key string) ([]byte, bool) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		log.Debug().Str("key", key).Msg("Cache miss")
		return nil, false
	}
	if time.Now().After(entry.Expiration) {
		delete(c.cache, key)
		return nil, false
	}
	log.Debug().Str("key", key).Msg("Cache hit")
	return entry.Body, true
}

func (c *httpClient) addToCache(key string, body []byte) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	c.cache[key] = &cacheEntry{
		Body:       body,
		Expiration: time.Now().Add(c.cfg.CacheTTL),
	}
}

func (c *httpClient) throttle(ctx context.Context) error {
	c.throttleMu.Lock()
	defer c.throttleMu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling KDS request")
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.lastRequest = time.Now()
	return nil
}

// get fetches path and decodes the JSON body into out, using the TTL cache.
func (c *httpClient) get(ctx context.Context, endpoint, path string, params url.Values, out interface{}) (err error) {
	defer func() { metrics.ObserveUpstream(endpoint, err) }()

	reqURL := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	if body, ok := c.getFromCache(reqURL); ok {
		return json.Unmarshal(body, out)
	}

	if err := c.throttle(ctx); err != nil {
		return err
	}

	log.Debug().Str("url", reqURL).Msg("Requesting KDS data")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.Token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("KDS request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("KDS authentication failed (%d). Please check KDS_API_TOKEN", resp.StatusCode)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", path, ErrDistrictNotFound)
		case http.StatusTooManyRequests:
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				return fmt.Errorf("KDS rate limit exceeded (429). Retry after %s seconds", retryAfter)
			}
			return fmt.Errorf("KDS rate limit exceeded (429)")
		default:
			return fmt.Errorf("KDS API returned status %d for %s", resp.StatusCode, path)
		}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode KDS response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode KDS response: %w", err)
	}

	c.addToCache(reqURL, raw)
	return nil
}

func (c *httpClient) Districts(ctx context.Context) ([]District, error) {
	var dtos []districtDTO
	if err := c.get(ctx, "districts", "/districts", nil, &dtos); err != nil {
		return nil, err
	}
	return mapDistricts(dtos), nil
}

func (c *httpClient) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	if err := c.get(ctx, "summary", "/summary", nil, &s); err != nil {
		return Summary{}, err
	}
	def := DefaultSummary()
	if s.TotalRevenue == "" {
		s.TotalRevenue = def.TotalRevenue
	}
	if s.AvgOccupancy == "" {
		s.AvgOccupancy = def.AvgOccupancy
	}
	if s.TotalRooms == "" {
		s.TotalRooms = def.TotalRooms
	}
	if s.TotalStaff == "" {
		s.TotalStaff = def.TotalStaff
	}
	return s, nil
}

func (c *httpClient) Trends(ctx context.Context, districtID int, months int) ([]TrendPoint, error) {
	if err := ValidateHorizon(months); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("months", fmt.Sprintf("%d", months))

	var dtos []trendDTO
	if err := c.get(ctx, "trends", fmt.Sprintf("/districts/%d/trends", districtID), params, &dtos); err != nil {
		return nil, err
	}
	return mapTrends(dtos), nil
}

func (c *httpClient) Departments(ctx context.Context, districtID int) ([]workforce.Department, error) {
	var dtos []departmentDTO
	if err := c.get(ctx, "departments", fmt.Sprintf("/districts/%d/kds", districtID), nil, &dtos); err != nil {
		return nil, err
	}
	return mapDepartments(dtos), nil
}
