// file: internal/openlibrary/client.go
// version: 1.1.0
// guid: b4e174c3-8685-4274-a4b9-cb70e856f6d6

package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jdfalk/bookshelf/internal/cache"
	"github.com/jdfalk/bookshelf/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://openlibrary.org"
	DefaultLimit        = 20
	DefaultCacheTTL     = 10 * time.Minute
	DefaultRatePerSec   = 5.0
	defaultCacheEntries = 256
)

// Client searches the Open Library catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limit      int
	limiter    *rate.Limiter
	results    *cache.Cache[[]SearchDoc]
}

// Option configures a Client.
type Option func(*Client)

// WithLimit sets the maximum number of docs requested per search.
func WithLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithCacheTTL sets how long successful results are reused. 0 disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.results = cache.NewBounded[[]SearchDoc](ttl, defaultCacheEntries)
	}
}

// WithRateLimit caps outgoing requests per second. perSecond <= 0 disables it.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for OPENLIBRARY_BASE_URL, or the public
// Open Library when it is unset.
func NewClient(opts ...Option) *Client {
	baseURL := os.Getenv("OPENLIBRARY_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return NewClientWithBaseURL(baseURL, opts...)
}

// NewClientWithBaseURL creates a client with a custom base URL.
func NewClientWithBaseURL(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   DefaultLimit,
		limiter: rate.NewLimiter(rate.Limit(DefaultRatePerSec), 1),
		results: cache.NewBounded[[]SearchDoc](DefaultCacheTTL, defaultCacheEntries),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClearCache drops every cached search result.
func (c *Client) ClearCache() {
	c.results.InvalidateAll()
}

// Search queries /search.json for q and returns the raw docs.
func (c *Client) Search(ctx context.Context, q string) ([]SearchDoc, error) {
	cacheKey := fmt.Sprintf("%s|%d", normalizeForIndex(q), c.limit)
	if docs, ok := c.results.Get(cacheKey); ok {
		metrics.IncCatalogRequest("cached")
		log.Printf("[DEBUG] openlibrary: cache hit for %q", q)
		return docs, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.IncCatalogRequest("error")
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	searchURL := fmt.Sprintf("%s/search.json?q=%s&limit=%d", c.baseURL, url.QueryEscape(q), c.limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		metrics.IncCatalogRequest("error")
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveCatalogDuration(time.Since(start))
	if err != nil {
		metrics.IncCatalogRequest("error")
		return nil, fmt.Errorf("failed to search Open Library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.IncCatalogRequest("error")
		return nil, fmt.Errorf("Open Library API returned status %d", resp.StatusCode)
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		metrics.IncCatalogRequest("error")
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	docs := searchResp.Docs
	if docs == nil {
		docs = []SearchDoc{}
	}

	metrics.IncCatalogRequest("ok")
	c.results.Set(cacheKey, docs)
	log.Printf("[DEBUG] openlibrary: %d of %d docs for %q", len(docs), searchResp.NumFound, q)
	return docs, nil
}

// Searcher wraps a Client so that every failure becomes an empty result.
type Searcher struct {
	client *Client
}

// NewSearcher creates a Searcher over client.
func NewSearcher(client *Client) *Searcher {
	return &Searcher{client: client}
}

// Search returns the docs for q, or an empty slice if the lookup failed.
func (s *Searcher) Search(ctx context.Context, q string) []SearchDoc {
	docs, err := s.client.Search(ctx, q)
	if err != nil {
		log.Printf("[WARN] openlibrary: search for %q failed: %v", q, err)
		return []SearchDoc{}
	}
	return docs
}

// ClearCache drops the client's cached results.
func (s *Searcher) ClearCache() {
	s.client.ClearCache()
}
