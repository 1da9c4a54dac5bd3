// Package search wraps the Google Custom Search JSON API and filters paged
// results down to an ordered, de-duplicated list of trusted URLs.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/factlens/factlens/internal/config"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/sources"
)

// Result caps per recency category. Evergreen corroboration needs fewer,
// deeper sources; real-time claims need a wider net.
const (
	evergreenCap = 5
	realtimeCap  = 8

	// realtime fallback widens acceptance when fewer trusted hits than this
	realtimeMinTrusted = 3
)

// realtimeKeywords are the heuristic URL markers accepted by the real-time
// fallback when too few trusted sources match.
var realtimeKeywords = []string{"news", "live", "breaking", "latest"}

// Gateway pages through the search API and filters hits against the
// trusted-source catalog. Missing credentials or total API failure yield an
// empty list, never an error: callers treat empty as "no sources found".
type Gateway struct {
	apiKey     string
	engineID   string
	baseURL    string
	maxTotal   int
	pageSize   int
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *gocache.Cache
}

// NewGateway creates a search gateway from configuration
func NewGateway(cfg config.SearchConfig) *Gateway {
	pagesPerSecond := cfg.PagesPerSecond
	if pagesPerSecond <= 0 {
		pagesPerSecond = 1.0
	}

	return &Gateway{
		apiKey:   cfg.APIKey,
		engineID: cfg.EngineID,
		baseURL:  cfg.BaseURL,
		maxTotal: cfg.MaxTotal,
		pageSize: cfg.PageSize,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(pagesPerSecond), 1),
		cache:   gocache.New(cfg.CacheTTL, 10*time.Minute),
	}
}

// searchResponse mirrors the slice of the CSE JSON payload we consume
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Link string `json:"link"`
}

// Search returns an ordered, de-duplicated list of trusted URLs for the
// query, capped per the recency category. The same rate limiter throttles
// page requests for both recency variants.
func (g *Gateway) Search(ctx context.Context, query string, domain model.DomainCategory, recency model.RecencyCategory) []string {
	if g.apiKey == "" || g.engineID == "" {
		log.Printf("search: API key or engine ID not configured, returning no sources")
		return nil
	}

	cacheKey := string(domain) + "|" + string(recency) + "|" + query
	if cached, found := g.cache.Get(cacheKey); found {
		return cached.([]string)
	}

	hits := g.collectHits(ctx, query)
	log.Printf("search: %d total results for %q in %s/%s", len(hits), query, domain, recency)

	urls := FilterTrusted(hits, domain, recency)

	g.cache.Set(cacheKey, urls, gocache.DefaultExpiration)
	return urls
}

// collectHits pages through the API until maxTotal results, an empty page,
// or a page error
func (g *Gateway) collectHits(ctx context.Context, query string) []model.SearchHit {
	var hits []model.SearchHit

	for start := 0; start < g.maxTotal; start += g.pageSize {
		if err := g.limiter.Wait(ctx); err != nil {
			break
		}

		items, err := g.fetchPage(ctx, query, start+1)
		if err != nil {
			log.Printf("search: page request at index %d failed: %v", start+1, err)
			break
		}
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			if item.Link != "" {
				hits = append(hits, model.SearchHit{URL: item.Link, Rank: len(hits)})
			}
		}
	}

	return hits
}

// fetchPage performs a single paged API call
func (g *Gateway) fetchPage(ctx context.Context, query string, startIndex int) ([]searchItem, error) {
	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(g.pageSize))
	params.Set("start", strconv.Itoa(startIndex))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Items, nil
}

// FilterTrusted filters hits against the trusted-hostname list selected by
// (domain, recency), preserving rank order and removing duplicates. The
// real-time variant falls back to heuristic URL keywords when fewer than
// realtimeMinTrusted trusted hits are found.
func FilterTrusted(hits []model.SearchHit, domain model.DomainCategory, recency model.RecencyCategory) []string {
	trusted := sources.Trusted(domain, recency)
	limit := evergreenCap
	if recency == model.RecencyRealtime {
		limit = realtimeCap
	}

	var urls []string
	seen := make(map[string]bool)

	for _, hit := range hits {
		if !sources.MatchesTrusted(hit.URL, trusted) || seen[hit.URL] {
			continue
		}
		seen[hit.URL] = true
		urls = append(urls, hit.URL)
		if len(urls) >= limit {
			return urls
		}
	}

	if recency == model.RecencyRealtime && len(urls) < realtimeMinTrusted {
		for _, hit := range hits {
			if seen[hit.URL] || !matchesKeyword(hit.URL) {
				continue
			}
			seen[hit.URL] = true
			urls = append(urls, hit.URL)
			if len(urls) >= limit {
				break
			}
		}
	}

	return urls
}

func matchesKeyword(u string) bool {
	lower := strings.ToLower(u)
	for _, kw := range realtimeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
