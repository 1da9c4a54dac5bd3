// Package scrape fetches batches of URLs concurrently, extracts their main
// textual content, and rotates through an optional pool of egress proxies.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/factlens/factlens/internal/config"
	"github.com/factlens/factlens/internal/model"
)

// scrapeSleepFunc is the delay function used before the rate-limit retry
// (injectable for tests)
var scrapeSleepFunc = time.Sleep

// Engine fetches URLs with a fixed per-request timeout and a realistic
// browser User-Agent. The proxy pool is read-only after construction; each
// batch gets its own rotation cycle. Transports are shared across requests
// so connections get reused within and across batches.
type Engine struct {
	timeout         time.Duration
	userAgent       string
	maxBodyBytes    int64
	proxies         []string
	robots          *RobotsChecker
	direct          *http.Transport
	proxyTransports map[string]*http.Transport
}

// NewEngine creates a scrape engine from configuration
func NewEngine(cfg config.ScrapeConfig) *Engine {
	var robots *RobotsChecker
	if cfg.RespectRobots {
		robots = NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	e := &Engine{
		timeout:         cfg.Timeout,
		userAgent:       cfg.UserAgent,
		maxBodyBytes:    cfg.MaxBodyBytes,
		proxies:         cfg.Proxies,
		robots:          robots,
		direct:          &http.Transport{},
		proxyTransports: make(map[string]*http.Transport),
	}
	for _, p := range cfg.Proxies {
		if u, err := url.Parse(p); err == nil && u.Scheme != "" && u.Host != "" {
			e.proxyTransports[u.String()] = &http.Transport{Proxy: http.ProxyURL(u)}
		}
	}
	return e
}

// transportFor returns the shared transport for the given proxy, or the
// direct transport when proxy is nil
func (e *Engine) transportFor(proxy *url.URL) *http.Transport {
	if proxy == nil {
		return e.direct
	}
	if t, ok := e.proxyTransports[proxy.String()]; ok {
		return t
	}
	return e.direct
}

// ScrapeAll fetches every URL concurrently and returns the extracted text of
// the successful fetches only. Output order is completion order; callers
// must not rely on it matching the input.
func (e *Engine) ScrapeAll(ctx context.Context, urls []string) []string {
	if len(urls) == 0 {
		return nil
	}

	log.Printf("scrape: fetching %d URLs", len(urls))

	rotator := NewRotator(e.proxies)
	var rotMu sync.Mutex
	nextProxy := func() *url.URL {
		rotMu.Lock()
		defer rotMu.Unlock()
		return rotator.Next()
	}

	results := make(chan model.ScrapeResult, len(urls))
	var wg sync.WaitGroup

	for _, u := range urls {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			results <- e.scrapeOne(ctx, target, nextProxy)
		}(u)
	}

	wg.Wait()
	close(results)

	var contents []string
	for res := range results {
		if res.OK && res.Text != "" {
			contents = append(contents, res.Text)
		}
	}

	log.Printf("scrape: %d/%d URLs yielded content", len(contents), len(urls))
	return contents
}

// scrapeOne fetches a single URL. A 429 gets exactly one retry after a
// randomized 5-15s delay on the next proxy in rotation; a 403 and every
// other failure is permanent for this URL within the batch.
func (e *Engine) scrapeOne(ctx context.Context, target string, nextProxy func() *url.URL) model.ScrapeResult {
	if e.robots != nil && !e.robots.Allowed(ctx, target) {
		log.Printf("scrape: %s disallowed by robots.txt", target)
		return model.ScrapeResult{URL: target}
	}

	body, status, err := e.fetch(ctx, target, nextProxy())
	if err == nil && status == http.StatusOK {
		return model.ScrapeResult{URL: target, Text: ExtractText(body, target), OK: true}
	}

	switch status {
	case http.StatusTooManyRequests:
		delay := time.Duration(5+rand.Intn(11)) * time.Second
		log.Printf("scrape: %s rate-limited, retrying once in %v", target, delay)
		scrapeSleepFunc(delay)

		body, status, err = e.fetch(ctx, target, nextProxy())
		if err == nil && status == http.StatusOK {
			return model.ScrapeResult{URL: target, Text: ExtractText(body, target), OK: true}
		}
		log.Printf("scrape: %s failed after rate-limit retry (status %d, err %v)", target, status, err)

	case http.StatusForbidden:
		log.Printf("scrape: %s returned 403, skipping permanently", target)

	default:
		log.Printf("scrape: %s failed (status %d): %v", target, status, err)
	}

	return model.ScrapeResult{URL: target}
}

// fetch performs one HTTP GET, optionally through the given proxy, and
// returns the body and status code
func (e *Engine) fetch(ctx context.Context, target string, proxy *url.URL) (string, int, error) {
	client := &http.Client{
		Timeout:   e.timeout,
		Transport: e.transportFor(proxy),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBodyBytes))
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	return string(body), resp.StatusCode, nil
}
