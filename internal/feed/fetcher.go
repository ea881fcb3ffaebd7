package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	userAgent   = "studytrack/1.0"
	maxBodySize = 4 << 20 // 4 MB

	// CacheTTL is how long a fetch result (including a failure) is reused.
	CacheTTL = time.Hour
)

// Item is one entry of a syndication feed, reduced to what the radar shows.
type Item struct {
	Title     string
	Link      string
	Published string
}

// Cache stores fetch results keyed by URL. Implemented by store.Cache;
// all methods are best-effort, a broken cache degrades to uncached fetching.
type Cache interface {
	Get(url string, maxAge time.Duration) (items []Item, fetchErr string, ok bool, err error)
	Put(url string, items []Item, fetchErr string) error
}

// Fetcher retrieves and parses RSS/Atom feeds. Failures are returned as
// display values, never propagated as hard errors.
type Fetcher struct {
	http     *http.Client
	parser   *gofeed.Parser
	cache    Cache // may be nil
	maxItems int
	timeout  time.Duration
}

// NewFetcher builds a fetcher bounded by the feeds.yaml fetch config.
// cache may be nil to disable caching.
func NewFetcher(fc FetchConfig, cache Cache) *Fetcher {
	return &Fetcher{
		http:     &http.Client{},
		parser:   gofeed.NewParser(),
		cache:    cache,
		maxItems: fc.MaxItemsPerFeed,
		timeout:  time.Duration(fc.TimeoutSeconds) * time.Second,
	}
}

// Fetch returns up to maxItems entries of the feed at url, preserving feed
// order. Any failure (network, timeout, parse) comes back as a non-nil
// error alongside an empty slice; the caller shows it as a warning.
// Results are served from the cache when a fresh entry exists, including
// cached failures.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Item, error) {
	if f.cache != nil {
		if items, fetchErr, ok, err := f.cache.Get(url, CacheTTL); err == nil && ok {
			if fetchErr != "" {
				return nil, fmt.Errorf("%s", fetchErr)
			}
			return items, nil
		}
	}

	items, err := f.fetch(ctx, url)

	if f.cache != nil {
		errStr := ""
		if err != nil {
			errStr = err.Error()
		}
		_ = f.cache.Put(url, items, errStr)
	}

	return items, err
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: bad url: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("feed: reading response: %w", err)
	}

	parsed, err := f.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("feed: parsing: %w", err)
	}

	items := make([]Item, 0, f.maxItems)
	for _, e := range parsed.Items {
		if len(items) >= f.maxItems {
			break
		}
		if e == nil {
			continue
		}
		published := e.Published
		if published == "" {
			published = e.Updated
		}
		items = append(items, Item{
			Title:     e.Title,
			Link:      e.Link,
			Published: published,
		})
	}
	return items, nil
}
