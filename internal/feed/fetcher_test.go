package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Research</title>
    <item><title>Paper one</title><link>https://example.com/1</link><pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate></item>
    <item><title>Paper two</title><link>https://example.com/2</link><pubDate>Tue, 02 Jan 2024 10:00:00 GMT</pubDate></item>
    <item><title>Paper three</title><link>https://example.com/3</link></item>
  </channel>
</rss>`

func TestFetchParsesAndTruncates(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	f := NewFetcher(FetchConfig{MaxItemsPerFeed: 2, TimeoutSeconds: 5}, nil)
	items, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (truncated)", len(items))
	}
	if items[0].Title != "Paper one" || items[1].Title != "Paper two" {
		t.Errorf("items out of feed order: %+v", items)
	}
	if items[0].Published == "" {
		t.Error("first item has no published date")
	}
	if gotUA != "studytrack/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestFetchUnreachableReturnsErrorValue(t *testing.T) {
	f := NewFetcher(FetchConfig{MaxItemsPerFeed: 10, TimeoutSeconds: 1}, nil)

	// Reserved TEST-NET address; connection must fail fast or time out.
	items, err := f.Fetch(context.Background(), "http://192.0.2.1:1/feed.xml")
	if err == nil {
		t.Fatal("Fetch of unreachable URL returned nil error")
	}
	if len(items) != 0 {
		t.Errorf("got %d items from unreachable URL, want 0", len(items))
	}
	if err.Error() == "" {
		t.Error("error string is empty")
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(FetchConfig{MaxItemsPerFeed: 10, TimeoutSeconds: 5}, nil)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Fetch of 500 response returned nil error")
	}
}

func TestFetchGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("this is not xml"))
	}))
	defer srv.Close()

	f := NewFetcher(FetchConfig{MaxItemsPerFeed: 10, TimeoutSeconds: 5}, nil)
	items, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Fetch of non-feed body returned nil error")
	}
	if len(items) != 0 {
		t.Errorf("got %d items from garbage body, want 0", len(items))
	}
}

type fakeCache struct {
	items   []Item
	errStr  string
	hit     bool
	puts    int
	lastErr string
}

func (c *fakeCache) Get(string, time.Duration) ([]Item, string, bool, error) {
	return c.items, c.errStr, c.hit, nil
}

func (c *fakeCache) Put(_ string, items []Item, errStr string) error {
	c.puts++
	c.items = items
	c.lastErr = errStr
	return nil
}

func TestFetchCacheHitSkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	cache := &fakeCache{hit: true, items: []Item{{Title: "cached"}}}
	f := NewFetcher(FetchConfig{MaxItemsPerFeed: 10, TimeoutSeconds: 5}, cache)

	items, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if requests != 0 {
		t.Errorf("network hit %d times on cache hit, want 0", requests)
	}
	if len(items) != 1 || items[0].Title != "cached" {
		t.Errorf("items = %+v, want cached item", items)
	}
}

func TestFetchCachedFailureIsReplayed(t *testing.T) {
	cache := &fakeCache{hit: true, errStr: "feed: unexpected status 503"}
	f := NewFetcher(FetchConfig{MaxItemsPerFeed: 10, TimeoutSeconds: 5}, cache)

	items, err := f.Fetch(context.Background(), "http://irrelevant.invalid/feed")
	if err == nil {
		t.Fatal("cached failure not replayed as error")
	}
	if err.Error() != "feed: unexpected status 503" {
		t.Errorf("replayed error = %q", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items with cached failure, want 0", len(items))
	}
}

func TestFetchMissRecordsResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	cache := &fakeCache{hit: false}
	f := NewFetcher(FetchConfig{MaxItemsPerFeed: 10, TimeoutSeconds: 5}, cache)

	if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if cache.puts != 1 {
		t.Errorf("cache.Put called %d times, want 1", cache.puts)
	}
	if cache.lastErr != "" {
		t.Errorf("recorded error = %q, want empty", cache.lastErr)
	}
	if len(cache.items) != 3 {
		t.Errorf("recorded %d items, want 3", len(cache.items))
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	// Missing file: empty default config.
	cfg, err := LoadConfig(filepath.Join(dir, "feeds.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig on missing file: %v", err)
	}
	if len(cfg.Sections) != 0 || cfg.Fetch.MaxItemsPerFeed != 10 || cfg.Fetch.TimeoutSeconds != 8 {
		t.Errorf("default config = %+v", cfg)
	}

	content := `
sections:
  - name: "ML"
    description: "Machine learning venues"
    items:
      - title: "arXiv stat.ML"
        url: "https://arxiv.org/rss/stat.ML"
        type: rss
      - title: "Course page"
        url: "https://example.com/course"
        type: link
fetch:
  max_items_per_feed: 5
`
	path := filepath.Join(dir, "feeds.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing feeds.yaml: %v", err)
	}

	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Sections) != 1 || len(cfg.Sections[0].Items) != 2 {
		t.Fatalf("sections = %+v", cfg.Sections)
	}
	if cfg.Sections[0].Items[0].Type != TypeRSS {
		t.Errorf("first item type = %q, want rss", cfg.Sections[0].Items[0].Type)
	}
	if cfg.Fetch.MaxItemsPerFeed != 5 {
		t.Errorf("MaxItemsPerFeed = %d, want 5", cfg.Fetch.MaxItemsPerFeed)
	}
	// Unset timeout falls back to the default.
	if cfg.Fetch.TimeoutSeconds != 8 {
		t.Errorf("TimeoutSeconds = %d, want default 8", cfg.Fetch.TimeoutSeconds)
	}
}
