package store

import (
	"path/filepath"
	"testing"
	"time"

	"studytrack/internal/feed"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "feedcache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPutGetRoundTrip(t *testing.T) {
	c := openTestCache(t)
	url := "https://example.com/feed.xml"

	in := []feed.Item{
		{Title: "one", Link: "https://example.com/1", Published: "Mon, 01 Jan 2024 10:00:00 GMT"},
		{Title: "two", Link: "https://example.com/2", Published: ""},
	}
	if err := c.Put(url, in, ""); err != nil {
		t.Fatalf("Put: %v", err)
	}

	items, fetchErr, ok, err := c.Get(url, time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get = miss, want hit")
	}
	if fetchErr != "" {
		t.Errorf("fetchErr = %q, want empty", fetchErr)
	}
	if len(items) != 2 || items[0].Title != "one" || items[1].Title != "two" {
		t.Errorf("items = %+v, want original order preserved", items)
	}
}

func TestGetMiss(t *testing.T) {
	c := openTestCache(t)

	_, _, ok, err := c.Get("https://nowhere.example/feed", time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get on empty cache = hit, want miss")
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	c := openTestCache(t)
	url := "https://example.com/feed.xml"

	if err := c.Put(url, []feed.Item{{Title: "old"}}, ""); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Age the entry past the TTL.
	old := time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339)
	if _, err := c.db.Exec("UPDATE feed_fetches SET fetched_at = ?", old); err != nil {
		t.Fatalf("aging entry: %v", err)
	}

	_, _, ok, err := c.Get(url, time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expired entry returned as hit")
	}
}

func TestCachedFailureIsReturned(t *testing.T) {
	c := openTestCache(t)
	url := "https://example.com/broken.xml"

	if err := c.Put(url, nil, "feed: request failed: connection refused"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	items, fetchErr, ok, err := c.Get(url, time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get = miss, want hit for cached failure")
	}
	if fetchErr == "" {
		t.Error("cached failure lost its error string")
	}
	if len(items) != 0 {
		t.Errorf("cached failure has %d items, want 0", len(items))
	}
}

func TestPutReplacesPriorEntry(t *testing.T) {
	c := openTestCache(t)
	url := "https://example.com/feed.xml"

	if err := c.Put(url, []feed.Item{{Title: "a"}, {Title: "b"}, {Title: "c"}}, ""); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := c.Put(url, []feed.Item{{Title: "fresh"}}, ""); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	items, _, ok, err := c.Get(url, time.Hour)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(items) != 1 || items[0].Title != "fresh" {
		t.Errorf("items = %+v, want single replaced entry", items)
	}
}

func TestPurge(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("https://a.example/feed", []feed.Item{{Title: "a"}}, ""); err != nil {
		t.Fatalf("Put: %v", err)
	}
	old := time.Now().UTC().Add(-48 * time.Hour).Format(time.RFC3339)
	if _, err := c.db.Exec("UPDATE feed_fetches SET fetched_at = ?", old); err != nil {
		t.Fatalf("aging entry: %v", err)
	}
	if err := c.Put("https://b.example/feed", []feed.Item{{Title: "b"}}, ""); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := c.Purge(24 * time.Hour); err != nil {
		t.Fatalf("Purge: %v", err)
	}

	if _, _, ok, _ := c.Get("https://a.example/feed", 72*time.Hour); ok {
		t.Error("purged entry still present")
	}
	if _, _, ok, _ := c.Get("https://b.example/feed", 72*time.Hour); !ok {
		t.Error("fresh entry was purged")
	}
}

func TestOpenSweepsExpiredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedcache.db")

	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := c.Put("https://stale.example/feed", []feed.Item{{Title: "stale"}}, ""); err != nil {
		t.Fatalf("Put: %v", err)
	}
	old := time.Now().UTC().Add(-2 * feed.CacheTTL).Format(time.RFC3339)
	if _, err := c.db.Exec("UPDATE feed_fetches SET fetched_at = ?", old); err != nil {
		t.Fatalf("aging entry: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	c, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM feed_fetches").Scan(&n); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if n != 0 {
		t.Errorf("expired rows after reopen = %d, want 0", n)
	}
}
