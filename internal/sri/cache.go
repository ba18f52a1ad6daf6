package sri

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/EdoardoTosin/tools/internal/logging"
)

// FreshFor is how long a cached remote fetch stays reusable. The cache
// survives across builds; entries past this window are refetched.
const FreshFor = 24 * time.Hour

type cacheEntry struct {
	Integrity string    `json:"integrity"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FetchCache persists remote-URL integrity results between builds so
// close-together rebuilds do not refetch unchanged CDN scripts.
type FetchCache struct {
	path    string
	entries map[string]cacheEntry
	now     func() time.Time
}

// LoadFetchCache reads the cache file at path. A missing, unreadable,
// or corrupt file yields an empty cache, never an error.
func LoadFetchCache(path string) *FetchCache {
	c := &FetchCache{
		path:    path,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		logging.Warn("discarding unparseable fetch cache", "path", path, "error", err)
		c.entries = make(map[string]cacheEntry)
	}
	return c
}

// Get returns the cached integrity value for url when the entry is
// still within the freshness window.
func (c *FetchCache) Get(url string) (string, bool) {
	e, ok := c.entries[url]
	if !ok || c.now().Sub(e.FetchedAt) > FreshFor {
		return "", false
	}
	return e.Integrity, true
}

// Put records a freshly fetched integrity value for url.
func (c *FetchCache) Put(url, integrity string) {
	c.entries[url] = cacheEntry{Integrity: integrity, FetchedAt: c.now()}
}

// Save writes the cache back to disk. Expired entries are dropped so
// the file does not grow with dead URLs.
func (c *FetchCache) Save() error {
	for url, e := range c.entries {
		if c.now().Sub(e.FetchedAt) > FreshFor {
			delete(c.entries, url)
		}
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode fetch cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write fetch cache %s: %w", c.path, err)
	}
	return nil
}
