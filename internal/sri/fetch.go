package sri

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// memoSize bounds the in-run memo; a site referencing more distinct
// remote scripts than this would be remarkable.
const memoSize = 256

// Fetcher resolves remote script URLs to integrity values. Within one
// run every URL is fetched at most once; across runs the durable
// FetchCache avoids refetching URLs seen within the freshness window.
type Fetcher struct {
	client *http.Client
	cache  *FetchCache
	memo   *lru.Cache[string, string]
}

// NewFetcher returns a fetcher with an explicit per-request timeout so
// a stalled CDN cannot hang the build.
func NewFetcher(cache *FetchCache, timeout time.Duration) (*Fetcher, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	memo, err := lru.New[string, string](memoSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetch memo: %w", err)
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		cache:  cache,
		memo:   memo,
	}, nil
}

// Resolve returns the integrity value for url, consulting the in-run
// memo, then the durable cache, then the network. Network errors and
// non-200 responses are returned for the caller to log and skip; they
// never poison the memo or cache.
func (f *Fetcher) Resolve(ctx context.Context, url string) (string, error) {
	if integrity, ok := f.memo.Get(url); ok {
		return integrity, nil
	}
	if integrity, ok := f.cache.Get(url); ok {
		f.memo.Add(url, integrity)
		return integrity, nil
	}

	body, err := f.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	integrity := Digest(body)
	f.memo.Add(url, integrity)
	f.cache.Put(url, integrity)
	return integrity, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}
	return body, nil
}
