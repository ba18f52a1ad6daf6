package sri

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/EdoardoTosin/tools/internal/config"
	"github.com/EdoardoTosin/tools/internal/logging"
)

// Result summarizes one SRI generator run for the CLI.
type Result struct {
	LocalScripts  int
	RemoteScripts int
	RemoteSkipped int
	Drift         bool
}

// Generator computes the integrity table for the built site output.
type Generator struct {
	cfg *config.Config
}

// NewGenerator returns an SRI generator for the given configuration.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Run hashes every local *.js file and every remote <script src> URL
// referenced by the built pages, then persists the lookup table. Remote
// fetch failures are logged as warnings and skipped; no record is
// written for them, so templates simply omit the attributes.
//
// In check mode the table is recomputed and compared against the
// persisted one without writing; drift is reported in the Result.
func (g *Generator) Run(ctx context.Context, check bool) (*Result, error) {
	res := &Result{}
	table := Table{}

	scripts, err := ScanLocalScripts(g.cfg.SiteDir)
	if err != nil {
		return nil, fmt.Errorf("local script scan failed: %w", err)
	}
	for _, s := range scripts {
		table[s.Path] = NewRecord(Digest(s.Data))
	}
	res.LocalScripts = len(scripts)

	urls, err := ScanRemoteReferences(g.cfg.SiteDir)
	if err != nil {
		return nil, fmt.Errorf("remote reference scan failed: %w", err)
	}
	res.RemoteScripts = len(urls)

	cache := LoadFetchCache(g.cfg.SRICacheFile)
	fetcher, err := NewFetcher(cache, g.cfg.FetchTimeout)
	if err != nil {
		return nil, err
	}
	for _, url := range urls {
		integrity, err := fetcher.Resolve(ctx, url)
		if err != nil {
			logging.Warn("skipping remote script", "url", url, "error", err)
			res.RemoteSkipped++
			continue
		}
		table[url] = NewRecord(integrity)
	}

	if check {
		res.Drift = g.driftsFrom(table)
		return res, nil
	}

	if err := table.Persist(g.cfg.SRIFile, time.Now()); err != nil {
		logging.Error("SRI table write failed", "path", g.cfg.SRIFile, "error", err)
		return res, nil
	}
	if err := cache.Save(); err != nil {
		logging.Warn("failed to persist fetch cache", "error", err)
	}
	logging.Info("SRI table generated",
		"local", res.LocalScripts,
		"remote", res.RemoteScripts-res.RemoteSkipped,
		"skipped", res.RemoteSkipped)
	return res, nil
}

// driftsFrom compares the freshly computed table against the persisted
// one, ignoring the timestamp header.
func (g *Generator) driftsFrom(computed Table) bool {
	persisted, err := os.ReadFile(g.cfg.SRIFile)
	if err != nil {
		return true
	}
	fresh, err := computed.Encode(time.Time{})
	if err != nil {
		return true
	}
	return !bytes.Equal(stripHeader(persisted), stripHeader(fresh))
}

func stripHeader(data []byte) []byte {
	for len(data) > 0 && data[0] == '#' {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			return nil
		}
		data = data[idx+1:]
	}
	return data
}
