package catalog

import (
	"fmt"

	"github.com/EdoardoTosin/tools/internal/config"
	"github.com/EdoardoTosin/tools/internal/logging"
)

// Result summarizes one generator run for the CLI.
type Result struct {
	Scanned int
	Changed bool
	Skipped bool
	Wrote   []string
	Failed  []string
}

// Generator wires the scanner, change detection, and emitters together.
type Generator struct {
	cfg *config.Config
}

// NewGenerator returns a catalog generator for the given configuration.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Run scans the scripts directory and regenerates the data file and
// Markdown listing when the catalog fingerprint changed since the last
// successful run. force bypasses change detection.
//
// Output write failures are logged and recorded in the Result but do
// not return an error: a missing catalog must never fail the site
// build. The fingerprint is only persisted after every output was
// written, so a partial failure retries on the next run.
func (g *Generator) Run(force bool) (*Result, error) {
	entries, err := Scan(g.cfg.ScriptsDir)
	if err != nil {
		return nil, fmt.Errorf("catalog scan failed: %w", err)
	}

	res := &Result{Scanned: len(entries)}

	state := NewStateFile(g.cfg.StateFile)
	fingerprint := Fingerprint(entries)
	res.Changed = fingerprint != state.Read()

	if !res.Changed && !force {
		res.Skipped = true
		logging.Info("catalog unchanged, skipping generation", "scripts", len(entries))
		return res, nil
	}

	data, err := EncodeData(entries)
	if err != nil {
		// Encoding only fails on a broken record shape, which scan
		// cannot produce; treat it like a write failure anyway.
		logging.Error("catalog data encoding failed", "error", err)
		res.Failed = append(res.Failed, g.cfg.DataFile)
	} else if err := writeOutput(g.cfg.DataFile, data); err != nil {
		logging.Error("catalog data write failed", "path", g.cfg.DataFile, "error", err)
		res.Failed = append(res.Failed, g.cfg.DataFile)
	} else {
		res.Wrote = append(res.Wrote, g.cfg.DataFile)
	}

	markdown := EncodeMarkdown(entries, g.cfg.BaseURL)
	if err := writeOutput(g.cfg.MarkdownFile, markdown); err != nil {
		logging.Error("catalog markdown write failed", "path", g.cfg.MarkdownFile, "error", err)
		res.Failed = append(res.Failed, g.cfg.MarkdownFile)
	} else {
		res.Wrote = append(res.Wrote, g.cfg.MarkdownFile)
	}

	if len(res.Failed) > 0 {
		logging.Warn("fingerprint not persisted, next run regenerates", "failed", len(res.Failed))
		return res, nil
	}

	if err := state.Write(fingerprint); err != nil {
		// Harmless beyond a redundant regeneration next run.
		logging.Warn("failed to persist catalog fingerprint", "error", err)
	}
	logging.Info("catalog generated", "scripts", len(entries), "outputs", len(res.Wrote))
	return res, nil
}
