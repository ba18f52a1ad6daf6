package sri

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Record is one SRI lookup entry.
type Record struct {
	Integrity   string `yaml:"integrity"`
	CrossOrigin string `yaml:"crossorigin"`
}

// Table maps a canonical resource key to its SRI record. Local files
// are keyed by their leading-slash site path, remote scripts by URL;
// lookup expands the queried path into variants instead of storing
// duplicate keys.
type Table map[string]Record

// NewRecord returns the record for an integrity value.
func NewRecord(integrity string) Record {
	return Record{Integrity: integrity, CrossOrigin: CrossOrigin}
}

// Encode serializes the table with a generation timestamp header.
// Keys are emitted sorted.
func (t Table) Encode(now time.Time) ([]byte, error) {
	body, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode SRI table: %w", err)
	}
	header := fmt.Sprintf("# Generated by sitegen sri at %s. Do not edit.\n", now.UTC().Format(time.RFC3339))
	return append([]byte(header), body...), nil
}

// Persist writes the table to path, creating parent directories.
func (t Table) Persist(path string, now time.Time) error {
	data, err := t.Encode(now)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write SRI table %s: %w", path, err)
	}
	return nil
}

// LoadTable reads a persisted table. A missing or unparseable file
// yields an empty table: pages render without integrity attributes,
// which is always safe.
func LoadTable(path string) Table {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil || t == nil {
		return Table{}
	}
	return t
}

// Filters is the template-facing lookup surface. In development mode
// every lookup returns empty strings so locally edited assets never
// carry stale hashes.
type Filters struct {
	table       Table
	basePrefix  string
	development bool
}

// NewFilters builds the filter surface over a loaded table.
func NewFilters(table Table, basePrefix string, development bool) *Filters {
	return &Filters{table: table, basePrefix: basePrefix, development: development}
}

func (f *Filters) lookup(path string) (Record, bool) {
	if f.development {
		return Record{}, false
	}
	for _, key := range NormalizeKeys(path, f.basePrefix) {
		if rec, ok := f.table[key]; ok {
			return rec, true
		}
	}
	return Record{}, false
}

// Integrity returns the integrity value for path, or "".
func (f *Filters) Integrity(path string) string {
	rec, _ := f.lookup(path)
	return rec.Integrity
}

// CrossOrigin returns the crossorigin value for path, or "".
func (f *Filters) CrossOrigin(path string) string {
	rec, _ := f.lookup(path)
	return rec.CrossOrigin
}

// Attrs returns the ready-to-embed attribute string for path, or ""
// when the resource is unknown or the build runs in development mode.
func (f *Filters) Attrs(path string) string {
	rec, ok := f.lookup(path)
	if !ok {
		return ""
	}
	return fmt.Sprintf("integrity=%q crossorigin=%q", rec.Integrity, rec.CrossOrigin)
}
