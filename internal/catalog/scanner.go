package catalog

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/EdoardoTosin/tools/internal/logging"
)

// Scan walks rootDir recursively and returns an entry for every file
// with a recognized script extension, sorted by relative path.
//
// The directory is created if absent, so a fresh checkout yields an
// empty catalog rather than an error. Files that cannot be read are
// logged and excluded; they never abort the scan.
func Scan(rootDir string) ([]ScriptEntry, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scripts directory %s: %w", rootDir, err)
	}

	var entries []ScriptEntry
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			// Hidden directories hold site machinery, never scripts.
			if strings.HasPrefix(d.Name(), ".") && path != rootDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !Recognized(path) {
			return nil
		}

		entry, err := buildEntry(rootDir, path, d)
		if err != nil {
			logging.Warn("excluding unreadable script", "path", path, "error", err)
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", rootDir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelativePath < entries[j].RelativePath
	})
	return entries, nil
}

func buildEntry(rootDir, path string, d fs.DirEntry) (ScriptEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScriptEntry{}, err
	}
	info, err := d.Info()
	if err != nil {
		return ScriptEntry{}, err
	}
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		return ScriptEntry{}, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	platform, ok := Classify(ext)
	if !ok {
		return ScriptEntry{}, fmt.Errorf("unrecognized extension %q", ext)
	}

	sum := sha256.Sum256(data)
	return ScriptEntry{
		Name:         filepath.Base(path),
		RelativePath: filepath.ToSlash(rel),
		Extension:    ext,
		Platform:     platform,
		RequiresRoot: containsRootMarker(data),
		SHA256:       hex.EncodeToString(sum[:]),
		ModTime:      info.ModTime(),
	}, nil
}

// containsRootMarker scans line by line for the exact marker substring.
func containsRootMarker(data []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), RootMarker) {
			return true
		}
	}
	return false
}
