package sri

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/EdoardoTosin/tools/internal/logging"
)

// LocalScript is one JavaScript file found in the site output.
type LocalScript struct {
	// Path is the file's path relative to the output directory, with
	// a leading slash and forward slashes, matching how pages
	// reference it.
	Path string

	// Data is the raw file content.
	Data []byte
}

// ScanLocalScripts returns every *.js file under outputDir, sorted by
// path. Unreadable files are logged and excluded.
func ScanLocalScripts(outputDir string) ([]LocalScript, error) {
	var scripts []LocalScript
	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Error("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".js") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			logging.Error("failed to read script", "path", path, "error", err)
			return nil
		}
		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}
		scripts = append(scripts, LocalScript{
			Path: "/" + filepath.ToSlash(rel),
			Data: data,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", outputDir, err)
	}
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Path < scripts[j].Path })
	return scripts, nil
}

// ScanRemoteReferences parses every *.html file under outputDir and
// collects the absolute http(s) URLs referenced by <script src=...>
// tags, deduplicated and sorted. Unparseable pages are logged and
// skipped.
func ScanRemoteReferences(outputDir string) ([]string, error) {
	seen := make(map[string]bool)
	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Error("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			logging.Error("failed to open page", "path", path, "error", err)
			return nil
		}
		defer f.Close()

		urls, err := extractScriptURLs(f)
		if err != nil {
			logging.Error("failed to parse page", "path", path, "error", err)
			return nil
		}
		for _, u := range urls {
			seen[u] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", outputDir, err)
	}

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls, nil
}

func extractScriptURLs(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var urls []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			for _, attr := range n.Attr {
				if attr.Key != "src" {
					continue
				}
				src := strings.TrimSpace(attr.Val)
				if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
					urls = append(urls, src)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return urls, nil
}
