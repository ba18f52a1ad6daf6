// Package catalog scans the downloadable scripts directory and emits
// the data file and Markdown listing consumed by the site templates.
package catalog

import (
	"path/filepath"
	"strings"
	"time"
)

// Platform identifies which interpreter family a script targets.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformPython  Platform = "python"
)

// RootMarker is the documentation convention scripts use to declare
// that they must run with elevated permissions. The match is exact.
const RootMarker = "Note: The script must run with root permissions."

// extensionTable maps recognized script extensions to their platform.
// Anything not listed here is excluded from the catalog.
var extensionTable = map[string]Platform{
	".sh":   PlatformLinux,
	".bash": PlatformLinux,
	".py":   PlatformPython,
	".pyw":  PlatformPython,
	".ps1":  PlatformWindows,
}

// ScriptEntry describes one cataloged script for a single scan.
type ScriptEntry struct {
	// Name is the file basename, e.g. "setup.sh".
	Name string

	// RelativePath is the path under the scripts directory, using
	// forward slashes regardless of host OS.
	RelativePath string

	// Extension is the lowercased file extension including the dot.
	Extension string

	// Platform is the interpreter family derived from Extension.
	Platform Platform

	// RequiresRoot is true when the file contains RootMarker verbatim.
	RequiresRoot bool

	// SHA256 is the hex digest of the raw file bytes.
	SHA256 string

	// ModTime is the file modification time at scan.
	ModTime time.Time
}

// Classify maps a file extension to its platform. It reports false for
// extensions outside the recognized table; Scan filters those out
// before entries are built.
func Classify(ext string) (Platform, bool) {
	p, ok := extensionTable[strings.ToLower(ext)]
	return p, ok
}

// Recognized reports whether the file at path has a cataloged extension.
func Recognized(path string) bool {
	_, ok := Classify(filepath.Ext(path))
	return ok
}
