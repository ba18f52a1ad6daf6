// Package config loads sitegen settings from the environment.
//
// A .env file in the working directory is honored when present, so the
// same knobs work for local builds and CI without flag plumbing.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mode values for the build environment switch.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config holds all settings for the catalog and SRI generators.
type Config struct {
	// Mode is the build environment, development or production.
	// In development mode SRI attributes are never emitted.
	Mode string

	// LogLevel controls the global logger (debug, info, warn, error).
	LogLevel string

	// ScriptsDir is the directory scanned for downloadable scripts.
	ScriptsDir string

	// SiteDir is the generated site output scanned for SRI hashing.
	SiteDir string

	// BaseURL is the public URL prefix for raw script downloads.
	BaseURL string

	// BasePrefix is the site's path prefix, stripped when normalizing
	// SRI lookup keys (for example "/tools").
	BasePrefix string

	// DataFile is the catalog data file consumed by the templates.
	DataFile string

	// MarkdownFile is the human-readable catalog listing.
	MarkdownFile string

	// StateFile persists the catalog change-detection fingerprint.
	StateFile string

	// SRIFile is the integrity lookup table consumed by the templates.
	SRIFile string

	// SRICacheFile persists remote-fetch results across builds.
	SRICacheFile string

	// FetchTimeout bounds each remote script download.
	FetchTimeout time.Duration
}

// Load reads the configuration from the environment, applying defaults
// for anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	mode := firstNonEmpty(
		strings.TrimSpace(os.Getenv("JEKYLL_ENV")),
		strings.TrimSpace(os.Getenv("APP_ENV")),
		ModeDevelopment,
	)
	if mode != ModeProduction {
		mode = ModeDevelopment
	}

	timeout := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("SITEGEN_FETCH_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	return &Config{
		Mode:         mode,
		LogLevel:     firstNonEmpty(os.Getenv("SITEGEN_LOG_LEVEL"), "info"),
		ScriptsDir:   firstNonEmpty(os.Getenv("SITEGEN_SCRIPTS_DIR"), "scripts"),
		SiteDir:      firstNonEmpty(os.Getenv("SITEGEN_SITE_DIR"), "_site"),
		BaseURL:      firstNonEmpty(os.Getenv("SITEGEN_BASE_URL"), "https://edoardotosin.com/tools/"),
		BasePrefix:   strings.TrimSpace(os.Getenv("SITEGEN_BASE_PREFIX")),
		DataFile:     firstNonEmpty(os.Getenv("SITEGEN_DATA_FILE"), "_data/scripts.yml"),
		MarkdownFile: firstNonEmpty(os.Getenv("SITEGEN_MARKDOWN_FILE"), "tools.md"),
		StateFile:    firstNonEmpty(os.Getenv("SITEGEN_STATE_FILE"), ".sitegen/catalog.sum"),
		SRIFile:      firstNonEmpty(os.Getenv("SITEGEN_SRI_FILE"), "_data/sri.yml"),
		SRICacheFile: firstNonEmpty(os.Getenv("SITEGEN_SRI_CACHE"), ".sitegen/sri-cache.json"),
		FetchTimeout: timeout,
	}, nil
}

// IsDevelopment reports whether the build runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Mode != ModeProduction
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
