package sri

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EdoardoTosin/tools/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Mode:         config.ModeProduction,
		SiteDir:      filepath.Join(dir, "_site"),
		SRIFile:      filepath.Join(dir, "_data", "sri.yml"),
		SRICacheFile: filepath.Join(dir, ".sitegen", "sri-cache.json"),
		FetchTimeout: time.Second,
	}
}

func TestGenerator_WritesLocalAndRemoteRecords(t *testing.T) {
	remoteBody := "window.lib = {};"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(remoteBody))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	appJS := "console.log(\"app\");"
	writeFile(t, cfg.SiteDir, "assets/js/app.js", appJS)
	writeFile(t, cfg.SiteDir, "index.html",
		fmt.Sprintf(`<html><head><script src="%s/lib.js"></script></head></html>`, srv.URL))

	res, err := NewGenerator(cfg).Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.LocalScripts)
	assert.Equal(t, 1, res.RemoteScripts)
	assert.Equal(t, 0, res.RemoteSkipped)

	table := LoadTable(cfg.SRIFile)
	require.Len(t, table, 2)
	assert.Equal(t, Digest([]byte(appJS)), table["/assets/js/app.js"].Integrity)
	assert.Equal(t, Digest([]byte(remoteBody)), table[srv.URL+"/lib.js"].Integrity)
	assert.Equal(t, "anonymous", table["/assets/js/app.js"].CrossOrigin)
}

func TestGenerator_RemoteFailureSkipsURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	writeFile(t, cfg.SiteDir, "assets/js/app.js", "console.log(1);")
	writeFile(t, cfg.SiteDir, "index.html",
		fmt.Sprintf(`<html><head><script src="%s/lib.js"></script></head></html>`, srv.URL))

	res, err := NewGenerator(cfg).Run(context.Background(), false)
	require.NoError(t, err, "remote failures never abort the run")
	assert.Equal(t, 1, res.RemoteSkipped)

	table := LoadTable(cfg.SRIFile)
	require.Len(t, table, 1, "no record is written for the failed URL")
	_, present := table[srv.URL+"/lib.js"]
	assert.False(t, present)
}

func TestGenerator_CheckModeDetectsDrift(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.SiteDir, "assets/js/app.js")
	writeFile(t, cfg.SiteDir, "assets/js/app.js", "console.log(1);")

	gen := NewGenerator(cfg)
	_, err := gen.Run(context.Background(), false)
	require.NoError(t, err)

	res, err := gen.Run(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, res.Drift, "fresh table matches")

	require.NoError(t, os.WriteFile(path, []byte("console.log(2);"), 0644))
	res, err = gen.Run(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, res.Drift, "edited asset is detected")
}

func TestGenerator_CheckModeDoesNotWrite(t *testing.T) {
	cfg := testConfig(t)
	writeFile(t, cfg.SiteDir, "assets/js/app.js", "console.log(1);")

	res, err := NewGenerator(cfg).Run(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, res.Drift, "no persisted table counts as drift")

	_, err = os.Stat(cfg.SRIFile)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerator_CacheSurvivesBuilds(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("window.lib = {};"))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	writeFile(t, cfg.SiteDir, "index.html",
		fmt.Sprintf(`<html><head><script src="%s/lib.js"></script></head></html>`, srv.URL))

	_, err := NewGenerator(cfg).Run(context.Background(), false)
	require.NoError(t, err)
	_, err = NewGenerator(cfg).Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, requests, "second build reuses the durable cache")
}
