package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EdoardoTosin/tools/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ScriptsDir:   filepath.Join(dir, "scripts"),
		BaseURL:      "https://example.com/tools/",
		DataFile:     filepath.Join(dir, "_data", "scripts.yml"),
		MarkdownFile: filepath.Join(dir, "tools.md"),
		StateFile:    filepath.Join(dir, ".sitegen", "catalog.sum"),
	}
}

func TestGenerator_FirstRunWritesOutputs(t *testing.T) {
	cfg := testConfig(t)
	writeScript(t, cfg.ScriptsDir, "hello.sh", "#!/bin/sh\necho hi\n")
	writeScript(t, cfg.ScriptsDir, "setup.sh", "#!/bin/sh\n# "+RootMarker+"\n")
	writeScript(t, cfg.ScriptsDir, "tool.py", "print('hi')\n")

	res, err := NewGenerator(cfg).Run(false)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Scanned)
	assert.True(t, res.Changed)
	assert.False(t, res.Skipped)
	assert.Len(t, res.Wrote, 2)
	assert.Empty(t, res.Failed)

	data, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello.sh")
	assert.Contains(t, string(data), `root: "true"`)

	md, err := os.ReadFile(cfg.MarkdownFile)
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Linux")
	assert.Contains(t, string(md), "sudo bash")
}

func TestGenerator_SecondRunSkips(t *testing.T) {
	cfg := testConfig(t)
	writeScript(t, cfg.ScriptsDir, "hello.sh", "#!/bin/sh\necho hi\n")

	_, err := NewGenerator(cfg).Run(false)
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)

	res, err := NewGenerator(cfg).Run(false)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, res.Wrote)

	second, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	assert.Equal(t, first, second, "skipped run leaves outputs untouched")
}

func TestGenerator_ContentChangeRegenerates(t *testing.T) {
	cfg := testConfig(t)
	path := writeScript(t, cfg.ScriptsDir, "hello.sh", "#!/bin/sh\necho hi\n")

	_, err := NewGenerator(cfg).Run(false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho hello\n"), 0755))

	res, err := NewGenerator(cfg).Run(false)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.False(t, res.Skipped)
}

func TestGenerator_ForceBypassesChangeDetection(t *testing.T) {
	cfg := testConfig(t)
	writeScript(t, cfg.ScriptsDir, "hello.sh", "#!/bin/sh\necho hi\n")

	_, err := NewGenerator(cfg).Run(false)
	require.NoError(t, err)

	res, err := NewGenerator(cfg).Run(true)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Len(t, res.Wrote, 2)
}

func TestGenerator_RerunProducesIdenticalBytes(t *testing.T) {
	cfg := testConfig(t)
	writeScript(t, cfg.ScriptsDir, "hello.sh", "#!/bin/sh\necho hi\n")
	writeScript(t, cfg.ScriptsDir, "tool.py", "print('hi')\n")

	_, err := NewGenerator(cfg).Run(false)
	require.NoError(t, err)
	firstData, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	firstMD, err := os.ReadFile(cfg.MarkdownFile)
	require.NoError(t, err)

	_, err = NewGenerator(cfg).Run(true)
	require.NoError(t, err)
	secondData, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	secondMD, err := os.ReadFile(cfg.MarkdownFile)
	require.NoError(t, err)

	assert.Equal(t, firstData, secondData)
	assert.Equal(t, firstMD, secondMD)
}

func TestGenerator_EmptyDirectory(t *testing.T) {
	cfg := testConfig(t)

	res, err := NewGenerator(cfg).Run(false)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Scanned)
	assert.True(t, res.Changed, "no prior fingerprint means a first generation")
	assert.Len(t, res.Wrote, 2)
}
