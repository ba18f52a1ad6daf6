package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// dataEntry is the shape of one record in the catalog data file. The
// templates read root as a string, so booleans are serialized as
// "true"/"false" rather than YAML booleans.
type dataEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Root string `yaml:"root"`
}

// EncodeData serializes entries for the template data file, preserving
// scan order so unchanged inputs produce byte-identical output.
func EncodeData(entries []ScriptEntry) ([]byte, error) {
	records := make([]dataEntry, 0, len(entries))
	for _, e := range entries {
		records = append(records, dataEntry{
			Name: e.Name,
			Type: string(e.Platform),
			Root: fmt.Sprintf("%t", e.RequiresRoot),
		})
	}
	out, err := yaml.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog data: %w", err)
	}
	return out, nil
}

// Section order for the Markdown listing. Fixed so reruns are stable.
var sectionOrder = []Platform{PlatformLinux, PlatformWindows, PlatformPython}

var sectionTitles = map[Platform]string{
	PlatformLinux:   "Linux",
	PlatformWindows: "Windows",
	PlatformPython:  "Python",
}

var fenceLanguages = map[string]string{
	"Linux":   "sh",
	"Windows": "powershell",
}

// EncodeMarkdown renders the human-readable catalog page. Sections are
// grouped by platform in Linux, Windows, Python order; each entry shows
// a source link, its SHA-256 for integrity verification, and one
// copyable install command per invocation form.
func EncodeMarkdown(entries []ScriptEntry, baseURL string) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "---\n")
	fmt.Fprintf(&b, "layout: page\n")
	fmt.Fprintf(&b, "title: Automation Tools\n")
	fmt.Fprintf(&b, "---\n\n")
	fmt.Fprintf(&b, "Each command below downloads the script and pipes it straight into its\ninterpreter. Verify the SHA-256 first if you prefer to inspect what runs.\n")

	for _, platform := range sectionOrder {
		group := filterPlatform(entries, platform)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n", sectionTitles[platform])

		for _, e := range group {
			fmt.Fprintf(&b, "\n### %s\n\n", e.Name)
			fmt.Fprintf(&b, "[View source](%s) · SHA-256 `%s`\n", e.RelativePath, e.SHA256)
			if e.RequiresRoot {
				fmt.Fprintf(&b, "\n%s\n", RootMarker)
			}

			cmds := InstallCommands(e, baseURL)
			for _, cmd := range cmds {
				if len(cmds) > 1 {
					fmt.Fprintf(&b, "\n**%s**\n", cmd.Label)
				}
				lang := fenceLanguages[cmd.Label]
				fmt.Fprintf(&b, "\n```%s\n%s\n```\n", lang, cmd.Command)
			}
		}
	}
	return []byte(b.String())
}

func filterPlatform(entries []ScriptEntry, platform Platform) []ScriptEntry {
	var out []ScriptEntry
	for _, e := range entries {
		if e.Platform == platform {
			out = append(out, e)
		}
	}
	return out
}

// writeOutput writes one generated document, creating parent
// directories as needed.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
