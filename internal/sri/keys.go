package sri

import "strings"

// NormalizeKeys expands a resource path into the lookup-key variants a
// template might use: as given, without a leading slash, with a leading
// slash, and with the site's base path prefix stripped. Remote URLs are
// returned unchanged; they have exactly one spelling.
//
// The variants exist because the template layer queries the table with
// whatever path form the including page happens to hold.
func NormalizeKeys(path, basePrefix string) []string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return []string{path}
	}

	seen := make(map[string]bool)
	var keys []string
	add := func(k string) {
		if k != "" && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	add(path)
	add(strings.TrimPrefix(path, "/"))
	if !strings.HasPrefix(path, "/") {
		add("/" + path)
	}

	if basePrefix != "" && basePrefix != "/" {
		prefix := "/" + strings.Trim(basePrefix, "/")
		slashed := path
		if !strings.HasPrefix(slashed, "/") {
			slashed = "/" + slashed
		}
		if strings.HasPrefix(slashed, prefix+"/") {
			stripped := strings.TrimPrefix(slashed, prefix)
			add(stripped)
			add(strings.TrimPrefix(stripped, "/"))
		}
	}
	return keys
}
